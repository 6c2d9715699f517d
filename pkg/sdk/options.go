package registry

import "go.uber.org/zap"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	configFile string

	csvPath  string
	encoding string

	searchable []string
	exposed    []string

	agentName        string
	agentDescription string
	agentVersion     string

	logger *zap.Logger
}

// WithConfigFile loads data source, field policy, and agent identity from a
// registryd YAML config file. Overrides any WithCSV/WithFields settings.
func WithConfigFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.configFile = path
	})
}

// WithCSV sets the registry table source. encoding may be empty for UTF-8.
func WithCSV(path, encoding string) Option {
	return optionFunc(func(c *clientConfig) {
		c.csvPath = path
		c.encoding = encoding
	})
}

// WithFields sets the field-exposure policy: which fields may be used as
// search predicates and which may appear in results.
func WithFields(searchable, exposed []string) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchable = append([]string(nil), searchable...)
		c.exposed = append([]string(nil), exposed...)
	})
}

// WithAgent sets the agent identity used in the card.
func WithAgent(name, description, version string) Option {
	return optionFunc(func(c *clientConfig) {
		c.agentName = name
		c.agentDescription = description
		c.agentVersion = version
	})
}

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
