package registry

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/cadastra/registryd/internal/agentcard"
	"github.com/cadastra/registryd/internal/config"
	"github.com/cadastra/registryd/internal/domain/envelope"
	"github.com/cadastra/registryd/internal/domain/fields"
	"github.com/cadastra/registryd/internal/domain/query"
	"github.com/cadastra/registryd/internal/repository/csvstore"
	healthuc "github.com/cadastra/registryd/internal/usecase/health"
	searchuc "github.com/cadastra/registryd/internal/usecase/search"
)

// Client is the in-process registry SDK entry point. It loads the CSV
// snapshot once at construction; all calls afterwards are read-only and
// safe for concurrent use.
type Client struct {
	store     *csvstore.Store
	searchSvc *searchuc.Service
	healthSvc *healthuc.Service
	card      agentcard.Card
	logger    *zap.Logger
}

// New creates a registry Client. Provide either WithConfigFile, or
// WithCSV together with WithFields.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	agent := config.AgentConfig{
		Name:        cfg.agentName,
		Description: cfg.agentDescription,
		Version:     cfg.agentVersion,
	}

	if cfg.configFile != "" {
		fileCfg, err := config.LoadFile(cfg.configFile)
		if err != nil {
			return nil, err
		}
		cfg.csvPath = fileCfg.Data.CSVPath
		cfg.encoding = fileCfg.Data.Encoding
		cfg.searchable = fileCfg.Fields.SearchableFields
		cfg.exposed = fileCfg.Fields.ExposedFields
		agent = fileCfg.Agent
	}

	if cfg.csvPath == "" {
		return nil, errors.New("registry: data source required (use WithCSV or WithConfigFile)")
	}

	store, err := csvstore.Open(cfg.csvPath, cfg.encoding)
	if err != nil {
		return nil, err
	}

	policy := fields.NewPolicy(cfg.searchable, cfg.exposed)

	c := &Client{
		store:     store,
		searchSvc: searchuc.New(store, policy),
		healthSvc: healthuc.New(store),
		card:      agentcard.New(agent, policy),
		logger:    cfg.logger,
	}
	c.logger.Info("registry client ready",
		zap.Int("records", store.Len()),
		zap.Strings("searchable", policy.Searchable()),
		zap.Strings("exposed", policy.Exposed()),
	)
	return c, nil
}

// Search runs a predicate search and wraps the projected matches in the
// response envelope. Unrecognized predicate fields are dropped; an empty
// query yields a success envelope with count 0.
func (c *Client) Search(ctx context.Context, params map[string]string) envelope.Envelope {
	results := c.searchSvc.Search(ctx, query.New(params))
	return envelope.Success(results)
}

// Card returns the agent metadata descriptor.
func (c *Client) Card() agentcard.Card { return c.card }

// Records returns the number of loaded registry records.
func (c *Client) Records() int { return c.store.Len() }

// Health checks the health of all components.
func (c *Client) Health(ctx context.Context) healthuc.Report {
	return c.healthSvc.Check(ctx)
}
