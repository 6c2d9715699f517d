// Package agentcard builds the machine-readable service descriptor served
// at the metadata endpoint: agent identity, capabilities, and the search
// skill with schemas derived from the field policy.
package agentcard

import (
	"fmt"

	"github.com/cadastra/registryd/internal/config"
	"github.com/cadastra/registryd/internal/domain/fields"
)

// Card is the agent metadata descriptor.
type Card struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Version      string       `json:"version"`
	Capabilities Capabilities `json:"capabilities"`
	Skills       []Skill      `json:"skills"`
}

// Capabilities advertises what the agent supports.
type Capabilities struct {
	SupportsMessage      bool `json:"supports_message"`
	SupportsTaskCreation bool `json:"supports_task_creation"`
	SupportsStreaming    bool `json:"supports_streaming"`
}

// Skill describes one capability of the agent with its I/O schemas.
type Skill struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	InputSchema  Schema   `json:"input_schema"`
	OutputSchema Schema   `json:"output_schema"`
}

// Schema is a minimal JSON-schema object description.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
}

// Property describes one schema field.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Known per-field descriptions for the input schema. Unknown fields get a
// generic description.
var fieldDescriptions = map[string]string{
	"name":    "First name to search (partial match, case-insensitive)",
	"surname": "Last name to search (partial match, case-insensitive)",
	"cpf":     "CPF number to search (Brazilian ID document)",
	"phone":   "Phone number to search",
	"city":    "City name to search (partial match, case-insensitive)",
	"state":   "State abbreviation (e.g., SP, RJ, MG)",
	"address": "Street address to search",
}

// New builds the agent card from configured identity and field policy.
// The input schema is generated from the searchable fields, the output
// schema from the exposed fields.
func New(agent config.AgentConfig, policy fields.Policy) Card {
	input := Schema{Type: "object", Properties: make(map[string]Property)}
	for _, f := range policy.Searchable() {
		desc, ok := fieldDescriptions[f]
		if !ok {
			desc = fmt.Sprintf("%s field", f)
		}
		input.Properties[f] = Property{Type: "string", Description: desc}
	}

	output := Schema{Type: "object", Properties: make(map[string]Property)}
	for _, f := range policy.Exposed() {
		output.Properties[f] = Property{Type: "string"}
	}

	return Card{
		Name:        agent.Name,
		Description: agent.Description,
		Version:     agent.Version,
		Capabilities: Capabilities{
			SupportsMessage:      true,
			SupportsTaskCreation: false,
			SupportsStreaming:    false,
		},
		Skills: []Skill{{
			ID:   "search_registration",
			Name: "search_registration",
			Description: "Search person registration records by the configured " +
				"searchable fields. Supports partial matching and returns " +
				"results with privacy-filtered fields.",
			Tags:         []string{"search", "registration", "data-query"},
			InputSchema:  input,
			OutputSchema: output,
		}},
	}
}
