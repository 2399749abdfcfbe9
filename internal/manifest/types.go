// Package manifest is the configuration-source collaborator: it parses
// and validates the YAML pipeline document described in spec §6
// ("Configuration source").
package manifest

import (
	"gopkg.in/yaml.v3"
)

// Manifest is the full pipeline configuration document.
type Manifest struct {
	PipelineID             string        `yaml:"pipeline_id" validate:"required,min=1,max=100"`
	Description            string        `yaml:"description,omitempty"`
	InputFormat            string        `yaml:"input_format" validate:"required"`
	OutputFormat           string        `yaml:"output_format" validate:"required"`
	AllowPartialProcessing bool          `yaml:"allow_partial_processing,omitempty"`
	AllowCycles            bool          `yaml:"allow_cycles,omitempty"`
	MaxIterationCount      int           `yaml:"max_iteration_count,omitempty" validate:"omitempty,min=1,max=1000000"`
	Components             []Component   `yaml:"components" validate:"required,min=1,dive"`
	Connections            []Connection  `yaml:"connections,omitempty" validate:"omitempty,dive"`
}

// Component is one declared pipeline component entry.
type Component struct {
	ComponentID        string `yaml:"component_id" validate:"required,component_id"`
	Version            string `yaml:"version,omitempty"`
	Optional           bool   `yaml:"optional,omitempty"`
	SupportsReentrance bool   `yaml:"supports_reentrance,omitempty"`
	MaxPasses          int    `yaml:"max_passes,omitempty" validate:"omitempty,min=1,max=100000"`
	RangeState         string `yaml:"range_state,omitempty" validate:"omitempty,oneof=stable legacy experimental"`

	// Config is the opaque component-specific configuration blob; its
	// shape is owned by the component, not the manifest schema. Creator
	// and Destructor carry the declared callback names as written; the
	// loader and the pipeline engine do not resolve or call them.
	Config    yaml.Node `yaml:"config,omitempty"`
	Creator   string    `yaml:"creator,omitempty"`
	Destructor string   `yaml:"destructor,omitempty"`
}

// Connection is an MPS-only declared edge between two components.
type Connection struct {
	Source    string `yaml:"source" validate:"required,component_id"`
	Target    string `yaml:"target" validate:"required,component_id"`
	Direction string `yaml:"direction" validate:"required,oneof=forward backward bidirectional"`
	Format    string `yaml:"format,omitempty"`
}

// IsMPS reports whether the manifest declares any connection or sets
// allow_cycles, either of which selects the multi-pass resolver over the
// single-pass one.
func (m *Manifest) IsMPS() bool {
	return len(m.Connections) > 0 || m.AllowCycles
}

// ComponentIDs returns component ids in declaration order.
func (m *Manifest) ComponentIDs() []string {
	ids := make([]string, len(m.Components))
	for i, c := range m.Components {
		ids[i] = c.ComponentID
	}
	return ids
}
