package maxcut

import (
	"github.com/dd0wney/cluso-maxcut/pkg/validation"
)

// Default solver knobs.
const (
	// DefaultVertexLimit is the largest subgraph handed to the optimizer
	// in one piece. Anything larger is decomposed.
	DefaultVertexLimit = 14
	// DefaultSubgraphLimit caps the number of parts per decomposition
	// level; it also bounds the merger graph the merge optimizer sees.
	DefaultSubgraphLimit = 11
	// DefaultLayers is the optimizer depth knob.
	DefaultLayers = 1
	// DefaultShots is the per-invocation optimizer sampling budget.
	DefaultShots = 10000
	// DefaultSeed seeds leaf optimizer runs.
	DefaultSeed = 13
	// DefaultMergeSeed seeds merge optimizer runs.
	DefaultMergeSeed = 12345
)

// Config holds the tunable parameters of a divide-and-conquer run.
type Config struct {
	VertexLimit   int   `yaml:"vertex_limit"`
	SubgraphLimit int   `yaml:"subgraph_limit"`
	Layers        int   `yaml:"layers"`
	Shots         int   `yaml:"shots"`
	Seed          int64 `yaml:"seed"`
	MergeSeed     int64 `yaml:"merge_seed"`
}

// DefaultConfig returns the default run parameters.
func DefaultConfig() Config {
	return Config{
		VertexLimit:   DefaultVertexLimit,
		SubgraphLimit: DefaultSubgraphLimit,
		Layers:        DefaultLayers,
		Shots:         DefaultShots,
		Seed:          DefaultSeed,
		MergeSeed:     DefaultMergeSeed,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	return validation.NewConfigValidator("maxcut.Config").
		MinInt("VertexLimit", c.VertexLimit, 2).
		MinInt("SubgraphLimit", c.SubgraphLimit, 2).
		Positive("Layers", c.Layers).
		Positive("Shots", c.Shots).
		Validate()
}
