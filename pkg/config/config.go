// Package config loads and validates YAML run configuration for the
// max-cut binaries. Values omitted from the file keep their defaults.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-maxcut/pkg/graph"
	"github.com/dd0wney/cluso-maxcut/pkg/maxcut"
)

// Config is the full configuration of a run.
type Config struct {
	Solver   SolverConfig  `yaml:"solver"`
	Cluster  ClusterConfig `yaml:"cluster"`
	Graph    GraphConfig   `yaml:"graph"`
	LogLevel string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// SolverConfig mirrors maxcut.Config in YAML form.
type SolverConfig struct {
	VertexLimit   int   `yaml:"vertex_limit" validate:"min=2"`
	SubgraphLimit int   `yaml:"subgraph_limit" validate:"min=2"`
	Layers        int   `yaml:"layers" validate:"min=1"`
	Shots         int   `yaml:"shots" validate:"min=1"`
	Seed          int64 `yaml:"seed"`
	MergeSeed     int64 `yaml:"merge_seed"`
}

// ClusterConfig describes a distributed run. WorkerAddrs lists the
// addresses the coordinator binds, one per worker, in rank order.
type ClusterConfig struct {
	WorkerAddrs []string `yaml:"worker_addrs" validate:"omitempty,dive,min=1"`
	Rank        int      `yaml:"rank" validate:"min=0"`
	Coordinator string   `yaml:"coordinator" validate:"omitempty,min=1"`
}

// GraphConfig describes the demo problem graph.
type GraphConfig struct {
	Kind     string `yaml:"kind" validate:"oneof=regular gnm"`
	Vertices int    `yaml:"vertices" validate:"min=2"`
	Degree   int    `yaml:"degree" validate:"min=0"`
	Edges    int    `yaml:"edges" validate:"min=0"`
	Seed     int64  `yaml:"seed"`
}

// Default returns the default configuration: the reference demo problem,
// a 4-regular graph on 40 vertices.
func Default() Config {
	mc := maxcut.DefaultConfig()
	return Config{
		Solver: SolverConfig{
			VertexLimit:   mc.VertexLimit,
			SubgraphLimit: mc.SubgraphLimit,
			Layers:        mc.Layers,
			Shots:         mc.Shots,
			Seed:          mc.Seed,
			MergeSeed:     mc.MergeSeed,
		},
		Graph: GraphConfig{
			Kind:     "regular",
			Vertices: 40,
			Degree:   4,
			Seed:     mc.Seed,
		},
		LogLevel: "info",
	}
}

var validate = validator.New()

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Build generates the configured problem graph.
func (g GraphConfig) Build() (*graph.Graph[uint64], error) {
	switch g.Kind {
	case "regular":
		return graph.RandomRegular(g.Degree, g.Vertices, g.Seed)
	case "gnm":
		return graph.GNM(g.Vertices, g.Edges, g.Seed)
	default:
		return nil, fmt.Errorf("config: unknown graph kind %q", g.Kind)
	}
}

// MaxcutConfig converts the solver section to its runtime form.
func (c Config) MaxcutConfig() maxcut.Config {
	return maxcut.Config{
		VertexLimit:   c.Solver.VertexLimit,
		SubgraphLimit: c.Solver.SubgraphLimit,
		Layers:        c.Solver.Layers,
		Shots:         c.Solver.Shots,
		Seed:          c.Solver.Seed,
		MergeSeed:     c.Solver.MergeSeed,
	}
}
