package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-maxcut/pkg/config"
	"github.com/dd0wney/cluso-maxcut/pkg/logging"
	"github.com/dd0wney/cluso-maxcut/pkg/maxcut"
	"github.com/dd0wney/cluso-maxcut/pkg/metrics"
	"github.com/dd0wney/cluso-maxcut/pkg/solver"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginTop(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	winStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00"))

	reportStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 2)
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	vertices := flag.Int("vertices", 0, "Override problem graph size")
	degree := flag.Int("degree", 0, "Override regular graph degree")
	baselineRuns := flag.Int("baseline-runs", 10, "One-exchange baseline repetitions")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *vertices > 0 {
		cfg.Graph.Vertices = *vertices
	}
	if *degree > 0 {
		cfg.Graph.Degree = *degree
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	g, err := cfg.Graph.Build()
	if err != nil {
		log.Fatalf("Failed to build problem graph: %v", err)
	}

	s, err := maxcut.New(cfg.MaxcutConfig(), maxcut.Options[uint64]{Logger: logger})
	if err != nil {
		log.Fatalf("Failed to create solver: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := s.Solve(ctx, g)
	if err != nil {
		log.Fatalf("Solve failed: %v", err)
	}

	timer := logging.StartTimer(logger, "one-exchange baseline", logging.Count(*baselineRuns))
	stats, err := solver.Baseline(g.Clone(), *baselineRuns, cfg.Solver.Seed)
	if err != nil {
		timer.EndError(err)
		log.Fatalf("Baseline failed: %v", err)
	}
	timer.End()
	reg := metrics.DefaultRegistry()
	reg.BaselineCutValue.WithLabelValues("min").Set(stats.Min)
	reg.BaselineCutValue.WithLabelValues("mean").Set(stats.Mean)
	reg.BaselineCutValue.WithLabelValues("max").Set(stats.Max)

	printReport(cfg, g.NumVertices(), g.NumEdges(), res, stats)
}

func printReport(cfg config.Config, vertices, edges int, res *maxcut.Result[uint64], stats solver.BaselineStats) {
	var rows []string
	rows = append(rows, titleStyle.Render("Divide-and-Conquer Max-Cut"))
	rows = append(rows, sectionStyle.Render("Problem"))
	rows = append(rows, valueStyle.Render(fmt.Sprintf("  graph: %s, %d vertices, %d edges",
		cfg.Graph.Kind, vertices, edges)))
	rows = append(rows, valueStyle.Render(fmt.Sprintf("  vertex limit: %d  subgraph limit: %d  shots: %d",
		cfg.Solver.VertexLimit, cfg.Solver.SubgraphLimit, cfg.Solver.Shots)))

	rows = append(rows, sectionStyle.Render("Result"))
	rows = append(rows, valueStyle.Render(fmt.Sprintf("  cut value: %.1f  (in %s)", res.CutValue, res.Duration)))
	rows = append(rows, valueStyle.Render(fmt.Sprintf("  coloring:  %s", res.Bits)))

	rows = append(rows, sectionStyle.Render(fmt.Sprintf("One-exchange baseline (%d runs)", stats.Runs)))
	rows = append(rows, valueStyle.Render(fmt.Sprintf("  min: %.1f  mean: %.1f  max: %.1f",
		stats.Min, stats.Mean, stats.Max)))

	verdict := fmt.Sprintf("baseline leads by %.1f", stats.Max-res.CutValue)
	if res.CutValue >= stats.Max {
		verdict = winStyle.Render(fmt.Sprintf("decomposition matches or beats the baseline (+%.1f)",
			res.CutValue-stats.Max))
	}
	rows = append(rows, sectionStyle.Render("Verdict"))
	rows = append(rows, valueStyle.Render("  "+verdict))

	fmt.Println(reportStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
