package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-maxcut/pkg/config"
	"github.com/dd0wney/cluso-maxcut/pkg/dispatch"
	"github.com/dd0wney/cluso-maxcut/pkg/logging"
	"github.com/dd0wney/cluso-maxcut/pkg/maxcut"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	coordinator := flag.String("coordinator", "", "Coordinator address to dial (overrides config)")
	rank := flag.Int("rank", 0, "Worker rank, 1..n (overrides config)")
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
	if *coordinator != "" {
		cfg.Cluster.Coordinator = *coordinator
	}
	if *rank > 0 {
		cfg.Cluster.Rank = *rank
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if cfg.Cluster.Coordinator == "" || cfg.Cluster.Rank < 1 {
		log.Fatal("Worker needs a coordinator address and a rank >= 1")
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	transport, err := dispatch.DialWorker(cfg.Cluster.Coordinator, cfg.Cluster.Rank)
	if err != nil {
		log.Fatalf("Failed to dial coordinator: %v", err)
	}
	defer transport.Close()

	worker, err := dispatch.NewWorker(cfg.MaxcutConfig(), transport, cfg.Cluster.Rank,
		maxcut.Options[uint64]{Logger: logger})
	if err != nil {
		log.Fatalf("Failed to create worker: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := worker.Run(ctx); err != nil {
		log.Fatalf("Run failed: %v", err)
	}
}
