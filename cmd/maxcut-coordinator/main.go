package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dd0wney/cluso-maxcut/pkg/config"
	"github.com/dd0wney/cluso-maxcut/pkg/dispatch"
	"github.com/dd0wney/cluso-maxcut/pkg/logging"
	"github.com/dd0wney/cluso-maxcut/pkg/maxcut"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	addrs := flag.String("addrs", "", "Comma-separated worker addresses to bind (overrides config)")
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
	if *addrs != "" {
		cfg.Cluster.WorkerAddrs = strings.Split(*addrs, ",")
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if len(cfg.Cluster.WorkerAddrs) == 0 {
		log.Fatal("No worker addresses configured (use -addrs or cluster.worker_addrs)")
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	g, err := cfg.Graph.Build()
	if err != nil {
		log.Fatalf("Failed to build problem graph: %v", err)
	}

	byRank := make(map[int]string, len(cfg.Cluster.WorkerAddrs))
	for i, addr := range cfg.Cluster.WorkerAddrs {
		byRank[i+1] = addr
	}
	transport, err := dispatch.ListenCoordinator(byRank)
	if err != nil {
		log.Fatalf("Failed to bind transport: %v", err)
	}
	defer transport.Close()

	coord, err := dispatch.NewCoordinator(cfg.MaxcutConfig(), g, transport, len(byRank),
		maxcut.Options[uint64]{Logger: logger})
	if err != nil {
		log.Fatalf("Failed to create coordinator: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := coord.Run(ctx); err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	res := coord.Result()
	fmt.Printf("cut value: %.1f\n", res.CutValue)
	fmt.Printf("coloring:  %s\n", res.Bits)
}
