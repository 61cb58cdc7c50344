package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"ojt-tracker/internal/api"
	"ojt-tracker/internal/cli"
	"ojt-tracker/internal/config"
	"ojt-tracker/internal/remote"
	"ojt-tracker/internal/syncq"
)

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	factory := NewRepositoryFactory(getEnvironment(), cfg)
	repo, err := factory.CreateRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating repository: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	store := remote.NewHTTPStore(cfg.Remote.BaseURL, cfg.Remote.Token, cfg.Remote.Timeout)
	monitor := syncq.NewMonitor(probeRemote(cfg))

	queue := syncq.NewQueue(repo, store, monitor)
	defer queue.Close()

	trackerAPI := api.New(repo, store, queue, monitor, cfg)
	app := cli.NewApp(trackerAPI, cfg)

	root := cli.NewRootCommand(app, cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// probeRemote checks whether the remote store is reachable. An unconfigured
// remote counts as offline so every change lands in the queue.
func probeRemote(cfg *config.Config) bool {
	if cfg.Remote.BaseURL == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Remote.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, cfg.Remote.BaseURL, nil)
	if err != nil {
		return false
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
