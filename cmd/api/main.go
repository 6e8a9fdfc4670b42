// Command api serves an Engine's agents over HTTP: POST /api/v1/agents to
// create one, POST /api/v1/commands to submit actions, POST
// /api/v1/advance to push simulated time forward, and GET
// /api/v1/agents/:id/state or /history to read back.
package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/laundroverse/simcore/internal/api"
	"github.com/laundroverse/simcore/internal/engine"
	"github.com/laundroverse/simcore/internal/eventlog"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	dataDir := envOrDefault("SIMCORE_DATA_DIR", "data/events")
	port, err := strconv.Atoi(envOrDefault("SIMCORE_PORT", "8080"))
	if err != nil {
		slog.Error("invalid SIMCORE_PORT", "error", err)
		os.Exit(1)
	}

	log, err := eventlog.OpenFileLog(dataDir)
	if err != nil {
		slog.Error("failed to open event log", "error", err)
		os.Exit(1)
	}
	defer log.Close()

	srv := &api.Server{
		Eng:      engine.New(log),
		Port:     port,
		AdminKey: os.Getenv("SIMCORE_ADMIN_KEY"),
	}
	srv.Start()

	select {}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
