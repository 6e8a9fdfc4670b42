// Command replay rebuilds and prints one agent's current state from a
// stored event log, without running any further commands or ticks. It's
// the ops tool for auditing what a given log actually produced.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/laundroverse/simcore/internal/engine"
	"github.com/laundroverse/simcore/internal/eventlog"
)

func main() {
	dataDir := flag.String("data-dir", "data/events", "directory holding the JSONL event log")
	agentID := flag.String("agent", "", "agent id to replay (required)")
	sqlitePath := flag.String("sqlite", "", "path to a SQLite log instead of the JSONL directory")
	dumpEvents := flag.Bool("dump-events", false, "print every event in the stream before the final snapshot")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if *agentID == "" {
		slog.Error("-agent is required")
		os.Exit(1)
	}

	var log eventlog.Log
	var err error
	if *sqlitePath != "" {
		log, err = eventlog.OpenSQLiteLog(*sqlitePath)
	} else {
		log, err = eventlog.OpenFileLog(*dataDir)
	}
	if err != nil {
		slog.Error("failed to open event log", "error", err)
		os.Exit(1)
	}
	defer log.Close()

	ctx := context.Background()
	eng := engine.New(log)

	if *dumpEvents {
		stream, err := eng.GetHistory(ctx, *agentID)
		if err != nil {
			slog.Error("failed to load history", "error", err)
			os.Exit(1)
		}
		for i, env := range stream {
			fmt.Printf("%4d  week=%-3d day=%-2d %s\n", i, env.Week, env.Day, env.Kind)
		}
	}

	st, err := eng.GetCurrentState(ctx, *agentID)
	if err != nil {
		slog.Error("failed to rebuild state", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		slog.Error("failed to encode state", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
