// Command simcore runs a small multi-agent demo of the laundromat
// simulation core: it seeds a handful of agents, drives them through a
// few weeks of commands and autonomous ticks, and prints the resulting
// snapshots.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/laundroverse/simcore/internal/commands"
	"github.com/laundroverse/simcore/internal/engine"
	"github.com/laundroverse/simcore/internal/eventlog"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	dataDir := envOrDefault("SIMCORE_DATA_DIR", "data/events")
	slog.Info("laundroverse simcore demo starting", "data_dir", dataDir)

	log, err := eventlog.OpenFileLog(dataDir)
	if err != nil {
		slog.Error("failed to open event log", "error", err)
		os.Exit(1)
	}
	defer log.Close()

	eng := engine.New(log)
	ctx := context.Background()

	const agentA = "agent-alpha"
	const agentB = "agent-beta"

	for _, id := range []string{agentA, agentB} {
		if _, err := eng.CreateAgent(ctx, id, 10000); err != nil {
			slog.Error("create agent failed", "agent", id, "error", err)
			os.Exit(1)
		}
	}

	_, st, err := eng.ExecuteCommand(ctx, commands.Command{
		CommandID: "c1", Kind: commands.KindOpenNewLocation, AgentID: agentA,
		Payload: commands.OpenNewLocationPayload{Zone: "DOWNTOWN", InitialInvestment: 3000},
	})
	if err != nil {
		slog.Error("open location failed", "error", err)
		os.Exit(1)
	}
	slog.Info("location opened", "agent", agentA, "cash", st.CashBalance, "locations", len(st.Locations))

	st, err = eng.AdvanceTime(ctx, agentA, 14)
	if err != nil {
		slog.Error("advance time failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\n%s after 14 days: week=%d day=%d cash=%.2f social_score=%.1f\n",
		agentA, st.CurrentWeek, st.CurrentDay, st.CashBalance, st.SocialScore)

	history, err := eng.GetHistory(ctx, agentA)
	if err != nil {
		slog.Error("get history failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("%s event stream length: %d\n", agentA, len(history))
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
