// Package eventlog provides the append-only storage backends an Engine
// folds over. A Log never exposes mutation of a stored Envelope: callers
// only ever append new facts or read ordered slices of existing ones.
package eventlog

import (
	"context"
	"errors"

	"github.com/laundroverse/simcore/internal/events"
)

// ErrNotFound is returned when a lookup by event ID finds nothing.
var ErrNotFound = errors.New("eventlog: event not found")

// Log is the storage contract every backend implements. Implementations
// must serialize concurrent Append calls for the same agent so that per-agent
// event ordering (and therefore the fold) stays deterministic.
type Log interface {
	// Append writes one event to the end of agentID's stream and returns
	// the sequence number it was assigned (0-based, per-agent).
	Append(ctx context.Context, agentID string, env events.Envelope) (seq int, err error)

	// LoadAll returns every event for agentID in append order.
	LoadAll(ctx context.Context, agentID string) ([]events.Envelope, error)

	// LoadForAgent is an alias of LoadAll kept for call-site clarity where
	// "all" could be misread as "every agent".
	LoadForAgent(ctx context.Context, agentID string) ([]events.Envelope, error)

	// Tail returns the last n events for agentID, oldest first.
	Tail(ctx context.Context, agentID string, n int) ([]events.Envelope, error)

	// AgentIDs returns every agent with at least one stored event.
	AgentIDs(ctx context.Context) ([]string, error)

	Close() error
}
