// Package state reconstructs an agent's current snapshot by folding its
// event stream. Fold is the only way a snapshot is built; nothing else in
// this module constructs an AgentState from scratch.
package state

import (
	"context"
	"fmt"

	"github.com/laundroverse/simcore/internal/dispatch"
	"github.com/laundroverse/simcore/internal/domain"
	"github.com/laundroverse/simcore/internal/events"
)

// Builder folds an ordered event stream into an AgentState using a
// ProjectionDispatcher's reducer registry.
type Builder struct {
	projections *dispatch.ProjectionDispatcher
}

// NewBuilder returns a Builder driven by the given reducer registry.
func NewBuilder(projections *dispatch.ProjectionDispatcher) *Builder {
	return &Builder{projections: projections}
}

// Bound is an inclusive upper bound (week, day) on a fold, used to
// reconstruct an agent's state as of a point in its history instead of
// its latest snapshot. A nil *Bound means no ceiling: fold the whole
// stream.
type Bound struct {
	Week int
	Day  int
}

// within reports whether env's (week, day) is at or before b. A nil
// receiver accepts everything.
func (b *Bound) within(env events.Envelope) bool {
	if b == nil {
		return true
	}
	if env.Week != b.Week {
		return env.Week < b.Week
	}
	return env.Day <= b.Day
}

// Fold applies stream, in order, to a fresh state for agentID. Events must
// already be in the order they were appended; Fold never reorders or skips.
func (b *Builder) Fold(agentID string, stream []events.Envelope) (*domain.AgentState, error) {
	return b.FoldUntil(agentID, stream, nil)
}

// FoldUntil is Fold with an optional upper bound: events whose (week, day)
// falls after bound are skipped, so the returned snapshot reflects the
// agent's state as of that point in time rather than the end of stream.
// A nil bound behaves exactly like Fold.
func (b *Builder) FoldUntil(agentID string, stream []events.Envelope, bound *Bound) (*domain.AgentState, error) {
	st := domain.NewAgentState(agentID)
	return b.foldInto(st, stream, bound)
}

// FoldFrom is Fold starting from an already-built snapshot, used to
// incrementally extend a cached state with newly appended events instead
// of refolding the full stream.
func (b *Builder) FoldFrom(base *domain.AgentState, stream []events.Envelope) (*domain.AgentState, error) {
	return b.FoldFromUntil(base, stream, nil)
}

// FoldFromUntil is FoldFrom with the same optional (week, day) ceiling as
// FoldUntil.
func (b *Builder) FoldFromUntil(base *domain.AgentState, stream []events.Envelope, bound *Bound) (*domain.AgentState, error) {
	return b.foldInto(base, stream, bound)
}

func (b *Builder) foldInto(st *domain.AgentState, stream []events.Envelope, bound *Bound) (*domain.AgentState, error) {
	for i, env := range stream {
		if !bound.within(env) {
			break
		}
		next, err := b.projections.Apply(st, env)
		if err != nil {
			return nil, fmt.Errorf("state: fold event %d (%s): %w", i, env.Kind, err)
		}
		st = next
	}
	return st, nil
}

// Loader is the subset of eventlog.Log that Rebuild needs, kept narrow so
// package state does not import package eventlog directly.
type Loader interface {
	LoadAll(ctx context.Context, agentID string) ([]events.Envelope, error)
}

// Rebuild loads agentID's full stream from log and folds it. This is the
// convenience path callers use when they don't maintain their own cache.
func (b *Builder) Rebuild(ctx context.Context, log Loader, agentID string) (*domain.AgentState, error) {
	return b.RebuildUntil(ctx, log, agentID, nil)
}

// RebuildUntil is Rebuild with an optional (week, day) ceiling, for
// reconstructing an agent's state as of a point in its past rather than
// its present.
func (b *Builder) RebuildUntil(ctx context.Context, log Loader, agentID string, bound *Bound) (*domain.AgentState, error) {
	stream, err := log.LoadAll(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("state: load stream: %w", err)
	}
	return b.FoldUntil(agentID, stream, bound)
}
