package eventlog

import (
	"context"
	"sync"

	"github.com/laundroverse/simcore/internal/events"
)

// MemoryLog is an in-process Log backed by a map of slices. It is the
// default backend for tests and short-lived demo runs; nothing survives
// process exit.
type MemoryLog struct {
	mu      sync.Mutex
	streams map[string][]events.Envelope
}

// NewMemoryLog returns an empty MemoryLog.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{streams: make(map[string][]events.Envelope)}
}

func (m *MemoryLog) Append(ctx context.Context, agentID string, env events.Envelope) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streams[agentID] = append(m.streams[agentID], env)
	return len(m.streams[agentID]) - 1, nil
}

func (m *MemoryLog) LoadAll(ctx context.Context, agentID string) ([]events.Envelope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stream := m.streams[agentID]
	out := make([]events.Envelope, len(stream))
	copy(out, stream)
	return out, nil
}

func (m *MemoryLog) LoadForAgent(ctx context.Context, agentID string) ([]events.Envelope, error) {
	return m.LoadAll(ctx, agentID)
}

func (m *MemoryLog) Tail(ctx context.Context, agentID string, n int) ([]events.Envelope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stream := m.streams[agentID]
	if n >= len(stream) {
		n = len(stream)
	}
	out := make([]events.Envelope, n)
	copy(out, stream[len(stream)-n:])
	return out, nil
}

func (m *MemoryLog) AgentIDs(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.streams))
	for id := range m.streams {
		out = append(out, id)
	}
	return out, nil
}

func (m *MemoryLog) Close() error { return nil }
