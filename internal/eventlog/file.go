package eventlog

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/laundroverse/simcore/internal/events"
)

// FileLog stores each agent's stream as newline-delimited JSON in its own
// file under dir, named <agentID>.jsonl. Every Append is followed by an
// fsync so a crash mid-write loses at most the in-flight line, never a
// previously acknowledged one.
type FileLog struct {
	dir string

	mu      sync.Mutex
	handles map[string]*os.File
	cache   map[string][]events.Envelope
}

// OpenFileLog opens (creating if needed) a directory-backed log at dir and
// replays any existing *.jsonl files into memory for fast reads.
func OpenFileLog(dir string) (*FileLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("eventlog: create dir: %w", err)
	}
	f := &FileLog{
		dir:     dir,
		handles: make(map[string]*os.File),
		cache:   make(map[string][]events.Envelope),
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("eventlog: read dir: %w", err)
	}
	for _, ent := range entries {
		if ent.IsDir() || filepath.Ext(ent.Name()) != ".jsonl" {
			continue
		}
		agentID := ent.Name()[:len(ent.Name())-len(".jsonl")]
		if err := f.replay(agentID); err != nil {
			return nil, fmt.Errorf("eventlog: replay %s: %w", agentID, err)
		}
	}
	return f, nil
}

func (f *FileLog) path(agentID string) string {
	return filepath.Join(f.dir, agentID+".jsonl")
}

func (f *FileLog) replay(agentID string) error {
	file, err := os.Open(f.path(agentID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	var stream []events.Envelope
	for scanner.Scan() {
		var env events.Envelope
		if err := json.Unmarshal(scanner.Bytes(), &env); err != nil {
			return fmt.Errorf("decode line: %w", err)
		}
		stream = append(stream, env)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	f.cache[agentID] = stream
	return nil
}

func (f *FileLog) handle(agentID string) (*os.File, error) {
	if h, ok := f.handles[agentID]; ok {
		return h, nil
	}
	h, err := os.OpenFile(f.path(agentID), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	f.handles[agentID] = h
	return h, nil
}

func (f *FileLog) Append(ctx context.Context, agentID string, env events.Envelope) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	h, err := f.handle(agentID)
	if err != nil {
		return 0, fmt.Errorf("eventlog: open %s: %w", agentID, err)
	}

	line, err := json.Marshal(env)
	if err != nil {
		return 0, fmt.Errorf("eventlog: encode: %w", err)
	}
	line = append(line, '\n')

	if _, err := h.Write(line); err != nil {
		return 0, fmt.Errorf("eventlog: write %s: %w", agentID, err)
	}
	if err := h.Sync(); err != nil {
		return 0, fmt.Errorf("eventlog: fsync %s: %w", agentID, err)
	}

	f.cache[agentID] = append(f.cache[agentID], env)
	return len(f.cache[agentID]) - 1, nil
}

func (f *FileLog) LoadAll(ctx context.Context, agentID string) ([]events.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stream := f.cache[agentID]
	out := make([]events.Envelope, len(stream))
	copy(out, stream)
	return out, nil
}

func (f *FileLog) LoadForAgent(ctx context.Context, agentID string) ([]events.Envelope, error) {
	return f.LoadAll(ctx, agentID)
}

func (f *FileLog) Tail(ctx context.Context, agentID string, n int) ([]events.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stream := f.cache[agentID]
	if n >= len(stream) {
		n = len(stream)
	}
	out := make([]events.Envelope, n)
	copy(out, stream[len(stream)-n:])
	return out, nil
}

func (f *FileLog) AgentIDs(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.cache))
	for id := range f.cache {
		out = append(out, id)
	}
	return out, nil
}

func (f *FileLog) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var firstErr error
	for _, h := range f.handles {
		if err := h.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
