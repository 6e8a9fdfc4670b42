package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/laundroverse/simcore/internal/events"
)

// SQLiteLog is an optional durable backend. It stores every agent's stream
// in a single events table ordered by an autoincrement sequence column, so
// per-agent ordering falls out of primary-key order rather than needing a
// separate per-agent counter.
type SQLiteLog struct {
	conn *sqlx.DB
}

// OpenSQLiteLog opens or creates a SQLite-backed log at path.
func OpenSQLiteLog(path string) (*SQLiteLog, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("eventlog: open db: %w", err)
	}
	l := &SQLiteLog{conn: conn}
	if err := l.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("eventlog: migrate: %w", err)
	}
	return l, nil
}

func (l *SQLiteLog) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		agent_id TEXT NOT NULL,
		event_id TEXT NOT NULL,
		event_kind TEXT NOT NULL,
		week INTEGER NOT NULL,
		day INTEGER NOT NULL,
		correlation_id TEXT,
		timestamp TEXT NOT NULL,
		payload_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_agent ON events(agent_id, seq);
	`
	_, err := l.conn.Exec(schema)
	return err
}

type eventRow struct {
	Seq           int    `db:"seq"`
	AgentID       string `db:"agent_id"`
	EventID       string `db:"event_id"`
	EventKind     string `db:"event_kind"`
	Week          int    `db:"week"`
	Day           int    `db:"day"`
	CorrelationID string `db:"correlation_id"`
	Timestamp     string `db:"timestamp"`
	PayloadJSON   string `db:"payload_json"`
}

func (l *SQLiteLog) Append(ctx context.Context, agentID string, env events.Envelope) (int, error) {
	payload, err := json.Marshal(env.Payload)
	if err != nil {
		return 0, fmt.Errorf("eventlog: encode payload: %w", err)
	}

	tx, err := l.conn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("eventlog: begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO events
		(agent_id, event_id, event_kind, week, day, correlation_id, timestamp, payload_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		agentID, env.EventID, string(env.Kind), env.Week, env.Day,
		env.CorrelationID, env.Timestamp.Format(time.RFC3339Nano),
		string(payload))
	if err != nil {
		return 0, fmt.Errorf("eventlog: insert: %w", err)
	}

	var seq int
	if err := tx.GetContext(ctx, &seq, `SELECT COUNT(*) - 1 FROM events WHERE agent_id = ?`, agentID); err != nil {
		return 0, fmt.Errorf("eventlog: seq lookup: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("eventlog: commit: %w", err)
	}

	_ = res
	return seq, nil
}

func (l *SQLiteLog) loadRows(ctx context.Context, agentID string, limitClause string, args ...any) ([]events.Envelope, error) {
	var rows []eventRow
	query := `SELECT seq, agent_id, event_id, event_kind, week, day, correlation_id, timestamp, payload_json
		FROM events WHERE agent_id = ? ORDER BY seq ASC` + limitClause
	allArgs := append([]any{agentID}, args...)
	if err := l.conn.SelectContext(ctx, &rows, query, allArgs...); err != nil {
		return nil, fmt.Errorf("eventlog: select: %w", err)
	}

	out := make([]events.Envelope, len(rows))
	for i, r := range rows {
		kind := events.Kind(r.EventKind)
		payload, err := events.DecodePayload(kind, []byte(r.PayloadJSON))
		if err != nil {
			return nil, fmt.Errorf("eventlog: decode payload: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("eventlog: parse timestamp: %w", err)
		}
		out[i] = events.Envelope{
			EventID:       r.EventID,
			Kind:          kind,
			AgentID:       r.AgentID,
			Week:          r.Week,
			Day:           r.Day,
			Timestamp:     ts,
			Payload:       payload,
			CorrelationID: r.CorrelationID,
		}
	}
	return out, nil
}

func (l *SQLiteLog) LoadAll(ctx context.Context, agentID string) ([]events.Envelope, error) {
	return l.loadRows(ctx, agentID, "")
}

func (l *SQLiteLog) LoadForAgent(ctx context.Context, agentID string) ([]events.Envelope, error) {
	return l.LoadAll(ctx, agentID)
}

func (l *SQLiteLog) Tail(ctx context.Context, agentID string, n int) ([]events.Envelope, error) {
	all, err := l.LoadAll(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if n >= len(all) {
		return all, nil
	}
	return all[len(all)-n:], nil
}

func (l *SQLiteLog) AgentIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := l.conn.SelectContext(ctx, &ids, `SELECT DISTINCT agent_id FROM events`)
	if err != nil {
		return nil, fmt.Errorf("eventlog: agent ids: %w", err)
	}
	return ids, nil
}

func (l *SQLiteLog) Close() error {
	return l.conn.Close()
}
