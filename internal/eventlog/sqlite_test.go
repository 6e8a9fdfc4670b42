package eventlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/laundroverse/simcore/internal/events"
)

func TestSQLiteLog_LoadAllRoundTripsConcretePayloadTypes(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events.db")

	log, err := OpenSQLiteLog(path)
	require.NoError(t, err)
	defer log.Close()

	_, err = log.Append(ctx, "A", events.Envelope{
		EventID: "e1", Kind: events.KindDefaultRecorded, AgentID: "A", Timestamp: time.Now(),
		Payload: events.DefaultRecordedPayload{LoanID: "L1", AmountOwed: 800, PenaltyAmount: 100},
	})
	require.NoError(t, err)

	stream, err := log.LoadAll(ctx, "A")
	require.NoError(t, err)
	require.Len(t, stream, 1)

	p, ok := stream[0].Payload.(events.DefaultRecordedPayload)
	require.True(t, ok, "payload must decode to its concrete type, not map[string]interface{}")
	require.Equal(t, "L1", p.LoanID)
	require.Equal(t, 800.0, p.AmountOwed)
	require.Equal(t, 100.0, p.PenaltyAmount)
}
