package eventlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/laundroverse/simcore/internal/events"
)

func TestFileLog_ReopenedLogRoundTripsConcretePayloadTypes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := OpenFileLog(dir)
	require.NoError(t, err)

	_, err = first.Append(ctx, "A", events.Envelope{
		EventID: "e1", Kind: events.KindAgentCreated, AgentID: "A", Timestamp: time.Now(),
		Payload: events.AgentCreatedPayload{InitialCash: 500},
	})
	require.NoError(t, err)
	_, err = first.Append(ctx, "A", events.Envelope{
		EventID: "e2", Kind: events.KindLoanTaken, AgentID: "A", Timestamp: time.Now(),
		Payload: events.LoanTakenPayload{LoanID: "L1", LoanKind: "LINE_OF_CREDIT", Principal: 1000, InterestRate: 0.1},
	})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	reopened, err := OpenFileLog(dir)
	require.NoError(t, err)

	stream, err := reopened.LoadAll(ctx, "A")
	require.NoError(t, err)
	require.Len(t, stream, 2)

	created, ok := stream[0].Payload.(events.AgentCreatedPayload)
	require.True(t, ok, "payload must decode to its concrete type, not map[string]interface{}")
	require.Equal(t, 500.0, created.InitialCash)

	loan, ok := stream[1].Payload.(events.LoanTakenPayload)
	require.True(t, ok, "payload must decode to its concrete type, not map[string]interface{}")
	require.Equal(t, "L1", loan.LoanID)
	require.Equal(t, 1000.0, loan.Principal)
}
