package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelope_UnmarshalJSON_DecodesPayloadToItsConcreteType(t *testing.T) {
	original := Envelope{
		EventID: "e1", Kind: KindLoanTaken, AgentID: "A", Week: 2, Day: 3,
		Payload: LoanTakenPayload{LoanID: "L1", LoanKind: "LINE_OF_CREDIT", Principal: 1000, InterestRate: 0.1},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Envelope
	require.NoError(t, json.Unmarshal(raw, &decoded))

	p, ok := decoded.Payload.(LoanTakenPayload)
	require.True(t, ok, "payload must decode to LoanTakenPayload, got %T", decoded.Payload)
	require.Equal(t, original.Payload, p)
	require.Equal(t, original.EventID, decoded.EventID)
	require.Equal(t, original.Kind, decoded.Kind)
}

func TestDecodePayload_UnknownKindIsAnError(t *testing.T) {
	_, err := DecodePayload(Kind("NotARegisteredKind"), []byte(`{}`))
	require.Error(t, err)
}

func TestDecodePayload_EveryRegisteredKindDecodesAnEmptyObject(t *testing.T) {
	for kind, typ := range payloadTypes {
		zero := []byte(`{}`)
		_ = typ
		_, err := DecodePayload(kind, zero)
		require.NoError(t, err, "kind %q failed to decode an empty payload object", kind)
	}
}
