// Package idgen mints event identifiers and derives the deterministic
// per-tick random sources the game master and regulator draw from. Every
// seed is a pure function of (agent, week, day, counter) so that replaying
// the same command stream against the same seed always reproduces the same
// narrative and regulatory events.
package idgen

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand"

	"github.com/google/uuid"
)

// NewEventID mints a fresh event identifier. Unlike the deterministic seeds
// below, this is intentionally non-reproducible: event IDs are storage
// keys, not simulation inputs.
func NewEventID() string {
	return uuid.NewString()
}

// NewCommandID mints a fresh command identifier.
func NewCommandID() string {
	return uuid.NewString()
}

// Seed derives a deterministic 64-bit seed from the tuple that uniquely
// identifies one adjudication opportunity: an agent, a point in simulated
// time, and a counter distinguishing multiple draws within that point.
// Equal tuples always produce equal seeds, on any machine, in any process.
func Seed(agentID string, week, day, counter int) int64 {
	h := fnv.New64a()
	h.Write([]byte(agentID))
	var buf [24]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(int64(week)))
	binary.BigEndian.PutUint64(buf[8:16], uint64(int64(day)))
	binary.BigEndian.PutUint64(buf[16:24], uint64(int64(counter)))
	h.Write(buf[:])
	return int64(h.Sum64())
}

// RNG returns a *rand.Rand seeded deterministically for the given tuple.
// Callers should construct one RNG per adjudication pass rather than
// sharing a single source across agents, so that one agent's draw count
// never perturbs another's sequence.
func RNG(agentID string, week, day, counter int) *rand.Rand {
	return rand.New(rand.NewSource(Seed(agentID, week, day, counter)))
}
