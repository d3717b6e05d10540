package agenda

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ID strategy names accepted in configuration.
const (
	IDStrategyTimestamp = "timestamp"
	IDStrategyUUID      = "uuid"
)

// IDStrategies lists every accepted ID strategy.
var IDStrategies = []string{IDStrategyTimestamp, IDStrategyUUID}

// maxIDAttempts bounds regeneration when a generated ID is already taken.
const maxIDAttempts = 64

// IDGenerator produces candidate contact IDs. Candidates may collide with
// existing IDs; the [Repository] checks and asks again.
type IDGenerator interface {
	NextID() string
}

// IDGeneratorFunc adapts a function to [IDGenerator].
type IDGeneratorFunc func() string

// NextID calls f.
func (f IDGeneratorFunc) NextID() string { return f() }

// TimestampIDs generates decimal Unix-millisecond IDs. Successive IDs from
// one generator are strictly increasing even when the clock stalls or steps
// back, so regeneration after a collision always yields a new candidate.
type TimestampIDs struct {
	now  func() time.Time
	last int64
}

// NewTimestampIDs returns a [TimestampIDs] reading time from now.
// A nil now uses [time.Now].
func NewTimestampIDs(now func() time.Time) *TimestampIDs {
	if now == nil {
		now = time.Now
	}

	return &TimestampIDs{now: now}
}

func (g *TimestampIDs) NextID() string {
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}

	g.last = ms

	return strconv.FormatInt(ms, 10)
}

// skipTo makes the next ID larger than ms.
func (g *TimestampIDs) skipTo(ms int64) {
	if ms > g.last {
		g.last = ms
	}
}

// UUIDIDs generates time-ordered UUIDv7 IDs.
type UUIDIDs struct{}

func (UUIDIDs) NextID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewIDGenerator returns the generator for a configured strategy name.
func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strategy {
	case IDStrategyTimestamp, "":
		return NewTimestampIDs(nil), nil
	case IDStrategyUUID:
		return UUIDIDs{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy: %q", strategy)
	}
}

// uniqueID asks gen for candidates until one is free in doc. After a
// collision, a timestamp generator jumps past the largest numeric ID in doc,
// so runs of future IDs (from an import, say) cannot exhaust the attempts.
func uniqueID(doc *Document, gen IDGenerator) (string, error) {
	for range maxIDAttempts {
		id := gen.NextID()
		if id != "" && !doc.Has(id) {
			return id, nil
		}

		ts, ok := gen.(*TimestampIDs)
		if !ok {
			continue
		}

		if high, found := doc.maxNumericID(); found {
			ts.skipTo(high)
		}
	}

	return "", ErrIDGenerationFailed
}
