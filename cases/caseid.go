package cases

import (
	"fmt"
	"math/rand"
	"time"
)

// idPrefix is the fixed textual prefix of every case identifier.
const idPrefix = "ATT"

// maxIDAttempts bounds the re-roll loop when generated ids collide with
// existing cases. The suffix space is 10^6, so hitting the bound requires a
// store with roughly that many cases.
const maxIDAttempts = 100

// IDGenerator produces case identifiers of the form ATT-<year>-<6-digit
// zero-padded suffix>, e.g. ATT-2025-004821. The suffix is random; callers
// resolve collisions by re-rolling against the set of known ids.
type IDGenerator struct {
	now  func() time.Time
	intn func(n int) int
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{
		now:  time.Now,
		intn: rand.Intn,
	}
}

// WithClock overrides the clock used for the year component.
func (g *IDGenerator) WithClock(now func() time.Time) *IDGenerator {
	g.now = now
	return g
}

// WithIntn overrides the random source. Tests use this to force collisions.
func (g *IDGenerator) WithIntn(intn func(n int) int) *IDGenerator {
	g.intn = intn
	return g
}

// Generate returns a fresh identifier not present in taken. It re-rolls on
// collision and fails once the attempt budget is exhausted.
func (g *IDGenerator) Generate(taken map[string]struct{}) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := fmt.Sprintf("%s-%d-%06d", idPrefix, g.now().Year(), g.intn(1000000))
		if _, exists := taken[id]; !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("cases: exhausted %d id generation attempts", maxIDAttempts)
}
