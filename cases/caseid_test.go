package cases

import (
	"regexp"
	"testing"
	"time"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, 6, 15, 12, 0, 0, 0, time.UTC)
	}
}

func TestIDGenerator_Format(t *testing.T) {
	gen := NewIDGenerator().WithClock(fixedClock(2025)).WithIntn(func(int) int { return 4821 })

	id, err := gen.Generate(nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if id != "ATT-2025-004821" {
		t.Fatalf("expected ATT-2025-004821, got %s", id)
	}

	pattern := regexp.MustCompile(`^ATT-\d{4}-\d{6}$`)
	random, err := NewIDGenerator().WithClock(fixedClock(2025)).Generate(nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !pattern.MatchString(random) {
		t.Fatalf("id %s does not match ATT-<year>-<6 digits>", random)
	}
}

func TestIDGenerator_RerollsOnCollision(t *testing.T) {
	rolls := []int{7, 7, 42}
	gen := NewIDGenerator().WithClock(fixedClock(2025)).WithIntn(func(int) int {
		n := rolls[0]
		if len(rolls) > 1 {
			rolls = rolls[1:]
		}
		return n
	})

	taken := map[string]struct{}{"ATT-2025-000007": {}}
	id, err := gen.Generate(taken)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if id != "ATT-2025-000042" {
		t.Fatalf("expected re-roll to ATT-2025-000042, got %s", id)
	}
}

func TestIDGenerator_ExhaustsAttempts(t *testing.T) {
	gen := NewIDGenerator().WithClock(fixedClock(2025)).WithIntn(func(int) int { return 1 })

	taken := map[string]struct{}{"ATT-2025-000001": {}}
	if _, err := gen.Generate(taken); err == nil {
		t.Fatal("expected error when every roll collides")
	}
}
