package generators

import (
	"errors"
	"github.com/fernandosanchezjr/goscrambler/utils"
	"testing"
)

func TestFindRepetitions(t *testing.T) {
	const limit = 3000
	seq, _ := Generate(limit, 7733248)
	pattern := seq[100:108]
	var expected []int
	for i := 0; i+len(pattern) <= limit; i++ {
		if seq[i:i+len(pattern)].Equal(pattern) {
			expected = append(expected, i)
		}
	}
	var found []int
	generated, err := FindRepetitions(7733248, pattern, 0, limit, func(index int) bool {
		found = append(found, index)
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	if generated != limit {
		t.Fatalf("expected %d generated bits, got %d", limit, generated)
	}
	if len(found) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, found)
	}
	for i := range found {
		if found[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, found)
		}
	}
}

func TestFindRepetitions_Stop(t *testing.T) {
	seq, _ := Generate(64, 0)
	generated, err := FindRepetitions(0, seq[:16], 32, 10000, func(index int) bool {
		if index != 0 {
			t.Fatalf("unexpected index %d", index)
		}
		return false
	})
	if err != nil {
		t.Fatal(err)
	}
	if generated != 16 {
		t.Fatalf("expected to stop after 16 bits, got %d", generated)
	}
}

func TestFindRepetitions_InvalidPattern(t *testing.T) {
	noop := func(int) bool { return true }
	if _, err := FindRepetitions(0, nil, 32, 10, noop); !errors.Is(err, InvalidPattern) {
		t.Fatalf("expected InvalidPattern, got %v", err)
	}
	if _, err := FindRepetitions(0, make(utils.Bits, 33), 32, 10, noop); !errors.Is(err, InvalidPattern) {
		t.Fatalf("expected InvalidPattern, got %v", err)
	}
	if _, err := FindRepetitions(0, utils.Bits{1}, 32, -1, noop); !errors.Is(err, InvalidLength) {
		t.Fatalf("expected InvalidLength, got %v", err)
	}
}
