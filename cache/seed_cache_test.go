package cache

import (
	"errors"
	"github.com/fernandosanchezjr/goscrambler/cinit"
	"github.com/fernandosanchezjr/goscrambler/generators"
	log "github.com/sirupsen/logrus"
	"testing"
)

func TestBuild(t *testing.T) {
	const bits = 64
	sc, err := Build(bits, cinit.DefaultSlot, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Len() != cinit.IdCount {
		t.Fatalf("expected %d entries, got %d", cinit.IdCount, sc.Len())
	}
	if err = sc.Validate(bits); err != nil {
		t.Fatal(err)
	}
	for _, id := range []int{0, 1, 4242, 65535} {
		cInit, _ := cinit.PDCCH(id)
		expected, _ := generators.Generate(bits, cInit)
		entry, entryErr := sc.Entry(id)
		if entryErr != nil {
			t.Fatal(entryErr)
		}
		if !entry.Unpack().Equal(expected) {
			t.Fatalf("entry %d differs from generated sequence", id)
		}
	}
	log.WithFields(log.Fields{
		"size":   sc.Size(),
		"digest": sc.Digest(),
	}).Println("Seed cache")
}

func TestBuild_WorkerCountDoesNotMatter(t *testing.T) {
	a, err := Build(40, cinit.DefaultSlot, 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(40, cinit.DefaultSlot, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) || a.Digest() != b.Digest() {
		t.Fatal("caches built with different worker counts differ")
	}
}

func TestBuild_InvalidBits(t *testing.T) {
	if _, err := Build(0, cinit.DefaultSlot, 0); !errors.Is(err, InvalidBits) {
		t.Fatalf("expected InvalidBits, got %v", err)
	}
}

func TestSeedCache_Validate(t *testing.T) {
	sc, err := Build(32, cinit.DefaultSlot, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err = sc.Validate(64); !errors.Is(err, CacheMismatch) {
		t.Fatalf("expected CacheMismatch, got %v", err)
	}
	sc.Entries[9].Length = 31
	if err = sc.Validate(32); !errors.Is(err, CacheMismatch) {
		t.Fatalf("expected CacheMismatch for a short entry, got %v", err)
	}
	sc.Entries = sc.Entries[:10]
	if err = sc.Validate(32); !errors.Is(err, CacheCorrupt) {
		t.Fatalf("expected CacheCorrupt, got %v", err)
	}
	if _, err = sc.Entry(70000); !errors.Is(err, cinit.InvalidScramblingId) {
		t.Fatalf("expected InvalidScramblingId, got %v", err)
	}
}
