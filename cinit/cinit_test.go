package cinit

import (
	"errors"
	"testing"
)

func TestPDCCH_ReferenceValues(t *testing.T) {
	cases := map[int]int64{
		0:     7733248,
		1:     23199746,
		65535: 2139881470,
	}
	for id, expected := range cases {
		got, err := PDCCH(id)
		if err != nil {
			t.Fatal(err)
		}
		if got != expected {
			t.Errorf("scrambling id %d: expected %d, got %d", id, expected, got)
		}
	}
}

func TestCompute_Slot(t *testing.T) {
	got, err := Compute(7, Slot{SymbolsPerSlot: 14})
	if err != nil {
		t.Fatal(err)
	}
	if got != 1966094 {
		t.Fatalf("expected 1966094, got %d", got)
	}
}

func TestCompute_InvalidScramblingId(t *testing.T) {
	for _, id := range []int{-1, 65536, 1 << 20} {
		if _, err := PDCCH(id); !errors.Is(err, InvalidScramblingId) {
			t.Errorf("id %d: expected InvalidScramblingId, got %v", id, err)
		}
	}
}

func TestPDCCHDMRS(t *testing.T) {
	for _, id := range []int{0, 1, 1000, 65535} {
		narrow, _ := Compute(id, DefaultSlot)
		wide, err := PDCCHDMRS(id, DefaultSlot)
		if err != nil {
			t.Fatal(err)
		}
		if wide%(1<<31) != narrow {
			t.Errorf("id %d: %d and %d should agree modulo 2^31", id, wide, narrow)
		}
		if wide < 0 || wide >= 1<<32 {
			t.Errorf("id %d: %d out of range", id, wide)
		}
	}
}

func TestPBCHDMRS(t *testing.T) {
	got, err := PBCHDMRS(0, 0, 0)
	if err != nil || got != 2112 {
		t.Fatalf("expected 2112, got %d (%v)", got, err)
	}
	got, err = PBCHDMRS(3, 1, 1005)
	if err != nil || got != 4129281 {
		t.Fatalf("expected 4129281, got %d (%v)", got, err)
	}
	if _, err = PBCHDMRS(4, 0, 0); !errors.Is(err, InvalidSSBIndex) {
		t.Fatalf("expected InvalidSSBIndex, got %v", err)
	}
}

func TestPDCCHScrambler(t *testing.T) {
	if got := PDCCHScrambler(0x4601, 500); got != 1174471156 {
		t.Fatalf("expected 1174471156, got %d", got)
	}
	if got := PDCCHScrambler(0xffff, 0xffff); got != 0x7fffffff {
		t.Fatalf("expected 0x7fffffff, got %x", got)
	}
}
