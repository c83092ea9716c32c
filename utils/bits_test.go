package utils

import (
	"errors"
	log "github.com/sirupsen/logrus"
	"testing"
)

func TestParseBits(t *testing.T) {
	b, err := ParseBits("0110")
	if err != nil {
		t.Fatal(err)
	}
	if !b.Equal(Bits{0, 1, 1, 0}) {
		t.Fatalf("unexpected bits %v", b)
	}
	if b.String() != "0110" {
		t.Fatalf("unexpected string %s", b.String())
	}
	if _, err := ParseBits("01x"); !errors.Is(err, InvalidBit) {
		t.Fatalf("expected InvalidBit, got %v", err)
	}
}

func TestBits_Index(t *testing.T) {
	b, _ := ParseBits("0001011000")
	cases := map[string]int{
		"":      0,
		"1":     3,
		"011":   4,
		"1000":  6,
		"11011": -1,
	}
	for pattern, expected := range cases {
		p, _ := ParseBits(pattern)
		if got := b.Index(p); got != expected {
			t.Errorf("Index(%q) = %d, expected %d", pattern, got, expected)
		}
	}
}

func TestBits_Tail(t *testing.T) {
	b, _ := ParseBits("110010")
	if b.Tail(3).String() != "010" {
		t.Fatalf("unexpected tail %s", b.Tail(3))
	}
	if b.Tail(10).String() != "110010" {
		t.Fatalf("unexpected tail %s", b.Tail(10))
	}
	log.WithField("value", b.Uint64()).Println("Packed")
	if b.Uint64() != 0x32 {
		t.Fatalf("unexpected uint64 %x", b.Uint64())
	}
}
