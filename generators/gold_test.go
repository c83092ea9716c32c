package generators

import (
	"errors"
	"github.com/fernandosanchezjr/goscrambler/utils"
	log "github.com/sirupsen/logrus"
	"testing"
)

var referenceVectors = map[int64]string{
	0:         "0000001000011010000100100111101000100101100101010000001101010110",
	7733248:   "1111101010010110000001000110110001111010000111001010011011110100",
	23199746:  "1101110001100010101010110101001111110100110010001100111001110001",
	0x1234567: "0000011001010011100001101001010001011010111101011001000010100111",
}

func TestGenerate_ReferenceVectors(t *testing.T) {
	for cInit, expected := range referenceVectors {
		seq, err := Generate(64, cInit)
		if err != nil {
			t.Fatal(err)
		}
		if seq.String() != expected {
			t.Errorf("c_init %d: expected %s, got %s", cInit, expected, seq)
		}
	}
}

func TestGenerate_Long(t *testing.T) {
	const expectedTail = "0001010001111000001010011101111101101111011100101100111001001000"
	seq, err := Generate(8192, 0)
	if err != nil {
		t.Fatal(err)
	}
	if seq.Tail(64).String() != expectedTail {
		t.Fatalf("unexpected tail %s", seq.Tail(64))
	}
	again, _ := Generate(8192, 0)
	if !again.Equal(seq) {
		t.Fatal("generation is not deterministic")
	}
	short, _ := Generate(31, 0)
	if !short.Equal(seq[:31]) {
		t.Fatal("shorter sequence should be a prefix")
	}
}

func TestGenerate_MatchesReference(t *testing.T) {
	cInits := []int64{0, 1, 2, 7733248, 0x7fffffff, 0xffffffff, 1 << 40, -3, 2139881470}
	lengths := []int{0, 1, 2, 30, 31, 32, 257, 1600, 4096}
	for _, cInit := range cInits {
		for _, length := range lengths {
			incremental, err := Generate(length, cInit)
			if err != nil {
				t.Fatal(err)
			}
			reference, err := Reference(length, cInit)
			if err != nil {
				t.Fatal(err)
			}
			if !incremental.Equal(reference) {
				t.Fatalf("c_init %d length %d: incremental and reference differ", cInit, length)
			}
		}
	}
}

func TestGenerate_MatchesReferenceRandom(t *testing.T) {
	rs := utils.NewRandomSource(20201)
	count := 2000
	if testing.Short() {
		count = 200
	}
	for i := 0; i < count; i++ {
		cInit := int64(rs.Uint64())
		length := rs.Intn(700)
		incremental, err := Generate(length, cInit)
		if err != nil {
			t.Fatal(err)
		}
		reference, err := Reference(length, cInit)
		if err != nil {
			t.Fatal(err)
		}
		if !incremental.Equal(reference) {
			t.Fatalf("c_init %d length %d: incremental and reference differ", cInit, length)
		}
	}
	log.WithFields(log.Fields{"seed": rs.Seed, "cases": count}).Println("Random equivalence")
}

func TestGenerate_ReducesCInit(t *testing.T) {
	a, _ := Generate(128, -3)
	b, _ := Generate(128, 0xfffffffd)
	c, _ := Generate(128, 0x1fffffffd)
	if !a.Equal(b) || !b.Equal(c) {
		t.Fatal("c_init should be reduced modulo 2^32")
	}
}

func TestGenerate_InvalidLength(t *testing.T) {
	if _, err := Generate(-1, 0); !errors.Is(err, InvalidLength) {
		t.Fatalf("expected InvalidLength, got %v", err)
	}
	if _, err := Reference(-1, 0); !errors.Is(err, InvalidLength) {
		t.Fatalf("expected InvalidLength, got %v", err)
	}
	if _, err := GeneratePacked(-5, 0); !errors.Is(err, InvalidLength) {
		t.Fatalf("expected InvalidLength, got %v", err)
	}
	seq, err := Generate(0, 0)
	if err != nil || len(seq) != 0 {
		t.Fatalf("zero length should be empty, got %v %v", seq, err)
	}
}

func TestGeneratePacked(t *testing.T) {
	seq, _ := Generate(1000, 7733248)
	packed, err := GeneratePacked(1000, 7733248)
	if err != nil {
		t.Fatal(err)
	}
	if !packed.Unpack().Equal(seq) {
		t.Fatal("packed sequence differs")
	}
}

func TestGold_Memory(t *testing.T) {
	const keep = 256
	g := NewGold(0, keep)
	var produced utils.Bits
	for i := 0; i < 1000; i++ {
		produced = append(produced, g.Next())
	}
	if g.Produced() != 1000 {
		t.Fatalf("unexpected produced count %d", g.Produced())
	}
	if g.Memory().Len() != keep {
		t.Fatalf("expected memory length %d, got %d", keep, g.Memory().Len())
	}
	if !g.Memory().Bits().Equal(produced.Tail(keep)) {
		t.Fatal("memory should hold the last produced bits in order")
	}
	log.WithField("memory", g.Memory().Bits().Tail(32).String()).Println("Gold memory")
}

func BenchmarkGenerate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Generate(8192, int64(i))
	}
}

func BenchmarkReference(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Reference(8192, int64(i))
	}
}
