package generators

import "github.com/fernandosanchezjr/goscrambler/utils"

// Reference materializes x1 and x2 up to Nc + length + 31 and reads the
// sequence at offset Nc. It is slower than Generate and kept to cross-check
// it.
func Reference(length int, cInit int64) (utils.Bits, error) {
	if err := checkLength(length); err != nil {
		return nil, err
	}
	c := uint32(cInit)
	size := length + GoldSequenceLength + Nc
	x1 := make([]byte, size)
	x2 := make([]byte, size)
	ret := make(utils.Bits, length)

	x1[0] = 1
	for n := 0; n < GoldSequenceLength; n++ {
		x2[n] = byte(c>>uint(n)) & 0x1
	}
	for n := 0; n < Nc+length; n++ {
		x1[n+31] = (x1[n+3] + x1[n]) % 2
		x2[n+31] = (x2[n+3] + x2[n+2] + x2[n+1] + x2[n]) % 2
	}
	for n := 0; n < length; n++ {
		ret[n] = (x1[n+Nc] + x2[n+Nc]) % 2
	}
	return ret, nil
}
