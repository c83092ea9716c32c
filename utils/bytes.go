package utils

import (
	"encoding/binary"
	"encoding/hex"
)

func Uint64ToBytes(v uint64) []byte {
	var ret [8]byte
	binary.BigEndian.PutUint64(ret[:], v)
	return ret[:]
}

func BytesToUint64(data []byte) uint64 {
	if len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

func Uint16ToBytes(v uint16) []byte {
	var ret [2]byte
	binary.BigEndian.PutUint16(ret[:], v)
	return ret[:]
}

func hexString(data []byte) string {
	return hex.EncodeToString(data)
}
