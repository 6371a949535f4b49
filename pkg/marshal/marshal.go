// Copyright (C) 2025 ScyllaDB

// Package marshal implements the primitive wire codec shared by the CQL
// type deserializers: fixed-width big-endian integers and floats, booleans
// and two's-complement arbitrary-precision varints.
//
// The decode functions expect the caller to have already carved out a
// window of the right width; the buffer layer enforces that.
package marshal

import (
	"encoding/binary"
	"math"
	"math/big"
)

func DecInt16(p []byte) int16 {
	return int16(binary.BigEndian.Uint16(p))
}

func DecInt32(p []byte) int32 {
	return int32(binary.BigEndian.Uint32(p))
}

func DecInt64(p []byte) int64 {
	return int64(binary.BigEndian.Uint64(p))
}

func DecFloat32(p []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(p))
}

func DecFloat64(p []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(p))
}

// DecBool decodes a single byte; any nonzero value is true.
func DecBool(p []byte) bool {
	return p[0] != 0
}

// DecBigInt decodes a big-endian two's-complement signed integer of
// arbitrary length. An empty window decodes as zero.
func DecBigInt(p []byte) *big.Int {
	n := new(big.Int)
	if len(p) == 0 {
		return n
	}

	n.SetBytes(p)
	if p[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(p))*8))
	}

	return n
}

func EncInt16(v int16) []byte {
	p := make([]byte, 2)
	binary.BigEndian.PutUint16(p, uint16(v))
	return p
}

func EncInt32(v int32) []byte {
	p := make([]byte, 4)
	binary.BigEndian.PutUint32(p, uint32(v))
	return p
}

func EncInt64(v int64) []byte {
	p := make([]byte, 8)
	binary.BigEndian.PutUint64(p, uint64(v))
	return p
}

func EncFloat32(v float32) []byte {
	return EncInt32(int32(math.Float32bits(v)))
}

func EncFloat64(v float64) []byte {
	return EncInt64(int64(math.Float64bits(v)))
}

func EncBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// EncBigInt encodes n as the shortest big-endian two's-complement form
// that round-trips through DecBigInt.
func EncBigInt(n *big.Int) []byte {
	switch n.Sign() {
	case 0:
		return []byte{0}
	case 1:
		p := n.Bytes()
		if p[0]&0x80 != 0 {
			p = append([]byte{0}, p...)
		}
		return p
	default:
		// Two's complement of a negative n over the smallest width that
		// keeps the sign bit set.
		width := uint(n.BitLen()/8+1) * 8
		p := new(big.Int).Add(n, new(big.Int).Lsh(big.NewInt(1), width)).Bytes()
		for len(p) > 1 && p[0] == 0xff && p[1]&0x80 != 0 {
			p = p[1:]
		}
		return p
	}
}
