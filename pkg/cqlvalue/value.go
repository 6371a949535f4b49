// Copyright (C) 2025 ScyllaDB

// Package cqlvalue defines the tagged result of decoding a single CQL wire
// value. Values are primitive forms; converting them into richer host
// objects is the materializer's job.
package cqlvalue

import (
	"math/big"
)

// Kind discriminates the variants of Value.
type Kind int

const (
	// KindNull is the zero Kind, so an unset Value reads as null.
	KindNull Kind = iota
	KindBoolean
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindBytes
	KindText
	KindRawUUID
	KindInetText
	KindTimestampMs
	KindDecimal
	KindInteger
	KindTuple
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBytes:
		return "bytes"
	case KindText:
		return "text"
	case KindRawUUID:
		return "uuid"
	case KindInetText:
		return "inet"
	case KindTimestampMs:
		return "timestamp"
	case KindDecimal:
		return "decimal"
	case KindInteger:
		return "varint"
	case KindTuple:
		return "tuple"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is the tagged union produced by a decode. Only the payload fields
// relevant to its Kind are meaningful.
type Value struct {
	Kind Kind

	Bool    bool
	Int32   int32
	Int64   int64 // TimestampMs carries epoch milliseconds here.
	Float32 float32
	Float64 float64
	Bytes   []byte // Raw octets; RawUUID uses this too.
	Text    string // Decoded text; InetText uses this too.
	Int     *big.Int
	Scale   int32 // Decimal only.
	Elems   []Value
}

func Null() Value {
	return Value{}
}

func NewBoolean(v bool) Value {
	return Value{Kind: KindBoolean, Bool: v}
}

func NewInt32(v int32) Value {
	return Value{Kind: KindInt32, Int32: v}
}

func NewInt64(v int64) Value {
	return Value{Kind: KindInt64, Int64: v}
}

func NewFloat32(v float32) Value {
	return Value{Kind: KindFloat32, Float32: v}
}

func NewFloat64(v float64) Value {
	return Value{Kind: KindFloat64, Float64: v}
}

func NewBytes(p []byte) Value {
	return Value{Kind: KindBytes, Bytes: p}
}

func NewText(s string) Value {
	return Value{Kind: KindText, Text: s}
}

func NewRawUUID(p []byte) Value {
	return Value{Kind: KindRawUUID, Bytes: p}
}

func NewInetText(s string) Value {
	return Value{Kind: KindInetText, Text: s}
}

func NewTimestampMs(ms int64) Value {
	return Value{Kind: KindTimestampMs, Int64: ms}
}

// NewDecimal represents the logical value unscaled * 10^(-scale).
func NewDecimal(unscaled *big.Int, scale int32) Value {
	return Value{Kind: KindDecimal, Int: unscaled, Scale: scale}
}

func NewInteger(n *big.Int) Value {
	return Value{Kind: KindInteger, Int: n}
}

func NewTuple(elems []Value) Value {
	return Value{Kind: KindTuple, Elems: elems}
}

func NewList(elems []Value) Value {
	return Value{Kind: KindList, Elems: elems}
}
