// Copyright (C) 2025 ScyllaDB

// Package cqltype implements the CQL wire value type grammar: a bounded
// byte window, one deserializer per CQL type, and a factory resolving
// external type descriptors into a shareable type graph.
package cqltype

import (
	"fmt"
	"net/netip"
	"unicode/utf8"

	"github.com/scylladb/cql-decoder/pkg/cqlvalue"
	"github.com/scylladb/cql-decoder/pkg/marshal"
)

// CqlType deserializes a single value from a bounded window. The protocol
// version only affects composite framing; scalar types ignore it.
type CqlType interface {
	Deserialize(buf *Buffer, protocolVersion int) (cqlvalue.Value, error)
}

// fixedWidthType covers the fixed-width scalar types, which differ only in
// their width and primitive decode function.
type fixedWidthType struct {
	name   string
	width  int
	decode func(p []byte) cqlvalue.Value
}

func (t *fixedWidthType) Deserialize(buf *Buffer, _ int) (cqlvalue.Value, error) {
	p, err := buf.Consume(t.width)
	if err != nil {
		return cqlvalue.Null(), fmt.Errorf("can't deserialize %s: %w", t.name, err)
	}

	return t.decode(p), nil
}

// bytesType consumes the whole window as raw octets. An empty window is an
// empty blob, never an error.
type bytesType struct{}

func (bytesType) Deserialize(buf *Buffer, _ int) (cqlvalue.Value, error) {
	return cqlvalue.NewBytes(buf.ConsumeAll()), nil
}

type utf8TextType struct{}

func (utf8TextType) Deserialize(buf *Buffer, _ int) (cqlvalue.Value, error) {
	p := buf.ConsumeAll()
	if !utf8.Valid(p) {
		return cqlvalue.Null(), fmt.Errorf("can't deserialize text: invalid UTF-8 sequence: %w", ErrDecode)
	}

	return cqlvalue.NewText(string(p)), nil
}

// rawUUIDType hands the window over untouched. The length is intentionally
// not validated here; the materializer rejects anything that is not
// 16 octets when it constructs the UUID.
type rawUUIDType struct{}

func (rawUUIDType) Deserialize(buf *Buffer, _ int) (cqlvalue.Value, error) {
	return cqlvalue.NewRawUUID(buf.ConsumeAll()), nil
}

type inetAddressType struct{}

func (inetAddressType) Deserialize(buf *Buffer, _ int) (cqlvalue.Value, error) {
	size := buf.Residual()
	if size != 4 && size != 16 {
		return cqlvalue.Null(), fmt.Errorf("can't deserialize inet: expected a 4 or 16 octet address, got %d octets: %w", size, ErrMalformed)
	}

	addr, ok := netip.AddrFromSlice(buf.ConsumeAll())
	if !ok {
		return cqlvalue.Null(), fmt.Errorf("can't deserialize inet: can't convert address to presentation form: %w", ErrDecode)
	}

	return cqlvalue.NewInetText(addr.String()), nil
}

// integerType decodes the whole window as a two's-complement big-endian
// arbitrary-precision integer. An empty window decodes as zero.
type integerType struct{}

func (integerType) Deserialize(buf *Buffer, _ int) (cqlvalue.Value, error) {
	return cqlvalue.NewInteger(marshal.DecBigInt(buf.ConsumeAll())), nil
}

type decimalType struct{}

func (decimalType) Deserialize(buf *Buffer, _ int) (cqlvalue.Value, error) {
	p, err := buf.Consume(4)
	if err != nil {
		return cqlvalue.Null(), fmt.Errorf("can't deserialize decimal scale: %w", err)
	}
	scale := marshal.DecInt32(p)

	return cqlvalue.NewDecimal(marshal.DecBigInt(buf.ConsumeAll()), scale), nil
}

func newSimpleTypes() map[string]CqlType {
	textType := utf8TextType{}
	uuidType := rawUUIDType{}

	return map[string]CqlType{
		"int": &fixedWidthType{name: "int", width: 4, decode: func(p []byte) cqlvalue.Value {
			return cqlvalue.NewInt32(marshal.DecInt32(p))
		}},
		"bigint": &fixedWidthType{name: "bigint", width: 8, decode: func(p []byte) cqlvalue.Value {
			return cqlvalue.NewInt64(marshal.DecInt64(p))
		}},
		"float": &fixedWidthType{name: "float", width: 4, decode: func(p []byte) cqlvalue.Value {
			return cqlvalue.NewFloat32(marshal.DecFloat32(p))
		}},
		"double": &fixedWidthType{name: "double", width: 8, decode: func(p []byte) cqlvalue.Value {
			return cqlvalue.NewFloat64(marshal.DecFloat64(p))
		}},
		"boolean": &fixedWidthType{name: "boolean", width: 1, decode: func(p []byte) cqlvalue.Value {
			return cqlvalue.NewBoolean(marshal.DecBool(p))
		}},
		"timestamp": &fixedWidthType{name: "timestamp", width: 8, decode: func(p []byte) cqlvalue.Value {
			return cqlvalue.NewTimestampMs(marshal.DecInt64(p))
		}},
		"blob":     bytesType{},
		"text":     textType,
		"varchar":  textType,
		"uuid":     uuidType,
		"timeuuid": uuidType,
		"inet":     inetAddressType{},
		"varint":   integerType{},
		"decimal":  decimalType{},
	}
}
