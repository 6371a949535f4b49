// Copyright (C) 2025 ScyllaDB

package cqltype_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scylladb/cql-decoder/pkg/cqltype"
	"github.com/scylladb/cql-decoder/pkg/cqlvalue"
	"github.com/scylladb/cql-decoder/pkg/marshal"
)

// sized32 frames p with a 4-byte size, sized16 with a 2-byte size.
func sized32(p []byte) []byte {
	return append(marshal.EncInt32(int32(len(p))), p...)
}

func sized16(p []byte) []byte {
	return append(marshal.EncInt16(int16(len(p))), p...)
}

func concat(windows ...[]byte) []byte {
	var res []byte
	for _, w := range windows {
		res = append(res, w...)
	}
	return res
}

func TestTupleDeserialize(t *testing.T) {
	t.Parallel()

	ts := []struct {
		Name            string
		Descriptor      cqltype.Descriptor
		ProtocolVersion int
		Window          []byte
		ExpectedValue   cqlvalue.Value
		ExpectedErr     error
	}{
		{
			Name:            "full tuple",
			Descriptor:      composite("tuple", simple("int"), simple("text")),
			ProtocolVersion: 4,
			Window: concat(
				sized32(marshal.EncInt32(1234)),
				sized32([]byte("foo")),
			),
			ExpectedValue: cqlvalue.NewTuple([]cqlvalue.Value{
				cqlvalue.NewInt32(1234),
				cqlvalue.NewText("foo"),
			}),
		},
		{
			Name:            "element framing is at least v3 even on older connections",
			Descriptor:      composite("tuple", simple("int"), simple("text")),
			ProtocolVersion: 2,
			Window: concat(
				sized32(marshal.EncInt32(1234)),
				sized32([]byte("foo")),
			),
			ExpectedValue: cqlvalue.NewTuple([]cqlvalue.Value{
				cqlvalue.NewInt32(1234),
				cqlvalue.NewText("foo"),
			}),
		},
		{
			Name:            "grown schema backfills missing trailing fields with nulls",
			Descriptor:      composite("tuple", simple("int"), simple("text"), simple("boolean")),
			ProtocolVersion: 4,
			Window: concat(
				sized32(marshal.EncInt32(1234)),
				sized32([]byte("foo")),
			),
			ExpectedValue: cqlvalue.NewTuple([]cqlvalue.Value{
				cqlvalue.NewInt32(1234),
				cqlvalue.NewText("foo"),
				cqlvalue.Null(),
			}),
		},
		{
			Name:            "empty window backfills every field",
			Descriptor:      composite("tuple", simple("int"), simple("text")),
			ProtocolVersion: 4,
			Window:          []byte{},
			ExpectedValue: cqlvalue.NewTuple([]cqlvalue.Value{
				cqlvalue.Null(),
				cqlvalue.Null(),
			}),
		},
		{
			Name:            "negative item size",
			Descriptor:      composite("tuple", simple("int")),
			ProtocolVersion: 4,
			Window:          marshal.EncInt32(-1),
			ExpectedErr:     cqltype.ErrMalformed,
		},
		{
			Name:            "item size beyond window",
			Descriptor:      composite("tuple", simple("int")),
			ProtocolVersion: 4,
			Window:          concat(marshal.EncInt32(8), marshal.EncInt32(1234)),
			ExpectedErr:     cqltype.ErrTruncated,
		},
		{
			Name:            "item decode failure propagates",
			Descriptor:      composite("tuple", simple("text")),
			ProtocolVersion: 4,
			Window:          sized32([]byte{0xff, 0xfe}),
			ExpectedErr:     cqltype.ErrDecode,
		},
	}

	for _, test := range ts {
		t.Run(test.Name, func(t *testing.T) {
			t.Parallel()

			factory := cqltype.NewFactory()
			ref := resolve(t, factory, test.Descriptor)
			defer ref.Release()

			got, err := ref.Get().Deserialize(cqltype.NewBuffer(test.Window), test.ProtocolVersion)
			if !errors.Is(err, test.ExpectedErr) {
				t.Fatalf("expected error %v, got %v", test.ExpectedErr, err)
			}
			if err != nil {
				return
			}

			if diff := cmp.Diff(test.ExpectedValue, got, cmpOpts); diff != "" {
				t.Errorf("expected and decoded values differ: %s", diff)
			}
		})
	}
}

func TestListDeserialize(t *testing.T) {
	t.Parallel()

	ts := []struct {
		Name            string
		Descriptor      cqltype.Descriptor
		ProtocolVersion int
		Window          []byte
		ExpectedValue   cqlvalue.Value
		ExpectedErr     error
	}{
		{
			Name:            "v3 uses 4-byte count and sizes",
			Descriptor:      composite("list", simple("int")),
			ProtocolVersion: 3,
			Window: concat(
				marshal.EncInt32(2),
				sized32(marshal.EncInt32(7)),
				sized32(marshal.EncInt32(-7)),
			),
			ExpectedValue: cqlvalue.NewList([]cqlvalue.Value{
				cqlvalue.NewInt32(7),
				cqlvalue.NewInt32(-7),
			}),
		},
		{
			Name:            "v2 uses 2-byte count and sizes",
			Descriptor:      composite("list", simple("int")),
			ProtocolVersion: 2,
			Window: concat(
				marshal.EncInt16(2),
				sized16(marshal.EncInt32(7)),
				sized16(marshal.EncInt32(-7)),
			),
			ExpectedValue: cqlvalue.NewList([]cqlvalue.Value{
				cqlvalue.NewInt32(7),
				cqlvalue.NewInt32(-7),
			}),
		},
		{
			Name:            "empty list",
			Descriptor:      composite("list", simple("text")),
			ProtocolVersion: 4,
			Window:          marshal.EncInt32(0),
			ExpectedValue:   cqlvalue.NewList([]cqlvalue.Value{}),
		},
		{
			Name:            "exhausted window leaves trailing items unpopulated",
			Descriptor:      composite("list", simple("int")),
			ProtocolVersion: 4,
			Window: concat(
				marshal.EncInt32(3),
				sized32(marshal.EncInt32(7)),
			),
			ExpectedValue: cqlvalue.NewList([]cqlvalue.Value{
				cqlvalue.NewInt32(7),
				cqlvalue.Null(),
				cqlvalue.Null(),
			}),
		},
		{
			Name:            "negative item size at v3",
			Descriptor:      composite("list", simple("int")),
			ProtocolVersion: 3,
			Window:          concat(marshal.EncInt32(1), marshal.EncInt32(-2)),
			ExpectedErr:     cqltype.ErrMalformed,
		},
		{
			Name:            "negative item size at v2",
			Descriptor:      composite("list", simple("int")),
			ProtocolVersion: 2,
			Window:          concat(marshal.EncInt16(1), marshal.EncInt16(-2)),
			ExpectedErr:     cqltype.ErrMalformed,
		},
		{
			Name:            "negative item count",
			Descriptor:      composite("list", simple("int")),
			ProtocolVersion: 4,
			Window:          marshal.EncInt32(-1),
			ExpectedErr:     cqltype.ErrMalformed,
		},
		{
			Name:            "missing count",
			Descriptor:      composite("list", simple("int")),
			ProtocolVersion: 4,
			Window:          []byte{},
			ExpectedErr:     cqltype.ErrTruncated,
		},
		{
			Name:            "item size beyond window",
			Descriptor:      composite("list", simple("int")),
			ProtocolVersion: 4,
			Window:          concat(marshal.EncInt32(1), marshal.EncInt32(8), marshal.EncInt32(7)),
			ExpectedErr:     cqltype.ErrTruncated,
		},
		{
			Name:            "nested tuple keeps v3 framing inside a v2 list",
			Descriptor:      composite("list", composite("tuple", simple("int"), simple("text"))),
			ProtocolVersion: 2,
			Window: concat(
				marshal.EncInt16(1),
				sized16(concat(
					sized32(marshal.EncInt32(42)),
					sized32([]byte("bar")),
				)),
			),
			ExpectedValue: cqlvalue.NewList([]cqlvalue.Value{
				cqlvalue.NewTuple([]cqlvalue.Value{
					cqlvalue.NewInt32(42),
					cqlvalue.NewText("bar"),
				}),
			}),
		},
	}

	for _, test := range ts {
		t.Run(test.Name, func(t *testing.T) {
			t.Parallel()

			factory := cqltype.NewFactory()
			ref := resolve(t, factory, test.Descriptor)
			defer ref.Release()

			got, err := ref.Get().Deserialize(cqltype.NewBuffer(test.Window), test.ProtocolVersion)
			if !errors.Is(err, test.ExpectedErr) {
				t.Fatalf("expected error %v, got %v", test.ExpectedErr, err)
			}
			if err != nil {
				return
			}

			if diff := cmp.Diff(test.ExpectedValue, got, cmpOpts); diff != "" {
				t.Errorf("expected and decoded values differ: %s", diff)
			}
		})
	}
}
