// Copyright (C) 2025 ScyllaDB

package cqltype

import (
	"fmt"

	"github.com/scylladb/cql-decoder/pkg/cqlvalue"
	"github.com/scylladb/cql-decoder/pkg/marshal"
)

// readElementSize reads a collection count or element size field. The field
// is 4 bytes from protocol version 3 on and 2 bytes before that.
func readElementSize(buf *Buffer, protocolVersion int) (int32, error) {
	if protocolVersion >= 3 {
		p, err := buf.Consume(4)
		if err != nil {
			return 0, err
		}
		return marshal.DecInt32(p), nil
	}

	p, err := buf.Consume(2)
	if err != nil {
		return 0, err
	}
	return int32(marshal.DecInt16(p)), nil
}

// TupleType decodes a fixed sequence of declared subtypes. The subtype
// order equals declaration order and is fixed at construction.
type TupleType struct {
	subtypes []*TypeReference
}

func NewTupleType(subtypes []*TypeReference) *TupleType {
	return &TupleType{
		subtypes: subtypes,
	}
}

func (t *TupleType) release() {
	for _, subtype := range t.subtypes {
		subtype.Release()
	}
}

func (t *TupleType) Deserialize(buf *Buffer, protocolVersion int) (cqlvalue.Value, error) {
	// Tuples only exist from protocol version 3 on, so their elements are
	// always framed with at least that version.
	if protocolVersion < 3 {
		protocolVersion = 3
	}

	elems := make([]cqlvalue.Value, len(t.subtypes))
	for i, subtype := range t.subtypes {
		sizeData, err := buf.Consume(4)
		if err != nil {
			// Rows written before trailing tuple fields were added to
			// the schema run out early; the remaining positions stay
			// null.
			break
		}

		size := marshal.DecInt32(sizeData)
		if size < 0 {
			return cqlvalue.Null(), fmt.Errorf("can't deserialize tuple: negative item size %d: %w", size, ErrMalformed)
		}

		itemData, err := buf.Consume(int(size))
		if err != nil {
			return cqlvalue.Null(), fmt.Errorf("can't deserialize tuple item %d: %w", i, err)
		}

		v, err := subtype.Get().Deserialize(NewBuffer(itemData), protocolVersion)
		if err != nil {
			return cqlvalue.Null(), err
		}
		elems[i] = v
	}

	return cqlvalue.NewTuple(elems), nil
}

// ListType decodes a variable-length sequence of a single item type.
type ListType struct {
	itemType *TypeReference
}

func NewListType(itemType *TypeReference) *ListType {
	return &ListType{
		itemType: itemType,
	}
}

func (t *ListType) release() {
	t.itemType.Release()
}

func (t *ListType) Deserialize(buf *Buffer, protocolVersion int) (cqlvalue.Value, error) {
	count, err := readElementSize(buf, protocolVersion)
	if err != nil {
		return cqlvalue.Null(), fmt.Errorf("can't deserialize list length: %w", err)
	}
	if count < 0 {
		return cqlvalue.Null(), fmt.Errorf("can't deserialize list: negative item count %d: %w", count, ErrMalformed)
	}

	elems := make([]cqlvalue.Value, count)
	for i := range elems {
		size, err := readElementSize(buf, protocolVersion)
		if err != nil {
			// The window ended before the declared count was reached;
			// positions past the last decoded item stay unpopulated.
			break
		}

		if size < 0 {
			return cqlvalue.Null(), fmt.Errorf("can't deserialize list: negative item size %d: %w", size, ErrMalformed)
		}

		itemData, err := buf.Consume(int(size))
		if err != nil {
			return cqlvalue.Null(), fmt.Errorf("can't deserialize list item %d: %w", i, err)
		}

		v, err := t.itemType.Get().Deserialize(NewBuffer(itemData), protocolVersion)
		if err != nil {
			return cqlvalue.Null(), err
		}
		elems[i] = v
	}

	return cqlvalue.NewList(elems), nil
}
