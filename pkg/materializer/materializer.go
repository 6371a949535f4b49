// Copyright (C) 2025 ScyllaDB

// Package materializer converts primitive decoded values into richer host
// objects: structured UUIDs, arbitrary-precision decimals and UTC
// timestamps. The primitive form is never lossy, so materialization can be
// skipped entirely by callers that only need the wire-level shape.
package materializer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/inf.v0"

	"github.com/scylladb/cql-decoder/pkg/cqlvalue"
)

// ErrMaterialize reports a failure constructing a rich object from a valid
// primitive form, such as a UUID window that is not 16 octets.
var ErrMaterialize = errors.New("materialization error")

// Materialize converts v into its host representation: nil for null, the
// corresponding Go scalar for fixed-width kinds, uuid.UUID for raw UUID
// octets, *inf.Dec for decimals, time.Time in UTC for timestamps,
// *big.Int for arbitrary-precision integers and []interface{} for tuples
// and lists.
func Materialize(v cqlvalue.Value) (interface{}, error) {
	switch v.Kind {
	case cqlvalue.KindNull:
		return nil, nil

	case cqlvalue.KindBoolean:
		return v.Bool, nil

	case cqlvalue.KindInt32:
		return v.Int32, nil

	case cqlvalue.KindInt64:
		return v.Int64, nil

	case cqlvalue.KindFloat32:
		return v.Float32, nil

	case cqlvalue.KindFloat64:
		return v.Float64, nil

	case cqlvalue.KindBytes:
		return v.Bytes, nil

	case cqlvalue.KindText, cqlvalue.KindInetText:
		return v.Text, nil

	case cqlvalue.KindRawUUID:
		u, err := uuid.FromBytes(v.Bytes)
		if err != nil {
			return nil, fmt.Errorf("can't materialize uuid from %d octets: %w", len(v.Bytes), ErrMaterialize)
		}
		return u, nil

	case cqlvalue.KindTimestampMs:
		return time.UnixMilli(v.Int64).UTC(), nil

	case cqlvalue.KindDecimal:
		// inf.Dec carries unscaled*10^(-scale) directly, keeping the
		// exact primitive form out of binary floating point.
		return inf.NewDecBig(v.Int, inf.Scale(v.Scale)), nil

	case cqlvalue.KindInteger:
		return v.Int, nil

	case cqlvalue.KindTuple, cqlvalue.KindList:
		elems := make([]interface{}, len(v.Elems))
		for i, e := range v.Elems {
			var err error
			elems[i], err = Materialize(e)
			if err != nil {
				return nil, err
			}
		}
		return elems, nil

	default:
		return nil, fmt.Errorf("unsupported value kind %q: %w", v.Kind, ErrMaterialize)
	}
}
