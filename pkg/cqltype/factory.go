// Copyright (C) 2025 ScyllaDB

package cqltype

import (
	"fmt"

	"go.uber.org/atomic"
)

// Descriptor describes a CQL type as exposed by schema metadata: a
// canonical type name or composite kind, and ordered subtypes for
// composite kinds.
type Descriptor interface {
	// TypeName returns the canonical simple-type name or composite kind,
	// such as "int", "tuple" or "list".
	TypeName() string

	// Subtypes returns the ordered nested descriptors of a composite
	// type, or nil for simple types.
	Subtypes() []Descriptor
}

const (
	tupleTypeName = "tuple"
	listTypeName  = "list"
)

// Factory resolves type descriptors into type references. Simple types are
// cached as singletons for the factory's lifetime; composite types are
// constructed per resolution and owned by the returned reference.
//
// The singleton map is built at construction and never mutated, so a fully
// constructed factory and its resolved type graph can be shared across
// concurrent decodes without locking.
type Factory struct {
	simpleTypes map[string]CqlType

	liveOwned atomic.Int64
}

func NewFactory() *Factory {
	return &Factory{
		simpleTypes: newSimpleTypes(),
	}
}

// Reference resolves desc into a type reference, either borrowed from the
// simple-type cache or exclusively owning a freshly constructed composite.
func (f *Factory) Reference(desc Descriptor) (*TypeReference, error) {
	name := desc.TypeName()
	if typ, ok := f.simpleTypes[name]; ok {
		return newBorrowedReference(typ), nil
	}

	switch name {
	case tupleTypeName:
		subtypes, err := f.resolveSubtypes(desc)
		if err != nil {
			return nil, fmt.Errorf("can't resolve tuple subtypes: %w", err)
		}

		return newOwnedReference(NewTupleType(subtypes), f), nil

	case listTypeName:
		subtypes, err := f.resolveSubtypes(desc)
		if err != nil {
			return nil, fmt.Errorf("can't resolve list subtypes: %w", err)
		}

		if len(subtypes) != 1 {
			releaseAll(subtypes)
			return nil, fmt.Errorf("list must have exactly one subtype, got %d: %w", len(subtypes), ErrMalformed)
		}

		return newOwnedReference(NewListType(subtypes[0]), f), nil

	default:
		return nil, fmt.Errorf("unsupported CQL type %q: %w", name, ErrMalformed)
	}
}

// resolveSubtypes resolves every subtype of desc in declaration order. On
// the first failure it releases the references resolved so far and
// propagates the original error; the composite is never partially built.
func (f *Factory) resolveSubtypes(desc Descriptor) ([]*TypeReference, error) {
	descs := desc.Subtypes()
	if descs == nil {
		return nil, fmt.Errorf("descriptor %q has no subtypes: %w", desc.TypeName(), ErrMalformed)
	}

	subtypes := make([]*TypeReference, 0, len(descs))
	for i, sub := range descs {
		if sub == nil {
			releaseAll(subtypes)
			return nil, fmt.Errorf("subtype %d of %q is nil: %w", i, desc.TypeName(), ErrMalformed)
		}

		ref, err := f.Reference(sub)
		if err != nil {
			releaseAll(subtypes)
			return nil, err
		}

		subtypes = append(subtypes, ref)
	}

	return subtypes, nil
}

// LiveOwned returns the number of owned composite references created by
// this factory and not yet released.
func (f *Factory) LiveOwned() int64 {
	return f.liveOwned.Load()
}

func releaseAll(refs []*TypeReference) {
	for _, ref := range refs {
		ref.Release()
	}
}
