// Copyright (C) 2025 ScyllaDB

package cqltype

// releaser is implemented by composite types that hold subtype references.
type releaser interface {
	release()
}

// TypeReference is an ownership handle over a CqlType. Borrowed references
// point at simple-type singletons owned by the factory and alive for its
// whole lifetime. Owned references exclusively hold a freshly constructed
// composite; releasing one cascades to the subtype references it holds.
type TypeReference struct {
	typ      CqlType
	factory  *Factory
	owned    bool
	released bool
}

func newBorrowedReference(typ CqlType) *TypeReference {
	return &TypeReference{
		typ: typ,
	}
}

func newOwnedReference(typ CqlType, factory *Factory) *TypeReference {
	factory.liveOwned.Inc()

	return &TypeReference{
		typ:     typ,
		factory: factory,
		owned:   true,
	}
}

func (r *TypeReference) Get() CqlType {
	return r.typ
}

// Release frees an owned composite and cascades to its subtype references.
// Releasing a borrowed reference is a no-op. Release is idempotent.
func (r *TypeReference) Release() {
	if !r.owned || r.released {
		return
	}
	r.released = true

	if rel, ok := r.typ.(releaser); ok {
		rel.release()
	}

	r.factory.liveOwned.Dec()
}
