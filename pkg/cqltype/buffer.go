// Copyright (C) 2025 ScyllaDB

package cqltype

import (
	"fmt"
)

// Buffer is a bounded cursor over a single value's byte window. Consumption
// is monotonic and never crosses the window boundary. The buffer never
// copies: consumed bytes alias the underlying window.
type Buffer struct {
	data []byte
	off  int
}

func NewBuffer(p []byte) *Buffer {
	return &Buffer{data: p}
}

// Consume returns the next n bytes and advances the cursor. It fails with
// ErrTruncated when fewer than n bytes remain; callers must treat that as
// fatal to the decode in progress.
func (b *Buffer) Consume(n int) ([]byte, error) {
	if n < 0 || n > b.Residual() {
		return nil, fmt.Errorf("can't consume %d bytes, %d remaining: %w", n, b.Residual(), ErrTruncated)
	}

	p := b.data[b.off : b.off+n]
	b.off += n

	return p, nil
}

// ConsumeAll returns every unconsumed byte.
func (b *Buffer) ConsumeAll() []byte {
	p := b.data[b.off:]
	b.off = len(b.data)

	return p
}

// Residual returns the number of unconsumed bytes.
func (b *Buffer) Residual() int {
	return len(b.data) - b.off
}
