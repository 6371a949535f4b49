// Copyright (C) 2025 ScyllaDB

package cqltype

import (
	"errors"
)

var (
	// ErrTruncated reports that the window could not supply a requested
	// byte count.
	ErrTruncated = errors.New("unexpected end of buffer")

	// ErrMalformed reports a structurally invalid encoding or an invalid
	// type descriptor.
	ErrMalformed = errors.New("malformed value")

	// ErrDecode reports content that does not decode, such as an invalid
	// UTF-8 sequence.
	ErrDecode = errors.New("decode error")
)
