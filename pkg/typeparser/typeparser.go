// Copyright (C) 2025 ScyllaDB

// Package typeparser parses short CQL type representations, such as
// "list<tuple<int,text>>", into type descriptors consumable by the cqltype
// factory. It is the descriptor source for the CLI; callers with real
// schema metadata can implement cqltype.Descriptor directly instead.
package typeparser

import (
	"fmt"
	"strings"

	"github.com/scylladb/cql-decoder/pkg/cqltype"
)

// ParsedType is a parsed CQL type string. It implements cqltype.Descriptor.
type ParsedType struct {
	name     string
	subtypes []cqltype.Descriptor
}

var _ cqltype.Descriptor = &ParsedType{}

func (t *ParsedType) TypeName() string {
	return t.name
}

func (t *ParsedType) Subtypes() []cqltype.Descriptor {
	return t.subtypes
}

// Parse parses a short CQL type representation. Type names are case
// insensitive and frozen<...> wrappers are transparent.
func Parse(s string) (*ParsedType, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return nil, fmt.Errorf("can't parse empty type string")
	}

	open := strings.IndexByte(s, '<')
	if open < 0 {
		if strings.ContainsAny(s, ">,") {
			return nil, fmt.Errorf("can't parse type %q: unexpected character", s)
		}
		return &ParsedType{name: strings.ToLower(s)}, nil
	}

	if !strings.HasSuffix(s, ">") {
		return nil, fmt.Errorf("can't parse type %q: unbalanced angle brackets", s)
	}

	name := strings.ToLower(strings.TrimSpace(s[:open]))
	inner := s[open+1 : len(s)-1]

	if name == "frozen" {
		return Parse(inner)
	}

	parts, err := splitComposite(inner)
	if err != nil {
		return nil, fmt.Errorf("can't parse type %q: %w", s, err)
	}

	subtypes := make([]cqltype.Descriptor, 0, len(parts))
	for _, part := range parts {
		subtype, err := Parse(part)
		if err != nil {
			return nil, err
		}
		subtypes = append(subtypes, subtype)
	}

	return &ParsedType{name: name, subtypes: subtypes}, nil
}

// splitComposite splits a composite type's parameter list on top level
// commas, keeping nested angle brackets intact.
func splitComposite(s string) ([]string, error) {
	var parts []string
	var segment strings.Builder
	depth := 0

	for _, r := range s {
		switch {
		case r == ',' && depth == 0:
			parts = append(parts, segment.String())
			segment.Reset()
			continue
		case r == '<':
			depth++
		case r == '>':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced angle brackets")
			}
		}
		segment.WriteRune(r)
	}

	if depth != 0 {
		return nil, fmt.Errorf("unbalanced angle brackets")
	}

	parts = append(parts, segment.String())

	return parts, nil
}
