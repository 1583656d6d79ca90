// Package filterspec parses boto-style attribute filter strings into the
// named value-set constraints used for EC2 inventory queries.
//
// A raw spec is a comma-separated list of clauses, each "name=value" with
// multiple values joined by colons:
//
//	tag:role=db,instance-state-name=running
//	tag:env=prod:staging
//
// Clauses repeating a name within one spec union their value sets.
package filterspec

import (
	"fmt"
	"strings"
)

// Spec is one parsed filter: attribute names mapped to their allowed values.
// Name and value order is first-seen; values are unique per name.
type Spec struct {
	// Raw is the original filter string, kept for duplicate detection and
	// for naming the spec in warnings.
	Raw string

	names  []string
	values map[string][]string
}

// ParseError describes a malformed clause within a filter string.
type ParseError struct {
	Raw    string
	Clause string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed filter clause %q in %q: want exactly one '='", e.Clause, e.Raw)
}

// Parse parses a single raw filter string. A clause with zero or more than
// one '=' yields a *ParseError naming the offending clause.
func Parse(raw string) (Spec, error) {
	spec := Spec{
		Raw:    raw,
		values: make(map[string][]string),
	}

	for _, clause := range strings.Split(raw, ",") {
		parts := strings.Split(clause, "=")
		if len(parts) != 2 {
			return Spec{}, &ParseError{Raw: raw, Clause: clause}
		}

		name := parts[0]
		if _, seen := spec.values[name]; !seen {
			spec.names = append(spec.names, name)
		}
		for _, value := range strings.Split(parts[1], ":") {
			spec.add(name, value)
		}
	}

	return spec, nil
}

// add appends value to name's set unless already present.
func (s *Spec) add(name, value string) {
	for _, v := range s.values[name] {
		if v == value {
			return
		}
	}
	s.values[name] = append(s.values[name], value)
}

// Names returns the attribute names in first-seen order.
func (s Spec) Names() []string { return s.names }

// Values returns the allowed values for an attribute name.
func (s Spec) Values(name string) []string { return s.values[name] }

// Len returns the number of distinct attribute names.
func (s Spec) Len() int { return len(s.names) }

// String renders the spec in its canonical clause form.
func (s Spec) String() string {
	clauses := make([]string, 0, len(s.names))
	for _, name := range s.names {
		clauses = append(clauses, name+"="+strings.Join(s.values[name], ":"))
	}
	return strings.Join(clauses, ",")
}
