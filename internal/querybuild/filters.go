package querybuild

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/wapgraph/internal/waperr"
)

// Property is a WADM property usable as a query filter.
type Property string

const (
	PropertyTarget   Property = "target"
	PropertyBody     Property = "body"
	PropertySelector Property = "selector"
	PropertyCreator  Property = "creator"
)

// Properties lists the supported properties in build order.
var Properties = []Property{PropertyTarget, PropertyBody, PropertySelector, PropertyCreator}

// ParseProperty resolves a property name, case-insensitively.
func ParseProperty(s string) (Property, error) {
	p := Property(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Properties {
		if p == known {
			return p, nil
		}
	}
	return "", waperr.Newf(waperr.CodeInvalidRequest, "unknown property %q", s)
}

// MatchType selects exact or substring matching.
type MatchType int

const (
	MatchExact MatchType = iota
	MatchContains
)

func (m MatchType) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchContains:
		return "contains"
	default:
		return fmt.Sprintf("MatchType(%d)", int(m))
	}
}

// Criterion is one property filter.
type Criterion struct {
	Property Property
	Value    string
	Match    MatchType
}

// Filters is the full request. It is a list rather than a map so that a
// request naming one property twice can be detected and rejected.
type Filters []Criterion

// Validate rejects requests that cannot be built:
//   - no criteria: NO_FILTER_PROVIDED
//   - exact and contains for one property: CONFLICTING_MATCH_TYPE
//   - unknown properties, empty values, repeated criteria: INVALID_REQUEST
func (f Filters) Validate() error {
	if len(f) == 0 {
		return waperr.New(waperr.CodeNoFilterProvided, "at least one filter is required")
	}
	seen := map[Property]MatchType{}
	for _, c := range f {
		if _, err := ParseProperty(string(c.Property)); err != nil {
			return err
		}
		if c.Match != MatchExact && c.Match != MatchContains {
			return waperr.Newf(waperr.CodeInvalidRequest, "unknown match type %s", c.Match)
		}
		if c.Value == "" {
			return waperr.Newf(waperr.CodeInvalidRequest, "empty value for %s", c.Property)
		}
		if prev, ok := seen[c.Property]; ok {
			if prev != c.Match {
				return waperr.Newf(waperr.CodeConflictingMatchType, "%s requested with both exact and contains matching", c.Property)
			}
			return waperr.Newf(waperr.CodeInvalidRequest, "%s requested more than once", c.Property)
		}
		seen[c.Property] = c.Match
	}
	return nil
}

// Sorted returns the criteria in Properties order, so equal requests build
// identical queries.
func (f Filters) Sorted() Filters {
	out := make(Filters, len(f))
	copy(out, f)
	rank := map[Property]int{}
	for i, p := range Properties {
		rank[p] = i
	}
	sort.SliceStable(out, func(i, j int) bool { return rank[out[i].Property] < rank[out[j].Property] })
	return out
}

// String renders the filters for logs.
func (f Filters) String() string {
	parts := make([]string, len(f))
	for i, c := range f {
		parts[i] = fmt.Sprintf("%s %s %q", c.Property, c.Match, c.Value)
	}
	return strings.Join(parts, ", ")
}
