package codec

import (
	"sort"
	"strings"
)

// Format identifies a textual RDF syntax.
type Format string

// Supported formats.
const (
	FormatNQuads   Format = "nquads"
	FormatNTriples Format = "ntriples"
	FormatJSONLD   Format = "jsonld"
)

// FormatInfo provides metadata about a format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatNQuads: {
		Name:        FormatNQuads,
		MIMEType:    "application/n-quads",
		Extension:   ".nq",
		Description: "N-Quads - line-based RDF with graph labels",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// LookupFormat resolves a format name, MIME type or file extension.
// MIME parameters such as profile or charset are ignored.
func LookupFormat(id string) (FormatInfo, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if i := strings.IndexByte(id, ';'); i >= 0 {
		id = strings.TrimSpace(id[:i])
	}
	if info, ok := FormatRegistry[Format(id)]; ok {
		return info, true
	}
	for _, info := range FormatRegistry {
		if info.MIMEType == id || info.Extension == id {
			return info, true
		}
	}
	return FormatInfo{}, false
}

// FormatNames returns the registered format names in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(FormatRegistry))
	for name := range FormatRegistry {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}
