package queryir

import (
	"fmt"
	"strings"

	"github.com/roach88/wapgraph/internal/rdf"
)

// SPARQL renders a query as SPARQL 1.1 text. It is used for diagnostics;
// the store executes the SQL compilation.
func SPARQL(q Query) (string, error) {
	if res := Validate(q); !res.Valid {
		return "", fmt.Errorf("invalid query: %s", strings.Join(res.Problems, "; "))
	}
	var sel Select
	switch query := q.(type) {
	case Select:
		sel = query
	case *Select:
		sel = *query
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT DISTINCT ?%s WHERE {\n", sel.Graph)
	fmt.Fprintf(&b, "  GRAPH ?%s {\n", sel.Graph)
	writeGroup(&b, sel.Where, "    ")
	b.WriteString("  }\n}\n")
	fmt.Fprintf(&b, "ORDER BY ?%s\n", sel.Graph)
	return b.String(), nil
}

func writeGroup(b *strings.Builder, g Group, indent string) {
	for _, p := range g.Patterns {
		switch pat := p.(type) {
		case Triple:
			fmt.Fprintf(b, "%s%s %s %s .\n", indent, node(pat.S), node(pat.P), node(pat.O))
		case Group:
			fmt.Fprintf(b, "%s{\n", indent)
			writeGroup(b, pat, indent+"  ")
			fmt.Fprintf(b, "%s}\n", indent)
		case Union:
			for i, alt := range pat.Alternatives {
				if i > 0 {
					fmt.Fprintf(b, "%sUNION\n", indent)
				}
				fmt.Fprintf(b, "%s{\n", indent)
				writeGroup(b, alt, indent+"  ")
				fmt.Fprintf(b, "%s}\n", indent)
			}
		case Contains:
			fmt.Fprintf(b, "%sFILTER(CONTAINS(STR(?%s), %s))\n", indent, pat.Var, rdf.Literal(pat.Substring))
		}
	}
}

func node(n Node) string {
	switch v := n.(type) {
	case Var:
		return "?" + string(v)
	case Const:
		return v.Term.String()
	}
	return ""
}
