package querybuild

import (
	"context"
	"fmt"

	"github.com/roach88/wapgraph/internal/queryir"
	"github.com/roach88/wapgraph/internal/querysql"
	"github.com/roach88/wapgraph/internal/vocab"
)

// GraphVar is the projected named-graph variable of every built query.
const GraphVar queryir.Var = "g"

var (
	hasTarget   = queryir.IRI(vocab.OAHasTarget)
	hasSource   = queryir.IRI(vocab.OAHasSource)
	hasBody     = queryir.IRI(vocab.OAHasBody)
	hasSelector = queryir.IRI(vocab.OAHasSelector)
	rdfValue    = queryir.IRI(vocab.RDFValue)
	creator     = queryir.IRI(vocab.DCTermsCreator)
	foafName    = queryir.IRI(vocab.FOAFName)
)

// Build validates the filters and returns the query selecting every graph
// that satisfies all of them.
func Build(f Filters) (queryir.Select, error) {
	if err := f.Validate(); err != nil {
		return queryir.Select{}, err
	}
	q := queryir.Select{Graph: GraphVar}
	for _, c := range f.Sorted() {
		clause, err := buildClause(c)
		if err != nil {
			return queryir.Select{}, err
		}
		q.Where.Patterns = append(q.Where.Patterns, clause)
	}
	return q, nil
}

// vars names the variables of one clause. Clauses never share variables;
// they only share the graph.
type vars struct {
	subject, resource, value queryir.Var
}

func varsFor(p Property) vars {
	return vars{
		subject:  queryir.Var(string(p) + "Subject"),
		resource: queryir.Var(string(p) + "Resource"),
		value:    queryir.Var(string(p) + "Value"),
	}
}

// shape is one statement shape of a property. iri reports whether the
// exact value is an IRI or a literal at that position.
type shape struct {
	patterns func(v vars, value queryir.Node) []queryir.Pattern
	iri      bool
}

var shapes = map[Property][]shape{
	// ?s oa:hasTarget <v>  |  ?s oa:hasTarget ?r . ?r oa:hasSource <v>
	PropertyTarget: {
		{iri: true, patterns: func(v vars, value queryir.Node) []queryir.Pattern {
			return []queryir.Pattern{queryir.T(v.subject, hasTarget, value)}
		}},
		{iri: true, patterns: func(v vars, value queryir.Node) []queryir.Pattern {
			return []queryir.Pattern{
				queryir.T(v.subject, hasTarget, v.resource),
				queryir.T(v.resource, hasSource, value),
			}
		}},
	},
	// ?s oa:hasBody <v>  |  ?s oa:hasBody ?r . ?r rdf:value "v"
	PropertyBody: {
		{iri: true, patterns: func(v vars, value queryir.Node) []queryir.Pattern {
			return []queryir.Pattern{queryir.T(v.subject, hasBody, value)}
		}},
		{iri: false, patterns: func(v vars, value queryir.Node) []queryir.Pattern {
			return []queryir.Pattern{
				queryir.T(v.subject, hasBody, v.resource),
				queryir.T(v.resource, rdfValue, value),
			}
		}},
	},
	// ?s oa:hasSelector ?r . ?r rdf:value "v"
	PropertySelector: {
		{iri: false, patterns: func(v vars, value queryir.Node) []queryir.Pattern {
			return []queryir.Pattern{
				queryir.T(v.subject, hasSelector, v.resource),
				queryir.T(v.resource, rdfValue, value),
			}
		}},
	},
	// ?s dcterms:creator <v>  |  ?s dcterms:creator ?r . ?r foaf:name "v"
	PropertyCreator: {
		{iri: true, patterns: func(v vars, value queryir.Node) []queryir.Pattern {
			return []queryir.Pattern{queryir.T(v.subject, creator, value)}
		}},
		{iri: false, patterns: func(v vars, value queryir.Node) []queryir.Pattern {
			return []queryir.Pattern{
				queryir.T(v.subject, creator, v.resource),
				queryir.T(v.resource, foafName, value),
			}
		}},
	},
}

func buildClause(c Criterion) (queryir.Pattern, error) {
	alternatives, ok := shapes[c.Property]
	if !ok {
		return nil, fmt.Errorf("no query shape for property %q", c.Property)
	}
	v := varsFor(c.Property)

	var groups []queryir.Group
	for _, s := range alternatives {
		var value queryir.Node
		var filter []queryir.Pattern
		switch {
		case c.Match == MatchContains:
			value = v.value
			filter = []queryir.Pattern{queryir.Contains{Var: v.value, Substring: c.Value}}
		case s.iri:
			value = queryir.IRI(c.Value)
		default:
			value = queryir.Literal(c.Value)
		}
		groups = append(groups, queryir.Conj(append(s.patterns(v, value), filter...)...))
	}
	if len(groups) == 1 {
		return groups[0], nil
	}
	return queryir.Or(groups...), nil
}

// NameSelector runs a compiled query returning graph names.
type NameSelector interface {
	SelectNames(ctx context.Context, query string, args ...any) ([]string, error)
}

// Find builds, compiles and runs the query, returning the matching graph
// names in binary order.
func Find(ctx context.Context, db NameSelector, f Filters) ([]string, error) {
	q, err := Build(f)
	if err != nil {
		return nil, err
	}
	sql, params, err := querysql.NewSQLCompiler().Compile(q)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}
	names, err := db.SelectNames(ctx, sql, params...)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}
	return names, nil
}

// Explain renders the built query as SPARQL.
func Explain(f Filters) (string, error) {
	q, err := Build(f)
	if err != nil {
		return "", err
	}
	return queryir.SPARQL(q)
}
