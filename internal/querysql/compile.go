package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/wapgraph/internal/queryir"
	"github.com/roach88/wapgraph/internal/rdf"
)

// SQLCompiler compiles graph-pattern queries to parameterized SQL over the
// quads table.
//
// Every query ends in ORDER BY name COLLATE BINARY so results are
// deterministic. Values are always bound as parameters, never interpolated.
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// Compile converts a query to (sql, params, error).
//
// The result selects the distinct graph names satisfying every top-level
// clause. Each conjunctive group becomes one EXISTS sub-select that joins
// one quads alias per triple pattern, correlated on the graph name; a
// union becomes an OR of such sub-selects.
func (c *SQLCompiler) Compile(q queryir.Query) (string, []any, error) {
	if res := queryir.Validate(q); !res.Valid {
		return "", nil, fmt.Errorf("invalid query: %s", strings.Join(res.Problems, "; "))
	}
	switch query := q.(type) {
	case queryir.Select:
		return c.compileSelect(query)
	case *queryir.Select:
		return c.compileSelect(*query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func (c *SQLCompiler) compileSelect(sel queryir.Select) (string, []any, error) {
	var clauses []string
	var params []any

	// loose top-level triples and filters form one implicit group
	var loose queryir.Group
	for _, p := range sel.Where.Patterns {
		switch pat := p.(type) {
		case queryir.Union:
			sql, ps, err := c.compileUnion(pat)
			if err != nil {
				return "", nil, err
			}
			clauses = append(clauses, sql)
			params = append(params, ps...)
		case queryir.Group:
			sql, ps, err := c.compileExists(pat)
			if err != nil {
				return "", nil, err
			}
			clauses = append(clauses, sql)
			params = append(params, ps...)
		default:
			loose.Patterns = append(loose.Patterns, p)
		}
	}
	if len(loose.Patterns) > 0 {
		sql, ps, err := c.compileExists(loose)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, sql)
		params = append(params, ps...)
	}

	sql := fmt.Sprintf("SELECT DISTINCT g.name FROM graphs g WHERE %s ORDER BY g.name COLLATE BINARY",
		strings.Join(clauses, " AND "))
	return sql, params, nil
}

func (c *SQLCompiler) compileUnion(u queryir.Union) (string, []any, error) {
	var parts []string
	var params []any
	for _, alt := range u.Alternatives {
		sql, ps, err := c.compileExists(alt)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, ps...)
	}
	return "(" + strings.Join(parts, " OR ") + ")", params, nil
}

// column is where a variable was first bound.
type column struct {
	alias string
	name  string
}

// compileExists turns a conjunctive group into one EXISTS sub-select.
// Nested groups are flattened; nested unions are not supported.
func (c *SQLCompiler) compileExists(g queryir.Group) (string, []any, error) {
	triples, filters, err := flatten(g)
	if err != nil {
		return "", nil, err
	}
	if len(triples) == 0 {
		return "", nil, fmt.Errorf("group has no triple patterns")
	}

	var from, conds []string
	var params []any
	bound := map[queryir.Var]column{}
	objects := map[queryir.Var]string{}

	for i, t := range triples {
		alias := fmt.Sprintf("q%d", i)
		from = append(from, "quads "+alias)
		conds = append(conds, alias+".graph = g.name")
		for _, pos := range []struct {
			node queryir.Node
			name string
		}{{t.S, "subject"}, {t.P, "predicate"}, {t.O, "object"}} {
			switch n := pos.node.(type) {
			case queryir.Const:
				conds = append(conds, fmt.Sprintf("%s.%s = ?", alias, pos.name))
				params = append(params, n.Term.String())
			case queryir.Var:
				if prev, ok := bound[n]; ok {
					conds = append(conds, fmt.Sprintf("%s.%s = %s.%s", alias, pos.name, prev.alias, prev.name))
				} else {
					bound[n] = column{alias: alias, name: pos.name}
				}
				if pos.name == "object" {
					if _, ok := objects[n]; !ok {
						objects[n] = alias
					}
				}
			}
		}
	}

	for _, f := range filters {
		alias, ok := objects[f.Var]
		if !ok {
			return "", nil, fmt.Errorf("?%s is not bound in object position", f.Var)
		}
		conds = append(conds, fmt.Sprintf("%s.object_kind <> ? AND instr(%s.object_value, ?) > 0", alias, alias))
		params = append(params, int(rdf.KindBlank), f.Substring)
	}

	sql := fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE %s)", strings.Join(from, ", "), strings.Join(conds, " AND "))
	return sql, params, nil
}

func flatten(g queryir.Group) ([]queryir.Triple, []queryir.Contains, error) {
	var triples []queryir.Triple
	var filters []queryir.Contains
	for _, p := range g.Patterns {
		switch pat := p.(type) {
		case queryir.Triple:
			triples = append(triples, pat)
		case queryir.Contains:
			filters = append(filters, pat)
		case queryir.Group:
			t, f, err := flatten(pat)
			if err != nil {
				return nil, nil, err
			}
			triples = append(triples, t...)
			filters = append(filters, f...)
		case queryir.Union:
			return nil, nil, fmt.Errorf("nested union is not supported")
		default:
			return nil, nil, fmt.Errorf("unsupported pattern type: %T", p)
		}
	}
	return triples, filters, nil
}
