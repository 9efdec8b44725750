package queryir

import (
	"fmt"
	"regexp"
)

var varName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidationResult lists the problems found in a query.
type ValidationResult struct {
	Valid    bool
	Problems []string
}

// Validate checks a query against the fragment the backends support:
//  1. the graph variable is a valid name
//  2. groups and unions are non-empty
//  3. predicates are constant IRIs and constants are never wildcards or
//     blank nodes
//  4. every Contains names a variable bound in object position within its
//     own group, with a non-empty substring
//
// Validate is a pure function with no side effects.
func Validate(q Query) ValidationResult {
	v := &validator{}
	v.validateQuery(q)
	return ValidationResult{Valid: len(v.problems) == 0, Problems: v.problems}
}

type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validateQuery(q Query) {
	switch query := q.(type) {
	case Select:
		v.validateSelect(query)
	case *Select:
		if query == nil {
			v.addProblem("nil query")
			return
		}
		v.validateSelect(*query)
	case nil:
		v.addProblem("nil query")
	default:
		v.addProblem("unknown query type %T", q)
	}
}

func (v *validator) validateSelect(sel Select) {
	if !varName.MatchString(string(sel.Graph)) {
		v.addProblem("graph variable %q is not a valid name", sel.Graph)
	}
	if len(sel.Where.Patterns) == 0 {
		v.addProblem("empty where clause")
	}
	v.validateGroup(sel.Where, "where")
}

func (v *validator) validateGroup(g Group, path string) {
	bound := map[Var]bool{}
	for _, p := range g.Patterns {
		if t, ok := p.(Triple); ok {
			if o, ok := t.O.(Var); ok {
				bound[o] = true
			}
		}
	}

	for i, p := range g.Patterns {
		at := fmt.Sprintf("%s[%d]", path, i)
		switch pat := p.(type) {
		case Triple:
			v.validateTriple(pat, at)
		case Group:
			if len(pat.Patterns) == 0 {
				v.addProblem("%s: empty group", at)
			}
			v.validateGroup(pat, at)
		case Union:
			if len(pat.Alternatives) == 0 {
				v.addProblem("%s: union without alternatives", at)
			}
			for j, alt := range pat.Alternatives {
				altPath := fmt.Sprintf("%s.alt[%d]", at, j)
				if len(alt.Patterns) == 0 {
					v.addProblem("%s: empty group", altPath)
				}
				v.validateGroup(alt, altPath)
			}
		case Contains:
			if pat.Substring == "" {
				v.addProblem("%s: empty substring for ?%s", at, pat.Var)
			}
			if !bound[pat.Var] {
				v.addProblem("%s: ?%s is not bound in object position", at, pat.Var)
			}
		case nil:
			v.addProblem("%s: nil pattern", at)
		default:
			v.addProblem("%s: unknown pattern type %T", at, p)
		}
	}
}

func (v *validator) validateTriple(t Triple, at string) {
	if c, ok := t.P.(Const); !ok || !c.Term.IsIRI() {
		v.addProblem("%s: predicate must be a constant IRI", at)
	}
	for _, n := range []Node{t.S, t.P, t.O} {
		switch node := n.(type) {
		case Var:
			if !varName.MatchString(string(node)) {
				v.addProblem("%s: variable %q is not a valid name", at, node)
			}
		case Const:
			if node.Term.IsAny() {
				v.addProblem("%s: constant has no term", at)
			}
			if node.Term.IsBlank() {
				v.addProblem("%s: blank node %s cannot be matched across graphs", at, node.Term)
			}
		case nil:
			v.addProblem("%s: missing node", at)
		}
	}
}
