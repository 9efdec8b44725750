package queryir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/wapgraph/internal/rdf"
)

const (
	hasTarget = "http://www.w3.org/ns/oa#hasTarget"
	hasSource = "http://www.w3.org/ns/oa#hasSource"
)

func targetQuery(value string) Select {
	return Select{
		Graph: "g",
		Where: Conj(Or(
			Conj(T(Var("s"), IRI(hasTarget), IRI(value))),
			Conj(
				T(Var("s"), IRI(hasTarget), Var("t")),
				T(Var("t"), IRI(hasSource), IRI(value)),
			),
		)),
	}
}

func TestValidate_AcceptsUnionQuery(t *testing.T) {
	res := Validate(targetQuery("http://x/map1"))
	assert.True(t, res.Valid, res.Problems)
	assert.Empty(t, res.Problems)

	res = Validate(&Select{Graph: "g", Where: Conj(
		T(Var("s"), IRI(hasTarget), Var("v")),
		Contains{Var: "v", Substring: "map"},
	)})
	assert.True(t, res.Valid, res.Problems)
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{"nil", nil, "nil query"},
		{"nil pointer", (*Select)(nil), "nil query"},
		{"bad graph var", Select{Graph: "1g", Where: Conj(T(Var("s"), IRI(hasTarget), Var("o")))}, "graph variable"},
		{"empty where", Select{Graph: "g"}, "empty where clause"},
		{"variable predicate", Select{Graph: "g", Where: Conj(T(Var("s"), Var("p"), Var("o")))}, "predicate must be a constant IRI"},
		{"literal predicate", Select{Graph: "g", Where: Conj(T(Var("s"), Literal("p"), Var("o")))}, "predicate must be a constant IRI"},
		{"wildcard const", Select{Graph: "g", Where: Conj(T(Const{}, IRI(hasTarget), Var("o")))}, "constant has no term"},
		{"blank const", Select{Graph: "g", Where: Conj(T(Const{Term: rdf.Blank("x")}, IRI(hasTarget), Var("o")))}, "blank node"},
		{"bad var name", Select{Graph: "g", Where: Conj(T(Var("a b"), IRI(hasTarget), Var("o")))}, "not a valid name"},
		{"empty union", Select{Graph: "g", Where: Conj(Or())}, "union without alternatives"},
		{"empty alternative", Select{Graph: "g", Where: Conj(Or(Conj()))}, "empty group"},
		{"unbound contains", Select{Graph: "g", Where: Conj(
			T(Var("v"), IRI(hasTarget), Var("o")),
			Contains{Var: "v", Substring: "x"},
		)}, "not bound in object position"},
		{"empty substring", Select{Graph: "g", Where: Conj(
			T(Var("s"), IRI(hasTarget), Var("v")),
			Contains{Var: "v"},
		)}, "empty substring"},
		{"nil pattern", Select{Graph: "g", Where: Conj(nil)}, "nil pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.query)
			assert.False(t, res.Valid)
			assert.Contains(t, strings.Join(res.Problems, "\n"), tt.want)
		})
	}
}

func TestValidate_ContainsScopedToGroup(t *testing.T) {
	// ?v is bound in the first alternative only; the filter in the second
	// alternative cannot see it.
	q := Select{Graph: "g", Where: Conj(Or(
		Conj(T(Var("s"), IRI(hasTarget), Var("v"))),
		Conj(T(Var("s"), IRI(hasTarget), Var("t")), Contains{Var: "v", Substring: "x"}),
	))}

	res := Validate(q)

	assert.False(t, res.Valid)
	assert.Len(t, res.Problems, 1)
	assert.Contains(t, res.Problems[0], "where[0].alt[1][1]")
}
