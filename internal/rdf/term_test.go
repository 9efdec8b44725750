package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wapgraph/internal/vocab"
)

func TestTerm_StringParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want string
	}{
		{"iri", IRI("http://x/a"), "<http://x/a>"},
		{"blank", Blank("b1"), "_:b1"},
		{"plain literal", Literal("find me"), `"find me"`},
		{"escaped literal", Literal("line\n\"quoted\" \\ tab\t"), `"line\n\"quoted\" \\ tab\t"`},
		{"typed literal", TypedLiteral("3", vocab.XSDNonNegativeInteger), `"3"^^<http://www.w3.org/2001/XMLSchema#nonNegativeInteger>`},
		{"lang literal", LangLiteral("Karte", "DE"), `"Karte"@de`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.String())

			parsed, err := ParseTerm(tt.term.String())
			require.NoError(t, err)
			assert.Equal(t, tt.term, parsed)
		})
	}
}

func TestTypedLiteral_XSDStringIsPlain(t *testing.T) {
	assert.Equal(t, Literal("x"), TypedLiteral("x", vocab.XSDString))
	assert.Equal(t, Literal("x"), TypedLiteral("x", ""))
}

func TestParseTerm_Errors(t *testing.T) {
	for _, s := range []string{"", "plain", "_:", `"open`, `"x"^^dt`} {
		_, err := ParseTerm(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestNewBlank_Unique(t *testing.T) {
	a, b := NewBlank(), NewBlank()
	assert.True(t, a.IsBlank())
	assert.NotEqual(t, a, b)
}

func TestTriple_Matches(t *testing.T) {
	tr := T(IRI("http://x/s"), IRI(vocab.RDFType), IRI(vocab.OAAnnotation))

	assert.True(t, tr.Matches(Any, Any, Any))
	assert.True(t, tr.Matches(IRI("http://x/s"), Any, Any))
	assert.True(t, tr.Matches(Any, IRI(vocab.RDFType), IRI(vocab.OAAnnotation)))
	assert.False(t, tr.Matches(IRI("http://x/other"), Any, Any))
	assert.False(t, tr.Matches(Any, Any, Literal(vocab.OAAnnotation)))
}
