package rdf

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/wapgraph/internal/vocab"
)

// Kind discriminates Term variants.
type Kind uint8

const (
	// KindAny is the zero kind. A Term of this kind matches anything.
	KindAny Kind = iota
	KindIRI
	KindBlank
	KindLiteral
)

// Term is a node or predicate in a triple.
//
// Term is comparable and may be used as a map key. Datatype and Lang are
// only set on literals; a literal typed xsd:string is stored as a plain
// literal so that both spellings compare equal.
type Term struct {
	Kind     Kind
	Value    string
	Datatype string
	Lang     string
}

// Any is the wildcard term for Match and RemoveMatching.
var Any Term

// IRI returns a durable identifier term.
func IRI(v string) Term {
	return Term{Kind: KindIRI, Value: v}
}

// Blank returns a blank node with the given label.
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: label}
}

// NewBlank returns a blank node with a fresh label that will not collide
// with labels minted for other graphs.
func NewBlank() Term {
	return Blank("b" + strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// Literal returns a plain string literal.
func Literal(v string) Term {
	return Term{Kind: KindLiteral, Value: v}
}

// TypedLiteral returns a literal with a datatype IRI.
func TypedLiteral(v, datatype string) Term {
	if datatype == "" || datatype == vocab.XSDString {
		return Literal(v)
	}
	return Term{Kind: KindLiteral, Value: v, Datatype: datatype}
}

// LangLiteral returns a language-tagged literal.
func LangLiteral(v, lang string) Term {
	if lang == "" {
		return Literal(v)
	}
	return Term{Kind: KindLiteral, Value: v, Lang: strings.ToLower(lang)}
}

func (t Term) IsAny() bool     { return t.Kind == KindAny }
func (t Term) IsIRI() bool     { return t.Kind == KindIRI }
func (t Term) IsBlank() bool   { return t.Kind == KindBlank }
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// String returns the N-Triples spelling of the term. Any renders as "*".
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + escapeIRI(t.Value) + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		s := `"` + escapeLiteral(t.Value) + `"`
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^<" + escapeIRI(t.Datatype) + ">"
		}
		return s
	default:
		return "*"
	}
}

// ParseTerm decodes the N-Triples spelling produced by String.
func ParseTerm(s string) (Term, error) {
	switch {
	case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">"):
		return IRI(unescapeIRI(s[1 : len(s)-1])), nil
	case strings.HasPrefix(s, "_:"):
		if len(s) == 2 {
			return Term{}, fmt.Errorf("empty blank node label")
		}
		return Blank(s[2:]), nil
	case strings.HasPrefix(s, `"`):
		return parseLiteral(s)
	default:
		return Term{}, fmt.Errorf("unrecognized term %q", s)
	}
}

func parseLiteral(s string) (Term, error) {
	end := -1
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			end = i
			break
		}
	}
	if end < 0 {
		return Term{}, fmt.Errorf("unterminated literal %q", s)
	}

	value := unescapeLiteral(s[1:end])
	rest := s[end+1:]
	switch {
	case rest == "":
		return Literal(value), nil
	case strings.HasPrefix(rest, "@"):
		return LangLiteral(value, rest[1:]), nil
	case strings.HasPrefix(rest, "^^<") && strings.HasSuffix(rest, ">"):
		return TypedLiteral(value, unescapeIRI(rest[3:len(rest)-1])), nil
	default:
		return Term{}, fmt.Errorf("malformed literal suffix %q", rest)
	}
}

var (
	literalEscaper   = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	literalUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\n`, "\n", `\r`, "\r", `\t`, "\t")
	iriEscaper       = strings.NewReplacer(`\`, `\\`, `>`, `\>`)
	iriUnescaper     = strings.NewReplacer(`\\`, `\`, `\>`, `>`)
)

func escapeLiteral(s string) string   { return literalEscaper.Replace(s) }
func unescapeLiteral(s string) string { return literalUnescaper.Replace(s) }
func escapeIRI(s string) string       { return iriEscaper.Replace(s) }
func unescapeIRI(s string) string     { return iriUnescaper.Replace(s) }

// Triple is one (subject, predicate, object) statement.
type Triple struct {
	S Term
	P Term
	O Term
}

// T is shorthand for constructing a Triple.
func T(s, p, o Term) Triple {
	return Triple{S: s, P: p, O: o}
}

// String returns the N-Triples line for the statement.
func (t Triple) String() string {
	return t.S.String() + " " + t.P.String() + " " + t.O.String() + " ."
}

// Matches reports whether t fits the pattern; Any positions match everything.
func (t Triple) Matches(s, p, o Term) bool {
	return termMatches(s, t.S) && termMatches(p, t.P) && termMatches(o, t.O)
}

func termMatches(pattern, t Term) bool {
	return pattern.Kind == KindAny || pattern == t
}
