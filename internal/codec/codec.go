// Package codec converts triple graphs to and from textual RDF syntaxes.
//
// Parsing and serialization are delegated to github.com/cayleygraph/quad.
// Graph labels in N-Quads input are ignored: a payload always describes one
// graph. Blank node labels in the input are replaced by fresh labels so
// graphs parsed from different payloads can be merged without collisions.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/jsonld"
	"github.com/cayleygraph/quad/nquads"

	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/waperr"
)

// Codec parses and serializes graphs. Format identifiers are resolved with
// LookupFormat.
type Codec interface {
	Parse(text string, format string) (*rdf.Graph, error)
	Serialize(g *rdf.Graph, format string) (string, error)
}

// QuadCodec implements Codec on top of the cayley quad readers and writers.
type QuadCodec struct {
	// LDContext is attached to JSON-LD output when set.
	LDContext any
}

// New creates a QuadCodec without a JSON-LD context.
func New() *QuadCodec {
	return &QuadCodec{}
}

type quadReader interface {
	ReadQuad() (quad.Quad, error)
}

type quadWriter interface {
	WriteQuad(quad.Quad) error
	Close() error
}

// Parse reads text in the given format into a new graph.
func (c *QuadCodec) Parse(text string, format string) (*rdf.Graph, error) {
	info, ok := LookupFormat(format)
	if !ok {
		return nil, waperr.Newf(waperr.CodeFormat, "unsupported format %q", format)
	}

	var r quadReader
	switch info.Name {
	case FormatNQuads, FormatNTriples:
		// raw keeps typed literals as TypedString instead of native values
		r = nquads.NewReader(strings.NewReader(text), true)
	case FormatJSONLD:
		r = jsonld.NewReader(strings.NewReader(text))
	}

	g := rdf.NewGraph()
	blanks := make(map[string]rdf.Term)
	for {
		q, err := r.ReadQuad()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, waperr.Wrap(waperr.CodeFormat, err, fmt.Sprintf("parse %s", info.Name))
		}
		t, err := toTriple(q, blanks)
		if err != nil {
			return nil, waperr.Wrap(waperr.CodeFormat, err, fmt.Sprintf("parse %s", info.Name))
		}
		g.Add(t)
	}
	return g, nil
}

// Serialize writes g in the given format.
func (c *QuadCodec) Serialize(g *rdf.Graph, format string) (string, error) {
	info, ok := LookupFormat(format)
	if !ok {
		return "", waperr.Newf(waperr.CodeFormat, "unsupported format %q", format)
	}

	var buf bytes.Buffer
	var w quadWriter
	switch info.Name {
	case FormatNQuads, FormatNTriples:
		w = nquads.NewWriter(&buf)
	case FormatJSONLD:
		jw := jsonld.NewWriter(&buf)
		if c.LDContext != nil {
			jw.SetLdContext(c.LDContext)
		}
		w = jw
	}

	for _, t := range g.Triples() {
		if err := w.WriteQuad(fromTriple(t)); err != nil {
			return "", waperr.Wrap(waperr.CodeFormat, err, fmt.Sprintf("serialize %s", info.Name))
		}
	}
	if err := w.Close(); err != nil {
		return "", waperr.Wrap(waperr.CodeFormat, err, fmt.Sprintf("serialize %s", info.Name))
	}
	return buf.String(), nil
}

func toTriple(q quad.Quad, blanks map[string]rdf.Term) (rdf.Triple, error) {
	s, err := toTerm(q.Subject, blanks)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("subject: %w", err)
	}
	p, err := toTerm(q.Predicate, blanks)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("predicate: %w", err)
	}
	o, err := toTerm(q.Object, blanks)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("object: %w", err)
	}
	if s.IsLiteral() || !p.IsIRI() {
		return rdf.Triple{}, fmt.Errorf("invalid statement %s %s %s", s, p, o)
	}
	return rdf.T(s, p, o), nil
}

func toTerm(v quad.Value, blanks map[string]rdf.Term) (rdf.Term, error) {
	switch v := v.(type) {
	case nil:
		return rdf.Term{}, errors.New("missing value")
	case quad.IRI:
		return rdf.IRI(string(v.Full())), nil
	case quad.BNode:
		t, ok := blanks[string(v)]
		if !ok {
			t = rdf.NewBlank()
			blanks[string(v)] = t
		}
		return t, nil
	case quad.String:
		return rdf.Literal(string(v)), nil
	case quad.TypedString:
		return rdf.TypedLiteral(string(v.Value), string(v.Type.Full())), nil
	case quad.LangString:
		return rdf.LangLiteral(string(v.Value), v.Lang), nil
	case quad.TypedStringer:
		ts := v.TypedString()
		return rdf.TypedLiteral(string(ts.Value), string(ts.Type.Full())), nil
	default:
		return rdf.Term{}, fmt.Errorf("unsupported value type %T", v)
	}
}

func fromTriple(t rdf.Triple) quad.Quad {
	return quad.Quad{
		Subject:   fromTerm(t.S),
		Predicate: fromTerm(t.P),
		Object:    fromTerm(t.O),
	}
}

func fromTerm(t rdf.Term) quad.Value {
	switch t.Kind {
	case rdf.KindIRI:
		return quad.IRI(t.Value)
	case rdf.KindBlank:
		return quad.BNode(t.Value)
	case rdf.KindLiteral:
		if t.Lang != "" {
			return quad.LangString{Value: quad.String(t.Value), Lang: t.Lang}
		}
		if t.Datatype != "" {
			return quad.TypedString{Value: quad.String(t.Value), Type: quad.IRI(t.Datatype)}
		}
		return quad.String(t.Value)
	default:
		return nil
	}
}
