package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/vocab"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestAnnotation returns a small annotation graph rooted at iri.
func createTestAnnotation(iri, targetSource string) *rdf.Graph {
	a := rdf.IRI(iri)
	tgt := rdf.Blank("t0")
	return rdf.NewGraph(
		rdf.T(a, rdf.IRI(vocab.RDFType), rdf.IRI(vocab.OAAnnotation)),
		rdf.T(a, rdf.IRI(vocab.OAHasTarget), tgt),
		rdf.T(tgt, rdf.IRI(vocab.OAHasSource), rdf.IRI(targetSource)),
		rdf.T(a, rdf.IRI(vocab.RDFSLabel), rdf.LangLiteral("note", "en")),
	)
}

var ctx = context.Background()
