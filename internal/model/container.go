package model

import (
	"github.com/roach88/wapgraph/internal/codec"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/vocab"
	"github.com/roach88/wapgraph/internal/waperr"
)

// Preferences are view hints carried by a container. They never change the
// stored content.
type Preferences struct {
	PreferMinimal  bool
	PreferIrisOnly bool
}

// Container is an object typed both ldp:BasicContainer and
// as:OrderedCollection. It owns two sequences, one for sub-containers and
// one for annotations, named after its IRI.
type Container struct {
	Object
	prefs Preferences
}

// NewContainer takes ownership of g. When newIdentity is non-empty the root
// is renamed to it, with provenance if the root was already an IRI.
func NewContainer(g *rdf.Graph, newIdentity string, prefs Preferences, c codec.Codec) (*Container, error) {
	obj, err := newObject(g, vocab.LDPBasicContainer, c)
	if err != nil {
		if waperr.CodeOf(err) == waperr.CodeNotOfExpectedType {
			return nil, waperr.Wrap(waperr.CodeInvalidContainer, err, "missing ldp:BasicContainer type")
		}
		return nil, err
	}
	if !g.Has(rdf.T(obj.id, typePredicate, rdf.IRI(vocab.ASOrderedCollection))) {
		return nil, waperr.New(waperr.CodeInvalidContainer, "missing as:OrderedCollection type").WithIdentity(obj.IRI())
	}

	ct := &Container{Object: obj, prefs: prefs}
	if newIdentity != "" {
		ct.Rename(rdf.IRI(newIdentity), true)
	}
	if !ct.id.IsIRI() {
		return nil, waperr.New(waperr.CodeInvalidContainer, "container identity is not an IRI").WithIdentity(ct.IRI())
	}
	g.Add(
		rdf.T(rdf.IRI(ct.ContainerSeq()), typePredicate, rdf.IRI(vocab.RDFSeq)),
		rdf.T(rdf.IRI(ct.AnnotationSeq()), typePredicate, rdf.IRI(vocab.RDFSeq)),
	)
	return ct, nil
}

func (c *Container) Preferences() Preferences { return c.prefs }

func (c *Container) SetPreferences(p Preferences) { c.prefs = p }

// ContainerSeq is the identity of the sub-container sequence.
func (c *Container) ContainerSeq() string { return c.id.Value + vocab.ContainerSeqSuffix }

// AnnotationSeq is the identity of the annotation sequence.
func (c *Container) AnnotationSeq() string { return c.id.Value + vocab.AnnotationSeqSuffix }

// Rename moves the container and both of its sequences. Provenance is
// recorded for the container only.
func (c *Container) Rename(to rdf.Term, preserveProvenance bool) {
	if !c.id.IsIRI() || !to.IsIRI() {
		c.Object.Rename(to, preserveProvenance)
		return
	}
	oldCont, oldAnno := c.ContainerSeq(), c.AnnotationSeq()
	c.Object.Rename(to, preserveProvenance)
	rdf.Rename(c.graph, rdf.IRI(oldCont), rdf.IRI(c.ContainerSeq()), false)
	rdf.Rename(c.graph, rdf.IRI(oldAnno), rdf.IRI(c.AnnotationSeq()), false)
}

// Label returns rdfs:label, falling back to the container IRI.
func (c *Container) Label() string {
	if v, ok := c.graph.Object(c.id, rdf.IRI(vocab.RDFSLabel)); ok {
		return v.Value
	}
	return c.id.Value
}

// EnsureLabel writes the default label when none is present.
func (c *Container) EnsureLabel() {
	if _, ok := c.graph.Object(c.id, rdf.IRI(vocab.RDFSLabel)); !ok {
		c.graph.Add(rdf.T(c.id, rdf.IRI(vocab.RDFSLabel), rdf.Literal(c.id.Value)))
	}
}
