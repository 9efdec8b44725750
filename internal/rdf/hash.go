package rdf

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DomainGraph separates graph content hashes from any other hash the
// store might compute. The suffix versions the canonical form.
const DomainGraph = "wapgraph/graph/v1"

// DomainRevision separates revision etags from content hashes.
const DomainRevision = "wapgraph/revision/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data) as hex.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ContentHash returns a stable hash of the graph's canonical form.
// Graphs that are Equal have the same hash.
func ContentHash(g *Graph) string {
	return hashWithDomain(DomainGraph, []byte(strings.Join(g.Canonical(), "\n")))
}

// RevisionHash derives the etag following previous after the given changes.
// Each distinct change sequence yields a distinct etag without reading the
// object's content.
func RevisionHash(previous string, changes ...string) string {
	var b strings.Builder
	b.WriteString(previous)
	for _, c := range changes {
		b.WriteByte(0x00)
		b.WriteString(c)
	}
	return hashWithDomain(DomainRevision, []byte(b.String()))
}
