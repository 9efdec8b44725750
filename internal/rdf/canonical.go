package rdf

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical returns the statements as sorted N-Triples lines.
//
// Blank nodes are relabelled c0, c1, ... ordered by a signature built from
// the statements they take part in, so two graphs that differ only in blank
// labels produce identical output. Literal values are NFC-normalized.
// Signatures are refined until the partition of blank nodes is stable, at
// any depth. Nodes still tied are split one at a time, smallest original
// label first, and refinement resumes; this is exact for symmetric blank
// structures but may separate graphs built from regular, non-symmetric
// blank structures that refinement cannot tell apart.
func (g *Graph) Canonical() []string {
	labels := canonicalLabels(g.triples)
	lines := make([]string, 0, len(g.triples))
	for _, t := range g.triples {
		lines = append(lines, canonicalTerm(t.S, labels)+" "+canonicalTerm(t.P, labels)+" "+canonicalTerm(t.O, labels)+" .")
	}
	sort.Strings(lines)
	return lines
}

// Equal reports whether two graphs are structurally equal after canonical
// blank node relabelling. Blank nodes are told apart however deep the
// difference lies; see Canonical for the one case it can miss.
func (g *Graph) Equal(other *Graph) bool {
	if g.Len() != other.Len() {
		return false
	}
	a, b := g.Canonical(), other.Canonical()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func canonicalTerm(t Term, labels map[string]string) string {
	switch t.Kind {
	case KindBlank:
		return "_:" + labels[t.Value]
	case KindLiteral:
		t.Value = norm.NFC.String(t.Value)
		return t.String()
	default:
		return t.String()
	}
}

func canonicalLabels(triples []Triple) map[string]string {
	sig := make(map[string]string)
	for _, t := range triples {
		if t.S.IsBlank() {
			sig[t.S.Value] = ""
		}
		if t.O.IsBlank() {
			sig[t.O.Value] = ""
		}
	}
	if len(sig) == 0 {
		return nil
	}

	sig = refine(triples, sig)
	for {
		order := rank(sig)
		tied := -1
		for i := 0; i+1 < len(order); i++ {
			if sig[order[i]] == sig[order[i+1]] {
				tied = i
				break
			}
		}
		if tied < 0 {
			break
		}
		sig[order[tied]] = digest(sig[order[tied]] + "\x00split")
		sig = refine(triples, sig)
	}

	order := rank(sig)
	labels := make(map[string]string, len(order))
	for i, label := range order {
		labels[label] = fmt.Sprintf("c%d", i)
	}
	return labels
}

// refine hashes each blank node's signature with its statements until the
// number of distinct signatures stops growing. A node's own signature is
// part of its next one, so classes are only ever split.
func refine(triples []Triple, sig map[string]string) map[string]string {
	classes := distinct(sig)
	for {
		next := make(map[string]string, len(sig))
		for label := range sig {
			var lines []string
			for _, t := range triples {
				if !isBlankLabel(t.S, label) && !isBlankLabel(t.O, label) {
					continue
				}
				lines = append(lines, signatureTerm(t.S, label, sig)+" "+t.P.String()+" "+signatureTerm(t.O, label, sig))
			}
			sort.Strings(lines)
			next[label] = digest(sig[label] + "\n" + strings.Join(lines, "\n"))
		}
		sig = next
		n := distinct(sig)
		if n == classes {
			return sig
		}
		classes = n
	}
}

func rank(sig map[string]string) []string {
	order := make([]string, 0, len(sig))
	for label := range sig {
		order = append(order, label)
	}
	sort.Slice(order, func(i, j int) bool {
		if sig[order[i]] != sig[order[j]] {
			return sig[order[i]] < sig[order[j]]
		}
		return order[i] < order[j]
	})
	return order
}

func distinct(sig map[string]string) int {
	seen := make(map[string]bool, len(sig))
	for _, v := range sig {
		seen[v] = true
	}
	return len(seen)
}

func digest(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func isBlankLabel(t Term, label string) bool {
	return t.Kind == KindBlank && t.Value == label
}

func signatureTerm(t Term, self string, sig map[string]string) string {
	if t.Kind != KindBlank {
		return canonicalTerm(t, nil)
	}
	if t.Value == self {
		return "_:self"
	}
	return "_:" + sig[t.Value]
}
