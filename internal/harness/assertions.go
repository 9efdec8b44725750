package harness

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/wapgraph/internal/model"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/vocab"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []StepRecord // Full trace for debugging context
}

func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, rec := range e.Trace {
		status := "ok"
		if rec.Error != "" {
			status = rec.Error
		}
		fmt.Fprintf(&buf, "  [%d] %s %s (%s)\n", rec.Step, rec.Op, rec.Target, status)
	}
	return buf.String()
}

func (h *Harness) evaluate(ctx context.Context, a Assertion, trace []StepRecord) error {
	fail := func(expected, actual string) error {
		return &AssertionError{Type: a.Type, Expected: expected, Actual: actual, Trace: trace}
	}

	switch a.Type {
	case AssertContainerTotal:
		view, err := h.svc.GetContainer(ctx, h.expand(a.Container), model.Preferences{PreferMinimal: true})
		if err != nil {
			return fail(fmt.Sprintf("%d annotations", a.Count), err.Error())
		}
		total, _ := view.Graph().Object(rdf.IRI(view.IRI()), rdf.IRI(vocab.ASTotalItems))
		if n, err := strconv.Atoi(total.Value); err != nil || n != a.Count {
			return fail(fmt.Sprintf("%d annotations", a.Count), fmt.Sprintf("as:totalItems %q", total.Value))
		}

	case AssertContainerChildren:
		view, err := h.svc.GetContainer(ctx, h.expand(a.Container), model.Preferences{})
		if err != nil {
			return fail(fmt.Sprintf("children %v", a.Members), err.Error())
		}
		got := values(view.Graph().Objects(rdf.IRI(view.IRI()), rdf.IRI(vocab.LDPContains)))
		if want := h.expandAll(a.Members); !slices.Equal(want, got) {
			return fail(fmt.Sprintf("children %v", want), fmt.Sprintf("children %v", got))
		}

	case AssertAnnotationDeleted:
		iri := h.expand(a.IRI)
		g, err := h.sess.GetGraph(ctx, iri)
		if err != nil {
			return fail(iri+" stored and marked deleted", err.Error())
		}
		deleted := rdf.T(rdf.IRI(iri), rdf.IRI(vocab.WAPDeleted), rdf.TypedLiteral("true", vocab.XSDBoolean))
		if !g.Has(deleted) {
			return fail(iri+" stored and marked deleted", "no wap:deleted statement")
		}

	case AssertGraphCount:
		names, err := h.sess.GraphNames(ctx)
		if err != nil {
			return fail(fmt.Sprintf("%d graphs", a.Count), err.Error())
		}
		if len(names) != a.Count {
			return fail(fmt.Sprintf("%d graphs", a.Count), fmt.Sprintf("%d graphs %v", len(names), names))
		}

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
