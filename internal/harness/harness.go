package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/wapgraph/internal/codec"
	"github.com/roach88/wapgraph/internal/config"
	"github.com/roach88/wapgraph/internal/model"
	"github.com/roach88/wapgraph/internal/querybuild"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/service"
	"github.com/roach88/wapgraph/internal/store"
	"github.com/roach88/wapgraph/internal/testutil"
	"github.com/roach88/wapgraph/internal/vocab"
	"github.com/roach88/wapgraph/internal/waperr"
)

// DefaultBaseIRI is the root container of scenarios that do not set one.
const DefaultBaseIRI = "http://example.org/wap/"

// payloadFormat is the syntax of scenario payloads.
const payloadFormat = "nquads"

// Harness executes one scenario against its own store.
type Harness struct {
	store *store.Store
	sess  *store.Session
	svc   *service.Service
	base  string

	// etags remembers the etag each annotation was posted with.
	etags map[string]string
}

// Run executes a scenario on a fresh in-memory database and returns the
// result. An error is returned only when the scenario could not be set up.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	cfg := config.Default()
	cfg.BaseIRI = DefaultBaseIRI
	sc := scenario.Config
	if sc.PageSize != 0 {
		cfg.PageSize = sc.PageSize
	}
	if sc.Backend != "" {
		cfg.Backend = sc.Backend
	}
	if sc.BaseIRI != "" {
		cfg.BaseIRI = sc.BaseIRI
	}

	svc, err := service.New(st, codec.New(), cfg,
		service.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		service.WithClock(testutil.NewStepClock(testutil.Epoch, time.Second)),
		service.WithIdentityGenerator(testutil.NewSequenceGenerator("a")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	ctx := context.Background()
	if _, err := svc.InitRootContainer(ctx); err != nil {
		return nil, fmt.Errorf("failed to create root container: %w", err)
	}

	h := &Harness{
		store: st,
		sess:  st.Session(),
		svc:   svc,
		base:  cfg.BaseIRI,
		etags: map[string]string{},
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		rec, err := h.execute(ctx, step, scenario.Payloads)
		rec.Step = i
		rec.Op = step.Op
		if err != nil {
			rec.Error = string(waperr.CodeOf(err))
			if rec.Error == "" {
				return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
			}
		}
		result.Trace = append(result.Trace, rec)

		for _, msg := range h.checkExpect(rec, step.Expect) {
			result.AddError(fmt.Sprintf("steps[%d] %s: %s", i, step.Op, msg))
		}
	}

	for i, a := range scenario.Assertions {
		if err := h.evaluate(ctx, a, result.Trace); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return result, nil
}

// expand substitutes ${base}.
func (h *Harness) expand(s string) string {
	return strings.ReplaceAll(s, "${base}", h.base)
}

func (h *Harness) expandAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = h.expand(s)
	}
	return out
}

func (h *Harness) execute(ctx context.Context, step Step, payloads map[string]string) (StepRecord, error) {
	var rec StepRecord
	container := h.expand(step.Container)
	iri := h.expand(step.IRI)

	switch step.Op {
	case OpPostAnnotation:
		a, err := h.svc.PostAnnotation(ctx, container, h.expand(payloads[step.Payload]), payloadFormat)
		if err != nil {
			return rec, err
		}
		rec.Target = a.IRI()
		if created, ok := a.Created(); ok {
			rec.Created = created.UTC().Format(model.TimestampLayout)
		}
		h.etags[a.IRI()] = a.ETagQuoted()

	case OpPostContainer:
		c, err := h.svc.PostContainer(ctx, container, h.expand(payloads[step.Payload]), payloadFormat, step.Slug)
		if err != nil {
			return rec, err
		}
		rec.Target = c.IRI()
		if created, ok := c.Created(); ok {
			rec.Created = created.UTC().Format(model.TimestampLayout)
		}

	case OpGetAnnotation:
		a, err := h.svc.GetAnnotation(ctx, iri)
		if err != nil {
			return rec, err
		}
		rec.Target = a.IRI()

	case OpGetContainer:
		view, err := h.svc.GetContainer(ctx, container, model.Preferences{
			PreferMinimal:  step.Minimal,
			PreferIrisOnly: step.IrisOnly,
		})
		if err != nil {
			return rec, err
		}
		g, id := view.Graph(), rdf.IRI(view.IRI())
		rec.Target = view.IRI()
		if total, ok := g.Object(id, rdf.IRI(vocab.ASTotalItems)); ok {
			n, err := strconv.Atoi(total.Value)
			if err != nil {
				return rec, fmt.Errorf("as:totalItems %q: %w", total.Value, err)
			}
			rec.Total = &n
		}
		rec.Contains = values(g.Objects(id, rdf.IRI(vocab.LDPContains)))
		rec.Links = links(g, id, vocab.ASFirst, vocab.ASLast)

	case OpGetPage:
		page, err := h.svc.GetPage(ctx, container, step.Page, step.IrisOnly)
		if err != nil {
			return rec, err
		}
		h.recordPage(&rec, page)

	case OpDeleteAnnotation:
		etag := step.ETag
		if etag == "current" {
			etag = h.etags[iri]
		}
		if err := h.svc.DeleteAnnotation(ctx, iri, etag); err != nil {
			return rec, err
		}
		rec.Target = iri

	case OpQuery:
		var filters querybuild.Filters
		for _, f := range step.Filters {
			c := querybuild.Criterion{Property: querybuild.Property(f.Property), Value: h.expand(f.Value)}
			if f.Match == "contains" {
				c.Match = querybuild.MatchContains
			}
			filters = append(filters, c)
		}
		page, err := h.svc.GetDynamicPage(ctx, filters)
		if err != nil {
			return rec, err
		}
		h.recordPage(&rec, page)

	default:
		return rec, fmt.Errorf("unknown op %q", step.Op)
	}
	return rec, nil
}

func (h *Harness) recordPage(rec *StepRecord, page *model.Page) {
	g, id := page.Graph(), rdf.IRI(page.IRI())
	rec.Target = page.IRI()
	rec.Items = values(page.Items())
	rec.Links = links(g, id, vocab.ASNext, vocab.ASPrev, vocab.ASPartOf)
	if partOf, ok := g.Object(id, rdf.IRI(vocab.ASPartOf)); ok {
		for k, v := range links(g, partOf, vocab.ASFirst, vocab.ASLast) {
			if rec.Links == nil {
				rec.Links = map[string]string{}
			}
			rec.Links[k] = v
		}
	}
}

// links collects the IRI objects of the given predicates, keyed by local name.
func links(g *rdf.Graph, s rdf.Term, preds ...string) map[string]string {
	var out map[string]string
	for _, p := range preds {
		o, ok := g.Object(s, rdf.IRI(p))
		if !ok {
			continue
		}
		if out == nil {
			out = map[string]string{}
		}
		out[strings.TrimPrefix(p, vocab.ASNamespace)] = o.Value
	}
	return out
}

func values(terms []rdf.Term) []string {
	if len(terms) == 0 {
		return nil
	}
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.Value
	}
	return out
}

// checkExpect compares a record with its expectation. A step without one
// must succeed.
func (h *Harness) checkExpect(rec StepRecord, e *Expect) []string {
	if e == nil {
		if rec.Error != "" {
			return []string{"unexpected error " + rec.Error}
		}
		return nil
	}

	var problems []string
	mismatch := func(field string, want, got any) {
		problems = append(problems, fmt.Sprintf("%s: expected %v, got %v", field, want, got))
	}

	if e.Error != rec.Error {
		mismatch("error", e.Error, rec.Error)
	}
	if e.Target != "" && h.expand(e.Target) != rec.Target {
		mismatch("target", h.expand(e.Target), rec.Target)
	}
	if e.Items != nil && !slices.Equal(h.expandAll(e.Items), rec.Items) {
		mismatch("items", h.expandAll(e.Items), rec.Items)
	}
	if e.TotalItems != nil && (rec.Total == nil || *rec.Total != *e.TotalItems) {
		got := "none"
		if rec.Total != nil {
			got = strconv.Itoa(*rec.Total)
		}
		mismatch("total_items", *e.TotalItems, got)
	}
	if e.Contains != nil && !slices.Equal(h.expandAll(e.Contains), rec.Contains) {
		mismatch("contains", h.expandAll(e.Contains), rec.Contains)
	}
	for name, want := range e.Links {
		if got := rec.Links[name]; h.expand(want) != got {
			mismatch("links."+name, h.expand(want), got)
		}
	}
	return problems
}
