package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/roach88/wapgraph/internal/codec"
	"github.com/roach88/wapgraph/internal/config"
	"github.com/roach88/wapgraph/internal/metrics"
	"github.com/roach88/wapgraph/internal/model"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/sequence"
	"github.com/roach88/wapgraph/internal/store"
	"github.com/roach88/wapgraph/internal/vocab"
	"github.com/roach88/wapgraph/internal/waperr"
)

const (
	// DynamicCollection is appended to the base IRI to name query result pages.
	DynamicCollection = "dynamicCollection"
	dynamicLabel      = "dynamic collection for query"
)

// Service is the WAP annotation store.
//
// Thread-safety: operations are serialized; the underlying SQLite
// connection admits one writer.
type Service struct {
	mu      sync.Mutex
	sess    *store.Session
	seq     sequence.Manager
	factory *model.Factory
	cfg     config.Config
	metrics *metrics.Metrics
	logger  *slog.Logger
	clock   model.Clock
	ids     model.IdentityGenerator
}

// Option configures a Service.
type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.logger = l } }

// WithClock sets the clock used for created/modified stamps.
func WithClock(c model.Clock) Option { return func(s *Service) { s.clock = c } }

// WithIdentityGenerator sets the generator for minted IRIs.
func WithIdentityGenerator(g model.IdentityGenerator) Option {
	return func(s *Service) { s.ids = g }
}

// New builds a service over st using the sequence backend named in cfg.
func New(st *store.Store, c codec.Codec, cfg config.Config, opts ...Option) (*Service, error) {
	s := &Service{
		sess:   st.Session(),
		cfg:    cfg,
		logger: slog.Default(),
		clock:  model.SystemClock{},
		ids:    model.UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if !strings.HasSuffix(cfg.BaseIRI, "/") {
		return nil, fmt.Errorf("base IRI %q must end with /", cfg.BaseIRI)
	}
	seq, err := sequence.Open(sequence.Kind(cfg.Backend), s.sess, s.metrics)
	if err != nil {
		return nil, err
	}
	s.seq = seq
	s.factory = &model.Factory{Codec: c, PageSize: cfg.PageSize, Clock: s.clock}
	return s, nil
}

// Factory exposes the model factory for callers that parse without storing.
func (s *Service) Factory() *model.Factory { return s.factory }

// BaseIRI is the root container identity.
func (s *Service) BaseIRI() string { return s.cfg.BaseIRI }

// CreateAnnotation parses an annotation without storing it.
func (s *Service) CreateAnnotation(text, format string) (*model.Annotation, error) {
	return s.factory.CreateAnnotation(text, format)
}

// CreateContainer parses a container without storing it.
func (s *Service) CreateContainer(text, format, newIdentity string) (*model.Container, error) {
	return s.factory.CreateContainer(text, format, newIdentity)
}

// do runs fn in one transaction and records the operation.
func (s *Service) do(ctx context.Context, op string, kind store.TxKind, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	defer func() {
		s.metrics.ObserveOperation(op, start, err)
		switch {
		case err == nil:
		case kind == store.TxWrite:
			s.logger.Warn("transaction aborted", "op", op, "code", waperr.CodeOf(err), "error", err)
		default:
			s.logger.Debug("operation failed", "op", op, "code", waperr.CodeOf(err), "error", err)
		}
	}()
	return s.sess.WithTx(ctx, kind, fn)
}

func (s *Service) loadContainer(ctx context.Context, iri string, prefs model.Preferences) (*model.Container, error) {
	g, err := s.sess.GetGraph(ctx, iri)
	if err != nil {
		return nil, err
	}
	return s.factory.ContainerFromGraph(g, prefs)
}

func (s *Service) loadAnnotation(ctx context.Context, iri string) (*model.Annotation, error) {
	g, err := s.sess.GetGraph(ctx, iri)
	if err != nil {
		return nil, err
	}
	a, err := s.factory.AnnotationFromGraph(g)
	if err != nil {
		return nil, err
	}
	if a.IsDeleted() {
		return nil, waperr.NotExistent(iri)
	}
	return a, nil
}

// materialize writes both sequences of c into its graph as rdf:_n members.
func (s *Service) materialize(ctx context.Context, c *model.Container) error {
	for _, seq := range []string{c.ContainerSeq(), c.AnnotationSeq()} {
		if err := sequence.Materialize(ctx, s.seq, c.Graph(), c.IRI(), seq); err != nil {
			return err
		}
	}
	return nil
}

// touchContainer stamps dcterms:modified and advances the container etag
// past the given membership changes. Members are never read, so the cost
// does not grow with the container on the indexed backend.
func (s *Service) touchContainer(ctx context.Context, iri string, changes ...string) error {
	c, err := s.loadContainer(ctx, iri, model.Preferences{})
	if err != nil {
		return err
	}
	now := s.clock.Now()
	c.SetModified(now)
	changes = append(changes, now.UTC().Format(time.RFC3339Nano))
	c.SetETag(rdf.RevisionHash(c.ETag(), changes...))
	return s.sess.PutGraph(ctx, iri, c.StorageGraph())
}

func added(member string) string { return "+" + member }

func removed(member string) string { return "-" + member }

func unquote(etag string) string {
	etag = strings.TrimPrefix(strings.TrimSpace(etag), "W/")
	return strings.Trim(etag, `"`)
}

func annotationSeqOf(container string) string { return container + vocab.AnnotationSeqSuffix }

func containerSeqOf(container string) string { return container + vocab.ContainerSeqSuffix }
