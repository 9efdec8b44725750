package service

import (
	"context"

	"github.com/roach88/wapgraph/internal/model"
	"github.com/roach88/wapgraph/internal/querybuild"
	"github.com/roach88/wapgraph/internal/store"
	"github.com/roach88/wapgraph/internal/waperr"
)

// PostAnnotation stores a single annotation in a container.
func (s *Service) PostAnnotation(ctx context.Context, containerIRI, text, format string) (*model.Annotation, error) {
	a, err := s.factory.CreateAnnotation(text, format)
	if err != nil {
		return nil, err
	}
	var out []*model.Annotation
	err = s.do(ctx, "post_annotation", store.TxWrite, func() error {
		var err error
		out, err = s.post(ctx, containerIRI, []*model.Annotation{a})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// PostAnnotations stores every annotation found in text, in one
// transaction.
func (s *Service) PostAnnotations(ctx context.Context, containerIRI, text, format string) ([]*model.Annotation, error) {
	annos, err := s.factory.CreateAnnotations(text, format)
	if err != nil {
		return nil, err
	}
	var out []*model.Annotation
	err = s.do(ctx, "post_annotation", store.TxWrite, func() error {
		var err error
		out, err = s.post(ctx, containerIRI, annos)
		return err
	})
	return out, err
}

// post mints an IRI below the container for each annotation, stores it and
// appends it to the container's annotation sequence.
func (s *Service) post(ctx context.Context, containerIRI string, annos []*model.Annotation) ([]*model.Annotation, error) {
	if _, err := s.loadContainer(ctx, containerIRI, model.Preferences{}); err != nil {
		return nil, err
	}
	changes := make([]string, 0, len(annos))
	for _, a := range annos {
		iri := containerIRI + s.ids.Generate()
		s.factory.PublishAnnotation(a, iri)
		if err := s.sess.PutGraph(ctx, iri, a.StorageGraph()); err != nil {
			return nil, err
		}
		if err := s.seq.Append(ctx, containerIRI, annotationSeqOf(containerIRI), iri); err != nil {
			return nil, err
		}
		changes = append(changes, added(iri))
		s.logger.Debug("annotation posted", "iri", iri, "container", containerIRI)
	}
	if err := s.touchContainer(ctx, containerIRI, changes...); err != nil {
		return nil, err
	}
	return annos, nil
}

// GetAnnotation loads a stored annotation. Deleted annotations do not exist.
func (s *Service) GetAnnotation(ctx context.Context, iri string) (*model.Annotation, error) {
	var out *model.Annotation
	err := s.do(ctx, "get_annotation", store.TxRead, func() error {
		var err error
		out, err = s.loadAnnotation(ctx, iri)
		return err
	})
	return out, err
}

// DeleteAnnotation marks an annotation deleted and removes it from its
// container. A non-empty etag must match the stored one.
func (s *Service) DeleteAnnotation(ctx context.Context, iri, etag string) error {
	return s.do(ctx, "delete_annotation", store.TxWrite, func() error {
		a, err := s.loadAnnotation(ctx, iri)
		if err != nil {
			return err
		}
		if etag != "" && unquote(etag) != a.ETag() {
			return waperr.New(waperr.CodeETagMismatch, "etag does not match the stored annotation").WithIdentity(iri)
		}
		a.MarkDeleted()
		a.ComputeETag()
		if err := s.sess.PutGraph(ctx, iri, a.StorageGraph()); err != nil {
			return err
		}

		container := a.ContainerIRI()
		exists, err := s.sess.HasGraph(ctx, container)
		if err != nil || !exists {
			return err
		}
		if err := s.seq.Remove(ctx, container, annotationSeqOf(container), iri); err != nil {
			return err
		}
		s.logger.Debug("annotation deleted", "iri", iri)
		return s.touchContainer(ctx, container, removed(iri))
	})
}

// GetDynamicPage returns one embedded page holding every undeleted
// annotation that satisfies the filters.
func (s *Service) GetDynamicPage(ctx context.Context, filters querybuild.Filters) (*model.Page, error) {
	// contract violations fail before any store access
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	var out *model.Page
	err := s.do(ctx, "get_dynamic_page", store.TxRead, func() error {
		names, err := querybuild.Find(ctx, s.sess, filters)
		if err != nil {
			return err
		}
		s.metrics.ObserveQueryMatches(len(names))

		var annos []*model.Annotation
		for _, name := range names {
			a, err := s.loadAnnotation(ctx, name)
			switch {
			case err == nil:
				annos = append(annos, a)
			case waperr.IsNotExistent(err), waperr.CodeOf(err) == waperr.CodeNotOfExpectedType:
				// deleted, or a non-annotation graph that happens to match
			default:
				return err
			}
		}
		if len(annos) == 0 {
			return waperr.New(waperr.CodeInvalidRequest, "no annotations match the query")
		}
		s.logger.Debug("dynamic query", "filters", filters.String(), "matches", len(annos))

		page, err := s.factory.NewPage(model.PageParams{
			ContainerIRI: s.cfg.BaseIRI + DynamicCollection,
			PageNr:       0,
			PageSize:     len(annos),
			TotalItems:   len(annos),
			Embedded:     true,
			Modified:     s.clock.Now(),
			Label:        dynamicLabel,
		})
		if err != nil {
			return err
		}
		for _, a := range annos {
			if err := page.AddAnnotation(a); err != nil {
				return err
			}
		}
		page.CloseAdding()
		out = page
		return nil
	})
	return out, err
}

// Explain renders the query the filters compile to.
func (s *Service) Explain(filters querybuild.Filters) (string, error) {
	return querybuild.Explain(filters)
}
