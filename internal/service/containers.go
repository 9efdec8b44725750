package service

import (
	"context"

	"github.com/roach88/wapgraph/internal/model"
	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/store"
	"github.com/roach88/wapgraph/internal/vocab"
	"github.com/roach88/wapgraph/internal/waperr"
)

// InitRootContainer creates the container at the base IRI unless it
// exists. It reports whether a container was created.
func (s *Service) InitRootContainer(ctx context.Context) (created bool, err error) {
	base := s.cfg.BaseIRI
	err = s.do(ctx, "init_root", store.TxWrite, func() error {
		ok, err := s.sess.HasGraph(ctx, base)
		if err != nil || ok {
			return err
		}
		id := rdf.IRI(base)
		g := rdf.NewGraph(
			rdf.T(id, rdf.IRI(vocab.RDFType), rdf.IRI(vocab.LDPBasicContainer)),
			rdf.T(id, rdf.IRI(vocab.RDFType), rdf.IRI(vocab.ASOrderedCollection)),
		)
		c, err := model.NewContainer(g, "", model.Preferences{}, s.factory.Codec)
		if err != nil {
			return err
		}
		s.factory.PublishContainer(c)
		if err := s.sess.PutGraph(ctx, base, c.StorageGraph()); err != nil {
			return err
		}
		created = true
		s.logger.Info("root container created", "iri", base)
		return nil
	})
	return created, err
}

// PostContainer stores a new container below parent. Its IRI is
// parent + slug + "/", with a minted slug when none is given.
func (s *Service) PostContainer(ctx context.Context, parent, text, format, slug string) (*model.Container, error) {
	var out *model.Container
	err := s.do(ctx, "post_container", store.TxWrite, func() error {
		if _, err := s.loadContainer(ctx, parent, model.Preferences{}); err != nil {
			return err
		}
		if slug == "" {
			slug = s.ids.Generate()
		}
		iri := parent + slug + "/"
		exists, err := s.sess.HasGraph(ctx, iri)
		if err != nil {
			return err
		}
		if exists {
			return waperr.New(waperr.CodeInvalidRequest, "container already exists").WithIdentity(iri)
		}

		c, err := s.factory.CreateContainer(text, format, iri)
		if err != nil {
			return err
		}
		s.factory.PublishContainer(c)
		if err := s.sess.PutGraph(ctx, iri, c.StorageGraph()); err != nil {
			return err
		}
		if err := s.seq.Append(ctx, parent, containerSeqOf(parent), iri); err != nil {
			return err
		}
		if err := s.touchContainer(ctx, parent, added(iri)); err != nil {
			return err
		}
		out = c
		s.logger.Debug("container posted", "iri", iri, "parent", parent)
		return nil
	})
	return out, err
}

// GetContainer returns the output view of a stored container.
func (s *Service) GetContainer(ctx context.Context, iri string, prefs model.Preferences) (*model.OutputView, error) {
	var out *model.OutputView
	err := s.do(ctx, "get_container", store.TxRead, func() error {
		c, err := s.loadContainer(ctx, iri, prefs)
		if err != nil {
			return err
		}
		if err := s.materialize(ctx, c); err != nil {
			return err
		}
		out, err = s.factory.OutputView(c)
		return err
	})
	return out, err
}

// GetPage assembles page pageNr of a container. Page 0 of an empty
// container is an empty page; any other page past the end does not exist.
func (s *Service) GetPage(ctx context.Context, containerIRI string, pageNr int, preferIrisOnly bool) (*model.Page, error) {
	var out *model.Page
	err := s.do(ctx, "get_page", store.TxRead, func() error {
		c, err := s.loadContainer(ctx, containerIRI, model.Preferences{PreferIrisOnly: preferIrisOnly})
		if err != nil {
			return err
		}
		total, err := s.seq.Count(ctx, containerIRI, c.AnnotationSeq())
		if err != nil {
			return err
		}
		pg := model.Pagination{TotalItems: total, PageSize: s.cfg.PageSize}
		if pageNr < 0 || (pageNr > 0 && pageNr >= pg.PageCount()) {
			return waperr.NotExistent(model.PageIRI(containerIRI, preferIrisOnly, pageNr))
		}

		modified, _ := c.Modified()
		page, err := s.factory.NewPage(model.PageParams{
			ContainerIRI:   containerIRI,
			PageNr:         pageNr,
			PageSize:       s.cfg.PageSize,
			TotalItems:     total,
			PreferIrisOnly: preferIrisOnly,
			Modified:       modified,
			Label:          c.Label(),
		})
		if err != nil {
			return err
		}

		if total > 0 {
			first := pg.FirstPosition(pageNr) + 1
			last := min(first+s.cfg.PageSize-1, total)
			members, err := s.seq.Range(ctx, containerIRI, c.AnnotationSeq(), first, last)
			if err != nil {
				return err
			}
			for _, iri := range members {
				if err := s.addToPage(ctx, page, iri); err != nil {
					return err
				}
			}
		}
		page.CloseAdding()
		out = page
		return nil
	})
	return out, err
}

func (s *Service) addToPage(ctx context.Context, page *model.Page, iri string) error {
	if page.Params().PreferIrisOnly {
		return page.AddAnnotationIri(iri)
	}
	a, err := s.loadAnnotation(ctx, iri)
	if err != nil {
		return err
	}
	return page.AddAnnotation(a)
}
