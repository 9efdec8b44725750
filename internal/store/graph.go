package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/roach88/wapgraph/internal/rdf"
	"github.com/roach88/wapgraph/internal/waperr"
)

// Quad is a statement together with the named graph holding it.
type Quad struct {
	Graph string
	rdf.Triple
}

// PutGraph stores g as the named graph name, replacing any previous content.
func (s *Session) PutGraph(ctx context.Context, name string, g *rdf.Graph) error {
	return s.WithTx(ctx, TxWrite, func() error {
		if err := s.ensureGraph(ctx, name); err != nil {
			return err
		}
		if _, err := s.q().ExecContext(ctx, `DELETE FROM quads WHERE graph = ?`, name); err != nil {
			return fmt.Errorf("clear graph %s: %w", name, err)
		}
		return s.insertTriples(ctx, name, g.Triples())
	})
}

// GetGraph loads the named graph. Unknown names yield a NOT_EXISTENT error.
func (s *Session) GetGraph(ctx context.Context, name string) (*rdf.Graph, error) {
	ok, err := s.HasGraph(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, waperr.NotExistent(name)
	}

	triples, err := s.queryTriples(ctx, `
		SELECT subject, predicate, object
		FROM quads
		WHERE graph = ?
		ORDER BY id ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("get graph %s: %w", name, err)
	}
	return rdf.NewGraph(triples...), nil
}

// HasGraph reports whether the named graph exists.
func (s *Session) HasGraph(ctx context.Context, name string) (bool, error) {
	var n int
	err := s.q().QueryRowContext(ctx, `SELECT COUNT(*) FROM graphs WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check graph %s: %w", name, err)
	}
	return n > 0, nil
}

// DeleteGraph removes the named graph and all its statements.
func (s *Session) DeleteGraph(ctx context.Context, name string) error {
	return s.WithTx(ctx, TxWrite, func() error {
		if _, err := s.q().ExecContext(ctx, `DELETE FROM quads WHERE graph = ?`, name); err != nil {
			return fmt.Errorf("delete quads of %s: %w", name, err)
		}
		if _, err := s.q().ExecContext(ctx, `DELETE FROM graphs WHERE name = ?`, name); err != nil {
			return fmt.Errorf("delete graph %s: %w", name, err)
		}
		return nil
	})
}

// RemoveAll deletes every statement whose subject is identity from the
// named graph of the same identity.
func (s *Session) RemoveAll(ctx context.Context, identity string) error {
	_, err := s.q().ExecContext(ctx,
		`DELETE FROM quads WHERE graph = ? AND subject = ?`,
		identity, rdf.IRI(identity).String())
	if err != nil {
		return fmt.Errorf("remove all of %s: %w", identity, err)
	}
	return nil
}

// AddTriples inserts statements into the named graph, creating it when
// needed. Statements already present are ignored.
func (s *Session) AddTriples(ctx context.Context, graph string, triples ...rdf.Triple) error {
	return s.WithTx(ctx, TxWrite, func() error {
		if err := s.ensureGraph(ctx, graph); err != nil {
			return err
		}
		return s.insertTriples(ctx, graph, triples)
	})
}

// RemoveTriples deletes statements from the named graph.
func (s *Session) RemoveTriples(ctx context.Context, graph string, triples ...rdf.Triple) error {
	return s.WithTx(ctx, TxWrite, func() error {
		for _, t := range triples {
			_, err := s.q().ExecContext(ctx,
				`DELETE FROM quads WHERE graph = ? AND subject = ? AND predicate = ? AND object = ?`,
				graph, t.S.String(), t.P.String(), t.O.String())
			if err != nil {
				return fmt.Errorf("remove statement from %s: %w", graph, err)
			}
		}
		return nil
	})
}

// Match returns the statements of the named graph fitting the pattern, in
// insertion order. rdf.Any positions are unconstrained.
func (s *Session) Match(ctx context.Context, graph string, subj, pred, obj rdf.Term) ([]rdf.Triple, error) {
	where, args := patternClause(subj, pred, obj)
	where = append([]string{"graph = ?"}, where...)
	args = append([]any{graph}, args...)

	triples, err := s.queryTriples(ctx,
		"SELECT subject, predicate, object FROM quads WHERE "+strings.Join(where, " AND ")+" ORDER BY id ASC",
		args...)
	if err != nil {
		return nil, fmt.Errorf("match in %s: %w", graph, err)
	}
	return triples, nil
}

// Filter returns the statements of every named graph fitting the pattern,
// ordered by graph name and insertion order.
func (s *Session) Filter(ctx context.Context, subj, pred, obj rdf.Term) ([]Quad, error) {
	where, args := patternClause(subj, pred, obj)
	query := "SELECT graph, subject, predicate, object FROM quads"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY graph COLLATE BINARY ASC, id ASC"

	rows, err := s.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	defer rows.Close()

	var out []Quad
	for rows.Next() {
		var graph, sv, pv, ov string
		if err := rows.Scan(&graph, &sv, &pv, &ov); err != nil {
			return nil, fmt.Errorf("scan quad: %w", err)
		}
		t, err := decodeTriple(sv, pv, ov)
		if err != nil {
			return nil, err
		}
		out = append(out, Quad{Graph: graph, Triple: t})
	}
	return out, rows.Err()
}

// GraphNames returns the names of all stored graphs.
func (s *Session) GraphNames(ctx context.Context) ([]string, error) {
	return s.SelectNames(ctx, `SELECT name FROM graphs ORDER BY name COLLATE BINARY ASC`)
}

// SelectNames runs a query returning one text column, such as a compiled
// dynamic query, and collects the values.
func (s *Session) SelectNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Session) ensureGraph(ctx context.Context, name string) error {
	if _, err := s.q().ExecContext(ctx, `INSERT OR IGNORE INTO graphs (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("create graph %s: %w", name, err)
	}
	return nil
}

func (s *Session) insertTriples(ctx context.Context, graph string, triples []rdf.Triple) error {
	for _, t := range triples {
		_, err := s.q().ExecContext(ctx, `
			INSERT INTO quads (graph, subject, predicate, object, object_kind, object_value)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(graph, subject, predicate, object) DO NOTHING
		`, graph, t.S.String(), t.P.String(), t.O.String(), int(t.O.Kind), t.O.Value)
		if err != nil {
			return fmt.Errorf("insert statement into %s: %w", graph, err)
		}
	}
	return nil
}

func (s *Session) queryTriples(ctx context.Context, query string, args ...any) ([]rdf.Triple, error) {
	rows, err := s.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTriples(rows)
}

func scanTriples(rows *sql.Rows) ([]rdf.Triple, error) {
	var out []rdf.Triple
	for rows.Next() {
		var sv, pv, ov string
		if err := rows.Scan(&sv, &pv, &ov); err != nil {
			return nil, fmt.Errorf("scan statement: %w", err)
		}
		t, err := decodeTriple(sv, pv, ov)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func decodeTriple(sv, pv, ov string) (rdf.Triple, error) {
	subj, err := rdf.ParseTerm(sv)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("decode subject: %w", err)
	}
	pred, err := rdf.ParseTerm(pv)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("decode predicate: %w", err)
	}
	obj, err := rdf.ParseTerm(ov)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("decode object: %w", err)
	}
	return rdf.T(subj, pred, obj), nil
}

func patternClause(subj, pred, obj rdf.Term) ([]string, []any) {
	var where []string
	var args []any
	if !subj.IsAny() {
		where = append(where, "subject = ?")
		args = append(args, subj.String())
	}
	if !pred.IsAny() {
		where = append(where, "predicate = ?")
		args = append(args, pred.String())
	}
	if !obj.IsAny() {
		where = append(where, "object = ?")
		args = append(args, obj.String())
	}
	return where, args
}
