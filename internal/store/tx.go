package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TxKind distinguishes read from write transactions.
type TxKind int

const (
	TxRead TxKind = iota
	TxWrite
)

func (k TxKind) String() string {
	if k == TxWrite {
		return "write"
	}
	return "read"
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Session is one execution context over the store. It carries at most one
// active transaction; operations run inside it when one is active and
// autocommit otherwise.
type Session struct {
	store *Store
	tx    *sql.Tx
	kind  TxKind
}

// Begin starts a transaction of the given kind. It returns false without
// starting anything when a transaction is already active; the caller then
// participates in the active transaction and must not end it.
func (s *Session) Begin(ctx context.Context, kind TxKind) (bool, error) {
	if s.tx != nil {
		s.store.metrics.ObserveTransaction(kind.String(), "joined")
		return false, nil
	}
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin %s transaction: %w", kind, err)
	}
	s.tx = tx
	s.kind = kind
	return true, nil
}

// Abort rolls back the active transaction and releases it. Aborting with
// no active transaction is a no-op.
func (s *Session) Abort() error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	s.store.metrics.ObserveTransaction(s.kind.String(), "abort")
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// End commits the active transaction if wasOwner is true, the value Begin
// returned. Non-owners leave the transaction to the caller that began it.
func (s *Session) End(wasOwner bool) error {
	if !wasOwner || s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		s.store.metrics.ObserveTransaction(s.kind.String(), "abort")
		return fmt.Errorf("commit %s transaction: %w", s.kind, err)
	}
	s.store.metrics.ObserveTransaction(s.kind.String(), "commit")
	return nil
}

// Active reports whether a transaction is in progress.
func (s *Session) Active() bool {
	return s.tx != nil
}

// WithTx runs fn inside a transaction. If one is already active, fn joins
// it. Otherwise the new transaction is committed when fn returns nil and
// aborted when fn returns an error or panics.
func (s *Session) WithTx(ctx context.Context, kind TxKind, fn func() error) (err error) {
	owner, err := s.Begin(ctx, kind)
	if err != nil {
		return err
	}
	if !owner {
		return fn()
	}

	defer func() {
		if p := recover(); p != nil {
			_ = s.Abort()
			panic(p)
		}
		if err != nil {
			if abortErr := s.Abort(); abortErr != nil {
				err = errors.Join(err, abortErr)
			}
			return
		}
		err = s.End(true)
	}()

	return fn()
}

func (s *Session) q() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.store.db
}
