package store

import (
	"context"
	"fmt"
)

// AppendMember adds member at the end of the indexed sequence. It returns
// false when the member is already present, leaving the order unchanged.
func (s *Session) AppendMember(ctx context.Context, owner, seq, member string) (bool, error) {
	// The WHERE clause keeps SQLite from parsing ON CONFLICT as a join constraint.
	res, err := s.q().ExecContext(ctx, `
		INSERT INTO sequence_members (owner, seq, position, member)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1, ?
		FROM sequence_members
		WHERE owner = ? AND seq = ?
		ON CONFLICT(owner, seq, member) DO NOTHING
	`, owner, seq, member, owner, seq)
	if err != nil {
		return false, fmt.Errorf("append to %s: %w", seq, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("append to %s: %w", seq, err)
	}
	return n > 0, nil
}

// RemoveMember deletes member from the indexed sequence. It returns false
// when the member was absent.
func (s *Session) RemoveMember(ctx context.Context, owner, seq, member string) (bool, error) {
	res, err := s.q().ExecContext(ctx,
		`DELETE FROM sequence_members WHERE owner = ? AND seq = ? AND member = ?`,
		owner, seq, member)
	if err != nil {
		return false, fmt.Errorf("remove from %s: %w", seq, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove from %s: %w", seq, err)
	}
	return n > 0, nil
}

// CountMembers returns the length of the indexed sequence.
func (s *Session) CountMembers(ctx context.Context, owner, seq string) (int, error) {
	var n int
	err := s.q().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sequence_members WHERE owner = ? AND seq = ?`,
		owner, seq).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", seq, err)
	}
	return n, nil
}

// RangeMembers returns up to limit members starting at the 0-based offset.
func (s *Session) RangeMembers(ctx context.Context, owner, seq string, offset, limit int) ([]string, error) {
	rows, err := s.q().QueryContext(ctx, `
		SELECT member
		FROM sequence_members
		WHERE owner = ? AND seq = ?
		ORDER BY position ASC
		LIMIT ? OFFSET ?
	`, owner, seq, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("range %s: %w", seq, err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ClearMembers empties the indexed sequence.
func (s *Session) ClearMembers(ctx context.Context, owner, seq string) error {
	_, err := s.q().ExecContext(ctx,
		`DELETE FROM sequence_members WHERE owner = ? AND seq = ?`, owner, seq)
	if err != nil {
		return fmt.Errorf("clear %s: %w", seq, err)
	}
	return nil
}
