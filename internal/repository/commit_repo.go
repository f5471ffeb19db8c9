package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kyoronginus/Grasshaeru/internal/models"

	"github.com/google/uuid"
)

type CommitSQLite struct {
	db *sql.DB
}

func NewCommitSQLite(db *sql.DB) *CommitSQLite { return &CommitSQLite{db: db} }

var _ CommitRepo = (*CommitSQLite)(nil)

const (
	insertCommitSQL = `
		INSERT INTO commits (id, user_id, message, created_at)
		VALUES (?, ?, ?, ?)
	`
	selectCommitsByOwnerSQL = `
		SELECT id, user_id, message, created_at
		FROM commits WHERE user_id = ? ORDER BY created_at DESC
	`
	countCommitsByDaySQL = `
		SELECT date(created_at), COUNT(*)
		FROM commits
		WHERE user_id = ? AND created_at >= ? AND created_at <= ?
		GROUP BY date(created_at)
	`
)

// Append inserts a new commit. If ID or CreatedAt are empty, they're set.
func (r *CommitSQLite) Append(ctx context.Context, c models.Commit) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	} else {
		c.CreatedAt = c.CreatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertCommitSQL,
		c.ID,
		c.UserID,
		c.Message,
		c.CreatedAt.Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert commit %q: %w", c.ID, err)
	}
	return nil
}

// ListByOwner returns the owner's commits, newest first.
func (r *CommitSQLite) ListByOwner(ctx context.Context, ownerID int64) ([]models.Commit, error) {
	rows, err := r.db.QueryContext(ctx, selectCommitsByOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select commits for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Commit, 0, 64)
	for rows.Next() {
		var c models.Commit
		if err := rows.Scan(&c.ID, &c.UserID, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt = c.CreatedAt.UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByDay returns commit counts keyed by "YYYY-MM-DD" for the owner's
// commits in [from, to].
func (r *CommitSQLite) CountByDay(ctx context.Context, ownerID int64, from, to time.Time) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, countCommitsByDaySQL,
		ownerID,
		from.UTC().Format(sqliteTimeLayout),
		to.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("count commits for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		counts[day] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
