package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MarkerRepository stores contest initialization markers. A marker's
// presence means the contest has a materialized event history.
type MarkerRepository struct {
	pool *pgxpool.Pool
}

// NewMarkerRepository creates a new MarkerRepository.
func NewMarkerRepository(pool *pgxpool.Pool) *MarkerRepository {
	return &MarkerRepository{pool: pool}
}

// Create inserts the initialization marker for a contest.
func (r *MarkerRepository) Create(ctx context.Context, contestID, domainID string) error {
	query, args, err := psql.
		Insert("contest_markers").
		Columns("contest_id", "domain_id").
		Values(contestID, domainID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create marker: %w", err)
	}

	return nil
}

// Exists reports whether a contest has an initialization marker.
func (r *MarkerRepository) Exists(ctx context.Context, contestID string) (bool, error) {
	query, args, err := psql.
		Select("1").
		From("contest_markers").
		Where(sq.Eq{"contest_id": contestID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query marker: %w", err)
	}

	return true, nil
}

// List returns the contest ids of every initialized contest, oldest first.
func (r *MarkerRepository) List(ctx context.Context) ([]string, error) {
	query, args, err := psql.
		Select("contest_id").
		From("contest_markers").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query markers: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan marker: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return ids, nil
}

// Delete removes the initialization marker within the transaction. Deleting
// a missing marker is a no-op.
func (r *MarkerRepository) Delete(ctx context.Context, tx pgx.Tx, contestID string) error {
	query, args, err := psql.
		Delete("contest_markers").
		Where(sq.Eq{"contest_id": contestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete marker: %w", err)
	}

	return nil
}
