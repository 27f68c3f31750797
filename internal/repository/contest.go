package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/ccsfeed/internal/domain"
)

// ContestRepository is the read-only view over the judge system's contest,
// problem set and roster tables.
type ContestRepository struct {
	pool *pgxpool.Pool
}

// NewContestRepository creates a new ContestRepository.
func NewContestRepository(pool *pgxpool.Pool) *ContestRepository {
	return &ContestRepository{pool: pool}
}

// GetByID retrieves a contest. Returns domain.ErrContestNotFound when the
// contest does not exist.
func (r *ContestRepository) GetByID(ctx context.Context, contestID string) (*domain.Contest, error) {
	query, args, err := psql.
		Select("id", "domain_id", "title", "begin_at", "end_at", "lock_at", "unlocked").
		From("contests").
		Where(sq.Eq{"id": contestID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var contest domain.Contest
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&contest.ID,
		&contest.DomainID,
		&contest.Title,
		&contest.BeginAt,
		&contest.EndAt,
		&contest.LockAt,
		&contest.Unlocked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContestNotFound
		}
		return nil, fmt.Errorf("query contest: %w", err)
	}

	return &contest, nil
}

// Problems retrieves a contest's problem set in contest order.
func (r *ContestRepository) Problems(ctx context.Context, contestID string) ([]*domain.Problem, error) {
	query, args, err := psql.
		Select("problem_id", "title", "ordinal", "time_limit_ms", "test_count", "color", "rgb").
		From("contest_problems").
		Where(sq.Eq{"contest_id": contestID}).
		OrderBy("ordinal ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query problems: %w", err)
	}
	defer rows.Close()

	var problems []*domain.Problem
	for rows.Next() {
		var p domain.Problem
		err := rows.Scan(&p.ID, &p.Title, &p.Ordinal, &p.TimeLimitMS, &p.TestCount, &p.Color, &p.RGB)
		if err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		problems = append(problems, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return problems, nil
}

// Participants retrieves a contest's registered teams in registration order.
func (r *ContestRepository) Participants(ctx context.Context, contestID string) ([]*domain.Team, error) {
	query, args, err := psql.
		Select("team_id", "name", "display_name", "school", "seat", "unranked").
		From("participants").
		Where(sq.Eq{"contest_id": contestID}).
		OrderBy("registered_at ASC", "team_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		var t domain.Team
		err := rows.Scan(&t.ID, &t.Name, &t.DisplayName, &t.School, &t.Seat, &t.Unranked)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		teams = append(teams, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return teams, nil
}
