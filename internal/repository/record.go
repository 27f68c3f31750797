package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/ccsfeed/internal/domain"
)

// RecordRepository is the read-only view over the judge system's judging
// records.
type RecordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{pool: pool}
}

var recordColumns = []string{
	"id", "domain_id", "contest_id", "problem_id", "team_id",
	"lang", "status", "submitted_at", "judge_at", "test_cases",
}

func scanRecord(row pgx.Row) (*domain.Record, error) {
	var rec domain.Record
	var testCases []byte
	err := row.Scan(
		&rec.ID,
		&rec.DomainID,
		&rec.ContestID,
		&rec.ProblemID,
		&rec.TeamID,
		&rec.Lang,
		&rec.Status,
		&rec.SubmittedAt,
		&rec.JudgeAt,
		&testCases,
	)
	if err != nil {
		return nil, err
	}
	if len(testCases) > 0 {
		if err := json.Unmarshal(testCases, &rec.TestCases); err != nil {
			return nil, fmt.Errorf("unmarshal test cases: %w", err)
		}
	}
	return &rec, nil
}

// GetByID retrieves a single record. Returns domain.ErrRecordNotFound when
// the record does not exist.
func (r *RecordRepository) GetByID(ctx context.Context, recordID string) (*domain.Record, error) {
	query, args, err := psql.
		Select(recordColumns...).
		From("records").
		Where(sq.Eq{"id": recordID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("query record: %w", err)
	}

	return rec, nil
}

// ListByContest retrieves all records of a contest in submission-time order.
func (r *RecordRepository) ListByContest(ctx context.Context, contestID string) ([]*domain.Record, error) {
	query, args, err := psql.
		Select(recordColumns...).
		From("records").
		Where(sq.Eq{"contest_id": contestID}).
		OrderBy("submitted_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []*domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}
