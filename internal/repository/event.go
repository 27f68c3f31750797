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

// EventRepository is the append-only feed log store. Event IDs come from a
// single BIGSERIAL sequence, so they are strictly increasing across all
// contests and double as resume tokens.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// Append inserts a new event and returns it with its allocated ID.
func (r *EventRepository) Append(
	ctx context.Context,
	contestID string,
	eventType domain.EventType,
	payload any,
) (*domain.Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal event payload: %w", err)
	}

	query, args, err := psql.
		Insert("events").
		Columns("contest_id", "type", "data").
		Values(contestID, eventType, data).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	event := &domain.Event{
		ContestID: contestID,
		Type:      eventType,
		Data:      data,
	}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&event.ID, &event.CreatedAt); err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}

	return event, nil
}

// List retrieves events for a contest with ID greater than sinceID (0 means
// all), optionally filtered by type, in ascending ID order.
func (r *EventRepository) List(
	ctx context.Context,
	contestID string,
	sinceID int64,
	eventType domain.EventType,
) ([]*domain.Event, error) {
	builder := psql.
		Select("id", "contest_id", "type", "data", "created_at").
		From("events").
		Where(sq.Eq{"contest_id": contestID}).
		OrderBy("id ASC")
	if sinceID > 0 {
		builder = builder.Where(sq.Gt{"id": sinceID})
	}
	if eventType != "" {
		builder = builder.Where(sq.Eq{"type": eventType})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		var event domain.Event
		err := rows.Scan(&event.ID, &event.ContestID, &event.Type, &event.Data, &event.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return events, nil
}

// LastByType retrieves the most recently appended event of the given type
// for a contest. Returns domain.ErrEventNotFound when none exists.
func (r *EventRepository) LastByType(
	ctx context.Context,
	contestID string,
	eventType domain.EventType,
) (*domain.Event, error) {
	query, args, err := psql.
		Select("id", "contest_id", "type", "data", "created_at").
		From("events").
		Where(sq.Eq{"contest_id": contestID, "type": eventType}).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var event domain.Event
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&event.ID, &event.ContestID, &event.Type, &event.Data, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("query last event: %w", err)
	}

	return &event, nil
}

// DeleteByContest removes every event of a contest within the transaction.
// Individual events are immutable; this whole-contest purge backs the reset
// workflow only.
func (r *EventRepository) DeleteByContest(ctx context.Context, tx pgx.Tx, contestID string) error {
	query, args, err := psql.
		Delete("events").
		Where(sq.Eq{"contest_id": contestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete events: %w", err)
	}

	return nil
}
