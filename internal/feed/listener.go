package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/ccsfeed/internal/domain"
	"github.com/mtlprog/ccsfeed/internal/repository"
)

// recordChangeChannel is the Postgres notification channel raised by the
// records table trigger.
const recordChangeChannel = "record_change"

// recordChangeNotice is the trigger's notification payload: the mutated
// record plus the test cases appended by this mutation.
type recordChangeNotice struct {
	RecordID string            `json:"record_id"`
	Pushed   []domain.TestCase `json:"pushed"`
}

// RecordListener subscribes to judging record mutations via LISTEN/NOTIFY
// and drives the mutation projector. The channel is at-least-once from the
// engine's point of view; malformed payloads and records deleted between
// notify and load are skipped, projector failures only log.
type RecordListener struct {
	pool    *pgxpool.Pool
	records *repository.RecordRepository
	svc     *Service
}

// NewRecordListener creates a new RecordListener.
func NewRecordListener(pool *pgxpool.Pool, records *repository.RecordRepository, svc *Service) *RecordListener {
	return &RecordListener{
		pool:    pool,
		records: records,
		svc:     svc,
	}
}

// Listen blocks consuming record change notifications until the context is
// cancelled.
func (l *RecordListener) Listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+recordChangeChannel); err != nil {
		return fmt.Errorf("listen %s: %w", recordChangeChannel, err)
	}

	slog.Info("listening for record changes", "channel", recordChangeChannel)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("wait for notification: %w", err)
		}

		var notice recordChangeNotice
		if err := json.Unmarshal([]byte(notification.Payload), &notice); err != nil {
			slog.Error("malformed record change payload", "error", err)
			continue
		}

		rec, err := l.records.GetByID(ctx, notice.RecordID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				continue
			}
			slog.Error("load changed record failed", "record_id", notice.RecordID, "error", err)
			continue
		}

		if err := l.svc.OnRecordChange(ctx, rec, notice.Pushed); err != nil {
			slog.Error("project record change failed", "record_id", rec.ID, "error", err)
		}
	}
}
