package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mtlprog/ccsfeed/internal/domain"
)

const (
	// reconcileInterval paces the live-tail passes: state reconciliation
	// followed by delivery of newly appended events.
	reconcileInterval = time.Second

	// heartbeatInterval paces empty keep-alive frames.
	heartbeatInterval = 10 * time.Second

	// snapshotGrace lets queued sends flush before a non-streaming
	// session closes.
	snapshotGrace = time.Second
)

// FrameWriter delivers feed frames to one consumer. Send("") is a
// heartbeat. Implementations are only ever called from the session's own
// goroutine.
type FrameWriter interface {
	Send(text string) error
}

// Session is a per-connection feed delivery state machine: catch-up replay,
// then either a short-grace snapshot close or live tailing with heartbeats.
// Every delivered event has an id strictly greater than all previously
// delivered ones, because delivery always queries past the cursor and the
// cursor only advances.
type Session struct {
	svc       *Service
	contest   *domain.Contest
	writer    FrameWriter
	lastID    int64
	reconcile atomic.Bool // in-flight guard for reconciliation passes

	reconcileEvery time.Duration
	heartbeatEvery time.Duration
	grace          time.Duration
}

// NewSession creates a feed session for one consumer connection.
func NewSession(svc *Service, contest *domain.Contest, writer FrameWriter) *Session {
	return &Session{
		svc:            svc,
		contest:        contest,
		writer:         writer,
		reconcileEvery: reconcileInterval,
		heartbeatEvery: heartbeatInterval,
		grace:          snapshotGrace,
	}
}

// SetIntervals overrides the session timing. Used by tests.
func (s *Session) SetIntervals(reconcile, heartbeat, grace time.Duration) {
	s.reconcileEvery = reconcile
	s.heartbeatEvery = heartbeat
	s.grace = grace
}

// Run drives the session until the context is cancelled, the writer fails,
// or (for non-streaming sessions) the snapshot grace delay expires.
// sinceToken is the resume token of the last event the consumer already has
// (0 for a full replay).
func (s *Session) Run(ctx context.Context, sinceToken int64, stream bool) error {
	s.lastID = sinceToken

	// Catch-up must complete before tailing begins; any failure here
	// fails the whole session.
	if err := s.deliverPending(ctx); err != nil {
		return fmt.Errorf("catch-up: %w", err)
	}

	if !stream {
		select {
		case <-time.After(s.grace):
		case <-ctx.Done():
		}
		return nil
	}

	reconcileTicker := time.NewTicker(s.reconcileEvery)
	defer reconcileTicker.Stop()
	heartbeatTicker := time.NewTicker(s.heartbeatEvery)
	defer heartbeatTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-reconcileTicker.C:
			if err := s.reconcilePass(ctx); err != nil {
				return err
			}
		case <-heartbeatTicker.C:
			if err := s.writer.Send(""); err != nil {
				return fmt.Errorf("heartbeat: %w", err)
			}
		}
	}
}

// reconcilePass synthesizes any missing state event, then delivers events
// appended since the cursor. The guard skips the pass if a previous one is
// still in flight.
func (s *Session) reconcilePass(ctx context.Context) error {
	if !s.reconcile.CompareAndSwap(false, true) {
		return nil
	}
	defer s.reconcile.Store(false)

	if err := s.svc.SyncState(ctx, s.contest); err != nil {
		slog.Error("state reconciliation failed",
			"contest_id", s.contest.ID,
			"error", err,
		)
		return err
	}
	return s.deliverPending(ctx)
}

// deliverPending sends all events past the cursor in id order, advancing
// the cursor after each send.
func (s *Session) deliverPending(ctx context.Context) error {
	events, err := s.svc.Events().List(ctx, s.contest.ID, s.lastID, "")
	if err != nil {
		return err
	}
	for _, event := range events {
		text, err := FrameText(event)
		if err != nil {
			return err
		}
		if err := s.writer.Send(text); err != nil {
			return fmt.Errorf("send event %d: %w", event.ID, err)
		}
		s.lastID = event.ID
	}
	return nil
}

// LastDeliveredID returns the session cursor: the id of the last event sent
// to the consumer.
func (s *Session) LastDeliveredID() int64 {
	return s.lastID
}
