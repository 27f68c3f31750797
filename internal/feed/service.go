package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/ccsfeed/internal/domain"
	"github.com/mtlprog/ccsfeed/internal/repository"
)

// Service is the event feed engine. The initialization workflow and the
// record projector are the only writers of entity events; state events are
// synthesized by SyncState. All reads go through the append-only event log,
// so no locking is needed beyond the database's id allocation.
type Service struct {
	pool     *pgxpool.Pool
	events   *repository.EventRepository
	markers  *repository.MarkerRepository
	contests *repository.ContestRepository
	records  *repository.RecordRepository
	trans    Translator
	now      func() time.Time
}

// NewService creates a new Service.
func NewService(
	pool *pgxpool.Pool,
	events *repository.EventRepository,
	markers *repository.MarkerRepository,
	contests *repository.ContestRepository,
	records *repository.RecordRepository,
	trans Translator,
) *Service {
	return &Service{
		pool:     pool,
		events:   events,
		markers:  markers,
		contests: contests,
		records:  records,
		trans:    trans,
		now:      time.Now,
	}
}

// SetNow overrides the service clock. Used by tests.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// Events exposes the event log store for read-only consumers.
func (s *Service) Events() *repository.EventRepository {
	return s.events
}

// Contests exposes the contest lookup for handlers.
func (s *Service) Contests() *repository.ContestRepository {
	return s.contests
}

// IsInitialized reports whether a contest has a materialized event history.
func (s *Service) IsInitialized(ctx context.Context, contestID string) (bool, error) {
	return s.markers.Exists(ctx, contestID)
}

// Initialize materializes the full event history for a contest.
//
// Preconditions are checked in order: already initialized, empty problem
// set, empty roster. On success the marker is inserted first, then events
// are appended in the fixed CCS bootstrap order. The bulk append is not
// atomic; a crash partway leaves a prefix-consistent log that must be reset
// before retrying.
func (s *Service) Initialize(ctx context.Context, contestID string) error {
	contest, err := s.contests.GetByID(ctx, contestID)
	if err != nil {
		return err
	}

	initialized, err := s.markers.Exists(ctx, contest.ID)
	if err != nil {
		return err
	}
	if initialized {
		return domain.ErrAlreadyInitialized
	}

	problems, err := s.contests.Problems(ctx, contest.ID)
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		return domain.ErrNoProblems
	}

	teams, err := s.contests.Participants(ctx, contest.ID)
	if err != nil {
		return err
	}
	if len(teams) == 0 {
		return domain.ErrNoParticipants
	}

	if err := s.markers.Create(ctx, contest.ID, contest.DomainID); err != nil {
		return err
	}

	if err := s.materialize(ctx, contest, problems, teams); err != nil {
		return fmt.Errorf("materialize contest %s: %w", contest.ID, err)
	}

	slog.Info("contest initialized", "contest_id", contest.ID)
	return nil
}

// materialize appends the bootstrap event sequence: contest, state,
// languages, problems, groups, organizations, teams, judgement types, then
// the existing records.
func (s *Service) materialize(
	ctx context.Context,
	contest *domain.Contest,
	problems []*domain.Problem,
	teams []*domain.Team,
) error {
	if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeContest, s.trans.ToContest(contest)); err != nil {
		return err
	}

	if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeState, s.trans.ToState(contest, s.now())); err != nil {
		return err
	}

	for _, lang := range Languages() {
		if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeLanguages, lang); err != nil {
			return err
		}
	}

	for _, p := range problems {
		if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeProblems, s.trans.ToProblem(contest, p)); err != nil {
			return err
		}
	}

	for _, group := range Groups() {
		if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeGroups, group); err != nil {
			return err
		}
	}

	// Organizations are deduplicated by the stable hash of their
	// identifying field; first team wins.
	seen := make(map[string]bool)
	for _, t := range teams {
		orgID := OrganizationID(t)
		if seen[orgID] {
			continue
		}
		seen[orgID] = true
		if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeOrganizations, s.trans.ToOrganization(orgID, t)); err != nil {
			return err
		}
	}

	for _, t := range teams {
		if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeTeams, s.trans.ToTeam(t)); err != nil {
			return err
		}
	}

	for _, jt := range JudgementTypes() {
		if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeJudgementTypes, jt); err != nil {
			return err
		}
	}

	records, err := s.records.ListByContest(ctx, contest.ID)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeSubmissions, s.trans.ToSubmission(contest, rec)); err != nil {
			return err
		}
		if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeJudgements, s.trans.ToJudgement(contest, rec)); err != nil {
			return err
		}
		for _, tc := range rec.TestCases {
			if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeRuns, s.trans.ToRun(contest, rec, tc)); err != nil {
				return err
			}
		}
	}

	return nil
}

// Reset deletes a contest's initialization marker and its whole event
// history in one transaction. Resetting an uninitialized contest is a no-op.
func (s *Service) Reset(ctx context.Context, contestID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := s.markers.Delete(ctx, tx, contestID); err != nil {
		return err
	}
	if err := s.events.DeleteByContest(ctx, tx, contestID); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("contest reset", "contest_id", contestID)
	return nil
}

// SyncState is the state reconciliation pass: it appends a fresh lifecycle
// snapshot when a milestone has newly occurred. At most one state event is
// emitted per pass, and set fields are never retracted because the snapshot
// is recomputed from the same monotone lifecycle predicates.
func (s *Service) SyncState(ctx context.Context, contest *domain.Contest) error {
	var last *StatePayload
	lastEvent, err := s.events.LastByType(ctx, contest.ID, domain.EventTypeState)
	if err != nil && !errors.Is(err, domain.ErrEventNotFound) {
		return err
	}
	if lastEvent != nil {
		var state StatePayload
		if err := json.Unmarshal(lastEvent.Data, &state); err != nil {
			return fmt.Errorf("unmarshal state event %d: %w", lastEvent.ID, err)
		}
		last = &state
	}

	now := s.now()
	ongoing := contest.IsOngoing(now)
	done := contest.IsDone(now)
	locked := contest.IsLocked(now)

	emit := last == nil ||
		(ongoing && last.Started == nil) ||
		(ongoing && locked && last.Frozen == nil) ||
		(done && last.Ended == nil) ||
		(done && !locked && last.Thawed == nil)
	if !emit {
		return nil
	}

	if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeState, s.trans.ToState(contest, now)); err != nil {
		return err
	}
	return nil
}

// OnRecordChange is the mutation projector entry point, invoked once per
// judging record mutation. Exactly one of three cases applies: a brand-new
// pending submission, a final judgement, or newly pushed test case results.
// Anything else is mirrored as a no-op.
func (s *Service) OnRecordChange(ctx context.Context, rec *domain.Record, pushed []domain.TestCase) error {
	if !rec.InContest() {
		return nil
	}

	contest, err := s.contests.GetByID(ctx, rec.ContestID)
	if err != nil {
		if errors.Is(err, domain.ErrContestNotFound) {
			return nil
		}
		return err
	}

	initialized, err := s.markers.Exists(ctx, contest.ID)
	if err != nil {
		return err
	}
	if !initialized {
		return nil
	}

	switch {
	case rec.IsPending():
		if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeSubmissions, s.trans.ToSubmission(contest, rec)); err != nil {
			return err
		}
		if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeJudgements, s.trans.ToJudgement(contest, rec)); err != nil {
			return err
		}
	case rec.JudgeAt != nil:
		if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeJudgements, s.trans.ToJudgement(contest, rec)); err != nil {
			return err
		}
	case len(pushed) > 0:
		for _, tc := range pushed {
			if _, err := s.events.Append(ctx, contest.ID, domain.EventTypeRuns, s.trans.ToRun(contest, rec, tc)); err != nil {
				return err
			}
		}
	}

	return nil
}

// frame is the wire shape of one delivered feed event.
type frame struct {
	Type  domain.EventType `json:"type"`
	ID    *string          `json:"id"`
	Data  json.RawMessage  `json:"data"`
	Token string           `json:"token"`
}

// FrameText encodes an event as a feed frame: the event type, the payload's
// own id restated (null when absent), the payload, and the event id as the
// resume token for reconnects.
func FrameText(event *domain.Event) (string, error) {
	var payload struct {
		ID string `json:"id"`
	}
	f := frame{
		Type:  event.Type,
		Data:  event.Data,
		Token: strconv.FormatInt(event.ID, 10),
	}
	if err := json.Unmarshal(event.Data, &payload); err == nil && payload.ID != "" {
		f.ID = &payload.ID
	}

	out, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("marshal frame: %w", err)
	}
	return string(out), nil
}
