package feed_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mtlprog/ccsfeed/internal/domain"
	"github.com/mtlprog/ccsfeed/internal/feed"
)

// TestRecordListener drives the whole notification path: the records table
// trigger computes the pushed test cases, the listener decodes the payload
// and the projector appends the matching events.
func (s *FeedServiceTestSuite) TestRecordListener() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.seedContest()
	s.setNow(fixtureBegin.Add(time.Hour))
	s.Require().NoError(s.svc.Initialize(ctx, fixtureContestID))
	baseline := len(s.eventTypes(fixtureContestID))

	listener := feed.NewRecordListener(s.pool, s.recordRepo, s.svc)
	done := make(chan error, 1)
	go func() {
		done <- listener.Listen(ctx)
	}()
	// Give the LISTEN a moment to attach; notifications sent before that
	// are dropped by Postgres.
	time.Sleep(500 * time.Millisecond)

	eventCount := func() int { return len(s.eventTypes(fixtureContestID)) }
	waitFor := func(want int) {
		s.Require().Eventually(func() bool {
			return eventCount() >= want
		}, 5*time.Second, 25*time.Millisecond)
		s.Equal(want, eventCount())
	}

	// A new pending submission projects submissions + an open judgement.
	s.addRecord(&domain.Record{
		ID:          fixtureRecordID,
		ContestID:   fixtureContestID,
		ProblemID:   "p-100",
		TeamID:      "42",
		Lang:        "cc",
		Status:      domain.StatusWaiting,
		SubmittedAt: fixtureBegin.Add(time.Hour),
	})
	waitFor(baseline + 2)

	// The judge appends a test case result; the trigger reports only the
	// newly pushed one.
	cases, err := json.Marshal([]domain.TestCase{
		{ID: 1, Status: domain.StatusAccepted, TimeMS: 100},
	})
	s.Require().NoError(err)
	_, err = s.pool.Exec(ctx,
		"UPDATE records SET status = $1, test_cases = $2 WHERE id = $3",
		domain.StatusAccepted, cases, fixtureRecordID)
	s.Require().NoError(err)
	waitFor(baseline + 3)

	// The final verdict lands.
	judgeAt := fixtureBegin.Add(61 * time.Minute)
	_, err = s.pool.Exec(ctx,
		"UPDATE records SET judge_at = $1 WHERE id = $2",
		judgeAt, fixtureRecordID)
	s.Require().NoError(err)
	waitFor(baseline + 4)

	types := s.eventTypes(fixtureContestID)
	s.Equal([]domain.EventType{
		domain.EventTypeSubmissions,
		domain.EventTypeJudgements,
		domain.EventTypeRuns,
		domain.EventTypeJudgements,
	}, types[baseline:])

	cancel()
	s.Require().NoError(<-done)
}
