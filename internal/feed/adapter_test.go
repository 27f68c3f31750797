package feed_test

import (
	"testing"
	"time"

	"github.com/mtlprog/ccsfeed/internal/domain"
	"github.com/mtlprog/ccsfeed/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBegin = time.Date(2024, 5, 4, 9, 0, 0, 0, time.UTC)

func testContest(lockOffset time.Duration) *domain.Contest {
	c := &domain.Contest{
		ID:       "11111111-1111-1111-1111-111111111111",
		DomainID: "system",
		Title:    "Spring Invitational",
		BeginAt:  testBegin,
		EndAt:    testBegin.Add(5 * time.Hour),
	}
	if lockOffset != 0 {
		lockAt := c.EndAt.Add(-lockOffset)
		c.LockAt = &lockAt
	}
	return c
}

func TestToContest(t *testing.T) {
	adapter := feed.NewAdapter()

	payload := adapter.ToContest(testContest(time.Hour))
	assert.Equal(t, "Spring Invitational", payload.Name)
	assert.Equal(t, "Spring Invitational", payload.FormalName)
	assert.Equal(t, "2024-05-04T09:00:00.000+00:00", payload.StartTime)
	assert.Equal(t, "5:00:00.000", payload.Duration)
	assert.Equal(t, "pass-fail", payload.ScoreboardType)
	require.NotNil(t, payload.ScoreboardFreezeDuration)
	assert.Equal(t, "1:00:00.000", *payload.ScoreboardFreezeDuration)
	assert.Equal(t, 20, payload.PenaltyTime)

	noFreeze := adapter.ToContest(testContest(0))
	assert.Nil(t, noFreeze.ScoreboardFreezeDuration)
}

func TestToState(t *testing.T) {
	adapter := feed.NewAdapter()
	contest := testContest(time.Hour)

	t.Run("before start", func(t *testing.T) {
		state := adapter.ToState(contest, testBegin.Add(-time.Minute))
		assert.Nil(t, state.Started)
		assert.Nil(t, state.Frozen)
		assert.Nil(t, state.Ended)
		assert.Nil(t, state.Thawed)
		assert.Nil(t, state.Finalized)
		assert.Nil(t, state.EndOfUpdates)
	})

	t.Run("ongoing", func(t *testing.T) {
		state := adapter.ToState(contest, testBegin.Add(time.Hour))
		require.NotNil(t, state.Started)
		assert.Equal(t, "2024-05-04T09:00:00.000+00:00", *state.Started)
		assert.Nil(t, state.Frozen)
		assert.Nil(t, state.Ended)
	})

	t.Run("frozen", func(t *testing.T) {
		state := adapter.ToState(contest, contest.EndAt.Add(-30*time.Minute))
		require.NotNil(t, state.Started)
		require.NotNil(t, state.Frozen)
		assert.Equal(t, "2024-05-04T13:00:00.000+00:00", *state.Frozen)
		assert.Nil(t, state.Ended)
		assert.Nil(t, state.Thawed)
	})

	t.Run("done while still locked", func(t *testing.T) {
		state := adapter.ToState(contest, contest.EndAt.Add(time.Minute))
		require.NotNil(t, state.Ended)
		assert.Equal(t, "2024-05-04T14:00:00.000+00:00", *state.Ended)
		require.NotNil(t, state.Frozen)
		assert.Nil(t, state.Thawed)
		require.NotNil(t, state.Finalized)
		assert.Equal(t, "2024-05-04T14:01:00.000+00:00", *state.Finalized)
	})

	t.Run("done and unlocked", func(t *testing.T) {
		unlocked := testContest(time.Hour)
		unlocked.Unlocked = true
		now := unlocked.EndAt.Add(time.Minute)
		state := adapter.ToState(unlocked, now)
		require.NotNil(t, state.Thawed)
		assert.Equal(t, feed.FormatTime(now), *state.Thawed)
		require.NotNil(t, state.Frozen)
	})

	t.Run("done without freeze", func(t *testing.T) {
		plain := testContest(0)
		state := adapter.ToState(plain, plain.EndAt.Add(time.Minute))
		assert.Nil(t, state.Frozen)
		require.NotNil(t, state.Thawed)
	})
}

func TestToProblem(t *testing.T) {
	adapter := feed.NewAdapter()
	contest := testContest(0)

	payload := adapter.ToProblem(contest, &domain.Problem{
		ID:          "p-100",
		Title:       "Balanced Brackets",
		Ordinal:     2,
		TimeLimitMS: 2000,
		TestCount:   25,
		Color:       "red",
		RGB:         "#ff0000",
	})
	assert.Equal(t, "C", payload.Label)
	assert.Equal(t, 2, payload.Ordinal)
	assert.Equal(t, 2.0, payload.TimeLimit)
	assert.Equal(t, 25, payload.TestDataCount)

	defaults := adapter.ToProblem(contest, &domain.Problem{ID: "p-101", Ordinal: 0})
	assert.Equal(t, "A", defaults.Label)
	assert.Equal(t, "white", defaults.Color)
	assert.Equal(t, "#ffffff", defaults.RGB)
}

func TestToTeam(t *testing.T) {
	adapter := feed.NewAdapter()

	ranked := adapter.ToTeam(&domain.Team{
		ID:     "42",
		Name:   "tourist",
		School: "ITMO",
		Seat:   "A-12",
	})
	assert.Equal(t, "team-42", ranked.ID)
	assert.Equal(t, "A-12", ranked.Label)
	assert.Equal(t, "tourist", ranked.DisplayName)
	assert.Equal(t, []string{"participants"}, ranked.GroupIDs)

	observer := adapter.ToTeam(&domain.Team{ID: "43", Name: "guest", Unranked: true})
	assert.Equal(t, "team-43", observer.Label) // no seat falls back to the team id
	assert.Equal(t, "⭐guest", observer.DisplayName)
	assert.Equal(t, []string{"observers"}, observer.GroupIDs)
}

func TestOrganizationID(t *testing.T) {
	bySchool := feed.OrganizationID(&domain.Team{ID: "1", Name: "alpha", School: "ITMO"})
	sameSchool := feed.OrganizationID(&domain.Team{ID: "2", Name: "beta", School: "ITMO"})
	assert.Equal(t, bySchool, sameSchool)
	assert.Len(t, bySchool, 32)

	byName := feed.OrganizationID(&domain.Team{ID: "3", Name: "gamma"})
	assert.NotEqual(t, bySchool, byName)
}

func TestToJudgement(t *testing.T) {
	adapter := feed.NewAdapter()
	contest := testContest(0)
	rec := &domain.Record{
		ID:          "22222222-2222-2222-2222-222222222222",
		ContestID:   contest.ID,
		ProblemID:   "p-100",
		TeamID:      "42",
		Lang:        "cc.cc14o2",
		Status:      domain.StatusWaiting,
		SubmittedAt: testBegin.Add(30 * time.Minute),
	}

	open := adapter.ToJudgement(contest, rec)
	assert.Equal(t, "j-"+rec.ID, open.ID)
	assert.Equal(t, rec.ID, open.SubmissionID)
	assert.Nil(t, open.JudgementTypeID)
	assert.Nil(t, open.EndTime)
	assert.Equal(t, "0:30:00.000", open.StartContestTime)

	judgeAt := rec.SubmittedAt.Add(10 * time.Second)
	rec.Status = domain.StatusAccepted
	rec.JudgeAt = &judgeAt
	final := adapter.ToJudgement(contest, rec)
	require.NotNil(t, final.JudgementTypeID)
	assert.Equal(t, "AC", *final.JudgementTypeID)
	require.NotNil(t, final.EndContestTime)
	assert.Equal(t, "0:30:10.000", *final.EndContestTime)
}

func TestToSubmissionAndRun(t *testing.T) {
	adapter := feed.NewAdapter()
	contest := testContest(0)
	rec := &domain.Record{
		ID:          "22222222-2222-2222-2222-222222222222",
		ContestID:   contest.ID,
		ProblemID:   "p-100",
		TeamID:      "42",
		Lang:        "py.py3",
		SubmittedAt: testBegin.Add(time.Hour),
	}

	sub := adapter.ToSubmission(contest, rec)
	assert.Equal(t, "py", sub.LanguageID)
	assert.Equal(t, "team-42", sub.TeamID)
	assert.Equal(t, "1:00:00.000", sub.ContestTime)

	run := adapter.ToRun(contest, rec, domain.TestCase{ID: 3, Status: domain.StatusWrongAnswer, TimeMS: 1500})
	assert.Equal(t, "r-"+rec.ID+"-3", run.ID)
	assert.Equal(t, "j-"+rec.ID, run.JudgementID)
	assert.Equal(t, 3, run.Ordinal)
	assert.Equal(t, "WA", run.JudgementTypeID)
	assert.Equal(t, 1.5, run.RunTime)
	assert.Equal(t, "1:00:01.500", run.ContestTime)
}
