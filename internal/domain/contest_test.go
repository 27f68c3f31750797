package domain_test

import (
	"testing"
	"time"

	"github.com/mtlprog/ccsfeed/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestContestLifecycle(t *testing.T) {
	begin := time.Date(2024, 5, 4, 9, 0, 0, 0, time.UTC)
	end := begin.Add(5 * time.Hour)
	lockAt := end.Add(-time.Hour)
	contest := &domain.Contest{BeginAt: begin, EndAt: end, LockAt: &lockAt}

	assert.False(t, contest.IsOngoing(begin.Add(-time.Second)))
	assert.True(t, contest.IsOngoing(begin))
	assert.True(t, contest.IsOngoing(end.Add(-time.Second)))
	assert.False(t, contest.IsOngoing(end))

	assert.False(t, contest.IsDone(end.Add(-time.Second)))
	assert.True(t, contest.IsDone(end))

	assert.False(t, contest.IsLocked(lockAt.Add(-time.Second)))
	assert.True(t, contest.IsLocked(lockAt))
	assert.True(t, contest.IsLocked(end.Add(time.Hour)))

	contest.Unlocked = true
	assert.False(t, contest.IsLocked(end.Add(time.Hour)))

	noFreeze := &domain.Contest{BeginAt: begin, EndAt: end}
	assert.False(t, noFreeze.IsLocked(end))
}

func TestRecordStatusCatalog(t *testing.T) {
	assert.Equal(t, "AC", domain.StatusAccepted.ShortText())
	assert.Equal(t, "Wrong Answer", domain.StatusWrongAnswer.Text())
	assert.Empty(t, domain.StatusWaiting.ShortText())

	assert.True(t, domain.StatusAccepted.Solved())
	assert.False(t, domain.StatusAccepted.CausesPenalty())
	assert.False(t, domain.StatusCompileError.CausesPenalty())
	assert.False(t, domain.StatusSystemError.CausesPenalty())
	assert.True(t, domain.StatusWrongAnswer.CausesPenalty())
	assert.True(t, domain.StatusTimeLimitExceeded.CausesPenalty())

	for _, s := range domain.JudgedStatuses() {
		assert.NotEmpty(t, s.ShortText())
		assert.NotEmpty(t, s.Text())
	}
}

func TestRecordHelpers(t *testing.T) {
	rec := &domain.Record{ContestID: domain.NilContestID}
	assert.False(t, rec.InContest())

	rec.ContestID = "11111111-1111-1111-1111-111111111111"
	assert.True(t, rec.InContest())

	assert.True(t, (&domain.Record{Status: domain.StatusWaiting}).IsPending())
	assert.False(t, (&domain.Record{Status: domain.StatusAccepted}).IsPending())
}
