package feed_test

import (
	"testing"
	"time"

	"github.com/mtlprog/ccsfeed/internal/domain"
	"github.com/mtlprog/ccsfeed/internal/feed"
	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	at := time.Date(2024, 5, 4, 9, 0, 0, 0, loc)
	assert.Equal(t, "2024-05-04T09:00:00.000+08:00", feed.FormatTime(at))

	withMillis := at.Add(250 * time.Millisecond)
	assert.Equal(t, "2024-05-04T09:00:00.250+08:00", feed.FormatTime(withMillis))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00:00.000", feed.FormatDuration(0))
	assert.Equal(t, "5:00:00.000", feed.FormatDuration(5*time.Hour))
	assert.Equal(t, "1:02:03.450", feed.FormatDuration(time.Hour+2*time.Minute+3*time.Second+450*time.Millisecond))
	assert.Equal(t, "-0:30:00.000", feed.FormatDuration(-30*time.Minute))
	// Hours are not zero padded and exceed 24 for long contests.
	assert.Equal(t, "26:00:00.000", feed.FormatDuration(26*time.Hour))
}

func TestContestTime(t *testing.T) {
	begin := time.Date(2024, 5, 4, 9, 0, 0, 0, time.UTC)
	contest := &domain.Contest{BeginAt: begin, EndAt: begin.Add(5 * time.Hour)}

	assert.Equal(t, "0:00:00.000", feed.ContestTime(contest, begin))
	assert.Equal(t, "1:15:00.000", feed.ContestTime(contest, begin.Add(75*time.Minute)))
	assert.Equal(t, "-0:10:00.000", feed.ContestTime(contest, begin.Add(-10*time.Minute)))
}
