package feed_test

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/mtlprog/ccsfeed/internal/domain"
	"github.com/mtlprog/ccsfeed/internal/feed"
)

// collectWriter is a FrameWriter that records everything it is sent.
type collectWriter struct {
	mu     sync.Mutex
	frames []string
}

func (w *collectWriter) Send(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frames = append(w.frames, text)
	return nil
}

func (w *collectWriter) Frames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.frames...)
}

func (s *FeedServiceTestSuite) frameToken(text string) int64 {
	var frame struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal([]byte(text), &frame))
	token, err := strconv.ParseInt(frame.Token, 10, 64)
	s.Require().NoError(err)
	return token
}

func (s *FeedServiceTestSuite) TestSession_Snapshot() {
	ctx := context.Background()
	s.seedContest()
	s.setNow(fixtureBegin.Add(time.Hour))
	s.Require().NoError(s.svc.Initialize(ctx, fixtureContestID))

	contest, err := s.contestRepo.GetByID(ctx, fixtureContestID)
	s.Require().NoError(err)

	writer := &collectWriter{}
	session := feed.NewSession(s.svc, contest, writer)
	s.Require().NoError(session.Run(ctx, 0, false))

	frames := writer.Frames()
	s.Len(frames, len(s.eventTypes(fixtureContestID)))

	// Tokens are strictly increasing across the replay.
	var lastToken int64
	for _, text := range frames {
		token := s.frameToken(text)
		s.Greater(token, lastToken)
		lastToken = token
	}
	s.Equal(lastToken, session.LastDeliveredID())
}

func (s *FeedServiceTestSuite) TestSession_Resume() {
	ctx := context.Background()
	s.seedContest()
	s.setNow(fixtureBegin.Add(time.Hour))
	s.Require().NoError(s.svc.Initialize(ctx, fixtureContestID))

	contest, err := s.contestRepo.GetByID(ctx, fixtureContestID)
	s.Require().NoError(err)

	first := &collectWriter{}
	s.Require().NoError(feed.NewSession(s.svc, contest, first).Run(ctx, 0, false))
	frames := first.Frames()
	s.Require().NotEmpty(frames)
	lastToken := s.frameToken(frames[len(frames)-1])

	// Resuming from the last delivered token replays nothing.
	second := &collectWriter{}
	s.Require().NoError(feed.NewSession(s.svc, contest, second).Run(ctx, lastToken, false))
	s.Empty(second.Frames())

	// Resuming from one event earlier replays exactly the last event.
	third := &collectWriter{}
	prevToken := s.frameToken(frames[len(frames)-2])
	s.Require().NoError(feed.NewSession(s.svc, contest, third).Run(ctx, prevToken, false))
	s.Require().Len(third.Frames(), 1)
	s.Equal(lastToken, s.frameToken(third.Frames()[0]))
}

func (s *FeedServiceTestSuite) TestSession_Heartbeat() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.seedContest()
	s.setNow(fixtureBegin.Add(time.Hour))
	s.Require().NoError(s.svc.Initialize(ctx, fixtureContestID))
	catchUp := len(s.eventTypes(fixtureContestID))

	contest, err := s.contestRepo.GetByID(ctx, fixtureContestID)
	s.Require().NoError(err)

	writer := &collectWriter{}
	session := feed.NewSession(s.svc, contest, writer)
	// A distant reconcile interval isolates the heartbeat ticker.
	session.SetIntervals(time.Hour, 25*time.Millisecond, time.Second)

	done := make(chan error, 1)
	go func() {
		done <- session.Run(ctx, 0, true)
	}()

	s.Require().Eventually(func() bool {
		return len(writer.Frames()) > catchUp
	}, 5*time.Second, 10*time.Millisecond)
	cancel()
	s.Require().NoError(<-done)

	frames := writer.Frames()
	s.Require().Greater(len(frames), catchUp)

	// Heartbeats are empty frames and do not move the cursor.
	lastToken := s.frameToken(frames[catchUp-1])
	for _, text := range frames[catchUp:] {
		s.Empty(text)
	}
	s.Equal(lastToken, session.LastDeliveredID())
}

func (s *FeedServiceTestSuite) TestSession_LiveTail() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.seedContest()
	s.setNow(fixtureBegin.Add(time.Hour))
	s.Require().NoError(s.svc.Initialize(ctx, fixtureContestID))
	catchUp := len(s.eventTypes(fixtureContestID))

	contest, err := s.contestRepo.GetByID(ctx, fixtureContestID)
	s.Require().NoError(err)

	writer := &collectWriter{}
	session := feed.NewSession(s.svc, contest, writer)
	done := make(chan error, 1)
	go func() {
		done <- session.Run(ctx, 0, true)
	}()

	// Wait for catch-up to finish, then append a new event behind the
	// session's back. The next reconcile pass must pick it up.
	s.Require().Eventually(func() bool {
		return len(writer.Frames()) >= catchUp
	}, 5*time.Second, 10*time.Millisecond)

	appended, err := s.eventRepo.Append(ctx, fixtureContestID, domain.EventTypeTeams, map[string]string{"id": "team-99"})
	s.Require().NoError(err)

	s.Require().Eventually(func() bool {
		return len(writer.Frames()) > catchUp
	}, 5*time.Second, 10*time.Millisecond)

	frames := writer.Frames()
	s.Equal(appended.ID, s.frameToken(frames[len(frames)-1]))

	cancel()
	s.Require().NoError(<-done)
	s.Equal(appended.ID, session.LastDeliveredID())
}
