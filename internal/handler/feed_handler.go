package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mtlprog/ccsfeed/internal/feed"
)

// sseWriter delivers feed frames as Server-Sent Events. It is only called
// from the session goroutine, so no locking is needed.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// Send writes one frame; the empty string is the heartbeat.
func (s *sseWriter) Send(text string) error {
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", text); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// handleEventFeed serves the CCS event feed: catch-up replay of all events
// past the resume token, then (unless stream=false) live tailing with
// heartbeats.
// @Summary Contest event feed
// @Description Streams feed frames as Server-Sent Events. Pass since_token to resume after the given event, stream=false for a one-shot snapshot.
// @Tags contests
// @Produce text/event-stream
// @Param contestId path string true "Contest ID"
// @Param since_token query string false "Resume token (last received event id)"
// @Param stream query boolean false "Live tail after catch-up (default true)"
// @Security BasicAuth
// @Router /ccs/api/contests/{contestId}/event-feed [get]
func (h *Handler) handleEventFeed(w http.ResponseWriter, r *http.Request) {
	contest, ok := h.requireContest(w, r)
	if !ok {
		return
	}

	var sinceToken int64
	if raw := r.URL.Query().Get("since_token"); raw != "" {
		token, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || token < 0 {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "since_token must be an event id")
			return
		}
		sinceToken = token
	}

	stream := true
	if raw := r.URL.Query().Get("stream"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "stream must be a boolean")
			return
		}
		stream = value
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		slog.Error("event feed connection cannot stream", "contest_id", contest.ID)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", errStreamUnsupported.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	session := feed.NewSession(h.feedService, contest, &sseWriter{w: w, flusher: flusher})
	if err := session.Run(r.Context(), sinceToken, stream); err != nil {
		// The connection is gone or broken; nothing to report to the
		// client, and other sessions are unaffected.
		slog.Info("event feed session closed",
			"contest_id", contest.ID,
			"last_event_id", session.LastDeliveredID(),
			"error", err,
		)
		return
	}

	slog.Debug("event feed session finished",
		"contest_id", contest.ID,
		"last_event_id", session.LastDeliveredID(),
	)
}
