package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mtlprog/ccsfeed/internal/domain"
)

// Entity endpoints are read models over the event log: the answer to "what
// does this entity look like now" is the payload of the latest event that
// carried its id.

// collectPayloads returns the deduplicated payloads of all events of one
// type, in first-appearance order with the latest payload winning per id.
func (h *Handler) collectPayloads(
	r *http.Request,
	contestID string,
	eventType domain.EventType,
) ([]json.RawMessage, error) {
	events, err := h.eventRepo.List(r.Context(), contestID, 0, eventType)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var order []json.RawMessage
	for _, event := range events {
		id := payloadID(event.Data)
		if id == "" {
			order = append(order, event.Data)
			continue
		}
		if at, seen := index[id]; seen {
			order[at] = event.Data
			continue
		}
		index[id] = len(order)
		order = append(order, event.Data)
	}
	return order, nil
}

func payloadID(data json.RawMessage) string {
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.ID
}

// handleListEntities serves GET /ccs/api/contests/{contestId}/{entity}.
func (h *Handler) handleListEntities(w http.ResponseWriter, r *http.Request, eventType domain.EventType) {
	contest, ok := h.requireContest(w, r)
	if !ok {
		return
	}

	payloads, err := h.collectPayloads(r, contest.ID, eventType)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if payloads == nil {
		payloads = []json.RawMessage{}
	}
	respondJSON(w, http.StatusOK, payloads)
}

// handleGetEntity serves GET /ccs/api/contests/{contestId}/{entity}/{id}.
func (h *Handler) handleGetEntity(w http.ResponseWriter, r *http.Request, eventType domain.EventType) {
	contest, ok := h.requireContest(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	payloads, err := h.collectPayloads(r, contest.ID, eventType)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	for _, data := range payloads {
		if payloadID(data) == id {
			respondJSON(w, http.StatusOK, data)
			return
		}
	}
	respondEntityNotFound(w, string(eventType))
}

// handleListContests lists the materialized contest payloads of every
// initialized contest.
// @Summary List contests
// @Tags contests
// @Produce json
// @Success 200 {array} feed.ContestPayload
// @Security BasicAuth
// @Router /ccs/api/contests [get]
func (h *Handler) handleListContests(w http.ResponseWriter, r *http.Request) {
	ids, err := h.markerRepo.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	contests := []json.RawMessage{}
	for _, id := range ids {
		event, err := h.eventRepo.LastByType(r.Context(), id, domain.EventTypeContest)
		if err != nil {
			if errors.Is(err, domain.ErrEventNotFound) {
				continue
			}
			respondDomainError(w, err)
			return
		}
		contests = append(contests, event.Data)
	}
	respondJSON(w, http.StatusOK, contests)
}

// handleGetContest serves the materialized contest payload.
func (h *Handler) handleGetContest(w http.ResponseWriter, r *http.Request) {
	contest, ok := h.requireContest(w, r)
	if !ok {
		return
	}

	event, err := h.eventRepo.LastByType(r.Context(), contest.ID, domain.EventTypeContest)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event.Data)
}

// handleGetState serves the latest lifecycle snapshot.
// @Summary Contest state
// @Tags contests
// @Produce json
// @Success 200 {object} feed.StatePayload
// @Security BasicAuth
// @Router /ccs/api/contests/{contestId}/state [get]
func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	contest, ok := h.requireContest(w, r)
	if !ok {
		return
	}

	event, err := h.eventRepo.LastByType(r.Context(), contest.ID, domain.EventTypeState)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event.Data)
}
