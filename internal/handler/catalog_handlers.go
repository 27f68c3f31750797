package handler

import (
	"net/http"

	"github.com/mtlprog/ccsfeed/internal/feed"
)

// Catalog endpoints serve the fixed languages, groups and judgement-types
// catalogs. They are contest-scoped only to enforce the initialized check;
// the payloads do not vary per contest.

// handleListLanguages lists the language catalog.
// @Summary List languages
// @Tags catalogs
// @Produce json
// @Success 200 {array} feed.LanguagePayload
// @Security BasicAuth
// @Router /ccs/api/contests/{contestId}/languages [get]
func (h *Handler) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireContest(w, r); !ok {
		return
	}
	respondJSON(w, http.StatusOK, feed.Languages())
}

func (h *Handler) handleGetLanguage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireContest(w, r); !ok {
		return
	}
	id := r.PathValue("id")
	for _, lang := range feed.Languages() {
		if lang.ID == id {
			respondJSON(w, http.StatusOK, lang)
			return
		}
	}
	respondEntityNotFound(w, "language")
}

// handleListGroups lists the fixed group catalog.
// @Summary List groups
// @Tags catalogs
// @Produce json
// @Success 200 {array} feed.GroupPayload
// @Security BasicAuth
// @Router /ccs/api/contests/{contestId}/groups [get]
func (h *Handler) handleListGroups(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireContest(w, r); !ok {
		return
	}
	respondJSON(w, http.StatusOK, feed.Groups())
}

func (h *Handler) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireContest(w, r); !ok {
		return
	}
	id := r.PathValue("id")
	for _, group := range feed.Groups() {
		if group.ID == id {
			respondJSON(w, http.StatusOK, group)
			return
		}
	}
	respondEntityNotFound(w, "group")
}

// handleListJudgementTypes lists the judgement type catalog.
// @Summary List judgement types
// @Tags catalogs
// @Produce json
// @Success 200 {array} feed.JudgementTypePayload
// @Security BasicAuth
// @Router /ccs/api/contests/{contestId}/judgement-types [get]
func (h *Handler) handleListJudgementTypes(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireContest(w, r); !ok {
		return
	}
	respondJSON(w, http.StatusOK, feed.JudgementTypes())
}

func (h *Handler) handleGetJudgementType(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireContest(w, r); !ok {
		return
	}
	id := r.PathValue("id")
	for _, jt := range feed.JudgementTypes() {
		if jt.ID == id {
			respondJSON(w, http.StatusOK, jt)
			return
		}
	}
	respondEntityNotFound(w, "judgement type")
}
