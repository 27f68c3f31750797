package handler

import (
	"net/http"

	"github.com/mtlprog/ccsfeed/internal/handler/dto"
)

// handleOperation runs a contest lifecycle operation.
// @Summary Initialize or reset a contest feed
// @Description init materializes the full event history; reset deletes it together with the initialization marker.
// @Tags contests
// @Produce json
// @Param contestId path string true "Contest ID"
// @Param operation path string true "Operation" Enums(init, reset)
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BasicAuth
// @Router /ccs/api/contests/{contestId}/operation/{operation} [post]
func (h *Handler) handleOperation(w http.ResponseWriter, r *http.Request) {
	contestID, ok := extractContestID(w, r)
	if !ok {
		return
	}

	switch r.PathValue("operation") {
	case "init":
		if err := h.feedService.Initialize(r.Context(), contestID); err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "contest feed initialized"})
	case "reset":
		// Verify the contest exists before resetting so a typo'd id is
		// reported instead of silently succeeding.
		if _, err := h.contestRepo.GetByID(r.Context(), contestID); err != nil {
			respondDomainError(w, err)
			return
		}
		if err := h.feedService.Reset(r.Context(), contestID); err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "contest feed reset"})
	default:
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "operation must be 'init' or 'reset'")
	}
}
