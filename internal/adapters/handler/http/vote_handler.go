package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pollpulse/api/internal/core/ports"
)

type VoteHandler struct {
	votes ports.VoteService
}

func NewVoteHandler(votes ports.VoteService) *VoteHandler {
	return &VoteHandler{
		votes: votes,
	}
}

type voteRequest struct {
	OptionIndex  *int   `json:"option_index"`
	ResponseText string `json:"response_text"`
}

// VoteOnPoll handles POST /polls/{id}/vote. Exactly one vote per user per
// poll; open-ended polls take a response text, every other type an option
// index.
func (h *VoteHandler) VoteOnPoll(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	poll, err := h.votes.CastVote(r.Context(), ports.VoteInput{
		PollID:       chi.URLParam(r, "id"),
		VoterID:      userID,
		OptionIndex:  req.OptionIndex,
		ResponseText: req.ResponseText,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, poll)
}
