package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

type PollHandler struct {
	polls ports.PollService
	feed  ports.FeedService
}

func NewPollHandler(polls ports.PollService, feed ports.FeedService) *PollHandler {
	return &PollHandler{
		polls: polls,
		feed:  feed,
	}
}

type createPollRequest struct {
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
}

// CreatePoll godoc
// @Summary      Creates a poll
// @Description  Builds the option set for the declared type and stores the poll
// @Tags         polls
// @Accept       json
// @Success      201
// @Failure      400
// @Router       /polls [post]
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	poll, err := h.polls.Create(r.Context(), ports.CreatePollInput{
		Question:  req.Question,
		Type:      domain.PollType(req.Type),
		Options:   req.Options,
		CreatorID: userID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, poll)
}

// ListPolls handles GET /polls?type=&creatorId=&page=&limit=
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	input := ports.ListPollsInput{
		Type:     domain.PollType(r.URL.Query().Get("type")),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "limit", 10),
		ViewerID: userID,
	}
	if creator := r.URL.Query().Get("creatorId"); creator != "" {
		creatorID, err := uuid.Parse(creator)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid creator id")
			return
		}
		input.CreatorID = creatorID
	}

	feed, err := h.feed.ListPolls(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feed)
}

// ListVotedPolls handles GET /polls/voted?page=&limit=
func (h *PollHandler) ListVotedPolls(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	feed, err := h.feed.ListVotedPolls(r.Context(), userID, queryInt(r, "page", 1), queryInt(r, "limit", 10))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feed)
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.polls.GetPoll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, poll)
}

func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	poll, err := h.polls.ClosePoll(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, poll)
}

func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	if err := h.polls.DeletePoll(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "poll deleted successfully")
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
