package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
)

type BookmarkHandler struct {
	bookmarks ports.BookmarkService
}

func NewBookmarkHandler(bookmarks ports.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarks: bookmarks,
	}
}

// ToggleBookmark handles POST /polls/{id}/bookmark. Adds the poll to the
// caller's bookmarks, or removes it when already present.
func (h *BookmarkHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	result, err := h.bookmarks.Toggle(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *BookmarkHandler) ListBookmarkedPolls(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	polls, err := h.bookmarks.ListBookmarked(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if polls == nil {
		polls = []*domain.Poll{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"bookmarked_polls": polls})
}
