package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type optionJSON struct {
	OptionText string `json:"option_text"`
	Votes      int    `json:"votes"`
}

type pollJSON struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Type      string `json:"type"`
	Options   []optionJSON
	Responses []struct {
		VoterID      string `json:"voter_id"`
		ResponseText string `json:"response_text"`
	} `json:"responses"`
	Voters       []string `json:"voters"`
	Closed       bool     `json:"closed"`
	CreatorID    string   `json:"creator_id"`
	UserHasVoted bool     `json:"user_has_voted"`
}

type feedJSON struct {
	Polls       []pollJSON `json:"polls"`
	CurrentPage int        `json:"current_page"`
	TotalPages  int        `json:"total_pages"`
	TotalPolls  int        `json:"total_polls"`
	Stats       []struct {
		Label string `json:"label"`
		Type  string `json:"type"`
		Count int    `json:"count"`
	} `json:"stats"`
}

func createPoll(t *testing.T, app *TestApp, token, question, pollType string, options []string) pollJSON {
	t.Helper()

	resp := app.doJSON(t, http.MethodPost, "/api/v1/polls", token, map[string]any{
		"question": question,
		"type":     pollType,
		"options":  options,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[pollJSON](t, resp)
}

func TestPollLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	creatorID, creatorToken := app.createUserAndToken(t)
	_, otherToken := app.createUserAndToken(t)

	poll := createPoll(t, app, creatorToken, "Tabs or spaces?", "single-choice", []string{"Tabs", "Spaces"})
	assert.Equal(t, creatorID.String(), poll.CreatorID)
	require.Len(t, poll.Options, 2)
	assert.Equal(t, "Tabs", poll.Options[0].OptionText)
	assert.Zero(t, poll.Options[0].Votes)

	t.Run("get by id", func(t *testing.T) {
		resp := app.doJSON(t, http.MethodGet, "/api/v1/polls/"+poll.ID, creatorToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decodeBody[pollJSON](t, resp)
		assert.Equal(t, poll.ID, got.ID)
		assert.Equal(t, "Tabs or spaces?", got.Question)
	})

	t.Run("feed lists the poll with stats", func(t *testing.T) {
		resp := app.doJSON(t, http.MethodGet, "/api/v1/polls", otherToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		feed := decodeBody[feedJSON](t, resp)

		assert.Equal(t, 1, feed.TotalPolls)
		assert.Equal(t, 1, feed.CurrentPage)
		require.Len(t, feed.Polls, 1)
		assert.False(t, feed.Polls[0].UserHasVoted)

		require.Len(t, feed.Stats, 5)
		assert.Equal(t, "single-choice", feed.Stats[0].Type)
		assert.Equal(t, 1, feed.Stats[0].Count)
	})

	t.Run("close is creator-only and one-way", func(t *testing.T) {
		resp := app.doJSON(t, http.MethodPost, "/api/v1/polls/"+poll.ID+"/close", otherToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()

		resp = app.doJSON(t, http.MethodPost, "/api/v1/polls/"+poll.ID+"/close", creatorToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		closed := decodeBody[pollJSON](t, resp)
		assert.True(t, closed.Closed)

		resp = app.doJSON(t, http.MethodPost, "/api/v1/polls/"+poll.ID+"/close", creatorToken, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("delete is creator-only", func(t *testing.T) {
		resp := app.doJSON(t, http.MethodDelete, "/api/v1/polls/"+poll.ID, otherToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()

		resp = app.doJSON(t, http.MethodDelete, "/api/v1/polls/"+poll.ID, creatorToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = app.doJSON(t, http.MethodGet, "/api/v1/polls/"+poll.ID, creatorToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestCreatePollPerType(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := app.createUserAndToken(t)

	t.Run("rating gets the fixed 1..5 scale", func(t *testing.T) {
		poll := createPoll(t, app, token, "Rate the release", "rating", nil)
		require.Len(t, poll.Options, 5)
		assert.Equal(t, "1", poll.Options[0].OptionText)
		assert.Equal(t, "5", poll.Options[4].OptionText)
	})

	t.Run("yes/no ignores submitted options", func(t *testing.T) {
		poll := createPoll(t, app, token, "Ship it?", "yes/no", []string{"Maybe"})
		require.Len(t, poll.Options, 2)
		assert.Equal(t, "Yes", poll.Options[0].OptionText)
		assert.Equal(t, "No", poll.Options[1].OptionText)
	})

	t.Run("open-ended has no options", func(t *testing.T) {
		poll := createPoll(t, app, token, "What should we build next?", "open-ended", nil)
		assert.Empty(t, poll.Options)
	})

	t.Run("single-choice needs two options", func(t *testing.T) {
		resp := app.doJSON(t, http.MethodPost, "/api/v1/polls", token, map[string]any{
			"question": "Only one?",
			"type":     "single-choice",
			"options":  []string{"Lonely"},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		resp := app.doJSON(t, http.MethodPost, "/api/v1/polls", token, map[string]any{
			"question": "Ranked?",
			"type":     "ranked-choice",
			"options":  []string{"A", "B"},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestFeedPagination(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := app.createUserAndToken(t)
	for range 12 {
		createPoll(t, app, token, "Ship it?", "yes/no", nil)
	}

	resp := app.doJSON(t, http.MethodGet, "/api/v1/polls?page=2&limit=5", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	feed := decodeBody[feedJSON](t, resp)

	assert.Equal(t, 12, feed.TotalPolls)
	assert.Equal(t, 3, feed.TotalPages)
	assert.Equal(t, 2, feed.CurrentPage)
	assert.Len(t, feed.Polls, 5)
}
