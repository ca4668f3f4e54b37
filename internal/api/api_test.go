package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkarpov/balda-go/internal/api"
	"github.com/nkarpov/balda-go/internal/api/apierr"
	"github.com/nkarpov/balda-go/internal/api/response"
	"github.com/nkarpov/balda-go/internal/factory"
	"github.com/nkarpov/balda-go/internal/testutil"
)

// testServer wires the full API against in-memory storage
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	app.LoadTestDictionary()

	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		AuthService:    app.AuthService,
		GameController: app.GameController,
		BotService:     app.BotService,
		ScoringService: app.ScoringService,
		HubManager:     app.HubManager,
		Broadcaster:    app.Broadcaster,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGuestPlayer(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"display_name": "Анна"}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "Анна", resp.Player.DisplayName)
	assert.True(t, resp.Player.IsGuest)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{
		"username":     "anna",
		"password":     "secret123",
		"display_name": "Анна",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registerResp))
	assert.False(t, registerResp.Player.IsGuest)

	loginBody := map[string]string{
		"username": "anna",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	assert.Equal(t, registerResp.Player.ID, loginResp.Player.ID)
}

func TestLoginWithWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{
		"username": "anna",
		"password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	loginBody := map[string]string{
		"username": "anna",
		"password": "wrong",
	}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeInvalidCredentials, errorCode(t, rr))
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Борис")

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var meResp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &meResp))
	assert.Equal(t, "Борис", meResp.DisplayName)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateAndGetGame(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Анна")

	body := map[string]any{"size": 5, "base_word": "балда"}
	rr := ts.request(http.MethodPost, "/api/v1/games", body, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var created response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	assert.Equal(t, "БАЛДА", created.BaseWord)
	assert.Equal(t, "waiting", created.Status)
	assert.Len(t, created.Players, 1)
	assert.Equal(t, int64(1), created.Version)

	// The base word occupies the middle row
	assert.Equal(t, []string{"Б", "А", "Л", "Д", "А"}, created.Board[2])

	rr = ts.request(http.MethodGet, "/api/v1/games/"+created.ID, nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateGameRejectsBadBoardSize(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Анна")

	body := map[string]any{"size": 2, "base_word": "КОЛ"}
	rr := ts.request(http.MethodPost, "/api/v1/games", body, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidBoardSize, errorCode(t, rr))
}

func TestGetMissingGame(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Анна")

	rr := ts.request(http.MethodGet, "/api/v1/games/missing", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, errorCode(t, rr))
}

func TestJoinGame(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuestPlayer(t, ts, "Анна")
	token2 := createGuestPlayer(t, ts, "Борис")

	gameID := createGame(t, ts, token1, 5, "БАЛДА")

	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/join", nil, token2)
	assert.Equal(t, http.StatusOK, rr.Code)

	var joined response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joined))
	assert.Len(t, joined.Players, 2)
	assert.Equal(t, "in_progress", joined.Status)
}

func TestFullGameFlow(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuestPlayer(t, ts, "Анна")
	token2 := createGuestPlayer(t, ts, "Борис")

	gameID := createGame(t, ts, token1, 5, "БАЛДА")

	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/join", nil, token2)
	require.Equal(t, http.StatusOK, rr.Code)

	// Second player cannot move out of turn
	moveBody := map[string]any{"row": 1, "col": 1, "letter": "В", "word": "ВАЛ"}
	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/moves", moveBody, token2)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotYourTurn, errorCode(t, rr))

	// The creator plays ВАЛ by placing В above the А of БАЛДА
	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/moves", moveBody, token1)
	assert.Equal(t, http.StatusOK, rr.Code)

	var afterMove response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &afterMove))
	assert.Equal(t, "В", afterMove.Board[1][1])
	assert.Len(t, afterMove.Moves, 1)
	assert.Contains(t, afterMove.UsedWords, "ВАЛ")
	assert.Greater(t, afterMove.Scores[afterMove.Moves[0].PlayerID], 0)

	// Replaying the same word is rejected
	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/moves",
		map[string]any{"row": 1, "col": 0, "letter": "В", "word": "ВАЛ"}, token2)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeWordAlreadyUsed, errorCode(t, rr))

	// The second player may skip instead
	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/skip", nil, token2)
	assert.Equal(t, http.StatusOK, rr.Code)

	var afterSkip response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &afterSkip))
	assert.Equal(t, afterMove.Moves[0].PlayerID, afterSkip.CurrentPlayer)
}

func TestMoveRejectsMultiCharacterLetter(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Анна")
	gameID := createGame(t, ts, token, 5, "БАЛДА")

	body := map[string]any{"row": 1, "col": 1, "letter": "ВВ", "word": "ВАЛ"}
	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/moves", body, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}

func TestGameWithAIOpponent(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Анна")

	body := map[string]any{"size": 5, "base_word": "БАЛДА", "ai_opponents": []string{"greedy"}}
	rr := ts.request(http.MethodPost, "/api/v1/games", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.Len(t, created.Players, 2)
	assert.Equal(t, "in_progress", created.Status)
	assert.Len(t, created.AIPlayers, 1)

	human := created.Players[0]

	// After the human's move the AI responds within the same request
	moveBody := map[string]any{"row": 1, "col": 1, "letter": "В", "word": "ВАЛ"}
	rr = ts.request(http.MethodPost, "/api/v1/games/"+created.ID+"/moves", moveBody, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var after response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &after))
	assert.Equal(t, human, after.CurrentPlayer)
	assert.GreaterOrEqual(t, len(after.Moves), 1)
}

func TestCreateGameRejectsUnknownStrategy(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Анна")

	body := map[string]any{"size": 5, "base_word": "БАЛДА", "ai_opponents": []string{"perfect"}}
	rr := ts.request(http.MethodPost, "/api/v1/games", body, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}

func TestSuggestions(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Анна")
	gameID := createGame(t, ts, token, 5, "БАЛДА")

	rr := ts.request(http.MethodGet, "/api/v1/games/"+gameID+"/suggestions?limit=5", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var suggestions []response.Suggestion
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &suggestions))
	assert.NotEmpty(t, suggestions)
	assert.LessOrEqual(t, len(suggestions), 5)

	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Score, suggestions[i].Score)
	}
}

func TestSuggestionsRejectBadLimit(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Анна")
	gameID := createGame(t, ts, token, 5, "БАЛДА")

	rr := ts.request(http.MethodGet, "/api/v1/games/"+gameID+"/suggestions?limit=zero", nil, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWordScore(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Анна")

	rr := ts.request(http.MethodGet, "/api/v1/words/"+url.PathEscape("КОЛ")+"/score", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var score response.WordScore
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &score))
	assert.Equal(t, "КОЛ", score.Word)
	assert.Equal(t, 4, score.Score)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Анна")

	rr := ts.request(http.MethodPost, "/api/v1/players/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// Helper functions

func createGuestPlayer(t *testing.T, ts *testServer, displayName string) string {
	t.Helper()

	body := map[string]string{"display_name": displayName}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	return resp.SessionToken
}

func createGame(t *testing.T, ts *testServer, token string, size int, baseWord string) string {
	t.Helper()

	body := map[string]any{"size": size, "base_word": baseWord}
	rr := ts.request(http.MethodPost, "/api/v1/games", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	return resp.ID
}
