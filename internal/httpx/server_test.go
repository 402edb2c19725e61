package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chessrules/internal/game"
)

type statePayload struct {
	State game.BoardState `json:"state"`
	Error string          `json:"error"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(game.NewEngine(), Options{})
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, statePayload) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var payload statePayload
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload), rr.Body.String())
	}
	return rr, payload
}

func TestHandleMoveReturnsState(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/move", strings.NewReader(`{"from":"e2","to":"e4"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.withJSON(srv.handleMove)(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var payload statePayload
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Equal(t, game.Black, payload.State.Turn)
	assert.Equal(t, []string{"e4"}, payload.State.History)
	assert.Equal(t, "e4", payload.State.EnPassant)
	assert.Len(t, payload.State.Pieces, 32)
	assert.Equal(t, apiCSP, rr.Header().Get("Content-Security-Policy"))
}

func TestHandleMoveErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{name: "BadJSON", body: `{"from":`, status: http.StatusBadRequest, errMsg: "invalid json"},
		{name: "BadFrom", body: `{"from":"z9","to":"e4"}`, status: http.StatusBadRequest, errMsg: "invalid from square"},
		{name: "BadTo", body: `{"from":"e2","to":""}`, status: http.StatusBadRequest, errMsg: "invalid to square"},
		{name: "NoSuchMove", body: `{"from":"e2","to":"e5"}`, status: http.StatusUnprocessableEntity, errMsg: "invalid move"},
		{name: "WrongSide", body: `{"from":"e7","to":"e5"}`, status: http.StatusUnprocessableEntity, errMsg: "invalid move"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			rr, payload := do(t, srv.Handler(), http.MethodPost, "/api/move", tt.body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Contains(t, payload.Error, tt.errMsg)
			assert.Empty(t, srv.engine.State().History)
		})
	}
}

func TestHandleMoveTooLarge(t *testing.T) {
	srv := newTestServer(t)
	body := `{"from":"` + strings.Repeat("a", int(maxJSONBodyBytes)) + `"}`
	rr, payload := do(t, srv.Handler(), http.MethodPost, "/api/move", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "request too large", payload.Error)
}

func TestUndoResetAndState(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rr, payload := do(t, h, http.MethodPost, "/api/undo", "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, payload.Error, "no move to undo")

	rr, _ = do(t, h, http.MethodPost, "/api/move", `{"from":"g1","to":"f3"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	rr, _ = do(t, h, http.MethodPost, "/api/move", `{"from":"g8","to":"f6"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr, payload = do(t, h, http.MethodPost, "/api/undo", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"Nf3"}, payload.State.History)

	rr, payload = do(t, h, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, game.Black, payload.State.Turn)

	rr, payload = do(t, h, http.MethodPost, "/api/reset", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, game.White, payload.State.Turn)
	assert.Equal(t, "New game", payload.State.LastNote)
}

func TestLegalDestinationsRoute(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/moves/g1", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"from":"g1","to":["f3","h3"]}`, rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/moves/e7", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.JSONEq(t, `{"from":"e7","to":[]}`, rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/moves/zz", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRoutingAndPages(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	for _, c := range []struct{ method, path string }{
		{http.MethodGet, "/api/move"},
		{http.MethodDelete, "/api/undo"},
		{http.MethodGet, "/api/reset"},
		{http.MethodPost, "/api/moves/e2"},
		{http.MethodPost, "/board.svg"},
	} {
		rr, _ := do(t, h, c.method, c.path, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, "%s %s", c.method, c.path)
	}

	rr, _ := do(t, h, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, "ok", rr.Body.String())

	rr, _ = do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "white to move (ongoing)")
	assert.Contains(t, rr.Body.String(), `"turnName":"white"`)
	assert.Equal(t, htmlCSP, rr.Header().Get("Content-Security-Policy"))

	rr, _ = do(t, h, http.MethodGet, "/board.svg?highlight=e2&flip=1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.Equal(t, 64, strings.Count(rr.Body.String(), "<rect "))

	rr, _ = do(t, h, http.MethodGet, "/static/app.js", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAccessLog(t *testing.T) {
	var logs bytes.Buffer
	srv, err := NewServer(game.NewEngine(), Options{AccessLog: &logs})
	require.NoError(t, err)

	do(t, srv.Handler(), http.MethodGet, "/healthz", "")
	assert.Contains(t, logs.String(), `"GET /healthz HTTP/1.1" 200`)
}

func TestWebsocketReceivesUpdates(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg stateMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "state", msg.Type)
	assert.Equal(t, game.White, msg.State.Turn)

	require.Eventually(t, func() bool { return srv.hub.count() == 1 }, time.Second, 10*time.Millisecond)

	res, err := http.Post(ts.URL+"/api/move", "application/json", strings.NewReader(`{"from":"d2","to":"d4"}`))
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, game.Black, msg.State.Turn)
	assert.Equal(t, []string{"d4"}, msg.State.History)

	require.NoError(t, srv.Close(context.Background()))
	assert.Equal(t, 0, srv.hub.count())
}

func TestWebsocketSeesStatesInOrder(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))

	var msg stateMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.Eventually(t, func() bool { return srv.hub.count() == 1 }, time.Second, 10*time.Millisecond)

	// Each step plays e4 on an empty history and takes it back otherwise,
	// so every call succeeds and consecutive states alternate.
	toggle := func(e *game.Engine) error {
		if len(e.State().History) == 0 {
			return e.Move(game.MoveRequest{From: game.Sq("e2"), To: game.Sq("e4")})
		}
		return e.Undo()
	}

	const workers, steps = 8, 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < steps; j++ {
				_, err := srv.apply(toggle)
				assert.NoError(t, err)
			}
		}()
	}

	prev := 0
	for i := 0; i < workers*steps; i++ {
		require.NoError(t, conn.ReadJSON(&msg))
		n := len(msg.State.History)
		require.NotEqual(t, prev, n, "message %d repeats a history length of %d", i, n)
		prev = n
	}
	wg.Wait()
	assert.Equal(t, srv.snapshot().History, msg.State.History)
}
