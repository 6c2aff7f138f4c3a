package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/guessr"
	"github.com/aretw0/guessr/internal/testutils"
	"github.com/aretw0/guessr/pkg/domain"
	"github.com/aretw0/guessr/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()

	eng, err := guessr.New(
		guessr.WithProvider(testutils.FourCharacters()),
		guessr.WithRandomizer(&testutils.SequenceRandomizer{Values: []int{0}}),
	)
	require.NoError(t, err)
	return NewHandler(eng, opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeReply(t *testing.T, w *httptest.ResponseRecorder) domain.Reply {
	t.Helper()

	var reply domain.Reply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply), w.Body.String())
	return reply
}

func TestServer_GameFlow(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/games/s1", "")
	require.Equal(t, http.StatusCreated, w.Code)
	reply := decodeReply(t, w)
	assert.Equal(t, domain.ReplyQuestion, reply.Kind)
	assert.Equal(t, "power level", reply.Trait)

	w = do(t, h, http.MethodPost, "/games/s1/answers", `{"answer":"maybe"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, domain.ReplyClarify, decodeReply(t, w).Kind)

	w = do(t, h, http.MethodPost, "/games/s1/answers", `{"answer":"yes"}`)
	require.Equal(t, http.StatusOK, w.Code)
	reply = decodeReply(t, w)
	assert.Equal(t, domain.ReplyGuess, reply.Kind)
	assert.Equal(t, "Carol", reply.Guess)

	w = do(t, h, http.MethodGet, "/games/s1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var view GameView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, domain.PhaseAwaitingConfirmation, view.Phase)
	assert.Equal(t, 2, view.Remaining)
	assert.Equal(t, 1, view.QuestionsAsked)
	assert.Equal(t, "Carol", view.PendingGuess)
	require.Len(t, view.Turns, 1)

	w = do(t, h, http.MethodPost, "/games/s1/answers", `{"answer":"yes"}`)
	require.Equal(t, http.StatusOK, w.Code)
	reply = decodeReply(t, w)
	assert.Equal(t, domain.ReplyTerminal, reply.Kind)
	assert.Equal(t, domain.OutcomeWon, reply.Outcome)

	w = do(t, h, http.MethodPost, "/games/s1/answers", `{"answer":"yes"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestServer_Quit(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodDelete, "/games/ghost", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "There's no active game to quit.", decodeReply(t, w).Text)

	do(t, h, http.MethodPost, "/games/s1", "")
	w = do(t, h, http.MethodDelete, "/games/s1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.OutcomeQuit, decodeReply(t, w).Outcome)

	w = do(t, h, http.MethodGet, "/games/s1", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "quit sessions are forgotten")
}

func TestServer_BadRequests(t *testing.T) {
	h := newTestHandler(t)
	do(t, h, http.MethodPost, "/games/s1", "")

	w := do(t, h, http.MethodPost, "/games/s1/answers", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/games/s1/answers", `{"answer":"`+strings.Repeat("y", 5000)+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_Tree(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/games/s1/tree", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	do(t, h, http.MethodPost, "/games/s1", "")
	w = do(t, h, http.MethodGet, "/games/s1/tree", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD\n"))
	assert.Contains(t, w.Body.String(), "class n0 current;")
}

func TestServer_Ambient(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	metrics.GamesStarted.Inc()

	h := newTestHandler(t, WithToken("tok"), WithMetrics(reg))

	w := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/validate", "")
	assert.Equal(t, "tok", w.Body.String())

	w = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "guessr_games_started_total 1")

	w = do(t, h, http.MethodOptions, "/games/s1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_MetricsDisabled(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscribeEvents_Session(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/games/s1/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	readUntil := func(prefix string) string {
		t.Helper()
		for lines.Scan() {
			if strings.HasPrefix(lines.Text(), prefix) {
				return lines.Text()
			}
		}
		t.Fatalf("stream ended before %q", prefix)
		return ""
	}
	// The ping is written after the subscription is registered.
	assert.Equal(t, "data: connected", readUntil("data: "))

	start, err := srv.Client().Post(srv.URL+"/games/s1", "application/json", nil)
	require.NoError(t, err)
	start.Body.Close()

	assert.Equal(t, "event: reply", readUntil("event: "))
	data := strings.TrimPrefix(readUntil("data: "), "data: ")
	var reply domain.Reply
	require.NoError(t, json.Unmarshal([]byte(data), &reply))
	assert.Equal(t, domain.ReplyQuestion, reply.Kind)
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager()

	ch, cancel := sm.Subscribe("a")
	assert.Equal(t, 1, sm.Subscribers("a"))

	sm.Broadcast("a", "hello")
	sm.Broadcast("b", "ignored")
	assert.Equal(t, "hello", <-ch)

	for i := 0; i < 20; i++ {
		sm.Broadcast("a", "flood")
	}
	assert.Len(t, ch, cap(ch), "full buffers drop instead of blocking")

	cancel()
	cancel()
	assert.Zero(t, sm.Subscribers("a"))
}
