package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ymori/draft-duel-backend/internal/catalog"
	"github.com/ymori/draft-duel-backend/internal/engine"
	"github.com/ymori/draft-duel-backend/internal/hub"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := hub.NewHub(ctx, func() *engine.Engine {
		return engine.New(catalog.Default(), rand.New(rand.NewSource(7)))
	})
	srv := httptest.NewServer(SetupRoutes(h, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp
}

func TestFullGameOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	// Create a room.
	resp, created := postJSON(t, srv.URL+"/api/rooms", map[string]any{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	code, _ := created["room"].(string)
	require.Len(t, code, 6)

	base := srv.URL + "/api/rooms/" + code

	// Join both players.
	resp, joined := postJSON(t, base+"/join", map[string]string{"username": "Alice"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "A", joined["team"])

	resp, joined = postJSON(t, base+"/join", map[string]string{"username": "Bob"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "B", joined["team"])

	// Third join is rejected.
	resp, _ = postJSON(t, base+"/join", map[string]string{"username": "Carol"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A is up first.
	var view engine.View
	resp = getJSON(t, base+"/state/A", &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, engine.PhaseDraft, view.Phase)
	require.True(t, view.YourTurn)
	require.True(t, view.OpponentJoined)

	// Drawing out of turn is forbidden.
	resp, _ = postJSON(t, base+"/draw", map[string]string{"team": "B"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Result is locked until the game ends.
	var errBody map[string]any
	resp = getJSON(t, base+"/result", &errBody)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Alternate drafting until both rosters are full.
	teams := []string{"A", "B"}
	for turn := 0; turn < 2*engine.NumSlots; turn++ {
		team := teams[turn%2]
		slot := turn / 2

		resp, drawn := postJSON(t, base+"/draw", map[string]string{"team": team})
		require.Equal(t, http.StatusOK, resp.StatusCode, "draw %d: %v", turn, drawn)
		require.NotEmpty(t, drawn["name"])

		// Double-draw is rejected while a card is pending.
		resp, _ = postJSON(t, base+"/draw", map[string]string{"team": team})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, _ = postJSON(t, base+"/assign", map[string]any{"team": team, "slot": slot})
		require.Equal(t, http.StatusOK, resp.StatusCode, "assign %d", turn)
	}

	resp = getJSON(t, base+"/state/A", &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, engine.PhaseSwap, view.Phase)
	for i, c := range view.YourTeam {
		require.NotNil(t, c, "slot %d should be filled", i)
	}

	// A swaps slots 0 and 1, B keeps its roster.
	resp, _ = postJSON(t, base+"/swap", map[string]any{"team": "A", "slot1": 0, "slot2": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = postJSON(t, base+"/swap", map[string]any{"team": "B", "skip": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getJSON(t, base+"/state/B", &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, engine.PhaseResult, view.Phase)
	require.True(t, view.SwapDone[engine.TeamA])
	require.True(t, view.SwapDone[engine.TeamB])

	// Resolve and verify shape.
	var result engine.Result
	resp = getJSON(t, base+"/result", &result)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, result.Rounds, engine.NumSlots)
	for i, round := range result.Rounds {
		require.Equal(t, engine.Roles[i], round.Role)
		require.Contains(t, []string{"Alice", "Bob", engine.WinnerDraw}, round.Winner)
	}
	require.Contains(t, []string{"Alice", "Bob", engine.WinnerDraw}, result.FinalWinner)

	// Resolution is memoized: a second query returns the same outcome.
	var again engine.Result
	resp = getJSON(t, base+"/result", &again)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, result, again)
}

func TestRoomNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postJSON(t, srv.URL+"/api/rooms/ZZZZZZ/join", map[string]string{"username": "Alice"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]any
	resp2 := getJSON(t, srv.URL+"/api/rooms/ZZZZZZ/state/A", &body)
	require.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestAssignValidationOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	_, created := postJSON(t, srv.URL+"/api/rooms", map[string]any{})
	code, _ := created["room"].(string)
	base := srv.URL + "/api/rooms/" + code

	postJSON(t, base+"/join", map[string]string{"username": "Alice"})
	postJSON(t, base+"/join", map[string]string{"username": "Bob"})

	// Assign without a draw.
	resp, _ := postJSON(t, base+"/assign", map[string]any{"team": "A", "slot": 0})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJSON(t, base+"/draw", map[string]string{"team": "A"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Out-of-range and missing slots.
	resp, _ = postJSON(t, base+"/assign", map[string]any{"team": "A", "slot": 9})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = postJSON(t, base+"/assign", map[string]any{"team": "A"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Skip works once, then is spent.
	resp, _ = postJSON(t, base+"/skip", map[string]string{"team": "A"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = postJSON(t, base+"/draw", map[string]string{"team": "A"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = postJSON(t, base+"/skip", map[string]string{"team": "A"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMalformedRequestsGetJSONErrors(t *testing.T) {
	srv := newTestServer(t)

	_, created := postJSON(t, srv.URL+"/api/rooms", map[string]any{})
	code, _ := created["room"].(string)
	base := srv.URL + "/api/rooms/" + code

	// Bad team in the state path.
	var errBody map[string]string
	resp := getJSON(t, base+"/state/C", &errBody)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NotEmpty(t, errBody["error"])

	// Malformed JSON bodies still produce the {"error": ...} shape.
	for _, path := range []string{"/join", "/assign", "/swap", "/draw"} {
		resp, err := http.Post(base+path, "application/json", bytes.NewReader([]byte("{not json")))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		require.Equal(t, "application/json", resp.Header.Get("Content-Type"), path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body), path)
		require.NotEmpty(t, body["error"], path)
		_ = resp.Body.Close()
	}

	// Bad team in a body.
	resp, body := postJSON(t, base+"/assign", map[string]any{"team": "Z", "slot": 0})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotEmpty(t, body["error"])
}

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'), "unexpected rune %q", r)
		}
		seen[code] = true
	}
	// 36^6 codes; 100 draws colliding would point at a broken generator.
	require.Greater(t, len(seen), 95)
}

