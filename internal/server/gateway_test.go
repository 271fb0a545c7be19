package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"leetify-go/internal/config"
	"leetify-go/internal/database"
	"leetify-go/internal/repository"
	"leetify-go/internal/service"
	"leetify-go/leetify"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSteam64 = "76561198283431555"

type upstream struct {
	profile []byte
	matches []byte
	status  int // non-zero forces every response to this status
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if u.status != 0 {
		w.WriteHeader(u.status)
		fmt.Fprintf(w, `{"message":"upstream says %d"}`, u.status)
		return
	}
	switch {
	case r.URL.Path == "/v3/profile":
		w.Write(u.profile)
	case r.URL.Path == "/v3/profile/matches":
		w.Write(u.matches)
	case strings.HasPrefix(r.URL.Path, "/v2/matches/"):
		var all []json.RawMessage
		json.Unmarshal(u.matches, &all)
		w.Write(all[0])
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no route"}`))
	}
}

func newTestGateway(t *testing.T, up *upstream, rateLimit int) http.Handler {
	t.Helper()

	if up.profile == nil {
		var err error
		up.profile, err = os.ReadFile("testdata/profile.json")
		require.NoError(t, err)
		up.matches, err = os.ReadFile("testdata/matches.json")
		require.NoError(t, err)
	}

	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	client, err := leetify.NewBuilder().BaseURL(srv.URL).Build()
	require.NoError(t, err)

	db, err := database.Open(filepath.Join(t.TempDir(), "gateway.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tracker := service.NewTrackerService(
		client,
		repository.NewPlayerRepository(db, zerolog.Nop()),
		repository.NewMatchRepository(db, zerolog.Nop()),
		zerolog.Nop(),
	)

	cfg := &config.Config{
		CORSAllowedOrigins: []string{"*"},
		RateLimitRequests:  rateLimit,
		RateLimitWindow:    time.Minute,
	}
	return NewGateway(client, tracker, cfg, zerolog.Nop()).Handler()
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	h := newTestGateway(t, &upstream{}, 0)

	rec := do(h, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","version":"`+leetify.Version+`"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestProfileRoute(t *testing.T) {
	h := newTestGateway(t, &upstream{}, 0)

	rec := do(h, http.MethodGet, "/v1/profile/"+testSteam64)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile leetify.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, testSteam64, profile.Steam64ID)
}

func TestProfileMatchesRoute(t *testing.T) {
	h := newTestGateway(t, &upstream{}, 0)

	rec := do(h, http.MethodGet, "/v1/profile/"+testSteam64+"/matches")
	require.Equal(t, http.StatusOK, rec.Code)

	var matches []leetify.MatchSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	assert.Len(t, matches, 2)
}

func TestMatchRoutes(t *testing.T) {
	h := newTestGateway(t, &upstream{}, 0)

	for _, target := range []string{
		"/v1/matches/7c3d1f52-8a4e-4b0f-9d2a-1e6f3b8c9a01",
		"/v1/matches/faceit/1-2b6c9d4e-0f1a-4c3b-8e7d-5a6b7c8d9e0f",
	} {
		rec := do(h, http.MethodGet, target)
		require.Equal(t, http.StatusOK, rec.Code, target)

		var match leetify.MatchDetails
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &match))
		assert.Equal(t, "de_mirage", match.MapName)
	}
}

func TestInvalidIdentifierIsBadRequest(t *testing.T) {
	h := newTestGateway(t, &upstream{}, 0)

	rec := do(h, http.MethodGet, "/v1/profile/not-a-player")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(leetify.KindInvalidIdentifier), decodeError(t, rec).Error)
}

func TestUpstreamStatusIsPassedThrough(t *testing.T) {
	h := newTestGateway(t, &upstream{status: http.StatusNotFound}, 0)

	rec := do(h, http.MethodGet, "/v1/profile/"+testSteam64)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, string(leetify.KindAPI), body.Error)
	assert.Contains(t, body.Message, "upstream says 404")
}

func TestSyncThenHistory(t *testing.T) {
	h := newTestGateway(t, &upstream{}, 0)

	rec := do(h, http.MethodGet, "/v1/players/"+testSteam64+"/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(h, http.MethodPost, "/v1/players/"+testSteam64+"/sync")
	require.Equal(t, http.StatusOK, rec.Code)
	var result service.SyncResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.MatchesStored)

	rec = do(h, http.MethodGet, "/v1/players/"+testSteam64+"/history?limit=1")
	require.Equal(t, http.StatusOK, rec.Code)
	var history []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "de_mirage", history[0]["map_name"])

	rec = do(h, http.MethodGet, "/v1/players/"+testSteam64+"/history?limit=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryUnknownLeetifyID(t *testing.T) {
	h := newTestGateway(t, &upstream{}, 0)

	rec := do(h, http.MethodGet, "/v1/players/5ea07280-2399-4c7e-88ab-f2f7db0c449f/history")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_player", decodeError(t, rec).Error)
}

func TestSyncRequiresPost(t *testing.T) {
	h := newTestGateway(t, &upstream{}, 0)

	rec := do(h, http.MethodGet, "/v1/players/"+testSteam64+"/sync")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGatewayRateLimit(t *testing.T) {
	h := newTestGateway(t, &upstream{}, 2)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz").Code)
	rec := do(h, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestErrorResponseMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"missing parameter", &leetify.Error{Kind: leetify.KindMissingParameter, Param: "game_id"}, http.StatusBadRequest, "missing_parameter"},
		{"invalid key", &leetify.Error{Kind: leetify.KindInvalidAPIKey}, http.StatusUnauthorized, "invalid_api_key"},
		{"api 429", &leetify.Error{Kind: leetify.KindAPI, StatusCode: 429}, http.StatusTooManyRequests, "api"},
		{"api odd status", &leetify.Error{Kind: leetify.KindAPI, StatusCode: 302}, http.StatusBadGateway, "api"},
		{"transport", &leetify.Error{Kind: leetify.KindHTTP, Err: errors.New("dial")}, http.StatusBadGateway, "http"},
		{"decode", &leetify.Error{Kind: leetify.KindDecode}, http.StatusBadGateway, "decode"},
		{"wrapped", fmt.Errorf("failed to fetch profile: %w", &leetify.Error{Kind: leetify.KindAPI, StatusCode: 503}), http.StatusServiceUnavailable, "api"},
		{"other", errors.New("disk full"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := errorResponse(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, body.Error)
		})
	}
}
