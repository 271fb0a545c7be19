package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"leetify-go/internal/config"
	"leetify-go/internal/middleware"
	"leetify-go/internal/service"
	"leetify-go/leetify"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Gateway exposes the Leetify client and the snapshot store over JSON/HTTP.
type Gateway struct {
	client  *leetify.Client
	tracker *service.TrackerService
	cfg     *config.Config
	logger  zerolog.Logger
}

func NewGateway(client *leetify.Client, tracker *service.TrackerService, cfg *config.Config, logger zerolog.Logger) *Gateway {
	return &Gateway{client: client, tracker: tracker, cfg: cfg, logger: logger}
}

// Handler returns the routed mux wrapped in request-id, rate-limit and CORS
// middleware.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", g.health)
	mux.HandleFunc("GET /v1/profile/{id}", g.profile)
	mux.HandleFunc("GET /v1/profile/{id}/matches", g.profileMatches)
	mux.HandleFunc("GET /v1/matches/{gameID}", g.matchByGameID)
	mux.HandleFunc("GET /v1/matches/{source}/{id}", g.matchByDataSource)
	mux.HandleFunc("GET /v1/players/{id}/history", g.history)
	mux.HandleFunc("POST /v1/players/{id}/sync", g.sync)

	c := cors.New(cors.Options{
		AllowedOrigins: g.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
	})

	var h http.Handler = mux
	h = middleware.RateLimit(g.cfg.RateLimitRequests, g.cfg.RateLimitWindow)(h)
	h = c.Handler(h)
	h = middleware.RequestID(g.logger)(h)
	return h
}

func (g *Gateway) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": leetify.Version})
}

func (g *Gateway) profile(w http.ResponseWriter, r *http.Request) {
	id, err := leetify.ParsePlayerID(r.PathValue("id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	profile, err := g.client.GetProfile(r.Context(), id)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (g *Gateway) profileMatches(w http.ResponseWriter, r *http.Request) {
	id, err := leetify.ParsePlayerID(r.PathValue("id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	matches, err := g.client.GetProfileMatches(r.Context(), id)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (g *Gateway) matchByGameID(w http.ResponseWriter, r *http.Request) {
	match, err := g.client.GetMatchByGameID(r.Context(), r.PathValue("gameID"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (g *Gateway) matchByDataSource(w http.ResponseWriter, r *http.Request) {
	source := leetify.ParseDataSource(r.PathValue("source"))
	match, err := g.client.GetMatchByDataSource(r.Context(), source, r.PathValue("id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (g *Gateway) history(w http.ResponseWriter, r *http.Request) {
	id, err := leetify.ParsePlayerID(r.PathValue("id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid_parameter", Message: "limit must be an integer"})
			return
		}
	}

	matches, err := g.tracker.History(r.Context(), id, limit)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	if matches == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (g *Gateway) sync(w http.ResponseWriter, r *http.Request) {
	id, err := leetify.ParsePlayerID(r.PathValue("id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	result, err := g.tracker.Sync(r.Context(), id)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (g *Gateway) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorResponse(err)
	log := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, status, body)
}

// errorResponse maps an error to the gateway's status code and JSON body.
func errorResponse(err error) (int, errorBody) {
	if errors.Is(err, service.ErrUnknownPlayer) {
		return http.StatusNotFound, errorBody{Error: "unknown_player", Message: err.Error()}
	}

	var lerr *leetify.Error
	if !errors.As(err, &lerr) {
		return http.StatusInternalServerError, errorBody{Error: "internal", Message: "internal error"}
	}

	body := errorBody{Error: string(lerr.Kind), Message: lerr.Error()}
	switch lerr.Kind {
	case leetify.KindInvalidIdentifier, leetify.KindMissingParameter:
		return http.StatusBadRequest, body
	case leetify.KindInvalidAPIKey:
		return http.StatusUnauthorized, body
	case leetify.KindAPI:
		if lerr.StatusCode >= 400 && lerr.StatusCode < 600 {
			return lerr.StatusCode, body
		}
		return http.StatusBadGateway, body
	case leetify.KindHTTP, leetify.KindDecode:
		return http.StatusBadGateway, body
	default:
		return http.StatusInternalServerError, body
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
