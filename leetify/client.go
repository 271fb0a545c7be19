package leetify

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Client talks to the Leetify public CS API. It holds no mutable state and
// is safe for concurrent use.
//
// fasthttp cannot abort an in-flight request, so after ctx is cancelled the
// pooled request, response and connection stay held until the transport
// deadline (at most Timeout).
type Client struct {
	cfg       Config
	http      Doer
	logger    zerolog.Logger
	userAgent string
}

// Config returns the client's effective settings.
func (c *Client) Config() Config {
	return c.cfg
}

// GetProfile fetches a player's profile by Steam64 or Leetify id.
func (c *Client) GetProfile(ctx context.Context, id PlayerID) (*Profile, error) {
	key, value, err := id.queryParam()
	if err != nil {
		return nil, err
	}
	return doRequest[Profile](ctx, c, "/v3/profile", url.Values{key: {value}})
}

// GetProfileMatches fetches a player's match history in the order the
// server returns it.
func (c *Client) GetProfileMatches(ctx context.Context, id PlayerID) ([]MatchSummary, error) {
	key, value, err := id.queryParam()
	if err != nil {
		return nil, err
	}
	matches, err := doRequest[[]MatchSummary](ctx, c, "/v3/profile/matches", url.Values{key: {value}})
	if err != nil {
		return nil, err
	}
	return *matches, nil
}

// GetMatchByGameID fetches a match by its Leetify game id.
func (c *Client) GetMatchByGameID(ctx context.Context, gameID string) (*MatchDetails, error) {
	if gameID == "" {
		return nil, missingParameter("game_id")
	}
	return doRequest[MatchDetails](ctx, c, "/v2/matches/"+url.PathEscape(gameID), nil)
}

// GetMatchByDataSource fetches a match by the id the data source (FACEIT,
// matchmaking, ...) assigned to it.
func (c *Client) GetMatchByDataSource(ctx context.Context, source DataSource, sourceMatchID string) (*MatchDetails, error) {
	if source == "" {
		return nil, missingParameter("data_source")
	}
	if sourceMatchID == "" {
		return nil, missingParameter("data_source_id")
	}
	path := "/v2/matches/" + url.PathEscape(source.String()) + "/" + url.PathEscape(sourceMatchID)
	return doRequest[MatchDetails](ctx, c, path, nil)
}

// ValidateAPIKey checks the configured key with the server. It returns
// ErrInvalidAPIKey when no key is configured or the server rejects it.
func (c *Client) ValidateAPIKey(ctx context.Context) error {
	if !c.cfg.HasAPIKey() {
		return &Error{Kind: KindInvalidAPIKey, Message: "no api key configured"}
	}

	resp, err := c.send(ctx, "/api-key/validate", nil)
	if err != nil {
		return err
	}

	switch {
	case resp.status >= 200 && resp.status < 300:
		return nil
	case resp.status == fasthttp.StatusUnauthorized, resp.status == fasthttp.StatusForbidden:
		return &Error{Kind: KindInvalidAPIKey, StatusCode: resp.status, Message: apiMessage(resp)}
	default:
		return apiError(resp)
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) send(ctx context.Context, path string, query url.Values) (*rawResponse, error) {
	start := time.Now()
	resp, err := c.roundTrip(ctx, c.endpoint(path, query))
	if err != nil {
		c.logger.Debug().Err(err).Str("path", path).Dur("duration", time.Since(start)).Msg("leetify request failed")
		return nil, err
	}
	c.logger.Debug().
		Str("method", fasthttp.MethodGet).
		Str("path", path).
		Int("status", resp.status).
		Dur("duration", time.Since(start)).
		Msg("leetify request completed")
	return resp, nil
}

func doRequest[T any](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	resp, err := c.send(ctx, path, query)
	if err != nil {
		return nil, err
	}

	if resp.status < 200 || resp.status >= 300 {
		return nil, apiError(resp)
	}

	var result T
	if err := json.Unmarshal(resp.body, &result); err != nil {
		return nil, &Error{Kind: KindDecode, Message: "failed to decode " + path + " response", Err: err}
	}
	return &result, nil
}

type apiErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func apiError(resp *rawResponse) error {
	return &Error{Kind: KindAPI, StatusCode: resp.status, Message: apiMessage(resp)}
}

// apiMessage prefers the JSON error body's message, then the raw body, then
// the status text.
func apiMessage(resp *rawResponse) string {
	var body apiErrorBody
	if err := json.Unmarshal(resp.body, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if msg := strings.TrimSpace(string(resp.body)); msg != "" {
		return msg
	}
	return fasthttp.StatusMessage(resp.status)
}
