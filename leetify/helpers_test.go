package leetify

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

const (
	testSteam64 = "76561198283431555"
	testLeetify = "5ea07280-2399-4c7e-88ab-f2f7db0c449f"
)

// stubDoer answers every request with a fixed status and body and records
// what it was asked for.
type stubDoer struct {
	status int
	body   string
	err    error

	// block, when set, holds the round trip until it is closed.
	block chan struct{}

	mu       sync.Mutex
	calls    int
	uris     []string
	apiKeys  []string
	deadline time.Time
}

func (s *stubDoer) DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error {
	s.mu.Lock()
	s.calls++
	s.uris = append(s.uris, req.URI().String())
	s.apiKeys = append(s.apiKeys, string(req.Header.Peek(apiKeyHeader)))
	s.deadline = deadline
	s.mu.Unlock()

	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return s.err
	}
	resp.SetStatusCode(s.status)
	resp.SetBodyString(s.body)
	return nil
}

func (s *stubDoer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubDoer) lastURI() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.uris) == 0 {
		return ""
	}
	return s.uris[len(s.uris)-1]
}

func (s *stubDoer) lastAPIKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.apiKeys) == 0 {
		return ""
	}
	return s.apiKeys[len(s.apiKeys)-1]
}

func newStubClient(t *testing.T, doer Doer, apiKey string) *Client {
	t.Helper()
	c, err := NewBuilder().
		APIKey(apiKey).
		BaseURL("https://leetify.test").
		HTTPClient(doer).
		Build()
	require.NoError(t, err)
	return c
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return string(b)
}
