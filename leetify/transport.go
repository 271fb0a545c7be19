package leetify

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
)

// Doer performs one HTTP round trip. *fasthttp.Client satisfies it.
type Doer interface {
	DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error
}

type rawResponse struct {
	status int
	body   []byte
}

type roundTripResult struct {
	resp *rawResponse
	err  error
}

// roundTrip sends a GET for uri. The transport call runs on its own goroutine
// so a cancelled ctx returns immediately; that goroutine still owns the
// pooled request/response and releases them when the transport gives up at
// the deadline.
func (c *Client) roundTrip(ctx context.Context, uri string) (*rawResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindHTTP, Message: "request not sent", Err: err}
	}

	deadline := time.Now().Add(c.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	req := fasthttp.AcquireRequest()
	req.SetRequestURI(uri)
	// Send the path as built. Normalizing would decode %2F and resolve ".."
	// inside escaped match ids. Set after SetRequestURI so a reparse cannot reset it.
	req.URI().DisablePathNormalizing = true
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.SetUserAgent(c.userAgent)
	if c.cfg.APIKey != "" {
		req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	}

	done := make(chan roundTripResult, 1)
	go func() {
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		if err := c.http.DoDeadline(req, resp, deadline); err != nil {
			done <- roundTripResult{err: err}
			return
		}
		done <- roundTripResult{resp: &rawResponse{
			status: resp.StatusCode(),
			body:   append([]byte(nil), resp.Body()...),
		}}
	}()

	select {
	case <-ctx.Done():
		return nil, &Error{Kind: KindHTTP, Message: "request aborted", Err: ctx.Err()}
	case r := <-done:
		if r.err != nil {
			return nil, &Error{Kind: KindHTTP, Message: "round trip failed", Err: r.err}
		}
		return r.resp, nil
	}
}
