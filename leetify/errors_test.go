package leetify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	err := &Error{Kind: KindAPI, StatusCode: 404, Message: "not found"}

	assert.True(t, errors.Is(err, ErrAPI))
	assert.False(t, errors.Is(err, ErrHTTP))
	assert.False(t, errors.Is(err, ErrInvalidAPIKey))

	wrapped := fmt.Errorf("failed to fetch profile: %w", err)
	assert.True(t, errors.Is(wrapped, ErrAPI))
	assert.Equal(t, KindAPI, KindOf(wrapped))
	assert.Equal(t, 404, StatusCode(wrapped))
}

func TestErrorUnwrap(t *testing.T) {
	err := &Error{Kind: KindHTTP, Message: "request aborted", Err: context.DeadlineExceeded}
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, errors.Is(err, ErrHTTP))
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: &Error{Kind: KindAPI, StatusCode: 500, Message: "server error"}, want: "leetify: api error (status 500): server error"},
		{err: missingParameter("game_id"), want: "leetify: missing required parameter: game_id"},
		{err: &Error{Kind: KindInvalidAPIKey}, want: "leetify: invalid or missing api key"},
		{err: invalidIdentifier("abc", "neither a uuid nor a steam64 id"), want: `leetify: invalid_identifier: "abc": neither a uuid nor a steam64 id`},
		{err: &Error{Kind: KindHTTP, Message: "round trip failed", Err: errors.New("dial tcp: refused")}, want: "leetify: http: round trip failed (dial tcp: refused)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("boom")))
	assert.Zero(t, StatusCode(nil))
}
