package leetify

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerForwardsToClient(t *testing.T) {
	ctx := context.Background()
	id := MustParsePlayerID(testSteam64)

	doer := &stubDoer{status: http.StatusOK, body: fixture(t, "profile.json")}
	c := newStubClient(t, doer, "")

	direct, directErr := c.GetProfile(ctx, id)
	bound, boundErr := c.Player(id).Profile(ctx)
	require.NoError(t, directErr)
	require.NoError(t, boundErr)
	assert.Equal(t, direct, bound)
	assert.Equal(t, doer.uris[0], doer.uris[1])

	doer.body = fixture(t, "matches.json")
	directMatches, err := c.GetProfileMatches(ctx, id)
	require.NoError(t, err)
	boundMatches, err := NewPlayer(id, c).Matches(ctx)
	require.NoError(t, err)
	assert.Equal(t, directMatches, boundMatches)
}

func TestPlayerPropagatesErrors(t *testing.T) {
	ctx := context.Background()
	id := MustParsePlayerID(testLeetify)
	c := newStubClient(t, &stubDoer{status: http.StatusInternalServerError, body: `{"message": "server error"}`}, "")

	p := c.Player(id)
	assert.Equal(t, id, p.ID())

	_, directErr := c.GetProfile(ctx, id)
	_, boundErr := p.Profile(ctx)
	assert.Equal(t, directErr, boundErr)

	_, directErr = c.GetProfileMatches(ctx, id)
	_, boundErr = p.Matches(ctx)
	assert.Equal(t, directErr, boundErr)
	assert.ErrorIs(t, boundErr, ErrAPI)
}
