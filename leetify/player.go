package leetify

import "context"

// Player binds a PlayerID to a Client so repeated lookups for the same
// player don't have to pass the id each time.
type Player struct {
	id     PlayerID
	client *Client
}

func NewPlayer(id PlayerID, client *Client) *Player {
	return &Player{id: id, client: client}
}

// Player returns a Player bound to this client.
func (c *Client) Player(id PlayerID) *Player {
	return NewPlayer(id, c)
}

func (p *Player) ID() PlayerID {
	return p.id
}

func (p *Player) Profile(ctx context.Context) (*Profile, error) {
	return p.client.GetProfile(ctx, p.id)
}

func (p *Player) Matches(ctx context.Context) ([]MatchSummary, error) {
	return p.client.GetProfileMatches(ctx, p.id)
}
