package game

import "github.com/mtgforge/rulesengine/pkg/deck"

// Config bundles everything Reset needs to start a fresh game: each
// player's validated deck and the single seed that drives every random
// choice (shuffles, mulligan scries, random-target effects) for the
// episode, so a given seed always replays identically.
type Config struct {
	Decks      []*deck.Deck
	Seed       int64
	OpeningHand int // defaults to 7 when zero
	StartingLife int // defaults to 20 when zero
	MulliganRule MulliganRule
}

// MulliganRule names a mulligan procedure. Config carries it, but Reset and
// Apply do not read it: a Mulligan action always shuffles the hand back and
// draws a full opening hand, and BottomCard is a separate player action.
type MulliganRule int

const (
	LondonMulligan MulliganRule = iota // draw 7, bottom N equal to mulligans taken
	VancouverMulligan                  // draw one fewer card per mulligan taken
)

func (c Config) openingHandSize() int {
	if c.OpeningHand > 0 {
		return c.OpeningHand
	}
	return 7
}

func (c Config) startingLifeTotal() int {
	if c.StartingLife > 0 {
		return c.StartingLife
	}
	return 20
}
