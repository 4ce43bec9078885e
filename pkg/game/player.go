package game

import (
	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/pkg/card"
)

// Player holds one seat's zones and life total. Battlefield and Stack are
// shared game-level state (pkg/game.Game.battlefield, pkg/ability.Stack)
// since permanents and stack items are visible to, and can be controlled
// by, either player regardless of ownership.
type Player struct {
	Index  int
	Life   int
	Poison int

	Library   []uuid.UUID
	Hand      []uuid.UUID
	Graveyard []uuid.UUID
	Exile     []uuid.UUID

	ManaPool *card.Pool

	LandsPlayedThisTurn int
	MulligansTaken      int
	HasKeptHand         bool
	Conceded            bool

	attemptedEmptyDraw bool
}

// NewPlayer creates an empty seat at the given starting life total.
func NewPlayer(index, startingLife int) *Player {
	return &Player{Index: index, Life: startingLife, ManaPool: card.NewPool()}
}

// removeFrom deletes id from a zone slice if present, reporting whether it
// was found.
func removeFrom(zone *[]uuid.UUID, id uuid.UUID) bool {
	for i, other := range *zone {
		if other == id {
			*zone = append((*zone)[:i], (*zone)[i+1:]...)
			return true
		}
	}
	return false
}
