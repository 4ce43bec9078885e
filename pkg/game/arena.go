// Package game is the rules-engine orchestrator: it owns the single
// arena of card instances, the zone sets, the turn/phase state machine,
// and the public Reset/Apply/ActionMask/Observation surface a driving
// agent uses to play the game forward one decision at a time.
package game

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/pkg/card"
)

// Arena is the single owning collection of card instances. Every
// subsystem (layers, ability, combat, sba) is handed a card's uuid.UUID
// and looks it up here rather than holding a pointer owned elsewhere,
// avoiding the cyclic-reference problem cross-package pointers would
// otherwise create.
type Arena struct {
	instances map[uuid.UUID]*card.Instance
	tokens    map[uuid.UUID]bool
	rng       *rand.Rand
	timestamp uint64
}

// NewArena creates an empty arena seeded with the given RNG seed. This is
// the single seeded random source for the whole game: shuffles,
// mulligans, and any random-choice effect all draw from it.
func NewArena(seed int64) *Arena {
	return &Arena{
		instances: make(map[uuid.UUID]*card.Instance),
		tokens:    make(map[uuid.UUID]bool),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Rand returns the arena's single RNG.
func (a *Arena) Rand() *rand.Rand { return a.rng }

// NextTimestamp returns the next monotonically increasing timestamp,
// consulted both for layer-effect ordering and for tie-breaking anywhere
// else that needs a game-wide total order.
func (a *Arena) NextTimestamp() uint64 {
	a.timestamp++
	return a.timestamp
}

// Create instantiates a new card.Instance from def, registers it in the
// arena, and returns its new instance ID.
func (a *Arena) Create(def *card.Card, owner int) *card.Instance {
	inst := &card.Instance{
		ID: uuid.New(), Def: def, OwnerIdx: owner, Controller: owner,
		Counters: make(map[string]int), TimestampAdded: a.NextTimestamp(),
	}
	a.instances[inst.ID] = inst
	return inst
}

// Get retrieves an instance by ID.
func (a *Arena) Get(id uuid.UUID) (*card.Instance, bool) {
	inst, ok := a.instances[id]
	return inst, ok
}

// Remove deletes an instance from the arena entirely — used when a token
// leaves the battlefield and ceases to exist (rule 111.7), rather than
// moving it to another zone.
func (a *Arena) Remove(id uuid.UUID) {
	delete(a.instances, id)
	delete(a.tokens, id)
}

// CreateToken instantiates a token copy of def and marks it as such, so
// later zone changes can apply the token-ceases-to-exist rule.
func (a *Arena) CreateToken(def *card.Card, owner int) *card.Instance {
	inst := a.Create(def, owner)
	a.tokens[inst.ID] = true
	return inst
}

// IsToken reports whether id was created as a token.
func (a *Arena) IsToken(id uuid.UUID) bool { return a.tokens[id] }

// All returns every instance currently tracked by the arena, regardless
// of zone.
func (a *Arena) All() map[uuid.UUID]*card.Instance {
	return a.instances
}
