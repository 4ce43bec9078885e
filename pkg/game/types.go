package game

import (
	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/pkg/action"
	"github.com/mtgforge/rulesengine/pkg/types"
)

// PermanentObs is the observable slice of a battlefield permanent's state,
// derived from the layer system's current characteristics snapshot rather
// than from raw instance fields, so a driving agent sees post-effect values.
type PermanentObs struct {
	ID            uuid.UUID
	Name          string
	Controller    int
	Owner         int
	CardTypes     []string
	Subtypes      []string
	Power         int
	Toughness     int
	Loyalty       int
	Tapped        bool
	SummoningSick bool
	DamageMarked  int
	Attacking     *uuid.UUID
	Keywords      []string
}

// PlayerObs is the observable state of one player.
type PlayerObs struct {
	Index        int
	Life         int
	Poison       int
	HandSize     int
	LibrarySize  int
	GraveyardIDs []uuid.UUID
	LandsPlayed  int
}

// Observation is the full state snapshot handed to the driving agent after
// every Apply call, paired with the legal action mask for whichever player
// currently holds priority.
type Observation struct {
	Turn           int
	Phase          types.Phase
	ActivePlayer   int
	PriorityPlayer int
	Players        []PlayerObs
	Permanents     []PermanentObs
	StackSize      int
	Hands          map[int][]uuid.UUID // visible only for the observing player's own hand in a real client; both included here since this is a single-process engine
	Terminated     bool
	Reason         types.TerminationReason
	Winner         int // -1 if not terminated or a draw
}

// StepResult bundles the values Apply returns (Apply itself returns them as
// separate results): the new observation, whether the episode ended, and the
// mask of legal actions for whoever now holds priority (empty once
// Terminated is true).
type StepResult struct {
	Obs       Observation
	Mask      action.Mask
	Terminated bool
}
