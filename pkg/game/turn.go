package game

import "github.com/mtgforge/rulesengine/pkg/types"

// phaseOrder is the fixed sequence of phases/steps a turn passes through,
// grounded on the teacher's turnOrder: Beginning Phase, Main Phase 1,
// Combat Phase, Main Phase 2, End Phase.
var phaseOrder = []types.Phase{
	types.Untap, types.Upkeep, types.Draw,
	types.Main1,
	types.BeginCombat, types.DeclareAttackers, types.DeclareBlockers,
	types.FirstStrikeDamage, types.CombatDamage, types.EndCombat,
	types.Main2,
	types.End, types.Cleanup,
}

// TurnState tracks whose turn it is and which phase/step of it is active.
type TurnState struct {
	TurnNumber   int
	ActivePlayer int
	phaseIdx     int
	playerCount  int
}

// NewTurnState starts turn 1 with player 0 active, in the untap step.
func NewTurnState(playerCount int) *TurnState {
	return &TurnState{TurnNumber: 1, ActivePlayer: 0, phaseIdx: 0, playerCount: playerCount}
}

// Phase returns the current phase/step.
func (t *TurnState) Phase() types.Phase { return phaseOrder[t.phaseIdx] }

// Advance moves to the next phase in the fixed sequence, rolling over to a
// new turn (and the next player) after Cleanup. It reports whether a new
// turn began.
func (t *TurnState) Advance() (newTurn bool) {
	t.phaseIdx++
	if t.phaseIdx >= len(phaseOrder) {
		t.phaseIdx = 0
		t.ActivePlayer = (t.ActivePlayer + 1) % t.playerCount
		t.TurnNumber++
		return true
	}
	return false
}

// IsCombat reports whether the current phase is part of the combat phase.
func (t *TurnState) IsCombat() bool { return t.Phase().IsCombat() }
