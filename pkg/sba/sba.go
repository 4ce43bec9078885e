// Package sba implements the state-based action fixpoint check (rule 704):
// a battery of game-state checks run to stability — any change restarts
// the whole pass — before any player is given priority.
package sba

import (
	"sort"

	"github.com/google/uuid"
)

// PermanentView is the slice of a battlefield permanent's state a
// state-based-action check needs. It is a snapshot, not a live reference,
// so the checker never mutates game state directly — it reports Results
// for the caller (pkg/game) to apply.
type PermanentView struct {
	ID              uuid.UUID
	Controller      int
	Owner           int
	Name            string
	IsCreature      bool
	IsPlaneswalker  bool
	IsAura          bool
	IsToken         bool
	IsLegendary     bool
	Indestructible  bool
	Toughness       int
	DamageMarked    int
	Loyalty         int
	AttachedTo      *uuid.UUID
	AttachmentLegal bool // false if the aura's attachment no longer satisfies its enchant restriction
	PlusCounters    int  // +1/+1 counters currently on the permanent
	MinusCounters   int  // -1/-1 counters currently on the permanent
}

// PlayerView is the slice of a player's state a check needs.
type PlayerView struct {
	Index           int
	Life            int
	Poison          int
	AttemptedDraw   bool // true if this player tried to draw from an empty library since the last check
}

// GameView is the full snapshot a single SBA pass examines.
type GameView struct {
	Permanents []PermanentView
	Players    []PlayerView
}

// ActionKind enumerates the mutations a check can request.
type ActionKind int

const (
	PlayerLoses ActionKind = iota
	DestroyPermanent
	SacrificeToLegendRule
	RemoveFromGame // tokens leaving the battlefield cease to exist (rule 111.7)
	AnnihilateCounters
)

// Action is one mutation the caller must apply before the next pass.
type Action struct {
	Kind          ActionKind
	Player        int
	Permanent     uuid.UUID
	Reason        string
	PlusRemoved   int // for AnnihilateCounters
	MinusRemoved  int
}

// LegendChoice lets the caller decide which legendary permanent among
// duplicates a player keeps; the default (nil) keeps the first by
// controller's choice order, which callers should treat as "ask the
// player" and substitute their own ordering.
type LegendChoice func(player int, duplicates []PermanentView) uuid.UUID

// Check runs one pass over view and returns every action needed to bring
// the state into compliance. An empty return means the state is stable.
// Checks are independent within a single pass (rule 704.3: state-based
// actions are performed simultaneously); the caller is expected to apply
// the returned actions and call Check again until it returns empty
// (RunToFixpoint below drives that loop through a caller-supplied closure,
// since applying actions requires mutating the zone/life model SBA only
// observes).
func Check(view GameView, chooseLegend LegendChoice) []Action {
	var actions []Action

	for _, p := range view.Players {
		switch {
		case p.Life <= 0:
			actions = append(actions, Action{Kind: PlayerLoses, Player: p.Index, Reason: "life total 0 or less"})
		case p.AttemptedDraw:
			actions = append(actions, Action{Kind: PlayerLoses, Player: p.Index, Reason: "attempted to draw from an empty library"})
		case p.Poison >= 10:
			actions = append(actions, Action{Kind: PlayerLoses, Player: p.Index, Reason: "10 or more poison counters"})
		}
	}

	byController := make(map[int]map[string][]PermanentView)
	for _, perm := range view.Permanents {
		if perm.IsCreature && perm.Toughness <= 0 {
			actions = append(actions, Action{Kind: DestroyPermanent, Permanent: perm.ID, Reason: "toughness 0 or less"})
			continue
		}
		if perm.IsCreature && !perm.Indestructible && perm.DamageMarked >= perm.Toughness && perm.Toughness > 0 {
			actions = append(actions, Action{Kind: DestroyPermanent, Permanent: perm.ID, Reason: "lethal damage marked"})
		}
		if perm.IsPlaneswalker && perm.Loyalty <= 0 {
			actions = append(actions, Action{Kind: DestroyPermanent, Permanent: perm.ID, Reason: "loyalty 0 or less"})
		}
		if perm.IsAura && (perm.AttachedTo == nil || !perm.AttachmentLegal) {
			actions = append(actions, Action{Kind: DestroyPermanent, Permanent: perm.ID, Reason: "aura unattached or illegally attached"})
		}
		if perm.PlusCounters > 0 && perm.MinusCounters > 0 {
			n := min(perm.PlusCounters, perm.MinusCounters)
			actions = append(actions, Action{Kind: AnnihilateCounters, Permanent: perm.ID, PlusRemoved: n, MinusRemoved: n, Reason: "+1/+1 and -1/-1 counters annihilate in pairs"})
		}
		if perm.IsLegendary {
			if byController[perm.Controller] == nil {
				byController[perm.Controller] = make(map[string][]PermanentView)
			}
			byController[perm.Controller][perm.Name] = append(byController[perm.Controller][perm.Name], perm)
		}
	}

	for controller, byName := range byController {
		names := make([]string, 0, len(byName))
		for name := range byName {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			dups := byName[name]
			if len(dups) < 2 {
				continue
			}
			keep := dups[0].ID
			if chooseLegend != nil {
				keep = chooseLegend(controller, dups)
			}
			for _, d := range dups {
				if d.ID != keep {
					actions = append(actions, Action{Kind: SacrificeToLegendRule, Permanent: d.ID, Player: controller, Reason: "legend rule"})
				}
			}
		}
	}

	return actions
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// RunToFixpoint repeatedly calls check (a closure over the caller's live
// state that applies each Action batch and re-snapshots) until it reports
// no further actions, or maxIterations is reached as a safety net against
// a caller bug that would otherwise loop forever (this mirrors the
// bounded internal step loop spec.md requires at the turn-driver level;
// SBA convergence in legal game states is always finite).
func RunToFixpoint(check func() []Action, maxIterations int) int {
	for i := 0; i < maxIterations; i++ {
		actions := check()
		if len(actions) == 0 {
			return i
		}
	}
	return maxIterations
}
