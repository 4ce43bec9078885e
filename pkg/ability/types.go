// Package ability implements activated, triggered, and static abilities:
// their structured representation, a heuristic oracle-text parser, the
// stack and priority system they resolve through, and the registries that
// track which abilities a battlefield permanent currently has.
package ability

import (
	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/pkg/card"
	"github.com/mtgforge/rulesengine/pkg/types"
)

// Kind tags the three ability categories plus the replacement/mana
// subcategories the engine treats specially.
type Kind int

const (
	Triggered Kind = iota
	Activated
	Static
	ManaAbility
)

// TriggerCondition enumerates the events a triggered ability can key off.
type TriggerCondition int

const (
	NoTrigger TriggerCondition = iota
	EntersTheBattlefield
	LeavesTheBattlefield
	Dies
	BeginningOfUpkeep
	BeginningOfEndStep
	DealsCombatDamage
	BecomesTargeted
	Attacks
	Blocks
	SpellCast
	CreatureEnters
	LandPlayed
)

// EffectKind enumerates the effect an ability's resolution produces.
type EffectKind int

const (
	DrawCards EffectKind = iota
	DealDamage
	GainLife
	LoseLife
	AddMana
	PumpCreature
	DestroyPermanent
	CounterSpellEffect
	SearchLibrary
	DiscardCards
	ReturnToHand
	CreateToken
	TapPermanent
	UntapPermanent
	ChangeControl
	PreventDamage
	RawNoOp // a legal, inert effect; the oracle-text parser does not emit it
)

// TimingRestriction constrains when an ability may be activated.
type TimingRestriction int

const (
	AnyTime TimingRestriction = iota
	SorcerySpeed
	OncePerTurn
	OnlyOnYourTurn
	OnlyDuringCombat
	OnlyMainPhase
)

// TargetKind enumerates legal target categories.
type TargetKind int

const (
	NoTarget TargetKind = iota
	AnyTarget
	CreatureTarget
	PlayerTarget
	PermanentTarget
	SpellTarget
	CardInGraveyardTarget
	CardInHandTarget
)

// TargetSpec is a target slot an ability's effect requires.
type TargetSpec struct {
	Kind         TargetKind
	Required     bool
	Count        int
	Restrictions []string // e.g. "non-artifact", "with flying"
}

// Cost is the cost to activate an ability: a mana component (the full
// card.ManaCost vector) plus the non-mana cost types MTG uses.
type Cost struct {
	Mana          card.ManaCost
	TapCost       bool
	SacrificeCost bool
	DiscardCost   int
	LifeCost      int
	Other         []string
}

// IsFree reports whether a cost has no mana, tap, sacrifice, discard, or
// life component (used by mana-ability fast paths and tests).
func (c Cost) IsFree() bool {
	return c.Mana.Generic == 0 && len(c.Mana.Colored) == 0 && len(c.Mana.Hybrid) == 0 &&
		len(c.Mana.Phyrexian) == 0 && !c.Mana.HasX && !c.TapCost && !c.SacrificeCost &&
		c.DiscardCost == 0 && c.LifeCost == 0 && len(c.Other) == 0
}

// Effect is one effect an ability's resolution performs.
type Effect struct {
	Kind        EffectKind
	Value       int
	Duration    EffectDuration
	Targets     []TargetSpec
	Conditions  []string
	Description string
	ManaType    types.ManaType // populated for AddMana effects
}

// EffectDuration records how long an effect's consequence lasts.
type EffectDuration int

const (
	Instant EffectDuration = iota
	UntilEndOfTurn
	UntilEndOfCombat
	EffectPermanent
	UntilLeavesPlay
)

// Ability is a single activated, triggered, static, or mana ability bound
// to a source card instance.
type Ability struct {
	ID                uuid.UUID
	Name              string
	Kind              Kind
	Source            uuid.UUID
	Cost              Cost
	Effects           []Effect
	TriggerCondition  TriggerCondition
	TimingRestriction TimingRestriction
	UsesPerTurn       int // 0 = unlimited, -1 = once per game
	UsedThisTurn      int
	IsOptional        bool
	OracleText        string
	ParsedFromText    bool
}

// CanActivateThisTurn reports whether usage limits permit another
// activation this turn, independent of cost/timing checks.
func (a *Ability) CanActivateThisTurn() bool {
	switch {
	case a.UsesPerTurn == 0:
		return true
	case a.UsesPerTurn == -1:
		return a.UsedThisTurn == 0
	default:
		return a.UsedThisTurn < a.UsesPerTurn
	}
}
