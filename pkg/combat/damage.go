package combat

import (
	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/pkg/card"
)

// AttackDeclaration pairs an attacking creature with the player or
// planeswalker it's attacking.
type AttackDeclaration struct {
	Attacker       uuid.UUID
	DefendingPlayer int
}

// BlockDeclaration pairs a blocking creature with the attacker it blocks.
// A blocked attacker may have more than one BlockDeclaration (multi-block).
type BlockDeclaration struct {
	Blocker  uuid.UUID
	Attacker uuid.UUID
}

// DamageAssignmentOrder is the attacking or blocking player's chosen order
// for lethal-damage assignment among multiple blockers/attackers (rule
// 509.2, 510.1c).
type DamageAssignmentOrder struct {
	Source uuid.UUID
	Order  []uuid.UUID
}

// DamageEvent is one instance of combat damage to be applied to the game
// state; the caller (pkg/game) is responsible for marking damage, checking
// lifelink/deathtouch/wither effects against its own life totals, and
// running state-based actions afterward.
type DamageEvent struct {
	Source       uuid.UUID
	TargetPlayer *int
	TargetPermanent *uuid.UUID
	Amount       int
	Deathtouch   bool
	Lifelink     bool
	Infect       bool
}

// Step identifies which combat damage step an assignment belongs to.
type Step int

const (
	FirstStrikeStep Step = iota
	RegularStep
)

// StepOf reports which damage step a combatant deals damage in: first
// strike and double strike creatures deal damage in the first-strike step,
// double strike also deals damage again in the regular step, and every
// other creature deals damage only in the regular step.
func StepOf(c Combatant, step Step) bool {
	firstStriker := c.Keywords.Has(card.FirstStrike) || c.Keywords.Has(card.DoubleStrike)
	switch step {
	case FirstStrikeStep:
		return firstStriker
	default:
		return !c.Keywords.Has(card.FirstStrike) || c.Keywords.Has(card.DoubleStrike)
	}
}

// AssignAttackerDamage computes the damage events an attacking creature
// deals given the blockers assigned to it (in lethal-assignment order) and
// whether it can trample excess damage through to the defending player.
// lethal reports the damage needed to be lethal to each blocker (normally
// its toughness minus damage already marked, or 1 if the attacker has
// deathtouch).
func AssignAttackerDamage(attacker Combatant, defendingPlayer int, blockers []Combatant, order []uuid.UUID, lethal map[uuid.UUID]int) []DamageEvent {
	if len(blockers) == 0 {
		return []DamageEvent{{Source: attacker.ID, TargetPlayer: &defendingPlayer, Amount: attacker.Power,
			Deathtouch: attacker.Keywords.Has(card.Deathtouch), Lifelink: attacker.Keywords.Has(card.Lifelink),
			Infect: attacker.Keywords.Has(card.Infect)}}
	}

	remaining := attacker.Power
	byID := make(map[uuid.UUID]Combatant, len(blockers))
	for _, b := range blockers {
		byID[b.ID] = b
	}

	assign := order
	if len(assign) == 0 {
		for _, b := range blockers {
			assign = append(assign, b.ID)
		}
	}

	var events []DamageEvent
	trample := attacker.Keywords.Has(card.Trample)
	for _, id := range assign {
		if remaining <= 0 {
			break
		}
		need := lethal[id]
		if need <= 0 {
			need = byID[id].Toughness
		}
		amount := need
		if amount > remaining {
			amount = remaining
		}
		if !trample && amount > remaining {
			amount = remaining
		}
		target := id
		events = append(events, DamageEvent{Source: attacker.ID, TargetPermanent: &target, Amount: amount,
			Deathtouch: attacker.Keywords.Has(card.Deathtouch), Lifelink: attacker.Keywords.Has(card.Lifelink),
			Infect: attacker.Keywords.Has(card.Infect)})
		remaining -= amount
	}

	if trample && remaining > 0 {
		events = append(events, DamageEvent{Source: attacker.ID, TargetPlayer: &defendingPlayer, Amount: remaining,
			Deathtouch: attacker.Keywords.Has(card.Deathtouch), Lifelink: attacker.Keywords.Has(card.Lifelink),
			Infect: attacker.Keywords.Has(card.Infect)})
	}
	return events
}

// AssignBlockerDamage computes the damage a blocking creature deals to the
// attacker(s) it's blocking (a creature with multiple attackers blocking it
// simultaneously, via an effect, assigns its damage among them in order).
func AssignBlockerDamage(blocker Combatant, attackers []uuid.UUID) []DamageEvent {
	if len(attackers) == 0 {
		return nil
	}
	remaining := blocker.Power
	perTarget := remaining
	if len(attackers) > 1 {
		perTarget = remaining / len(attackers)
	}
	var events []DamageEvent
	for i, a := range attackers {
		amount := perTarget
		if i == len(attackers)-1 {
			amount = remaining - perTarget*(len(attackers)-1)
		}
		target := a
		events = append(events, DamageEvent{Source: blocker.ID, TargetPermanent: &target, Amount: amount,
			Deathtouch: blocker.Keywords.Has(card.Deathtouch), Lifelink: blocker.Keywords.Has(card.Lifelink),
			Infect: blocker.Keywords.Has(card.Infect)})
	}
	return events
}
