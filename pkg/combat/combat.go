// Package combat implements the attack/block declaration steps and the
// evasion-ability legality checks (flying, menace, protection, and the
// rest) that govern which blocks are legal.
package combat

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/pkg/card"
	"github.com/mtgforge/rulesengine/pkg/layers"
)

// Combatant is the view of a creature combat needs: its resolved
// characteristics (post-layers) plus the live state combat itself tracks.
type Combatant struct {
	ID               uuid.UUID
	Controller       int
	Power            int
	Toughness        int
	Colors           []string
	CardTypes        []string
	Keywords         card.KeywordSet
	ProtectionColors []string // from "protection from <color>" keyword args, lowercase color names
	ProtectionFromArtifacts bool
	DamageMarked     int
}

// FromCharacteristics builds a Combatant from a layer-derived snapshot plus
// the source card's protection-keyword arguments (layers.Characteristics
// doesn't carry KeywordArgs, since protection is presence-only there).
func FromCharacteristics(id uuid.UUID, c layers.Characteristics, damageMarked int, protectionFrom []string) Combatant {
	artifacts := false
	var colors []string
	for _, p := range protectionFrom {
		if strings.EqualFold(p, "artifacts") {
			artifacts = true
			continue
		}
		colors = append(colors, colorLetter(p))
	}
	return Combatant{
		ID: id, Controller: c.Controller, Power: c.Power, Toughness: c.Toughness,
		Colors: c.Colors, CardTypes: c.CardTypes, Keywords: c.Keywords, DamageMarked: damageMarked,
		ProtectionColors: colors, ProtectionFromArtifacts: artifacts,
	}
}

func colorLetter(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "white":
		return "W"
	case "blue":
		return "U"
	case "black":
		return "B"
	case "red":
		return "R"
	case "green":
		return "G"
	default:
		return strings.ToUpper(name)
	}
}

// CanBlock reports whether blocker may legally block attacker, applying
// evasion abilities (flying, intimidate, shadow, fear) and protection.
// Menace's minimum-blocker-count rule is enforced separately in
// ValidateBlockAssignment since it isn't a property of a single blocker.
func CanBlock(attacker, blocker Combatant) bool {
	if !isLegalUnderProtection(attacker, blocker) {
		return false
	}
	switch {
	case attacker.Keywords.Has(card.Flying):
		return blocker.Keywords.Has(card.Flying) || blocker.Keywords.Has(card.Reach)
	case attacker.Keywords.Has(card.Shadow):
		return blocker.Keywords.Has(card.Shadow)
	case attacker.Keywords.Has(card.Intimidate):
		if containsType(blocker.CardTypes, "Artifact") {
			return true
		}
		return sharesColor(attacker.Colors, blocker.Colors)
	case attacker.Keywords.Has(card.Fear):
		if containsType(blocker.CardTypes, "Artifact") {
			return true
		}
		return containsColor(blocker.Colors, "B")
	}
	return isLegalUnderProtection(attacker, blocker)
}

// isLegalUnderProtection applies rule 702.16e: a creature with protection
// from a quality can't be blocked by a creature with that quality.
func isLegalUnderProtection(attacker, blocker Combatant) bool {
	for _, prot := range attacker.ProtectionColors {
		if containsColor(blocker.Colors, prot) {
			return false
		}
	}
	if attacker.ProtectionFromArtifacts && containsType(blocker.CardTypes, "Artifact") {
		return false
	}
	return true
}

// ValidateBlockAssignment checks the menace restriction: a creature with
// menace being blocked at all must be blocked by two or more creatures.
func ValidateBlockAssignment(attacker Combatant, blockerCount int) bool {
	if attacker.Keywords.Has(card.Menace) && blockerCount > 0 {
		return blockerCount >= 2
	}
	return true
}

func containsType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func containsColor(colors []string, want string) bool {
	for _, c := range colors {
		if c == want {
			return true
		}
	}
	return false
}

func sharesColor(a, b []string) bool {
	for _, c := range a {
		if containsColor(b, c) {
			return true
		}
	}
	return false
}
