// Package card provides Magic: The Gathering card definitions, per-instance
// battlefield state, and the oracle-text parsing that turns a card's static
// database record into structured characteristics.
package card

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/pkg/types"
)

// Card is the static, database-sourced definition of a card. It never
// changes after the database is loaded; per-game mutation happens on the
// Instance that wraps it.
type Card struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	ManaCost   string `json:"mana_cost"`
	TypeLine   string `json:"type_line"`
	OracleText string `json:"oracle_text"`
	Power      string `json:"power"`
	Toughness  string `json:"toughness"`
	Loyalty    string `json:"loyalty"`
	CMC        float64
	Colors     []string `json:"colors"`

	CardTypes   []string
	Subtypes    []string
	Supertypes  []string
	Keywords    KeywordSet
	KeywordArgs map[Keyword][]string

	Faces []Face // non-nil only for multi-faced cards; Faces[0] is the front face

	PlaneswalkerAbilities []LoyaltyAbility
	SpreeModes             []SpreeMode
	ClassLevels            []ClassLevel
	RoomDoors              []RoomDoor
	Adventure              *AdventureSide
}

// Face is one face of a double-faced, split, or adventure card. Transform
// swaps the active face and rewrites every derived field from it.
type Face struct {
	Name       string
	ManaCost   string
	TypeLine   string
	OracleText string
	Power      string
	Toughness  string
	Loyalty    string
	Colors     []string
	CMC        float64
}

// TransformTriggerType classifies how a double-faced card changes its face.
type TransformTriggerType int

const (
	NoTransform TransformTriggerType = iota
	DayNight
	Flip
	Meld
	Manual
	Condition
	CostTrigger
)

// Instance is a specific copy of a Card in play: it carries an arena-stable
// ID, its current zone-independent mutable state, and a pointer back to its
// immutable database definition. Moving an Instance out of the battlefield
// resets its temporary state per rule 613/614 (see ResetTemporaryState).
type Instance struct {
	ID       uuid.UUID
	Def      *Card
	OwnerIdx int // index into Arena.Players, the card's owner (never changes)

	FaceIndex int // 0 = front face; DFCs flip this

	Zone       types.Zone
	Controller int // index into Arena.Players; may differ from OwnerIdx

	Tapped           bool
	SummoningSick    bool
	FaceDown         bool
	Counters         map[string]int
	AttachedTo       *uuid.UUID // aura/equipment target
	DamageMarked     int
	EnteredThisTurn  bool
	Attacking        *uuid.UUID // the defending player or planeswalker being attacked
	BlockedBy        []uuid.UUID
	Blocking         *uuid.UUID

	TimestampAdded uint64 // layer-system timestamp, assigned by the arena on zone entry
}

// CurrentFace returns the Face in effect, synthesizing one from the base
// Card fields when the card has no alternate faces.
func (c *Card) CurrentFace(faceIndex int) Face {
	if len(c.Faces) == 0 {
		return Face{
			Name: c.Name, ManaCost: c.ManaCost, TypeLine: c.TypeLine,
			OracleText: c.OracleText, Power: c.Power, Toughness: c.Toughness,
			Loyalty: c.Loyalty, Colors: c.Colors, CMC: c.CMC,
		}
	}
	if faceIndex < 0 || faceIndex >= len(c.Faces) {
		faceIndex = 0
	}
	return c.Faces[faceIndex]
}

// IsDoubleFaced reports whether the card has more than one face.
func (c *Card) IsDoubleFaced() bool {
	return len(c.Faces) >= 2
}

// Transform flips a double-faced Instance to its other face. Transforming
// twice returns the original face (tested as a round-trip law).
func (inst *Instance) Transform() {
	if inst.Def == nil || !inst.Def.IsDoubleFaced() {
		return
	}
	inst.FaceIndex = (inst.FaceIndex + 1) % len(inst.Def.Faces)
}

// GetTransformTriggerType classifies the mechanism by which a double-faced
// card changes face, from oracle text heuristics.
func GetTransformTriggerType(c *Card) TransformTriggerType {
	if !c.IsDoubleFaced() {
		return NoTransform
	}
	text := strings.ToLower(c.OracleText)
	switch {
	case strings.Contains(text, "day") && strings.Contains(text, "night"):
		return DayNight
	case strings.Contains(text, "flip"):
		return Flip
	case strings.Contains(text, "meld"):
		return Meld
	case strings.Contains(text, "transform"):
		if strings.Contains(text, "if") || strings.Contains(text, "whenever") || strings.Contains(text, "when") {
			return Condition
		}
		return Manual
	default:
		return NoTransform
	}
}

// IsModal reports whether a double-faced card is a modal DFC (no transform
// mechanism after entering the battlefield), as opposed to a transforming DFC.
func IsModal(c *Card) bool {
	return c.IsDoubleFaced() && GetTransformTriggerType(c) == NoTransform
}

// ResetTemporaryState clears battlefield-only state, matching rule 613/614:
// a card leaving the battlefield loses counters, attachments, face-down
// status, and combat assignments regardless of destination zone.
func (inst *Instance) ResetTemporaryState() {
	inst.Tapped = false
	inst.SummoningSick = false
	inst.FaceDown = false
	inst.Counters = make(map[string]int)
	inst.AttachedTo = nil
	inst.DamageMarked = 0
	inst.EnteredThisTurn = false
	inst.Attacking = nil
	inst.BlockedBy = nil
	inst.Blocking = nil
	inst.FaceIndex = 0
}

// IsLand reports whether the card's current type line includes Land.
func (c *Card) IsLand() bool { return strings.Contains(c.TypeLine, "Land") }

// IsCreature reports whether the card's current type line includes Creature.
func (c *Card) IsCreature() bool { return strings.Contains(c.TypeLine, "Creature") }

// IsInstant reports whether the card's current type line includes Instant.
func (c *Card) IsInstant() bool { return strings.Contains(c.TypeLine, "Instant") }

// IsSorcery reports whether the card's current type line includes Sorcery.
func (c *Card) IsSorcery() bool { return strings.Contains(c.TypeLine, "Sorcery") }

// IsArtifact reports whether the card's current type line includes Artifact.
func (c *Card) IsArtifact() bool { return strings.Contains(c.TypeLine, "Artifact") }

// IsEnchantment reports whether the card's current type line includes Enchantment.
func (c *Card) IsEnchantment() bool { return strings.Contains(c.TypeLine, "Enchantment") }

// IsPlaneswalker reports whether the card's current type line includes Planeswalker.
func (c *Card) IsPlaneswalker() bool { return strings.Contains(c.TypeLine, "Planeswalker") }

// HasKeyword reports whether the card's keyword bitset has the given keyword set.
func (c *Card) HasKeyword(k Keyword) bool { return c.Keywords.Has(k) }
