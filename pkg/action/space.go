// Package action defines the fixed, stable integer action space the
// driving agent selects from: every legal choice the engine can offer is
// mapped to one index in a space of constant size, so a learned policy's
// output layer never needs to change shape between games.
package action

import "github.com/google/uuid"

// Kind enumerates the categories of action an index can represent.
type Kind int

const (
	PassPriority Kind = iota
	Concede
	PlayLand
	CastSpell
	ActivateAbility
	DeclareAttacker
	DeclareBlocker
	ChooseTarget
	Mulligan
	KeepHand
	BottomCard
	ChooseMode
	ChooseX
	RespondToMulligan
)

// Space size and the two fixed slots spec.md pins: PassPriority is always
// index 11, Concede is always index 12. Everything else is assigned a
// stable range below so the mapping never shifts between games.
const (
	Size = 480

	indexPassPriority = 11
	indexConcede      = 12

	rangePlayLandStart         = 13
	rangePlayLandCount         = 7 // one per card in a 7-card hand's worth of land slots
	rangeCastSpellStart        = rangePlayLandStart + rangePlayLandCount
	rangeCastSpellCount        = 40 // hand + a few stack-adjacent slots for flashback/jump-start sources
	rangeActivateAbilityStart  = rangeCastSpellStart + rangeCastSpellCount
	rangeActivateAbilityCount  = 120 // up to ~10 activatable sources * up to 12 distinct abilities modeled
	rangeDeclareAttackerStart  = rangeActivateAbilityStart + rangeActivateAbilityCount
	rangeDeclareAttackerCount  = 40
	rangeDeclareBlockerStart   = rangeDeclareAttackerStart + rangeDeclareAttackerCount
	rangeDeclareBlockerCount   = 80 // blocker*attacker pairing slots
	rangeChooseTargetStart     = rangeDeclareBlockerStart + rangeDeclareBlockerCount
	rangeChooseTargetCount     = 120
	rangeMulliganStart         = rangeChooseTargetStart + rangeChooseTargetCount
	rangeMulliganCount         = 1
	rangeKeepHandStart         = rangeMulliganStart + rangeMulliganCount
	rangeKeepHandCount         = 1
	rangeBottomCardStart       = rangeKeepHandStart + rangeKeepHandCount
	rangeBottomCardCount       = 7
	rangeChooseModeStart       = rangeBottomCardStart + rangeBottomCardCount
	rangeChooseModeCount       = 8
	rangeChooseXStart          = rangeChooseModeStart + rangeChooseModeCount
	rangeChooseXCount          = 20
	rangeRespondToMulliganStart = rangeChooseXStart + rangeChooseXCount
	rangeRespondToMulliganCount = 1
)

func init() {
	end := rangeRespondToMulliganStart + rangeRespondToMulliganCount
	if end > Size {
		panic("action: declared ranges overflow the fixed action space size")
	}
}

// Descriptor is the decoded meaning of an action-space index.
type Descriptor struct {
	Kind       Kind
	Slot       int         // position within the kind's range, e.g. which hand card
	Source     *uuid.UUID  // the permanent/spell the action concerns, if resolved by the caller
	TargetSlot int         // secondary parameter, e.g. which attacker a blocker pairs with
}

// Decode maps a raw action index to its Kind and slot-within-kind. The
// caller (pkg/game) is responsible for resolving Slot to a concrete card
// instance using its own current legal-action listing, since the space
// itself has no notion of game state.
func Decode(index int) (Descriptor, error) {
	switch {
	case index == indexPassPriority:
		return Descriptor{Kind: PassPriority}, nil
	case index == indexConcede:
		return Descriptor{Kind: Concede}, nil
	case inRange(index, rangePlayLandStart, rangePlayLandCount):
		return Descriptor{Kind: PlayLand, Slot: index - rangePlayLandStart}, nil
	case inRange(index, rangeCastSpellStart, rangeCastSpellCount):
		return Descriptor{Kind: CastSpell, Slot: index - rangeCastSpellStart}, nil
	case inRange(index, rangeActivateAbilityStart, rangeActivateAbilityCount):
		return Descriptor{Kind: ActivateAbility, Slot: index - rangeActivateAbilityStart}, nil
	case inRange(index, rangeDeclareAttackerStart, rangeDeclareAttackerCount):
		return Descriptor{Kind: DeclareAttacker, Slot: index - rangeDeclareAttackerStart}, nil
	case inRange(index, rangeDeclareBlockerStart, rangeDeclareBlockerCount):
		offset := index - rangeDeclareBlockerStart
		return Descriptor{Kind: DeclareBlocker, Slot: offset / 8, TargetSlot: offset % 8}, nil
	case inRange(index, rangeChooseTargetStart, rangeChooseTargetCount):
		return Descriptor{Kind: ChooseTarget, Slot: index - rangeChooseTargetStart}, nil
	case inRange(index, rangeMulliganStart, rangeMulliganCount):
		return Descriptor{Kind: Mulligan}, nil
	case inRange(index, rangeKeepHandStart, rangeKeepHandCount):
		return Descriptor{Kind: KeepHand}, nil
	case inRange(index, rangeBottomCardStart, rangeBottomCardCount):
		return Descriptor{Kind: BottomCard, Slot: index - rangeBottomCardStart}, nil
	case inRange(index, rangeChooseModeStart, rangeChooseModeCount):
		return Descriptor{Kind: ChooseMode, Slot: index - rangeChooseModeStart}, nil
	case inRange(index, rangeChooseXStart, rangeChooseXCount):
		return Descriptor{Kind: ChooseX, Slot: index - rangeChooseXStart}, nil
	case inRange(index, rangeRespondToMulliganStart, rangeRespondToMulliganCount):
		return Descriptor{Kind: RespondToMulligan}, nil
	default:
		return Descriptor{}, ErrIndexOutOfRange
	}
}

func inRange(index, start, count int) bool {
	return index >= start && index < start+count
}

// EncodeSlot returns the action index for kind at the given slot, the
// inverse of Decode for the simple (non-paired) ranges; used by
// Mask.Allow to build the action mask.
func EncodeSlot(kind Kind, slot int) (int, error) {
	switch kind {
	case PassPriority:
		return indexPassPriority, nil
	case Concede:
		return indexConcede, nil
	case PlayLand:
		return boundedEncode(rangePlayLandStart, rangePlayLandCount, slot)
	case CastSpell:
		return boundedEncode(rangeCastSpellStart, rangeCastSpellCount, slot)
	case ActivateAbility:
		return boundedEncode(rangeActivateAbilityStart, rangeActivateAbilityCount, slot)
	case DeclareAttacker:
		return boundedEncode(rangeDeclareAttackerStart, rangeDeclareAttackerCount, slot)
	case ChooseTarget:
		return boundedEncode(rangeChooseTargetStart, rangeChooseTargetCount, slot)
	case Mulligan:
		return rangeMulliganStart, nil
	case KeepHand:
		return rangeKeepHandStart, nil
	case BottomCard:
		return boundedEncode(rangeBottomCardStart, rangeBottomCardCount, slot)
	case ChooseMode:
		return boundedEncode(rangeChooseModeStart, rangeChooseModeCount, slot)
	case ChooseX:
		return boundedEncode(rangeChooseXStart, rangeChooseXCount, slot)
	case RespondToMulligan:
		return rangeRespondToMulliganStart, nil
	default:
		return 0, ErrIndexOutOfRange
	}
}

// EncodeBlockerPair returns the action index for a blocker-declaration
// pairing a specific blocker slot against a specific attacker slot.
func EncodeBlockerPair(blockerSlot, attackerSlot int) (int, error) {
	if blockerSlot < 0 || blockerSlot >= rangeDeclareBlockerCount/8 || attackerSlot < 0 || attackerSlot >= 8 {
		return 0, ErrIndexOutOfRange
	}
	return rangeDeclareBlockerStart + blockerSlot*8 + attackerSlot, nil
}

func boundedEncode(start, count, slot int) (int, error) {
	if slot < 0 || slot >= count {
		return 0, ErrIndexOutOfRange
	}
	return start + slot, nil
}
