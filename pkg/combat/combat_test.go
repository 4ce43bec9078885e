package combat

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/pkg/card"
)

func TestCanBlockFlyingRequiresFlyingOrReach(t *testing.T) {
	attacker := Combatant{Keywords: card.KeywordSet{}.Set(card.Flying)}
	groundBlocker := Combatant{}
	reachBlocker := Combatant{Keywords: card.KeywordSet{}.Set(card.Reach)}

	if CanBlock(attacker, groundBlocker) {
		t.Fatal("expected ground creature to be unable to block flying")
	}
	if !CanBlock(attacker, reachBlocker) {
		t.Fatal("expected reach creature to be able to block flying")
	}
}

func TestCanBlockIntimidateSharedColor(t *testing.T) {
	attacker := Combatant{Keywords: card.KeywordSet{}.Set(card.Intimidate), Colors: []string{"R"}}
	sameColor := Combatant{Colors: []string{"R"}}
	offColor := Combatant{Colors: []string{"U"}}

	if !CanBlock(attacker, sameColor) {
		t.Fatal("expected same-color creature to block intimidate")
	}
	if CanBlock(attacker, offColor) {
		t.Fatal("expected off-color non-artifact creature to be unable to block intimidate")
	}
}

func TestCanBlockProtectionFromColor(t *testing.T) {
	attacker := Combatant{ProtectionColors: []string{"U"}}
	blueBlocker := Combatant{Colors: []string{"U"}}

	if CanBlock(attacker, blueBlocker) {
		t.Fatal("expected protection from blue to prevent a blue blocker")
	}
}

func TestValidateBlockAssignmentMenace(t *testing.T) {
	attacker := Combatant{Keywords: card.KeywordSet{}.Set(card.Menace)}
	if ValidateBlockAssignment(attacker, 1) {
		t.Fatal("expected menace to require at least 2 blockers")
	}
	if !ValidateBlockAssignment(attacker, 2) {
		t.Fatal("expected 2 blockers to satisfy menace")
	}
	if !ValidateBlockAssignment(attacker, 0) {
		t.Fatal("expected unblocked menace creature to be valid")
	}
}

func TestAssignAttackerDamageUnblocked(t *testing.T) {
	attacker := Combatant{ID: uuid.New(), Power: 3}
	defender := 1
	events := AssignAttackerDamage(attacker, defender, nil, nil, nil)
	if len(events) != 1 || events[0].Amount != 3 || events[0].TargetPlayer == nil || *events[0].TargetPlayer != 1 {
		t.Fatalf("expected 3 damage to defending player, got %+v", events)
	}
}

func TestAssignAttackerDamageTrampleOverflow(t *testing.T) {
	blocker := Combatant{ID: uuid.New(), Toughness: 2}
	attacker := Combatant{ID: uuid.New(), Power: 5, Keywords: card.KeywordSet{}.Set(card.Trample)}
	defender := 0

	events := AssignAttackerDamage(attacker, defender, []Combatant{blocker}, nil, nil)
	var toPlayer, toBlocker int
	for _, e := range events {
		if e.TargetPlayer != nil {
			toPlayer = e.Amount
		}
		if e.TargetPermanent != nil {
			toBlocker = e.Amount
		}
	}
	if toBlocker != 2 || toPlayer != 3 {
		t.Fatalf("expected 2 lethal to blocker and 3 trampled through, got blocker=%d player=%d", toBlocker, toPlayer)
	}
}

func TestAssignAttackerDamageNoTrampleCapsAtBlockers(t *testing.T) {
	blocker := Combatant{ID: uuid.New(), Toughness: 2}
	attacker := Combatant{ID: uuid.New(), Power: 5}
	defender := 0

	events := AssignAttackerDamage(attacker, defender, []Combatant{blocker}, nil, nil)
	for _, e := range events {
		if e.TargetPlayer != nil {
			t.Fatal("expected no damage to leak through to the player without trample")
		}
	}
}

func TestAssignAttackerDamageDeathtouchNeedsOnlyOne(t *testing.T) {
	blocker := Combatant{ID: uuid.New(), Toughness: 6}
	attacker := Combatant{ID: uuid.New(), Power: 6, Keywords: card.KeywordSet{}.Set(card.Deathtouch).Set(card.Trample)}
	defender := 0

	lethal := map[uuid.UUID]int{blocker.ID: 1}
	events := AssignAttackerDamage(attacker, defender, []Combatant{blocker}, []uuid.UUID{blocker.ID}, lethal)
	var toPlayer int
	for _, e := range events {
		if e.TargetPlayer != nil {
			toPlayer = e.Amount
		}
	}
	if toPlayer != 5 {
		t.Fatalf("expected deathtouch to only require 1 lethal damage, trampling 5 through, got %d", toPlayer)
	}
}

func TestStepOfFirstStrikeAndRegular(t *testing.T) {
	vanilla := Combatant{}
	firstStriker := Combatant{Keywords: card.KeywordSet{}.Set(card.FirstStrike)}
	doubleStriker := Combatant{Keywords: card.KeywordSet{}.Set(card.DoubleStrike)}

	if StepOf(vanilla, FirstStrikeStep) {
		t.Fatal("expected vanilla creature not to deal damage in first strike step")
	}
	if !StepOf(vanilla, RegularStep) {
		t.Fatal("expected vanilla creature to deal damage in regular step")
	}
	if !StepOf(firstStriker, FirstStrikeStep) || StepOf(firstStriker, RegularStep) {
		t.Fatal("expected first strike creature to deal damage only in first strike step")
	}
	if !StepOf(doubleStriker, FirstStrikeStep) || !StepOf(doubleStriker, RegularStep) {
		t.Fatal("expected double strike creature to deal damage in both steps")
	}
}
