package ability

import (
	"testing"

	"github.com/google/uuid"
)

func TestValidateTargetsRequiresCreature(t *testing.T) {
	creature := uuid.New()
	land := uuid.New()
	candidates := map[uuid.UUID]TargetableCard{
		creature: {ID: creature, IsCreature: true},
		land:     {ID: land, IsCreature: false},
	}
	specs := []TargetSpec{{Kind: CreatureTarget, Required: true}}

	if err := ValidateTargets(specs, []SelectedTarget{{Permanent: &creature}}, candidates); err != nil {
		t.Fatalf("expected valid creature target to pass, got %v", err)
	}
	if err := ValidateTargets(specs, []SelectedTarget{{Permanent: &land}}, candidates); err == nil {
		t.Fatal("expected non-creature target to be rejected")
	}
}

func TestValidateTargetsRejectsHexproof(t *testing.T) {
	id := uuid.New()
	candidates := map[uuid.UUID]TargetableCard{id: {ID: id, IsCreature: true, HasHexproof: true}}
	specs := []TargetSpec{{Kind: CreatureTarget, Required: true}}

	if err := ValidateTargets(specs, []SelectedTarget{{Permanent: &id}}, candidates); err == nil {
		t.Fatal("expected hexproof creature to be an illegal target")
	}
}

func TestValidateTargetsMissingRequiredTarget(t *testing.T) {
	specs := []TargetSpec{{Kind: CreatureTarget, Required: true}}
	if err := ValidateTargets(specs, nil, map[uuid.UUID]TargetableCard{}); err == nil {
		t.Fatal("expected missing required target to be an error")
	}
}

func TestValidateTargetsOptionalMayBeOmitted(t *testing.T) {
	specs := []TargetSpec{{Kind: CreatureTarget, Required: false}}
	if err := ValidateTargets(specs, nil, map[uuid.UUID]TargetableCard{}); err != nil {
		t.Fatalf("expected optional target to be omittable, got %v", err)
	}
}

func TestLegalTargetsExist(t *testing.T) {
	creature := uuid.New()
	candidates := map[uuid.UUID]TargetableCard{creature: {ID: creature, IsCreature: true}}

	if !LegalTargetsExist(TargetSpec{Kind: CreatureTarget}, candidates) {
		t.Fatal("expected a legal creature target to exist")
	}
	if LegalTargetsExist(TargetSpec{Kind: CreatureTarget}, map[uuid.UUID]TargetableCard{}) {
		t.Fatal("expected no legal targets among empty candidates")
	}
}
