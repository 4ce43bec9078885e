package sba

import (
	"testing"

	"github.com/google/uuid"
)

func hasAction(actions []Action, kind ActionKind, id uuid.UUID) bool {
	for _, a := range actions {
		if a.Kind == kind && (id == uuid.Nil || a.Permanent == id) {
			return true
		}
	}
	return false
}

func TestPlayerLosesAtZeroLife(t *testing.T) {
	view := GameView{Players: []PlayerView{{Index: 0, Life: 0}, {Index: 1, Life: 20}}}
	actions := Check(view, nil)
	if !hasAction(actions, PlayerLoses, uuid.Nil) {
		t.Fatal("expected player 0 to lose at 0 life")
	}
}

func TestCreatureDestroyedByLethalDamage(t *testing.T) {
	id := uuid.New()
	view := GameView{Permanents: []PermanentView{{ID: id, IsCreature: true, Toughness: 3, DamageMarked: 3}}}
	actions := Check(view, nil)
	if !hasAction(actions, DestroyPermanent, id) {
		t.Fatal("expected creature with lethal damage to be destroyed")
	}
}

func TestIndestructibleSurvivesLethalDamage(t *testing.T) {
	id := uuid.New()
	view := GameView{Permanents: []PermanentView{{ID: id, IsCreature: true, Toughness: 3, DamageMarked: 5, Indestructible: true}}}
	actions := Check(view, nil)
	if hasAction(actions, DestroyPermanent, id) {
		t.Fatal("expected indestructible creature to survive lethal damage")
	}
}

func TestZeroToughnessDestroysEvenIndestructible(t *testing.T) {
	id := uuid.New()
	view := GameView{Permanents: []PermanentView{{ID: id, IsCreature: true, Toughness: 0, Indestructible: true}}}
	actions := Check(view, nil)
	if !hasAction(actions, DestroyPermanent, id) {
		t.Fatal("expected 0-toughness creature to be put into the graveyard regardless of indestructible")
	}
}

func TestPlaneswalkerDestroyedAtZeroLoyalty(t *testing.T) {
	id := uuid.New()
	view := GameView{Permanents: []PermanentView{{ID: id, IsPlaneswalker: true, Loyalty: 0}}}
	actions := Check(view, nil)
	if !hasAction(actions, DestroyPermanent, id) {
		t.Fatal("expected planeswalker at 0 loyalty to be destroyed")
	}
}

func TestAuraUnattachedDestroyed(t *testing.T) {
	id := uuid.New()
	view := GameView{Permanents: []PermanentView{{ID: id, IsAura: true, AttachedTo: nil}}}
	actions := Check(view, nil)
	if !hasAction(actions, DestroyPermanent, id) {
		t.Fatal("expected unattached aura to be put into the graveyard")
	}
}

func TestLegendRuleKeepsChosenCopy(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	view := GameView{Permanents: []PermanentView{
		{ID: a, IsLegendary: true, Controller: 0, Name: "Karn, Scion of Urza"},
		{ID: b, IsLegendary: true, Controller: 0, Name: "Karn, Scion of Urza"},
	}}
	chooseKeepB := func(player int, dups []PermanentView) uuid.UUID { return b }

	actions := Check(view, chooseKeepB)
	if !hasAction(actions, SacrificeToLegendRule, a) {
		t.Fatal("expected the non-chosen duplicate to be sacrificed")
	}
	if hasAction(actions, SacrificeToLegendRule, b) {
		t.Fatal("expected the chosen duplicate to survive")
	}
}

func TestLegendRuleIgnoresDifferentNames(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	view := GameView{Permanents: []PermanentView{
		{ID: a, IsLegendary: true, Controller: 0, Name: "Karn, Scion of Urza"},
		{ID: b, IsLegendary: true, Controller: 0, Name: "Urza, Lord High Artificer"},
	}}
	actions := Check(view, nil)
	if hasAction(actions, SacrificeToLegendRule, uuid.Nil) {
		t.Fatal("expected no legend-rule action for two different legendary names")
	}
}

func TestCounterAnnihilation(t *testing.T) {
	id := uuid.New()
	view := GameView{Permanents: []PermanentView{{ID: id, IsCreature: true, Toughness: 4, PlusCounters: 3, MinusCounters: 1}}}
	actions := Check(view, nil)
	found := false
	for _, a := range actions {
		if a.Kind == AnnihilateCounters && a.Permanent == id {
			found = true
			if a.PlusRemoved != 1 || a.MinusRemoved != 1 {
				t.Fatalf("expected 1 pair annihilated, got %+v", a)
			}
		}
	}
	if !found {
		t.Fatal("expected counter annihilation action")
	}
}

func TestRunToFixpointStopsWhenStable(t *testing.T) {
	calls := 0
	iterations := RunToFixpoint(func() []Action {
		calls++
		if calls < 3 {
			return []Action{{Kind: DestroyPermanent}}
		}
		return nil
	}, 10)
	if iterations != 2 {
		t.Fatalf("expected fixpoint after 2 non-empty passes, got %d", iterations)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls (2 non-empty + 1 empty), got %d", calls)
	}
}

func TestRunToFixpointRespectsMaxIterations(t *testing.T) {
	iterations := RunToFixpoint(func() []Action { return []Action{{Kind: DestroyPermanent}} }, 5)
	if iterations != 5 {
		t.Fatalf("expected to stop at maxIterations=5, got %d", iterations)
	}
}
