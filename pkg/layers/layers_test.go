package layers

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/pkg/card"
)

func TestRecalculateIdempotent(t *testing.T) {
	reg := NewRegistry()
	id := uuid.New()
	base := map[uuid.UUID]Characteristics{
		id: {Name: "Grizzly Bears", Power: 2, Toughness: 2, CardTypes: []string{"Creature"}},
	}

	first := reg.Recalculate(base)
	second := reg.Recalculate(base)

	if !reflect.DeepEqual(first[id], second[id]) {
		t.Fatalf("expected identical derived characteristics across two applications: %+v vs %+v", first[id], second[id])
	}
}

func TestAnthemAppliesInLayer7c(t *testing.T) {
	reg := NewRegistry()
	source := uuid.New()
	target := uuid.New()

	reg.Register(Effect{
		Source: source, Layer: Layer7c,
		Target:  Target{DynamicOf: func(c Characteristics) bool { return containsAny(c.CardTypes, "Creature") }},
		ApplyPT: func(c *Characteristics) { c.Power++; c.Toughness++ },
	})

	base := map[uuid.UUID]Characteristics{
		target: {Name: "Grizzly Bears", Power: 2, Toughness: 2, CardTypes: []string{"Creature"}},
	}
	result := reg.Recalculate(base)
	if result[target].Power != 3 || result[target].Toughness != 3 {
		t.Fatalf("expected anthem +1/+1 applied, got %+v", result[target])
	}
}

func TestRegisterThenDeregisterReturnsBaseline(t *testing.T) {
	reg := NewRegistry()
	source := uuid.New()
	target := uuid.New()
	base := map[uuid.UUID]Characteristics{
		target: {Name: "Grizzly Bears", Power: 2, Toughness: 2, CardTypes: []string{"Creature"}},
	}

	before := reg.Recalculate(base)

	reg.Register(Effect{
		Source: source, Layer: Layer7c,
		Target:  Target{Single: &target},
		ApplyPT: func(c *Characteristics) { c.Power += 5 },
	})
	reg.Recalculate(base)

	reg.Deregister(source)
	after := reg.Recalculate(base)

	if after[target].Power != before[target].Power {
		t.Fatalf("expected power to return to baseline %d, got %d", before[target].Power, after[target].Power)
	}
}

func TestPlusOnePlusOneCounterAppliedInLayer7b(t *testing.T) {
	reg := NewRegistry()
	target := uuid.New()
	base := map[uuid.UUID]Characteristics{
		target: {
			Name: "Llanowar Elves", Power: 1, Toughness: 1, CardTypes: []string{"Creature"},
			liveCounters: map[string]int{"+1/+1": 2},
		},
	}
	result := reg.Recalculate(base)
	if result[target].Power != 3 || result[target].Toughness != 3 {
		t.Fatalf("expected +2/+2 from counters, got %+v", result[target])
	}
}

func TestLayerAbilityUnionAndRemoval(t *testing.T) {
	reg := NewRegistry()
	target := uuid.New()
	base := map[uuid.UUID]Characteristics{
		target: {Name: "Bear", CardTypes: []string{"Creature"}},
	}
	reg.Register(Effect{
		Layer: LayerAbility, Target: Target{Single: &target},
		ApplyAbility: func(c *Characteristics) { c.Keywords = c.Keywords.Set(card.Flying) },
	})
	result := reg.Recalculate(base)
	if !result[target].Keywords.Has(card.Flying) {
		t.Fatalf("expected granted Flying keyword present, got %v", result[target].Keywords)
	}
}
