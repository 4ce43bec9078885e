package card

import (
	"testing"

	"github.com/mtgforge/rulesengine/pkg/types"
)

func TestParseManaCostString(t *testing.T) {
	mc, err := ParseManaCostString("{2}{W}{W}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mc.Generic != 2 || mc.Colored[types.White] != 2 {
		t.Fatalf("unexpected parse result: %+v", mc)
	}
	if CMCOf(mc) != 4 {
		t.Fatalf("expected CMC 4, got %v", CMCOf(mc))
	}
}

func TestParseManaCostStringX(t *testing.T) {
	mc, err := ParseManaCostString("{X}{X}{W}{W}{W}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mc.HasX || mc.XCount != 2 || mc.Colored[types.White] != 3 {
		t.Fatalf("unexpected parse result: %+v", mc)
	}
}

func TestParseManaCostStringInvalid(t *testing.T) {
	if _, err := ParseManaCostString("{Q}"); err != ErrInvalidCostString {
		t.Fatalf("expected ErrInvalidCostString, got %v", err)
	}
}

func TestBuildPaymentPlanColoredThenGeneric(t *testing.T) {
	pool := NewPool()
	pool.Add(types.White, 2)
	pool.Add(types.Colorless, 2)
	cost, _ := ParseManaCostString("{2}{W}{W}")

	plan, err := BuildPaymentPlan(pool, cost, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.FromPool[types.White] != 2 {
		t.Fatalf("expected 2 white spent, got %d", plan.FromPool[types.White])
	}
	if plan.FromPool[types.Colorless] != 2 {
		t.Fatalf("expected 2 colorless spent on generic, got %d", plan.FromPool[types.Colorless])
	}
}

func TestBuildPaymentPlanInsufficientMana(t *testing.T) {
	pool := NewPool()
	pool.Add(types.White, 1)
	cost, _ := ParseManaCostString("{W}{W}")

	if _, err := BuildPaymentPlan(pool, cost, 20); err != ErrInsufficientMana {
		t.Fatalf("expected ErrInsufficientMana, got %v", err)
	}
}

func TestBuildPaymentPlanPhyrexianPrefersManaOverLife(t *testing.T) {
	pool := NewPool()
	pool.Add(types.Black, 1)
	cost, _ := ParseManaCostString("{B/P}")

	plan, err := BuildPaymentPlan(pool, cost, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.LifePaid != 0 || plan.FromPool[types.Black] != 1 {
		t.Fatalf("expected mana payment preferred over life, got %+v", plan)
	}
}

func TestBuildPaymentPlanPhyrexianFallsBackToLife(t *testing.T) {
	pool := NewPool()
	cost, _ := ParseManaCostString("{B/P}")

	plan, err := BuildPaymentPlan(pool, cost, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.LifePaid != 2 {
		t.Fatalf("expected 2 life paid, got %d", plan.LifePaid)
	}
}

func TestChooseXClampsToRange(t *testing.T) {
	if ChooseX(10, 3) != 3 {
		t.Fatal("expected clamp to max")
	}
	if ChooseX(-1, 3) != 0 {
		t.Fatal("expected clamp to zero")
	}
}

func TestCheckManaProducer(t *testing.T) {
	ok, kinds := CheckManaProducer("{T}: Add {R}.")
	if !ok || len(kinds) != 1 || kinds[0] != types.Red {
		t.Fatalf("unexpected result: %v %v", ok, kinds)
	}
}

func TestPoolEmptyClearsAllMana(t *testing.T) {
	pool := NewPool()
	pool.Add(types.Red, 3)
	pool.AddConditional("spend-on-creatures", 1)
	pool.Empty()
	if pool.Total() != 0 {
		t.Fatalf("expected pool empty, got total %d", pool.Total())
	}
}
