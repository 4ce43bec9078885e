package replacement

import (
	"testing"

	"github.com/google/uuid"
)

func TestApplyNoEntriesPassesThrough(t *testing.T) {
	reg := NewRegistry()
	event := Event{Kind: DamageDealt, Data: map[string]interface{}{"amount": 3}}

	result, suppressed := reg.Apply(event, nil)
	if suppressed {
		t.Fatal("expected not suppressed with no registered entries")
	}
	if result.Data["amount"] != 3 {
		t.Fatalf("expected unchanged event, got %+v", result)
	}
}

func TestApplyRewritesDamage(t *testing.T) {
	reg := NewRegistry()
	source := uuid.New()
	reg.Register(DamageDealt, Entry{
		Source:    source,
		Predicate: func(e Event) bool { return true },
		Rewriter: func(e Event) (Event, bool) {
			e.Data["amount"] = e.Data["amount"].(int) + 1
			return e, false
		},
	})

	result, suppressed := reg.Apply(Event{Kind: DamageDealt, Data: map[string]interface{}{"amount": 3}}, nil)
	if suppressed {
		t.Fatal("did not expect suppression")
	}
	if result.Data["amount"] != 4 {
		t.Fatalf("expected amount rewritten to 4, got %v", result.Data["amount"])
	}
}

func TestApplySuppressesPreventionEffect(t *testing.T) {
	reg := NewRegistry()
	reg.Register(DamageDealt, Entry{
		Predicate: func(e Event) bool { return true },
		Rewriter:  func(e Event) (Event, bool) { return e, true },
	})

	_, suppressed := reg.Apply(Event{Kind: DamageDealt}, nil)
	if !suppressed {
		t.Fatal("expected damage prevention to suppress the event")
	}
}

func TestDeregisterRemovesOnlyThatSourcesEntries(t *testing.T) {
	reg := NewRegistry()
	a, b := uuid.New(), uuid.New()
	reg.Register(Dies, Entry{Source: a, Predicate: func(Event) bool { return true }, Rewriter: func(e Event) (Event, bool) { return e, true }})
	reg.Register(Dies, Entry{Source: b, Predicate: func(Event) bool { return true }, Rewriter: func(e Event) (Event, bool) { return e, false }})

	reg.Deregister(a)

	_, suppressed := reg.Apply(Event{Kind: Dies}, nil)
	if suppressed {
		t.Fatal("expected only source b's non-suppressing entry to remain")
	}
}

func TestControllerChoosesOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register(DamageDealt, Entry{
		Predicate: func(e Event) bool { return true },
		Rewriter: func(e Event) (Event, bool) {
			e.Data["log"] = append(e.Data["log"].([]string), "first")
			return e, false
		},
	})
	reg.Register(DamageDealt, Entry{
		Predicate: func(e Event) bool { return true },
		Rewriter: func(e Event) (Event, bool) {
			e.Data["log"] = append(e.Data["log"].([]string), "second")
			return e, false
		},
	})

	reverse := func(entries []Entry) []Entry {
		out := make([]Entry, len(entries))
		for i, e := range entries {
			out[len(entries)-1-i] = e
		}
		return out
	}

	result, _ := reg.Apply(Event{Kind: DamageDealt, Data: map[string]interface{}{"log": []string{}}}, reverse)
	log := result.Data["log"].([]string)
	if len(log) != 2 || log[0] != "second" || log[1] != "first" {
		t.Fatalf("expected controller-chosen reversed order, got %v", log)
	}
}
