package action

import "testing"

func TestPassPriorityAndConcedeAreFixed(t *testing.T) {
	pass, _ := EncodeSlot(PassPriority, 0)
	concede, _ := EncodeSlot(Concede, 0)
	if pass != 11 {
		t.Fatalf("expected PassPriority fixed at index 11, got %d", pass)
	}
	if concede != 12 {
		t.Fatalf("expected Concede fixed at index 12, got %d", concede)
	}
}

func TestDecodeRoundTripsEncodeSlot(t *testing.T) {
	cases := []struct {
		kind Kind
		slot int
	}{
		{PlayLand, 3},
		{CastSpell, 10},
		{ActivateAbility, 50},
		{DeclareAttacker, 5},
		{ChooseTarget, 0},
		{BottomCard, 6},
		{ChooseMode, 2},
		{ChooseX, 19},
	}
	for _, c := range cases {
		idx, err := EncodeSlot(c.kind, c.slot)
		if err != nil {
			t.Fatalf("EncodeSlot(%v, %d) error: %v", c.kind, c.slot, err)
		}
		desc, err := Decode(idx)
		if err != nil {
			t.Fatalf("Decode(%d) error: %v", idx, err)
		}
		if desc.Kind != c.kind || desc.Slot != c.slot {
			t.Fatalf("round trip mismatch: got %+v, want kind=%v slot=%d", desc, c.kind, c.slot)
		}
	}
}

func TestEncodeSlotOutOfRange(t *testing.T) {
	if _, err := EncodeSlot(PlayLand, 999); err == nil {
		t.Fatal("expected out-of-range slot to error")
	}
}

func TestDecodeOutOfRangeIndex(t *testing.T) {
	if _, err := Decode(Size + 1); err == nil {
		t.Fatal("expected index beyond the fixed space to error")
	}
}

func TestBlockerPairEncodeDecode(t *testing.T) {
	idx, err := EncodeBlockerPair(2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	desc, err := Decode(idx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Kind != DeclareBlocker || desc.Slot != 2 || desc.TargetSlot != 3 {
		t.Fatalf("expected blocker=2 attacker=3, got %+v", desc)
	}
}

func TestActionSpaceFitsDeclaredSize(t *testing.T) {
	// init() already panics at package load if ranges overflow; this test
	// documents the invariant explicitly for readers of the test suite.
	if Size != 480 {
		t.Fatalf("expected action space size 480 per spec, got %d", Size)
	}
}
