package action

import "testing"

func TestNewMaskAllowsPassAndConcede(t *testing.T) {
	m := NewMask()
	if !m.IsLegal(11) || !m.IsLegal(12) {
		t.Fatal("expected PassPriority and Concede legal by default")
	}
	if m.Count() != 2 {
		t.Fatalf("expected exactly 2 legal actions initially, got %d", m.Count())
	}
}

func TestAllowMarksSlotLegal(t *testing.T) {
	m := NewMask()
	m.Allow(PlayLand, 2)
	idx, _ := EncodeSlot(PlayLand, 2)
	if !m.IsLegal(idx) {
		t.Fatal("expected PlayLand slot 2 to be legal after Allow")
	}
	if m.IsLegal(idx + 1) {
		t.Fatal("expected adjacent slot to remain illegal")
	}
}

func TestIndicesReturnsSortedLegalSet(t *testing.T) {
	m := NewMask()
	m.Allow(PlayLand, 0)
	indices := m.Indices()
	if len(indices) != 3 || indices[0] != 11 || indices[1] != 12 {
		t.Fatalf("expected [11, 12, <playland>], got %v", indices)
	}
}

func TestAllowBlockerPair(t *testing.T) {
	m := NewMask()
	m.AllowBlockerPair(1, 1)
	idx, _ := EncodeBlockerPair(1, 1)
	if !m.IsLegal(idx) {
		t.Fatal("expected blocker pairing to be legal")
	}
}
