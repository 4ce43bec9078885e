package game

import (
	"testing"

	"github.com/mtgforge/rulesengine/pkg/action"
	"github.com/mtgforge/rulesengine/pkg/card"
	"github.com/mtgforge/rulesengine/pkg/deck"
	"github.com/mtgforge/rulesengine/pkg/types"
)

func landCard(name string) *card.Card {
	return &card.Card{Name: name, TypeLine: "Basic Land — " + name}
}

func bear() *card.Card {
	return creature("Grizzly Bears")
}

func creature(name string) *card.Card {
	return &card.Card{
		Name: name, TypeLine: "Creature — Bear", ManaCost: "{1}{G}",
		Power: "2", Toughness: "2",
	}
}

// basicDeck builds a 60-card deck: 40 Forests (basic lands are exempt from
// the 4-copy rule) plus 20 creatures split across 5 distinct names so no
// card exceeds deck.Validate's 4-copy limit.
func basicDeck() *deck.Deck {
	d := &deck.Deck{Name: "test"}
	for i := 0; i < 40; i++ {
		d.Main = append(d.Main, landCard("Forest"))
	}
	names := []string{"Grizzly Bears", "Elvish Warrior", "Giant Spider", "Hill Giant", "Wind Drake"}
	for _, name := range names {
		for i := 0; i < 4; i++ {
			d.Main = append(d.Main, creature(name))
		}
	}
	return d
}

func newTestGame(t *testing.T) (*Game, Observation, action.Mask) {
	t.Helper()
	g := NewGame()
	obs, mask, err := g.Reset(Config{Decks: []*deck.Deck{basicDeck(), basicDeck()}, Seed: 42})
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return g, obs, mask
}

func TestResetDealsOpeningHands(t *testing.T) {
	_, obs, mask := newTestGame(t)
	if len(obs.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(obs.Players))
	}
	for _, p := range obs.Players {
		if p.HandSize != 7 {
			t.Fatalf("player %d: expected opening hand of 7, got %d", p.Index, p.HandSize)
		}
		if p.LibrarySize != 53 {
			t.Fatalf("player %d: expected library of 53 after drawing 7, got %d", p.Index, p.LibrarySize)
		}
	}
	if !mask.IsLegal(11) || !mask.IsLegal(12) {
		t.Fatal("expected PassPriority and Concede to always be legal")
	}
	if obs.Turn != 1 || obs.ActivePlayer != 0 {
		t.Fatalf("expected turn 1, active player 0, got turn %d active %d", obs.Turn, obs.ActivePlayer)
	}
}

func TestResetRejectsUndersizedDecks(t *testing.T) {
	g := NewGame()
	small := &deck.Deck{Name: "small", Main: []*card.Card{bear()}}
	_, _, err := g.Reset(Config{Decks: []*deck.Deck{small, basicDeck()}, Seed: 1})
	if err == nil {
		t.Fatal("expected an error for an undersized deck")
	}
}

func TestApplyPassPriorityAdvancesPhase(t *testing.T) {
	g, obs, _ := newTestGame(t)
	startPhase := obs.Phase
	var err error
	for i := 0; i < 20 && obs.Phase == startPhase && !obs.Terminated; i++ {
		obs, _, _, err = g.Apply(11) // PassPriority
		if err != nil {
			t.Fatalf("Apply(PassPriority): %v", err)
		}
	}
	if obs.Phase == startPhase {
		t.Fatalf("expected phase to advance past %v after repeated passes", startPhase)
	}
}

func TestApplyConcedeEndsGame(t *testing.T) {
	g, _, _ := newTestGame(t)
	obs, _, terminated, err := g.Apply(12) // Concede
	if err != nil {
		t.Fatalf("Apply(Concede): %v", err)
	}
	if !terminated || !obs.Terminated {
		t.Fatal("expected the game to terminate on concede")
	}
	if obs.Reason != types.Loss {
		t.Fatalf("expected TerminationReason Loss, got %v", obs.Reason)
	}
	if obs.Winner != 1 {
		t.Fatalf("expected player 1 to win after player 0 concedes, got %d", obs.Winner)
	}
}

func TestApplyIllegalIndexIsRejected(t *testing.T) {
	g, _, mask := newTestGame(t)
	if mask.IsLegal(400) {
		t.Skip("index happens to be legal in this configuration")
	}
	if _, _, _, err := g.Apply(400); err == nil {
		t.Fatal("expected an error applying an illegal action index")
	}
}

func TestPlayLandMovesCardToBattlefield(t *testing.T) {
	g, obs, mask := newTestGame(t)
	if obs.Phase != types.Untap && obs.Phase != types.Main1 {
		t.Skip("opening phase ordering changed; land-drop test assumes an early main phase reachable by passing")
	}
	// Pass through Untap/Upkeep/Draw (draw is skipped turn 1) into Main1.
	var err error
	for i := 0; i < 10 && obs.Phase != types.Main1 && !obs.Terminated; i++ {
		obs, mask, _, err = g.Apply(11)
		if err != nil {
			t.Fatalf("Apply(PassPriority): %v", err)
		}
	}
	if obs.Phase != types.Main1 {
		t.Fatalf("expected to reach Main1, stuck at %v", obs.Phase)
	}
	landIdx := -1
	for i := rangePlayLandStartForTest; i < rangePlayLandStartForTest+7; i++ {
		if mask.IsLegal(i) {
			landIdx = i
			break
		}
	}
	if landIdx == -1 {
		t.Fatal("expected at least one legal PlayLand action in Main1 with a land in hand")
	}
	before := len(g.battlefield)
	obs, _, _, err = g.Apply(landIdx)
	if err != nil {
		t.Fatalf("Apply(PlayLand): %v", err)
	}
	if len(g.battlefield) != before+1 {
		t.Fatalf("expected battlefield to grow by one land, got %d -> %d", before, len(g.battlefield))
	}
	_ = obs
}

// rangePlayLandStartForTest mirrors pkg/action's PlayLand range start; kept
// local since the action package intentionally doesn't export its layout.
const rangePlayLandStartForTest = 13

func TestTurnStateAdvancesThroughAllPhases(t *testing.T) {
	ts := NewTurnState(2)
	seen := map[types.Phase]bool{ts.Phase(): true}
	turns := 1
	for i := 0; i < len(phaseOrder)-1; i++ {
		if ts.Advance() {
			turns++
		}
		seen[ts.Phase()] = true
	}
	for _, phase := range phaseOrder {
		if !seen[phase] {
			t.Fatalf("expected phase %v to be visited in one full turn", phase)
		}
	}
	if turns != 1 {
		t.Fatalf("expected exactly one turn to complete visiting every phase once, got %d", turns)
	}
	if !ts.Advance() {
		t.Fatal("expected advancing past Cleanup to start a new turn")
	}
	if ts.ActivePlayer != 1 {
		t.Fatalf("expected active player to rotate to 1, got %d", ts.ActivePlayer)
	}
}

func TestMoveCardToBattlefieldAttachesAbilitiesAndResetsOnLeave(t *testing.T) {
	g, _, _ := newTestGame(t)
	inst := g.arena.Create(bear(), 0)
	g.players[0].Hand = append(g.players[0].Hand, inst.ID)
	inst.Zone = types.Hand

	if err := g.MoveCard(inst.ID, types.Battlefield); err != nil {
		t.Fatalf("MoveCard to battlefield: %v", err)
	}
	if inst.Zone != types.Battlefield {
		t.Fatalf("expected zone Battlefield, got %v", inst.Zone)
	}
	if !inst.SummoningSick {
		t.Fatal("expected a freshly entered creature to be summoning sick")
	}

	if err := g.MoveCard(inst.ID, types.Graveyard); err != nil {
		t.Fatalf("MoveCard to graveyard: %v", err)
	}
	if inst.SummoningSick {
		t.Fatal("expected ResetTemporaryState to clear summoning sickness on leaving the battlefield")
	}
	found := false
	for _, id := range g.players[0].Graveyard {
		if id == inst.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the instance to land in its owner's graveyard")
	}
}

func TestCheckWinLossConditionsOnLifeLoss(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.players[0].Life = 0
	g.checkWinLossConditions()
	if !g.terminated {
		t.Fatal("expected the game to terminate once a player's life hits 0")
	}
	if g.winner != 1 {
		t.Fatalf("expected player 1 to win, got %d", g.winner)
	}
	if g.reason != types.Win {
		t.Fatalf("expected TerminationReason Win, got %v", g.reason)
	}
}
