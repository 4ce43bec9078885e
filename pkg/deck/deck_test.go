package deck

import (
	"errors"
	"math/rand"
	"os"
	"testing"

	"github.com/mtgforge/rulesengine/pkg/card"
)

type fakeDB struct {
	byName map[string]*card.Card
}

func (f fakeDB) GetByName(name string) (*card.Card, bool) {
	c, ok := f.byName[name]
	return c, ok
}

func deckOf(names ...string) *Deck {
	d := &Deck{Name: "test"}
	for _, n := range names {
		d.Main = append(d.Main, &card.Card{Name: n})
	}
	return d
}

func repeat(name string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = name
	}
	return out
}

func TestValidateRejectsUndersizedDeck(t *testing.T) {
	d := deckOf(repeat("Forest", 40)...)
	if err := d.Validate(); !errors.Is(err, ErrDeckTooSmall) {
		t.Fatalf("expected ErrDeckTooSmall, got %v", err)
	}
}

func TestValidateRejectsTooManyCopies(t *testing.T) {
	names := append(repeat("Lightning Bolt", 5), repeat("Forest", 55)...)
	d := deckOf(names...)
	if err := d.Validate(); !errors.Is(err, ErrTooManyCopies) {
		t.Fatalf("expected ErrTooManyCopies, got %v", err)
	}
}

func TestValidateAllowsUnlimitedBasicLands(t *testing.T) {
	names := append(repeat("Forest", 40), repeat("Llanowar Elves", 4)...)
	for _, n := range []string{"Grizzly Bears", "Giant Spider", "Hill Giant", "Wind Drake"} {
		names = append(names, repeat(n, 4)...)
	}
	d := deckOf(names...)
	if err := d.Validate(); err != nil {
		t.Fatalf("expected valid deck with many basic lands, got %v", err)
	}
}

func TestShuffleIsDeterministicWithSeededRand(t *testing.T) {
	names := repeat("Forest", 10)
	for i := range names {
		names[i] = names[i] + string(rune('A'+i))
	}
	d1 := deckOf(names...)
	d2 := deckOf(names...)

	d1.Shuffle(rand.New(rand.NewSource(42)))
	d2.Shuffle(rand.New(rand.NewSource(42)))

	for i := range d1.Main {
		if d1.Main[i].Name != d2.Main[i].Name {
			t.Fatalf("expected identical shuffles from identical seeds at index %d", i)
		}
	}
}

func TestDrawTopRemovesFromDeck(t *testing.T) {
	d := deckOf("A", "B", "C")
	drawn := d.DrawTop(2)
	if len(drawn) != 2 || drawn[0].Name != "A" || drawn[1].Name != "B" {
		t.Fatalf("expected to draw A, B in order, got %+v", drawn)
	}
	if d.Size() != 1 {
		t.Fatalf("expected 1 card remaining, got %d", d.Size())
	}
}

func TestDrawTopCapsAtDeckSize(t *testing.T) {
	d := deckOf("A")
	drawn := d.DrawTop(5)
	if len(drawn) != 1 {
		t.Fatalf("expected to draw only 1 available card, got %d", len(drawn))
	}
}

func TestParseDecklistLineFormats(t *testing.T) {
	cases := []struct {
		line  string
		count int
		name  string
	}{
		{"4x Elvish Mystic (CMM) 284", 4, "Elvish Mystic"},
		{"4 Elvish Mystic", 4, "Elvish Mystic"},
		{"Sol Ring", 1, "Sol Ring"},
	}
	for _, c := range cases {
		count, name := parseDecklistLine(c.line)
		if count != c.count || name != c.name {
			t.Fatalf("parseDecklistLine(%q) = (%d, %q), want (%d, %q)", c.line, count, name, c.count, c.name)
		}
	}
}

func TestImportStructuredDeckSkipsUnknownCards(t *testing.T) {
	db := fakeDB{byName: map[string]*card.Card{"Forest": {Name: "Forest"}}}
	dir := t.TempDir()
	path := dir + "/deck.json"
	contents := `{"name":"mono green","cards":[{"name":"Forest","count":2},{"name":"Unknown Card","count":1}]}`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	d, err := ImportStructuredDeck(path, db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Main) != 2 {
		t.Fatalf("expected 2 resolved Forest cards (unknown card skipped), got %d", len(d.Main))
	}
}
