// Package deck loads, validates, and shuffles a player's deck list.
package deck

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/mtgforge/rulesengine/internal/logger"
	"github.com/mtgforge/rulesengine/pkg/card"
)

// CardProvider resolves a card name to its database definition; satisfied
// by *card.DB.
type CardProvider interface {
	GetByName(name string) (*card.Card, bool)
}

// Deck is an ordered list of card definitions plus a name; card instances
// are only created when a deck's cards enter the library zone, so Deck
// itself never holds instance state (owner, tapped, counters, ...).
type Deck struct {
	Name string
	Main []*card.Card
	Side []*card.Card
}

// Size returns the number of cards in the main deck.
func (d *Deck) Size() int { return len(d.Main) }

var basicLandNames = map[string]bool{
	"Plains": true, "Island": true, "Swamp": true, "Mountain": true, "Forest": true,
	"Wastes": true, "Snow-Covered Plains": true, "Snow-Covered Island": true,
	"Snow-Covered Swamp": true, "Snow-Covered Mountain": true, "Snow-Covered Forest": true,
}

// Validate checks the two deckbuilding constraints spec.md requires: a
// minimum of 60 cards in the main deck, and no more than 4 copies of any
// card other than basic lands (which have no maximum).
func (d *Deck) Validate() error {
	if len(d.Main) < 60 {
		return fmt.Errorf("%w: deck has %d cards, minimum is 60", ErrDeckTooSmall, len(d.Main))
	}
	counts := make(map[string]int)
	for _, c := range d.Main {
		counts[c.Name]++
	}
	for name, n := range counts {
		if basicLandNames[name] {
			continue
		}
		if n > 4 {
			return fmt.Errorf("%w: %q appears %d times, maximum is 4", ErrTooManyCopies, name, n)
		}
	}
	return nil
}

// Shuffle randomizes d.Main in place using the caller-supplied RNG —
// deck shuffling never seeds its own source; the single game-wide RNG
// lives on the arena that owns this deck (spec's shared-RNG requirement).
func (d *Deck) Shuffle(r *rand.Rand) {
	r.Shuffle(len(d.Main), func(i, j int) {
		d.Main[i], d.Main[j] = d.Main[j], d.Main[i]
	})
}

// DrawTop removes and returns the top n cards of the main deck (fewer if
// the deck has fewer than n cards remaining).
func (d *Deck) DrawTop(n int) []*card.Card {
	if n > len(d.Main) {
		n = len(d.Main)
	}
	drawn := d.Main[:n]
	d.Main = d.Main[n:]
	return drawn
}

// ImportDecklist parses a MTGO/Arena-style decklist file: lines of
// "<count> <name>" or "<count>x <name>", an optional "Sideboard" section
// header, and "//"-prefixed comments. Unresolvable card names are logged
// and skipped rather than failing the whole import.
func ImportDecklist(filename string, db CardProvider) (*Deck, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.LogDeck("error closing decklist file: %v", err)
		}
	}()

	d := &Deck{Name: filename}
	inSideboard := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.EqualFold(line, "Sideboard") {
			inSideboard = true
			continue
		}

		count, name := parseDecklistLine(line)
		if name == "" {
			continue
		}
		def, ok := db.GetByName(name)
		if !ok {
			logger.LogDeck("card not found in database: %s", name)
			continue
		}
		for i := 0; i < count; i++ {
			if inSideboard {
				d.Side = append(d.Side, def)
			} else {
				d.Main = append(d.Main, def)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

func parseDecklistLine(line string) (int, string) {
	if strings.Contains(line, "x ") {
		parts := strings.SplitN(line, "x ", 2)
		if len(parts) == 2 {
			if n, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
				return n, trimSetCode(strings.TrimSpace(parts[1]))
			}
		}
	}
	parts := strings.SplitN(line, " ", 2)
	if len(parts) == 2 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			return n, trimSetCode(strings.TrimSpace(parts[1]))
		}
	}
	return 1, trimSetCode(line)
}

func trimSetCode(name string) string {
	if idx := strings.Index(name, " ("); idx != -1 {
		return name[:idx]
	}
	return name
}

// structuredDeckFile mirrors the {"name": ..., "cards": [{"name":..., "count":...}]}
// format used by the harness's saved decks, distinct from the MTGO text format.
type structuredDeckFile struct {
	Name  string `json:"name"`
	Cards []struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	} `json:"cards"`
	Sideboard []struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	} `json:"sideboard"`
}

// ImportStructuredDeck loads a JSON-format deck list, the format produced
// by this engine's own deck-export tooling.
func ImportStructuredDeck(filename string, db CardProvider) (*Deck, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var parsed structuredDeckFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("deck: invalid structured deck file: %w", err)
	}

	d := &Deck{Name: parsed.Name}
	for _, entry := range parsed.Cards {
		def, ok := db.GetByName(entry.Name)
		if !ok {
			logger.LogDeck("card not found in database: %s", entry.Name)
			continue
		}
		for i := 0; i < entry.Count; i++ {
			d.Main = append(d.Main, def)
		}
	}
	for _, entry := range parsed.Sideboard {
		def, ok := db.GetByName(entry.Name)
		if !ok {
			continue
		}
		for i := 0; i < entry.Count; i++ {
			d.Side = append(d.Side, def)
		}
	}
	return d, nil
}
