package card

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mtgforge/rulesengine/internal/logger"
)

// rawRecord mirrors the external card-database format of spec.md §6: an
// integer ID keying a record whose power, toughness and loyalty arrive as
// strings (Scryfall-style "*", "1+*" power/toughness); cmc is a number.
type rawRecord struct {
	Name          string   `json:"name"`
	ManaCost      string   `json:"mana_cost"`
	TypeLine      string   `json:"type_line"`
	OracleText    string   `json:"oracle_text"`
	CMC           float64  `json:"cmc"`
	Power         string   `json:"power"`
	Toughness     string   `json:"toughness"`
	Loyalty       string   `json:"loyalty"`
	Colors        []string `json:"colors"`
	ColorIdentity []string `json:"color_identity"`
	Faces         []rawFace `json:"card_faces"`
}

type rawFace struct {
	Name       string   `json:"name"`
	ManaCost   string   `json:"mana_cost"`
	TypeLine   string   `json:"type_line"`
	OracleText string   `json:"oracle_text"`
	Power      string   `json:"power"`
	Toughness  string   `json:"toughness"`
	Loyalty    string   `json:"loyalty"`
	Colors     []string `json:"colors"`
}

// DB is a database of card definitions keyed by their stable integer ID.
type DB struct {
	cards  map[int]*Card
	byName map[string]*Card
}

// NewDB builds a DB from an already-loaded slice of cards.
func NewDB(cards []*Card) *DB {
	db := &DB{cards: make(map[int]*Card, len(cards)), byName: make(map[string]*Card, len(cards))}
	for _, c := range cards {
		db.cards[c.ID] = c
		db.byName[c.Name] = c
	}
	return db
}

// Get retrieves a card definition by its database ID.
func (db *DB) Get(id int) (*Card, bool) {
	c, ok := db.cards[id]
	return c, ok
}

// GetByName retrieves a card definition by its exact name, satisfying
// pkg/deck.CardProvider.
func (db *DB) GetByName(name string) (*Card, bool) {
	c, ok := db.byName[name]
	return c, ok
}

// Size returns the number of cards in the database.
func (db *DB) Size() int { return len(db.cards) }

// LoadDatabase loads the card database from a local JSON file, downloading
// it from url and caching it to path if the file is not present. The JSON
// shape is a map from string-encoded integer ID to rawRecord.
func LoadDatabase(path, url string) (*DB, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.LogMeta("Local card database not found at %s, downloading...", path)
		raw, err = downloadJSON(url)
		if err != nil {
			return nil, fmt.Errorf("card: download database: %w", err)
		}
		if werr := os.WriteFile(path, raw, 0644); werr != nil {
			logger.LogGame("card: failed to cache database to %s: %v", path, werr)
		}
	}

	var records map[string]rawRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("card: parse database: %w", err)
	}

	cards := make([]*Card, 0, len(records))
	for idStr, rec := range records {
		id := 0
		fmt.Sscanf(idStr, "%d", &id)
		cards = append(cards, buildCard(id, rec))
	}

	logger.LogMeta("Loaded %d cards from database", len(cards))
	return NewDB(cards), nil
}

func buildCard(id int, rec rawRecord) *Card {
	c := &Card{
		ID: id, Name: rec.Name, ManaCost: rec.ManaCost, TypeLine: rec.TypeLine,
		OracleText: rec.OracleText, Power: rec.Power, Toughness: rec.Toughness,
		Loyalty: rec.Loyalty, CMC: rec.CMC, Colors: rec.Colors,
	}
	if mc, err := ParseManaCostString(rec.ManaCost); err == nil && c.CMC == 0 {
		c.CMC = CMCOf(mc)
	}
	c.CardTypes, c.Subtypes, c.Supertypes = ParseTypeLine(rec.TypeLine)
	c.Keywords, c.KeywordArgs = ExtractKeywords(rec.OracleText)
	c.PlaneswalkerAbilities = ParsePlaneswalkerAbilities(rec.OracleText)
	c.SpreeModes = ParseSpreeModes(rec.OracleText)
	c.ClassLevels = ParseClassLevels(rec.OracleText)
	c.RoomDoors = ParseRoomDoors(rec.OracleText)
	c.Adventure = ParseAdventure(rec.OracleText)

	for _, f := range rec.Faces {
		c.Faces = append(c.Faces, Face{
			Name: f.Name, ManaCost: f.ManaCost, TypeLine: f.TypeLine,
			OracleText: f.OracleText, Power: f.Power, Toughness: f.Toughness,
			Loyalty: f.Loyalty, Colors: f.Colors,
		})
	}
	return c
}

func downloadJSON(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.LogMeta("card: error closing response body: %v", cerr)
		}
	}()
	return io.ReadAll(resp.Body)
}
