package card

import (
	"regexp"
	"strconv"
	"strings"
)

// LoyaltyAbility is one of a planeswalker's +N/-N/0 loyalty abilities.
type LoyaltyAbility struct {
	Cost       int // signed; positive for +N, negative for -N, 0 for static
	Effect     string
	IsUltimate bool
}

var loyaltyAbilityPattern = regexp.MustCompile(`(?m)^([+\-]?\d+):\s*(.+)$`)

// ParsePlaneswalkerAbilities extracts loyalty abilities matching the
// standard "+N: effect" / "-N: effect" / "0: effect" line format. The
// largest-magnitude negative ability on the card is flagged as the ultimate.
func ParsePlaneswalkerAbilities(text string) []LoyaltyAbility {
	var abilities []LoyaltyAbility
	for _, line := range strings.Split(text, "\n") {
		m := loyaltyAbilityPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		cost, err := strconv.Atoi(strings.TrimPrefix(m[1], "+"))
		if err != nil {
			continue
		}
		abilities = append(abilities, LoyaltyAbility{Cost: cost, Effect: strings.TrimSpace(m[2])})
	}

	mostNegative := 0
	ultimateIdx := -1
	for i, a := range abilities {
		if a.Cost < mostNegative {
			mostNegative = a.Cost
			ultimateIdx = i
		}
	}
	if ultimateIdx >= 0 {
		abilities[ultimateIdx].IsUltimate = true
	}
	return abilities
}

// SpreeMode is one selectable mode of a Spree spell, each with its own
// additional cost.
type SpreeMode struct {
	Cost           string
	Effect         string
	CostKind       string // "generic", "colored", "other"
	CostValue      int
	EffectDetails  string
}

var spreeModePattern = regexp.MustCompile(`(?m)^\+\s*(\{[^}]+\}(?:\{[^}]+\})*)\s*[—-]\s*(.+)$`)

// ParseSpreeModes extracts the "+ {cost} — effect" mode lines of a Spree card.
func ParseSpreeModes(text string) []SpreeMode {
	var modes []SpreeMode
	for _, line := range strings.Split(text, "\n") {
		m := spreeModePattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		cost := m[1]
		kind, value := classifySpreeCost(cost)
		modes = append(modes, SpreeMode{
			Cost: cost, Effect: strings.TrimSpace(m[2]),
			CostKind: kind, CostValue: value, EffectDetails: strings.TrimSpace(m[2]),
		})
	}
	return modes
}

func classifySpreeCost(cost string) (kind string, value int) {
	generic := regexp.MustCompile(`\{(\d+)\}`)
	if m := generic.FindStringSubmatch(cost); m != nil {
		v, _ := strconv.Atoi(m[1])
		return "generic", v
	}
	if strings.Contains(cost, "{") {
		return "colored", strings.Count(cost, "{")
	}
	return "other", 0
}

// ClassLevel is one level of a Class enchantment: an unlock cost, the
// abilities gained at that level, and any P/T or type overrides.
type ClassLevel struct {
	Level     int
	Cost      string
	Abilities []string
	Power     *int
	Toughness *int
	TypeMods  []string
}

var classLevelHeader = regexp.MustCompile(`(?m)^Level (\d+)(?:-(\d+))?:\s*(\{[^}]+\})?`)

// ParseClassLevels splits a Class card's oracle text into its ordered
// levels, sorted ascending by level number.
func ParseClassLevels(text string) []ClassLevel {
	lines := strings.Split(text, "\n")
	var levels []ClassLevel
	current := ClassLevel{Level: 1}
	started := false

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := classLevelHeader.FindStringSubmatch(line); m != nil {
			if started {
				levels = append(levels, current)
			}
			started = true
			lvl, _ := strconv.Atoi(m[1])
			current = ClassLevel{Level: lvl, Cost: m[3]}
			continue
		}
		if !started {
			// Level 1 abilities precede any "Level N:" header.
			current.Abilities = append(current.Abilities, line)
			started = true
			continue
		}
		current.Abilities = append(current.Abilities, line)
	}
	if started {
		levels = append(levels, current)
	}

	sortClassLevels(levels)
	return levels
}

func sortClassLevels(levels []ClassLevel) {
	for i := 1; i < len(levels); i++ {
		for j := i; j > 0 && levels[j-1].Level > levels[j].Level; j-- {
			levels[j-1], levels[j] = levels[j], levels[j-1]
		}
	}
}

// RoomDoor is one door of a Room card, each with its own unlock cost and effects.
type RoomDoor struct {
	Name             string
	OracleText       string
	Triggers         []string
	Effects          []string
	UnlockConditions string
}

// ParseRoomDoors splits a Room card's oracle text on its "Door N — Cost"
// section headers.
func ParseRoomDoors(text string) []RoomDoor {
	doorHeader := regexp.MustCompile(`(?m)^Door \d+\s*[—-]\s*(\{[^}]*\}[^\n]*)`)
	indices := doorHeader.FindAllStringSubmatchIndex(text, -1)
	if len(indices) == 0 {
		return nil
	}

	var doors []RoomDoor
	for i, loc := range indices {
		start := loc[0]
		end := len(text)
		if i+1 < len(indices) {
			end = indices[i+1][0]
		}
		section := strings.TrimSpace(text[start:end])
		headerEnd := strings.Index(section, "\n")
		header := section
		body := ""
		if headerEnd >= 0 {
			header = section[:headerEnd]
			body = strings.TrimSpace(section[headerEnd+1:])
		}
		door := RoomDoor{
			Name:             header,
			OracleText:       body,
			UnlockConditions: extractCostFromHeader(header),
		}
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(strings.ToLower(line), "when") {
				door.Triggers = append(door.Triggers, line)
			} else if line != "" {
				door.Effects = append(door.Effects, line)
			}
		}
		doors = append(doors, door)
	}
	return doors
}

func extractCostFromHeader(header string) string {
	re := regexp.MustCompile(`\{[^}]*\}(\{[^}]*\})*`)
	return re.FindString(header)
}

// AdventureSide is the instant/sorcery half of an Adventure creature card.
type AdventureSide struct {
	Name   string
	Cost   string
	Type   string
	Effect string
}

var adventurePattern = regexp.MustCompile(`(?s)^([A-Za-z',\s]+)\s+(\{[^}]+\}(?:\{[^}]+\})*)\s*\n?\s*(Instant|Sorcery)(?: — \w+)?\s*\n(.+)$`)

// ParseAdventure extracts the adventure-side name/cost/type/effect from the
// adventure block of oracle text, or returns nil if none is present.
func ParseAdventure(text string) *AdventureSide {
	m := adventurePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil
	}
	return &AdventureSide{
		Name:   strings.TrimSpace(m[1]),
		Cost:   m[2],
		Type:   m[3],
		Effect: strings.TrimSpace(m[4]),
	}
}
