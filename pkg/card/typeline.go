package card

import "strings"

var knownSupertypes = map[string]bool{
	"Basic": true, "Legendary": true, "Ongoing": true, "Snow": true, "World": true, "Host": true,
}

var knownCardTypes = map[string]bool{
	"Artifact": true, "Battle": true, "Conspiracy": true, "Creature": true, "Dungeon": true,
	"Enchantment": true, "Instant": true, "Kindred": true, "Tribal": true, "Land": true,
	"Phenomenon": true, "Plane": true, "Planeswalker": true, "Scheme": true, "Sorcery": true, "Vanguard": true,
}

// ParseTypeLine splits a type line on the em dash (or double hyphen, for
// sources that don't emit the unicode character) and classifies each
// pre-dash token into supertypes/card types, with unknown tokens defaulting
// to card types, and post-dash tokens as subtypes.
func ParseTypeLine(text string) (cardTypes, subtypes, supertypes []string) {
	text = strings.TrimSpace(text)
	sep := "—"
	if !strings.Contains(text, sep) {
		sep = "--"
	}

	parts := strings.SplitN(text, sep, 2)
	left := strings.Fields(parts[0])
	for _, tok := range left {
		switch {
		case knownSupertypes[tok]:
			supertypes = append(supertypes, tok)
		case knownCardTypes[tok]:
			cardTypes = append(cardTypes, tok)
		default:
			// Unknown token: tolerate by classifying as a card type, per
			// the heuristic-parser fallback policy.
			cardTypes = append(cardTypes, tok)
		}
	}

	if len(parts) == 2 {
		subtypes = strings.Fields(parts[1])
	}
	return cardTypes, subtypes, supertypes
}

// RecomputeTypeLine rebuilds a canonical type line string from classified
// tokens, used by the layer system after layer 4 type changes.
func RecomputeTypeLine(cardTypes, subtypes, supertypes []string) string {
	left := append(append([]string{}, supertypes...), cardTypes...)
	line := strings.Join(left, " ")
	if len(subtypes) > 0 {
		line += " — " + strings.Join(subtypes, " ")
	}
	return line
}
