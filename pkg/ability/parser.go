package ability

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/internal/logger"
	"github.com/mtgforge/rulesengine/pkg/card"
	"github.com/mtgforge/rulesengine/pkg/types"
)

// Parser extracts structured Ability values from oracle text using a table
// of regexes, one per recognized ability shape. A clause that matches no
// pattern produces no Ability and no error (clauses containing ":" are
// logged via logger.LogCard); no RawNoOp placeholder is emitted for it.
type Parser struct {
	patterns []*pattern
}

type pattern struct {
	regex  *regexp.Regexp
	kind   Kind
	effect EffectKind
	build  func(matches []string) Ability
}

// NewParser builds a parser with the full predefined pattern table.
func NewParser() *Parser {
	p := &Parser{}
	p.init()
	return p
}

func (p *Parser) add(kind Kind, expr string, effect EffectKind, build func([]string) Ability) {
	p.patterns = append(p.patterns, &pattern{
		regex:  regexp.MustCompile(`(?i)` + expr),
		kind:   kind,
		effect: effect,
		build:  build,
	})
}

func (p *Parser) init() {
	p.add(ManaAbility, `\{T\}:\s*Add\s*\{([WUBRGC])\}`, AddMana, func(m []string) Ability {
		return Ability{Cost: Cost{TapCost: true}, Effects: []Effect{{Kind: AddMana, Value: 1, ManaType: manaLetterToType(m[1])}}}
	})
	p.add(ManaAbility, `\{T\}:\s*Add\s+one\s+mana\s+of\s+any\s+color`, AddMana, func(m []string) Ability {
		return Ability{Cost: Cost{TapCost: true}, Effects: []Effect{{Kind: AddMana, Value: 1, ManaType: types.Any}}}
	})
	p.add(Triggered, `When\s+.*\s+enters\s+the\s+battlefield,\s+draw\s+(\d+)\s+cards?`, DrawCards, func(m []string) Ability {
		n, _ := strconv.Atoi(m[1])
		return Ability{TriggerCondition: EntersTheBattlefield, Effects: []Effect{{Kind: DrawCards, Value: n}}}
	})
	p.add(Triggered, `When\s+.*\s+enters\s+the\s+battlefield,\s+draw\s+a\s+card`, DrawCards, func(m []string) Ability {
		return Ability{TriggerCondition: EntersTheBattlefield, Effects: []Effect{{Kind: DrawCards, Value: 1}}}
	})
	p.add(Triggered, `When\s+.*\s+enters\s+the\s+battlefield,\s+.*\s+deals\s+(\d+)\s+damage\s+to\s+(.+)`, DealDamage, func(m []string) Ability {
		n, _ := strconv.Atoi(m[1])
		return Ability{TriggerCondition: EntersTheBattlefield, Effects: []Effect{{Kind: DealDamage, Value: n, Targets: targetsFor(m[2])}}}
	})
	p.add(Triggered, `When\s+.*\s+enters\s+the\s+battlefield,\s+you\s+gain\s+(\d+)\s+life`, GainLife, func(m []string) Ability {
		n, _ := strconv.Atoi(m[1])
		return Ability{TriggerCondition: EntersTheBattlefield, Effects: []Effect{{Kind: GainLife, Value: n}}}
	})
	p.add(Triggered, `When\s+.*\s+dies,\s+draw\s+(\d+)\s+cards?`, DrawCards, func(m []string) Ability {
		n, _ := strconv.Atoi(m[1])
		return Ability{TriggerCondition: Dies, Effects: []Effect{{Kind: DrawCards, Value: n}}}
	})
	p.add(Triggered, `When\s+.*\s+dies,\s+.*\s+deals\s+(\d+)\s+damage\s+to\s+(.+)`, DealDamage, func(m []string) Ability {
		n, _ := strconv.Atoi(m[1])
		return Ability{TriggerCondition: Dies, Effects: []Effect{{Kind: DealDamage, Value: n, Targets: targetsFor(m[2])}}}
	})
	p.add(Triggered, `Whenever\s+.*\s+deals\s+combat\s+damage\s+to\s+a\s+player,\s+draw\s+a\s+card`, DrawCards, func(m []string) Ability {
		return Ability{TriggerCondition: DealsCombatDamage, Effects: []Effect{{Kind: DrawCards, Value: 1}}}
	})
	p.add(Activated, `\{(\d+)\},?\s*\{T\}:\s*Draw\s+(\d+)\s+cards?`, DrawCards, func(m []string) Ability {
		generic, _ := strconv.Atoi(m[1])
		n, _ := strconv.Atoi(m[2])
		return Ability{Cost: Cost{TapCost: true, Mana: card.ManaCost{Generic: generic}}, Effects: []Effect{{Kind: DrawCards, Value: n}}}
	})
	p.add(Activated, `\{(\d+)\},?\s*\{T\}:\s*.*\s+deals\s+(\d+)\s+damage\s+to\s+(.+)`, DealDamage, func(m []string) Ability {
		generic, _ := strconv.Atoi(m[1])
		n, _ := strconv.Atoi(m[2])
		return Ability{Cost: Cost{TapCost: true, Mana: card.ManaCost{Generic: generic}}, Effects: []Effect{{Kind: DealDamage, Value: n, Targets: targetsFor(m[3])}}}
	})
	p.add(Activated, `\{T\}:\s*.*\s+deals\s+(\d+)\s+damage\s+to\s+(.+)`, DealDamage, func(m []string) Ability {
		n, _ := strconv.Atoi(m[1])
		return Ability{Cost: Cost{TapCost: true}, Effects: []Effect{{Kind: DealDamage, Value: n, Targets: targetsFor(m[2])}}}
	})
	p.add(Activated, `\{T\}:\s*You\s+gain\s+(\d+)\s+life`, GainLife, func(m []string) Ability {
		n, _ := strconv.Atoi(m[1])
		return Ability{Cost: Cost{TapCost: true}, Effects: []Effect{{Kind: GainLife, Value: n}}}
	})
	p.add(Activated, `\{T\}:\s*Target\s+creature\s+gets\s+\+(\d+)/\+(\d+)\s+until\s+end\s+of\s+turn`, PumpCreature, func(m []string) Ability {
		power, _ := strconv.Atoi(m[1])
		toughness, _ := strconv.Atoi(m[2])
		return Ability{Cost: Cost{TapCost: true}, Effects: []Effect{{Kind: PumpCreature, Value: power*100 + toughness, Duration: UntilEndOfTurn, Targets: []TargetSpec{{Kind: CreatureTarget, Required: true}}}}}
	})
	p.add(Static, `Other\s+creatures\s+you\s+control\s+get\s+\+(\d+)/\+(\d+)`, PumpCreature, func(m []string) Ability {
		power, _ := strconv.Atoi(m[1])
		toughness, _ := strconv.Atoi(m[2])
		return Ability{Effects: []Effect{{Kind: PumpCreature, Value: power*100 + toughness, Duration: EffectPermanent, Description: "others"}}}
	})
	p.add(Static, `Creatures\s+you\s+control\s+get\s+\+(\d+)/\+(\d+)`, PumpCreature, func(m []string) Ability {
		power, _ := strconv.Atoi(m[1])
		toughness, _ := strconv.Atoi(m[2])
		return Ability{Effects: []Effect{{Kind: PumpCreature, Value: power*100 + toughness, Duration: EffectPermanent}}}
	})
	p.add(Activated, `\{X\}.*:\s*Draw\s+X\s+cards?`, DrawCards, func(m []string) Ability {
		return Ability{Cost: Cost{Mana: card.ManaCost{HasX: true}}, Effects: []Effect{{Kind: DrawCards, Value: -1}}}
	})
	p.add(Activated, `\{X\}.*:\s*.*\s+deals\s+X\s+damage\s+to\s+(.+)`, DealDamage, func(m []string) Ability {
		return Ability{Cost: Cost{Mana: card.ManaCost{HasX: true}}, Effects: []Effect{{Kind: DealDamage, Value: -1, Targets: targetsFor(m[1])}}}
	})
	p.add(Activated, `\{(\d+)\},\s*Sacrifice\s+.*:\s*.*\s+deals\s+(\d+)\s+damage\s+to\s+(.+)`, DealDamage, func(m []string) Ability {
		generic, _ := strconv.Atoi(m[1])
		n, _ := strconv.Atoi(m[2])
		return Ability{Cost: Cost{SacrificeCost: true, Mana: card.ManaCost{Generic: generic}}, Effects: []Effect{{Kind: DealDamage, Value: n, Targets: targetsFor(m[3])}}}
	})
	p.add(Activated, `\{T\}:\s*Untap\s+target\s+permanent`, UntapPermanent, func(m []string) Ability {
		return Ability{Cost: Cost{TapCost: true}, Effects: []Effect{{Kind: UntapPermanent, Targets: []TargetSpec{{Kind: PermanentTarget, Required: true}}}}}
	})
}

func manaLetterToType(letter string) types.ManaType {
	switch strings.ToUpper(letter) {
	case "W":
		return types.White
	case "U":
		return types.Blue
	case "B":
		return types.Black
	case "R":
		return types.Red
	case "G":
		return types.Green
	default:
		return types.Colorless
	}
}

func targetsFor(phrase string) []TargetSpec {
	phrase = strings.ToLower(phrase)
	switch {
	case strings.Contains(phrase, "each opponent"), strings.Contains(phrase, "target player"):
		return []TargetSpec{{Kind: PlayerTarget, Required: true}}
	case strings.Contains(phrase, "target creature"):
		return []TargetSpec{{Kind: CreatureTarget, Required: true}}
	case strings.Contains(phrase, "target player or planeswalker"), strings.Contains(phrase, "any target"):
		return []TargetSpec{{Kind: AnyTarget, Required: true}}
	default:
		return []TargetSpec{{Kind: AnyTarget, Required: true}}
	}
}

var defaultParser = NewParser()

// ParseAbilities parses oracleText using the package's default pattern
// table. Source is the card instance the abilities are bound to.
func ParseAbilities(oracleText string, source uuid.UUID) []Ability {
	return defaultParser.ParseAbilities(oracleText, source)
}

// ParseAbilities splits oracleText into clauses and runs the pattern table
// over each, returning every Ability it could recognize. Source is the
// card instance the abilities are bound to.
func (p *Parser) ParseAbilities(oracleText string, source uuid.UUID) []Ability {
	var out []Ability
	for _, clause := range splitClauses(oracleText) {
		matched := false
		for _, pat := range p.patterns {
			m := pat.regex.FindStringSubmatch(clause)
			if m == nil {
				continue
			}
			a := pat.build(m)
			a.ID = uuid.New()
			a.Kind = pat.kind
			a.Source = source
			a.OracleText = clause
			a.ParsedFromText = true
			out = append(out, a)
			matched = true
			break
		}
		if !matched && strings.Contains(clause, ":") {
			logger.LogCard("no ability pattern matched activated/triggered clause: %q", clause)
		}
	}
	return out
}

func splitClauses(text string) []string {
	raw := strings.Split(text, ".")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if t := strings.TrimSpace(r); t != "" {
			out = append(out, t)
		}
	}
	return out
}
