package card

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mtgforge/rulesengine/pkg/types"
)

// ManaCost is the parsed vector form of a cost string such as "{2}{W}{W}".
// Colored/colorless/generic amounts are counts; the flags record whether
// the cost has an X, hybrid, Phyrexian, or snow component (hybrid and
// Phyrexian component symbols are additionally recorded in Hybrid/
// Phyrexian so payment can resolve them).
type ManaCost struct {
	Colored   map[types.ManaType]int
	Generic   int
	Hybrid    []HybridSymbol
	Phyrexian []types.ManaType
	HasX      bool
	XCount    int // number of distinct {X} symbols in the cost
	Snow      bool
}

// HybridSymbol is one hybrid mana symbol, e.g. {W/U} or {2/B}.
type HybridSymbol struct {
	OptionA types.ManaType
	OptionB types.ManaType // types.Any encodes a {2/X} generic-or-color hybrid
}

var manaSymbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ParseManaCostString parses a cost string into the full ManaCost vector.
// Returns ErrInvalidCostString for tokens it cannot classify.
func ParseManaCostString(cost string) (ManaCost, error) {
	mc := ManaCost{Colored: make(map[types.ManaType]int)}
	for _, m := range manaSymbolPattern.FindAllStringSubmatch(cost, -1) {
		token := m[1]
		switch {
		case token == "X":
			mc.HasX = true
			mc.XCount++
		case token == "S":
			mc.Snow = true
			mc.Colored[types.Snow]++
		case isColorLetter(token):
			mc.Colored[types.ManaType(token)]++
		case strings.Contains(token, "/P"):
			color := strings.SplitN(token, "/", 2)[0]
			mc.Phyrexian = append(mc.Phyrexian, types.ManaType(color))
		case strings.Contains(token, "/"):
			parts := strings.SplitN(token, "/", 2)
			a, b := toManaTypeOrGeneric(parts[0]), toManaTypeOrGeneric(parts[1])
			if a == types.Any {
				a, b = b, a
			}
			mc.Hybrid = append(mc.Hybrid, HybridSymbol{OptionA: a, OptionB: b})
		default:
			if n, err := strconv.Atoi(token); err == nil {
				mc.Generic += n
				continue
			}
			return mc, ErrInvalidCostString
		}
	}
	return mc, nil
}

func isColorLetter(token string) bool {
	switch types.ManaType(token) {
	case types.White, types.Blue, types.Black, types.Red, types.Green, types.Colorless:
		return true
	}
	return false
}

func toManaTypeOrGeneric(token string) types.ManaType {
	if isColorLetter(token) {
		return types.ManaType(token)
	}
	return types.Any
}

// CMCOf computes the converted mana cost (mana value) of a parsed cost: the
// sum of generic, colored symbol counts, hybrid and Phyrexian symbols (each
// worth 1), with X valued at 0 while on the stack/in hand.
func CMCOf(mc ManaCost) float64 {
	total := mc.Generic
	for _, n := range mc.Colored {
		total += n
	}
	total += len(mc.Hybrid)
	total += len(mc.Phyrexian)
	return float64(total)
}

// Pool is a player's floating mana pool: WUBRG, colorless, and conditional
// entries (mana restricted to a specific use, tracked by tag).
type Pool struct {
	amounts     map[types.ManaType]int
	conditional map[string]int
}

// NewPool creates an empty mana pool.
func NewPool() *Pool {
	return &Pool{amounts: make(map[types.ManaType]int), conditional: make(map[string]int)}
}

// Add adds floating mana of a given type.
func (p *Pool) Add(mt types.ManaType, amount int) {
	p.amounts[mt] += amount
}

// AddConditional adds mana restricted to a tagged use (e.g. "spend only on creatures").
func (p *Pool) AddConditional(tag string, amount int) {
	p.conditional[tag] += amount
}

// Get returns the floating amount of a given mana type.
func (p *Pool) Get(mt types.ManaType) int {
	return p.amounts[mt]
}

// Total returns the sum of all floating mana, unconditional and conditional.
func (p *Pool) Total() int {
	total := 0
	for _, n := range p.amounts {
		total += n
	}
	for _, n := range p.conditional {
		total += n
	}
	return total
}

// Empty clears the pool. Mana pools empty at the end of every phase and step.
func (p *Pool) Empty() {
	p.amounts = make(map[types.ManaType]int)
	p.conditional = make(map[string]int)
}

// Pay deducts a previously computed PaymentPlan's pool contributions. It
// does not validate sufficiency; callers should have derived plan from
// this same pool via BuildPaymentPlan first.
func (p *Pool) Pay(plan PaymentPlan) {
	for mt, n := range plan.FromPool {
		p.amounts[mt] -= n
		if p.amounts[mt] <= 0 {
			delete(p.amounts, mt)
		}
	}
}

// PaymentPlan is a canonical assignment of pool mana (and/or life, for
// Phyrexian symbols) to a cost's requirements.
type PaymentPlan struct {
	FromPool map[types.ManaType]int
	LifePaid int
}

// CanAfford reports whether the pool (plus life for Phyrexian symbols) can
// pay the given cost, without mutating the pool.
func CanAfford(pool *Pool, cost ManaCost, life int) bool {
	_, err := BuildPaymentPlan(pool, cost, life)
	return err == nil
}

// BuildPaymentPlan computes a canonical payment: colored symbols are paid
// first from matching pool mana, then hybrid symbols resolve toward
// whichever option has more mana remaining in the pool,
// then Phyrexian symbols prefer mana over life, then generic drains any
// remaining mana of any type.
func BuildPaymentPlan(pool *Pool, cost ManaCost, life int) (PaymentPlan, error) {
	scratch := make(map[types.ManaType]int, len(pool.amounts))
	for k, v := range pool.amounts {
		scratch[k] = v
	}
	plan := PaymentPlan{FromPool: make(map[types.ManaType]int)}

	pay := func(mt types.ManaType, n int) bool {
		if scratch[mt] < n {
			return false
		}
		scratch[mt] -= n
		plan.FromPool[mt] += n
		return true
	}

	// Colored symbols first.
	for mt, n := range cost.Colored {
		if !pay(mt, n) {
			return plan, ErrInsufficientMana
		}
	}

	// Hybrid: prefer the option with more remaining mana so the scarcer
	// color is preserved for later generic/colored needs elsewhere.
	for _, h := range cost.Hybrid {
		aAvail, bAvail := scratch[h.OptionA], scratch[h.OptionB]
		switch {
		case h.OptionB == types.Any:
			if aAvail > 0 {
				pay(h.OptionA, 1)
			} else if !payGeneric(scratch, plan, 2) {
				return plan, ErrInsufficientMana
			}
		case aAvail >= bAvail && aAvail > 0:
			pay(h.OptionA, 1)
		case bAvail > 0:
			pay(h.OptionB, 1)
		default:
			return plan, ErrInsufficientMana
		}
	}

	// Phyrexian: prefer paying mana, fall back to 2 life each.
	for _, color := range cost.Phyrexian {
		if scratch[color] > 0 {
			pay(color, 1)
		} else {
			plan.LifePaid += 2
		}
	}
	if life-plan.LifePaid < 0 {
		return plan, ErrInsufficientMana
	}

	// Generic last, from any remaining mana.
	if !payGeneric(scratch, plan, cost.Generic) {
		return plan, ErrInsufficientMana
	}

	return plan, nil
}

func payGeneric(scratch map[types.ManaType]int, plan PaymentPlan, n int) bool {
	remaining := n
	for mt, avail := range scratch {
		if remaining == 0 {
			break
		}
		use := avail
		if use > remaining {
			use = remaining
		}
		scratch[mt] -= use
		plan.FromPool[mt] += use
		remaining -= use
	}
	return remaining == 0
}

// ChooseX clamps a caster-chosen X value into [0, max], where max is
// typically bounded by available mana once the fixed portion of the cost
// is paid.
func ChooseX(requested, max int) int {
	if requested < 0 {
		return 0
	}
	if requested > max {
		return max
	}
	return requested
}

// CheckManaProducer analyzes oracle text for a mana-producing ability and
// returns the mana types it can add.
func CheckManaProducer(oracleText string) (bool, []types.ManaType) {
	if !strings.Contains(oracleText, "Add") {
		return false, nil
	}

	var manaTypes []types.ManaType
	re := regexp.MustCompile(`\{([WUBRGC])\}`)
	for _, m := range re.FindAllStringSubmatch(oracleText, -1) {
		manaTypes = append(manaTypes, types.ManaType(m[1]))
	}

	lower := strings.ToLower(oracleText)
	if strings.Contains(lower, "any color") || strings.Contains(lower, "one mana of any color") {
		manaTypes = append(manaTypes, types.Any)
	}

	return len(manaTypes) > 0, manaTypes
}
