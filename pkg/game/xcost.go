package game

import (
	"github.com/mtgforge/rulesengine/pkg/ability"
	"github.com/mtgforge/rulesengine/pkg/card"
)

// chooseX resolves an {X} cost to a concrete value. There is no interactive
// ChooseX decision point in the action space (pkg/action.ChooseX is reserved
// for a future pass); the caster's choice is simplified to the maximum X
// affordable with the floating mana pool after the cost's fixed portion is
// set aside, mirroring the deterministic autoSelectTargets simplification.
func chooseX(mc card.ManaCost, pool *card.Pool) int {
	if !mc.HasX || mc.XCount == 0 {
		return 0
	}
	fixed := mc.Generic
	for _, n := range mc.Colored {
		fixed += n
	}
	fixed += len(mc.Hybrid) + len(mc.Phyrexian)
	available := pool.Total() - fixed
	maxX := available / mc.XCount
	if maxX < 0 {
		maxX = 0
	}
	return card.ChooseX(maxX, maxX)
}

// resolveXEffects replaces the -1 sentinel pkg/ability's parser writes for
// an X effect's value (draw X cards, deal X damage, ...) with the X amount
// actually paid, once per casting/activation rather than once per parse.
func resolveXEffects(ab *ability.Ability, x int) {
	if ab == nil {
		return
	}
	for i := range ab.Effects {
		if ab.Effects[i].Value < 0 {
			ab.Effects[i].Value = x
		}
	}
}
