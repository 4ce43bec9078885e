package game

import (
	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/internal/logger"
	"github.com/mtgforge/rulesengine/pkg/ability"
	"github.com/mtgforge/rulesengine/pkg/card"
	"github.com/mtgforge/rulesengine/pkg/layers"
	"github.com/mtgforge/rulesengine/pkg/replacement"
	"github.com/mtgforge/rulesengine/pkg/types"
)

// The methods in this file satisfy pkg/ability.GameState, letting the
// ability execution engine resolve effects against this Game without
// pkg/ability ever importing pkg/game.

func (g *Game) ActivePlayer() int      { return g.turn.ActivePlayer }
func (g *Game) PriorityPlayer() int    { return g.priorityPlayer }
func (g *Game) PlayerCount() int       { return len(g.players) }
func (g *Game) CurrentPhase() types.Phase { return g.turn.Phase() }

func (g *Game) DrawCards(player int, n int) {
	for i := 0; i < n; i++ {
		g.drawInternal(player)
	}
}

func (g *Game) DealDamageToPlayer(source uuid.UUID, player int, amount int) {
	if amount <= 0 {
		return
	}
	ev, suppressed := g.applyReplacement(replacement.Event{
		Kind: replacement.DamageDealt, Source: source,
		Data: map[string]interface{}{"amount": amount, "player": player},
	})
	if suppressed {
		return
	}
	amount, _ = ev.Data["amount"].(int)
	if amount <= 0 {
		return
	}
	g.players[player].Life -= amount
	logger.LogGame("player %d takes %d damage from %s", player, amount, source)
}

func (g *Game) DealDamageToPermanent(source, target uuid.UUID, amount int) {
	if amount <= 0 {
		return
	}
	inst, ok := g.arena.Get(target)
	if !ok {
		return
	}
	ev, suppressed := g.applyReplacement(replacement.Event{
		Kind: replacement.DamageDealt, Source: source, Affected: target,
		Data: map[string]interface{}{"amount": amount},
	})
	if suppressed {
		return
	}
	amount, _ = ev.Data["amount"].(int)
	if amount <= 0 {
		return
	}
	inst.DamageMarked += amount
}

func (g *Game) GainLife(player int, amount int) {
	if amount > 0 {
		g.players[player].Life += amount
	}
}

func (g *Game) LoseLife(player int, amount int) {
	if amount <= 0 {
		return
	}
	ev, suppressed := g.applyReplacement(replacement.Event{
		Kind: replacement.LifeLoss,
		Data: map[string]interface{}{"amount": amount, "player": player},
	})
	if suppressed {
		return
	}
	if amount, _ = ev.Data["amount"].(int); amount > 0 {
		g.players[player].Life -= amount
	}
}

func (g *Game) AddMana(player int, mt types.ManaType, amount int) {
	g.players[player].ManaPool.Add(mt, amount)
}

func (g *Game) Tap(instance uuid.UUID) error {
	inst, ok := g.arena.Get(instance)
	if !ok {
		return ErrUnknownInstance
	}
	if inst.Tapped {
		return ErrTapped
	}
	inst.Tapped = true
	return nil
}

func (g *Game) Untap(instance uuid.UUID) {
	g.untapPermanent(instance)
}

// untapPermanent is the single path by which a permanent's tapped state is
// cleared, letting "doesn't untap during your untap step" replacement
// effects (rule 616) intercept it regardless of whether the untap is driven
// by the untap step or by an ability effect.
func (g *Game) untapPermanent(instance uuid.UUID) {
	inst, ok := g.arena.Get(instance)
	if !ok || !inst.Tapped {
		return
	}
	_, suppressed := g.applyReplacement(replacement.Event{
		Kind: replacement.Untap, Source: instance, Affected: instance,
	})
	if suppressed {
		return
	}
	inst.Tapped = false
}

func (g *Game) DestroyPermanent(instance uuid.UUID) {
	inst, ok := g.arena.Get(instance)
	if !ok || inst.Zone != types.Battlefield {
		return
	}
	g.sendToGraveyardOrRemove(inst)
}

func (g *Game) sendToGraveyardOrRemove(inst *card.Instance) {
	if inst.Def.IsCreature() {
		_, suppressed := g.applyReplacement(replacement.Event{
			Kind: replacement.Dies, Source: inst.ID, Affected: inst.ID,
		})
		if suppressed {
			return
		}
		g.queueTriggers(ability.Dies)
	}
	if g.arena.IsToken(inst.ID) {
		g.RemoveFromPlay(inst.ID)
		return
	}
	_ = g.MoveCard(inst.ID, types.Graveyard)
}

func (g *Game) CounterSpell(stackItemID uuid.UUID) {
	_ = g.stack.Counter(stackItemID)
}

func (g *Game) ReturnToHand(instance uuid.UUID) {
	_ = g.MoveCard(instance, types.Hand)
}

func (g *Game) DiscardCards(player int, n int) {
	p := g.players[player]
	for i := 0; i < n && len(p.Hand) > 0; i++ {
		id := p.Hand[len(p.Hand)-1]
		_ = g.MoveCard(id, types.Graveyard)
	}
}

func (g *Game) PumpPermanent(instance uuid.UUID, power, toughness int, duration ability.EffectDuration) {
	d := layersDurationOf(duration)
	g.layerRegistry.Register(pumpEffect(instance, power, toughness, d, g.layerRegistry.NextTimestamp()))
}

func (g *Game) ChangeController(instance uuid.UUID, newController int) {
	if inst, ok := g.arena.Get(instance); ok {
		inst.Controller = newController
	}
}

func (g *Game) PreventDamage(instance uuid.UUID, amount int) {
	if inst, ok := g.arena.Get(instance); ok {
		inst.DamageMarked -= amount
		if inst.DamageMarked < 0 {
			inst.DamageMarked = 0
		}
	}
}

func (g *Game) CanPayCost(player int, cost ability.Cost) bool {
	p := g.players[player]
	if !card.CanAfford(p.ManaPool, cost.Mana, p.Life-cost.LifeCost) {
		return false
	}
	if cost.DiscardCost > len(p.Hand) {
		return false
	}
	return true
}

func (g *Game) PayCost(player int, cost ability.Cost) error {
	if !g.CanPayCost(player, cost) {
		return ErrCannotAffordCost
	}
	p := g.players[player]
	plan, err := card.BuildPaymentPlan(p.ManaPool, cost.Mana, p.Life)
	if err != nil {
		return err
	}
	p.ManaPool.Pay(plan)
	p.Life -= plan.LifePaid
	p.Life -= cost.LifeCost
	if cost.DiscardCost > 0 {
		g.DiscardCards(player, cost.DiscardCost)
	}
	return nil
}

func (g *Game) ControllerOf(instance uuid.UUID) int {
	if inst, ok := g.arena.Get(instance); ok {
		return inst.Controller
	}
	return -1
}

func layersDurationOf(d ability.EffectDuration) layers.Duration {
	switch d {
	case ability.UntilEndOfTurn:
		return layers.EndOfTurn
	case ability.UntilEndOfCombat:
		return layers.EndOfCombat
	case ability.EffectPermanent, ability.UntilLeavesPlay:
		return layers.Permanent
	default:
		return layers.EndOfTurn
	}
}

func pumpEffect(instance uuid.UUID, power, toughness int, d layers.Duration, timestamp uint64) layers.Effect {
	target := instance
	return layers.Effect{
		ID: uuid.New(), Source: instance, Layer: layers.Layer7c,
		Target: layers.Target{Single: &target}, Timestamp: timestamp, Duration: d,
		ApplyPT: func(c *layers.Characteristics) {
			c.Power += power
			c.Toughness += toughness
		},
	}
}
