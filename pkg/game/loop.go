package game

import (
	"sort"

	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/internal/logger"
	"github.com/mtgforge/rulesengine/pkg/ability"
	"github.com/mtgforge/rulesengine/pkg/action"
	"github.com/mtgforge/rulesengine/pkg/card"
	"github.com/mtgforge/rulesengine/pkg/combat"
	"github.com/mtgforge/rulesengine/pkg/layers"
	"github.com/mtgforge/rulesengine/pkg/sba"
	"github.com/mtgforge/rulesengine/pkg/types"
)

// advancePhase moves to the next phase/step once every player has passed
// priority in succession with an empty stack (pkg/ability.Stack.PassPriority),
// called from handlePassPriority.
func (g *Game) advancePhase() {
	newTurn := g.turn.Advance()
	if newTurn {
		g.onNewTurn()
	}
	g.onEnterPhase(g.turn.Phase())
	g.priorityPlayer = g.turn.ActivePlayer
}

func (g *Game) onNewTurn() {
	g.attackers = make(map[uuid.UUID]bool)
	g.blockers = make(map[uuid.UUID][]uuid.UUID)
	g.damageOrder = make(map[uuid.UUID][]uuid.UUID)
	for _, p := range g.players {
		p.LandsPlayedThisTurn = 0
	}
	logger.LogGame("turn %d begins, active player %d", g.turn.TurnNumber, g.turn.ActivePlayer)
}

func (g *Game) onEnterPhase(phase types.Phase) {
	active := g.players[g.turn.ActivePlayer]
	switch phase {
	case types.Untap:
		for _, id := range g.controlledPermanents(g.turn.ActivePlayer) {
			g.untapPermanent(id)
			if inst, ok := g.arena.Get(id); ok {
				inst.SummoningSick = false
			}
		}
	case types.Draw:
		if g.turn.TurnNumber > 1 {
			g.DrawCards(g.turn.ActivePlayer, 1)
		}
	case types.DeclareBlockers:
		g.assignDamageOrders()
	case types.FirstStrikeDamage:
		g.dealCombatDamage(combat.FirstStrikeStep)
	case types.CombatDamage:
		g.dealCombatDamage(combat.RegularStep)
	case types.EndCombat:
		g.attackers = make(map[uuid.UUID]bool)
		g.blockers = make(map[uuid.UUID][]uuid.UUID)
	case types.Cleanup:
		g.cleanupStep(active)
	}
	for _, p := range g.players {
		p.ManaPool.Empty()
	}
}

func (g *Game) assignDamageOrders() {
	for attacker, blockers := range g.blockers {
		g.damageOrder[attacker] = append([]uuid.UUID{}, blockers...)
	}
}

func (g *Game) dealCombatDamage(step combat.Step) {
	for attackerID := range g.attackers {
		ac, ok := g.CharacteristicsOf(attackerID)
		if !ok {
			continue
		}
		attackerCombatant := combat.FromCharacteristics(attackerID, ac, g.damageMarkedOf(attackerID), nil)
		if !combat.StepOf(attackerCombatant, step) {
			continue
		}

		blockerIDs := g.blockers[attackerID]
		var blockerCombatants []combat.Combatant
		lethal := make(map[uuid.UUID]int)
		for _, bid := range blockerIDs {
			bc, ok := g.CharacteristicsOf(bid)
			if !ok {
				continue
			}
			bcomb := combat.FromCharacteristics(bid, bc, g.damageMarkedOf(bid), nil)
			blockerCombatants = append(blockerCombatants, bcomb)
			need := bc.Toughness - g.damageMarkedOf(bid)
			if attackerCombatant.Keywords.Has(card.Deathtouch) {
				need = 1
			}
			if need < 1 {
				need = 1
			}
			lethal[bid] = need
		}

		events := combat.AssignAttackerDamage(attackerCombatant, g.nextPlayer(g.turn.ActivePlayer), blockerCombatants, g.damageOrder[attackerID], lethal)
		g.applyDamageEvents(events)

		for _, bc := range blockerCombatants {
			if !combat.StepOf(bc, step) {
				continue
			}
			g.applyDamageEvents(combat.AssignBlockerDamage(bc, []uuid.UUID{attackerID}))
		}
	}
}

func (g *Game) damageMarkedOf(id uuid.UUID) int {
	if inst, ok := g.arena.Get(id); ok {
		return inst.DamageMarked
	}
	return 0
}

func (g *Game) applyDamageEvents(events []combat.DamageEvent) {
	for _, ev := range events {
		switch {
		case ev.TargetPlayer != nil:
			g.DealDamageToPlayer(ev.Source, *ev.TargetPlayer, ev.Amount)
			if ev.Lifelink {
				g.GainLife(g.ControllerOf(ev.Source), ev.Amount)
			}
		case ev.TargetPermanent != nil:
			g.DealDamageToPermanent(ev.Source, *ev.TargetPermanent, ev.Amount)
			if ev.Lifelink {
				g.GainLife(g.ControllerOf(ev.Source), ev.Amount)
			}
		}
	}
}

func (g *Game) cleanupStep(active *Player) {
	handSize := 7
	for len(active.Hand) > handSize {
		id := active.Hand[len(active.Hand)-1]
		_ = g.MoveCard(id, types.Graveyard)
	}
	for _, id := range g.battlefield {
		if inst, ok := g.arena.Get(id); ok {
			inst.DamageMarked = 0
		}
	}
	g.layerRegistry.DeregisterExpired(layers.EndOfTurn)
	g.abilityRegistry.ResetTurnUsage()
}

// snapshotView builds the GameView the sba package checks against.
func (g *Game) snapshotView() sba.GameView {
	view := sba.GameView{}
	for _, p := range g.players {
		view.Players = append(view.Players, sba.PlayerView{
			Index: p.Index, Life: p.Life, Poison: p.Poison, AttemptedDraw: p.attemptedEmptyDraw,
		})
	}
	for _, id := range g.battlefield {
		inst, ok := g.arena.Get(id)
		if !ok {
			continue
		}
		c, _ := g.CharacteristicsOf(id)
		attachLegal := true
		if inst.AttachedTo != nil {
			if _, ok := g.arena.Get(*inst.AttachedTo); !ok {
				attachLegal = false
			}
		}
		view.Permanents = append(view.Permanents, sba.PermanentView{
			ID: id, Controller: inst.Controller, Owner: inst.OwnerIdx, Name: c.Name,
			IsCreature: contains(c.CardTypes, "Creature"), IsPlaneswalker: contains(c.CardTypes, "Planeswalker"),
			IsAura:          contains(c.Subtypes, "Aura"),
			IsToken:         g.arena.IsToken(id),
			IsLegendary:     contains(c.Supertypes, "Legendary"),
			Indestructible:  c.Keywords.Has(card.Indestructible),
			Toughness:       c.Toughness,
			DamageMarked:    inst.DamageMarked,
			Loyalty:         c.Loyalty,
			AttachedTo:      inst.AttachedTo,
			AttachmentLegal: attachLegal,
			PlusCounters:    inst.Counters["+1/+1"],
			MinusCounters:   inst.Counters["-1/-1"],
		})
	}
	return view
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func (g *Game) chooseLegendCopy(player int, duplicates []sba.PermanentView) uuid.UUID {
	sort.Slice(duplicates, func(i, j int) bool { return duplicates[i].ID.String() < duplicates[j].ID.String() })
	return duplicates[0].ID
}

func (g *Game) applySBAActions(actions []sba.Action) {
	losers := 0
	for _, a := range actions {
		if a.Kind == sba.PlayerLoses {
			losers++
		}
	}
	for _, a := range actions {
		switch a.Kind {
		case sba.PlayerLoses:
			g.terminated = true
			g.reason = types.Loss
			g.winner = g.nextPlayer(a.Player)
			if losers > 1 {
				g.reason = types.DrawGame
				g.winner = -1
			}
		case sba.DestroyPermanent, sba.SacrificeToLegendRule:
			if inst, ok := g.arena.Get(a.Permanent); ok {
				g.sendToGraveyardOrRemove(inst)
			}
		case sba.RemoveFromGame:
			g.RemoveFromPlay(a.Permanent)
		case sba.AnnihilateCounters:
			if inst, ok := g.arena.Get(a.Permanent); ok {
				inst.Counters["+1/+1"] -= a.PlusRemoved
				inst.Counters["-1/-1"] -= a.MinusRemoved
			}
		}
	}
}

// queueTriggers scans every attached triggered ability for one matching
// condition and enqueues each firing for release on the next trigger
// window, per rule 603.3.
func (g *Game) queueTriggers(condition ability.TriggerCondition) {
	for _, t := range g.triggerMatcher.Check(condition, g.ControllerOf) {
		g.triggerQueue.Enqueue(t)
	}
}

// drainTriggers releases any queued triggers onto the stack in APNAP
// order, reporting whether it did so.
func (g *Game) drainTriggers() bool {
	pending := g.triggerQueue.Drain(g.turn.ActivePlayer, len(g.players), g.chooseTriggerOrder)
	if len(pending) == 0 {
		return false
	}
	for _, t := range pending {
		ab := t.Ability
		item := &ability.StackItem{
			ID: uuid.New(), Kind: ability.AbilityItem, Ability: &ab,
			Controller: t.Controller, Source: ab.Source, Targets: t.Targets, Description: ab.Name,
		}
		g.stack.Push(item, g.turn.ActivePlayer)
	}
	g.priorityPlayer = g.turn.ActivePlayer
	return true
}

// chooseTriggerOrder lets a player order their own simultaneous triggers;
// this engine resolves them in the matcher's deterministic source order.
func (g *Game) chooseTriggerOrder(player int, triggers []ability.PendingTrigger) []ability.PendingTrigger {
	return triggers
}

func (g *Game) checkWinLossConditions() {
	if g.terminated {
		return
	}
	alive := 0
	loser := -1
	for _, p := range g.players {
		if p.Life <= 0 || p.Poison >= 10 || p.Conceded {
			loser = p.Index
			continue
		}
		alive++
	}
	if loser >= 0 {
		g.terminated = true
		g.reason = types.Win
		g.winner = g.nextPlayer(loser)
	}
}

// Observation builds the full state snapshot for the driving agent.
func (g *Game) Observation() Observation {
	obs := Observation{
		Turn: g.turn.TurnNumber, Phase: g.turn.Phase(), ActivePlayer: g.turn.ActivePlayer,
		PriorityPlayer: g.priorityPlayer, StackSize: g.stack.Size(),
		Terminated: g.terminated, Reason: g.reason, Winner: g.winner,
		Hands: make(map[int][]uuid.UUID),
	}
	for _, p := range g.players {
		obs.Players = append(obs.Players, PlayerObs{
			Index: p.Index, Life: p.Life, Poison: p.Poison, HandSize: len(p.Hand),
			LibrarySize: len(p.Library), GraveyardIDs: append([]uuid.UUID{}, p.Graveyard...),
			LandsPlayed: p.LandsPlayedThisTurn,
		})
		obs.Hands[p.Index] = append([]uuid.UUID{}, p.Hand...)
	}
	for _, id := range g.battlefield {
		inst, ok := g.arena.Get(id)
		if !ok {
			continue
		}
		c, _ := g.CharacteristicsOf(id)
		obs.Permanents = append(obs.Permanents, PermanentObs{
			ID: id, Name: c.Name, Controller: inst.Controller, Owner: inst.OwnerIdx,
			CardTypes: c.CardTypes, Subtypes: c.Subtypes, Power: c.Power, Toughness: c.Toughness,
			Loyalty: c.Loyalty, Tapped: inst.Tapped, SummoningSick: inst.SummoningSick,
			DamageMarked: inst.DamageMarked, Attacking: inst.Attacking,
		})
	}
	return obs
}

// ActionMask computes which action-space indices are legal for whoever
// currently holds priority.
func (g *Game) ActionMask() action.Mask {
	if g.terminated {
		return action.Mask{}
	}
	mask := action.NewMask()
	player := g.priorityPlayer
	splitSecond := g.stack.SplitSecondActive()

	for i, id := range g.handsLands(player) {
		_ = id
		if player == g.turn.ActivePlayer && g.turn.Phase().IsMain() && g.stack.IsEmpty() && g.players[player].LandsPlayedThisTurn == 0 {
			mask.Allow(action.PlayLand, i)
		}
	}
	if !splitSecond {
		for i := range g.handNonLands(player) {
			mask.Allow(action.CastSpell, i)
		}
	}
	if g.turn.Phase() == types.DeclareAttackers && player == g.turn.ActivePlayer {
		for i, id := range g.controlledPermanents(player) {
			if inst, ok := g.arena.Get(id); ok && inst.Def.IsCreature() && !inst.Tapped && !inst.SummoningSick {
				mask.Allow(action.DeclareAttacker, i)
			}
		}
	}
	if g.turn.Phase() == types.DeclareBlockers && player == g.nextPlayer(g.turn.ActivePlayer) {
		blockers := g.controlledPermanents(player)
		attackerIDs := attackerList(g.attackers)
		for bi, bid := range blockers {
			if inst, ok := g.arena.Get(bid); !ok || inst.Tapped {
				continue
			}
			for ai := range attackerIDs {
				mask.AllowBlockerPair(bi, ai)
			}
		}
	}
	if !splitSecond {
		for sourceIdx, id := range g.controlledPermanents(player) {
			for abilityIdx, ab := range g.abilityRegistry.ActivatedAbilities(id) {
				if abilityIdx >= abilitiesPerSource {
					break
				}
				if ab.CanActivateThisTurn() && g.CanPayCost(player, ab.Cost) {
					mask.Allow(action.ActivateAbility, sourceIdx*abilitiesPerSource+abilityIdx)
				}
			}
		}
	}
	if !g.players[player].HasKeptHand {
		mask.Allow(action.Mulligan, 0)
		mask.Allow(action.KeepHand, 0)
	}
	return mask
}
