package game

import (
	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/internal/logger"
	"github.com/mtgforge/rulesengine/pkg/ability"
	"github.com/mtgforge/rulesengine/pkg/action"
	"github.com/mtgforge/rulesengine/pkg/card"
	"github.com/mtgforge/rulesengine/pkg/combat"
	"github.com/mtgforge/rulesengine/pkg/types"
)

func (g *Game) registerHandlers() {
	g.dispatcher.Register(action.PassPriority, g.handlePassPriority)
	g.dispatcher.Register(action.Concede, g.handleConcede)
	g.dispatcher.Register(action.PlayLand, g.handlePlayLand)
	g.dispatcher.Register(action.CastSpell, g.handleCastSpell)
	g.dispatcher.Register(action.ActivateAbility, g.handleActivateAbility)
	g.dispatcher.Register(action.DeclareAttacker, g.handleDeclareAttacker)
	g.dispatcher.Register(action.DeclareBlocker, g.handleDeclareBlocker)
	g.dispatcher.Register(action.Mulligan, g.handleMulligan)
	g.dispatcher.Register(action.KeepHand, g.handleKeepHand)
	g.dispatcher.Register(action.BottomCard, g.handleBottomCard)
}

func (g *Game) nextPlayer(p int) int { return (p + 1) % len(g.players) }

func (g *Game) handlePassPriority(action.Descriptor) error {
	player := g.priorityPlayer
	if g.stack.PassPriority(player) {
		if !g.stack.IsEmpty() {
			g.resolveStackTop()
		} else {
			g.advancePhase()
		}
		g.priorityPlayer = g.turn.ActivePlayer
	} else {
		g.priorityPlayer = g.nextPlayer(player)
	}
	return nil
}

func (g *Game) handleConcede(action.Descriptor) error {
	g.players[g.priorityPlayer].Conceded = true
	g.terminated = true
	g.reason = types.Loss
	g.winner = g.nextPlayer(g.priorityPlayer)
	logger.LogGame("player %d concedes, player %d wins", g.priorityPlayer, g.winner)
	return nil
}

func (g *Game) handsLands(player int) []uuid.UUID {
	var out []uuid.UUID
	for _, id := range g.players[player].Hand {
		if inst, ok := g.arena.Get(id); ok && inst.Def.IsLand() {
			out = append(out, id)
		}
	}
	return out
}

func (g *Game) handNonLands(player int) []uuid.UUID {
	var out []uuid.UUID
	for _, id := range g.players[player].Hand {
		if inst, ok := g.arena.Get(id); ok && !inst.Def.IsLand() {
			out = append(out, id)
		}
	}
	return out
}

func (g *Game) handlePlayLand(d action.Descriptor) error {
	player := g.priorityPlayer
	p := g.players[player]
	if player != g.turn.ActivePlayer || !g.turn.Phase().IsMain() || !g.stack.IsEmpty() {
		return ErrWrongTimingForLand
	}
	if p.LandsPlayedThisTurn > 0 {
		return ErrLandDropUsed
	}
	lands := g.handsLands(player)
	if d.Slot < 0 || d.Slot >= len(lands) {
		return action.ErrIndexOutOfRange
	}
	id := lands[d.Slot]
	if err := g.MoveCard(id, types.Battlefield); err != nil {
		return err
	}
	p.LandsPlayedThisTurn++
	logger.LogGame("player %d plays a land", player)
	return nil
}

func (g *Game) handleCastSpell(d action.Descriptor) error {
	player := g.priorityPlayer
	p := g.players[player]
	nonLands := g.handNonLands(player)
	if d.Slot < 0 || d.Slot >= len(nonLands) {
		return action.ErrIndexOutOfRange
	}
	id := nonLands[d.Slot]
	inst, ok := g.arena.Get(id)
	if !ok {
		return ErrUnknownInstance
	}
	sorcerySpeed := inst.Def.IsSorcery() || isPermanentCard(inst.Def)
	if sorcerySpeed && (player != g.turn.ActivePlayer || !g.turn.Phase().IsMain() || !g.stack.IsEmpty()) {
		return ErrWrongTimingForLand
	}
	if g.stack.SplitSecondActive() {
		return ErrSplitSecondActive
	}
	mc, err := card.ParseManaCostString(inst.Def.ManaCost)
	if err != nil {
		return err
	}
	x := 0
	if mc.HasX {
		x = chooseX(mc, p.ManaPool)
		mc.Generic += x * mc.XCount
	}
	cost := ability.Cost{Mana: mc}
	if !g.CanPayCost(player, cost) {
		return ErrCannotAffordCost
	}
	if err := g.PayCost(player, cost); err != nil {
		return err
	}
	removeFrom(&p.Hand, id)
	inst.Zone = types.Stack

	var synthetic *ability.Ability
	parsed := ability.ParseAbilities(inst.Def.OracleText, id)
	if len(parsed) > 0 {
		synthetic = &parsed[0]
		resolveXEffects(synthetic, x)
	}
	targets := g.autoSelectTargets(synthetic, player)

	item := &ability.StackItem{
		ID: uuid.New(), Kind: ability.SpellItem, Ability: synthetic,
		SpellName: inst.Def.Name, Controller: player, Source: id, Targets: targets,
		Description: inst.Def.Name, Permanent: isPermanentCard(inst.Def), XValue: x,
	}
	g.stack.Push(item, g.turn.ActivePlayer)
	g.priorityPlayer = g.turn.ActivePlayer
	if inst.Def.HasKeyword(card.SplitSecond) {
		g.stack.SetSplitSecond(true)
	}
	logger.LogGame("player %d casts %s", player, inst.Def.Name)
	return nil
}

func isPermanentCard(c *card.Card) bool {
	return c.IsCreature() || c.IsArtifact() || c.IsEnchantment() || c.IsPlaneswalker()
}

// abilitiesPerSource bounds how many distinct activated abilities of a
// single source the flat ActivateAbility range can address; a source's
// nth ability lives at slot sourceIndex*abilitiesPerSource + n.
const abilitiesPerSource = 12

func (g *Game) handleActivateAbility(d action.Descriptor) error {
	player := g.priorityPlayer
	if g.stack.SplitSecondActive() {
		return ErrSplitSecondActive
	}
	source, abilityIdx, err := g.decodeAbilitySlot(player, d.Slot)
	if err != nil {
		return err
	}
	abilities := g.abilityRegistry.ActivatedAbilities(source)
	if abilityIdx < 0 || abilityIdx >= len(abilities) {
		return ErrNoSuchAbility
	}
	ab := abilities[abilityIdx]
	if !ab.CanActivateThisTurn() {
		return ability.ErrUsesExhausted
	}
	x := 0
	if ab.Cost.Mana.HasX {
		x = chooseX(ab.Cost.Mana, g.players[player].ManaPool)
		ab.Cost.Mana.Generic += x * ab.Cost.Mana.XCount
	}
	if !g.CanPayCost(player, ab.Cost) {
		return ErrCannotAffordCost
	}
	if ab.Cost.TapCost {
		if inst, ok := g.arena.Get(source); ok && inst.SummoningSick && inst.Def.IsCreature() {
			return ErrSummoningSick
		}
		if err := g.Tap(source); err != nil {
			return err
		}
	}
	if err := g.PayCost(player, ab.Cost); err != nil {
		return err
	}
	g.abilityRegistry.MarkUsed(source, ab.ID)
	resolveXEffects(&ab, x)
	targets := g.autoSelectTargets(&ab, player)
	item := &ability.StackItem{
		ID: uuid.New(), Kind: ability.AbilityItem, Ability: &ab,
		Controller: player, Source: source, Targets: targets, Description: ab.Name, XValue: x,
	}
	g.stack.Push(item, g.turn.ActivePlayer)
	g.priorityPlayer = g.turn.ActivePlayer
	return nil
}

func (g *Game) decodeAbilitySlot(player, slot int) (uuid.UUID, int, error) {
	sources := g.controlledPermanents(player)
	sourceIdx, abilityIdx := slot/abilitiesPerSource, slot%abilitiesPerSource
	if sourceIdx < 0 || sourceIdx >= len(sources) {
		return uuid.Nil, 0, action.ErrIndexOutOfRange
	}
	return sources[sourceIdx], abilityIdx, nil
}

func (g *Game) controlledPermanents(player int) []uuid.UUID {
	var out []uuid.UUID
	for _, id := range g.battlefield {
		if inst, ok := g.arena.Get(id); ok && inst.Controller == player {
			out = append(out, id)
		}
	}
	return out
}

// autoSelectTargets picks the first legal candidate for each target spec an
// ability needs. A full implementation would surface ChooseTarget actions to
// the driving agent for each required choice; this engine resolves targets
// deterministically instead, keeping the action-space contract (ChooseTarget
// exists as a kind) for future expansion without requiring it on every cast.
func (g *Game) autoSelectTargets(ab *ability.Ability, controller int) []ability.SelectedTarget {
	if ab == nil {
		return nil
	}
	var out []ability.SelectedTarget
	for _, effect := range ab.Effects {
		for _, spec := range effect.Targets {
			count := spec.Count
			if count == 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				if t, ok := g.firstLegalTarget(spec, controller); ok {
					out = append(out, t)
				}
			}
		}
	}
	return out
}

func (g *Game) firstLegalTarget(spec ability.TargetSpec, controller int) (ability.SelectedTarget, bool) {
	switch spec.Kind {
	case ability.PlayerTarget:
		opp := g.nextPlayer(controller)
		return ability.SelectedTarget{Player: &opp}, true
	case ability.CreatureTarget, ability.PermanentTarget, ability.AnyTarget:
		for _, id := range g.battlefield {
			inst, ok := g.arena.Get(id)
			if !ok {
				continue
			}
			candidate := ability.TargetableCard{
				ID: id, Controller: inst.Controller, IsCreature: inst.Def.IsCreature(),
			}
			if ability.LegalTargetsExist(spec, map[uuid.UUID]ability.TargetableCard{id: candidate}) {
				return ability.SelectedTarget{Permanent: &id}, true
			}
		}
	}
	return ability.SelectedTarget{}, false
}

// targetCandidates builds the TargetableCard universe ValidateTargets checks
// selected targets against, from whatever is currently on the battlefield.
func (g *Game) targetCandidates() map[uuid.UUID]ability.TargetableCard {
	candidates := make(map[uuid.UUID]ability.TargetableCard, len(g.battlefield))
	for _, id := range g.battlefield {
		inst, ok := g.arena.Get(id)
		if !ok {
			continue
		}
		candidates[id] = ability.TargetableCard{
			ID: id, Controller: inst.Controller, IsCreature: inst.Def.IsCreature(),
		}
	}
	return candidates
}

func targetSpecsOf(ab *ability.Ability) []ability.TargetSpec {
	if ab == nil {
		return nil
	}
	var specs []ability.TargetSpec
	for _, effect := range ab.Effects {
		specs = append(specs, effect.Targets...)
	}
	return specs
}

func (g *Game) resolveStackTop() {
	top := g.stack.Peek()
	if top == nil {
		return
	}
	if !top.Countered {
		if specs := targetSpecsOf(top.Ability); len(specs) > 0 {
			if err := ability.ValidateTargets(specs, top.Targets, g.targetCandidates()); err != nil {
				logger.LogGame("%s fizzles: a required target is no longer legal", top.Description)
				top.Countered = true
			}
		}
	}
	res, err := g.stack.ResolveTop(g.turn.ActivePlayer)
	if err != nil {
		logger.LogGame("stack resolution error: %v", err)
	}
	switch {
	case top.Countered || !res.Resolved:
		_ = g.MoveCard(top.Source, types.Graveyard)
	case top.Permanent:
		_ = g.MoveCard(top.Source, types.Battlefield)
	default:
		_ = g.MoveCard(top.Source, types.Graveyard)
	}
	if g.stack.IsEmpty() {
		g.stack.SetSplitSecond(false)
	}
}

func (g *Game) handleDeclareAttacker(d action.Descriptor) error {
	if g.turn.Phase() != types.DeclareAttackers {
		return ErrWrongPhase
	}
	creatures := g.controlledPermanents(g.turn.ActivePlayer)
	if d.Slot < 0 || d.Slot >= len(creatures) {
		return action.ErrIndexOutOfRange
	}
	id := creatures[d.Slot]
	inst, ok := g.arena.Get(id)
	if !ok || !inst.Def.IsCreature() || inst.Tapped || inst.SummoningSick {
		return ErrIllegalZoneMove
	}
	if !inst.Def.HasKeyword(card.Vigilance) {
		inst.Tapped = true
	}
	inst.Attacking = nil // nil means attacking the defending player directly; planeswalker attacks are a future extension
	g.attackers[id] = true
	return nil
}

func (g *Game) handleDeclareBlocker(d action.Descriptor) error {
	if g.turn.Phase() != types.DeclareBlockers {
		return ErrWrongPhase
	}
	defendingPlayer := g.nextPlayer(g.turn.ActivePlayer)
	blockers := g.controlledPermanents(defendingPlayer)
	attackerIDs := attackerList(g.attackers)
	if d.Slot < 0 || d.Slot >= len(blockers) || d.TargetSlot < 0 || d.TargetSlot >= len(attackerIDs) {
		return action.ErrIndexOutOfRange
	}
	blockerID := blockers[d.Slot]
	attackerID := attackerIDs[d.TargetSlot]

	bc, ok1 := g.CharacteristicsOf(blockerID)
	ac, ok2 := g.CharacteristicsOf(attackerID)
	if !ok1 || !ok2 {
		return ErrUnknownInstance
	}
	attackerCombatant := combat.FromCharacteristics(attackerID, ac, 0, nil)
	blockerCombatant := combat.FromCharacteristics(blockerID, bc, 0, nil)
	if !combat.CanBlock(attackerCombatant, blockerCombatant) {
		return ErrIllegalZoneMove
	}
	g.blockers[attackerID] = append(g.blockers[attackerID], blockerID)
	if inst, ok := g.arena.Get(attackerID); ok {
		inst.BlockedBy = append(inst.BlockedBy, blockerID)
	}
	if inst, ok := g.arena.Get(blockerID); ok {
		inst.Blocking = &attackerID
	}
	return nil
}

func attackerList(m map[uuid.UUID]bool) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}

func (g *Game) handleMulligan(action.Descriptor) error {
	p := g.players[g.priorityPlayer]
	for _, id := range p.Hand {
		if inst, ok := g.arena.Get(id); ok {
			inst.Zone = types.Library
		}
	}
	p.Library = append(p.Library, p.Hand...)
	p.Hand = nil
	p.Library = shuffled(g.arena.Rand(), p.Library)
	p.MulligansTaken++
	for i := 0; i < g.config.openingHandSize(); i++ {
		g.drawInternal(p.Index)
	}
	return nil
}

func (g *Game) handleKeepHand(action.Descriptor) error {
	g.players[g.priorityPlayer].HasKeptHand = true
	return nil
}

func (g *Game) handleBottomCard(d action.Descriptor) error {
	p := g.players[g.priorityPlayer]
	if d.Slot < 0 || d.Slot >= len(p.Hand) {
		return action.ErrIndexOutOfRange
	}
	id := p.Hand[d.Slot]
	removeFrom(&p.Hand, id)
	p.Library = append(p.Library, id)
	if inst, ok := g.arena.Get(id); ok {
		inst.Zone = types.Library
	}
	return nil
}
