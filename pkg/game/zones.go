package game

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/pkg/ability"
	"github.com/mtgforge/rulesengine/pkg/card"
	"github.com/mtgforge/rulesengine/pkg/layers"
	"github.com/mtgforge/rulesengine/pkg/replacement"
	"github.com/mtgforge/rulesengine/pkg/types"
)

// MoveCard is the single mutator that changes an instance's zone. It
// enforces exclusive zone membership (removing from the source zone
// before adding to the destination) and resets battlefield-only state
// per rule 613/614 whenever a card leaves the battlefield.
func (g *Game) MoveCard(id uuid.UUID, to types.Zone) error {
	inst, ok := g.arena.Get(id)
	if !ok {
		return ErrUnknownInstance
	}
	owner := g.players[inst.OwnerIdx]
	controller := g.players[inst.Controller]

	switch inst.Zone {
	case types.Library:
		removeFrom(&owner.Library, id)
	case types.Hand:
		removeFrom(&owner.Hand, id)
	case types.Battlefield:
		removeFrom(&g.battlefield, id)
	case types.Graveyard:
		removeFrom(&owner.Graveyard, id)
	case types.Exile:
		removeFrom(&owner.Exile, id)
	case types.Stack:
		// stack membership is tracked by pkg/ability.Stack itself
	}

	if inst.Zone == types.Battlefield && to != types.Battlefield {
		inst.ResetTemporaryState()
		g.layerRegistry.Deregister(id)
		g.replacementRegistry.Deregister(id)
		g.abilityRegistry.Detach(id)
	}

	switch to {
	case types.Library:
		owner.Library = append([]uuid.UUID{id}, owner.Library...)
	case types.Hand:
		owner.Hand = append(owner.Hand, id)
	case types.Battlefield:
		inst.Controller = controller.Index
		inst.EnteredThisTurn = true
		inst.SummoningSick = true
		inst.TimestampAdded = g.arena.NextTimestamp()
		g.battlefield = append(g.battlefield, id)
		g.attachParsedAbilities(inst)
		ev, _ := g.applyReplacement(replacement.Event{
			Kind: replacement.EntersBattlefield, Source: id, Affected: id,
			Data: map[string]interface{}{"tapped": false},
		})
		if tapped, _ := ev.Data["tapped"].(bool); tapped {
			inst.Tapped = true
		}
		g.queueTriggers(ability.EntersTheBattlefield)
	case types.Graveyard:
		owner.Graveyard = append(owner.Graveyard, id)
	case types.Exile:
		owner.Exile = append(owner.Exile, id)
	}

	inst.Zone = to
	return nil
}

// RemoveFromPlay deletes a token instance entirely, matching rule 111.7:
// a token that leaves the battlefield ceases to exist as a state-based
// action, rather than continuing on to whatever zone it would otherwise go.
func (g *Game) RemoveFromPlay(id uuid.UUID) {
	removeFrom(&g.battlefield, id)
	g.layerRegistry.Deregister(id)
	g.replacementRegistry.Deregister(id)
	g.abilityRegistry.Detach(id)
	g.arena.Remove(id)
}

// attachParsedAbilities parses a permanent's oracle text into structured
// abilities and registers both the ability-registry entries (for
// activation/triggering) and any static anthem effects with the layer
// system directly, since static abilities don't resolve through the stack.
func (g *Game) attachParsedAbilities(inst *card.Instance) {
	parsed := ability.ParseAbilities(inst.Def.OracleText, inst.ID)
	g.abilityRegistry.Attach(inst.ID, parsed)
	g.attachReplacementEffects(inst)
	for _, a := range parsed {
		if a.Kind != ability.Static {
			continue
		}
		for _, effect := range a.Effects {
			if effect.Kind != ability.PumpCreature {
				continue
			}
			power, toughness := effect.Value/100, effect.Value%100
			target := layers.Target{DynamicOf: func(c layers.Characteristics) bool {
				return c.Controller == inst.Controller
			}}
			if effect.Description == "others" {
				selfID := inst.ID
				target.Exclude = &selfID
			}
			g.layerRegistry.Register(layers.Effect{
				ID: uuid.New(), Source: inst.ID, Layer: layers.Layer7c,
				Timestamp: g.layerRegistry.NextTimestamp(), Duration: layers.Permanent,
				Target: target,
				ApplyPT: func(c *layers.Characteristics) {
					c.Power += power
					c.Toughness += toughness
				},
			})
		}
	}
}

// attachReplacementEffects recognizes the handful of oracle-text patterns
// that describe replacement effects (rule 616) rather than activated,
// triggered, or static layer effects, and registers them directly since
// pkg/ability's parser has no replacement-effect vocabulary of its own.
func (g *Game) attachReplacementEffects(inst *card.Instance) {
	text := strings.ToLower(inst.Def.OracleText)
	id := inst.ID

	if strings.Contains(text, "enters the battlefield tapped") {
		g.replacementRegistry.Register(replacement.EntersBattlefield, replacement.Entry{
			Source:    id,
			Predicate: func(e replacement.Event) bool { return e.Affected == id },
			Rewriter: func(e replacement.Event) (replacement.Event, bool) {
				e.Data["tapped"] = true
				return e, false
			},
		})
	}
	if strings.Contains(text, "doesn't untap during your untap step") ||
		strings.Contains(text, "doesn't untap during its controller's untap step") {
		g.replacementRegistry.Register(replacement.Untap, replacement.Entry{
			Source:    id,
			Predicate: func(e replacement.Event) bool { return e.Affected == id },
			Rewriter: func(e replacement.Event) (replacement.Event, bool) {
				return e, true
			},
		})
	}
}

func (g *Game) drawInternal(player int) {
	p := g.players[player]
	_, suppressed := g.applyReplacement(replacement.Event{
		Kind: replacement.CardDrawn,
		Data: map[string]interface{}{"player": player},
	})
	if suppressed {
		return
	}
	if len(p.Library) == 0 {
		p.attemptedEmptyDraw = true
		return
	}
	id := p.Library[0]
	p.Library = p.Library[1:]
	p.Hand = append(p.Hand, id)
	if inst, ok := g.arena.Get(id); ok {
		inst.Zone = types.Hand
	}
}
