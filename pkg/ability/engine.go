package ability

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/internal/logger"
	"github.com/mtgforge/rulesengine/pkg/types"
)

// GameState is the slice of game state the ability engine needs in order
// to resolve effects and check activation legality. It is implemented by
// pkg/game; defining it here (rather than importing pkg/game) keeps the
// dependency graph acyclic, the same pattern the engine's original author
// used to decouple ability resolution from the concrete game loop.
type GameState interface {
	ActivePlayer() int
	PriorityPlayer() int
	PlayerCount() int
	CurrentPhase() types.Phase

	DrawCards(player int, n int)
	DealDamageToPlayer(source uuid.UUID, player int, amount int)
	DealDamageToPermanent(source, target uuid.UUID, amount int)
	GainLife(player int, amount int)
	LoseLife(player int, amount int)
	AddMana(player int, mt types.ManaType, amount int)
	Tap(instance uuid.UUID) error
	Untap(instance uuid.UUID)
	DestroyPermanent(instance uuid.UUID)
	CounterSpell(stackItemID uuid.UUID)
	ReturnToHand(instance uuid.UUID)
	DiscardCards(player int, n int)
	PumpPermanent(instance uuid.UUID, power, toughness int, duration EffectDuration)
	ChangeController(instance uuid.UUID, newController int)
	PreventDamage(instance uuid.UUID, amount int)

	CanPayCost(player int, cost Cost) bool
	PayCost(player int, cost Cost) error

	ControllerOf(instance uuid.UUID) int
}

// ExecutionEngine resolves abilities and spells against a GameState.
type ExecutionEngine struct {
	state GameState
}

// NewExecutionEngine creates an engine bound to the given game state.
func NewExecutionEngine(state GameState) *ExecutionEngine {
	return &ExecutionEngine{state: state}
}

// Resolution reports how resolving a stack item went, distinguishing a
// normal resolution from one cut short by a rules check (e.g. all targets
// became illegal, matching rule 608.2b's "fizzle").
type Resolution struct {
	Resolved bool
	Fizzled  bool
}

// ResolveAbility applies every effect of ability in order against targets.
// A targeted effect whose target has become illegal is skipped rather
// than failing the whole ability (rule 608.2b applies per-target, not
// per-spell, for effects that have multiple targets).
func (e *ExecutionEngine) ResolveAbility(ability *Ability, controller int, targets []SelectedTarget) (Resolution, error) {
	if len(ability.Effects) == 0 {
		return Resolution{Resolved: true}, nil
	}

	anyResolved := false
	targetIdx := 0
	for _, effect := range ability.Effects {
		consumed := effectTargetCount(effect)
		var effectTargets []SelectedTarget
		if targetIdx+consumed <= len(targets) {
			effectTargets = targets[targetIdx : targetIdx+consumed]
		}
		targetIdx += consumed
		if consumed > 0 && effectTargets == nil {
			logger.LogCard("effect %v for ability %s skipped: missing targets", effect.Kind, ability.Name)
			continue
		}

		if err := e.applyEffect(ability, effect, controller, effectTargets); err != nil {
			logger.LogCard("effect %v for ability %s did not apply: %v", effect.Kind, ability.Name, err)
			continue
		}
		anyResolved = true
	}

	if !anyResolved {
		return Resolution{Resolved: false, Fizzled: true}, nil
	}
	return Resolution{Resolved: true}, nil
}

func effectTargetCount(e Effect) int {
	n := 0
	for _, t := range e.Targets {
		c := t.Count
		if c == 0 {
			c = 1
		}
		n += c
	}
	return n
}

func (e *ExecutionEngine) applyEffect(ability *Ability, effect Effect, controller int, targets []SelectedTarget) error {
	switch effect.Kind {
	case DrawCards:
		n := effect.Value
		if n < 0 {
			n = 0 // X effects are resolved to a concrete Value before reaching here
		}
		e.state.DrawCards(controller, n)
	case DealDamage:
		for _, t := range targets {
			switch {
			case t.Player != nil:
				e.state.DealDamageToPlayer(ability.Source, *t.Player, effect.Value)
			case t.Permanent != nil:
				e.state.DealDamageToPermanent(ability.Source, *t.Permanent, effect.Value)
			default:
				return ErrInvalidTargets
			}
		}
	case GainLife:
		e.state.GainLife(controller, effect.Value)
	case LoseLife:
		e.state.LoseLife(controller, effect.Value)
	case AddMana:
		e.state.AddMana(controller, effect.ManaType, effect.Value)
	case PumpCreature:
		power, toughness := effect.Value/100, effect.Value%100
		for _, t := range targets {
			if t.Permanent != nil {
				e.state.PumpPermanent(*t.Permanent, power, toughness, effect.Duration)
			}
		}
	case DestroyPermanent:
		for _, t := range targets {
			if t.Permanent != nil {
				e.state.DestroyPermanent(*t.Permanent)
			}
		}
	case DiscardCards:
		e.state.DiscardCards(controller, effect.Value)
	case ReturnToHand:
		for _, t := range targets {
			if t.Permanent != nil {
				e.state.ReturnToHand(*t.Permanent)
			}
		}
	case TapPermanent:
		for _, t := range targets {
			if t.Permanent != nil {
				if err := e.state.Tap(*t.Permanent); err != nil {
					return err
				}
			}
		}
	case UntapPermanent:
		for _, t := range targets {
			if t.Permanent != nil {
				e.state.Untap(*t.Permanent)
			}
		}
	case ChangeControl:
		for _, t := range targets {
			if t.Permanent != nil {
				e.state.ChangeController(*t.Permanent, controller)
			}
		}
	case PreventDamage:
		for _, t := range targets {
			if t.Permanent != nil {
				e.state.PreventDamage(*t.Permanent, effect.Value)
			}
		}
	case CounterSpellEffect, SearchLibrary, CreateToken, RawNoOp:
		// Deliberately inert: CounterSpellEffect/SearchLibrary/CreateToken are
		// resolved by the stack directly (they need stack-item/library access
		// this interface doesn't expose); RawNoOp has no effect.
	default:
		return fmt.Errorf("ability: unhandled effect kind %v", effect.Kind)
	}
	return nil
}
