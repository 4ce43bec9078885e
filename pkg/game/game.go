package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/internal/logger"
	"github.com/mtgforge/rulesengine/pkg/ability"
	"github.com/mtgforge/rulesengine/pkg/action"
	"github.com/mtgforge/rulesengine/pkg/layers"
	"github.com/mtgforge/rulesengine/pkg/replacement"
	"github.com/mtgforge/rulesengine/pkg/sba"
	"github.com/mtgforge/rulesengine/pkg/types"
)

// Game is the orchestrator: it wires the arena, zones, turn structure, and
// every rules subsystem (layers, replacement, ability, combat, sba,
// action) into the single Reset/Apply/ActionMask/Observation surface a
// driving agent uses.
type Game struct {
	arena   *Arena
	players []*Player

	battlefield []uuid.UUID

	layerRegistry       *layers.Registry
	replacementRegistry *replacement.Registry
	abilityRegistry     *ability.Registry
	engine              *ability.ExecutionEngine
	stack               *ability.Stack
	triggerQueue        *ability.TriggerQueue
	triggerMatcher      *ability.TriggerMatcher

	turn           *TurnState
	priorityPlayer int

	config Config

	attackers map[uuid.UUID]bool              // this combat's declared attackers
	blockers  map[uuid.UUID][]uuid.UUID        // attacker -> blockers assigned to it
	damageOrder map[uuid.UUID][]uuid.UUID      // attacker -> chosen damage assignment order

	terminated bool
	reason     types.TerminationReason
	winner     int

	dispatcher *action.Dispatcher
}

// NewGame constructs an unstarted Game. Call Reset before Apply.
func NewGame() *Game {
	g := &Game{winner: -1}
	g.dispatcher = action.NewDispatcher()
	g.registerHandlers()
	return g
}

// Reset shuffles each player's deck, deals opening hands, and starts turn
// one. It returns the initial observation and legal-action mask for
// whichever player acts first (always player 0, the starting player).
func (g *Game) Reset(cfg Config) (Observation, action.Mask, error) {
	if len(cfg.Decks) < 2 {
		return Observation{}, action.Mask{}, fmt.Errorf("game: need at least 2 decks, got %d", len(cfg.Decks))
	}
	for _, d := range cfg.Decks {
		if err := d.Validate(); err != nil {
			return Observation{}, action.Mask{}, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
		}
	}

	g.config = cfg
	g.arena = NewArena(cfg.Seed)
	g.layerRegistry = layers.NewRegistry()
	g.replacementRegistry = replacement.NewRegistry()
	g.abilityRegistry = ability.NewRegistry()
	g.engine = ability.NewExecutionEngine(g)
	g.stack = ability.NewStack(len(cfg.Decks), g.engine)
	g.triggerQueue = ability.NewTriggerQueue()
	g.triggerMatcher = ability.NewTriggerMatcher(g.abilityRegistry)
	g.battlefield = nil
	g.attackers = make(map[uuid.UUID]bool)
	g.blockers = make(map[uuid.UUID][]uuid.UUID)
	g.damageOrder = make(map[uuid.UUID][]uuid.UUID)
	g.terminated = false
	g.reason = types.NotTerminated
	g.winner = -1

	g.players = make([]*Player, len(cfg.Decks))
	for i, d := range cfg.Decks {
		p := NewPlayer(i, cfg.startingLifeTotal())
		for _, c := range d.Main {
			inst := g.arena.Create(c, i)
			p.Library = append(p.Library, inst.ID)
		}
		p.Library = shuffled(g.arena.Rand(), p.Library)
		g.players[i] = p
	}

	g.turn = NewTurnState(len(g.players))
	g.priorityPlayer = g.turn.ActivePlayer

	for _, p := range g.players {
		for i := 0; i < g.config.openingHandSize(); i++ {
			g.drawInternal(p.Index)
		}
	}

	logger.LogGame("game reset: %d players, seed %d", len(g.players), cfg.Seed)
	return g.Observation(), g.ActionMask(), nil
}

func shuffled(r interface{ Intn(int) int }, ids []uuid.UUID) []uuid.UUID {
	out := append([]uuid.UUID{}, ids...)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Apply submits the driving agent's choice of action index for whoever
// currently holds priority, then runs the internal rules loop (layers,
// state-based actions, triggers, priority/stack resolution, phase
// advancement) until either player must make another decision or the
// game ends.
func (g *Game) Apply(index int) (Observation, action.Mask, bool, error) {
	if g.terminated {
		return g.Observation(), action.Mask{}, true, ErrGameOver
	}

	mask := g.ActionMask()
	if err := g.dispatcher.Dispatch(index, mask); err != nil {
		return g.Observation(), mask, g.terminated, err
	}

	g.runToNextDecision()
	return g.Observation(), g.ActionMask(), g.terminated, nil
}

// runToNextDecision repeatedly applies the state-based-action fixpoint,
// drains triggered abilities onto the stack, and advances priority/phases
// until the active decision-maker must choose again or the game ends.
func (g *Game) runToNextDecision() {
	const maxSteps = 2000
	for step := 0; step < maxSteps && !g.terminated; step++ {
		g.recalculateLayers()

		sba.RunToFixpoint(func() []sba.Action {
			result := sba.Check(g.snapshotView(), g.chooseLegendCopy)
			g.applySBAActions(result)
			return result
		}, 10)

		g.checkWinLossConditions()
		if g.terminated {
			return
		}

		if g.drainTriggers() {
			continue
		}

		// A real decision point: someone holds priority. Phase and stack
		// advancement only happen once every player has actually passed
		// priority in succession (pkg/ability.Stack.PassPriority), handled
		// directly in handlePassPriority rather than auto-advanced here.
		return
	}
	if !g.terminated {
		g.terminated = true
		g.reason = types.TruncatedStepLimit
		logger.LogGame("game truncated: exceeded %d internal steps without reaching a decision", maxSteps)
	}
}

func (g *Game) recalculateLayers() {
	base := make(map[uuid.UUID]layers.Characteristics)
	for _, id := range g.battlefield {
		inst, ok := g.arena.Get(id)
		if !ok {
			continue
		}
		base[id] = layers.BaseCharacteristicsOf(inst.Def, inst.FaceIndex, inst.Controller, inst.Counters)
	}
	g.layerRegistry.Recalculate(base)
}

// CharacteristicsOf returns the current post-layer characteristics for a
// battlefield permanent, recalculating if necessary.
func (g *Game) CharacteristicsOf(id uuid.UUID) (layers.Characteristics, bool) {
	base := make(map[uuid.UUID]layers.Characteristics)
	inst, ok := g.arena.Get(id)
	if !ok {
		return layers.Characteristics{}, false
	}
	for _, bid := range g.battlefield {
		binst, ok := g.arena.Get(bid)
		if !ok {
			continue
		}
		base[bid] = layers.BaseCharacteristicsOf(binst.Def, binst.FaceIndex, binst.Controller, binst.Counters)
	}
	result := g.layerRegistry.Recalculate(base)
	c, ok := result[inst.ID]
	return c, ok
}
