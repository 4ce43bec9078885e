package ability

import (
	"sort"

	"github.com/google/uuid"
)

// PendingTrigger is a triggered ability waiting to be put on the stack,
// captured at the moment its trigger condition was met.
type PendingTrigger struct {
	Ability    Ability
	Controller int
	Targets    []SelectedTarget
}

// TriggerQueue accumulates triggers that fired since the last time the
// active player would receive priority, then releases them onto the stack
// in APNAP order (rule 603.3b): the active player's triggers first, each
// player choosing their own ordering among simultaneous triggers, followed
// by each other player in turn order.
type TriggerQueue struct {
	pending []PendingTrigger
}

// NewTriggerQueue creates an empty trigger queue.
func NewTriggerQueue() *TriggerQueue {
	return &TriggerQueue{}
}

// Enqueue records a newly-fired trigger.
func (q *TriggerQueue) Enqueue(t PendingTrigger) {
	q.pending = append(q.pending, t)
}

// Pending returns the currently queued triggers without clearing them.
func (q *TriggerQueue) Pending() []PendingTrigger {
	return q.pending
}

// Drain returns the queued triggers ordered APNAP relative to
// activePlayer, then clears the queue. chooseOrder lets a player order
// their own simultaneous triggers (nil keeps queue order); it is called
// once per player that has more than one trigger in this batch.
func (q *TriggerQueue) Drain(activePlayer, playerCount int, chooseOrder func(player int, triggers []PendingTrigger) []PendingTrigger) []PendingTrigger {
	byPlayer := make(map[int][]PendingTrigger)
	for _, t := range q.pending {
		byPlayer[t.Controller] = append(byPlayer[t.Controller], t)
	}

	order := apnapOrder(activePlayer, playerCount)
	var result []PendingTrigger
	for _, player := range order {
		group := byPlayer[player]
		if len(group) == 0 {
			continue
		}
		if len(group) > 1 && chooseOrder != nil {
			group = chooseOrder(player, group)
		}
		result = append(result, group...)
	}

	q.pending = nil
	return result
}

func apnapOrder(activePlayer, playerCount int) []int {
	order := make([]int, playerCount)
	for i := 0; i < playerCount; i++ {
		order[i] = (activePlayer + i) % playerCount
	}
	return order
}

// TriggerMatcher decides whether a registered triggered ability fires in
// response to an event, and if so with which targets.
type TriggerMatcher struct {
	registry *Registry
}

// NewTriggerMatcher creates a matcher over the given ability registry.
func NewTriggerMatcher(registry *Registry) *TriggerMatcher {
	return &TriggerMatcher{registry: registry}
}

// Check scans every attached triggered ability for one matching condition,
// building a PendingTrigger for each match. controllerOf resolves a source
// card's controller (needed because APNAP ordering is by controller, not
// by source).
func (m *TriggerMatcher) Check(condition TriggerCondition, controllerOf func(source uuid.UUID) int) []PendingTrigger {
	var fired []PendingTrigger
	for source, abilities := range m.registry.AllTriggeredAbilities() {
		for _, a := range abilities {
			if a.TriggerCondition == condition {
				fired = append(fired, PendingTrigger{Ability: a, Controller: controllerOf(source)})
			}
		}
	}
	sort.Slice(fired, func(i, j int) bool { return fired[i].Ability.Source.String() < fired[j].Ability.Source.String() })
	return fired
}
