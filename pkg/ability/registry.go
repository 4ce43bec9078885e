package ability

import "github.com/google/uuid"

// Registry tracks the abilities a battlefield card currently grants,
// separated by kind so activation/trigger/static checks don't have to
// filter a combined slice on every query.
type Registry struct {
	bySource map[uuid.UUID][]Ability
}

// NewRegistry creates an empty ability registry.
func NewRegistry() *Registry {
	return &Registry{bySource: make(map[uuid.UUID][]Ability)}
}

// Attach records the abilities parsed for a source card, replacing any
// previously attached set (used when a card's oracle text changes, e.g.
// after becoming a copy or transforming).
func (r *Registry) Attach(source uuid.UUID, abilities []Ability) {
	r.bySource[source] = abilities
}

// Detach removes every ability bound to source, e.g. when it leaves the
// battlefield.
func (r *Registry) Detach(source uuid.UUID) {
	delete(r.bySource, source)
}

// Abilities returns every ability bound to source.
func (r *Registry) Abilities(source uuid.UUID) []Ability {
	return r.bySource[source]
}

// ActivatedAbilities returns only the activated abilities bound to source.
func (r *Registry) ActivatedAbilities(source uuid.UUID) []Ability {
	return r.filterKind(source, Activated)
}

// TriggeredAbilities returns only the triggered abilities bound to source.
func (r *Registry) TriggeredAbilities(source uuid.UUID) []Ability {
	return r.filterKind(source, Triggered)
}

// StaticAbilities returns only the static abilities bound to source.
func (r *Registry) StaticAbilities(source uuid.UUID) []Ability {
	return r.filterKind(source, Static)
}

// ManaAbilities returns only the mana abilities bound to source.
func (r *Registry) ManaAbilities(source uuid.UUID) []Ability {
	return r.filterKind(source, ManaAbility)
}

func (r *Registry) filterKind(source uuid.UUID, k Kind) []Ability {
	var out []Ability
	for _, a := range r.bySource[source] {
		if a.Kind == k {
			out = append(out, a)
		}
	}
	return out
}

// AllTriggeredAbilities returns every triggered ability across every
// attached source, for scanning on a given game event.
func (r *Registry) AllTriggeredAbilities() map[uuid.UUID][]Ability {
	out := make(map[uuid.UUID][]Ability)
	for source, abilities := range r.bySource {
		for _, a := range abilities {
			if a.Kind == Triggered {
				out[source] = append(out[source], a)
			}
		}
	}
	return out
}

// MarkUsed increments UsedThisTurn on the attached ability with the given
// ID, since slices returned by the filter methods are copies and can't be
// mutated in place by the caller.
func (r *Registry) MarkUsed(source, abilityID uuid.UUID) {
	abilities := r.bySource[source]
	for i := range abilities {
		if abilities[i].ID == abilityID {
			abilities[i].UsedThisTurn++
			break
		}
	}
	r.bySource[source] = abilities
}

// ResetTurnUsage clears UsedThisTurn on every attached ability except
// once-per-game ones (UsesPerTurn -1), called during the cleanup step.
func (r *Registry) ResetTurnUsage() {
	for source, abilities := range r.bySource {
		for i := range abilities {
			if abilities[i].UsesPerTurn == -1 {
				continue
			}
			abilities[i].UsedThisTurn = 0
		}
		r.bySource[source] = abilities
	}
}
