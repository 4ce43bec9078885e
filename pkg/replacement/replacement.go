// Package replacement implements Magic's replacement-effect system (rule
// 616): an event about to occur is matched against registered rewriters,
// any of which may substitute a different event or suppress it outright.
package replacement

import "github.com/google/uuid"

// EventKind enumerates the standard events replacement effects intercept.
type EventKind int

const (
	EntersBattlefield EventKind = iota
	Dies
	DamageDealt
	LifeLoss
	CardDrawn
	Untap
	TargetSelection
)

// Event is the event instance under consideration; Data carries
// event-specific payload (e.g. the damage amount, the drawing player).
type Event struct {
	Kind       EventKind
	Source     uuid.UUID
	Affected   uuid.UUID // the card or player the event happens to
	Controller uuid.UUID // the affected object's controller, who chooses order among applicable effects
	Data       map[string]interface{}
}

// Predicate reports whether a rewriter applies to a given event.
type Predicate func(Event) bool

// Rewriter substitutes a new event (possibly identical) or reports
// suppressed=true to mean the event does not happen at all.
type Rewriter func(Event) (replacement Event, suppressed bool)

// Entry is one registered replacement effect.
type Entry struct {
	Source    uuid.UUID
	Predicate Predicate
	Rewriter  Rewriter
}

// Registry maps event kind to its ordered list of applicable entries.
type Registry struct {
	entries map[EventKind][]Entry
}

// NewRegistry creates an empty replacement-effect registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[EventKind][]Entry)}
}

// Register adds a replacement entry for the given event kind.
func (r *Registry) Register(kind EventKind, e Entry) {
	r.entries[kind] = append(r.entries[kind], e)
}

// Deregister removes every entry registered by the given source, e.g. when
// the source leaves the battlefield.
func (r *Registry) Deregister(source uuid.UUID) {
	for kind, entries := range r.entries {
		kept := entries[:0:0]
		for _, e := range entries {
			if e.Source != source {
				kept = append(kept, e)
			}
		}
		r.entries[kind] = kept
	}
}

// Apply finds every entry applicable to event and applies them in the
// order given by chooseOrder (the affected object's controller chooses
// order per rule 616 when more than one effect could apply), stopping as
// soon as an entry suppresses the event. Returns the possibly-rewritten
// event and whether it was ultimately suppressed.
func (r *Registry) Apply(event Event, chooseOrder func(applicable []Entry) []Entry) (Event, bool) {
	var applicable []Entry
	for _, e := range r.entries[event.Kind] {
		if e.Predicate(event) {
			applicable = append(applicable, e)
		}
	}
	if len(applicable) == 0 {
		return event, false
	}

	ordered := applicable
	if chooseOrder != nil {
		ordered = chooseOrder(applicable)
	}

	current := event
	for _, e := range ordered {
		replacement, suppressed := e.Rewriter(current)
		if suppressed {
			return replacement, true
		}
		current = replacement
	}
	return current, false
}
