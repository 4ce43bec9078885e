// Package layers implements the Magic: The Gathering seven-layer
// continuous-effect pipeline: a registry of effects is applied, in a fixed
// layer order, to a snapshot of base characteristics, producing derived
// characteristics without mutating anything until the caller writes the
// result back to its own card model.
package layers

import (
	"hash/maphash"
	"sort"

	"github.com/google/uuid"
	"github.com/mtgforge/rulesengine/pkg/card"
)

// Layer identifies one of the seven layers (sublayers for layer 7).
type Layer int

const (
	LayerCopy Layer = iota + 1
	LayerControl
	LayerText
	LayerType
	LayerColor
	LayerAbility
	Layer7a
	Layer7b
	Layer7c
	Layer7d
)

// Duration describes how long a registered effect remains active.
type Duration int

const (
	Permanent Duration = iota
	EndOfTurn
	UntilYourNextTurn
	EndOfCombat
	Conditional
)

// Target selects which cards an effect affects: a fixed list, a single
// card, or a dynamic predicate evaluated against the current characteristics
// snapshot (e.g. "creatures you control").
type Target struct {
	IDs       []uuid.UUID
	Single    *uuid.UUID
	Exclude   *uuid.UUID // e.g. "other creatures you control" excludes the source itself
	DynamicOf func(c Characteristics) bool
}

func (t Target) matches(id uuid.UUID, c Characteristics) bool {
	if t.Exclude != nil && *t.Exclude == id {
		return false
	}
	if t.Single != nil {
		return *t.Single == id
	}
	if t.DynamicOf != nil {
		return t.DynamicOf(c)
	}
	for _, other := range t.IDs {
		if other == id {
			return true
		}
	}
	return false
}

// Effect is one continuous effect registered with the layer system.
type Effect struct {
	ID        uuid.UUID
	Source    uuid.UUID
	Layer     Layer
	Target    Target
	Timestamp uint64
	Duration  Duration
	Condition func() bool

	// Apply mutates the working characteristics for one affected card.
	// Exactly one of these is populated depending on Layer.
	ApplyColor   func(c *Characteristics)
	ApplyType    func(c *Characteristics)
	ApplyText    func(c *Characteristics)
	ApplyControl func(c *Characteristics, newController int)
	NewController int
	ApplyAbility func(c *Characteristics)
	ApplyPT      func(c *Characteristics)
	ApplyCopy    func(c *Characteristics)
}

// Characteristics is the derived, per-card result of running the pipeline.
type Characteristics struct {
	Name       string
	ManaCost   string
	Colors     []string
	CardTypes  []string
	Subtypes   []string
	Supertypes []string
	OracleText string
	Keywords   card.KeywordSet
	Power      int
	Toughness  int
	Loyalty    int
	Controller int

	grantedAbilities card.KeywordSet
	removedAbilities card.KeywordSet
	baseKeywords     card.KeywordSet
	liveCounters     map[string]int
}

// BaseCharacteristicsOf snapshots a card instance's pre-layer state: the
// original database definition plus live instance-level state (counters,
// controller) that later layers (7b) need to read.
func BaseCharacteristicsOf(def *card.Card, faceIndex, controller int, counters map[string]int) Characteristics {
	face := def.CurrentFace(faceIndex)
	power, toughness, loyalty := 0, 0, 0
	fmtAtoi(face.Power, &power)
	fmtAtoi(face.Toughness, &toughness)
	fmtAtoi(face.Loyalty, &loyalty)

	cardTypes, subtypes, supertypes := def.CardTypes, def.Subtypes, def.Supertypes
	if len(cardTypes) == 0 && len(subtypes) == 0 {
		cardTypes, subtypes, supertypes = card.ParseTypeLine(face.TypeLine)
	}

	return Characteristics{
		Name: face.Name, ManaCost: face.ManaCost, Colors: append([]string{}, face.Colors...),
		CardTypes: append([]string{}, cardTypes...), Subtypes: append([]string{}, subtypes...),
		Supertypes: append([]string{}, supertypes...), OracleText: face.OracleText,
		Keywords: def.Keywords, baseKeywords: def.Keywords, Power: power, Toughness: toughness,
		Loyalty: loyalty, Controller: controller, liveCounters: counters,
	}
}

func fmtAtoi(s string, out *int) {
	n := 0
	neg := false
	started := false
	for _, r := range s {
		switch {
		case r == '-' && !started:
			neg = true
			started = true
		case r >= '0' && r <= '9':
			n = n*10 + int(r-'0')
			started = true
		default:
			return
		}
	}
	if neg {
		n = -n
	}
	*out = n
}

// Registry owns the set of currently-registered continuous effects and the
// single derived-characteristics cache, invalidated by a hash of
// (battlefield contents, registry size) as described by the layer system's
// documented timestamp-order fallback for unresolved cross-layer
// dependencies.
type Registry struct {
	effects   []Effect
	nextStamp uint64

	cacheKey    uint64
	cacheValid  bool
	cacheResult map[uuid.UUID]Characteristics
}

// NewRegistry creates an empty effect registry.
func NewRegistry() *Registry {
	return &Registry{cacheResult: make(map[uuid.UUID]Characteristics)}
}

// NextTimestamp returns the next monotonically increasing registration
// timestamp, used both for layer effects and for any other subsystem that
// needs a game-wide, order-preserving counter.
func (r *Registry) NextTimestamp() uint64 {
	r.nextStamp++
	return r.nextStamp
}

// Register adds an effect to the registry, assigning it a timestamp if it
// doesn't already have one, and invalidates the cache.
func (r *Registry) Register(e Effect) Effect {
	if e.Timestamp == 0 {
		e.Timestamp = r.NextTimestamp()
	}
	r.effects = append(r.effects, e)
	r.cacheValid = false
	return e
}

// Deregister removes every effect whose source is the given card (used when
// the source leaves the zone that granted the effect, or its duration ends).
func (r *Registry) Deregister(source uuid.UUID) {
	kept := r.effects[:0:0]
	for _, e := range r.effects {
		if e.Source != source {
			kept = append(kept, e)
		}
	}
	r.effects = kept
	r.cacheValid = false
}

// DeregisterExpired removes every effect whose Duration equals d, called at the appropriate cleanup point (end of turn, end of combat, ...).
func (r *Registry) DeregisterExpired(d Duration) {
	kept := r.effects[:0:0]
	for _, e := range r.effects {
		if e.Duration != d {
			kept = append(kept, e)
		}
	}
	r.effects = kept
	r.cacheValid = false
}

// Count returns the number of currently registered effects.
func (r *Registry) Count() int { return len(r.effects) }

// Recalculate runs the full seven-layer pipeline over the given base
// characteristics snapshot and returns the derived result per card. Given
// an unchanged registry and unchanged base snapshot, two calls produce an
// identical result (layer determinism / idempotence).
func (r *Registry) Recalculate(base map[uuid.UUID]Characteristics) map[uuid.UUID]Characteristics {
	key := cacheKeyOf(base, len(r.effects))
	if r.cacheValid && key == r.cacheKey {
		return cloneResult(r.cacheResult)
	}

	working := make(map[uuid.UUID]Characteristics, len(base))
	for id, c := range base {
		working[id] = c
	}

	sorted := r.sortedByLayer()
	for _, layer := range []Layer{LayerCopy, LayerControl, LayerText, LayerType, LayerColor, LayerAbility, Layer7a, Layer7b, Layer7c, Layer7d} {
		for _, e := range sorted[layer] {
			if e.Condition != nil && !e.Condition() {
				continue
			}
			for id, c := range working {
				if !e.Target.matches(id, c) {
					continue
				}
				applyOne(layer, e, &c)
				working[id] = c
			}
		}
		if layer == LayerAbility {
			for id, c := range working {
				c.Keywords = c.baseKeywords.Union(c.grantedAbilities).Diff(c.removedAbilities)
				working[id] = c
			}
		}
		if layer == Layer7b {
			for id, c := range working {
				c = applyCounters(c)
				working[id] = c
			}
		}
	}

	for id, c := range working {
		if len(c.CardTypes) > 0 && !containsAny(c.CardTypes, "Creature") && c.Power == 0 && c.Toughness == 0 {
			// Non-creature permanents default to 0/0 derived P/T unless a
			// characteristic-defining effect set one explicitly (already applied above).
		}
		working[id] = c
	}

	r.cacheKey = key
	r.cacheValid = true
	r.cacheResult = working
	return cloneResult(working)
}

func applyCounters(c Characteristics) Characteristics {
	plusMinus := c.liveCounters["+1/+1"] - c.liveCounters["-1/-1"]
	c.Power += plusMinus
	c.Toughness += plusMinus
	return c
}

func applyOne(layer Layer, e Effect, c *Characteristics) {
	switch layer {
	case LayerCopy:
		if e.ApplyCopy != nil {
			e.ApplyCopy(c)
		}
	case LayerControl:
		if e.ApplyControl != nil {
			e.ApplyControl(c, e.NewController)
		}
	case LayerText:
		if e.ApplyText != nil {
			e.ApplyText(c)
		}
	case LayerType:
		if e.ApplyType != nil {
			e.ApplyType(c)
		}
	case LayerColor:
		if e.ApplyColor != nil {
			e.ApplyColor(c)
		}
	case LayerAbility:
		if e.ApplyAbility != nil {
			before := c.Keywords
			e.ApplyAbility(c)
			granted := c.Keywords.Diff(before)
			removed := before.Diff(c.Keywords)
			c.grantedAbilities = c.grantedAbilities.Union(granted)
			c.removedAbilities = c.removedAbilities.Union(removed)
			c.Keywords = before // restored; final union happens once per layer pass
		}
	case Layer7a, Layer7c, Layer7d:
		if e.ApplyPT != nil {
			e.ApplyPT(c)
		}
	}
}

func containsAny(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

func (r *Registry) sortedByLayer() map[Layer][]Effect {
	byLayer := make(map[Layer][]Effect)
	for _, e := range r.effects {
		byLayer[e.Layer] = append(byLayer[e.Layer], e)
	}
	for _, bucket := range byLayer {
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].Timestamp < bucket[j].Timestamp })
	}
	return byLayer
}

func cacheKeyOf(base map[uuid.UUID]Characteristics, effectCount int) uint64 {
	var h maphash.Hash
	h.SetSeed(cacheSeed)
	ids := make([]uuid.UUID, 0, len(base))
	for id := range base {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	for _, id := range ids {
		b, _ := id.MarshalBinary()
		_, _ = h.Write(b)
	}
	var countBytes [8]byte
	n := effectCount
	for i := 0; i < 8; i++ {
		countBytes[i] = byte(n)
		n >>= 8
	}
	_, _ = h.Write(countBytes[:])
	return h.Sum64()
}

var cacheSeed = maphash.MakeSeed()

func cloneResult(in map[uuid.UUID]Characteristics) map[uuid.UUID]Characteristics {
	out := make(map[uuid.UUID]Characteristics, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
