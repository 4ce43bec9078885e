package game

import "github.com/mtgforge/rulesengine/pkg/replacement"

// applyReplacement runs every registered replacement effect applicable to
// event (rule 616) and returns the possibly-rewritten event plus whether it
// was suppressed outright. Order among multiple applicable effects is
// normally chosen by the affected object's controller (616.1); this engine
// simplifies that choice to registration order (chooseOrder: nil), the same
// simplification DESIGN.md records for target selection.
func (g *Game) applyReplacement(event replacement.Event) (replacement.Event, bool) {
	return g.replacementRegistry.Apply(event, nil)
}
