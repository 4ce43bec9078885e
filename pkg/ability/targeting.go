package ability

import "github.com/google/uuid"

// SelectedTarget is a concrete target chosen when an ability or spell is
// put on the stack: either a card instance or a player index, never both.
type SelectedTarget struct {
	Permanent *uuid.UUID
	Player    *int
}

// TargetableCard is the minimal view of a card instance targeting needs;
// implemented by pkg/card.Instance plus whatever derived state (keywords,
// controller) the game package attaches.
type TargetableCard struct {
	ID          uuid.UUID
	Controller  int
	IsCreature  bool
	HasHexproof bool
	HasWard     bool
	Subtypes    []string
}

// ValidateTargets checks that a set of selected targets legally fills a
// spec list, given the candidate universe available at targeting time.
// ValidateTargets checks cardinality and kind, and rejects a selected
// permanent that is not among candidates or has hexproof; ward and
// protection are not checked here.
func ValidateTargets(specs []TargetSpec, selected []SelectedTarget, candidates map[uuid.UUID]TargetableCard) error {
	idx := 0
	for _, spec := range specs {
		count := spec.Count
		if count == 0 {
			count = 1
		}
		if !spec.Required && idx >= len(selected) {
			continue
		}
		for i := 0; i < count; i++ {
			if idx >= len(selected) {
				if spec.Required {
					return ErrInvalidTargets
				}
				continue
			}
			sel := selected[idx]
			idx++
			if err := checkOne(spec, sel, candidates); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkOne(spec TargetSpec, sel SelectedTarget, candidates map[uuid.UUID]TargetableCard) error {
	switch spec.Kind {
	case PlayerTarget:
		if sel.Player == nil {
			return ErrInvalidTargets
		}
		return nil
	case NoTarget:
		return nil
	default:
		if sel.Permanent == nil {
			return ErrInvalidTargets
		}
		c, ok := candidates[*sel.Permanent]
		if !ok {
			return ErrInvalidTargets
		}
		if spec.Kind == CreatureTarget && !c.IsCreature {
			return ErrInvalidTargets
		}
		if c.HasHexproof {
			return ErrInvalidTargets
		}
		return nil
	}
}

// LegalTargetsExist reports whether at least one candidate satisfies spec,
// used to decide whether a "may" targeted ability can even be put on the
// stack and whether a required-target ability fizzles for lack of targets.
func LegalTargetsExist(spec TargetSpec, candidates map[uuid.UUID]TargetableCard) bool {
	if spec.Kind == PlayerTarget || spec.Kind == NoTarget {
		return true
	}
	for _, c := range candidates {
		if spec.Kind == CreatureTarget && !c.IsCreature {
			continue
		}
		if c.HasHexproof {
			continue
		}
		return true
	}
	return false
}
