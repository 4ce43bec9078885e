package ability

import "errors"

var (
	ErrCannotAfford       = errors.New("ability: cannot afford cost")
	ErrWrongTiming        = errors.New("ability: timing restriction not satisfied")
	ErrUsesExhausted      = errors.New("ability: no activations remaining this turn")
	ErrInvalidTargets     = errors.New("ability: target selection does not satisfy target specs")
	ErrNoLegalTargets     = errors.New("ability: no legal targets available")
	ErrSourceNotOnStack   = errors.New("ability: stack item not found")
	ErrStackEmpty         = errors.New("stack: no item to resolve")
	ErrAlreadyCountered   = errors.New("stack: item already countered")
	ErrSplitSecondActive  = errors.New("stack: cannot respond while split second is active")
	ErrPriorityOutOfTurn  = errors.New("priority: player does not currently hold priority")
)
