package card

import "errors"

// Error sentinels for cost parsing/payment and oracle-text parsing, per the
// engine's error taxonomy: CostError and ParseError are recovered locally
// by callers (mark the action illegal); ErrParseFailed is declared but not
// returned, since the ability parser skips text it does not recognize.
var (
	ErrInsufficientMana = errors.New("card: insufficient mana to pay cost")
	ErrInvalidCostString = errors.New("card: unparseable mana cost string")
	ErrParseFailed       = errors.New("card: oracle text fragment not understood")
)
