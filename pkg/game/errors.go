package game

import "errors"

var (
	ErrNotYourPriority     = errors.New("game: action submitted by a player who does not hold priority")
	ErrIllegalZoneMove     = errors.New("game: card not found in the expected source zone")
	ErrLandDropUsed        = errors.New("game: player has already played a land this turn")
	ErrWrongTimingForLand  = errors.New("game: lands can only be played at sorcery speed with an empty stack")
	ErrUnknownInstance     = errors.New("game: unknown card instance id")
	ErrCannotAffordCost    = errors.New("game: insufficient resources to pay the cost")
	ErrTapped              = errors.New("game: permanent is already tapped")
	ErrSummoningSick       = errors.New("game: creature cannot be tapped for costs the turn it entered")
	ErrGameOver            = errors.New("game: game has already ended")
	ErrNoSuchAbility       = errors.New("game: source has no ability at the requested slot")
	ErrInvalidDeck         = errors.New("game: deck failed validation")
	ErrWrongPhase          = errors.New("game: action is not legal in the current phase or step")
	ErrSplitSecondActive   = errors.New("game: a split second spell is on the stack; only mana abilities may be played")
)
