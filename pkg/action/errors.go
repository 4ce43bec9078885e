package action

import "errors"

var (
	ErrIndexOutOfRange = errors.New("action: index out of the fixed action space range")
	ErrIllegalAction   = errors.New("action: selected index is not currently legal")
)
