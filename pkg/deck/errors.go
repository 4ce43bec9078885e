package deck

import "errors"

var (
	ErrDeckTooSmall  = errors.New("deck: below minimum size")
	ErrTooManyCopies = errors.New("deck: too many copies of a non-basic-land card")
)
