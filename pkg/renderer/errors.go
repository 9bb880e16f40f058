package renderer

import "errors"

var (
	ErrStateMismatch = errors.New("renderer: render state resolution does not match camera")
	ErrInvalidState  = errors.New("renderer: render state is corrupted")
)
