package calc

import "errors"

// Faults that are resolved inside the engine and end up as the "Error"
// display. Arithmetic faults need no error value, they are NaN.
// ErrParse is also returned by Paste and ParseDisplay.
var (
	ErrParse  = errors.New("not a number")
	ErrDomain = errors.New("argument out of domain")
)

// Input rejections returned to the caller. State is unchanged when one of
// these is returned.
var (
	ErrDigitLimit      = errors.New("digit limit reached")
	ErrInvalidDigit    = errors.New("invalid digit")
	ErrUnknownFunc     = errors.New("unknown function")
	ErrUnknownOperator = errors.New("unknown operator")
	ErrUnknownAngle    = errors.New("unknown angle mode")
)
