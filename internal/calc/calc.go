// Package calc implements a two-register scientific calculator.
//
// A Calculator holds the value being displayed, at most one captured
// operand and one pending operator. Binary operators are evaluated strictly
// left to right as they are chained; there is no precedence. Unary functions
// act on the displayed value only.
//
// Failures never escape as errors: they turn the display into "Error". Any
// operation other than ClearAll on a faulted calculator first resets it.
// Typing a digit or a decimal point then continues on the fresh state, every
// other operation is swallowed by the reset.
//
// A Calculator is not safe for concurrent use.
package calc

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	DefaultMaxDigits = 16

	// maxDigitsLimit keeps typed numbers below 1e21 so they never switch
	// to exponent notation while being entered.
	maxDigitsLimit = 20
)

// State is a snapshot of the calculator registers.
type State struct {
	Display  string
	Previous string   // captured operand, empty when absent
	Op       Operator // pending operator, OpNone when absent
	Waiting  bool     // next digit starts a new number
	Angle    AngleMode
	History  []string
}

// Calculator is the register machine.
type Calculator struct {
	display   string
	previous  string
	op        Operator
	waiting   bool
	angle     AngleMode
	history   []string
	maxDigits int
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithAngleMode sets the initial angle mode. The default is Degrees.
func WithAngleMode(m AngleMode) Option {
	return func(c *Calculator) {
		c.angle = m
	}
}

// WithMaxDigits bounds the number of digits that can be typed into one
// operand. Values outside 1..20 are ignored.
func WithMaxDigits(n int) Option {
	return func(c *Calculator) {
		if n >= 1 && n <= maxDigitsLimit {
			c.maxDigits = n
		}
	}
}

// New creates a calculator in the idle state.
func New(opts ...Option) *Calculator {
	c := &Calculator{angle: Degrees, maxDigits: DefaultMaxDigits}
	for _, opt := range opts {
		opt(c)
	}
	c.ClearAll()
	return c
}

// State returns a copy of the registers.
func (c *Calculator) State() State {
	return State{
		Display:  c.display,
		Previous: c.previous,
		Op:       c.op,
		Waiting:  c.waiting,
		Angle:    c.angle,
		History:  slices.Clone(c.history),
	}
}

// Text gives the current output of the calculator.
func (c *Calculator) Text() string {
	return c.display
}

// Pending describes the armed operation, e.g. "12 ×".
// It is empty when no operator is pending.
func (c *Calculator) Pending() string {
	if c.op == OpNone {
		return ""
	}
	return c.previous + " " + c.op.String()
}

// HistoryLen returns the number of completed evaluations.
func (c *Calculator) HistoryLen() int {
	return len(c.history)
}

// Faulted reports whether the display shows "Error".
func (c *Calculator) Faulted() bool {
	return c.display == ErrorText
}

// AngleMode returns the current angle mode.
func (c *Calculator) AngleMode() AngleMode {
	return c.angle
}

// SetAngleMode changes the angle mode.
func (c *Calculator) SetAngleMode(m AngleMode) {
	c.angle = m
}

// ToggleAngleMode switches between degrees and radians.
func (c *Calculator) ToggleAngleMode() {
	if c.angle == Degrees {
		c.angle = Radians
	} else {
		c.angle = Degrees
	}
}

// ClearAll resets the registers. Angle mode and history are kept.
func (c *Calculator) ClearAll() {
	c.display = "0"
	c.previous = ""
	c.op = OpNone
	c.waiting = false
}

// recoverFault resets a faulted calculator and reports whether it did.
func (c *Calculator) recoverFault() bool {
	if c.display != ErrorText {
		return false
	}
	c.ClearAll()
	return true
}

// InputDigit processes an input digit.
func (c *Calculator) InputDigit(d rune) error {
	if d < '0' || d > '9' {
		return fmt.Errorf("%w %q", ErrInvalidDigit, d)
	}
	c.recoverFault()
	if c.waiting || c.display == "0" {
		c.display = string(d)
		c.waiting = false
		return nil
	}
	if countDigits(c.display) >= c.maxDigits {
		return fmt.Errorf("%w (%d)", ErrDigitLimit, c.maxDigits)
	}
	c.display += string(d)
	return nil
}

// InputDot adds a decimal point unless the operand already has one.
func (c *Calculator) InputDot() {
	c.recoverFault()
	switch {
	case c.waiting:
		c.display = "0."
		c.waiting = false
	case !strings.Contains(c.display, "."):
		c.display += "."
	}
}

// Backspace undoes the last typed character of the operand.
func (c *Calculator) Backspace() {
	if c.recoverFault() || c.waiting {
		return
	}
	_, size := utf8.DecodeLastRuneInString(c.display)
	d := c.display[:len(c.display)-size]
	if d == "" || d == "-" || d == "-0" {
		d = "0"
	}
	c.display = d
}

// ToggleSign flips the sign of the display value.
func (c *Calculator) ToggleSign() {
	if c.recoverFault() {
		return
	}
	v, err := ParseDisplay(c.display)
	if err != nil {
		c.display = ErrorText
		return
	}
	switch {
	case v == 0:
		// -0 is shown as 0.
	case c.waiting:
		c.display = Format(-v)
	default:
		// Keep the operand as typed, including a trailing point.
		if strings.HasPrefix(c.display, "-") {
			c.display = c.display[1:]
		} else {
			c.display = "-" + c.display
		}
	}
}

// InputPercent divides the display value by 100.
func (c *Calculator) InputPercent() {
	if c.recoverFault() {
		return
	}
	v, err := ParseDisplay(c.display)
	if err != nil {
		c.display = ErrorText
		return
	}
	c.display = Format(v / 100)
	c.waiting = true
}

// PerformOperation applies the given operation.
//
// When an operand has just been typed after an armed operator, the pending
// operation is evaluated and next becomes the new pending operator (none for
// OpEq). Otherwise the display is captured and next is armed, replacing any
// operator pressed just before it.
func (c *Calculator) PerformOperation(next Operator) {
	if next == OpNone || c.recoverFault() {
		return
	}
	pending := next
	if next == OpEq {
		pending = OpNone
	}
	if c.previous == "" || c.op == OpNone || c.waiting {
		c.previous = c.display
		c.op = pending
		c.waiting = true
		return
	}

	result := Format(c.evaluate())
	c.history = append(c.history, fmt.Sprintf("%s %s %s = %s", c.previous, c.op, c.display, result))
	c.display = result
	c.previous = result
	c.op = pending
	c.waiting = true
}

// evaluate computes previous op display. Unparseable operands give NaN.
func (c *Calculator) evaluate() float64 {
	x, err := ParseDisplay(c.previous)
	if err != nil {
		return math.NaN()
	}
	y, err := ParseDisplay(c.display)
	if err != nil {
		return math.NaN()
	}
	return c.op.apply(x, y)
}

// ApplyFunc applies a unary function to the display value.
func (c *Calculator) ApplyFunc(fn Func) {
	if c.recoverFault() {
		return
	}
	v, err := ParseDisplay(c.display)
	if err != nil {
		c.display = ErrorText
		return
	}
	r, err := fn.apply(v, c.angle)
	if err != nil {
		// Domain fault: the rest of the state stays as it is.
		c.display = ErrorText
		return
	}
	c.display = Format(r)
	c.waiting = true
}

// Paste replaces the display with a number read from text.
// Only finite numbers are accepted, the infinity sentinels are not.
// The pasted value behaves like a computed result.
func (c *Calculator) Paste(text string) error {
	text = strings.TrimSpace(text)
	v, err := ParseDisplay(text)
	if err != nil {
		return err
	}
	if math.IsInf(v, 0) {
		return fmt.Errorf("%w: %q", ErrParse, text)
	}
	c.recoverFault()
	c.display = Format(v)
	c.waiting = true
	return nil
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}
