package calc

import (
	"fmt"
	"math"
)

const (
	OpNone Operator = iota
	OpEq
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
)

// Operator is a binary operation. OpEq is the evaluate pseudo-operator and
// OpNone marks the absence of a pending operator.
type Operator int

func (op Operator) String() string {
	switch op {
	case OpNone:
		return ""
	case OpEq:
		return "="
	case OpAdd:
		return "+"
	case OpSub:
		return "−"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	case OpPow:
		return "^"
	default:
		panic("unknown op")
	}
}

// ParseOperator maps a key label to an operator. Both the display symbols
// and their ASCII keyboard equivalents are accepted.
func ParseOperator(label string) (Operator, error) {
	switch label {
	case "=":
		return OpEq, nil
	case "+":
		return OpAdd, nil
	case "−", "-":
		return OpSub, nil
	case "×", "*", "x":
		return OpMul, nil
	case "÷", "/":
		return OpDiv, nil
	case "^", "power", "xʸ":
		return OpPow, nil
	default:
		return OpNone, fmt.Errorf("%w %q", ErrUnknownOperator, label)
	}
}

// apply computes the operation.
func (op Operator) apply(x, y float64) float64 {
	switch op {
	case OpNone, OpEq:
		return y
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		// Division by zero is undefined for every x, including the
		// cases where IEEE arithmetic would give a signed infinity.
		if y == 0 {
			return math.NaN()
		}
		return x / y
	case OpPow:
		return math.Pow(x, y)
	default:
		panic("unknown op")
	}
}

const (
	Degrees AngleMode = iota
	Radians
)

// AngleMode selects the unit of trigonometric arguments.
type AngleMode int

func (m AngleMode) String() string {
	switch m {
	case Degrees:
		return "DEG"
	case Radians:
		return "RAD"
	default:
		panic("unknown angle mode")
	}
}

// ParseAngleMode parses "DEG" or "RAD".
func ParseAngleMode(s string) (AngleMode, error) {
	switch s {
	case "DEG", "deg":
		return Degrees, nil
	case "RAD", "rad":
		return Radians, nil
	default:
		return Degrees, fmt.Errorf("%w %q", ErrUnknownAngle, s)
	}
}

// toRadians converts a trig argument given in mode m.
func (m AngleMode) toRadians(v float64) float64 {
	if m == Degrees {
		return v * math.Pi / 180
	}
	return v
}

// fromRadians converts an inverse trig result into mode m.
func (m AngleMode) fromRadians(v float64) float64 {
	if m == Degrees {
		return v * 180 / math.Pi
	}
	return v
}
