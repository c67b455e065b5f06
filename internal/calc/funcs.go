package calc

import (
	"fmt"
	"math"
)

const (
	FuncSin Func = iota
	FuncCos
	FuncTan
	FuncAsin
	FuncAcos
	FuncAtan
	FuncLn
	FuncLog
	FuncSqrt
	FuncSquare
	FuncCube
	FuncExp10
	FuncExp
	FuncRecip
	FuncAbs
	FuncFact
	FuncPi
	FuncE
	numFuncs
)

// maxFactorial is the largest n whose factorial fits in a float64.
const maxFactorial = 170

// Func is a unary function applied to the display value.
type Func int

var funcNames = [numFuncs]string{
	FuncSin:    "sin",
	FuncCos:    "cos",
	FuncTan:    "tan",
	FuncAsin:   "asin",
	FuncAcos:   "acos",
	FuncAtan:   "atan",
	FuncLn:     "ln",
	FuncLog:    "log",
	FuncSqrt:   "sqrt",
	FuncSquare: "x²",
	FuncCube:   "x³",
	FuncExp10:  "10^x",
	FuncExp:    "e^x",
	FuncRecip:  "1/x",
	FuncAbs:    "abs",
	FuncFact:   "fact",
	FuncPi:     "pi",
	FuncE:      "e",
}

// aliases are alternative key labels.
var funcAliases = map[string]Func{
	"√":   FuncSqrt,
	"x^2": FuncSquare,
	"x^3": FuncCube,
	"10ˣ": FuncExp10,
	"eˣ":  FuncExp,
	"|x|": FuncAbs,
	"n!":  FuncFact,
	"π":   FuncPi,
}

func (f Func) String() string {
	if f < 0 || f >= numFuncs {
		panic("unknown func")
	}
	return funcNames[f]
}

// ParseFunc maps a key label to a function.
func ParseFunc(label string) (Func, error) {
	for f, name := range funcNames {
		if name == label {
			return Func(f), nil
		}
	}
	if f, ok := funcAliases[label]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownFunc, label)
}

// apply computes f(v). Arithmetic faults are reported as NaN, only the
// factorial returns an error.
func (f Func) apply(v float64, mode AngleMode) (float64, error) {
	switch f {
	case FuncSin:
		return math.Sin(mode.toRadians(v)), nil
	case FuncCos:
		return math.Cos(mode.toRadians(v)), nil
	case FuncTan:
		return math.Tan(mode.toRadians(v)), nil
	case FuncAsin:
		return mode.fromRadians(math.Asin(v)), nil
	case FuncAcos:
		return mode.fromRadians(math.Acos(v)), nil
	case FuncAtan:
		return mode.fromRadians(math.Atan(v)), nil
	case FuncLn:
		return logOf(v, math.Log), nil
	case FuncLog:
		return logOf(v, math.Log10), nil
	case FuncSqrt:
		return math.Sqrt(v), nil
	case FuncSquare:
		return v * v, nil
	case FuncCube:
		return v * v * v, nil
	case FuncExp10:
		return math.Pow(10, v), nil
	case FuncExp:
		return math.Exp(v), nil
	case FuncRecip:
		if v == 0 {
			return math.NaN(), nil
		}
		return 1 / v, nil
	case FuncAbs:
		return math.Abs(v), nil
	case FuncFact:
		return factorial(v)
	case FuncPi:
		return math.Pi, nil
	case FuncE:
		return math.E, nil
	default:
		panic("unknown func")
	}
}

// logOf applies a logarithm, mapping non-positive input to NaN.
// math.Log(0) would otherwise yield -Inf.
func logOf(v float64, log func(float64) float64) float64 {
	if v <= 0 {
		return math.NaN()
	}
	return log(v)
}

func factorial(v float64) (float64, error) {
	if v < 0 || v > maxFactorial || v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: factorial of %v", ErrDomain, v)
	}
	r := 1.0
	for i := 2; i <= int(v); i++ {
		r *= float64(i)
	}
	return r, nil
}
