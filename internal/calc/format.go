package calc

import (
	"fmt"
	"math"
	"strconv"
)

// Display sentinels.
const (
	ErrorText  = "Error"
	PosInfText = "∞"
	NegInfText = "-∞"
)

// significantDigits is the precision clamp applied to every computed result.
// It absorbs binary floating point noise such as 0.1+0.2.
const significantDigits = 12

// Format renders a computed value as a display string.
func Format(v float64) string {
	switch {
	case math.IsNaN(v):
		return ErrorText
	case math.IsInf(v, 1):
		return PosInfText
	case math.IsInf(v, -1):
		return NegInfText
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', significantDigits, 64), 64)
	if err != nil {
		return ErrorText
	}
	if r == 0 {
		return "0" // also drops the sign of -0
	}
	if a := math.Abs(r); a < 1e-7 || a >= 1e21 {
		return strconv.FormatFloat(r, 'e', -1, 64)
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// ParseDisplay reads a display string back into a number.
// The infinity sentinels are accepted, "Error" and textual NaN/Inf are not.
func ParseDisplay(s string) (float64, error) {
	switch s {
	case PosInfText:
		return math.Inf(1), nil
	case NegInfText:
		return math.Inf(-1), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return v, nil
}
