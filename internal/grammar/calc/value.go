package calc

import (
	"errors"
	"math"
	"strconv"
)

// Value is an integer or a float. Mixed arithmetic promotes to float.
type Value struct {
	IsFloat bool
	Int     int64
	Float   float64
}

// Int wraps an integer.
func Int(v int64) Value { return Value{Int: v} }

// Float wraps a float.
func Float(v float64) Value { return Value{IsFloat: true, Float: v} }

func (v Value) String() string {
	if v.IsFloat {
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	}
	return strconv.FormatInt(v.Int, 10)
}

// F returns the value as float64.
func (v Value) F() float64 {
	if v.IsFloat {
		return v.Float
	}
	return float64(v.Int)
}

// IsZero reports whether v is 0 or 0.0.
func (v Value) IsZero() bool {
	if v.IsFloat {
		return v.Float == 0
	}
	return v.Int == 0
}

var (
	errOverflow = errors.New("integer overflow")
	errDivZero  = errors.New("division by zero")
)

// apply evaluates x op y.
func apply(op string, x, y Value) (Value, error) {
	if (op == "/" || op == "%") && y.IsZero() {
		return Value{}, errDivZero
	}
	if x.IsFloat || y.IsFloat {
		a, b := x.F(), y.F()
		switch op {
		case "+":
			return Float(a + b), nil
		case "-":
			return Float(a - b), nil
		case "*":
			return Float(a * b), nil
		case "/":
			return Float(a / b), nil
		case "%":
			return Float(math.Mod(a, b)), nil
		}
		return Value{}, errors.New("unknown operator " + op)
	}

	a, b := x.Int, y.Int
	switch op {
	case "+":
		if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
			return Value{}, errOverflow
		}
		return Int(a + b), nil
	case "-":
		if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
			return Value{}, errOverflow
		}
		return Int(a - b), nil
	case "*":
		if a != 0 && b != 0 {
			p := a * b
			if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
				return Value{}, errOverflow
			}
			return Int(p), nil
		}
		return Int(0), nil
	case "/":
		if a == math.MinInt64 && b == -1 {
			return Value{}, errOverflow
		}
		return Int(a / b), nil
	case "%":
		if b == -1 {
			return Int(0), nil
		}
		return Int(a % b), nil
	}
	return Value{}, errors.New("unknown operator " + op)
}

func negate(x Value) (Value, error) {
	if x.IsFloat {
		return Float(-x.Float), nil
	}
	if x.Int == math.MinInt64 {
		return Value{}, errOverflow
	}
	return Int(-x.Int), nil
}
