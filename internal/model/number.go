package model

import "strconv"

// Number is an integer-valued field whose source text may not be numeric.
// Plain decimal text becomes an integer; anything else is kept verbatim.
type Number struct {
	raw   string
	value int
	isInt bool
}

// ParseNumber converts s following the "all ASCII digits means integer" rule.
// An empty s yields the zero (absent) Number.
func ParseNumber(s string) Number {
	if s == "" {
		return Number{}
	}
	if isDigits(s) {
		if v, err := strconv.Atoi(s); err == nil {
			return Number{value: v, isInt: true}
		}
	}
	return Number{raw: s}
}

// Int returns an integer Number.
func Int(v int) Number {
	return Number{value: v, isInt: true}
}

// IsZero reports whether the number is absent.
func (n Number) IsZero() bool {
	return !n.isInt && n.raw == ""
}

// Int returns the integer value and whether the number is an integer.
func (n Number) Int() (int, bool) {
	return n.value, n.isInt
}

// String returns the decimal form for integers and the raw text otherwise.
func (n Number) String() string {
	if n.isInt {
		return strconv.Itoa(n.value)
	}
	return n.raw
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
