// Package results holds query result sets and the pure transformations
// (filter, sort, paginate) applied to them for display.
package results

import (
	"cmp"
	"strconv"

	"golang.org/x/text/cases"
)

// Kind identifies the variant held by a Value
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

// Value is a single cell: null, string, number or boolean
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Null returns the null value
func Null() Value { return Value{} }

// String wraps s as a string value
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps f as a numeric value
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool wraps b as a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the variant of v
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null
func (v Value) IsNull() bool { return v.kind == KindNull }

// String renders v for display and searching. Null renders as "".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Raw returns the Go value used for JSON encoding (nil for null)
func (v Value) Raw() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Compare orders two non-null values: strings case-folded, numbers
// numerically, false before true. Mixed kinds compare by string form.
func (v Value) Compare(o Value) int {
	return compareValues(v.folded(), o.folded())
}

// folded returns v with its string payload case-folded so that repeated
// comparisons do not fold again.
func (v Value) folded() Value {
	if v.kind == KindString {
		return String(fold(v.str))
	}
	return v
}

func compareValues(a, b Value) int {
	if a.kind == b.kind {
		switch a.kind {
		case KindString:
			return cmp.Compare(a.str, b.str)
		case KindNumber:
			return cmp.Compare(a.num, b.num)
		case KindBool:
			switch {
			case a.b == b.b:
				return 0
			case !a.b:
				return -1
			default:
				return 1
			}
		default:
			return 0
		}
	}
	return cmp.Compare(fold(a.String()), fold(b.String()))
}

// fold applies Unicode case folding. A Caser is stateful so one is made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
