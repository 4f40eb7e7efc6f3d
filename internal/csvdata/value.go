package csvdata

import (
	"regexp"
	"strconv"
	"strings"
)

// decimalPattern accepts plain decimal numbers with an optional exponent.
// Hex floats, underscores, a leading plus sign and Inf/NaN stay strings.
var decimalPattern = regexp.MustCompile(`^-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?$`)

// Kind is the dynamic type of a CSV cell
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "null"
	}
}

// Value is a dynamically typed cell: numeric-looking text becomes a number,
// true/false a bool, empty text null, anything else a string.
type Value struct {
	Kind Kind
	Num  float64
	Str  string // Raw cell text
}

// ParseValue types one raw cell
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{Kind: KindNull}
	}
	switch strings.ToLower(s) {
	case "true", "false":
		return Value{Kind: KindBool, Str: raw, Num: boolNum(strings.EqualFold(s, "true"))}
	}
	if decimalPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil && isFinite(f) {
			return Value{Kind: KindNumber, Num: f, Str: raw}
		}
	}
	return Value{Kind: KindString, Str: raw}
}

// IsNumber reports whether the cell holds a number
func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// IsNull reports whether the cell is empty or missing
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// IsNonEmptyString reports whether the cell holds non-blank text that is not a number or bool
func (v Value) IsNonEmptyString() bool {
	return v.Kind == KindString && strings.TrimSpace(v.Str) != ""
}

// Text returns the cell as text
func (v Value) Text() string {
	return v.Str
}

func boolNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func isFinite(f float64) bool {
	return f-f == 0
}
