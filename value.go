package seta

import "strconv"

// ---- numbers --------------------------------------------------------------

// Number is the runtime numeric carrier. Seta keeps integers and floats
// apart so that integer arithmetic stays exact and `ftc` (force type change)
// can convert between the two representations.
type Number struct {
	IsInt bool
	Int   int64
	Float float64
}

func IntNumber(i int64) Number     { return Number{IsInt: true, Int: i} }
func FloatNumber(f float64) Number { return Number{Float: f} }

// AsFloat widens the number to float64 regardless of representation.
func (n Number) AsFloat() float64 {
	if n.IsInt {
		return float64(n.Int)
	}
	return n.Float
}

func (n Number) IsZero() bool {
	if n.IsInt {
		return n.Int == 0
	}
	return n.Float == 0
}

// String renders the number the way `display` prints it: integers without a
// decimal point, floats in the shortest round-tripping form.
func (n Number) String() string {
	if n.IsInt {
		return strconv.FormatInt(n.Int, 10)
	}
	return strconv.FormatFloat(n.Float, 'g', -1, 64)
}

// ScanNumber recognizes a numeric literal token: optional sign, digits,
// optional fraction and exponent. It is a lexical check only — names such as
// "Inf" or "NaN" and hex floats are not literals in SOC source.
func ScanNumber(tok string) (Number, bool) {
	if !isNumericLiteral(tok) {
		return Number{}, false
	}
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return IntNumber(i), true
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return Number{}, false
	}
	return FloatNumber(f), true
}

func isNumericLiteral(tok string) bool {
	i, n := 0, len(tok)
	if n == 0 {
		return false
	}
	if tok[i] == '+' || tok[i] == '-' {
		i++
	}
	digits := 0
	for i < n && tok[i] >= '0' && tok[i] <= '9' {
		i++
		digits++
	}
	if i < n && tok[i] == '.' {
		i++
		for i < n && tok[i] >= '0' && tok[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < n && (tok[i] == 'e' || tok[i] == 'E') {
		i++
		if i < n && (tok[i] == '+' || tok[i] == '-') {
			i++
		}
		if i == n {
			return false
		}
		for i < n && tok[i] >= '0' && tok[i] <= '9' {
			i++
		}
	}
	return i == n
}

// ---- variables ------------------------------------------------------------

// Kind tags a Variable's declared type. The codes match the original SOC
// type codes (numeric=1, cstring=2).
type Kind int

const (
	KindNumeric Kind = 1
	KindCString Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCString:
		return "cstring"
	default:
		return "UNKNOWN-TYPE"
	}
}

// ParseKind maps the `set` type token to a Kind. ok is false for anything
// other than "numeric" or "cstring".
func ParseKind(tok string) (Kind, bool) {
	switch tok {
	case "numeric":
		return KindNumeric, true
	case "cstring":
		return KindCString, true
	default:
		return 0, false
	}
}

// Variable is a named scalar. The kind is fixed for the lifetime of the
// instance; redeclaring a name via `set` installs a fresh Variable rather
// than mutating this one.
type Variable struct {
	Name string
	Kind Kind

	defined bool
	num     Number
	text    string
}

func NewVariable(name string, kind Kind) *Variable {
	return &Variable{Name: name, Kind: kind}
}

func (v *Variable) Defined() bool { return v.defined }
func (v *Variable) Numeric() bool { return v.Kind == KindNumeric }
func (v *Variable) CString() bool { return v.Kind == KindCString }

// Number returns the numeric payload. Meaningful only when Numeric().
func (v *Variable) Number() Number { return v.num }

// Text returns the string payload. Meaningful only when CString().
func (v *Variable) Text() string { return v.text }

// Display renders the value the way the `display` builtin prints it.
func (v *Variable) Display() string {
	if v.Kind == KindCString {
		return v.text
	}
	return v.num.String()
}

func (v *Variable) setNumber(n Number) bool {
	if v.Kind != KindNumeric {
		return false
	}
	v.num = n
	v.defined = true
	return true
}

func (v *Variable) setText(s string) bool {
	if v.Kind != KindCString {
		return false
	}
	v.text = s
	v.defined = true
	return true
}

// ---- identifiers ----------------------------------------------------------

// RequireIdentifier reports whether s is a valid identifier: non-empty,
// ASCII letters, digits, underscore and '#' only, and the first character
// is neither a digit nor '#'.
func RequireIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '#':
		default:
			return false
		}
	}
	c := s[0]
	if (c >= '0' && c <= '9') || c == '#' {
		return false
	}
	return true
}
