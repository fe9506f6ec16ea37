// operation.go: operand resolution, arithmetic and comparison semantics.
//
// Operand resolution is shared by `calc` and `if`: literal numeric first,
// then the @AMS register, then a namespace lookup. Arithmetic demands
// numeric operands and guards division by zero and 0^0; comparisons work on
// the raw resolved values and reject ordered comparison across kinds.

package seta

import "math"

// AMSToken is the operand alias for the accumulated-result register.
const AMSToken = "@AMS"

// operand is a resolved operand value: either a number or constant text.
type operand struct {
	isText bool
	num    Number
	text   string
}

// resolveOperand turns one textual operand into a value, reporting a
// VariableException when it is neither a literal, @AMS, nor a declared name.
func (rt *Runtime) resolveOperand(tok string) (operand, bool) {
	if n, ok := ScanNumber(tok); ok {
		return operand{num: n}, true
	}
	if tok == AMSToken {
		return operand{num: rt.ams}, true
	}
	if v := rt.LookupVariable(tok); v != nil {
		if v.CString() {
			return operand{isText: true, text: v.Text()}, true
		}
		return operand{num: v.Number()}, true
	}
	rt.Report(rt.diag(ClassVariable, "Undeclared variable "+tok+" cannot be resolved."))
	return operand{}, false
}

// ---- arithmetic -----------------------------------------------------------

// ArithOp enumerates the `calc` operations.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
	OpPower
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpPower:
		return "power"
	default:
		return "unknown"
	}
}

// ParseArithOp maps a `calc` operation token to its ArithOp.
func ParseArithOp(tok string) (ArithOp, bool) {
	switch tok {
	case "add":
		return OpAdd, true
	case "sub":
		return OpSub, true
	case "mul":
		return OpMul, true
	case "div":
		return OpDiv, true
	case "power":
		return OpPower, true
	default:
		return 0, false
	}
}

// arith computes op over two numbers. Integer operands keep integer results
// for add/sub/mul and for power with a non-negative integer exponent; div is
// always a float, matching the original's true division.
func arith(op ArithOp, a, b Number) Number {
	switch op {
	case OpAdd:
		if a.IsInt && b.IsInt {
			return IntNumber(a.Int + b.Int)
		}
		return FloatNumber(a.AsFloat() + b.AsFloat())
	case OpSub:
		if a.IsInt && b.IsInt {
			return IntNumber(a.Int - b.Int)
		}
		return FloatNumber(a.AsFloat() - b.AsFloat())
	case OpMul:
		if a.IsInt && b.IsInt {
			return IntNumber(a.Int * b.Int)
		}
		return FloatNumber(a.AsFloat() * b.AsFloat())
	case OpDiv:
		return FloatNumber(a.AsFloat() / b.AsFloat())
	case OpPower:
		if a.IsInt && b.IsInt && b.Int >= 0 {
			return IntNumber(intPow(a.Int, b.Int))
		}
		return FloatNumber(math.Pow(a.AsFloat(), b.AsFloat()))
	default:
		return Number{}
	}
}

func intPow(base, exp int64) int64 {
	var r int64 = 1
	for exp > 0 {
		if exp&1 == 1 {
			r *= base
		}
		base *= base
		exp >>= 1
	}
	return r
}

// ---- comparison -----------------------------------------------------------

// CmpOp enumerates the `if` comparison operators.
type CmpOp int

const (
	CmpAbove CmpOp = iota // >
	CmpBelow              // <
	CmpEqual              // =
	CmpNotAbove           // <=
	CmpNotBelow           // >=
	CmpNotEqual           // !=
)

// ParseCmpOp maps a comparison token to its CmpOp.
func ParseCmpOp(tok string) (CmpOp, bool) {
	switch tok {
	case ">":
		return CmpAbove, true
	case "<":
		return CmpBelow, true
	case "=":
		return CmpEqual, true
	case "<=":
		return CmpNotAbove, true
	case ">=":
		return CmpNotBelow, true
	case "!=":
		return CmpNotEqual, true
	default:
		return 0, false
	}
}

// compare evaluates op over two resolved operands. ok is false when the
// operands admit no such comparison: ordered operators across kinds.
// Equality across kinds is well defined (never equal).
func compare(op CmpOp, a, b operand) (result, ok bool) {
	if a.isText != b.isText {
		switch op {
		case CmpEqual:
			return false, true
		case CmpNotEqual:
			return true, true
		default:
			return false, false
		}
	}
	if a.isText {
		switch op {
		case CmpAbove:
			return a.text > b.text, true
		case CmpBelow:
			return a.text < b.text, true
		case CmpEqual:
			return a.text == b.text, true
		case CmpNotAbove:
			return a.text <= b.text, true
		case CmpNotBelow:
			return a.text >= b.text, true
		case CmpNotEqual:
			return a.text != b.text, true
		}
		return false, false
	}
	x, y := a.num.AsFloat(), b.num.AsFloat()
	switch op {
	case CmpAbove:
		return x > y, true
	case CmpBelow:
		return x < y, true
	case CmpEqual:
		return x == y, true
	case CmpNotAbove:
		return x <= y, true
	case CmpNotBelow:
		return x >= y, true
	case CmpNotEqual:
		return x != y, true
	}
	return false, false
}

// ---- variable-level helpers -----------------------------------------------

// Operations exposes the arithmetic over declared Variables with the same
// guards the dispatcher applies to `calc` operands. Builtins and embedders
// use it when they hold Variables rather than raw tokens.
type Operations struct {
	rt *Runtime
}

func (o *Operations) binary(op ArithOp, a1, a2 *Variable) (Number, bool) {
	rt := o.rt
	if !a1.Numeric() {
		rt.Report(rt.diag(ClassType, "Operation "+op.String()+" needs variable \""+a1.Name+"\" to be numeric."))
		return Number{}, false
	}
	if !a2.Numeric() {
		rt.Report(rt.diag(ClassType, "Operation "+op.String()+" needs variable \""+a2.Name+"\" to be numeric."))
		return Number{}, false
	}
	if op == OpDiv && a2.Number().IsZero() {
		rt.Report(rt.diag(ClassMath, "Variable "+a1.Name+" is divided by zero."))
		return Number{}, false
	}
	if op == OpPower && a1.Number().IsZero() && a2.Number().IsZero() {
		rt.Report(rt.diag(ClassMath, "The base of a zero exponential cannot be zero."))
		return Number{}, false
	}
	return arith(op, a1.Number(), a2.Number()), true
}

func (o *Operations) Add(a1, a2 *Variable) (Number, bool)   { return o.binary(OpAdd, a1, a2) }
func (o *Operations) Sub(a1, a2 *Variable) (Number, bool)   { return o.binary(OpSub, a1, a2) }
func (o *Operations) Mul(a1, a2 *Variable) (Number, bool)   { return o.binary(OpMul, a1, a2) }
func (o *Operations) Div(a1, a2 *Variable) (Number, bool)   { return o.binary(OpDiv, a1, a2) }
func (o *Operations) Power(a1, a2 *Variable) (Number, bool) { return o.binary(OpPower, a1, a2) }

func (o *Operations) cmp(op CmpOp, a1, a2 *Variable) (bool, bool) {
	return compare(op, variableOperand(a1), variableOperand(a2))
}

func (o *Operations) Equal(a1, a2 *Variable) (bool, bool)    { return o.cmp(CmpEqual, a1, a2) }
func (o *Operations) Above(a1, a2 *Variable) (bool, bool)    { return o.cmp(CmpAbove, a1, a2) }
func (o *Operations) Below(a1, a2 *Variable) (bool, bool)    { return o.cmp(CmpBelow, a1, a2) }
func (o *Operations) NotAbove(a1, a2 *Variable) (bool, bool) { return o.cmp(CmpNotAbove, a1, a2) }
func (o *Operations) NotBelow(a1, a2 *Variable) (bool, bool) { return o.cmp(CmpNotBelow, a1, a2) }
func (o *Operations) NotEqual(a1, a2 *Variable) (bool, bool) { return o.cmp(CmpNotEqual, a1, a2) }

func variableOperand(v *Variable) operand {
	if v.CString() {
		return operand{isText: true, text: v.Text()}
	}
	return operand{num: v.Number()}
}
