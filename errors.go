// errors.go: structured diagnostics and run status.
//
// Seta never unwinds on failure. Every component builds a Diagnostic value
// and hands it to the runtime's single reporting sink, which formats it,
// prints it in red, and flips the run status to StatusError. Callers check
// the failure signal (or the status) themselves; the dispatch loop only
// consults the status at the top of each cycle, so the remainder of a
// failing handler still runs before the program halts.

package seta

import (
	"fmt"
	"strings"
)

// Status is the runtime lifecycle state. The numeric codes match the
// original SOC runtime status codes.
type Status int

const (
	StatusRunning   Status = 0
	StatusPreparing Status = 1
	StatusQuited    Status = 2
	StatusError     Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPreparing:
		return "preparing"
	case StatusQuited:
		return "quited"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Diagnostic classes. These are the class names that appear in formatted
// reports; they are data, not Go error types.
const (
	ClassArgument    = "ArgumentException"
	ClassVariable    = "VariableException"
	ClassType        = "TypeException"
	ClassValue       = "ValueException"
	ClassMath        = "MathException"
	ClassPackage     = "PackageException"
	ClassNullPointer = "NullPointerException"
	ClassUnsupported = "UnsupportedOperationException"
	ClassOperator    = "OperatorException"
	ClassComparison  = "ComparisonException"
	ClassBlock       = "BlockException"
	ClassPrecheck    = "PrecheckException"
	ClassRunning     = "RunningException"
)

// Diagnostic is a single structured failure record: what went wrong, where,
// and the raw instruction that caused it (nil when there is no code record,
// e.g. a missing source file).
type Diagnostic struct {
	Class string
	Msg   string
	Line  int
	File  string
	Code  *Instruction
}

// Format renders the multi-line report body (no color).
func (d *Diagnostic) Format() string {
	code := "[No Code Record]"
	if d.Code != nil {
		code = d.Code.String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "seta.Diagnostic at line %d:\n", d.Line)
	fmt.Fprintf(&b, "    In file %s, line %d:\n", d.File, d.Line)
	fmt.Fprintf(&b, "        %s\n", code)
	fmt.Fprintf(&b, "%s: %s\n", d.Class, d.Msg)
	return b.String()
}
