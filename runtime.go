// runtime.go: the execution engine.
//
// A Runtime owns every piece of mutable run state: the namespace, the
// package registry, the pointer register set by `load`, the @AMS register,
// the skip depth for false if-blocks, the program counter, and the run
// status. All of it is mutated only by the dispatch loop or by a builtin
// invoked synchronously from it; there is no locking and no concurrency.
//
// The loop checks the status once at the top of each cycle. A handler that
// reports a diagnostic keeps executing to the end of its own body; the halt
// happens at the next cycle boundary.

package seta

import (
	"fmt"
	"strings"
)

// ---- mnemonics ------------------------------------------------------------

type mnemonic int

const (
	mnSet mnemonic = iota
	mnCalc
	mnLoad
	mnCall
	mnIf
	mnEndif
	mnEmp
	mnUnknown
)

func parseMnemonic(tok string) mnemonic {
	switch strings.ToLower(tok) {
	case "set":
		return mnSet
	case "calc":
		return mnCalc
	case "load":
		return mnLoad
	case "call":
		return mnCall
	case "if":
		return mnIf
	case "endif":
		return mnEndif
	case MnemonicEmp:
		return mnEmp
	default:
		return mnUnknown
	}
}

// ---- runtime --------------------------------------------------------------

// counter is the program counter: current line, source file identity, and
// the instruction about to execute (nil at End-Of-Stream).
type counter struct {
	Line int
	File string
	Code *Instruction
}

// Runtime is the Seta execution engine.
type Runtime struct {
	status    Status
	console   *Console
	namespace map[string]*Variable
	packages  map[string]*Package
	operation *Operations

	stream *Stream
	cur    counter

	ams Number  // accumulated arithmetic result (@AMS)
	ifs int     // skip depth of unresolved false if-blocks
	ptr *Object // pointer register set by `load`
}

// Option configures a Runtime at construction time.
type Option func(*Runtime)

// WithConsole substitutes the terminal surface (tests pass buffers here).
func WithConsole(c *Console) Option {
	return func(rt *Runtime) { rt.console = c }
}

// NewRuntime builds a ready runtime: empty namespace, the pre-populated
// `builtins` package, unbound pointer register, @AMS at zero.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		status:    StatusPreparing,
		namespace: make(map[string]*Variable),
		packages:  make(map[string]*Package),
		ams:       IntNumber(0),
		cur:       counter{File: "<stdin>"},
	}
	rt.operation = &Operations{rt: rt}
	rt.packages["builtins"] = BuiltinsPackage()
	for _, opt := range opts {
		opt(rt)
	}
	if rt.console == nil {
		rt.console = NewConsole()
	}
	rt.status = StatusRunning
	return rt
}

// ---- collaborator surface (builtins and embedders) ------------------------

func (rt *Runtime) Status() Status         { return rt.status }
func (rt *Runtime) SetStatus(s Status)     { rt.status = s }
func (rt *Runtime) Console() *Console      { return rt.console }
func (rt *Runtime) Operation() *Operations { return rt.operation }
func (rt *Runtime) AMS() Number            { return rt.ams }
func (rt *Runtime) SkipDepth() int         { return rt.ifs }

// Current exposes the program counter for diagnostics raised by builtins.
func (rt *Runtime) Current() (line int, file string, code *Instruction) {
	return rt.cur.Line, rt.cur.File, rt.cur.Code
}

// LookupVariable returns the Variable bound to name, or nil.
func (rt *Runtime) LookupVariable(name string) *Variable {
	return rt.namespace[name]
}

// BindVariable installs v under its name, replacing any previous binding.
// Returns whether the name was already bound.
func (rt *Runtime) BindVariable(v *Variable) bool {
	_, existed := rt.namespace[v.Name]
	rt.namespace[v.Name] = v
	return existed
}

// LookupPackage returns the named package, or nil.
func (rt *Runtime) LookupPackage(name string) *Package {
	return rt.packages[name]
}

// AddPackage registers p under its name, replacing any previous package.
// Returns whether the name was already registered.
func (rt *Runtime) AddPackage(p *Package) bool {
	_, existed := rt.packages[p.Name]
	rt.packages[p.Name] = p
	return existed
}

// Report is the single diagnostic sink: format, print in red, mark the run
// failed. It never unwinds; callers carry on and the loop halts at the next
// cycle boundary.
func (rt *Runtime) Report(d *Diagnostic) {
	rt.console.SetColor(ColorRed)
	rt.console.Error("\n\n" + d.Format())
	rt.console.SetColor(ColorDefault)
	rt.status = StatusError
}

// diag stamps a diagnostic with the current program-counter info.
func (rt *Runtime) diag(class, msg string) *Diagnostic {
	return &Diagnostic{Class: class, Msg: msg, Line: rt.cur.Line, File: rt.cur.File, Code: rt.cur.Code}
}

// ---- assignment -----------------------------------------------------------

// AssignNumber writes a numeric value into v. A kind conflict reports a
// ValueException and leaves v untouched.
func (rt *Runtime) AssignNumber(v *Variable, n Number) bool {
	if !v.setNumber(n) {
		rt.reportAssignMismatch(v)
		return false
	}
	return true
}

// AssignText writes constant text into v. A kind conflict reports a
// ValueException and leaves v untouched.
func (rt *Runtime) AssignText(v *Variable, s string) bool {
	if !v.setText(s) {
		rt.reportAssignMismatch(v)
		return false
	}
	return true
}

func (rt *Runtime) reportAssignMismatch(v *Variable) {
	rt.Report(rt.diag(ClassValue, fmt.Sprintf(
		"Variable %q expected type %s, but an unexpected type was given.", v.Name, v.Kind)))
}

// ---- dispatch loop --------------------------------------------------------

// SetSource attaches the instruction stream and prefetches the first
// instruction. Instructions start on line 2, after the header.
func (rt *Runtime) SetSource(s *Stream) {
	rt.stream = s
	rt.cur = counter{Line: 2, File: s.Name()}
	rt.fetch()
}

func (rt *Runtime) fetch() {
	if rt.stream == nil {
		rt.cur.Code = nil
		return
	}
	if inst, ok := rt.stream.Next(); ok {
		rt.cur.Code = &inst
	} else {
		rt.cur.Code = nil
	}
}

func (rt *Runtime) advance() {
	rt.cur.Line++
	rt.fetch()
}

// Run drives the loop until the status leaves StatusRunning or the stream
// ends. End-Of-Stream with open if-blocks reports a BlockException before
// the run quits.
func (rt *Runtime) Run() Status {
	for {
		if rt.status != StatusRunning {
			return rt.status
		}
		if rt.cur.Code == nil {
			if rt.ifs > 0 {
				rt.Report(rt.diag(ClassBlock, "If-comparison block is not closed at the end of the program."))
			}
			if rt.status == StatusRunning {
				rt.status = StatusQuited
			}
			return rt.status
		}
		inst := *rt.cur.Code
		rt.step(inst)
		rt.advance()
	}
}

// Exec interprets one instruction outside of a stream (REPL use): records it
// as the current code, advances the line counter, and dispatches.
func (rt *Runtime) Exec(inst Instruction) {
	rt.cur.Line++
	rt.cur.Code = &inst
	rt.step(inst)
}

// step dispatches one instruction. `endif` executes even while skipping so
// blocks always close; every other mnemonic is consumed unexecuted while the
// skip depth is above zero, with nested `if` lines deepening it.
func (rt *Runtime) step(inst Instruction) {
	m := parseMnemonic(inst.Mnemonic)

	if m == mnEndif {
		if len(inst.Args) != 0 {
			rt.reportArity()
			return
		}
		if rt.ifs > 0 {
			rt.ifs--
		}
		return
	}

	if rt.ifs > 0 {
		if m == mnIf {
			rt.ifs++
		}
		return
	}

	switch m {
	case mnSet:
		rt.comSet(inst.Args)
	case mnCalc:
		rt.comCalc(inst.Args)
	case mnLoad:
		rt.comLoad(inst.Args)
	case mnCall:
		rt.comCall(inst.Args)
	case mnIf:
		rt.comIf(inst.Args)
	case mnEmp:
		rt.comEmp(inst.Args)
	case mnUnknown:
		rt.Report(rt.diag(ClassUnsupported, "Unsupported operation "+inst.Mnemonic+"."))
	}
}

func (rt *Runtime) reportArity() {
	rt.Report(rt.diag(ClassArgument, "Invalid number of the arguments."))
}

// ---- handlers -------------------------------------------------------------

func (rt *Runtime) comSet(args []string) {
	if len(args) < 3 {
		rt.reportArity()
		return
	}
	kindTok, name, value, texts := args[0], args[1], args[2], args[3:]
	if !RequireIdentifier(name) {
		rt.Report(rt.diag(ClassArgument, `Argument 2 "name" must be a valid identifier name.`))
		return
	}
	kind, ok := ParseKind(kindTok)
	if !ok {
		rt.Report(rt.diag(ClassArgument,
			"A type should be specified during a variable declaration. Possible types: numeric, cstring."))
		return
	}
	switch kind {
	case KindNumeric:
		n, ok := ScanNumber(value)
		if !ok {
			rt.Report(rt.diag(ClassType,
				"Variable "+name+" is declared as numeric type, but non-numeric value is given."))
			return
		}
		if len(texts) > 0 {
			rt.Report(rt.diag(ClassArgument, fmt.Sprintf(
				"Invalid number of the arguments: numeric setting operation expected 3 argument, but %d was given.",
				3+len(texts))))
			return
		}
		v := NewVariable(name, KindNumeric)
		rt.AssignNumber(v, n)
		rt.BindVariable(v)
	case KindCString:
		v := NewVariable(name, KindCString)
		rt.AssignText(v, strings.Join(args[2:], " "))
		rt.BindVariable(v)
	}
}

func (rt *Runtime) comCalc(args []string) {
	if len(args) != 4 {
		rt.reportArity()
		return
	}
	op, ok := ParseArithOp(args[0])
	if !ok {
		rt.Report(rt.diag(ClassArgument, "Invalid operation. Possible operations: add, sub, mul, div, power."))
		return
	}
	lhs, ok := rt.resolveOperand(args[1])
	if !ok {
		return
	}
	rhs, ok := rt.resolveOperand(args[2])
	if !ok {
		return
	}
	if lhs.isText {
		rt.Report(rt.diag(ClassType, "Operation "+op.String()+" needs operand \""+args[1]+"\" to be numeric."))
		return
	}
	if rhs.isText {
		rt.Report(rt.diag(ClassType, "Operation "+op.String()+" needs operand \""+args[2]+"\" to be numeric."))
		return
	}
	if op == OpDiv && rhs.num.IsZero() {
		rt.Report(rt.diag(ClassMath, "A numeric value cannot be divided by zero."))
		return
	}
	if op == OpPower && lhs.num.IsZero() && rhs.num.IsZero() {
		rt.Report(rt.diag(ClassMath, "The base of a zero exponential cannot be zero."))
		return
	}
	res := args[3]
	if !RequireIdentifier(res) {
		rt.Report(rt.diag(ClassArgument, `Argument 3 "res" must be a valid identifier name.`))
		return
	}
	r := arith(op, lhs.num, rhs.num)
	rt.ams = r
	v := rt.LookupVariable(res)
	if v == nil {
		v = NewVariable(res, KindNumeric)
		rt.BindVariable(v)
	}
	rt.AssignNumber(v, r)
}

func (rt *Runtime) comLoad(args []string) {
	if len(args) == 0 || len(args) > 2 {
		rt.reportArity()
		return
	}
	pkgName, ident := "builtins", args[0]
	if len(args) == 2 {
		pkgName, ident = args[0], args[1]
	}
	pack := rt.LookupPackage(pkgName)
	if pack == nil {
		rt.Report(rt.diag(ClassPackage, "Cannot find package "+pkgName+"."))
		return
	}
	obj := pack.Lookup(ident)
	if obj == nil {
		rt.Report(rt.diag(ClassPackage, "Cannot find object "+ident+" in package "+pkgName+"."))
		return
	}
	rt.ptr = obj
}

func (rt *Runtime) comCall(args []string) {
	if rt.ptr == nil {
		rt.Report(rt.diag(ClassNullPointer, "Cannot call the program pointer before setting the pointer address."))
		return
	}
	if rt.ptr.Fn == nil {
		rt.Report(rt.diag(ClassArgument, "The target of the calling is not callable."))
		return
	}
	if !rt.ptr.Accepts(len(args)) {
		rt.reportArity()
		return
	}
	rt.ptr.Fn(rt, args)
}

func (rt *Runtime) comIf(args []string) {
	if len(args) != 3 {
		rt.reportArity()
		return
	}
	lhs, ok := rt.resolveOperand(args[0])
	if !ok {
		return
	}
	rhs, ok := rt.resolveOperand(args[2])
	if !ok {
		return
	}
	op, ok := ParseCmpOp(args[1])
	if !ok {
		rt.Report(rt.diag(ClassOperator, "Unresolved operator "+args[1]+` appeared at argument 2 "cmp".`))
		return
	}
	res, ok := compare(op, lhs, rhs)
	if !ok {
		rt.Report(rt.diag(ClassComparison, "Cannot compare value "+args[0]+" with value "+args[2]+"."))
		return
	}
	if !res {
		rt.ifs = 1
	}
}

func (rt *Runtime) comEmp(args []string) {
	if len(args) != 0 {
		rt.reportArity()
	}
}
