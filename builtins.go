// builtins.go: the pre-populated `builtins` package.
//
// These are the thin I/O and coercion routines SOC programs reach through
// `load`/`call`: value printing, blank-line output, forced numeric type
// change, blocking numeric input, and a debug breakpoint dump. Each one
// talks to the core only through the collaborator surface: identifier
// validation, namespace lookup/write, the console, and the reporter.

package seta

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// BuiltinsPackage builds the always-present `builtins` package.
func BuiltinsPackage() *Package {
	p := NewPackage("builtins")
	p.Register("display", 1, 1, builtinDisplay)
	p.Register("ftc", 2, 2, builtinFtc)
	p.Register("wrap", 0, 1, builtinWrap)
	p.Register("nInput", 1, -1, builtinNInput)
	p.Register("breakpoint", 0, 0, builtinBreakpoint)
	return p
}

// display prints a variable's value, without a trailing newline.
func builtinDisplay(rt *Runtime, args []string) {
	name := args[0]
	if !RequireIdentifier(name) {
		rt.Report(rt.diag(ClassArgument, `Argument 1 "var" expected a variable.`))
		return
	}
	v := rt.LookupVariable(name)
	if v == nil {
		rt.Report(rt.diag(ClassArgument,
			`Argument 1 "var" expected a variable, but variable `+name+` was not found.`))
		return
	}
	rt.Console().Output(v.Display())
}

// ftc forces a numeric variable between integer and float representation.
func builtinFtc(rt *Runtime, args []string) {
	name, target := args[0], args[1]
	if !RequireIdentifier(name) {
		rt.Report(rt.diag(ClassArgument,
			"Force type change expected an identifier name, but an invalid argument appeared."))
		return
	}
	v := rt.LookupVariable(name)
	if v == nil {
		rt.Report(rt.diag(ClassVariable, "Cannot find variable "+name+"."))
		return
	}
	if !v.Numeric() {
		rt.Report(rt.diag(ClassType,
			"Force type change expected a numeric variable, but "+v.Kind.String()+" was given."))
		return
	}
	switch target {
	case "integer":
		rt.AssignNumber(v, IntNumber(int64(v.Number().AsFloat())))
	case "float":
		rt.AssignNumber(v, FloatNumber(v.Number().AsFloat()))
	default:
		rt.Report(rt.diag(ClassArgument,
			"Invalid numeric type was given. Possible choices: integer, float."))
	}
}

// wrap writes n blank lines (default 1).
func builtinWrap(rt *Runtime, args []string) {
	lines := "1"
	if len(args) == 1 {
		lines = args[0]
	}
	n, err := strconv.ParseInt(lines, 10, 64)
	if err != nil || n <= 0 {
		rt.Report(rt.diag(ClassArgument, `Argument 1 "lines" expected a positive integer.`))
		return
	}
	rt.Console().Output(strings.Repeat("\n", int(n)))
}

// nInput reads terminal input into a numeric variable, re-prompting with the
// given message (or a default one) until the input parses as a number.
func builtinNInput(rt *Runtime, args []string) {
	name := args[0]
	if !RequireIdentifier(name) {
		rt.Report(rt.diag(ClassArgument,
			"Force type change expected an identifier name, but an invalid argument appeared."))
		return
	}
	v := rt.LookupVariable(name)
	if v == nil {
		rt.Report(rt.diag(ClassVariable, "Cannot find variable "+name+"."))
		return
	}
	if !v.Numeric() {
		rt.Report(rt.diag(ClassType,
			"Force type change expected a numeric variable, but "+v.Kind.String()+" was given."))
		return
	}
	msg := "Input requires to be numeric, please enter again:"
	if len(args) > 1 {
		msg = strings.Join(args[1:], " ")
	}
	for {
		line, err := rt.Console().ReadLine()
		if err != nil {
			rt.Report(rt.diag(ClassRunning, "Cannot read from the input stream."))
			return
		}
		if n, ok := ScanNumber(line); ok {
			rt.AssignNumber(v, n)
			return
		}
		rt.Console().Output(msg)
	}
}

// breakpoint dumps the whole runtime state in yellow: program counter,
// status, @AMS, skip depth, packages, and every namespace entry.
func builtinBreakpoint(rt *Runtime, args []string) {
	line, file, code := rt.Current()
	codeText := "[No Code Record]"
	if code != nil {
		codeText = code.String()
	}

	packages := make([]string, 0, len(rt.packages))
	for name := range rt.packages {
		packages = append(packages, name)
	}
	sort.Strings(packages)

	names := make([]string, 0, len(rt.namespace))
	for name := range rt.namespace {
		names = append(names, name)
	}
	sort.Strings(names)
	var npf strings.Builder
	for _, name := range names {
		v := rt.namespace[name]
		fmt.Fprintf(&npf, "\tVariable:\t%s\n\tType:\t\t%s\n\tValue:\t\t%s\n\n",
			v.Name, v.Kind, v.Display())
	}

	c := rt.Console()
	c.SetColor(ColorYellow)
	c.Output(fmt.Sprintf("\n\n%s\nBreakpoint at line %d:\n"+
		"    File %s, line %d:\n"+
		"        %s\n"+
		"Program debug information:\n"+
		"Runtime Status: %d\n"+
		"Calculation Result Cathe: %s\n"+
		"Unreachable If-Comparison Stack Length: %d\n"+
		"Packages: \n\t%s\n"+
		"Namespace: \n%s"+
		"Here is the end of the breakpoint debug information.\n%s\n\n",
		strings.Repeat("=", 30), line, file, line, codeText,
		int(rt.Status()), rt.AMS(), rt.SkipDepth(),
		strings.Join(packages, "\n\t"), npf.String(), strings.Repeat("=", 30)))
	c.SetColor(ColorDefault)
}
