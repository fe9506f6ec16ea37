// seta.go — public surface of the Seta SOC interpreter.
//
// Seta executes "string operation code" (SOC): a line-oriented instruction
// format for small scripted calculations. A source file starts with the
// header `SETA-SOC <version>`; every following line is one instruction
// (`set`, `calc`, `load`, `call`, `if`, `endif`, `emp`), split on single
// spaces with no quoting.
//
// Embedding:
//   - Interpreter + New + Run cover the file-running case end to end.
//   - Runtime (runtime.go) is the engine itself: construct one with
//     NewRuntime, attach a Stream with SetSource, and drive it with Run, or
//     feed single instructions through Exec (the REPL does this).
//   - Failures are never returned as Go errors from the run path; they are
//     Diagnostic values delivered to the runtime's reporting sink, which
//     prints them and moves the run status to StatusError. Callers inspect
//     the returned Status.
//
// The package is strictly single-threaded: one instruction executes at a
// time and every piece of state is owned by the Runtime.

package seta

import (
	"fmt"
	"os"
)

// Interpreter version. SOCVersion is the highest header version this
// interpreter accepts.
const (
	VersionString = "1.0"
	SOCVersion    = 1.0
)

// Mode selects the source format. SOC is the only supported mode; the code
// matches the original mode constant.
type Mode int

const ModeSOC Mode = 1

// Interpreter ties a Runtime to a source file.
type Interpreter struct {
	rt *Runtime
}

// New opens the source at path and prepares a run. A missing or unreadable
// file, or an unsupported mode, reports a RunningException through the
// runtime instead of returning an error; the subsequent Run then executes
// nothing and returns StatusError.
func New(path string, mode Mode, opts ...Option) *Interpreter {
	ip := &Interpreter{rt: NewRuntime(opts...)}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		ip.rt.Report(&Diagnostic{
			Class: ClassRunning,
			Msg:   fmt.Sprintf("File %q does not exist.", path),
			File:  path,
		})
		return ip
	}
	if mode != ModeSOC {
		ip.rt.Report(&Diagnostic{
			Class: ClassRunning,
			Msg:   fmt.Sprintf("Running mode %d is invalid.", mode),
			File:  path,
		})
		return ip
	}
	f, err := os.Open(path)
	if err != nil {
		ip.rt.Report(&Diagnostic{
			Class: ClassRunning,
			Msg:   fmt.Sprintf("Cannot open file %q.", path),
			File:  path,
		})
		return ip
	}
	defer f.Close()
	ip.rt.SetSource(NewStream(f, path, ip.rt))
	return ip
}

// Runtime exposes the underlying engine (tests and embedders).
func (ip *Interpreter) Runtime() *Runtime { return ip.rt }

// Run executes the program to completion and returns the terminal status:
// StatusQuited on a clean end-of-stream, StatusError after any diagnostic.
func (ip *Interpreter) Run() Status {
	return ip.rt.Run()
}
