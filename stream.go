// stream.go: the SOC instruction stream.
//
// A Stream holds the whole source split into lines and hands out one
// Instruction per call to Next. Construction prechecks the mandatory
// `SETA-SOC <version>` header line and reports a PrecheckException through
// the runtime when it is malformed — an advisory report, not an abort: the
// stream is fully usable afterwards regardless of the precheck outcome.

package seta

import (
	"io"
	"strconv"
	"strings"
)

// MnemonicEmp is the explicit no-op. Blank source lines parse to it.
const MnemonicEmp = "emp"

// Instruction is one decoded source line: the mnemonic and its argument
// tokens, verbatim (no quoting or escaping).
type Instruction struct {
	Mnemonic string
	Args     []string
}

// String reassembles the instruction as source text.
func (in *Instruction) String() string {
	if len(in.Args) == 0 {
		return in.Mnemonic
	}
	return in.Mnemonic + " " + strings.Join(in.Args, " ")
}

// ParseLine decodes a single source line. A line of only whitespace-free
// emptiness (just the newline in the file) is the no-op instruction; other
// lines split on single spaces, first token mnemonic, rest args verbatim.
func ParseLine(line string) Instruction {
	if line == "" {
		return Instruction{Mnemonic: MnemonicEmp}
	}
	tokens := strings.Split(line, " ")
	if len(tokens) == 1 {
		return Instruction{Mnemonic: tokens[0]}
	}
	return Instruction{Mnemonic: tokens[0], Args: tokens[1:]}
}

// Precheck result codes for the header line.
const (
	precheckOK             = 0
	precheckWrongFlag      = 1
	precheckInvalidVersion = 2
	precheckVersionTooHigh = 3
	precheckWrongFormat    = 4
	precheckEmptyFile      = 5
)

func precheckMessage(code int) string {
	switch code {
	case precheckWrongFlag, precheckInvalidVersion, precheckWrongFormat:
		return "Invalid Seta string operation code file."
	case precheckVersionTooHigh:
		return "Version too high, use the newer interpreter."
	case precheckEmptyFile:
		return "Empty file."
	default:
		return "Unknown exception happened during precheck."
	}
}

// Stream reads SOC source as a finite, forward-only instruction sequence.
type Stream struct {
	name    string
	lines   []string
	pointer int
}

// NewStream splits the source into lines and prechecks the header, reporting
// any header defect through rt. The header line is consumed either way, so
// the first Next call yields the instruction on line 2.
func NewStream(r io.Reader, name string, rt *Runtime) *Stream {
	raw, _ := io.ReadAll(r)
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	s := &Stream{name: name, lines: lines}
	if code := s.precheck(); code != precheckOK {
		rt.Report(&Diagnostic{
			Class: ClassPrecheck,
			Msg:   precheckMessage(code),
			Line:  1,
			File:  name,
		})
	}
	return s
}

// Name returns the source file identity carried into diagnostics.
func (s *Stream) Name() string { return s.name }

// precheck validates line 1: exactly two space-separated tokens, the flag
// `SETA-SOC`, and a decimal version not exceeding SOCVersion.
func (s *Stream) precheck() int {
	if s.pointer >= len(s.lines) {
		return precheckEmptyFile
	}
	line := s.lines[s.pointer]
	s.pointer++
	if line == "" {
		return precheckEmptyFile
	}
	tokens := strings.Split(line, " ")
	if len(tokens) != 2 {
		return precheckWrongFormat
	}
	if tokens[0] != "SETA-SOC" {
		return precheckWrongFlag
	}
	version, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return precheckInvalidVersion
	}
	if version > SOCVersion {
		return precheckVersionTooHigh
	}
	return precheckOK
}

// Next returns the next instruction. ok is false past the last line
// (End-Of-Stream); a blank line is the no-op instruction, never EOS.
func (s *Stream) Next() (Instruction, bool) {
	if s.pointer >= len(s.lines) {
		return Instruction{}, false
	}
	line := s.lines[s.pointer]
	s.pointer++
	return ParseLine(line), true
}
