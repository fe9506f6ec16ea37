package seta

import (
	"strings"
	"testing"
)

func newStreamFor(t *testing.T, src string) (*Stream, *Runtime, *testIO) {
	t.Helper()
	rt, io := newTestRuntime("")
	s := NewStream(strings.NewReader(src), "test.soc", rt)
	return s, rt, io
}

// --- header precheck -------------------------------------------------------

func Test_Precheck_Valid_Header_Passes(t *testing.T) {
	_, rt, io := newStreamFor(t, "SETA-SOC 1.0\nemp\n")
	wantClean(t, io)
	wantStatus(t, rt, StatusRunning)
}

func Test_Precheck_Version_Too_High(t *testing.T) {
	_, rt, io := newStreamFor(t, "SETA-SOC 99.0\nemp\n")
	wantClass(t, io, ClassPrecheck)
	if !strings.Contains(io.err.String(), "Version too high") {
		t.Fatalf("want version-too-high message, got:\n%s", io.err.String())
	}
	wantStatus(t, rt, StatusError)
}

func Test_Precheck_Wrong_Flag_Bad_Version_Bad_Shape(t *testing.T) {
	for _, header := range []string{"SETA-BIN 1.0", "SETA-SOC one", "SETA-SOC", "SETA-SOC 1.0 extra"} {
		_, _, io := newStreamFor(t, header+"\nemp\n")
		wantClass(t, io, ClassPrecheck)
		if !strings.Contains(io.err.String(), "Invalid Seta string operation code file.") {
			t.Fatalf("header %q: want invalid-file message, got:\n%s", header, io.err.String())
		}
	}
}

func Test_Precheck_Empty_File(t *testing.T) {
	_, _, io := newStreamFor(t, "")
	wantClass(t, io, ClassPrecheck)
	if !strings.Contains(io.err.String(), "Empty file.") {
		t.Fatalf("want empty-file message, got:\n%s", io.err.String())
	}
}

func Test_Precheck_Failure_Is_Advisory_Not_Fatal(t *testing.T) {
	// The diagnostic moves the status to Error, but the stream itself stays
	// readable; forcing the status back confirms execution still works.
	rt, io := newTestRuntime("")
	s := NewStream(strings.NewReader("SETA-SOC 99.0\nset numeric x 1\n"), "test.soc", rt)
	wantClass(t, io, ClassPrecheck)
	rt.SetSource(s)
	rt.SetStatus(StatusRunning)
	rt.Run()
	wantNumVar(t, rt, "x", 1)
	wantStatus(t, rt, StatusQuited)
}

// --- instruction reads -----------------------------------------------------

func Test_Stream_Reads_Past_Header(t *testing.T) {
	s, _, io := newStreamFor(t, "SETA-SOC 1.0\nset numeric x 1\ncall a b\n")
	wantClean(t, io)

	inst, ok := s.Next()
	if !ok || inst.Mnemonic != "set" || len(inst.Args) != 3 {
		t.Fatalf("first instruction = %#v", inst)
	}
	inst, ok = s.Next()
	if !ok || inst.Mnemonic != "call" || len(inst.Args) != 2 {
		t.Fatalf("second instruction = %#v", inst)
	}
	if _, ok := s.Next(); ok {
		t.Fatal("want End-Of-Stream after the last line")
	}
}

func Test_Stream_Blank_Line_Is_Noop_Not_EOS(t *testing.T) {
	s, _, _ := newStreamFor(t, "SETA-SOC 1.0\n\nemp\n")
	inst, ok := s.Next()
	if !ok || inst.Mnemonic != MnemonicEmp || len(inst.Args) != 0 {
		t.Fatalf("blank line should read as no-op, got %#v ok=%v", inst, ok)
	}
}

func Test_ParseLine_Splits_On_Single_Spaces(t *testing.T) {
	inst := ParseLine("set cstring msg hello  world")
	if inst.Mnemonic != "set" {
		t.Fatalf("mnemonic = %q", inst.Mnemonic)
	}
	// Double spaces yield an empty token: args are verbatim, no collapsing.
	want := []string{"cstring", "msg", "hello", "", "world"}
	if len(inst.Args) != len(want) {
		t.Fatalf("args = %#v", inst.Args)
	}
	for i := range want {
		if inst.Args[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, inst.Args[i], want[i])
		}
	}
}

func Test_Instruction_String_Roundtrip(t *testing.T) {
	inst := ParseLine("calc add 1 2 r")
	if got := inst.String(); got != "calc add 1 2 r" {
		t.Fatalf("String() = %q", got)
	}
}
