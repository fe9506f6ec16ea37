package seta

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSOC(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.soc")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func interpreterFor(t *testing.T, path string, mode Mode) (*Interpreter, *testIO) {
	t.Helper()
	io := &testIO{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	ip := New(path, mode, WithConsole(NewBufferConsole(strings.NewReader(""), io.out, io.err)))
	return ip, io
}

func Test_New_Run_End_To_End(t *testing.T) {
	path := writeSOC(t, strings.Join([]string{
		"SETA-SOC 1.0",
		"set numeric base 2",
		"calc power base 8 r",
		"load display",
		"call r",
	}, "\n")+"\n")

	ip, io := interpreterFor(t, path, ModeSOC)
	if st := ip.Run(); st != StatusQuited {
		t.Fatalf("run status = %v, diagnostics:\n%s", st, io.err.String())
	}
	if io.out.String() != "256" {
		t.Fatalf("program output = %q", io.out.String())
	}
}

func Test_New_Missing_File_Is_RunningException(t *testing.T) {
	ip, io := interpreterFor(t, filepath.Join(t.TempDir(), "absent.soc"), ModeSOC)
	wantClass(t, io, ClassRunning)
	if st := ip.Run(); st != StatusError {
		t.Fatalf("run status = %v, want error without executing anything", st)
	}
}

func Test_New_Invalid_Mode_Is_RunningException(t *testing.T) {
	path := writeSOC(t, "SETA-SOC 1.0\nemp\n")
	_, io := interpreterFor(t, path, Mode(9))
	wantClass(t, io, ClassRunning)
	if !strings.Contains(io.err.String(), "Running mode 9 is invalid.") {
		t.Fatalf("diagnostics:\n%s", io.err.String())
	}
}

func Test_New_Header_Diagnostic_Surfaces(t *testing.T) {
	path := writeSOC(t, "SETA-SOC 99.0\nemp\n")
	ip, io := interpreterFor(t, path, ModeSOC)
	wantClass(t, io, ClassPrecheck)
	if st := ip.Run(); st != StatusError {
		t.Fatalf("run status = %v", st)
	}
}

func Test_Runtime_Accessor_Exposes_Engine(t *testing.T) {
	path := writeSOC(t, "SETA-SOC 1.0\nset numeric x 1\n")
	ip, _ := interpreterFor(t, path, ModeSOC)
	ip.Run()
	if ip.Runtime().LookupVariable("x") == nil {
		t.Fatal("engine state not reachable through Runtime()")
	}
}
