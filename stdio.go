package seta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ANSI color codes used by the console. ColorBlue is the bright variant to
// stay readable on dark terminals.
const (
	ColorRed     = "\x1b[31m"
	ColorGreen   = "\x1b[32m"
	ColorYellow  = "\x1b[33m"
	ColorBlue    = "\x1b[36m"
	ColorDefault = "\x1b[0m"
)

// Console is the terminal surface the runtime and the builtins talk to.
// Tests substitute buffers via WithConsole; color escapes are suppressed
// when Colors is false so captured output stays clean.
type Console struct {
	Out    io.Writer
	Err    io.Writer
	Colors bool

	in *bufio.Reader
}

// NewConsole wires a console to the process stdio with colors enabled.
func NewConsole() *Console {
	return &Console{
		Out:    os.Stdout,
		Err:    os.Stderr,
		Colors: true,
		in:     bufio.NewReader(os.Stdin),
	}
}

// NewBufferConsole builds a console over the given streams with colors off.
func NewBufferConsole(in io.Reader, out, errw io.Writer) *Console {
	return &Console{Out: out, Err: errw, in: bufio.NewReader(in)}
}

// Output writes msg without a trailing newline.
func (c *Console) Output(msg string) {
	fmt.Fprint(c.Out, msg)
}

// Print writes msg followed by a newline.
func (c *Console) Print(msg string) {
	fmt.Fprintln(c.Out, msg)
}

// SetColor switches the output color on the error stream. No-op when colors
// are disabled.
func (c *Console) SetColor(color string) {
	if c.Colors {
		fmt.Fprint(c.Err, color)
	}
}

// Error writes msg to the error stream.
func (c *Console) Error(msg string) {
	fmt.Fprint(c.Err, msg)
}

// ReadLine blocks for one line of input, without the trailing newline.
// Returns io.EOF when the input stream is exhausted.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
