package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	seta "github.com/PerSoftware/Seta"
)

const (
	appName     = "seta"
	historyFile = ".seta_history"
	promptMain  = "soc> "
)

var banner = fmt.Sprintf("Seta %s SOC REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", seta.VersionString)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(seta.VersionString)
	case "-h", "--help", "help":
		usage()
	default:
		// Bare `seta <file.soc>` runs the file, matching the original tool.
		if strings.HasPrefix(cmd, "-") {
			fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
			usage()
			os.Exit(2)
		}
		os.Exit(cmdRun(os.Args[1:]))
	}
}

func usage() {
	fmt.Printf(`Seta %s

Usage:
  %s run <file.soc>     Run a string-operation-code file.
  %s repl               Start an interactive SOC session.
  %s version            Print the interpreter version.

`, seta.VersionString, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, red("ERROR: no source file."))
		return 1
	}
	ip := seta.New(args[0], seta.ModeSOC)
	if ip.Run() == seta.StatusError {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	rt := seta.NewRuntime()
	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		rt.Exec(seta.ParseLine(line))
		// Diagnostics are advisory in a session; keep the prompt alive.
		if rt.Status() == seta.StatusError {
			rt.SetStatus(seta.StatusRunning)
		}
		ln.AppendHistory(line)
	}
}
