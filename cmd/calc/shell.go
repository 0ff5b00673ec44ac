package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/calc"
)

const (
	promptMain = "calc> "
	helpText   = `Commands:
  :funcs   List functions
  :vars    List variables given on the command line
  :help    Show this help
  :quit    Exit
`
)

// prompter reads a line of input after showing a prompt. *liner.State is a
// prompter.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// shell evaluates expressions and reports their results.
type shell struct {
	// vars holds the variables given on the command line. They are never
	// asked for.
	vars    map[string]float64
	digits  int
	verbose bool
	out     io.Writer
}

// collect returns the variables needed to evaluate expr, asking p for any
// that are not already known. sh.vars is not modified.
func (sh *shell) collect(p prompter, expr string) (map[string]float64, error) {
	vars := make(map[string]float64, len(sh.vars))
	for k, v := range sh.vars {
		vars[k] = v
	}
	for _, name := range calc.Vars(expr) {
		if _, ok := vars[name]; ok {
			continue
		}
		v, err := sh.ask(p, name)
		if err != nil {
			return nil, err
		}
		vars[name] = v
	}
	return vars, nil
}

// ask prompts for the value of a variable until the answer is a number.
func (sh *shell) ask(p prompter, name string) (float64, error) {
	q := "value for " + name + ": "
	for {
		s, err := p.Prompt(q)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(sh.out, "not a number, try again")
	}
}

// evaluate calculates expr and prints either the result or the error. The
// result is false if there was an error.
func (sh *shell) evaluate(expr string, vars map[string]float64) bool {
	r, err := calc.Calculate(expr, vars)
	if err != nil {
		fmt.Fprintln(sh.out, sh.describe(err))
		return false
	}
	fmt.Fprintln(sh.out, format(r, sh.digits))
	return true
}

// describe gives the message for an evaluation error. Errors are either input
// errors or arithmetic errors; details are only included in verbose mode.
func (sh *shell) describe(err error) string {
	msg := "input error"
	if calc.IsArithmetic(err) {
		msg = "arithmetic error"
	}
	if sh.verbose {
		msg += ": " + err.Error()
	}
	return msg
}

// format formats a result with a fixed number of digits after the decimal
// point.
func format(r float64, digits int) string {
	switch {
	case math.IsNaN(r):
		return "NaN"
	case math.IsInf(r, 1):
		return "+Inf"
	case math.IsInf(r, -1):
		return "-Inf"
	}
	return decimal.NewFromFloat(r).StringFixed(int32(digits))
}

// command handles a REPL command line starting with a colon. The result is
// true if the REPL should exit.
func (sh *shell) command(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case ":quit", ":q":
		return true
	case ":funcs":
		fmt.Fprintln(sh.out, strings.Join(calc.Funcs(), " "))
	case ":vars":
		for _, name := range sortedNames(sh.vars) {
			fmt.Fprintf(sh.out, "%s = %s\n", name, format(sh.vars[name], sh.digits))
		}
	case ":help":
		fmt.Fprint(sh.out, helpText)
	default:
		fmt.Fprintln(sh.out, "unknown command. Type :help for commands.")
	}
	return false
}

func banner() string {
	return "Calculator\n" +
		"Functions: " + strings.Join(calc.Funcs(), ", ") + " (angles in degrees)\n" +
		"Examples: (sin(90)*12+12)*2-8*8^2\n" +
		"          x+12+y*2\n" +
		"Ctrl+C cancels input, Ctrl+D exits. Type :help for commands."
}

// repl runs the interactive loop and returns the exit code.
func repl(sh *shell, histname string) int {
	fmt.Fprintln(sh.out, banner())

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histname != "" {
		if f, err := os.Open(histname); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(histname)
			if err != nil {
				log.Printf("saving history: %v", err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	for {
		line, err := ln.Prompt(promptMain)
		switch {
		case err == nil: // do nothing
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(sh.out)
			return 0
		default:
			log.Print(err)
			return 1
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(line, ":") {
			if sh.command(line) {
				return 0
			}
			continue
		}
		vars, err := sh.collect(ln, line)
		switch {
		case err == nil:
			sh.evaluate(line, vars)
		case errors.Is(err, liner.ErrPromptAborted):
			// Abandon this expression.
		case errors.Is(err, io.EOF):
			fmt.Fprintln(sh.out)
			return 0
		default:
			log.Print(err)
			return 1
		}
	}
}
