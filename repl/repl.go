/*
File    : lazylang/repl/repl.go
Package : repl

Package repl implements the interactive shell: readline for line
editing and history, fatih/color for feedback, a persistent Evaluator
across lines so top-level bindings survive between prompts.

Two modes, both driving the same underlying eval.Evaluator:

  - Immediate mode (default): every line the user submits is parsed
    and evaluated on its own. This covers single-line programs fine
    but cannot express a multi-line if/while/function body in one go;
    Lazy's block constructs need the buffered mode below for that.
  - Buffered mode: lines accumulate in a pending buffer until the
    literal line "run" parses and executes the whole buffer (then
    clears it) or "exit" ends the session.
*/
package repl

import (
	"bufio"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/sleepingmovie/lazylang/eval"
	"github.com/sleepingmovie/lazylang/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration for one interactive session.
type Repl struct {
	Banner   string
	Version  string
	Author   string
	License  string
	Prompt   string
	Buffered bool

	// HasSeed/Seed override the evaluator's RNG seed, for reproducible
	// demo sessions; HasSeed false means "seed from wall-clock time".
	HasSeed bool
	Seed    uint64
}

// New creates a Repl with the given banner/version/author/license/prompt.
func New(banner, version, author, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, License: license, Prompt: prompt}
}

// printBanner writes the welcome banner and usage hint.
func (r *Repl) printBanner(w io.Writer) {
	line := strings.Repeat("-", 60)
	blueColor.Fprintln(w, line)
	greenColor.Fprintln(w, r.Banner)
	blueColor.Fprintln(w, line)
	cyanColor.Fprintf(w, "lazy %s | %s | %s\n", r.Version, r.Author, r.License)
	if r.Buffered {
		cyanColor.Fprintln(w, "buffered mode: type 'run' to execute, 'exit' to quit")
	} else {
		cyanColor.Fprintln(w, "immediate mode: each line runs as its own program, Ctrl-D to quit")
	}
	blueColor.Fprintln(w, line)
}

// Start runs the REPL loop and writes the banner and program output to
// out. The in parameter is not passed through to readline: readline
// drives the real terminal directly, so an interactive session always
// reads from the process's actual stdin regardless of in.
func (r *Repl) Start(in io.Reader, out io.Writer) error {
	r.printBanner(out)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	ev := newEvaluator(out, rl, r)

	var pending []string
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF (Ctrl-D) or readline.ErrInterrupt
			out.Write([]byte("bye\n"))
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			out.Write([]byte("bye\n"))
			return nil
		}

		if r.Buffered {
			if line == "run" {
				runSource(out, ev, strings.Join(pending, "\n"))
				pending = nil
			} else {
				pending = append(pending, line)
			}
			continue
		}

		runSource(out, ev, line)
	}
}

// newEvaluator builds the Evaluator shared across every line of a
// session: In re-reads from the same readline instance so the
// language's own "+?" input statements prompt on the same terminal,
// Out writes plain program output. The input prompt temporarily
// replaces the shell prompt for the duration of the read.
func newEvaluator(out io.Writer, rl *readline.Instance, r *Repl) *eval.Evaluator {
	writer := func(s string) { out.Write([]byte(s + "\n")) }
	reader := func(prompt string) (string, bool) {
		rl.SetPrompt(prompt)
		line, err := rl.Readline()
		rl.SetPrompt(r.Prompt)
		if err != nil {
			return "", false
		}
		return strings.TrimSpace(line), true
	}

	ev := eval.New(writer, reader)
	if r.HasSeed {
		ev.WithSeed(r.Seed)
	}
	return ev
}

// runSource parses and evaluates one source blob with panic recovery.
// The permissive evaluator never itself panics on a well-formed
// program; this only guards against a programming error in the
// evaluator.
func runSource(out io.Writer, ev *eval.Evaluator, src string) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(out, "[runtime error] %v\n", rec)
		}
	}()

	stmts, diags := parser.Parse(src)
	for _, d := range diags {
		redColor.Fprintf(out, "[parse] %s\n", d)
	}
	ev.Run(stmts)
}

// RunFile parses and executes a whole source file, with program input
// (the language's own "+?") sourced from stdinReader and output written
// to w. Input prompts print to w without a trailing newline, the same
// way the interactive shell shows them. Returns the parser diagnostics,
// if any.
func RunFile(w io.Writer, src string, stdinReader io.Reader) []string {
	scanner := bufio.NewScanner(stdinReader)
	reader := func(prompt string) (string, bool) {
		w.Write([]byte(prompt))
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}
	writer := func(s string) { w.Write([]byte(s + "\n")) }

	ev := eval.New(writer, reader)
	stmts, diags := parser.Parse(src)
	ev.Run(stmts)
	return diags
}
