/*
File    : lazylang/cmd/lazy/main.go

Package main is the command-line entry point for the Lazy interpreter.
It is deliberately thin: everything here does is load source text and
hand lines to the eval/parser core, split between file mode and REPL
mode on a spf13/cobra command surface.
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sleepingmovie/lazylang/repl"
)

const (
	version = "v0.1.0"
	author  = "lazylang contributors"
	license = "MIT"
)

var banner = `
  _
 | |    __ _ _____   _
 | |   / _` + "`" + ` |_  / | | |
 | |__| (_| |/ /| |_| |
 |_____\__,_/___|\__, |
                 |___/
`

var (
	buffered bool
	seed     uint64
	prompt   string
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "lazy",
		Short:   "Lazy is a small symbol-keyword scripting language",
		Version: version,
		// No subcommand means interactive REPL.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL()
		},
	}
	root.PersistentFlags().StringVar(&prompt, "prompt", "lazy> ", "REPL prompt string")

	root.AddCommand(newRunCmd(), newReplCmd(), newVersionCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Parse and execute a Lazy source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0])
		},
	}
}

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive Lazy shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL()
		},
	}
	cmd.Flags().BoolVar(&buffered, "buffered", false, "accumulate lines until 'run' executes them or 'exit' quits")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "override the RNG seed for reproducible runs")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the Lazy interpreter version",
		Run: func(cmd *cobra.Command, args []string) {
			color.New(color.FgCyan).Printf("lazy %s (%s license, %s)\n", version, license, author)
		},
	}
}

func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "[file error] could not read %q: %v\n", path, err)
		os.Exit(1)
	}
	diags := repl.RunFile(os.Stdout, string(src), os.Stdin)
	if len(diags) > 0 {
		for _, d := range diags {
			color.New(color.FgRed).Fprintf(os.Stderr, "[parse] %s\n", d)
		}
	}
	return nil
}

func runREPL() error {
	r := repl.New(banner, version, author, license, prompt)
	r.Buffered = buffered
	if seed != 0 {
		r.HasSeed = true
		r.Seed = seed
	}
	if err := r.Start(os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	return nil
}
