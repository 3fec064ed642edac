// anarchy-preview is a terminal shader playground: it reads an Anarchy
// program (from a file argument, or interactively via a liner prompt,
// grounded on the teacher's cmd/msg/main.go read loop), then hands it
// to a bubbletea event loop that re-evaluates the program every tick
// over a small grid and paints each pixel as a lipgloss-styled block
// downsampled to the terminal's 256-color cube.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peterh/liner"

	"github.com/anarchy-lang/anarchy"
)

func main() {
	var (
		cols   = flag.Uint("cols", 40, "grid width in terminal cells")
		rows   = flag.Uint("rows", 20, "grid height in terminal cells")
		fps    = flag.Float64("fps", 12, "ticks per second")
		random = flag.Float64("random", 0.5, "random input passed to the shader")
		budget = flag.Int("budget", 0, "instruction budget per frame (0 = default)")
	)
	flag.Parse()

	src, err := sourceFromArgsOrPrompt()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	r := anarchy.NewRenderer()
	r.Budget = *budget
	if perr := r.Parse(src); perr != nil {
		fmt.Fprintln(os.Stderr, anarchy.WrapErrorWithSource(perr, src))
		os.Exit(1)
	}

	m := newModel(r, uint32(*cols), uint32(*rows), *random, *fps)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// sourceFromArgsOrPrompt reads a program from the file named as the
// sole positional argument, or — with none given — prompts for one
// line of source via a liner.Liner, matching the teacher's REPL entry
// point.
func sourceFromArgsOrPrompt() (string, error) {
	if flag.NArg() == 1 {
		b, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", flag.Arg(0), err)
		}
		return string(b), nil
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	fmt.Println("Enter an Anarchy shader program on one line:")
	line, err := ln.Prompt("shader> ")
	if err != nil {
		return "", fmt.Errorf("reading shader source: %w", err)
	}
	if strings.TrimSpace(line) == "" {
		return "", fmt.Errorf("no source given")
	}
	return line, nil
}
