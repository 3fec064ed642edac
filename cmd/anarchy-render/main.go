// anarchy-render renders one frame of an Anarchy shader program to a
// PNG file, or (with -repl) re-parses and re-renders a program after
// every line entered at an interactive prompt.
//
// Config is flag-based, following the teacher's cmd/msg/main.go shape;
// the -repl line-editing loop is grounded on the same file's
// liner-backed read loop.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/anarchy-lang/anarchy"
)

const historyFile = ".anarchy_history"

func main() {
	var (
		width  = flag.Uint("width", 100, "frame width in pixels")
		height = flag.Uint("height", 100, "frame height in pixels")
		timeF  = flag.Float64("time", 0, "time input passed to the shader")
		random = flag.Float64("random", 0.5, "random input passed to the shader")
		budget = flag.Int("budget", 0, "instruction budget per frame (0 = default)")
		out    = flag.String("o", "out.png", "output PNG path")
		repl   = flag.Bool("repl", false, "enter an interactive re-render loop instead of rendering a file")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *repl {
		runREPL(log, uint32(*width), uint32(*height), *timeF, *random, *budget)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: anarchy-render [flags] <source.anarchy>")
		os.Exit(2)
	}
	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Error("reading source", "path", flag.Arg(0), "error", err)
		os.Exit(1)
	}

	r := anarchy.NewRenderer()
	r.Budget = *budget
	if perr := r.Parse(string(src)); perr != nil {
		fmt.Fprintln(os.Stderr, anarchy.WrapErrorWithSource(perr, string(src)))
		os.Exit(1)
	}

	if err := renderToPNG(r, uint32(*width), uint32(*height), *timeF, *random, *out); err != nil {
		fmt.Fprintln(os.Stderr, anarchy.WrapErrorWithSource(err, string(src)))
		os.Exit(1)
	}
	log.Info("rendered frame", "path", *out, "width", *width, "height", *height)
}

func renderToPNG(r *anarchy.Renderer, width, height uint32, timeF, random float64, path string) error {
	buf := make([]byte, 4*int(width)*int(height))
	if rerr := r.Execute(buf, width, height, timeF, random); rerr != nil {
		return rerr
	}
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	copy(img.Pix, buf)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return png.Encode(f, img)
}

func runREPL(log *slog.Logger, width, height uint32, timeF, random float64, budget int) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(historyFile); err == nil {
		_, _ = ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			_, _ = ln.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println("Anarchy shader REPL. Enter a program on one line; Ctrl+D exits.")
	r := anarchy.NewRenderer()
	r.Budget = budget
	for {
		line, err := ln.Prompt("anarchy> ")
		if err != nil {
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		if perr := r.Parse(line); perr != nil {
			fmt.Println(anarchy.WrapErrorWithSource(perr, line))
			continue
		}
		const out = "repl_frame.png"
		if rerr := renderToPNG(r, width, height, timeF, random, out); rerr != nil {
			fmt.Println(anarchy.WrapErrorWithSource(rerr, line))
			continue
		}
		log.Info("rendered frame", "path", out)
	}
}
