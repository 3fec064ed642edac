// renderer.go — the renderer driver (spec.md §4.3, §6.1): owns the
// most recently parsed program and evaluates it once per pixel,
// row-major, writing RGBA bytes into a host-owned buffer.
package anarchy

import "math"

// Renderer is the host-facing API: Parse replaces the current program
// atomically (a failed parse retains the previous program); Execute
// evaluates the current program across a pixel buffer.
type Renderer struct {
	prog *Program
	ip   *Interpreter

	// Budget bounds AST nodes visited per pixel evaluation. Zero means
	// DefaultBudget.
	Budget int
}

// NewRenderer returns a Renderer with no program parsed yet.
func NewRenderer() *Renderer { return &Renderer{} }

// Parse replaces the current program. On failure the previously
// parsed program, if any, is retained.
func (r *Renderer) Parse(source string) *ParseError {
	prog, perr := Parse(source)
	if perr != nil {
		return perr
	}
	ip, rerr := NewInterpreter(prog)
	if rerr != nil {
		// NewInterpreter never actually fails today, but keep the path
		// open rather than ignoring a future error return.
		return &ParseError{Message: rerr.Message, Location: rerr.Location}
	}
	r.prog = prog
	r.ip = ip
	return nil
}

// Execute evaluates the current program across width*height pixels at
// the given time and random seed, writing RGBA bytes into buf. buf
// must be at least 4*width*height bytes. Any runtime error aborts the
// whole call; buf's contents are then unspecified.
func (r *Renderer) Execute(buf []byte, width, height uint32, time, random float64) *RuntimeError {
	if r.prog == nil {
		return &RuntimeError{Message: "no program has been parsed"}
	}
	need := 4 * int(width) * int(height)
	if len(buf) < need {
		return &RuntimeError{Message: "buffer too small for the requested dimensions"}
	}

	r.ip.Budget = r.Budget
	r.ip.ResetBudget()

	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			seed := map[string]Value{
				"x":      NumberValue(float64(x)),
				"y":      NumberValue(float64(y)),
				"time":   NumberValue(time),
				"random": NumberValue(random),
				"r":      NumberValue(0),
				"g":      NumberValue(0),
				"b":      NumberValue(0),
			}
			frame, rerr := r.ip.Eval(r.prog, seed)
			if rerr != nil {
				return rerr
			}
			red, err := channelByte(frame["r"])
			if err != nil {
				return err
			}
			green, err := channelByte(frame["g"])
			if err != nil {
				return err
			}
			blue, err := channelByte(frame["b"])
			if err != nil {
				return err
			}
			off := 4 * (int(y)*int(width) + int(x))
			buf[off+0] = red
			buf[off+1] = green
			buf[off+2] = blue
			buf[off+3] = 255
		}
	}
	return nil
}

// channelByte coerces a color-channel value to a u8 by flooring and
// clamping to [0, 255]; NaN maps to 0.
func channelByte(v Value) (byte, *RuntimeError) {
	if v.Tag != TagNumber {
		return 0, &RuntimeError{Message: "color channel must be a Number, got " + v.Tag.String()}
	}
	n := v.Num
	if math.IsNaN(n) {
		return 0, nil
	}
	n = math.Floor(n)
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return byte(n), nil
}
