// errors.go — the structured error channel (spec.md §6.2, §7).
//
// Two error kinds, ParseError and RuntimeError, both carrying a
// Location: a Span, a single Pos, or no location at all. Both also
// implement the standard `error` interface so they compose with
// ordinary Go error handling, and both can be rendered as a
// caret-annotated source snippet for a terminal host — the same
// presentation the teacher's errors.go builds for its own
// *LexError/*ParseError/*RuntimeError via WrapErrorWithSource.
package anarchy

import (
	"fmt"
	"strings"
)

// LocationKind discriminates the three shapes a Location can take.
type LocationKind int

const (
	LocNone LocationKind = iota
	LocSpan
	LocPos
)

// Location is the host-visible location shape from spec.md §6.2.
type Location struct {
	Kind LocationKind
	Span Span
	Pos  Pos
}

func spanLoc(s Span) Location { return Location{Kind: LocSpan, Span: s} }
func posLoc(p Pos) Location   { return Location{Kind: LocPos, Pos: p} }

// start returns the location's first line/col, used for caret rendering.
func (l Location) start() (int, int, bool) {
	switch l.Kind {
	case LocSpan:
		return l.Span.Start.Line, l.Span.Start.Col, true
	case LocPos:
		return l.Pos.Line, l.Pos.Col, true
	default:
		return 0, 0, false
	}
}

// ParseError is returned by Parse when the source is ill-formed.
type ParseError struct {
	Message  string
	Location Location
}

func (e *ParseError) Error() string {
	if line, col, ok := e.Location.start(); ok {
		return fmt.Sprintf("parse error at %d:%d: %s", line, col, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func parseErrAt(pos Pos, format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Location: posLoc(pos)}
}

func parseErrSpan(span Span, format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Location: spanLoc(span)}
}

// RuntimeError is produced by the evaluator and the renderer driver.
type RuntimeError struct {
	Message  string
	Location Location
}

func (e *RuntimeError) Error() string {
	if line, col, ok := e.Location.start(); ok {
		return fmt.Sprintf("runtime error at %d:%d: %s", line, col, e.Message)
	}
	return fmt.Sprintf("runtime error: %s", e.Message)
}

// WrapErrorWithSource renders a *ParseError or *RuntimeError as a
// multi-line, caret-annotated snippet of src. Any other error is
// returned unchanged — mirrors the teacher's WrapErrorWithSource.
func WrapErrorWithSource(err error, src string) error {
	var header string
	var loc Location
	var msg string
	switch e := err.(type) {
	case *ParseError:
		header, loc, msg = "PARSE ERROR", e.Location, e.Message
	case *RuntimeError:
		header, loc, msg = "RUNTIME ERROR", e.Location, e.Message
	default:
		return err
	}
	line, col, ok := loc.start()
	if !ok {
		return fmt.Errorf("%s: %s", header, msg)
	}
	return fmt.Errorf("%s", prettyErrorSnippet(src, header, line, col, msg))
}

func prettyErrorSnippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
