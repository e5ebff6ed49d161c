package display

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/svanichkin/flick/internal/sink"
)

// Terminal renders surfaces with Unicode half blocks, two pixel rows per
// text line, redrawing in place.
type Terminal struct {
	w    *bufio.Writer
	cols int // 0 means unlimited
	rows int
}

// NewTerminal returns a renderer writing to out. When out is a terminal the
// output is cropped to its size.
func NewTerminal(out *os.File) *Terminal {
	t := &Terminal{w: bufio.NewWriter(out)}
	if fd := int(out.Fd()); term.IsTerminal(fd) {
		if cols, rows, err := term.GetSize(fd); err == nil {
			t.cols, t.rows = cols, rows-1
		}
	}
	return t
}

// NewTerminalWriter returns a renderer writing to w, cropped to cols×rows
// characters when both are positive.
func NewTerminalWriter(w io.Writer, cols, rows int) *Terminal {
	return &Terminal{w: bufio.NewWriter(w), cols: cols, rows: rows}
}

// Draw paints s from the top-left corner of the terminal.
func (t *Terminal) Draw(s sink.Surface) error {
	b := s.Bounds()
	w, h := b.Dx(), b.Dy()
	if t.cols > 0 {
		w = min(w, t.cols)
	}
	if t.rows > 0 {
		h = min(h, 2*t.rows)
	}

	t.w.WriteString("\x1b[H")
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := sink.IsForeground(s, x, y)
			bottom := sink.IsForeground(s, x, y+1)
			switch {
			case top && bottom:
				t.w.WriteRune('█')
			case top:
				t.w.WriteRune('▀')
			case bottom:
				t.w.WriteRune('▄')
			default:
				t.w.WriteByte(' ')
			}
		}
		t.w.WriteString("\x1b[K\n")
	}
	return t.w.Flush()
}

// Status prints one line below the picture.
func (t *Terminal) Status(format string, args ...any) error {
	fmt.Fprintf(t.w, "\x1b[K"+format+"\n", args...)
	return t.w.Flush()
}

// Clear erases the screen.
func (t *Terminal) Clear() error {
	t.w.WriteString("\x1b[2J\x1b[H")
	return t.w.Flush()
}
