package sink

import "image"

// Round displays letterbox a canvas scaled by RoundNum/RoundDen (the square
// inscribed in the circle).
const (
	RoundNum = 70711
	RoundDen = 100000
)

// Center returns the offset that centres a w×h canvas on bounds. The offset
// is negative on each axis where the canvas is larger than the surface.
func Center(bounds image.Rectangle, w, h int) image.Point {
	return image.Pt((bounds.Dx()-w)/2, (bounds.Dy()-h)/2)
}

// LogicalSize derives a canvas size from surface bounds, scaled down for
// round displays.
func LogicalSize(bounds image.Rectangle, round bool) (w, h int) {
	w, h = bounds.Dx(), bounds.Dy()
	if round {
		w = w * RoundNum / RoundDen
		h = h * RoundNum / RoundDen
	}
	return w, h
}

// Sink writes foreground pixels of a logical canvas into a Surface, centred.
// Coordinates are canvas-relative; writes landing outside the surface are
// dropped.
type Sink struct {
	surf   Surface
	format Format
	bounds image.Rectangle
	origin image.Point
	w, h   int
}

// New returns a sink centring a w×h canvas on surf.
func New(surf Surface, w, h int) *Sink {
	b := surf.Bounds()
	return &Sink{
		surf:   surf,
		format: surf.Format(),
		bounds: b,
		origin: Center(b, w, h),
		w:      w,
		h:      h,
	}
}

// Surface returns the target surface.
func (s *Sink) Surface() Surface { return s.surf }

// Offset returns the centring offset applied to every write.
func (s *Sink) Offset() image.Point { return s.origin }

// Size returns the logical canvas size.
func (s *Sink) Size() (w, h int) { return s.w, s.h }

// SetForeground paints canvas pixel (x, y) with the foreground colour.
func (s *Sink) SetForeground(x, y int) {
	px, py := x+s.origin.X, y+s.origin.Y
	if !(image.Point{px, py}.In(s.bounds)) {
		return
	}
	row := s.surf.Row(py)
	switch s.format {
	case FormatPacked1:
		row[px/8] |= 1 << (7 - uint(px)%8)
	case FormatIndexed8:
		row[px] = ForegroundIndex
	}
}

// Fill paints the canvas rectangle r with the foreground colour.
func (s *Sink) Fill(r image.Rectangle) {
	r = r.Add(s.origin).Intersect(s.bounds)
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := s.surf.Row(y)
		switch s.format {
		case FormatPacked1:
			fillBits(row, r.Min.X, r.Max.X)
		case FormatIndexed8:
			for x := r.Min.X; x < r.Max.X; x++ {
				row[x] = ForegroundIndex
			}
		}
	}
}

// Clear paints every row of the surface with the background colour.
func (s *Sink) Clear() {
	for y := 0; y < s.bounds.Dy(); y++ {
		row := s.surf.Row(y)
		var bg byte
		if s.format == FormatIndexed8 {
			bg = BackgroundIndex
		}
		for i := range row {
			row[i] = bg
		}
	}
}

// fillBits sets bits [x0, x1) of a packed row, whole bytes at a time where
// possible.
func fillBits(row []byte, x0, x1 int) {
	for x0 < x1 && x0%8 != 0 {
		row[x0/8] |= 1 << (7 - uint(x0)%8)
		x0++
	}
	for ; x0+8 <= x1; x0 += 8 {
		row[x0/8] = 0xff
	}
	for ; x0 < x1; x0++ {
		row[x0/8] |= 1 << (7 - uint(x0)%8)
	}
}
