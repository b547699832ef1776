package core

import "strings"

// Cell is one character position of a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a grid of cells that games draw into each frame. Frontends turn
// it into terminal output. Writes outside the grid are dropped.
type Screen struct {
	w, h  int
	cells []Cell // Row-major, len w*h
}

// NewScreen returns a blank w×h screen.
func NewScreen(w, h int) *Screen {
	s := &Screen{}
	s.Resize(w, h)
	return s
}

// Width returns the number of columns.
func (s *Screen) Width() int { return s.w }

// Height returns the number of rows.
func (s *Screen) Height() int { return s.h }

// Resize changes the dimensions, keeping the overlapping top-left area.
func (s *Screen) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if s.cells != nil && w == s.w && h == s.h {
		return
	}

	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i] = blankCell
	}
	for y := range min(h, s.h) {
		n := min(w, s.w)
		copy(cells[y*w:y*w+n], s.cells[y*s.w:y*s.w+n])
	}
	s.w, s.h, s.cells = w, h, cells
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return 0, false
	}
	return y*s.w + x, true
}

// Set writes r with the default color.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored writes r with color c.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), or a space outside the grid.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell outside the grid.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blankCell
}

// DrawText writes text left to right from (x, y) in the default color.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes text left to right from (x, y), one cell per rune.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered writes text centered on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	s.DrawTextColored((s.w-len([]rune(text)))/2, y, text, c)
}

// DrawRect fills r with fill.
func (s *Screen) DrawRect(r Rect, fill rune, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		s.DrawHLine(r.X, y, r.W, fill, c)
	}
}

// DrawBox outlines r with single-line box characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	right, bottom := r.Right()-1, r.Bottom()-1

	s.DrawHLine(r.X+1, r.Y, r.W-2, '─', c)
	s.DrawHLine(r.X+1, bottom, r.W-2, '─', c)
	s.DrawVLine(r.X, r.Y+1, r.H-2, '│', c)
	s.DrawVLine(right, r.Y+1, r.H-2, '│', c)

	s.SetColored(r.X, r.Y, '┌', c)
	s.SetColored(right, r.Y, '┐', c)
	s.SetColored(r.X, bottom, '└', c)
	s.SetColored(right, bottom, '┘', c)
}

// DrawHLine writes n copies of ch rightwards from (x, y).
func (s *Screen) DrawHLine(x, y, n int, ch rune, c Color) {
	for i := range max(n, 0) {
		s.SetColored(x+i, y, ch, c)
	}
}

// DrawVLine writes n copies of ch downwards from (x, y).
func (s *Screen) DrawVLine(x, y, n int, ch rune, c Color) {
	for i := range max(n, 0) {
		s.SetColored(x, y+i, ch, c)
	}
}

// Row returns row y as plain text. Rows outside the grid are all spaces.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.h {
		return strings.Repeat(" ", s.w)
	}
	var b strings.Builder
	for _, c := range s.cells[y*s.w : (y+1)*s.w] {
		b.WriteRune(c.Rune)
	}
	return b.String()
}

// String returns the whole grid as plain text, rows joined by newlines.
func (s *Screen) String() string {
	rows := make([]string, s.h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
