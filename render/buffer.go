package render

import "github.com/lixenwraith/termgraph/terminal"

// Buffer is a width×height grid of cells, row-major
type Buffer struct {
	cells  []terminal.Cell
	width  int
	height int
}

// NewBuffer creates a cleared buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]terminal.Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to blank using exponential copy
func (b *Buffer) Clear() {
	b.Fill(terminal.EmptyCell)
}

// Fill sets every cell to c
func (b *Buffer) Fill(c terminal.Cell) {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = c
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Size returns the buffer dimensions
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// Bounds returns the full buffer rect
func (b *Buffer) Bounds() Rect {
	return Rect{W: b.width, H: b.height}
}

// inBounds returns true if in buffer bounds
func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y); out of bounds yields the zero cell
func (b *Buffer) Get(x, y int) terminal.Cell {
	if !b.inBounds(x, y) {
		return terminal.Cell{}
	}
	return b.cells[y*b.width+x]
}

// Set writes the cell at (x, y) if in bounds
func (b *Buffer) Set(x, y int, c terminal.Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
}

// Cells exposes the backing slice
func (b *Buffer) Cells() []terminal.Cell {
	return b.cells
}

// Region returns a painter clipped to clip and the buffer bounds
func (b *Buffer) Region(clip Rect) Region {
	return Region{buf: b, clip: clip.Intersect(b.Bounds())}
}
