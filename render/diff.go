package render

import "github.com/lixenwraith/termgraph/terminal"

// Diff appends to dst every cell of back that differs from front.
// A size mismatch emits every cell of back.
func Diff(dst []terminal.CellUpdate, front, back *Buffer) []terminal.CellUpdate {
	full := front == nil || front.width != back.width || front.height != back.height
	for y := 0; y < back.height; y++ {
		row := y * back.width
		for x := 0; x < back.width; x++ {
			c := back.cells[row+x]
			if !full && front.cells[row+x] == c {
				continue
			}
			dst = append(dst, terminal.CellUpdate{X: x, Y: y, Cell: c})
		}
	}
	return dst
}
