package engine

// scrollState tracks a viewport's offset; the bound is the content extent
// minus the viewport, recomputed at every layout
type scrollState struct {
	x, y         int
	maxX, maxY   int
	viewW, viewH int
}

func (s *scrollState) setBounds(maxX, maxY int) {
	s.maxX, s.maxY = max(0, maxX), max(0, maxY)
	s.clamp()
}

func (s *scrollState) clamp() {
	s.x = max(0, min(s.x, s.maxX))
	s.y = max(0, min(s.y, s.maxY))
}

// to moves to (x, y) clamped; reports whether the offset changed
func (s *scrollState) to(x, y int) bool {
	px, py := s.x, s.y
	s.x, s.y = x, y
	s.clamp()
	return px != s.x || py != s.y
}

func (s *scrollState) by(dx, dy int) bool {
	return s.to(s.x+dx, s.y+dy)
}

// pageDelta scrolls by a full viewport less one row of context
func (s *scrollState) pageDelta() int {
	return max(1, s.viewH-1)
}

func (s *scrollState) handleKey(code KeyCode) fieldResult {
	step := func(ok bool) fieldResult { return fieldResult{changed: ok} }
	switch code {
	case KeyUp:
		return step(s.by(0, -1))
	case KeyDown:
		return step(s.by(0, 1))
	case KeyLeft:
		return step(s.by(-1, 0))
	case KeyRight:
		return step(s.by(1, 0))
	case KeyPageUp:
		return step(s.by(0, -s.pageDelta()))
	case KeyPageDown:
		return step(s.by(0, s.pageDelta()))
	case KeyHome:
		return step(s.to(s.x, 0))
	case KeyEnd:
		return step(s.to(s.x, s.maxY))
	}
	return fieldResult{}
}
