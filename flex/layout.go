package flex

import "math"

// epsilon absorbs float noise when breaking lines
const epsilon = 1e-6

type flexItem struct {
	n *node

	margin      EdgeValues
	marginMain  float64
	marginCross float64
	align       Align
	stretch     bool

	avail Size

	basis, hypo      float64
	minMain, maxMain float64
	minCross         float64
	maxCross         float64
	crossFixed       float64
	grow, shrink     float64

	target float64
	cross  float64
	frozen bool
}

func (it *flexItem) factor(grow bool) float64 {
	if grow {
		return it.grow
	}
	return it.shrink * it.basis
}

type flexLine struct {
	items []*flexItem
	main  float64
	cross float64
}

// ComputeLayout lays out the subtree rooted at root within available.
// Auto root dimensions fill the available size.
func (t *Tree) ComputeLayout(root NodeID, available Size) error {
	n, err := t.get(root)
	if err != nil {
		return err
	}
	s := &n.style
	margin := s.Margin.resolve(available.Width)
	avail := Size{
		Width:  sub(available.Width, margin.Horizontal()),
		Height: sub(available.Height, margin.Vertical()),
	}
	forced := Size{
		Width:  s.Width.resolve(available.Width),
		Height: s.Height.resolve(available.Height),
	}
	if undefined(forced.Width) {
		forced.Width = avail.Width
	}
	if undefined(forced.Height) {
		forced.Height = avail.Height
	}

	t.layoutNode(n, avail, forced, available, true)
	n.layout.X = margin.Left
	n.layout.Y = margin.Top
	return nil
}

// layoutNode returns the border-box size of n. forced fixes axes decided by
// the parent (NaN when free); avail bounds the border box; parent is the
// containing block for percentages. perform also positions descendants.
func (t *Tree) layoutNode(n *node, avail, forced, parent Size, perform bool) Size {
	if perform {
		if n.placing.match(avail, forced, parent) {
			return n.placing.size
		}
	} else {
		if n.placing.match(avail, forced, parent) {
			return n.placing.size
		}
		for i := range n.sizing {
			if n.sizing[i].match(avail, forced, parent) {
				return n.sizing[i].size
			}
		}
	}

	size := t.computeNode(n, avail, forced, parent, perform)
	entry := cacheEntry{valid: true, avail: avail, forced: forced, parent: parent, size: size}
	if perform {
		n.placing = entry
		n.dirty = false
	} else {
		n.sizing[n.sizingNext] = entry
		n.sizingNext = (n.sizingNext + 1) % sizingSlots
	}
	return size
}

func (t *Tree) computeNode(n *node, avail, forced, parent Size, perform bool) Size {
	s := &n.style
	border := s.Border.resolve(parent.Width)
	padding := s.Padding.resolve(parent.Width)
	padH := border.Horizontal() + padding.Horizontal()
	padV := border.Vertical() + padding.Vertical()

	minW := math.Max(zeroIfUndefined(s.MinWidth.resolve(parent.Width)), padH)
	maxW := s.MaxWidth.resolve(parent.Width)
	minH := math.Max(zeroIfUndefined(s.MinHeight.resolve(parent.Height)), padV)
	maxH := s.MaxHeight.resolve(parent.Height)

	width := forced.Width
	if undefined(width) {
		width = s.Width.resolve(parent.Width)
	}
	if defined(width) {
		width = clamp(width, minW, maxW)
	}
	height := forced.Height
	if undefined(height) {
		height = s.Height.resolve(parent.Height)
	}
	if defined(height) {
		height = clamp(height, minH, maxH)
	}

	if perform {
		n.layout.Border = border
		n.layout.Padding = padding
	}

	if !t.hasDisplayedChildren(n) {
		if undefined(width) || undefined(height) {
			var content Size
			if n.measure != nil {
				known := Size{Width: sub(width, padH), Height: sub(height, padV)}
				space := Size{Width: sub(avail.Width, padH), Height: sub(avail.Height, padV)}
				if defined(known.Width) {
					space.Width = known.Width
				}
				if defined(known.Height) {
					space.Height = known.Height
				}
				content = n.measure(known, space)
			}
			if undefined(width) {
				width = clamp(zeroIfUndefined(content.Width)+padH, minW, maxW)
			}
			if undefined(height) {
				height = clamp(zeroIfUndefined(content.Height)+padV, minH, maxH)
			}
		}
		if perform {
			n.layout.Width, n.layout.Height = width, height
			n.content = Size{}
			t.hideChildren(n)
		}
		return Size{Width: width, Height: height}
	}

	row := s.Direction.isRow()
	scroll := s.Overflow == OverflowScroll

	innerW := sub(width, padH)
	innerH := sub(height, padV)
	availW, availH := innerW, innerH
	if undefined(availW) {
		availW = sub(avail.Width, padH)
	}
	if undefined(availH) {
		availH = sub(avail.Height, padV)
	}
	containing := Size{Width: innerW, Height: innerH}
	mainDef, crossDef := axis(row, innerW, innerH)
	mainAvail, crossAvail := axis(row, availW, availH)
	if scroll {
		mainAvail = math.NaN()
	}

	mainGapDim, crossGapDim := s.RowGap, s.ColumnGap
	if row {
		mainGapDim, crossGapDim = s.ColumnGap, s.RowGap
	}
	mainGap := zeroIfUndefined(mainGapDim.resolve(mainDef))
	crossGap := zeroIfUndefined(crossGapDim.resolve(crossDef))

	var items []*flexItem
	var absolute []*node
	for _, id := range n.children {
		c, ok := t.nodes[id]
		if !ok || c.style.Display == DisplayNone {
			continue
		}
		if c.style.Position == PositionAbsolute {
			absolute = append(absolute, c)
			continue
		}
		items = append(items, t.newItem(c, row, containing, mainAvail, crossAvail, crossDef, s.AlignItems))
	}

	// Line breaking
	var lines []*flexLine
	wrapLimit := mainDef
	if undefined(wrapLimit) {
		wrapLimit = mainAvail
	}
	if s.Wrap != NoWrap && defined(wrapLimit) {
		line := &flexLine{}
		used := 0.0
		for _, it := range items {
			outer := it.hypo + it.marginMain
			if len(line.items) > 0 && used+mainGap+outer > wrapLimit+epsilon {
				lines = append(lines, line)
				line = &flexLine{}
				used = 0
			}
			if len(line.items) > 0 {
				used += mainGap
			}
			used += outer
			line.items = append(line.items, it)
		}
		lines = append(lines, line)
	} else {
		lines = []*flexLine{{items: items}}
	}

	// Main sizes
	for _, line := range lines {
		fixed := 0.0
		if len(line.items) > 1 {
			fixed = mainGap * float64(len(line.items)-1)
		}
		hypo := fixed
		for _, it := range line.items {
			fixed += it.marginMain
			hypo += it.hypo + it.marginMain
			it.target = it.hypo
		}
		if defined(mainDef) {
			switch free := mainDef - hypo; {
			case free > epsilon:
				resolveFlexible(line.items, mainDef, fixed, true)
			case free < -epsilon && !scroll:
				resolveFlexible(line.items, mainDef, fixed, false)
			}
		}
		line.main = fixed
		for _, it := range line.items {
			line.main += it.target
		}
	}

	// Cross sizes
	for _, line := range lines {
		for _, it := range line.items {
			if defined(it.crossFixed) {
				it.cross = clamp(it.crossFixed, it.minCross, it.maxCross)
			} else {
				sz := t.layoutNode(it.n, it.avail, fromAxis(row, it.target, math.NaN()), containing, false)
				_, c := axis(row, sz.Width, sz.Height)
				it.cross = clamp(c, it.minCross, it.maxCross)
			}
			line.cross = math.Max(line.cross, it.cross+it.marginCross)
		}
	}
	if len(lines) == 1 && defined(crossDef) {
		lines[0].cross = crossDef
	}
	for _, line := range lines {
		for _, it := range line.items {
			if it.stretch {
				it.cross = clamp(line.cross-it.marginCross, it.minCross, it.maxCross)
			}
		}
	}

	// Container size from content where not fixed
	contentMain, contentCross := 0.0, 0.0
	for i, line := range lines {
		contentMain = math.Max(contentMain, line.main)
		contentCross += line.cross
		if i > 0 {
			contentCross += crossGap
		}
	}
	if undefined(width) {
		w := contentCross
		if row {
			w = contentMain
		}
		width = clamp(w+padH, minW, maxW)
	}
	if undefined(height) {
		h := contentMain
		if row {
			h = contentCross
		}
		height = clamp(h+padV, minH, maxH)
	}

	if !perform {
		return Size{Width: width, Height: height}
	}

	n.layout.Width, n.layout.Height = width, height
	innerW = math.Max(0, width-padH)
	innerH = math.Max(0, height-padV)
	inner := Size{Width: innerW, Height: innerH}
	mainInner, crossInner := axis(row, innerW, innerH)
	if len(lines) == 1 && undefined(crossDef) {
		lines[0].cross = crossInner
		for _, it := range lines[0].items {
			if it.stretch {
				it.cross = clamp(crossInner-it.marginCross, it.minCross, it.maxCross)
			}
		}
	}
	originMain, originCross := axis(row, border.Left+padding.Left, border.Top+padding.Top)

	crossPos := 0.0
	for _, line := range lines {
		offset, between := justifyOffsets(s.Justify, mainInner-line.main, len(line.items))
		pos := offset
		for _, it := range line.items {
			mStart, mEnd := mainEdges(row, it.margin)
			cStart, cEnd := mainEdges(!row, it.margin)

			pos += mStart
			mainPos := pos
			pos += it.target + mEnd + mainGap + between
			if s.Direction.reversed() {
				mainPos = mainInner - mainPos - it.target
			}

			var cp float64
			switch it.align {
			case AlignEnd:
				cp = line.cross - it.cross - cEnd
			case AlignCenter:
				cp = cStart + (line.cross-it.cross-cStart-cEnd)/2
			default:
				cp = cStart
			}
			cp += crossPos
			if s.Wrap == WrapReverse {
				cp = crossInner - cp - it.cross
			}

			t.layoutNode(it.n, it.avail, fromAxis(row, it.target, it.cross), inner, true)
			x, y := xy(row, originMain+mainPos, originCross+cp)
			it.n.layout.X, it.n.layout.Y = x, y
		}
		crossPos += line.cross + crossGap
	}

	for _, c := range absolute {
		t.placeAbsolute(c, width, height, border, padding, inner)
	}

	t.hideChildren(n)
	n.content = t.extent(n, border, padding, inner)
	return Size{Width: width, Height: height}
}

func (t *Tree) newItem(c *node, row bool, containing Size, mainAvail, crossAvail, crossDef float64, alignItems Align) *flexItem {
	cs := &c.style
	it := &flexItem{n: c, grow: cs.FlexGrow, shrink: cs.FlexShrink}

	it.margin = cs.Margin.resolve(containing.Width)
	it.marginMain, it.marginCross = axis(row, it.margin.Horizontal(), it.margin.Vertical())

	it.align = cs.AlignSelf
	if it.align == AlignAuto {
		it.align = alignItems
	}
	if it.align == AlignAuto {
		it.align = AlignStretch
	}

	mainBase, crossBase := axis(row, containing.Width, containing.Height)
	mainDim, crossDim := axisDims(row, cs.Width, cs.Height)
	minMain, minCross := axisDims(row, cs.MinWidth, cs.MinHeight)
	maxMain, maxCross := axisDims(row, cs.MaxWidth, cs.MaxHeight)
	it.minMain = zeroIfUndefined(minMain.resolve(mainBase))
	it.maxMain = maxMain.resolve(mainBase)
	it.minCross = zeroIfUndefined(minCross.resolve(crossBase))
	it.maxCross = maxCross.resolve(crossBase)

	it.avail = fromAxis(row, sub(mainAvail, it.marginMain), sub(crossAvail, it.marginCross))

	it.crossFixed = crossDim.resolve(crossBase)
	it.stretch = it.align == AlignStretch && undefined(it.crossFixed)

	forcedCross := it.crossFixed
	if it.stretch && defined(crossDef) {
		forcedCross = sub(crossDef, it.marginCross)
	}

	basis := cs.FlexBasis.resolve(mainBase)
	if undefined(basis) {
		basis = mainDim.resolve(mainBase)
	}
	if undefined(basis) {
		sz := t.layoutNode(c, it.avail, fromAxis(row, math.NaN(), forcedCross), containing, false)
		basis, _ = axis(row, sz.Width, sz.Height)
	}
	it.basis = basis
	it.hypo = clamp(basis, it.minMain, it.maxMain)
	return it
}

// placeAbsolute positions c against the padding box of its parent
func (t *Tree) placeAbsolute(c *node, width, height float64, border, padding EdgeValues, inner Size) {
	cs := &c.style
	margin := cs.Margin.resolve(inner.Width)
	left := cs.Inset.Left.resolve(inner.Width)
	right := cs.Inset.Right.resolve(inner.Width)
	top := cs.Inset.Top.resolve(inner.Height)
	bottom := cs.Inset.Bottom.resolve(inner.Height)

	boxW := width - border.Horizontal()
	boxH := height - border.Vertical()

	w := cs.Width.resolve(inner.Width)
	h := cs.Height.resolve(inner.Height)
	if undefined(w) && defined(left) && defined(right) {
		w = math.Max(0, boxW-left-right-margin.Horizontal())
	}
	if undefined(h) && defined(top) && defined(bottom) {
		h = math.Max(0, boxH-top-bottom-margin.Vertical())
	}

	avail := Size{Width: sub(boxW, margin.Horizontal()), Height: sub(boxH, margin.Vertical())}
	sz := t.layoutNode(c, avail, Size{Width: w, Height: h}, inner, true)

	switch {
	case defined(left):
		c.layout.X = border.Left + left + margin.Left
	case defined(right):
		c.layout.X = width - border.Right - right - margin.Right - sz.Width
	default:
		c.layout.X = border.Left + padding.Left + margin.Left
	}
	switch {
	case defined(top):
		c.layout.Y = border.Top + top + margin.Top
	case defined(bottom):
		c.layout.Y = height - border.Bottom - bottom - margin.Bottom - sz.Height
	default:
		c.layout.Y = border.Top + padding.Top + margin.Top
	}
}

// hideChildren zeroes the boxes of children removed from layout
func (t *Tree) hideChildren(n *node) {
	for _, id := range n.children {
		if c, ok := t.nodes[id]; ok && c.style.Display == DisplayNone {
			c.layout = Layout{}
			c.dirty = false
		}
	}
}

func (t *Tree) hasDisplayedChildren(n *node) bool {
	for _, id := range n.children {
		if c, ok := t.nodes[id]; ok && c.style.Display != DisplayNone {
			return true
		}
	}
	return false
}

// extent measures children from the content box origin, margins included
func (t *Tree) extent(n *node, border, padding EdgeValues, inner Size) Size {
	originX := border.Left + padding.Left
	originY := border.Top + padding.Top
	var ext Size
	for _, id := range n.children {
		c, ok := t.nodes[id]
		if !ok || c.style.Display == DisplayNone {
			continue
		}
		m := c.style.Margin.resolve(inner.Width)
		ext.Width = math.Max(ext.Width, c.layout.X+c.layout.Width+m.Right-originX)
		ext.Height = math.Max(ext.Height, c.layout.Y+c.layout.Height+m.Bottom-originY)
	}
	return ext
}

// resolveFlexible distributes free space among unfrozen items, freezing any
// item whose share violates its min/max and retrying with the remainder
func resolveFlexible(items []*flexItem, mainSize, fixed float64, grow bool) {
	for _, it := range items {
		it.target = it.hypo
		it.frozen = it.factor(grow) <= 0
	}
	for range len(items) + 1 {
		used := fixed
		factors := 0.0
		for _, it := range items {
			used += it.target
			if !it.frozen {
				factors += it.factor(grow)
			}
		}
		if factors <= 0 {
			return
		}
		free := mainSize - used
		violated := false
		for _, it := range items {
			if it.frozen {
				continue
			}
			v := it.hypo + free*it.factor(grow)/factors
			c := clamp(v, it.minMain, it.maxMain)
			it.target = c
			if c != v {
				it.frozen = true
				violated = true
			}
		}
		if !violated {
			return
		}
		for _, it := range items {
			if !it.frozen {
				it.target = it.hypo
			}
		}
	}
}

func justifyOffsets(j Justify, free float64, count int) (offset, between float64) {
	if count == 0 {
		return 0, 0
	}
	switch j {
	case JustifyEnd:
		return free, 0
	case JustifyCenter:
		return free / 2, 0
	}
	if free <= 0 {
		return 0, 0
	}
	n := float64(count)
	switch j {
	case JustifySpaceBetween:
		if count > 1 {
			return 0, free / (n - 1)
		}
	case JustifySpaceAround:
		return free / (2 * n), free / n
	case JustifySpaceEvenly:
		return free / (n + 1), free / (n + 1)
	}
	return 0, 0
}

func axis(row bool, w, h float64) (main, cross float64) {
	if row {
		return w, h
	}
	return h, w
}

func axisDims(row bool, w, h Dimension) (main, cross Dimension) {
	if row {
		return w, h
	}
	return h, w
}

func fromAxis(row bool, main, cross float64) Size {
	if row {
		return Size{Width: main, Height: cross}
	}
	return Size{Width: cross, Height: main}
}

func xy(row bool, main, cross float64) (x, y float64) {
	if row {
		return main, cross
	}
	return cross, main
}

// mainEdges returns the start and end margins along the row (true) or column axis
func mainEdges(row bool, e EdgeValues) (start, end float64) {
	if row {
		return e.Left, e.Right
	}
	return e.Top, e.Bottom
}

// clamp bounds v to [lo, hi]; an undefined hi is unbounded
func clamp(v, lo, hi float64) float64 {
	if defined(hi) && v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// sub subtracts b from a, keeping NaN and flooring at zero
func sub(a, b float64) float64 {
	if undefined(a) {
		return a
	}
	return math.Max(0, a-b)
}
