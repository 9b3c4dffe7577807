package flex

import "math"

// Unit tags a Dimension value
type Unit uint8

const (
	UnitAuto Unit = iota
	UnitCells
	UnitPercent
)

// Dimension is a length with an explicit unit so percent resolution is unambiguous
type Dimension struct {
	Value float64
	Unit  Unit
}

// Auto is the unset dimension
var Auto = Dimension{}

// Cells returns a fixed dimension in terminal cells
func Cells(v float64) Dimension {
	return Dimension{Value: v, Unit: UnitCells}
}

// Percent returns a dimension relative to the containing block
func Percent(v float64) Dimension {
	return Dimension{Value: v, Unit: UnitPercent}
}

// IsAuto reports whether the dimension is unset
func (d Dimension) IsAuto() bool {
	return d.Unit == UnitAuto
}

// Valid reports whether the unit is known and the value finite
func (d Dimension) Valid() bool {
	return d.Unit <= UnitPercent && !math.IsNaN(d.Value) && !math.IsInf(d.Value, 0)
}

// resolve returns the length against base, NaN when unresolvable
func (d Dimension) resolve(base float64) float64 {
	switch d.Unit {
	case UnitCells:
		return d.Value
	case UnitPercent:
		if undefined(base) {
			return math.NaN()
		}
		return base * d.Value / 100
	}
	return math.NaN()
}

// Edges holds per-side dimensions
type Edges struct {
	Top, Right, Bottom, Left Dimension
}

// Uniform returns edges with the same value on every side
func Uniform(d Dimension) Edges {
	return Edges{Top: d, Right: d, Bottom: d, Left: d}
}

// EdgeValues holds resolved per-side lengths
type EdgeValues struct {
	Top, Right, Bottom, Left float64
}

func (e Edges) resolve(base float64) EdgeValues {
	return EdgeValues{
		Top:    zeroIfUndefined(e.Top.resolve(base)),
		Right:  zeroIfUndefined(e.Right.resolve(base)),
		Bottom: zeroIfUndefined(e.Bottom.resolve(base)),
		Left:   zeroIfUndefined(e.Left.resolve(base)),
	}
}

// Horizontal returns Left+Right
func (e EdgeValues) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns Top+Bottom
func (e EdgeValues) Vertical() float64 { return e.Top + e.Bottom }

// Direction is the main axis orientation
type Direction uint8

const (
	DirectionColumn Direction = iota
	DirectionRow
	DirectionColumnReverse
	DirectionRowReverse
)

func (d Direction) isRow() bool    { return d == DirectionRow || d == DirectionRowReverse }
func (d Direction) reversed() bool { return d == DirectionColumnReverse || d == DirectionRowReverse }
func (d Direction) Valid() bool    { return d <= DirectionRowReverse }

// Wrap controls line breaking
type Wrap uint8

const (
	NoWrap Wrap = iota
	WrapLines
	WrapReverse
)

func (w Wrap) Valid() bool { return w <= WrapReverse }

// Justify distributes free main-axis space
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

func (j Justify) Valid() bool { return j <= JustifySpaceEvenly }

// Align positions items on the cross axis
type Align uint8

const (
	AlignAuto Align = iota // AlignSelf only: defer to the parent's AlignItems
	AlignStart
	AlignEnd
	AlignCenter
	AlignStretch
)

func (a Align) Valid() bool { return a <= AlignStretch }

// Position selects flow or absolute placement
type Position uint8

const (
	PositionRelative Position = iota
	PositionAbsolute
)

func (p Position) Valid() bool { return p <= PositionAbsolute }

// Overflow controls how children that exceed the content box are treated.
// Scroll lays children out unconstrained on the main axis and never shrinks them.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
)

func (o Overflow) Valid() bool { return o <= OverflowScroll }

// Display removes a node from layout when None
type Display uint8

const (
	DisplayFlex Display = iota
	DisplayNone
)

func (d Display) Valid() bool { return d <= DisplayNone }

// Style is the per-node layout record
type Style struct {
	Display  Display
	Position Position
	Overflow Overflow

	Direction  Direction
	Wrap       Wrap
	Justify    Justify
	AlignItems Align
	AlignSelf  Align

	Width, Height       Dimension
	MinWidth, MinHeight Dimension
	MaxWidth, MaxHeight Dimension

	FlexGrow   float64
	FlexShrink float64
	FlexBasis  Dimension

	Padding Edges
	Margin  Edges
	Border  Edges
	Inset   Edges

	RowGap    Dimension
	ColumnGap Dimension
}

// DefaultStyle returns a column container that stretches its children
func DefaultStyle() Style {
	return Style{
		Direction:  DirectionColumn,
		AlignItems: AlignStretch,
		AlignSelf:  AlignAuto,
		FlexShrink: 1,
	}
}

// Validate reports the first out-of-range field
func (s Style) Validate() error {
	switch {
	case !s.Display.Valid():
		return invalid("display")
	case !s.Position.Valid():
		return invalid("position")
	case !s.Overflow.Valid():
		return invalid("overflow")
	case !s.Direction.Valid():
		return invalid("direction")
	case !s.Wrap.Valid():
		return invalid("wrap")
	case !s.Justify.Valid():
		return invalid("justify")
	case !s.AlignItems.Valid():
		return invalid("align-items")
	case !s.AlignSelf.Valid():
		return invalid("align-self")
	case s.FlexGrow < 0 || math.IsNaN(s.FlexGrow):
		return invalid("flex-grow")
	case s.FlexShrink < 0 || math.IsNaN(s.FlexShrink):
		return invalid("flex-shrink")
	}
	dims := []struct {
		name string
		d    Dimension
	}{
		{"width", s.Width}, {"height", s.Height},
		{"min-width", s.MinWidth}, {"min-height", s.MinHeight},
		{"max-width", s.MaxWidth}, {"max-height", s.MaxHeight},
		{"flex-basis", s.FlexBasis},
		{"row-gap", s.RowGap}, {"column-gap", s.ColumnGap},
	}
	for _, d := range dims {
		if !d.d.Valid() || d.d.Value < 0 {
			return invalid(d.name)
		}
	}
	for _, e := range []struct {
		name string
		e    Edges
	}{{"padding", s.Padding}, {"margin", s.Margin}, {"border", s.Border}, {"inset", s.Inset}} {
		for _, d := range []Dimension{e.e.Top, e.e.Right, e.e.Bottom, e.e.Left} {
			if !d.Valid() {
				return invalid(e.name)
			}
		}
	}
	return nil
}

func undefined(v float64) bool { return math.IsNaN(v) }
func defined(v float64) bool   { return !math.IsNaN(v) }

func zeroIfUndefined(v float64) float64 {
	if undefined(v) {
		return 0
	}
	return v
}
