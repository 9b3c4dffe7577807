package ffi

import (
	"github.com/lixenwraith/termgraph/engine"
	"github.com/lixenwraith/termgraph/flex"
	"github.com/lixenwraith/termgraph/render"
)

// Dimension units: 0 auto, 1 cells, 2 percent
func dim(unit uint8, v float64) flex.Dimension {
	return flex.Dimension{Value: v, Unit: flex.Unit(unit)}
}

func edges(unit uint8, top, right, bottom, left float64) flex.Edges {
	return flex.Edges{
		Top:    dim(unit, top),
		Right:  dim(unit, right),
		Bottom: dim(unit, bottom),
		Left:   dim(unit, left),
	}
}

func setDim(name string, set func(*engine.Engine, engine.NodeID, flex.Dimension) error) func(uint32, uint8, float64) int32 {
	return func(node uint32, unit uint8, v float64) int32 {
		return call(name, func(e *engine.Engine) error {
			return set(e, engine.NodeID(node), dim(unit, v))
		})
	}
}

var (
	SetWidth     = setDim("set width", (*engine.Engine).SetWidth)
	SetHeight    = setDim("set height", (*engine.Engine).SetHeight)
	SetMinWidth  = setDim("set min width", (*engine.Engine).SetMinWidth)
	SetMinHeight = setDim("set min height", (*engine.Engine).SetMinHeight)
	SetMaxWidth  = setDim("set max width", (*engine.Engine).SetMaxWidth)
	SetMaxHeight = setDim("set max height", (*engine.Engine).SetMaxHeight)
	SetFlexBasis = setDim("set flex basis", (*engine.Engine).SetFlexBasis)
)

func SetFlexGrow(node uint32, v float64) int32 {
	return call("set flex grow", func(e *engine.Engine) error {
		return e.SetFlexGrow(engine.NodeID(node), v)
	})
}

func SetFlexShrink(node uint32, v float64) int32 {
	return call("set flex shrink", func(e *engine.Engine) error {
		return e.SetFlexShrink(engine.NodeID(node), v)
	})
}

func SetDirection(node uint32, d uint8) int32 {
	return call("set direction", func(e *engine.Engine) error {
		return e.SetDirection(engine.NodeID(node), flex.Direction(d))
	})
}

func SetFlexWrap(node uint32, w uint8) int32 {
	return call("set flex wrap", func(e *engine.Engine) error {
		return e.SetFlexWrap(engine.NodeID(node), flex.Wrap(w))
	})
}

func SetJustify(node uint32, j uint8) int32 {
	return call("set justify", func(e *engine.Engine) error {
		return e.SetJustify(engine.NodeID(node), flex.Justify(j))
	})
}

func SetAlignItems(node uint32, a uint8) int32 {
	return call("set align items", func(e *engine.Engine) error {
		return e.SetAlignItems(engine.NodeID(node), flex.Align(a))
	})
}

func SetAlignSelf(node uint32, a uint8) int32 {
	return call("set align self", func(e *engine.Engine) error {
		return e.SetAlignSelf(engine.NodeID(node), flex.Align(a))
	})
}

func SetGap(node uint32, unit uint8, row, column float64) int32 {
	return call("set gap", func(e *engine.Engine) error {
		return e.SetGap(engine.NodeID(node), dim(unit, row), dim(unit, column))
	})
}

func SetPadding(node uint32, unit uint8, top, right, bottom, left float64) int32 {
	return call("set padding", func(e *engine.Engine) error {
		return e.SetPadding(engine.NodeID(node), edges(unit, top, right, bottom, left))
	})
}

func SetMargin(node uint32, unit uint8, top, right, bottom, left float64) int32 {
	return call("set margin", func(e *engine.Engine) error {
		return e.SetMargin(engine.NodeID(node), edges(unit, top, right, bottom, left))
	})
}

func SetInset(node uint32, unit uint8, top, right, bottom, left float64) int32 {
	return call("set inset", func(e *engine.Engine) error {
		return e.SetInset(engine.NodeID(node), edges(unit, top, right, bottom, left))
	})
}

func SetPosition(node uint32, p uint8) int32 {
	return call("set position", func(e *engine.Engine) error {
		return e.SetPosition(engine.NodeID(node), flex.Position(p))
	})
}

func SetDisplay(node uint32, d uint8) int32 {
	return call("set display", func(e *engine.Engine) error {
		return e.SetDisplay(engine.NodeID(node), flex.Display(d))
	})
}

func SetOverflow(node uint32, o uint8) int32 {
	return call("set overflow", func(e *engine.Engine) error {
		return e.SetOverflow(engine.NodeID(node), flex.Overflow(o))
	})
}

func storeRect(out *[4]int32, r render.Rect) {
	out[0], out[1], out[2], out[3] = int32(r.X), int32(r.Y), int32(r.W), int32(r.H)
}

// LayoutRect stores the node's computed x, y, width, height
func LayoutRect(node uint32, out *[4]int32) int32 {
	return call("layout rect", func(e *engine.Engine) error {
		if out == nil {
			return errNilOut
		}
		r, err := e.LayoutRect(engine.NodeID(node))
		if err != nil {
			return err
		}
		storeRect(out, r)
		return nil
	})
}

// ScreenRect stores the node's painted rectangle including render offsets
func ScreenRect(node uint32, out *[4]int32) int32 {
	return call("screen rect", func(e *engine.Engine) error {
		if out == nil {
			return errNilOut
		}
		r, err := e.ScreenRect(engine.NodeID(node))
		if err != nil {
			return err
		}
		storeRect(out, r)
		return nil
	})
}

// HitTest returns the topmost node at the cell, 0 for none or failure
func HitTest(x, y int32) uint32 {
	return alloc("hit test", func(e *engine.Engine) (uint32, error) {
		id, err := e.HitTest(int(x), int(y))
		return uint32(id), err
	})
}
