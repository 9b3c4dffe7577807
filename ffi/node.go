package ffi

import (
	"strings"

	"github.com/lixenwraith/termgraph/engine"
	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/span"
)

// CreateNode returns a new node of kind, or 0
func CreateNode(kind uint8) uint32 {
	return alloc("create node", func(e *engine.Engine) (uint32, error) {
		id, err := e.CreateNode(engine.Kind(kind))
		return uint32(id), err
	})
}

func DestroyNode(node uint32) int32 {
	return call("destroy node", func(e *engine.Engine) error {
		return e.DestroyNode(engine.NodeID(node))
	})
}

func DestroySubtree(node uint32) int32 {
	return call("destroy subtree", func(e *engine.Engine) error {
		return e.DestroySubtree(engine.NodeID(node))
	})
}

func SetRoot(node uint32) int32 {
	return call("set root", func(e *engine.Engine) error {
		return e.SetRoot(engine.NodeID(node))
	})
}

// Root returns the root handle, 0 when unset
func Root() uint32 {
	return alloc("root", func(e *engine.Engine) (uint32, error) {
		return uint32(e.Root()), nil
	})
}

func AppendChild(parent, child uint32) int32 {
	return call("append child", func(e *engine.Engine) error {
		return e.AppendChild(engine.NodeID(parent), engine.NodeID(child))
	})
}

// InsertChild places child at index; an index past the end appends
func InsertChild(parent, child uint32, index int32) int32 {
	return call("insert child", func(e *engine.Engine) error {
		return e.InsertChild(engine.NodeID(parent), engine.NodeID(child), int(index))
	})
}

func RemoveChild(parent, child uint32) int32 {
	return call("remove child", func(e *engine.Engine) error {
		return e.RemoveChild(engine.NodeID(parent), engine.NodeID(child))
	})
}

// Parent returns the parent handle. 0 is returned both for a detached node
// and on failure; LastErrorCode tells them apart after ClearError.
func Parent(node uint32) uint32 {
	return alloc("parent", func(e *engine.Engine) (uint32, error) {
		p, err := e.Parent(engine.NodeID(node))
		return uint32(p), err
	})
}

func ChildCount(node uint32) int32 {
	return count("child count", func(e *engine.Engine) (int, error) {
		return e.ChildCount(engine.NodeID(node))
	})
}

func ChildAt(node uint32, index int32) uint32 {
	return alloc("child at", func(e *engine.Engine) (uint32, error) {
		c, err := e.ChildAt(engine.NodeID(node), int(index))
		return uint32(c), err
	})
}

func NodeCount() int32 {
	return count("node count", func(e *engine.Engine) (int, error) {
		return e.NodeCount(), nil
	})
}

// IsValid returns 1 for a live node, 0 otherwise
func IsValid(node uint32) int32 {
	return count("is valid", func(e *engine.Engine) (int, error) {
		if e.IsValid(engine.NodeID(node)) {
			return 1, nil
		}
		return 0, nil
	})
}

// Kind returns the node variant or a negative status
func Kind(node uint32) int32 {
	return count("kind", func(e *engine.Engine) (int, error) {
		k, err := e.Kind(engine.NodeID(node))
		return int(k), err
	})
}

// SetContent copies text; it must be valid UTF-8
func SetContent(node uint32, text []byte) int32 {
	return call("set content", func(e *engine.Engine) error {
		return e.SetContent(engine.NodeID(node), string(text))
	})
}

// Content copies the node's text into buf, truncating, and returns the
// full length
func Content(node uint32, buf []byte) int32 {
	return count("content", func(e *engine.Engine) (int, error) {
		s, err := e.Content(engine.NodeID(node))
		if err != nil {
			return 0, err
		}
		copy(buf, s)
		return len(s), nil
	})
}

func SetContentMode(node uint32, mode uint8, lang []byte) int32 {
	return call("set content mode", func(e *engine.Engine) error {
		return e.SetContentMode(engine.NodeID(node), span.Mode(mode), string(lang))
	})
}

func SetWrap(node uint32, mode uint8) int32 {
	return call("set wrap", func(e *engine.Engine) error {
		return e.SetWrap(engine.NodeID(node), render.WrapMode(mode))
	})
}

func SetFocusable(node uint32, focusable bool) int32 {
	return call("set focusable", func(e *engine.Engine) error {
		return e.SetFocusable(engine.NodeID(node), focusable)
	})
}

func SetVisible(node uint32, visible bool) int32 {
	return call("set visible", func(e *engine.Engine) error {
		return e.SetVisible(engine.NodeID(node), visible)
	})
}

func SetRenderOffset(node uint32, x, y float64) int32 {
	return call("set render offset", func(e *engine.Engine) error {
		return e.SetRenderOffset(engine.NodeID(node), x, y)
	})
}

func SetPlaceholder(node uint32, text []byte) int32 {
	return call("set placeholder", func(e *engine.Engine) error {
		return e.SetPlaceholder(engine.NodeID(node), string(text))
	})
}

func SetMaxLength(node uint32, length int32) int32 {
	return call("set max length", func(e *engine.Engine) error {
		return e.SetMaxLength(engine.NodeID(node), int(length))
	})
}

func SetCursor(node uint32, row, col int32) int32 {
	return call("set cursor", func(e *engine.Engine) error {
		return e.SetCursor(engine.NodeID(node), int(row), int(col))
	})
}

func Cursor(node uint32, row, col *int32) int32 {
	return call("cursor", func(e *engine.Engine) error {
		if row == nil || col == nil {
			return errNilOut
		}
		r, c, err := e.Cursor(engine.NodeID(node))
		if err != nil {
			return err
		}
		*row, *col = int32(r), int32(c)
		return nil
	})
}

// SetOptions replaces a select's options with the lines of text
func SetOptions(node uint32, text []byte) int32 {
	return call("set options", func(e *engine.Engine) error {
		var opts []string
		if len(text) > 0 {
			opts = strings.Split(string(text), "\n")
		}
		return e.SetOptions(engine.NodeID(node), opts)
	})
}

// Selected stores the selected index, -1 for a select without options
func Selected(node uint32, index *int32) int32 {
	return call("selected", func(e *engine.Engine) error {
		if index == nil {
			return errNilOut
		}
		i, err := e.Selected(engine.NodeID(node))
		if err != nil {
			return err
		}
		*index = int32(i)
		return nil
	})
}

func Select(node uint32, index int32) int32 {
	return call("select", func(e *engine.Engine) error {
		return e.Select(engine.NodeID(node), int(index))
	})
}

func ScrollBy(node uint32, dx, dy int32) int32 {
	return call("scroll by", func(e *engine.Engine) error {
		return e.ScrollBy(engine.NodeID(node), int(dx), int(dy))
	})
}

func ScrollTo(node uint32, x, y int32) int32 {
	return call("scroll to", func(e *engine.Engine) error {
		return e.ScrollTo(engine.NodeID(node), int(x), int(y))
	})
}

func ScrollOffset(node uint32, x, y *int32) int32 {
	return call("scroll offset", func(e *engine.Engine) error {
		if x == nil || y == nil {
			return errNilOut
		}
		sx, sy, err := e.ScrollOffset(engine.NodeID(node))
		if err != nil {
			return err
		}
		*x, *y = int32(sx), int32(sy)
		return nil
	})
}
