package engine

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/lixenwraith/termgraph/flex"
)

// Repair restores cross-references after an operation was interrupted
// midway. It drops links to freed nodes and animations, re-links children
// whose parent entry disagrees, and forces a full repaint. Returns the
// number of fixes applied.
func (e *Engine) Repair() int {
	fixed := 0

	for _, n := range e.nodes {
		kept := n.children[:0]
		seen := make(map[NodeID]bool, len(n.children))
		for _, c := range n.children {
			cn, ok := e.nodes[c]
			if !ok || cn.parent != n.id || seen[c] {
				fixed++
				continue
			}
			seen[c] = true
			kept = append(kept, c)
		}
		n.children = kept

		if n.parent != 0 {
			p, ok := e.nodes[n.parent]
			if !ok || !slices.Contains(p.children, n.id) {
				n.parent = 0
				fixed++
			}
		}
	}

	// Rebuild the layout tree's links from the node tree
	for _, n := range e.nodes {
		e.layout.SetChildren(n.layout, nil)
	}
	for _, n := range e.nodes {
		ids := make([]flex.NodeID, 0, len(n.children))
		for _, c := range n.children {
			ids = append(ids, e.nodes[c].layout)
		}
		if err := e.layout.SetChildren(n.layout, ids); err != nil {
			log.Printf("engine: repair layout of node %d: %v", n.id, err)
		}
	}

	if _, ok := e.nodes[e.root]; !ok && e.root != 0 {
		e.root = 0
		fixed++
	}
	if _, ok := e.nodes[e.focus]; !ok && e.focus != 0 {
		e.focus = 0
		fixed++
	}

	for id, tid := range e.bindings {
		_, nodeOK := e.nodes[id]
		_, themeOK := e.themes[tid]
		if !nodeOK || !themeOK {
			delete(e.bindings, id)
			fixed++
		}
	}

	for id, a := range e.anims {
		if _, ok := e.nodes[a.target]; !ok {
			delete(e.anims, id)
			fixed++
			continue
		}
		if a.next != 0 {
			if _, ok := e.anims[a.next]; !ok {
				a.next = 0
				fixed++
			}
		}
		if a.prev != 0 {
			if _, ok := e.anims[a.prev]; !ok {
				a.prev = 0
				fixed++
			}
		}
	}
	for key, id := range e.active {
		if a, ok := e.anims[id]; !ok || a.state != AnimRunning {
			delete(e.active, key)
			fixed++
		}
	}
	e.animOrder = slices.DeleteFunc(e.animOrder, func(id AnimID) bool {
		_, ok := e.anims[id]
		return !ok
	})

	for _, g := range e.groups {
		before := len(g.members)
		g.members = slices.DeleteFunc(g.members, func(m groupMember) bool {
			_, ok := e.anims[m.anim]
			return !ok && !m.started
		})
		fixed += before - len(g.members)
	}

	// An interrupted resize leaves size and buffers out of step; the front
	// buffer is resized last, so it wins
	fw, fh := e.front.Size()
	if bw, bh := e.back.Size(); bw != fw || bh != fh {
		e.back.Resize(fw, fh)
		fixed++
	}
	if e.width != fw || e.height != fh {
		e.width, e.height = fw, fh
		fixed++
	}

	for _, n := range e.nodes {
		n.dirty = true
	}
	e.fullRepaint = true
	if fixed > 0 {
		log.Printf("engine: repair fixed %d references", fixed)
	}
	return fixed
}

// CheckInvariants reports every structural inconsistency found
func (e *Engine) CheckInvariants() error {
	var errs []error
	fw, fh := e.front.Size()
	bw, bh := e.back.Size()
	if fw != e.width || fh != e.height || bw != e.width || bh != e.height {
		errs = append(errs, fmt.Errorf("size %dx%d: front %dx%d, back %dx%d", e.width, e.height, fw, fh, bw, bh))
	}
	for id, n := range e.nodes {
		for _, c := range n.children {
			cn, ok := e.nodes[c]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("node %d: dangling child %d", id, c))
			case cn.parent != id:
				errs = append(errs, fmt.Errorf("node %d: child %d has parent %d", id, c, cn.parent))
			}
		}
		if n.parent != 0 {
			if p, ok := e.nodes[n.parent]; !ok || !slices.Contains(p.children, id) {
				errs = append(errs, fmt.Errorf("node %d: parent %d does not list it", id, n.parent))
			}
		}
	}
	if _, ok := e.nodes[e.root]; e.root != 0 && !ok {
		errs = append(errs, fmt.Errorf("root %d freed", e.root))
	}
	if _, ok := e.nodes[e.focus]; e.focus != 0 && !ok {
		errs = append(errs, fmt.Errorf("focus %d freed", e.focus))
	}
	for id := range e.bindings {
		if _, ok := e.nodes[id]; !ok {
			errs = append(errs, fmt.Errorf("theme bound to freed node %d", id))
		}
	}
	for id, a := range e.anims {
		if _, ok := e.nodes[a.target]; !ok {
			errs = append(errs, fmt.Errorf("animation %d targets freed node %d", id, a.target))
		}
	}
	return errors.Join(errs...)
}
