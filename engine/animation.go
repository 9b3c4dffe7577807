package engine

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/terminal"
)

// AnimProperty is the node value an animation drives
type AnimProperty uint8

const (
	AnimOpacity AnimProperty = iota
	AnimFg
	AnimBg
	AnimBorderColor
	AnimOffsetX
	AnimOffsetY
)

func (p AnimProperty) Valid() bool {
	return p <= AnimOffsetY
}

func (p AnimProperty) isColor() bool {
	return p == AnimFg || p == AnimBg || p == AnimBorderColor
}

// Value is a property-typed bit pattern: a packed terminal.Color for color
// properties, IEEE-754 bits for opacity and offsets
type Value uint64

func FloatValue(f float64) Value        { return Value(math.Float64bits(f)) }
func ColorValue(c terminal.Color) Value { return Value(uint32(c)) }
func (v Value) Float() float64          { return math.Float64frombits(uint64(v)) }
func (v Value) Color() terminal.Color   { return terminal.Color(uint32(v)) }

// AnimState is an animation's lifecycle position
type AnimState uint8

const (
	// AnimDone covers completed and cancelled animations
	AnimDone AnimState = iota
	AnimRunning
	// AnimPending waits for its chain predecessor to complete
	AnimPending
	// AnimHeld waits for its group to start and its delay to elapse
	AnimHeld
	// AnimIdle was prepared but not started
	AnimIdle
)

func (s AnimState) String() string {
	switch s {
	case AnimRunning:
		return "running"
	case AnimPending:
		return "pending"
	case AnimHeld:
		return "held"
	case AnimIdle:
		return "idle"
	}
	return "done"
}

type animKey struct {
	node NodeID
	prop AnimProperty
}

type animation struct {
	id     AnimID
	target NodeID
	prop   AnimProperty

	start, end, current Value
	duration, elapsed   time.Duration
	easing              Easing
	loop                bool

	state      AnimState
	prev, next AnimID // Chain links
	group      GroupID
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateEnd(prop AnimProperty, end Value) error {
	switch {
	case prop.isColor():
		if uint64(end) > math.MaxUint32 || !end.Color().Valid() {
			return fmt.Errorf("%w: color %#x", ErrInvalidArgument, uint64(end))
		}
	case prop == AnimOpacity:
		if !validOpacity(end.Float()) {
			return fmt.Errorf("%w: opacity %v", ErrInvalidArgument, end.Float())
		}
	default:
		if !finite(end.Float()) {
			return fmt.Errorf("%w: offset %v", ErrInvalidArgument, end.Float())
		}
	}
	return nil
}

func (e *Engine) newAnimation(target NodeID, prop AnimProperty, end Value, duration time.Duration, easing Easing) (*animation, error) {
	if e.closed {
		return nil, ErrClosed
	}
	if _, err := e.node(target); err != nil {
		return nil, err
	}
	switch {
	case !prop.Valid():
		return nil, fmt.Errorf("animation property %d: %w", prop, ErrInvalidArgument)
	case !easing.Valid():
		return nil, fmt.Errorf("easing %d: %w", easing, ErrInvalidArgument)
	case duration < 0:
		return nil, fmt.Errorf("animation duration %v: %w", duration, ErrInvalidArgument)
	}
	if err := validateEnd(prop, end); err != nil {
		return nil, fmt.Errorf("animation end: %w", err)
	}

	e.nextAnim++
	a := &animation{
		id:       e.nextAnim,
		target:   target,
		prop:     prop,
		end:      end,
		duration: duration,
		easing:   easing,
		state:    AnimIdle,
	}
	e.anims[a.id] = a
	e.animOrder = append(e.animOrder, a.id)
	return a, nil
}

// Animate starts driving prop of target toward end. The start value is the
// property's current value; if another animation is driving the same
// property it is replaced and its last interpolated value becomes the start.
// Duration 0 applies end on the next render.
//
// Style properties are written as explicit node values, so once animated a
// property no longer follows theme edits; offsets are unaffected.
func (e *Engine) Animate(target NodeID, prop AnimProperty, end Value, duration time.Duration, easing Easing) (AnimID, error) {
	a, err := e.newAnimation(target, prop, end, duration, easing)
	if err != nil {
		return 0, err
	}
	e.activate(a)
	return a.id, nil
}

// PrepareAnimation creates an animation without starting it, for use with
// Chain, GroupAdd or StartAnimation
func (e *Engine) PrepareAnimation(target NodeID, prop AnimProperty, end Value, duration time.Duration, easing Easing) (AnimID, error) {
	a, err := e.newAnimation(target, prop, end, duration, easing)
	if err != nil {
		return 0, err
	}
	return a.id, nil
}

// StartAnimation starts a prepared animation
func (e *Engine) StartAnimation(id AnimID) error {
	a, err := e.anim(id)
	if err != nil {
		return err
	}
	if a.state != AnimIdle {
		return fmt.Errorf("start animation %d: %s: %w", id, a.state, ErrInvalidArgument)
	}
	e.activate(a)
	return nil
}

// SetLooping makes the animation reverse direction at each end instead of
// completing
func (e *Engine) SetLooping(id AnimID, loop bool) error {
	a, err := e.anim(id)
	if err != nil {
		return err
	}
	a.loop = loop
	return nil
}

// CancelAnimation removes the animation, leaving the property at its last
// interpolated value. Chained successors are cancelled with it.
func (e *Engine) CancelAnimation(id AnimID) error {
	a, err := e.anim(id)
	if err != nil {
		return err
	}
	e.cancel(a)
	return nil
}

// AnimationState reports where an animation is in its lifecycle. Finished
// and cancelled handles report AnimDone.
func (e *Engine) AnimationState(id AnimID) (AnimState, error) {
	if a, ok := e.anims[id]; ok {
		return a.state, nil
	}
	if id != 0 && id <= e.nextAnim {
		return AnimDone, nil
	}
	return AnimDone, fmt.Errorf("animation %d: %w", id, ErrInvalidHandle)
}

// AnimationCount returns the number of animations not yet done
func (e *Engine) AnimationCount() int {
	return len(e.anims)
}

// Chain makes b wait until a completes. b starts when a finishes,
// capturing its start value at that moment, and advances from the next frame.
func (e *Engine) Chain(a, b AnimID) error {
	pa, err := e.anim(a)
	if err != nil {
		return err
	}
	pb, err := e.anim(b)
	if err != nil {
		return err
	}
	switch {
	case a == b:
		return fmt.Errorf("chain %d to itself: %w", a, ErrInvalidArgument)
	case pa.next != 0:
		return fmt.Errorf("animation %d already has a successor: %w", a, ErrInvalidArgument)
	case pb.prev != 0 || pb.group != 0:
		return fmt.Errorf("animation %d is already scheduled: %w", b, ErrInvalidArgument)
	case pb.state != AnimIdle && pb.state != AnimRunning:
		return fmt.Errorf("chain animation %d: %s: %w", b, pb.state, ErrInvalidArgument)
	}
	for s := pb; s != nil; s = e.anims[s.next] {
		if s.id == a {
			return fmt.Errorf("chain %d -> %d would loop: %w", a, b, ErrInvalidArgument)
		}
		if s.next == 0 {
			break
		}
	}

	e.deactivate(pb)
	pb.state = AnimPending
	pa.next, pb.prev = b, a
	return nil
}

func (e *Engine) anim(id AnimID) (*animation, error) {
	a, ok := e.anims[id]
	if !ok {
		return nil, fmt.Errorf("animation %d: %w", id, ErrInvalidHandle)
	}
	return a, nil
}

// activate captures the start value and indexes a as the driver of its
// property, replacing any running animation there
func (e *Engine) activate(a *animation) {
	n, ok := e.nodes[a.target]
	if !ok {
		e.cancel(a)
		return
	}
	key := animKey{a.target, a.prop}
	a.start = e.currentValue(n, a.prop)
	if old, ok := e.active[key]; ok && old != a.id {
		if oa, ok := e.anims[old]; ok {
			e.cancel(oa)
		}
	}
	a.current = a.start
	a.elapsed = 0
	a.state = AnimRunning
	e.active[key] = a.id
}

// deactivate drops a from the property index without touching its record
func (e *Engine) deactivate(a *animation) {
	key := animKey{a.target, a.prop}
	if e.active[key] == a.id {
		delete(e.active, key)
	}
}

// cancel removes a and every chained successor
func (e *Engine) cancel(a *animation) {
	if p, ok := e.anims[a.prev]; ok && p.next == a.id {
		p.next = 0
	}
	for a != nil {
		e.deactivate(a)
		delete(e.anims, a.id)
		a.state = AnimDone
		next := a.next
		a.next = 0
		a = e.anims[next]
	}
}

// cancelNodeAnimations cancels every animation targeting id
func (e *Engine) cancelNodeAnimations(id NodeID) {
	for _, aid := range e.animOrder {
		if a, ok := e.anims[aid]; ok && a.target == id {
			e.cancel(a)
		}
	}
}

// currentValue reads prop for a new animation's start: the running
// animation's last value, else the node's explicit value, else the
// resolved one
func (e *Engine) currentValue(n *node, prop AnimProperty) Value {
	if id, ok := e.active[animKey{n.id, prop}]; ok {
		if a, ok := e.anims[id]; ok {
			return a.current
		}
	}
	switch prop {
	case AnimOffsetX:
		return FloatValue(n.offsetX)
	case AnimOffsetY:
		return FloatValue(n.offsetY)
	}

	s := n.style
	if !s.Has(propOf(prop)) {
		s = e.resolve(n)
	}
	switch prop {
	case AnimFg:
		return ColorValue(s.Fg)
	case AnimBg:
		return ColorValue(s.Bg)
	case AnimBorderColor:
		return ColorValue(s.BorderColor)
	}
	return FloatValue(s.Opacity)
}

func propOf(p AnimProperty) StyleProp {
	switch p {
	case AnimFg:
		return PropFg
	case AnimBg:
		return PropBg
	case AnimBorderColor:
		return PropBorderColor
	}
	return PropOpacity
}

// interpolate returns the value at time progress t with eased progress p.
// Color pairs that are not both truecolor hold the start value until
// completion writes the end.
func interpolate(prop AnimProperty, start, end Value, t, p float64) Value {
	if prop.isColor() {
		a, b := start.Color(), end.Color()
		if !a.IsRGB() || !b.IsRGB() || t >= 1 {
			return start
		}
		return ColorValue(render.Lerp(a, b, max(0, min(p, 0.999999))))
	}
	a, b := start.Float(), end.Float()
	v := a + (b-a)*p
	if prop == AnimOpacity {
		v = max(0, min(v, 1))
	}
	return FloatValue(v)
}

// applyValue writes an animated value into the node
func (e *Engine) applyValue(n *node, prop AnimProperty, v Value) {
	switch prop {
	case AnimOpacity:
		n.style.SetOpacity(max(0, min(v.Float(), 1)))
	case AnimFg:
		n.style.SetFg(v.Color())
	case AnimBg:
		n.style.SetBg(v.Color())
	case AnimBorderColor:
		n.style.SetBorderColor(v.Color())
	case AnimOffsetX:
		n.offsetX = v.Float()
	case AnimOffsetY:
		n.offsetY = v.Float()
	}
	e.markDirty(n)
}

// advanceAnimations runs the animation step of a frame. Animations advance
// in creation order; successors and group members started during the pass
// begin advancing on the next one.
func (e *Engine) advanceAnimations(dt time.Duration) {
	var running []*animation
	for _, id := range e.animOrder {
		if a, ok := e.anims[id]; ok && a.state == AnimRunning {
			running = append(running, a)
		}
	}

	for _, a := range running {
		if a.state != AnimRunning {
			continue // Cancelled earlier in this pass
		}
		n, ok := e.nodes[a.target]
		if !ok {
			e.cancel(a)
			continue
		}

		a.elapsed += dt
		if a.duration > 0 && a.elapsed < a.duration {
			t := float64(a.elapsed) / float64(a.duration)
			a.current = interpolate(a.prop, a.start, a.end, t, a.easing.Apply(t))
			e.applyValue(n, a.prop, a.current)
			continue
		}

		// Exact end value, never an interpolated approximation
		a.current = a.end
		e.applyValue(n, a.prop, a.end)
		if a.loop && a.duration > 0 {
			a.start, a.end = a.end, a.start
			a.elapsed -= a.duration
			if a.elapsed >= a.duration {
				a.elapsed = 0
			}
			continue
		}
		e.complete(a)
	}

	e.advanceGroups(dt)
	e.animOrder = slices.DeleteFunc(e.animOrder, func(id AnimID) bool {
		_, ok := e.anims[id]
		return !ok
	})
}

// complete retires a and starts its successor
func (e *Engine) complete(a *animation) {
	e.deactivate(a)
	delete(e.anims, a.id)
	a.state = AnimDone

	if s, ok := e.anims[a.next]; ok {
		s.prev = 0
		e.activate(s)
	}
	a.next = 0
}

// animating reports whether the next frame has animation work
func (e *Engine) animating() bool {
	for _, a := range e.anims {
		if a.state == AnimRunning {
			return true
		}
	}
	for _, g := range e.groups {
		if g.state == GroupRunning {
			return true
		}
	}
	return false
}
