package ffi

import (
	"time"

	"github.com/lixenwraith/termgraph/engine"
)

func ms(v uint32) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// Animate starts driving prop toward end. end carries packed color bits for
// color properties and IEEE-754 bits otherwise. Returns 0 on failure.
func Animate(node uint32, prop uint8, end uint64, durationMs uint32, easing uint8) uint32 {
	return alloc("animate", func(e *engine.Engine) (uint32, error) {
		id, err := e.Animate(engine.NodeID(node), engine.AnimProperty(prop), engine.Value(end), ms(durationMs), engine.Easing(easing))
		return uint32(id), err
	})
}

// PrepareAnimation creates an animation that waits for StartAnimation, a
// chain predecessor or a group
func PrepareAnimation(node uint32, prop uint8, end uint64, durationMs uint32, easing uint8) uint32 {
	return alloc("prepare animation", func(e *engine.Engine) (uint32, error) {
		id, err := e.PrepareAnimation(engine.NodeID(node), engine.AnimProperty(prop), engine.Value(end), ms(durationMs), engine.Easing(easing))
		return uint32(id), err
	})
}

func StartAnimation(anim uint32) int32 {
	return call("start animation", func(e *engine.Engine) error {
		return e.StartAnimation(engine.AnimID(anim))
	})
}

func SetLooping(anim uint32, loop bool) int32 {
	return call("set looping", func(e *engine.Engine) error {
		return e.SetLooping(engine.AnimID(anim), loop)
	})
}

func CancelAnimation(anim uint32) int32 {
	return call("cancel animation", func(e *engine.Engine) error {
		return e.CancelAnimation(engine.AnimID(anim))
	})
}

func Chain(first, then uint32) int32 {
	return call("chain", func(e *engine.Engine) error {
		return e.Chain(engine.AnimID(first), engine.AnimID(then))
	})
}

// AnimationState returns the engine.AnimState value or a negative status
func AnimationState(anim uint32) int32 {
	return count("animation state", func(e *engine.Engine) (int, error) {
		s, err := e.AnimationState(engine.AnimID(anim))
		return int(s), err
	})
}

func AnimationCount() int32 {
	return count("animation count", func(e *engine.Engine) (int, error) {
		return e.AnimationCount(), nil
	})
}

func CreateGroup() uint32 {
	return alloc("create group", func(e *engine.Engine) (uint32, error) {
		return uint32(e.CreateGroup()), nil
	})
}

func GroupAdd(group, anim uint32, delayMs uint32) int32 {
	return call("group add", func(e *engine.Engine) error {
		return e.GroupAdd(engine.GroupID(group), engine.AnimID(anim), ms(delayMs))
	})
}

func GroupStart(group uint32) int32 {
	return call("group start", func(e *engine.Engine) error {
		return e.GroupStart(engine.GroupID(group))
	})
}

func GroupCancel(group uint32) int32 {
	return call("group cancel", func(e *engine.Engine) error {
		return e.GroupCancel(engine.GroupID(group))
	})
}

func GroupState(group uint32) int32 {
	return count("group state", func(e *engine.Engine) (int, error) {
		s, err := e.GroupState(engine.GroupID(group))
		return int(s), err
	})
}
