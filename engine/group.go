package engine

import (
	"fmt"
	"time"
)

// GroupState is a choreography group's lifecycle position
type GroupState uint8

const (
	GroupPending GroupState = iota
	GroupRunning
	GroupCancelled
	GroupDone
)

func (s GroupState) String() string {
	switch s {
	case GroupRunning:
		return "running"
	case GroupCancelled:
		return "cancelled"
	case GroupDone:
		return "done"
	}
	return "pending"
}

type groupMember struct {
	anim    AnimID
	delay   time.Duration
	started bool
}

type group struct {
	id      GroupID
	state   GroupState
	elapsed time.Duration
	members []groupMember
}

// CreateGroup allocates an empty pending group
func (e *Engine) CreateGroup() GroupID {
	e.nextGroup++
	e.groups[e.nextGroup] = &group{id: e.nextGroup}
	return e.nextGroup
}

func (e *Engine) group(id GroupID) (*group, error) {
	g, ok := e.groups[id]
	if !ok {
		return nil, fmt.Errorf("group %d: %w", id, ErrInvalidHandle)
	}
	return g, nil
}

// GroupAdd holds animation a until delay after the group starts. Only
// pending groups accept members; a running animation is paused in place.
func (e *Engine) GroupAdd(gid GroupID, aid AnimID, delay time.Duration) error {
	g, err := e.group(gid)
	if err != nil {
		return err
	}
	a, err := e.anim(aid)
	if err != nil {
		return err
	}
	switch {
	case g.state != GroupPending:
		return fmt.Errorf("group %d is %s: %w", gid, g.state, ErrInvalidArgument)
	case delay < 0:
		return fmt.Errorf("group delay %v: %w", delay, ErrInvalidArgument)
	case a.group != 0 || a.prev != 0:
		return fmt.Errorf("animation %d is already scheduled: %w", aid, ErrInvalidArgument)
	case a.state != AnimIdle && a.state != AnimRunning:
		return fmt.Errorf("group add animation %d: %s: %w", aid, a.state, ErrInvalidArgument)
	}

	e.deactivate(a)
	a.state = AnimHeld
	a.group = gid
	g.members = append(g.members, groupMember{anim: aid, delay: delay})
	return nil
}

// GroupStart starts zero-delay members now and schedules the rest
func (e *Engine) GroupStart(gid GroupID) error {
	g, err := e.group(gid)
	if err != nil {
		return err
	}
	if g.state != GroupPending {
		return fmt.Errorf("start group %d: %s: %w", gid, g.state, ErrInvalidArgument)
	}
	g.state = GroupRunning
	g.elapsed = 0
	e.startDue(g)
	e.settle(g)
	return nil
}

// GroupCancel cancels every member, started or not. Members whose delay
// has not elapsed never start.
func (e *Engine) GroupCancel(gid GroupID) error {
	g, err := e.group(gid)
	if err != nil {
		return err
	}
	if g.state == GroupCancelled || g.state == GroupDone {
		return nil
	}
	for i := range g.members {
		if a, ok := e.anims[g.members[i].anim]; ok {
			e.cancel(a)
		}
		g.members[i].started = true
	}
	g.state = GroupCancelled
	return nil
}

// GroupState reports a group's lifecycle position
func (e *Engine) GroupState(gid GroupID) (GroupState, error) {
	g, err := e.group(gid)
	if err != nil {
		return GroupPending, err
	}
	return g.state, nil
}

// startDue activates members whose delay has elapsed
func (e *Engine) startDue(g *group) {
	for i := range g.members {
		m := &g.members[i]
		if m.started || m.delay > g.elapsed {
			continue
		}
		m.started = true
		if a, ok := e.anims[m.anim]; ok && a.state == AnimHeld {
			e.activate(a)
		}
	}
}

// settle marks a running group done once every member started and finished
func (e *Engine) settle(g *group) {
	for _, m := range g.members {
		if !m.started {
			return
		}
		if _, ok := e.anims[m.anim]; ok {
			return
		}
	}
	g.state = GroupDone
}

// advanceGroups runs after animations so members started by a delay begin
// advancing on the next frame
func (e *Engine) advanceGroups(dt time.Duration) {
	for id := GroupID(1); id <= e.nextGroup; id++ {
		g, ok := e.groups[id]
		if !ok || g.state != GroupRunning {
			continue
		}
		g.elapsed += dt
		e.startDue(g)
		e.settle(g)
	}
}
