// Package engine is a retained-mode terminal UI engine.
//
// Nodes live in an arena keyed by integer handles. Mutations are cheap and
// only mark nodes dirty; Render runs the frame pipeline in a fixed order:
// animation advance, style resolution, layout, paint, diff and emit.
// Input is read with ReadInput and drained one event at a time with
// PollEvent.
//
// An Engine is not safe for concurrent use. The ffi package serializes
// access for callers across the shared-library boundary.
package engine
