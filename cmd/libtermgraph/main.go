// Command libtermgraph builds the engine as a C shared library:
//
//	go build -buildmode=c-shared -o libtermgraph.so ./cmd/libtermgraph
//
// Strings are passed in as (pointer, length) and copied before the call
// returns. Output strings are written into caller buffers; the return value
// is the full length so the caller can retry with a larger buffer.
package main

/*
#include <stdint.h>
#include <stdbool.h>
*/
import "C"

import (
	"unsafe"

	"github.com/lixenwraith/termgraph/ffi"
)

func main() {}

func bytesIn(p *C.char, n C.int32_t) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(p), C.int(n))
}

func bytesOut(p *C.char, n C.int32_t) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), int(n))
}

// Lifecycle and errors

//export tg_init
func tg_init(configPath *C.char, n C.int32_t) C.int32_t {
	return C.int32_t(ffi.InitConfig(bytesIn(configPath, n)))
}

//export tg_init_headless
func tg_init_headless(w, h C.int32_t) C.int32_t {
	return C.int32_t(ffi.InitHeadless(int32(w), int32(h)))
}

//export tg_shutdown
func tg_shutdown() C.int32_t { return C.int32_t(ffi.Shutdown()) }

//export tg_last_error
func tg_last_error(buf *C.char, n C.int32_t) C.int32_t {
	return C.int32_t(ffi.LastError(bytesOut(buf, n)))
}

//export tg_last_error_code
func tg_last_error_code() C.int32_t { return C.int32_t(ffi.LastErrorCode()) }

//export tg_clear_error
func tg_clear_error() { ffi.ClearError() }

// Tree

//export tg_create_node
func tg_create_node(kind C.uint8_t) C.uint32_t { return C.uint32_t(ffi.CreateNode(uint8(kind))) }

//export tg_destroy_node
func tg_destroy_node(node C.uint32_t) C.int32_t { return C.int32_t(ffi.DestroyNode(uint32(node))) }

//export tg_destroy_subtree
func tg_destroy_subtree(node C.uint32_t) C.int32_t {
	return C.int32_t(ffi.DestroySubtree(uint32(node)))
}

//export tg_set_root
func tg_set_root(node C.uint32_t) C.int32_t { return C.int32_t(ffi.SetRoot(uint32(node))) }

//export tg_root
func tg_root() C.uint32_t { return C.uint32_t(ffi.Root()) }

//export tg_append_child
func tg_append_child(parent, child C.uint32_t) C.int32_t {
	return C.int32_t(ffi.AppendChild(uint32(parent), uint32(child)))
}

//export tg_insert_child
func tg_insert_child(parent, child C.uint32_t, index C.int32_t) C.int32_t {
	return C.int32_t(ffi.InsertChild(uint32(parent), uint32(child), int32(index)))
}

//export tg_remove_child
func tg_remove_child(parent, child C.uint32_t) C.int32_t {
	return C.int32_t(ffi.RemoveChild(uint32(parent), uint32(child)))
}

//export tg_parent
func tg_parent(node C.uint32_t) C.uint32_t { return C.uint32_t(ffi.Parent(uint32(node))) }

//export tg_child_count
func tg_child_count(node C.uint32_t) C.int32_t { return C.int32_t(ffi.ChildCount(uint32(node))) }

//export tg_child_at
func tg_child_at(node C.uint32_t, index C.int32_t) C.uint32_t {
	return C.uint32_t(ffi.ChildAt(uint32(node), int32(index)))
}

//export tg_node_count
func tg_node_count() C.int32_t { return C.int32_t(ffi.NodeCount()) }

//export tg_is_valid
func tg_is_valid(node C.uint32_t) C.int32_t { return C.int32_t(ffi.IsValid(uint32(node))) }

//export tg_kind
func tg_kind(node C.uint32_t) C.int32_t { return C.int32_t(ffi.Kind(uint32(node))) }

// Content and widgets

//export tg_set_content
func tg_set_content(node C.uint32_t, text *C.char, n C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetContent(uint32(node), bytesIn(text, n)))
}

//export tg_content
func tg_content(node C.uint32_t, buf *C.char, n C.int32_t) C.int32_t {
	return C.int32_t(ffi.Content(uint32(node), bytesOut(buf, n)))
}

//export tg_set_content_mode
func tg_set_content_mode(node C.uint32_t, mode C.uint8_t, lang *C.char, n C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetContentMode(uint32(node), uint8(mode), bytesIn(lang, n)))
}

//export tg_set_wrap
func tg_set_wrap(node C.uint32_t, mode C.uint8_t) C.int32_t {
	return C.int32_t(ffi.SetWrap(uint32(node), uint8(mode)))
}

//export tg_set_focusable
func tg_set_focusable(node C.uint32_t, v C.bool) C.int32_t {
	return C.int32_t(ffi.SetFocusable(uint32(node), bool(v)))
}

//export tg_set_visible
func tg_set_visible(node C.uint32_t, v C.bool) C.int32_t {
	return C.int32_t(ffi.SetVisible(uint32(node), bool(v)))
}

//export tg_set_render_offset
func tg_set_render_offset(node C.uint32_t, x, y C.double) C.int32_t {
	return C.int32_t(ffi.SetRenderOffset(uint32(node), float64(x), float64(y)))
}

//export tg_set_placeholder
func tg_set_placeholder(node C.uint32_t, text *C.char, n C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetPlaceholder(uint32(node), bytesIn(text, n)))
}

//export tg_set_max_length
func tg_set_max_length(node C.uint32_t, length C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetMaxLength(uint32(node), int32(length)))
}

//export tg_set_cursor
func tg_set_cursor(node C.uint32_t, row, col C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetCursor(uint32(node), int32(row), int32(col)))
}

//export tg_cursor
func tg_cursor(node C.uint32_t, row, col *C.int32_t) C.int32_t {
	return C.int32_t(ffi.Cursor(uint32(node), (*int32)(row), (*int32)(col)))
}

//export tg_set_options
func tg_set_options(node C.uint32_t, text *C.char, n C.int32_t) C.int32_t {
	return C.int32_t(ffi.SetOptions(uint32(node), bytesIn(text, n)))
}

//export tg_selected
func tg_selected(node C.uint32_t, index *C.int32_t) C.int32_t {
	return C.int32_t(ffi.Selected(uint32(node), (*int32)(index)))
}

//export tg_select
func tg_select(node C.uint32_t, index C.int32_t) C.int32_t {
	return C.int32_t(ffi.Select(uint32(node), int32(index)))
}

//export tg_scroll_by
func tg_scroll_by(node C.uint32_t, dx, dy C.int32_t) C.int32_t {
	return C.int32_t(ffi.ScrollBy(uint32(node), int32(dx), int32(dy)))
}

//export tg_scroll_to
func tg_scroll_to(node C.uint32_t, x, y C.int32_t) C.int32_t {
	return C.int32_t(ffi.ScrollTo(uint32(node), int32(x), int32(y)))
}

//export tg_scroll_offset
func tg_scroll_offset(node C.uint32_t, x, y *C.int32_t) C.int32_t {
	return C.int32_t(ffi.ScrollOffset(uint32(node), (*int32)(x), (*int32)(y)))
}

// Layout

//export tg_set_width
func tg_set_width(node C.uint32_t, unit C.uint8_t, v C.double) C.int32_t {
	return C.int32_t(ffi.SetWidth(uint32(node), uint8(unit), float64(v)))
}

//export tg_set_height
func tg_set_height(node C.uint32_t, unit C.uint8_t, v C.double) C.int32_t {
	return C.int32_t(ffi.SetHeight(uint32(node), uint8(unit), float64(v)))
}

//export tg_set_min_width
func tg_set_min_width(node C.uint32_t, unit C.uint8_t, v C.double) C.int32_t {
	return C.int32_t(ffi.SetMinWidth(uint32(node), uint8(unit), float64(v)))
}

//export tg_set_min_height
func tg_set_min_height(node C.uint32_t, unit C.uint8_t, v C.double) C.int32_t {
	return C.int32_t(ffi.SetMinHeight(uint32(node), uint8(unit), float64(v)))
}

//export tg_set_max_width
func tg_set_max_width(node C.uint32_t, unit C.uint8_t, v C.double) C.int32_t {
	return C.int32_t(ffi.SetMaxWidth(uint32(node), uint8(unit), float64(v)))
}

//export tg_set_max_height
func tg_set_max_height(node C.uint32_t, unit C.uint8_t, v C.double) C.int32_t {
	return C.int32_t(ffi.SetMaxHeight(uint32(node), uint8(unit), float64(v)))
}

//export tg_set_flex_basis
func tg_set_flex_basis(node C.uint32_t, unit C.uint8_t, v C.double) C.int32_t {
	return C.int32_t(ffi.SetFlexBasis(uint32(node), uint8(unit), float64(v)))
}

//export tg_set_flex_grow
func tg_set_flex_grow(node C.uint32_t, v C.double) C.int32_t {
	return C.int32_t(ffi.SetFlexGrow(uint32(node), float64(v)))
}

//export tg_set_flex_shrink
func tg_set_flex_shrink(node C.uint32_t, v C.double) C.int32_t {
	return C.int32_t(ffi.SetFlexShrink(uint32(node), float64(v)))
}

//export tg_set_direction
func tg_set_direction(node C.uint32_t, v C.uint8_t) C.int32_t {
	return C.int32_t(ffi.SetDirection(uint32(node), uint8(v)))
}

//export tg_set_flex_wrap
func tg_set_flex_wrap(node C.uint32_t, v C.uint8_t) C.int32_t {
	return C.int32_t(ffi.SetFlexWrap(uint32(node), uint8(v)))
}

//export tg_set_justify
func tg_set_justify(node C.uint32_t, v C.uint8_t) C.int32_t {
	return C.int32_t(ffi.SetJustify(uint32(node), uint8(v)))
}

//export tg_set_align_items
func tg_set_align_items(node C.uint32_t, v C.uint8_t) C.int32_t {
	return C.int32_t(ffi.SetAlignItems(uint32(node), uint8(v)))
}

//export tg_set_align_self
func tg_set_align_self(node C.uint32_t, v C.uint8_t) C.int32_t {
	return C.int32_t(ffi.SetAlignSelf(uint32(node), uint8(v)))
}

//export tg_set_gap
func tg_set_gap(node C.uint32_t, unit C.uint8_t, row, column C.double) C.int32_t {
	return C.int32_t(ffi.SetGap(uint32(node), uint8(unit), float64(row), float64(column)))
}

//export tg_set_padding
func tg_set_padding(node C.uint32_t, unit C.uint8_t, top, right, bottom, left C.double) C.int32_t {
	return C.int32_t(ffi.SetPadding(uint32(node), uint8(unit), float64(top), float64(right), float64(bottom), float64(left)))
}

//export tg_set_margin
func tg_set_margin(node C.uint32_t, unit C.uint8_t, top, right, bottom, left C.double) C.int32_t {
	return C.int32_t(ffi.SetMargin(uint32(node), uint8(unit), float64(top), float64(right), float64(bottom), float64(left)))
}

//export tg_set_inset
func tg_set_inset(node C.uint32_t, unit C.uint8_t, top, right, bottom, left C.double) C.int32_t {
	return C.int32_t(ffi.SetInset(uint32(node), uint8(unit), float64(top), float64(right), float64(bottom), float64(left)))
}

//export tg_set_position
func tg_set_position(node C.uint32_t, v C.uint8_t) C.int32_t {
	return C.int32_t(ffi.SetPosition(uint32(node), uint8(v)))
}

//export tg_set_display
func tg_set_display(node C.uint32_t, v C.uint8_t) C.int32_t {
	return C.int32_t(ffi.SetDisplay(uint32(node), uint8(v)))
}

//export tg_set_overflow
func tg_set_overflow(node C.uint32_t, v C.uint8_t) C.int32_t {
	return C.int32_t(ffi.SetOverflow(uint32(node), uint8(v)))
}

//export tg_layout_rect
func tg_layout_rect(node C.uint32_t, out *C.int32_t) C.int32_t {
	return C.int32_t(ffi.LayoutRect(uint32(node), (*[4]int32)(unsafe.Pointer(out))))
}

//export tg_screen_rect
func tg_screen_rect(node C.uint32_t, out *C.int32_t) C.int32_t {
	return C.int32_t(ffi.ScreenRect(uint32(node), (*[4]int32)(unsafe.Pointer(out))))
}

//export tg_hit_test
func tg_hit_test(x, y C.int32_t) C.uint32_t { return C.uint32_t(ffi.HitTest(int32(x), int32(y))) }

// Style and themes

//export tg_set_fg
func tg_set_fg(node, color C.uint32_t) C.int32_t {
	return C.int32_t(ffi.SetFg(uint32(node), uint32(color)))
}

//export tg_set_bg
func tg_set_bg(node, color C.uint32_t) C.int32_t {
	return C.int32_t(ffi.SetBg(uint32(node), uint32(color)))
}

//export tg_set_border_color
func tg_set_border_color(node, color C.uint32_t) C.int32_t {
	return C.int32_t(ffi.SetBorderColor(uint32(node), uint32(color)))
}

//export tg_set_border
func tg_set_border(node C.uint32_t, kind C.uint8_t) C.int32_t {
	return C.int32_t(ffi.SetBorder(uint32(node), uint8(kind)))
}

//export tg_set_attrs
func tg_set_attrs(node C.uint32_t, attrs C.uint8_t) C.int32_t {
	return C.int32_t(ffi.SetAttrs(uint32(node), uint8(attrs)))
}

//export tg_set_opacity
func tg_set_opacity(node C.uint32_t, v C.double) C.int32_t {
	return C.int32_t(ffi.SetOpacity(uint32(node), float64(v)))
}

//export tg_create_theme
func tg_create_theme() C.uint32_t { return C.uint32_t(ffi.CreateTheme()) }

//export tg_destroy_theme
func tg_destroy_theme(theme C.uint32_t) C.int32_t {
	return C.int32_t(ffi.DestroyTheme(uint32(theme)))
}

//export tg_set_theme_prop
func tg_set_theme_prop(theme C.uint32_t, kind C.int32_t, prop C.uint8_t, value C.uint64_t) C.int32_t {
	return C.int32_t(ffi.SetThemeProp(uint32(theme), int32(kind), uint8(prop), uint64(value)))
}

//export tg_bind_theme
func tg_bind_theme(node, theme C.uint32_t) C.int32_t {
	return C.int32_t(ffi.BindTheme(uint32(node), uint32(theme)))
}

//export tg_unbind_theme
func tg_unbind_theme(node C.uint32_t) C.int32_t { return C.int32_t(ffi.UnbindTheme(uint32(node))) }

// Animation

//export tg_animate
func tg_animate(node C.uint32_t, prop C.uint8_t, end C.uint64_t, durationMs C.uint32_t, easing C.uint8_t) C.uint32_t {
	return C.uint32_t(ffi.Animate(uint32(node), uint8(prop), uint64(end), uint32(durationMs), uint8(easing)))
}

//export tg_prepare_animation
func tg_prepare_animation(node C.uint32_t, prop C.uint8_t, end C.uint64_t, durationMs C.uint32_t, easing C.uint8_t) C.uint32_t {
	return C.uint32_t(ffi.PrepareAnimation(uint32(node), uint8(prop), uint64(end), uint32(durationMs), uint8(easing)))
}

//export tg_start_animation
func tg_start_animation(anim C.uint32_t) C.int32_t {
	return C.int32_t(ffi.StartAnimation(uint32(anim)))
}

//export tg_set_looping
func tg_set_looping(anim C.uint32_t, loop C.bool) C.int32_t {
	return C.int32_t(ffi.SetLooping(uint32(anim), bool(loop)))
}

//export tg_cancel_animation
func tg_cancel_animation(anim C.uint32_t) C.int32_t {
	return C.int32_t(ffi.CancelAnimation(uint32(anim)))
}

//export tg_chain
func tg_chain(first, then C.uint32_t) C.int32_t {
	return C.int32_t(ffi.Chain(uint32(first), uint32(then)))
}

//export tg_animation_state
func tg_animation_state(anim C.uint32_t) C.int32_t {
	return C.int32_t(ffi.AnimationState(uint32(anim)))
}

//export tg_animation_count
func tg_animation_count() C.int32_t { return C.int32_t(ffi.AnimationCount()) }

//export tg_create_group
func tg_create_group() C.uint32_t { return C.uint32_t(ffi.CreateGroup()) }

//export tg_group_add
func tg_group_add(group, anim, delayMs C.uint32_t) C.int32_t {
	return C.int32_t(ffi.GroupAdd(uint32(group), uint32(anim), uint32(delayMs)))
}

//export tg_group_start
func tg_group_start(group C.uint32_t) C.int32_t { return C.int32_t(ffi.GroupStart(uint32(group))) }

//export tg_group_cancel
func tg_group_cancel(group C.uint32_t) C.int32_t {
	return C.int32_t(ffi.GroupCancel(uint32(group)))
}

//export tg_group_state
func tg_group_state(group C.uint32_t) C.int32_t { return C.int32_t(ffi.GroupState(uint32(group))) }

// Frame and input

//export tg_render
func tg_render() C.int32_t { return C.int32_t(ffi.Render()) }

//export tg_invalidate
func tg_invalidate() C.int32_t { return C.int32_t(ffi.Invalidate()) }

//export tg_frame_stats
func tg_frame_stats(out *C.int64_t) C.int32_t {
	return C.int32_t(ffi.FrameStats((*[ffi.StatsLen]int64)(unsafe.Pointer(out))))
}

//export tg_frame_timing
func tg_frame_timing(out *C.double) C.int32_t {
	return C.int32_t(ffi.FrameTiming((*[3]float64)(unsafe.Pointer(out))))
}

//export tg_size
func tg_size(w, h *C.int32_t) C.int32_t {
	return C.int32_t(ffi.Size((*int32)(w), (*int32)(h)))
}

//export tg_read_input
func tg_read_input(timeoutMs C.int32_t) C.int32_t {
	return C.int32_t(ffi.ReadInput(int32(timeoutMs)))
}

//export tg_drain_event
func tg_drain_event(buf *C.char, n C.int32_t) C.int32_t {
	return C.int32_t(ffi.DrainEvent(bytesOut(buf, n)))
}

//export tg_pending_events
func tg_pending_events() C.int32_t { return C.int32_t(ffi.PendingEvents()) }

//export tg_inject_key
func tg_inject_key(key C.uint16_t, r C.int32_t, mods C.uint8_t) C.int32_t {
	return C.int32_t(ffi.InjectKey(uint16(key), int32(r), uint8(mods)))
}

//export tg_inject_rune
func tg_inject_rune(r C.int32_t) C.int32_t { return C.int32_t(ffi.InjectRune(int32(r))) }

//export tg_inject_mouse
func tg_inject_mouse(x, y C.int32_t, button, action, mods C.uint8_t) C.int32_t {
	return C.int32_t(ffi.InjectMouse(int32(x), int32(y), uint8(button), uint8(action), uint8(mods)))
}

//export tg_inject_resize
func tg_inject_resize(w, h C.int32_t) C.int32_t {
	return C.int32_t(ffi.InjectResize(int32(w), int32(h)))
}

//export tg_focused
func tg_focused() C.uint32_t { return C.uint32_t(ffi.Focused()) }

//export tg_set_focus
func tg_set_focus(node C.uint32_t) C.int32_t { return C.int32_t(ffi.SetFocus(uint32(node))) }

//export tg_focus_next
func tg_focus_next() C.uint32_t { return C.uint32_t(ffi.FocusNext()) }

//export tg_focus_prev
func tg_focus_prev() C.uint32_t { return C.uint32_t(ffi.FocusPrev()) }

//export tg_check_invariants
func tg_check_invariants() C.int32_t { return C.int32_t(ffi.CheckInvariants()) }

//export tg_counter
func tg_counter(name *C.char, n C.int32_t) C.int64_t {
	return C.int64_t(ffi.Counter(bytesIn(name, n)))
}
