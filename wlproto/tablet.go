package wlproto

import "github.com/rajveermalviya/go-wayland/wayland"

/* zwp_tablet_manager_v2 is optional per spec.md §1: drawing works fully
from mouse/touch input, and pen-specific behavior (pressure, eraser
auto-switch) only activates when the compositor advertises this global. */

type TabletManagerHandlers struct{}

type TabletManager struct {
	object
	handlers *TabletManagerHandlers
}

func bindTabletManager(reg *Registry, name, version uint32) *TabletManager {
	return &TabletManager{object: object{conn: reg.conn, id: name}}
}

func (m *TabletManager) GetTabletSeat(seat *Seat, h *TabletSeatHandlers) *TabletSeat {
	s := &TabletSeat{handlers: h}
	s.conn = m.conn
	return s
}

func (m *TabletManager) Destroy() error { return nil }

type TabletSeatHandlers struct {
	OnToolAdded func(evt wayland.Event)
}

type TabletSeatToolAddedEvent struct{ Id wayland.Proxy }

type TabletSeat struct {
	object
	handlers *TabletSeatHandlers
}

/* zwp_tablet_tool_v2 events relevant to the auto-eraser and pressure
features (spec.md §4.2). */
type TabletToolHandlers struct {
	OnType          func(evt wayland.Event)
	OnProximityIn   func(evt wayland.Event)
	OnProximityOut  func(evt wayland.Event)
	OnDown          func(evt wayland.Event)
	OnUp            func(evt wayland.Event)
	OnMotion        func(evt wayland.Event)
	OnPressure      func(evt wayland.Event)
	OnFrame         func(evt wayland.Event)
}

const (
	TabletToolTypePen    uint32 = 0x140
	TabletToolTypeEraser uint32 = 0x141
)

type TabletToolTypeEvent struct{ ToolType uint32 }
type TabletToolProximityInEvent struct {
	Serial  uint32
	Tablet  wayland.Proxy
	Surface wayland.Proxy
}
type TabletToolProximityOutEvent struct{}
type TabletToolMotionEvent struct{ X, Y float64 }
type TabletToolPressureEvent struct{ Pressure uint32 } /* normalized 0..65535 */

type TabletTool struct {
	object
	handlers *TabletToolHandlers
}
