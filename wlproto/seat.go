package wlproto

import "github.com/rajveermalviya/go-wayland/wayland"

const (
	SeatCapabilityPointer  uint32 = 1
	SeatCapabilityKeyboard uint32 = 2
	SeatCapabilityTouch    uint32 = 4
)

type SeatHandlers struct {
	OnCapabilities func(evt wayland.Event)
	OnName         func(evt wayland.Event)
}

type SeatCapabilitiesEvent struct{ Capabilities uint32 }
type SeatNameEvent struct{ Name string }

type Seat struct {
	object
	handlers *SeatHandlers
}

func bindSeat(reg *Registry, name, version uint32) *Seat {
	return &Seat{object: object{conn: reg.conn, id: name}}
}

func (s *Seat) GetPointer(h *PointerHandlers) *Pointer {
	p := &Pointer{handlers: h}
	p.conn = s.conn
	return p
}

func (s *Seat) GetKeyboard(h *KeyboardHandlers) *Keyboard {
	k := &Keyboard{handlers: h}
	k.conn = s.conn
	return k
}

func (s *Seat) Release() error { return nil }

/* --- wl_pointer --- */

const (
	PointerButtonStateReleased uint32 = 0
	PointerButtonStatePressed  uint32 = 1

	PointerAxisVertical   uint32 = 0
	PointerAxisHorizontal uint32 = 1
)

type PointerHandlers struct {
	OnEnter                 func(evt wayland.Event)
	OnLeave                 func(evt wayland.Event)
	OnMotion                func(evt wayland.Event)
	OnButton                func(evt wayland.Event)
	OnAxis                  func(evt wayland.Event)
	OnFrame                 func(evt wayland.Event)
	OnAxisSource            func(evt wayland.Event)
	OnAxisStop              func(evt wayland.Event)
	OnAxisDiscrete          func(evt wayland.Event)
	OnAxisValue120          func(evt wayland.Event)
	OnAxisRelativeDirection func(evt wayland.Event)
}

type PointerEnterEvent struct {
	Serial      uint32
	Surface     wayland.Proxy
	SurfaceX    float64
	SurfaceY    float64
}
type PointerLeaveEvent struct {
	Serial  uint32
	Surface wayland.Proxy
}
type PointerMotionEvent struct {
	Time     uint32
	SurfaceX float64
	SurfaceY float64
}
type PointerButtonEvent struct {
	Serial uint32
	Time   uint32
	Button uint32
	State  uint32
}
type PointerAxisEvent struct {
	Time  uint32
	Axis  uint32
	Value float64
}
type PointerFrameEvent struct{}

type Pointer struct {
	object
	handlers *PointerHandlers
}

func (p *Pointer) Release() error { return nil }

/* --- wl_keyboard --- */

const (
	KeyboardKeyStateReleased uint32 = 0
	KeyboardKeyStatePressed  uint32 = 1
)

type KeyboardHandlers struct {
	OnKeymap     func(evt wayland.Event)
	OnEnter      func(evt wayland.Event)
	OnLeave      func(evt wayland.Event)
	OnKey        func(evt wayland.Event)
	OnModifiers  func(evt wayland.Event)
	OnRepeatInfo func(evt wayland.Event)
}

type KeyboardKeymapEvent struct {
	Format uint32
	Fd     int
	Size   uint32
}
type KeyboardKeyEvent struct {
	Serial uint32
	Time   uint32
	Key    uint32
	State  uint32
}
type KeyboardModifiersEvent struct {
	Serial        uint32
	ModsDepressed uint32
	ModsLatched   uint32
	ModsLocked    uint32
	Group         uint32
}
type KeyboardRepeatInfoEvent struct {
	Rate  int32
	Delay int32
}

type Keyboard struct {
	object
	handlers *KeyboardHandlers
}

func (k *Keyboard) Release() error { return nil }
