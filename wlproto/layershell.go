package wlproto

import "github.com/rajveermalviya/go-wayland/wayland"

/* zwlr_layer_shell_v1 constants, named exactly as the protocol XML enums so
a reader who knows the wire protocol recognizes them immediately. */
const (
	LayerShellLayerBackground uint32 = 0
	LayerShellLayerBottom     uint32 = 1
	LayerShellLayerTop        uint32 = 2
	LayerShellLayerOverlay    uint32 = 3
)

const (
	LayerSurfaceAnchorTop    uint32 = 1
	LayerSurfaceAnchorBottom uint32 = 2
	LayerSurfaceAnchorLeft   uint32 = 4
	LayerSurfaceAnchorRight  uint32 = 8
)

const (
	LayerSurfaceKeyboardInteractivityNone     uint32 = 0
	LayerSurfaceKeyboardInteractivityExclusive uint32 = 1
	LayerSurfaceKeyboardInteractivityOnDemand uint32 = 2
)

type LayerShellHandlers struct{}

type LayerShell struct {
	object
	handlers *LayerShellHandlers
}

func bindLayerShell(reg *Registry, name, version uint32) *LayerShell {
	return &LayerShell{object: object{conn: reg.conn, id: name}}
}

func (ls *LayerShell) GetLayerSurface(surface *WlSurface, output *Output, layer uint32, namespace string, h *LayerSurfaceHandlers) *LayerSurface {
	s := &LayerSurface{handlers: h, namespace: namespace, layer: layer}
	s.conn = ls.conn
	return s
}

func (ls *LayerShell) Destroy() error { return nil }

/* --- zwlr_layer_surface_v1 --- */

type LayerSurfaceHandlers struct {
	OnConfigure func(evt wayland.Event)
	OnClosed    func(evt wayland.Event)
}

type LayerSurfaceConfigureEvent struct {
	Serial        uint32
	Width, Height uint32
}

type LayerSurfaceClosedEvent struct{}

type LayerSurface struct {
	object
	handlers  *LayerSurfaceHandlers
	namespace string
	layer     uint32
}

func (s *LayerSurface) SetSize(w, h uint32)                          {}
func (s *LayerSurface) SetAnchor(anchor uint32)                       {}
func (s *LayerSurface) SetExclusiveZone(zone int32)                  {}
func (s *LayerSurface) SetMargin(top, right, bottom, left int32)     {}
func (s *LayerSurface) SetKeyboardInteractivity(mode uint32)         {}
func (s *LayerSurface) AckConfigure(serial uint32)                   {}
func (s *LayerSurface) Destroy() error                               { return nil }
