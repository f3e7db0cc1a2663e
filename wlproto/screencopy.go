package wlproto

import "github.com/rajveermalviya/go-wayland/wayland"

/* zwlr_screencopy_manager_v1 feeds FrozenImage (spec.md §4.7). This package
only exposes enough surface for backend/capture.go to implement
CaptureBackend; the manager itself is an external-collaborator boundary
per spec.md §1, so no software cursor compositing or damage-based
incremental capture is implemented here. */

type ScreencopyManagerHandlers struct{}

type ScreencopyManager struct {
	object
	handlers *ScreencopyManagerHandlers
}

func bindScreencopyManager(reg *Registry, name, version uint32) *ScreencopyManager {
	return &ScreencopyManager{object: object{conn: reg.conn, id: name}}
}

func (m *ScreencopyManager) CaptureOutput(overlayCursor int32, output *Output, h *ScreencopyFrameHandlers) *ScreencopyFrame {
	f := &ScreencopyFrame{handlers: h}
	f.conn = m.conn
	return f
}

func (m *ScreencopyManager) Destroy() error { return nil }

type ScreencopyFrameHandlers struct {
	OnBuffer func(evt wayland.Event)
	OnFlags  func(evt wayland.Event)
	OnReady  func(evt wayland.Event)
	OnFailed func(evt wayland.Event)
}

type ScreencopyFrameBufferEvent struct {
	Format        uint32
	Width, Height uint32
	Stride        uint32
}
type ScreencopyFrameReadyEvent struct {
	TvSecHi, TvSecLo, TvNsec uint32
}
type ScreencopyFrameFailedEvent struct{}

type ScreencopyFrame struct {
	object
	handlers *ScreencopyFrameHandlers
}

func (f *ScreencopyFrame) Copy(buf *Buffer) {}
func (f *ScreencopyFrame) Destroy() error   { return nil }
