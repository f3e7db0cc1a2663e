package wlproto

import "github.com/rajveermalviya/go-wayland/wayland"

type OutputHandlers struct {
	OnGeometry func(evt wayland.Event)
	OnMode     func(evt wayland.Event)
	OnScale    func(evt wayland.Event)
	OnName     func(evt wayland.Event)
	OnDone     func(evt wayland.Event)
}

type OutputGeometryEvent struct {
	X, Y             int32
	PhysicalWidth    int32
	PhysicalHeight   int32
	Subpixel         int32
	Make, Model      string
	Transform        int32
}

const OutputModeCurrent uint32 = 1

type OutputModeEvent struct {
	Flags         uint32
	Width, Height int32
	Refresh       int32
}

type OutputScaleEvent struct{ Factor int32 }
type OutputNameEvent struct{ Name string }

type Output struct {
	object
	handlers *OutputHandlers

	Name   string
	Scale  int32
	Offset struct{ X, Y int32 }
	Size   struct{ W, H int32 }
}

func bindOutput(reg *Registry, name, version uint32) *Output {
	o := &Output{Scale: 1}
	o.conn = reg.conn
	o.id = name
	o.handlers = &OutputHandlers{
		OnGeometry: func(evt wayland.Event) {
			e := evt.(*OutputGeometryEvent)
			o.Offset.X, o.Offset.Y = e.X, e.Y
		},
		OnMode: func(evt wayland.Event) {
			e := evt.(*OutputModeEvent)
			if e.Flags&OutputModeCurrent != 0 {
				o.Size.W, o.Size.H = e.Width, e.Height
			}
		},
		OnScale: func(evt wayland.Event) {
			e := evt.(*OutputScaleEvent)
			o.Scale = e.Factor
		},
		OnName: func(evt wayland.Event) {
			e := evt.(*OutputNameEvent)
			o.Name = e.Name
		},
	}
	return o
}

func (o *Output) Release() error { return nil }
