package backend

import (
	"errors"

	"github.com/rajveermalviya/go-wayland/wayland"
	"golang.org/x/sys/unix"

	"github.com/friedelschoen/scrawl"
	"github.com/friedelschoen/scrawl/wlproto"
)

/* screencopyResult is what the frame's OnReady/OnFailed handlers push onto
the buffered result channel and what Poll receives from it — a small
bounded pipe instead of a shared mutable field (spec.md §5). */
type screencopyResult struct {
	image *scrawl.FrozenImage
	err   error
}

/* screencopyBackend implements scrawl.CaptureBackend against
zwlr_screencopy_manager_v1 (spec.md §4.7's primary capture transport). One
capture owns one SHM-backed buffer sized to the bound output; Begin issues
the request, the frame's own OnReady/OnFailed handlers (invoked on the
connection's dispatch goroutine, spec.md §5) push the outcome onto a
buffered channel of depth 1, and Poll only ever does a non-blocking
receive so the event loop never stalls on the compositor. */
type screencopyBackend struct {
	reg    *wlproto.Registrar
	output *wlproto.Output

	file fileCloser
	pool *wlproto.ShmPool
	buf  *wlproto.Buffer
	data []byte

	frame  *wlproto.ScreencopyFrame
	result chan screencopyResult
}

type fileCloser interface {
	Fd() uintptr
	Close() error
}

func newScreencopyBackend(reg *wlproto.Registrar) (*screencopyBackend, error) {
	if reg.Screencopy == nil {
		return nil, errors.New("backend: compositor did not advertise zwlr_screencopy_manager_v1")
	}
	if reg.Outputs == nil || len(*reg.Outputs) == 0 {
		return nil, errors.New("backend: no wl_output bound yet")
	}
	return &screencopyBackend{reg: reg, output: (*reg.Outputs)[0], result: make(chan screencopyResult, 1)}, nil
}

func (c *screencopyBackend) Begin() error {
	f, err := createTmpfile()
	if err != nil {
		return err
	}

	width, height := int(c.output.Size.W), int(c.output.Size.H)
	stride := width * 4
	size := stride * height
	if size <= 0 {
		f.Close()
		return errors.New("backend: output has no known size yet")
	}
	if err := unix.Ftruncate(int(f.Fd()), int64(size)); err != nil {
		f.Close()
		return err
	}
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return err
	}

	pool := c.reg.Shm.CreatePool(int(f.Fd()), int32(size), nil)
	buf := pool.CreateBuffer(0, int32(width), int32(height), int32(stride), wlproto.ShmFormatArgb8888, &wlproto.BufferHandlers{})

	c.file, c.pool, c.buf, c.data = f, pool, buf, data

	c.frame = c.reg.Screencopy.CaptureOutput(0, c.output, &wlproto.ScreencopyFrameHandlers{
		OnBuffer: c.onBuffer,
		OnReady:  c.onReady,
		OnFailed: c.onFailed,
	})
	return nil
}

func (c *screencopyBackend) onBuffer(wayland.Event) {
	c.frame.Copy(c.buf)
}

func (c *screencopyBackend) onReady(wayland.Event) {
	width, height := int(c.output.Size.W), int(c.output.Size.H)
	img := &scrawl.FrozenImage{
		Width:  width,
		Height: height,
		Stride: width * 4,
		Scale:  scaleOf(c.output.Scale),
		Data:   append([]byte(nil), c.data...),
	}
	select {
	case c.result <- screencopyResult{image: img}:
	default:
	}
}

func (c *screencopyBackend) onFailed(wayland.Event) {
	select {
	case c.result <- screencopyResult{err: errors.New("backend: screencopy frame failed")}:
	default:
	}
}

func (c *screencopyBackend) Poll() (*scrawl.FrozenImage, bool) {
	select {
	case r := <-c.result:
		c.teardown()
		if r.err != nil {
			return nil, true
		}
		return r.image, true
	default:
		return nil, false
	}
}

func (c *screencopyBackend) Cancel() {
	c.teardown()
}

func scaleOf(factor int32) float64 {
	if factor < 1 {
		return 1
	}
	return float64(factor)
}

func (c *screencopyBackend) teardown() {
	if c.frame != nil {
		c.frame.Destroy()
		c.frame = nil
	}
	if c.buf != nil {
		c.buf.Destroy()
		c.buf = nil
	}
	if c.pool != nil {
		c.pool.Destroy()
		c.pool = nil
	}
	if c.file != nil {
		c.file.Close()
		c.file = nil
	}
}

