package backend

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"

	"github.com/friedelschoen/scrawl/wlproto"
)

/* createTmpfile opens an anonymous, already-unlinked file under
XDG_RUNTIME_DIR sized for an SHM pool, the same recipe the teacher's
ctxmenu used (wayland.go createTmpfile). The file is created empty;
shmPool.ensureSize truncates it to the pool's size on each reallocation. */
func createTmpfile() (*os.File, error) {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		return nil, errors.New("backend: XDG_RUNTIME_DIR is not set")
	}
	f, err := os.CreateTemp(dir, "scrawl-shm-*")
	if err != nil {
		return nil, err
	}
	if err := os.Remove(f.Name()); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

/* shmBuffer is a single double/triple-buffered SHM slot: one mmap'd region
backing one wl_buffer, keyed by its canvas pointer for damage tracking
(spec.md §4.5). */
type shmBuffer struct {
	buf   *wlproto.Buffer
	data  []byte
	busy  bool
}

/* shmPool owns the backing file and mmap for a ring of SHM buffers sized
to the current output bounds; it reallocates to the exact new size,
larger or smaller, when the screen size changes (spec.md §4.5 "pool
growth"). */
type shmPool struct {
	shm  *wlproto.Shm
	pool *wlproto.ShmPool
	file *os.File

	width, height, stride int
	byteSize              int
	generation            uint64

	buffers []*shmBuffer
}

func newShmPool(shm *wlproto.Shm, count int) (*shmPool, error) {
	f, err := createTmpfile()
	if err != nil {
		return nil, err
	}
	p := &shmPool{shm: shm, file: f, buffers: make([]*shmBuffer, count)}
	return p, nil
}

/* ensureSize (re)allocates the pool's backing memory to fit width x
height x 4 bytes/px x len(buffers) slots, bumping generation on every
reallocation so BufferDamageTracker invalidates stale slot state. */
func (p *shmPool) ensureSize(width, height int) error {
	stride := width * 4
	slotSize := stride * height
	total := slotSize * len(p.buffers)
	if width == p.width && height == p.height && p.pool != nil {
		return nil
	}

	if err := unix.Ftruncate(int(p.file.Fd()), int64(total)); err != nil {
		return err
	}
	data, err := unix.Mmap(int(p.file.Fd()), 0, total, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return err
	}

	if p.pool == nil {
		p.pool = p.shm.CreatePool(int(p.file.Fd()), int32(total), nil)
	} else {
		p.pool.Resize(int32(total))
	}

	p.width, p.height, p.stride = width, height, stride
	p.byteSize = total
	p.generation++

	for i := range p.buffers {
		offset := int32(i * slotSize)
		slotData := data[i*slotSize : (i+1)*slotSize]
		buf := p.pool.CreateBuffer(offset, int32(width), int32(height), int32(stride), wlproto.ShmFormatAbgr8888, &wlproto.BufferHandlers{})
		p.buffers[i] = &shmBuffer{buf: buf, data: slotData}
	}
	return nil
}

/* acquire returns the first non-busy slot, marking it busy; the backend
marks it free again once the compositor's wl_buffer.release event fires
(wired in dispatch.go). */
func (p *shmPool) acquire() (*shmBuffer, int) {
	for i, b := range p.buffers {
		if !b.busy {
			b.busy = true
			return b, i
		}
	}
	return nil, -1
}

func (p *shmPool) release(index int) {
	if index >= 0 && index < len(p.buffers) {
		p.buffers[index].busy = false
	}
}

func (p *shmPool) close() {
	if p.pool != nil {
		p.pool.Destroy()
	}
	if p.file != nil {
		p.file.Close()
	}
}
