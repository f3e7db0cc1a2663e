package scrawl

import "time"

/* FrozenImage is a CPU-side ARGB32 (premultiplied) snapshot of the content
beneath the overlay, origin top-left (spec.md §3, §6). */
type FrozenImage struct {
	Width, Height int
	Stride        int
	Scale         float64
	Data          []byte
}

func (f *FrozenImage) Valid() bool {
	return f != nil && f.Width > 0 && f.Height > 0 && f.Stride >= f.Width*4 && len(f.Data) == f.Stride*f.Height
}

/* CaptureStage is the state machine driving a capture attempt (spec.md
§4.7): Idle -> PreflightPending -> CaptureInFlight -> Done -> Idle, with an
abort path back to Idle from any non-Idle stage. */
type CaptureStage int

const (
	CaptureIdle CaptureStage = iota
	CapturePreflightPending
	CaptureInFlight
	CaptureDone
)

/* CaptureBackend abstracts the two capture transports named in spec.md
§4.7: wlr-screencopy when a manager global is bound, otherwise the desktop
portal. Both are external collaborators per spec.md §1 ("screenshot
pipeline beyond its role as a provider of FrozenImage") — this interface is
the narrow boundary the core engine talks to. */
type CaptureBackend interface {
	// Begin starts an async capture; results arrive via Poll.
	Begin() error
	// Poll returns (image, done). done=false means still in flight.
	Poll() (*FrozenImage, bool)
	Cancel()
}

/* FrozenState owns an in-flight capture session (if any) and the produced
image. */
type FrozenState struct {
	Stage     CaptureStage
	backend   CaptureBackend
	image     *FrozenImage
	startedAt time.Time
	timeout   time.Duration
}

func NewFrozenState(timeout time.Duration) *FrozenState {
	return &FrozenState{timeout: timeout}
}

func (f *FrozenState) Image() *FrozenImage { return f.image }

func (f *FrozenState) HasImage() bool { return f.image != nil }

/* Begin kicks off a capture through backend, recording the start time for
timeout enforcement (portal path; spec.md §4.7, §5). */
func (f *FrozenState) Begin(backend CaptureBackend, now time.Time) error {
	if err := backend.Begin(); err != nil {
		return err
	}
	f.backend = backend
	f.Stage = CapturePreflightPending
	f.startedAt = now
	return nil
}

/* Poll should be called once per event-loop iteration while a capture is
in flight. It returns a non-nil Toast when the capture fails or times out
(a successful capture returns a nil Toast), so the caller can surface user
feedback without this package knowing about rendering. */
func (f *FrozenState) Poll(now time.Time) (done bool, toast *Toast) {
	if f.Stage == CaptureIdle || f.Stage == CaptureDone {
		return true, nil
	}
	if f.timeout > 0 && now.Sub(f.startedAt) > f.timeout {
		f.Cancel()
		t := NewToast("capture timed out", SeverityWarning, 3000)
		return true, &t
	}
	f.Stage = CaptureInFlight
	img, ok := f.backend.Poll()
	if !ok {
		return false, nil
	}
	if img == nil {
		f.Stage = CaptureIdle
		f.backend = nil
		t := NewToast("capture failed", SeverityError, 3000)
		return true, &t
	}
	f.image = img
	f.Stage = CaptureDone
	return true, nil
}

/* Cancel tears down the session and marks the frame done, matching
spec.md §4.7: "unmaps the session, sets capture_done, and marks the frame
dirty" — the dirty-marking is left to the caller since FrozenState has no
DirtyTracker reference. */
func (f *FrozenState) Cancel() {
	if f.backend != nil {
		f.backend.Cancel()
	}
	f.backend = nil
	f.Stage = CaptureIdle
}

/* Unfreeze clears the produced image, e.g. on resize mismatch or explicit
unfreeze (spec.md §3 FrozenImage lifetime). */
func (f *FrozenState) Unfreeze() {
	f.image = nil
	f.Stage = CaptureIdle
}

/* CheckResize clears the image if its dimensions no longer match the
screen, per the FrozenImage lifetime contract. */
func (f *FrozenState) CheckResize(screenW, screenH int) {
	if f.image == nil {
		return
	}
	if f.image.Width != screenW || f.image.Height != screenH {
		f.Unfreeze()
	}
}
