// Package renderer defines the contract between the session controller and
// the external media decode/render engine. The engine itself is a
// collaborator: the controller only ever talks to it through these
// interfaces.
package renderer

import "playerctl/internal/media"

// State is the engine-reported playback state.
type State int

const (
	StateIdle State = iota
	StateBuffering
	StateReady
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuffering:
		return "buffering"
	case StateReady:
		return "ready"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Listener receives engine callbacks. Callbacks may arrive on an
// engine-internal goroutine; implementations marshal onto their own
// synchronization before touching shared state.
type Listener interface {
	OnStateChanged(playWhenReady bool, state State)
	OnError(err error)
	OnSizeChanged(width, height, rotationDegrees int, pixelAspectRatio float64)
}

// Options configure engine construction for one session.
type Options struct {
	URL   string
	Type  media.StreamType
	Title string
	// AutoplayAllowed is false when an ad layer is expected to take control
	// of the engine before content playback begins.
	AutoplayAllowed bool
	// AudioOnly suppresses fullscreen chrome and the playback surface.
	AudioOnly bool
	// Live hides seek/time chrome and adds a non-interactive live indicator.
	Live       bool
	ThemeColor string
}

// Renderer is one engine instance bound to one media URL. Position and
// duration are reported in the engine's native unit, milliseconds.
type Renderer interface {
	Play()
	Pause()
	Stop()
	SeekMs(ms int64)
	Release()

	SetFullscreen(flag bool)
	IsFullscreen() bool

	PositionMs() int64
	DurationMs() int64

	EnableControls()
	DisableControls()
	Show()
	Hide()

	// SetListener attaches the callback sink. Passing nil detaches.
	SetListener(l Listener)
}

// Factory constructs an engine instance for a session.
type Factory func(opts Options) (Renderer, error)
