// Package controller owns the lifecycle of a single playback session: it
// translates renderer callbacks into bus events, manages the progress
// timer, and guarantees the renderer is created and torn down exactly once
// per session.
package controller

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"playerctl/internal/event"
	"playerctl/internal/media"
	"playerctl/internal/renderer"
)

var (
	// ErrInvalidArgument reports a nil or unusable media descriptor.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoSession reports a session-dependent operation with no session.
	ErrNoSession = errors.New("no active session")
	// ErrSessionExists reports an attempt to create over a live session.
	ErrSessionExists = errors.New("session already exists")
)

// Controller is the public control surface of the playback session. All
// session mutation is serialized through one mutex; renderer callbacks and
// timer ticks take it at the boundary before touching state.
type Controller struct {
	bus              *event.Bus
	factory          renderer.Factory
	progress         *progressTimer
	progressInterval time.Duration

	mu             sync.Mutex
	media          *media.Config
	session        *session
	autoFullscreen bool
	enableControls bool
	progressArmed  bool
}

// session is the renderer instance plus its attached listener. At most one
// exists per Controller at any time.
type session struct {
	renderer    renderer.Renderer
	listener    *sessionListener
	hasStarted  bool
	hasFinished bool
	outputMenu  bool
	captionMenu bool
}

type Option func(*Controller)

// WithProgressInterval overrides the 250ms progress cadence. Used by tests.
func WithProgressInterval(d time.Duration) Option {
	return func(c *Controller) {
		c.progressInterval = d
	}
}

func New(bus *event.Bus, factory renderer.Factory, opts ...Option) *Controller {
	c := &Controller{
		bus:              bus,
		factory:          factory,
		progressInterval: DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.progress = newProgressTimer(c.progressInterval, c.emitProgress)
	return c
}

// SetMedia replaces the session's media config with a deep copy of the
// descriptor and tears down any existing session (emitting UNLOAD). It
// never auto-creates the next session.
func (c *Controller) SetMedia(d *media.Descriptor) error {
	if d == nil {
		return fmt.Errorf("%w: media descriptor is nil", ErrInvalidArgument)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.media = media.NewConfig(d)
	c.destroyLocked()
	return nil
}

// Play resumes the session if one exists, otherwise creates one and starts
// playback. Idempotent while already playing.
func (c *Controller) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		c.session.renderer.Play()
		return nil
	}
	return c.createLocked(true)
}

// Pause is a no-op unless the session has started.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil && c.session.hasStarted {
		c.session.renderer.Pause()
	}
}

// Stop halts the renderer and emits STOP. Calling it with no active
// session is a precondition violation surfaced as ErrNoSession.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ErrNoSession
	}
	c.progressArmed = false
	c.progress.Stop()
	c.session.renderer.Stop()
	c.bus.Post(event.New(event.Stop))
	return nil
}

// Seek moves playback to the given position in seconds, rounded to the
// renderer's millisecond unit.
func (c *Controller) Seek(seconds float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ErrNoSession
	}
	c.session.renderer.SeekMs(int64(math.Round(seconds * 1000)))
	return nil
}

// SetFullscreen forwards to the renderer and emits FULLSCREEN or
// FULLSCREEN_EXIT when the state actually changes.
func (c *Controller) SetFullscreen(flag bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ErrNoSession
	}
	if c.session.renderer.IsFullscreen() == flag {
		return nil
	}
	c.session.renderer.SetFullscreen(flag)
	if flag {
		c.bus.Post(event.New(event.Fullscreen))
	} else {
		c.bus.Post(event.New(event.FullscreenExit))
	}
	return nil
}

// IsFullscreen reports the renderer's fullscreen state, false with no
// session.
func (c *Controller) IsFullscreen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil && c.session.renderer.IsFullscreen()
}

// SetAutoFullscreenMode gates whether orientation intents may force
// fullscreen transitions.
func (c *Controller) SetAutoFullscreenMode(flag bool) {
	c.mu.Lock()
	c.autoFullscreen = flag
	c.mu.Unlock()
}

// AutoFullscreen reports whether orientation-driven fullscreen is enabled.
func (c *Controller) AutoFullscreen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoFullscreen
}

// HasSession reports whether a playback session currently exists.
func (c *Controller) HasSession() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

// SetEnableControls toggles chrome controls. Always a no-op for audio-only
// media. With no session yet, the flag is buffered and applied at the next
// create.
func (c *Controller) SetEnableControls(flag bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.media != nil && c.media.IsAudioOnly {
		return
	}
	c.enableControls = flag
	if c.session == nil {
		return
	}
	if flag {
		c.session.renderer.EnableControls()
	} else {
		c.session.renderer.DisableControls()
	}
}

// ChangeOutput switches to the rendition with the given label, restarting
// the renderer while preserving the playback position. Listeners observe
// no LOAD/UNLOAD pair.
func (c *Controller) ChangeOutput(label string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ErrNoSession
	}
	pos := c.session.renderer.PositionMs()
	if _, ok := c.media.SelectOutput(label); !ok {
		return fmt.Errorf("%w: output %q not found", ErrInvalidArgument, label)
	}
	c.destroyInternalLocked()
	if err := c.createLocked(false); err != nil {
		return err
	}
	c.session.renderer.SeekMs(pos)
	return nil
}

// ChangeCaption marks the caption with the given language as current. Pure
// metadata update; the session is not restarted. Track selection inside
// the renderer is the engine's responsibility.
func (c *Controller) ChangeCaption(language string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.media == nil {
		return fmt.Errorf("%w: no media set", ErrInvalidArgument)
	}
	if _, ok := c.media.SelectCaption(language); !ok {
		return fmt.Errorf("%w: caption %q not found", ErrInvalidArgument, language)
	}
	return nil
}

// Destroy tears down any active session and emits UNLOAD unconditionally,
// even when no session existed.
func (c *Controller) Destroy() {
	c.mu.Lock()
	c.destroyLocked()
	c.mu.Unlock()
}

// CurrentTime returns the playback position in seconds, 0 with no session.
func (c *Controller) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return 0
	}
	return float64(c.session.renderer.PositionMs()) / 1000
}

// Duration returns the media duration in seconds, 0 with no session.
func (c *Controller) Duration() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return 0
	}
	return float64(c.session.renderer.DurationMs()) / 1000
}

func (c *Controller) HasStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil && c.session.hasStarted
}

func (c *Controller) HasFinished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil && c.session.hasFinished
}

// Status is a consistent snapshot of the session state.
type Status struct {
	HasSession     bool          `json:"has_session"`
	HasStarted     bool          `json:"has_started"`
	HasFinished    bool          `json:"has_finished"`
	Fullscreen     bool          `json:"fullscreen"`
	AutoFullscreen bool          `json:"auto_fullscreen"`
	CurrentTime    float64       `json:"current_time"`
	Duration       float64       `json:"duration"`
	OutputMenu     bool          `json:"output_menu"`
	CaptionMenu    bool          `json:"caption_menu"`
	Media          *media.Config `json:"media,omitempty"`
}

// Status captures the controller state under one lock acquisition.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := Status{AutoFullscreen: c.autoFullscreen}
	if c.media != nil {
		st.Media = c.media.Clone()
	}
	if s := c.session; s != nil {
		st.HasSession = true
		st.HasStarted = s.hasStarted
		st.HasFinished = s.hasFinished
		st.Fullscreen = s.renderer.IsFullscreen()
		st.CurrentTime = float64(s.renderer.PositionMs()) / 1000
		st.Duration = float64(s.renderer.DurationMs()) / 1000
		st.OutputMenu = s.outputMenu
		st.CaptionMenu = s.captionMenu
	}
	return st
}

// createLocked builds a fresh session. notify=false suppresses the LOAD
// event (the output-change restart path). Double creation is rejected
// without side effects.
func (c *Controller) createLocked(notify bool) error {
	if c.session != nil {
		log.Printf("controller: session already created")
		return ErrSessionExists
	}
	if c.media == nil || c.media.URL == "" {
		log.Printf("controller: refusing to create session: empty media url")
		c.bus.Post(event.NewError("media url is empty"))
		return fmt.Errorf("%w: media url is empty", ErrInvalidArgument)
	}

	opts := renderer.Options{
		URL:   c.media.URL,
		Type:  c.media.Type,
		Title: c.media.Title,
		// An ad layer takes control of the engine first when an ad url is
		// present, so content autoplay is disabled.
		AutoplayAllowed: c.media.AdURL == "",
		AudioOnly:       c.media.IsAudioOnly,
		Live:            c.media.IsLive,
		ThemeColor:      c.media.ThemeColor,
	}
	r, err := c.factory(opts)
	if err != nil {
		c.bus.Post(event.NewError(err.Error()))
		return fmt.Errorf("creating renderer: %w", err)
	}

	s := &session{
		renderer:    r,
		listener:    &sessionListener{c: c},
		outputMenu:  len(c.media.Outputs) > 1 && !c.media.IsAudioOnly,
		captionMenu: len(c.media.Captions) > 0,
	}
	c.session = s

	if notify {
		c.bus.Post(event.New(event.Load))
	}
	if !c.enableControls && !c.media.IsAudioOnly {
		r.DisableControls()
	}
	// Attach last so engine callbacks never precede LOAD.
	r.SetListener(s.listener)
	return nil
}

// destroyLocked is destroyInternal plus the user-visible UNLOAD.
func (c *Controller) destroyLocked() {
	c.destroyInternalLocked()
	c.bus.Post(event.New(event.Unload))
}

// destroyInternalLocked releases the renderer and detaches its listener
// synchronously, so no late callback can observe a half-torn-down session.
// Safe to call with no session and tolerant of partial state.
func (c *Controller) destroyInternalLocked() {
	s := c.session
	if s == nil {
		return
	}
	c.progressArmed = false
	c.progress.Stop()
	s.renderer.Stop()
	s.listener.detach()
	s.renderer.SetListener(nil)
	s.renderer.Release()
	c.session = nil
}

// emitProgress runs on the timer goroutine. Ticks arriving after the timer
// was disarmed, or with no session, are dropped.
func (c *Controller) emitProgress() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.progressArmed || c.session == nil {
		return
	}
	r := c.session.renderer
	c.bus.Post(event.NewProgress(float64(r.PositionMs())/1000, float64(r.DurationMs())/1000))
}
