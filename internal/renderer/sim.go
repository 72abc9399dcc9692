package renderer

import (
	"sync"
	"time"
)

const simTickInterval = 50 * time.Millisecond

// Sim is a clock-driven stand-in engine. It decodes nothing: it reports the
// state transitions a real engine would (buffering, ready, ended) against a
// fixed media duration, so the daemon and handler tests can run end to end
// without a rendering engine attached.
type Sim struct {
	opts     Options
	duration time.Duration

	mu         sync.Mutex
	listener   Listener
	playing    bool
	fullscreen bool
	visible    bool
	controls   bool
	posMs      int64
	ended      bool
	autoplayed bool
	released   bool
	sizeSent   bool

	callbacks chan func(Listener)
	done      chan struct{}
}

// SimFactory returns a Factory producing Sim engines that report the given
// media duration.
func SimFactory(duration time.Duration) Factory {
	return func(opts Options) (Renderer, error) {
		return NewSim(opts, duration), nil
	}
}

func NewSim(opts Options, duration time.Duration) *Sim {
	s := &Sim{
		opts:      opts,
		duration:  duration,
		controls:  true,
		callbacks: make(chan func(Listener), 16),
		done:      make(chan struct{}),
	}
	go s.dispatch()
	go s.clock()
	return s
}

// dispatch invokes queued callbacks against the listener attached at
// dispatch time, off the caller's goroutine like a real engine would.
func (s *Sim) dispatch() {
	for {
		select {
		case <-s.done:
			return
		case fn := <-s.callbacks:
			s.mu.Lock()
			l := s.listener
			s.mu.Unlock()
			if l != nil {
				fn(l)
			}
		}
	}
}

func (s *Sim) clock() {
	ticker := time.NewTicker(simTickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.advance(simTickInterval)
		}
	}
}

func (s *Sim) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playing || s.ended {
		return
	}
	s.posMs += d.Milliseconds()
	if !s.opts.Live && s.duration > 0 && s.posMs >= s.duration.Milliseconds() {
		s.posMs = s.duration.Milliseconds()
		s.ended = true
		s.queue(func(l Listener) { l.OnStateChanged(true, StateEnded) })
	}
}

// queue enqueues a callback; caller holds s.mu.
func (s *Sim) queue(fn func(Listener)) {
	select {
	case s.callbacks <- fn:
	default:
		// Listener is not draining; drop rather than block the clock.
	}
}

func (s *Sim) beginPlayback() {
	s.playing = true
	s.ended = false
	s.queue(func(l Listener) { l.OnStateChanged(true, StateBuffering) })
	s.queue(func(l Listener) { l.OnStateChanged(true, StateReady) })
	if !s.opts.AudioOnly && !s.sizeSent {
		s.sizeSent = true
		s.queue(func(l Listener) { l.OnSizeChanged(1280, 720, 0, 1.0) })
	}
}

func (s *Sim) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released || s.playing {
		return
	}
	s.beginPlayback()
}

func (s *Sim) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released || !s.playing {
		return
	}
	s.playing = false
	// Past end of stream the engine is still in the ended state; a pause
	// there must not look like a mid-stream pause.
	if s.ended {
		s.queue(func(l Listener) { l.OnStateChanged(false, StateEnded) })
		return
	}
	s.queue(func(l Listener) { l.OnStateChanged(false, StateReady) })
}

func (s *Sim) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
}

func (s *Sim) SeekMs(ms int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ms < 0 {
		ms = 0
	}
	s.posMs = ms
	if ms < s.duration.Milliseconds() {
		s.ended = false
	}
}

func (s *Sim) Release() {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}
	s.released = true
	s.playing = false
	s.listener = nil
	s.mu.Unlock()
	close(s.done)
}

func (s *Sim) SetFullscreen(flag bool) {
	s.mu.Lock()
	s.fullscreen = flag
	s.mu.Unlock()
}

func (s *Sim) IsFullscreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullscreen
}

func (s *Sim) PositionMs() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posMs
}

func (s *Sim) DurationMs() int64 {
	if s.opts.Live {
		return 0
	}
	return s.duration.Milliseconds()
}

func (s *Sim) EnableControls()  { s.setControls(true) }
func (s *Sim) DisableControls() { s.setControls(false) }

func (s *Sim) setControls(flag bool) {
	s.mu.Lock()
	s.controls = flag
	s.mu.Unlock()
}

func (s *Sim) Show() {
	s.mu.Lock()
	s.visible = true
	s.mu.Unlock()
}

func (s *Sim) Hide() {
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
}

// SetListener attaches the callback sink. When autoplay is allowed the
// engine starts playback as soon as a listener is attached, mirroring an
// engine that begins on construction.
func (s *Sim) SetListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
	if l != nil && s.opts.AutoplayAllowed && !s.autoplayed && !s.released {
		s.autoplayed = true
		s.beginPlayback()
	}
}
