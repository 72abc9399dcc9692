package controller

import (
	"log"
	"sync/atomic"

	"playerctl/internal/event"
	"playerctl/internal/renderer"
)

// sessionListener is the renderer callback sink for one session. It holds
// only a non-owning back-reference to the controller. Once detached, every
// callback is dropped, so callbacks racing a teardown never see stale
// session state.
type sessionListener struct {
	c        *Controller
	detached atomic.Bool
}

func (l *sessionListener) detach() {
	l.detached.Store(true)
}

// stale reports whether the callback belongs to a session that is gone or
// replaced. Caller holds c.mu.
func (l *sessionListener) stale() bool {
	return l.detached.Load() || l.c.session == nil || l.c.session.listener != l
}

func (l *sessionListener) OnStateChanged(playWhenReady bool, state renderer.State) {
	if l.detached.Load() {
		return
	}
	c := l.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if l.stale() {
		return
	}
	log.Printf("controller: renderer state %v playWhenReady=%v", state, playWhenReady)

	s := c.session
	switch state {
	case renderer.StateReady:
		if playWhenReady {
			if !s.hasStarted {
				s.hasStarted = true
				c.bus.Post(event.New(event.Start))
				s.renderer.Show()
			}
			c.bus.Post(event.New(event.Play))
			c.progressArmed = true
			c.progress.Start()
		} else {
			c.progressArmed = false
			c.progress.Stop()
			c.bus.Post(event.New(event.Pause))
		}
	case renderer.StateEnded:
		// End-of-stream with playWhenReady=false is not a true completion.
		if !playWhenReady || s.hasFinished {
			return
		}
		c.progressArmed = false
		c.progress.Stop()
		if s.hasStarted {
			s.renderer.Pause()
		}
		s.renderer.SeekMs(0)
		c.bus.Post(event.New(event.Finish))
		s.hasFinished = true
	}
}

func (l *sessionListener) OnError(err error) {
	if l.detached.Load() {
		return
	}
	c := l.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if l.stale() {
		return
	}
	log.Printf("controller: renderer error: %v", err)
	c.bus.Post(event.NewError(err.Error()))
}

func (l *sessionListener) OnSizeChanged(width, height, rotationDegrees int, pixelAspectRatio float64) {
	if l.detached.Load() {
		return
	}
	c := l.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if l.stale() {
		return
	}
	c.bus.Post(event.NewResize(width, height, rotationDegrees, pixelAspectRatio))
}
