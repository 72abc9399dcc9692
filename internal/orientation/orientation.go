// Package orientation turns raw device-orientation samples into
// portrait/landscape intents and auto-fullscreen transitions. The
// classification is a pure function; the policy around it is gated by the
// controller's auto-fullscreen mode and the platform rotation lock.
package orientation

import (
	"context"
	"log"
	"sync"

	"playerctl/internal/event"
)

// Intent is the classification of one orientation sample.
type Intent int

const (
	IntentNone Intent = iota
	IntentPortrait
	IntentLandscape
)

func (i Intent) String() string {
	switch i {
	case IntentPortrait:
		return "portrait"
	case IntentLandscape:
		return "landscape"
	default:
		return "none"
	}
}

// Classify maps a raw orientation sample in degrees to an intent.
// [0,15] is portrait; [80,100] and [260,290] are landscape; everything
// else carries no intent and is dropped.
func Classify(degrees int) Intent {
	switch {
	case degrees >= 0 && degrees <= 15:
		return IntentPortrait
	case degrees >= 80 && degrees <= 100:
		return IntentLandscape
	case degrees >= 260 && degrees <= 290:
		return IntentLandscape
	default:
		return IntentNone
	}
}

// RotationLock reports the platform rotation-lock setting. The actual
// settings read is an external collaborator.
type RotationLock interface {
	Locked() bool
}

// RotationLockFunc adapts a function to the RotationLock interface.
type RotationLockFunc func() bool

func (f RotationLockFunc) Locked() bool { return f() }

// Unlocked is a RotationLock that is never engaged.
var Unlocked RotationLock = RotationLockFunc(func() bool { return false })

// Target is the slice of the session controller the policy drives.
type Target interface {
	AutoFullscreen() bool
	HasSession() bool
	IsFullscreen() bool
	SetFullscreen(flag bool) error
}

// Policy consumes orientation samples and applies the auto-fullscreen
// rules. Events fire on every qualifying sample, not only on edge
// transitions.
type Policy struct {
	target Target
	lock   RotationLock
	bus    *event.Bus

	startOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewPolicy(target Target, lock RotationLock, bus *event.Bus) *Policy {
	return &Policy{
		target: target,
		lock:   lock,
		bus:    bus,
		done:   make(chan struct{}),
	}
}

// HandleSample applies the policy to one raw sample. Samples are ignored
// outright while auto-fullscreen mode is off, no session exists, or the
// rotation lock is engaged.
func (p *Policy) HandleSample(degrees int) {
	if p.lock.Locked() || !p.target.AutoFullscreen() || !p.target.HasSession() {
		return
	}

	switch Classify(degrees) {
	case IntentPortrait:
		if p.target.IsFullscreen() {
			if err := p.target.SetFullscreen(false); err != nil {
				log.Printf("orientation: exit fullscreen: %v", err)
			}
		}
		p.bus.Post(event.New(event.Portrait))
	case IntentLandscape:
		if !p.target.IsFullscreen() {
			if err := p.target.SetFullscreen(true); err != nil {
				log.Printf("orientation: enter fullscreen: %v", err)
			}
		}
		p.bus.Post(event.New(event.Landscape))
	}
}

// Start consumes samples from the channel until the context is cancelled,
// the channel closes, or Stop is called.
func (p *Policy) Start(ctx context.Context, samples <-chan int) {
	p.startOnce.Do(func() {
		ctx, p.cancel = context.WithCancel(ctx)
		go p.run(ctx, samples)
	})
}

func (p *Policy) Stop() {
	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
}

func (p *Policy) run(ctx context.Context, samples <-chan int) {
	defer close(p.done)
	for {
		select {
		case <-ctx.Done():
			return
		case deg, ok := <-samples:
			if !ok {
				return
			}
			p.HandleSample(deg)
		}
	}
}
