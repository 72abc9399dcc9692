package controller

import (
	"sync"
	"time"
)

// DefaultProgressInterval is how often an armed session reports position.
const DefaultProgressInterval = 250 * time.Millisecond

// progressTimer fires tick on a fixed interval while running. Start and
// Stop are idempotent; Stop never blocks on the tick goroutine, the tick
// callback is instead gated by the controller's armed flag so nothing is
// emitted after the caller has disarmed it.
type progressTimer struct {
	interval time.Duration
	tick     func()

	mu   sync.Mutex
	stop chan struct{}
}

func newProgressTimer(interval time.Duration, tick func()) *progressTimer {
	return &progressTimer{interval: interval, tick: tick}
}

func (t *progressTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	t.stop = make(chan struct{})
	go t.run(t.stop)
}

func (t *progressTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.stop = nil
}

func (t *progressTimer) run(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.tick()
		}
	}
}
