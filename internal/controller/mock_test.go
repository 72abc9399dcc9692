package controller

import (
	"sync"

	"playerctl/internal/event"
	"playerctl/internal/renderer"
)

// fakeRenderer records commands and lets tests drive engine callbacks.
type fakeRenderer struct {
	mu       sync.Mutex
	listener renderer.Listener

	playCalls    int
	pauseCalls   int
	stopCalls    int
	releaseCalls int
	showCalls    int
	disableCalls int
	enableCalls  int
	seeks        []int64

	posMs      int64
	durMs      int64
	fullscreen bool
}

func (f *fakeRenderer) Play()  { f.mu.Lock(); f.playCalls++; f.mu.Unlock() }
func (f *fakeRenderer) Pause() { f.mu.Lock(); f.pauseCalls++; f.mu.Unlock() }
func (f *fakeRenderer) Stop()  { f.mu.Lock(); f.stopCalls++; f.mu.Unlock() }

func (f *fakeRenderer) SeekMs(ms int64) {
	f.mu.Lock()
	f.seeks = append(f.seeks, ms)
	f.posMs = ms
	f.mu.Unlock()
}

func (f *fakeRenderer) Release() { f.mu.Lock(); f.releaseCalls++; f.mu.Unlock() }

func (f *fakeRenderer) SetFullscreen(flag bool) {
	f.mu.Lock()
	f.fullscreen = flag
	f.mu.Unlock()
}

func (f *fakeRenderer) IsFullscreen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fullscreen
}

func (f *fakeRenderer) PositionMs() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posMs
}

func (f *fakeRenderer) DurationMs() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.durMs
}

func (f *fakeRenderer) EnableControls()  { f.mu.Lock(); f.enableCalls++; f.mu.Unlock() }
func (f *fakeRenderer) DisableControls() { f.mu.Lock(); f.disableCalls++; f.mu.Unlock() }
func (f *fakeRenderer) Show()            { f.mu.Lock(); f.showCalls++; f.mu.Unlock() }
func (f *fakeRenderer) Hide()            {}

func (f *fakeRenderer) SetListener(l renderer.Listener) {
	f.mu.Lock()
	f.listener = l
	f.mu.Unlock()
}

func (f *fakeRenderer) setPosition(ms int64) {
	f.mu.Lock()
	f.posMs = ms
	f.mu.Unlock()
}

// reportState drives an engine callback the way a renderer-internal thread
// would: from outside the controller lock.
func (f *fakeRenderer) reportState(playWhenReady bool, state renderer.State) {
	f.mu.Lock()
	l := f.listener
	f.mu.Unlock()
	if l != nil {
		l.OnStateChanged(playWhenReady, state)
	}
}

func (f *fakeRenderer) reportError(err error) {
	f.mu.Lock()
	l := f.listener
	f.mu.Unlock()
	if l != nil {
		l.OnError(err)
	}
}

type fakeFactory struct {
	mu      sync.Mutex
	created []*fakeRenderer
	opts    []renderer.Options
	err     error
}

func (f *fakeFactory) New(opts renderer.Options) (renderer.Renderer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	r := &fakeRenderer{durMs: 60000}
	f.created = append(f.created, r)
	f.opts = append(f.opts, opts)
	return r, nil
}

func (f *fakeFactory) last() *fakeRenderer {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.created) == 0 {
		return nil
	}
	return f.created[len(f.created)-1]
}

func (f *fakeFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// eventRecorder captures bus events for assertion.
type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func record(bus *event.Bus) *eventRecorder {
	r := &eventRecorder{}
	bus.Subscribe(func(e event.Event) {
		r.mu.Lock()
		r.events = append(r.events, e)
		r.mu.Unlock()
	})
	return r
}

func (r *eventRecorder) types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *eventRecorder) count(t event.Type) int {
	n := 0
	for _, et := range r.types() {
		if et == t {
			n++
		}
	}
	return n
}

func (r *eventRecorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
