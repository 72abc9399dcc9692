// Package server exposes the session controller over an HTTP control API,
// with SSE and websocket feeds of the event bus.
package server

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"playerctl/internal/cast"
	"playerctl/internal/controller"
	"playerctl/internal/event"
	"playerctl/internal/store"
)

// Orientation sensors fire far faster than the policy needs; excess
// samples are shed at the edge.
const (
	orientationRate  = 50
	orientationBurst = 100
)

type Server struct {
	router     chi.Router
	controller *controller.Controller
	bus        *event.Bus
	store      *store.Store
	cast       *cast.Peer
	corsOrigin string

	orientationSamples chan<- int
	orientationLimiter *rate.Limiter

	feedMu sync.Mutex
	feeds  map[chan event.Event]struct{}
	busSub *event.Subscription
}

type Option func(*Server)

func WithCORSOrigin(origin string) Option {
	return func(s *Server) { s.corsOrigin = origin }
}

func WithCastPeer(p *cast.Peer) Option {
	return func(s *Server) { s.cast = p }
}

// WithOrientationSamples routes POSTed orientation samples into the given
// channel, typically consumed by an orientation.Policy.
func WithOrientationSamples(ch chan<- int) Option {
	return func(s *Server) { s.orientationSamples = ch }
}

func New(ctrl *controller.Controller, bus *event.Bus, st *store.Store, opts ...Option) *Server {
	srv := &Server{
		router:             chi.NewRouter(),
		controller:         ctrl,
		bus:                bus,
		store:              st,
		orientationLimiter: rate.NewLimiter(orientationRate, orientationBurst),
		feeds:              make(map[chan event.Event]struct{}),
	}
	for _, o := range opts {
		o(srv)
	}
	srv.router.Use(middleware.Logger)
	srv.router.Use(middleware.Recoverer)
	srv.busSub = bus.Subscribe(srv.fanout)
	srv.routes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close detaches the server from the event bus.
func (s *Server) Close() {
	s.bus.Unsubscribe(s.busSub)
}
