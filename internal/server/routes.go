package server

import (
	"github.com/go-chi/chi/v5"
)

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(limitBody)
		r.Use(jsonContentType)
		r.Use(corsMiddleware(s.corsOrigin))
		r.Use(requireToken(s.store))

		r.Get("/session", s.handleSessionStatus)
		r.Delete("/session", s.handleDestroy)
		r.Post("/session/media", s.handleSetMedia)
		r.Post("/session/play", s.handlePlay)
		r.Post("/session/pause", s.handlePause)
		r.Post("/session/stop", s.handleStop)
		r.Post("/session/seek", s.handleSeek)
		r.Post("/session/fullscreen", s.handleFullscreen)
		r.Post("/session/autofullscreen", s.handleAutoFullscreen)
		r.Post("/session/controls", s.handleControls)
		r.Post("/session/output", s.handleChangeOutput)
		r.Post("/session/caption", s.handleChangeCaption)

		r.Post("/orientation", s.handleOrientationSample)

		r.Get("/events", s.handleEventsSSE)
		r.Get("/events/ws", s.handleEventsWS)

		if s.cast != nil {
			r.Route("/cast", func(cr chi.Router) {
				cr.Get("/", s.handleCastStatus)
				cr.Post("/play", s.handleCastPlay)
				cr.Post("/pause", s.handleCastPause)
				cr.Post("/seek", s.handleCastSeek)
				cr.Post("/subtitle", s.handleCastSubtitle)
				cr.Post("/progress", s.handleCastProgress)
				cr.Post("/stop", s.handleCastStop)
				cr.Post("/mute", s.handleCastMute)
				cr.Post("/volume", s.handleCastVolume)
			})
		}
	})
}
