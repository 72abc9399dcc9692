package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"playerctl/internal/controller"
	"playerctl/internal/media"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusResponse folds the controller snapshot together with the persisted
// cast linkage, so one request tells a client everything about playback.
type statusResponse struct {
	controller.Status
	Casting        bool   `json:"casting"`
	CastMediaID    string `json:"cast_media_id,omitempty"`
	CastPlayStatus bool   `json:"cast_play_status"`
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{Status: s.controller.Status()}

	if s.cast != nil {
		resp.Casting = s.cast.IsCasting()

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		g, _ := errgroup.WithContext(ctx)
		g.Go(func() error {
			id, err := s.cast.CurrentMediaID()
			if err != nil {
				return err
			}
			resp.CastMediaID = id
			return nil
		})
		g.Go(func() error {
			playing, err := s.cast.PlayStatus()
			if err != nil {
				return err
			}
			resp.CastPlayStatus = playing
			return nil
		})
		if err := g.Wait(); err != nil {
			writeError(w, http.StatusInternalServerError, "reading cast state failed")
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDestroy(w http.ResponseWriter, r *http.Request) {
	s.controller.Destroy()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetMedia(w http.ResponseWriter, r *http.Request) {
	var d media.Descriptor
	if !decodeBody(w, r, &d) {
		return
	}
	if err := s.controller.SetMedia(&d); err != nil {
		writeControllerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.Play(); err != nil {
		writeControllerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.controller.Pause()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.Stop(); err != nil {
		writeControllerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Position float64 `json:"position"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.controller.Seek(body.Position); err != nil {
		writeControllerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFullscreen(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.controller.SetFullscreen(body.Enabled); err != nil {
		writeControllerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAutoFullscreen(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	s.controller.SetAutoFullscreenMode(body.Enabled)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	s.controller.SetEnableControls(body.Enabled)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChangeOutput(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Label string `json:"label"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.controller.ChangeOutput(body.Label); err != nil {
		writeControllerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChangeCaption(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Language string `json:"language"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.controller.ChangeCaption(body.Language); err != nil {
		writeControllerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleOrientationSample accepts a raw sensor reading in degrees and
// forwards it to the orientation policy. Samples beyond the rate limit,
// or arriving faster than the policy consumes them, are dropped; the
// endpoint never blocks on the policy.
func (s *Server) handleOrientationSample(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Degrees int `json:"degrees"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if s.orientationSamples == nil {
		writeError(w, http.StatusServiceUnavailable, "orientation policy not running")
		return
	}
	if s.orientationLimiter.Allow() {
		select {
		case s.orientationSamples <- body.Degrees:
		default:
		}
	}
	w.WriteHeader(http.StatusAccepted)
}

func writeControllerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, controller.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, controller.ErrNoSession):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, controller.ErrSessionExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
