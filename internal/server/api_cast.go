package server

import (
	"errors"
	"net/http"
	"time"

	"playerctl/internal/cast"
)

func (s *Server) handleCastStatus(w http.ResponseWriter, r *http.Request) {
	mediaID, err := s.cast.CurrentMediaID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reading cast state failed")
		return
	}
	playing, err := s.cast.PlayStatus()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reading cast state failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"casting":     s.cast.IsCasting(),
		"media_id":    mediaID,
		"play_status": playing,
	})
}

func (s *Server) handleCastPlay(w http.ResponseWriter, r *http.Request) {
	writeCastResult(w, s.cast.PlayRemote())
}

func (s *Server) handleCastPause(w http.ResponseWriter, r *http.Request) {
	writeCastResult(w, s.cast.PauseRemote())
}

func (s *Server) handleCastSeek(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Position float64 `json:"position"` // seconds
	}
	if !decodeBody(w, r, &body) {
		return
	}
	ms := int64(body.Position * float64(time.Second/time.Millisecond))
	writeCastResult(w, s.cast.SeekRemote(ms))
}

func (s *Server) handleCastSubtitle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Language string `json:"language"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	writeCastResult(w, s.cast.ChangeSubtitle(body.Language))
}

func (s *Server) handleCastProgress(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Register bool `json:"register"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	writeCastResult(w, s.cast.RegisterForProgress(body.Register))
}

func (s *Server) handleCastStop(w http.ResponseWriter, r *http.Request) {
	writeCastResult(w, s.cast.StopCasting())
}

func (s *Server) handleCastMute(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Muted bool `json:"muted"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	writeCastResult(w, s.cast.SetMute(body.Muted))
}

func (s *Server) handleCastVolume(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Level float64 `json:"level"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	writeCastResult(w, s.cast.SetVolume(body.Level))
}

func writeCastResult(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, cast.ErrNotCasting):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
