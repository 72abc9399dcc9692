package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"playerctl/internal/event"
)

const feedBuffer = 32

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth is handled by the bearer-token middleware; the feed carries no
	// commands, so cross-origin reads are harmless.
	CheckOrigin: func(*http.Request) bool { return true },
}

// fanout is the bus handler. Each connected feed gets its own buffered
// channel; a feed that cannot keep up loses events rather than stalling
// the bus.
func (s *Server) fanout(ev event.Event) {
	s.feedMu.Lock()
	defer s.feedMu.Unlock()
	for ch := range s.feeds {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Server) addFeed() chan event.Event {
	ch := make(chan event.Event, feedBuffer)
	s.feedMu.Lock()
	s.feeds[ch] = struct{}{}
	s.feedMu.Unlock()
	return ch
}

func (s *Server) removeFeed(ch chan event.Event) {
	s.feedMu.Lock()
	delete(s.feeds, ch)
	s.feedMu.Unlock()
}

func (s *Server) handleEventsSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.addFeed()
	defer s.removeFeed(ch)

	// Current snapshot first, so a client does not have to wait for the
	// next event to learn the session state.
	if data, err := json.Marshal(s.controller.Status()); err == nil {
		fmt.Fprintf(w, "event: status\ndata: %s\n\n", data)
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (s *Server) handleEventsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: ws upgrade: %v", err)
		return
	}
	defer conn.Close()

	ch := s.addFeed()
	defer s.removeFeed(ch)

	// Drain reads so we notice the client going away. The feed is
	// one-way; inbound frames are discarded.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			return
		case <-ticker.C:
			if err := conn.WriteControl(
				websocket.PingMessage, nil,
				time.Now().Add(5*time.Second),
			); err != nil {
				return
			}
		case ev := <-ch:
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}
