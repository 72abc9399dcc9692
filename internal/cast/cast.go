// Package cast mirrors session commands to a remote cast peer. The cast
// transport itself is an external collaborator behind the Messenger
// interface; this package owns the message envelopes and the persisted
// linkage state that lets a restarted process rejoin a remote session.
package cast

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"playerctl/internal/store"
)

// ErrNotCasting reports a remote command with no usable cast session.
var ErrNotCasting = errors.New("no remote cast session")

// Messenger is the remote-session transport.
type Messenger interface {
	Send(payload []byte) error
	Connected() bool
	Connecting() bool
	EndSession(stopReceiver bool) error
	SetMute(muted bool) error
	SetVolume(level float64) error
}

// message is the wire envelope understood by the remote receiver.
type message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type Peer struct {
	messenger Messenger
	store     *store.Store
}

func NewPeer(m Messenger, s *store.Store) *Peer {
	return &Peer{messenger: m, store: s}
}

// IsCasting reports whether the remote peer is connected or connecting.
func (p *Peer) IsCasting() bool {
	return p.messenger.Connected() || p.messenger.Connecting()
}

// hasMediaSession reports whether commands can be sent right now. A peer
// still connecting has no session to work with.
func (p *Peer) hasMediaSession() bool {
	return p.messenger.Connected() && !p.messenger.Connecting()
}

func (p *Peer) send(msg message) error {
	if !p.hasMediaSession() {
		return ErrNotCasting
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding cast message: %w", err)
	}
	if err := p.messenger.Send(payload); err != nil {
		return fmt.Errorf("sending cast message %q: %w", msg.Type, err)
	}
	return nil
}

// PlayRemote resumes the remote player.
func (p *Peer) PlayRemote() error {
	return p.send(message{Type: "play"})
}

// PauseRemote pauses the remote player.
func (p *Peer) PauseRemote() error {
	return p.send(message{Type: "pause"})
}

// SeekRemote moves the remote player. The receiver takes whole seconds.
func (p *Peer) SeekRemote(positionMs int64) error {
	return p.send(message{Type: "seek", Data: positionMs / 1000})
}

// ChangeSubtitle switches the remote subtitle track. An empty language
// disables subtitles on the receiver.
func (p *Peer) ChangeSubtitle(language string) error {
	if language == "" {
		language = "none"
	}
	return p.send(message{Type: "changeSubtitle", Data: map[string]string{"lang": language}})
}

// RegisterForProgress toggles remote progress notifications.
func (p *Peer) RegisterForProgress(register bool) error {
	return p.send(message{Type: "registerForProgressUpdate", Data: register})
}

// StopCasting ends the remote session and clears the persisted linkage.
func (p *Peer) StopCasting() error {
	if err := p.messenger.EndSession(true); err != nil {
		return fmt.Errorf("ending cast session: %w", err)
	}
	return p.store.ClearCastState()
}

// Disconnected clears the persisted linkage after the remote side dropped.
func (p *Peer) Disconnected() {
	if err := p.store.ClearCastState(); err != nil {
		log.Printf("cast: clearing state after disconnect: %v", err)
	}
}

// SetCurrentMedia persists the id of the media now casting.
func (p *Peer) SetCurrentMedia(id string) error {
	return p.store.SetCastMediaID(id)
}

// CurrentMediaID returns the persisted casting media id, empty when none.
func (p *Peer) CurrentMediaID() (string, error) {
	return p.store.CastMediaID()
}

// SetPlayStatus persists the last remote play/pause state.
func (p *Peer) SetPlayStatus(playing bool) error {
	return p.store.SetCastPlayStatus(playing)
}

// PlayStatus returns the persisted remote play/pause state.
func (p *Peer) PlayStatus() (bool, error) {
	return p.store.CastPlayStatus()
}

func (p *Peer) SetMute(muted bool) error {
	if !p.hasMediaSession() {
		return ErrNotCasting
	}
	return p.messenger.SetMute(muted)
}

func (p *Peer) SetVolume(level float64) error {
	if !p.hasMediaSession() {
		return ErrNotCasting
	}
	return p.messenger.SetVolume(level)
}

// Unavailable is a Messenger with no transport attached. Every command
// reports ErrNotCasting through the peer's session check.
type Unavailable struct{}

func (Unavailable) Send([]byte) error          { return ErrNotCasting }
func (Unavailable) Connected() bool            { return false }
func (Unavailable) Connecting() bool           { return false }
func (Unavailable) EndSession(bool) error      { return nil }
func (Unavailable) SetMute(bool) error         { return ErrNotCasting }
func (Unavailable) SetVolume(float64) error    { return ErrNotCasting }
