package cast

import (
	"encoding/json"
	"errors"
	"testing"

	"playerctl/internal/store"
)

type fakeMessenger struct {
	connected  bool
	connecting bool
	sent       []string
	ended      bool
	sendErr    error
}

func (f *fakeMessenger) Send(payload []byte) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, string(payload))
	return nil
}

func (f *fakeMessenger) Connected() bool  { return f.connected }
func (f *fakeMessenger) Connecting() bool { return f.connecting }

func (f *fakeMessenger) EndSession(stopReceiver bool) error {
	f.ended = true
	return nil
}

func (f *fakeMessenger) SetMute(bool) error      { return nil }
func (f *fakeMessenger) SetVolume(float64) error { return nil }

func newTestPeer(t *testing.T, m Messenger) (*Peer, *store.Store) {
	t.Helper()
	s, err := store.New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return NewPeer(m, s), s
}

func TestCommandsRequireSession(t *testing.T) {
	m := &fakeMessenger{connected: false}
	p, _ := newTestPeer(t, m)

	if err := p.PlayRemote(); !errors.Is(err, ErrNotCasting) {
		t.Errorf("PlayRemote without session = %v, want ErrNotCasting", err)
	}
	if err := p.SetMute(true); !errors.Is(err, ErrNotCasting) {
		t.Errorf("SetMute without session = %v, want ErrNotCasting", err)
	}

	// Connecting state means no session to work with yet.
	m.connected = true
	m.connecting = true
	if err := p.PauseRemote(); !errors.Is(err, ErrNotCasting) {
		t.Errorf("PauseRemote while connecting = %v, want ErrNotCasting", err)
	}
}

func TestWireEnvelopes(t *testing.T) {
	m := &fakeMessenger{connected: true}
	p, _ := newTestPeer(t, m)

	if err := p.PlayRemote(); err != nil {
		t.Fatal(err)
	}
	if err := p.SeekRemote(93500); err != nil {
		t.Fatal(err)
	}
	if err := p.ChangeSubtitle("pt"); err != nil {
		t.Fatal(err)
	}
	if err := p.ChangeSubtitle(""); err != nil {
		t.Fatal(err)
	}
	if err := p.RegisterForProgress(true); err != nil {
		t.Fatal(err)
	}

	want := []string{
		`{"type":"play"}`,
		`{"type":"seek","data":93}`,
		`{"type":"changeSubtitle","data":{"lang":"pt"}}`,
		`{"type":"changeSubtitle","data":{"lang":"none"}}`,
		`{"type":"registerForProgressUpdate","data":true}`,
	}
	if len(m.sent) != len(want) {
		t.Fatalf("sent %d messages, want %d: %v", len(m.sent), len(want), m.sent)
	}
	for i := range want {
		if m.sent[i] != want[i] {
			t.Errorf("message %d = %s, want %s", i, m.sent[i], want[i])
		}
	}

	// Every envelope must decode back into the shared shape.
	for _, raw := range m.sent {
		var msg map[string]any
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			t.Errorf("unparsable envelope %s: %v", raw, err)
		}
	}
}

func TestStopCastingClearsPersistedState(t *testing.T) {
	m := &fakeMessenger{connected: true}
	p, s := newTestPeer(t, m)

	if err := p.SetCurrentMedia("media-7"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetPlayStatus(true); err != nil {
		t.Fatal(err)
	}

	if err := p.StopCasting(); err != nil {
		t.Fatal(err)
	}
	if !m.ended {
		t.Error("remote session not ended")
	}

	id, _ := s.CastMediaID()
	playing, _ := s.CastPlayStatus()
	if id != "" || playing {
		t.Errorf("cast state survives StopCasting: id=%q playing=%v", id, playing)
	}
}

func TestDisconnectedClearsState(t *testing.T) {
	m := &fakeMessenger{connected: true}
	p, s := newTestPeer(t, m)

	if err := p.SetCurrentMedia("media-7"); err != nil {
		t.Fatal(err)
	}
	p.Disconnected()

	id, _ := s.CastMediaID()
	if id != "" {
		t.Errorf("cast media id survives disconnect: %q", id)
	}
}

func TestPersistedLinkageRoundTrip(t *testing.T) {
	p, _ := newTestPeer(t, &fakeMessenger{connected: true})

	if err := p.SetCurrentMedia("media-9"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetPlayStatus(true); err != nil {
		t.Fatal(err)
	}

	id, err := p.CurrentMediaID()
	if err != nil {
		t.Fatal(err)
	}
	if id != "media-9" {
		t.Errorf("CurrentMediaID = %q, want media-9", id)
	}
	playing, err := p.PlayStatus()
	if err != nil {
		t.Fatal(err)
	}
	if !playing {
		t.Error("PlayStatus = false, want true")
	}
}

func TestUnavailableMessenger(t *testing.T) {
	p, _ := newTestPeer(t, Unavailable{})

	if p.IsCasting() {
		t.Error("Unavailable reports casting")
	}
	if err := p.PlayRemote(); !errors.Is(err, ErrNotCasting) {
		t.Errorf("PlayRemote = %v, want ErrNotCasting", err)
	}
}
