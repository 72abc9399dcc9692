package event

import (
	"testing"
)

func TestPostDeliversInOrder(t *testing.T) {
	b := NewBus()
	var got []Type
	b.Subscribe(func(e Event) { got = append(got, e.Type) })

	b.Post(New(Load))
	b.Post(New(Start))
	b.Post(New(Play))

	want := []Type{Load, Start, Play}
	if len(got) != len(want) {
		t.Fatalf("delivered %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSubscribersInvokedInSubscriptionOrder(t *testing.T) {
	b := NewBus()
	var order []string
	b.Subscribe(func(Event) { order = append(order, "first") })
	b.Subscribe(func(Event) { order = append(order, "second") })

	b.Post(New(Play))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("delivery order = %v", order)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()
	count := 0
	sub := b.Subscribe(func(Event) { count++ })

	b.Post(New(Play))
	b.Unsubscribe(sub)
	b.Post(New(Pause))

	if count != 1 {
		t.Errorf("handler invoked %d times, want 1", count)
	}

	// Double unsubscribe is a no-op.
	b.Unsubscribe(sub)
	b.Unsubscribe(nil)
}

func TestReentrantUnsubscribeDuringPost(t *testing.T) {
	b := NewBus()
	count := 0
	var sub *Subscription
	sub = b.Subscribe(func(Event) {
		count++
		b.Unsubscribe(sub)
	})

	b.Post(New(Play))
	b.Post(New(Pause))

	if count != 1 {
		t.Errorf("handler invoked %d times, want 1", count)
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Load, "load"},
		{Finish, "finish"},
		{FullscreenExit, "fullscreen_exit"},
		{Unload, "unload"},
		{Type(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestTypeMarshalJSON(t *testing.T) {
	data, err := Play.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"play"` {
		t.Errorf("MarshalJSON = %s, want %q", data, `"play"`)
	}
}
