package media

import "testing"

func TestParseStreamType(t *testing.T) {
	tests := []struct {
		input string
		want  StreamType
	}{
		{"hls", StreamHLS},
		{"HLS", StreamHLS},
		{"Hls", StreamHLS},
		{"dash", StreamDASH},
		{"DASH", StreamDASH},
		{"progressive", StreamOther},
		{"", StreamOther},
	}
	for _, tt := range tests {
		if got := ParseStreamType(tt.input); got != tt.want {
			t.Errorf("ParseStreamType(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewConfigDeepCopies(t *testing.T) {
	d := &Descriptor{
		URL:  "http://x/a.m3u8",
		Type: "hls",
		Outputs: []Output{
			{Label: "HD", URL: "u1"},
			{Label: "SD", URL: "u2", Current: true},
		},
		Captions: []Caption{{Language: "en", URL: "c1"}},
	}

	c := NewConfig(d)

	d.Outputs[0].Label = "mutated"
	d.Captions[0].Language = "mutated"

	if c.Outputs[0].Label != "HD" {
		t.Errorf("config aliases descriptor outputs: %q", c.Outputs[0].Label)
	}
	if c.Captions[0].Language != "en" {
		t.Errorf("config aliases descriptor captions: %q", c.Captions[0].Language)
	}
	if c.Type != StreamHLS {
		t.Errorf("Type = %v, want StreamHLS", c.Type)
	}
}

func TestSelectOutput(t *testing.T) {
	c := NewConfig(&Descriptor{
		URL: "u2",
		Outputs: []Output{
			{Label: "HD", URL: "u1"},
			{Label: "SD", URL: "u2", Current: true},
		},
	})

	chosen, ok := c.SelectOutput("HD")
	if !ok {
		t.Fatal("SelectOutput(HD) did not match")
	}
	if chosen.Label != "HD" || chosen.URL != "u1" {
		t.Errorf("chosen = %+v", chosen)
	}
	if c.URL != "u1" {
		t.Errorf("config URL = %q, want u1", c.URL)
	}

	current := 0
	for _, o := range c.Outputs {
		if o.Current {
			current++
			if o.Label != "HD" {
				t.Errorf("current output = %q, want HD", o.Label)
			}
		}
	}
	if current != 1 {
		t.Errorf("%d outputs marked current, want exactly 1", current)
	}
}

func TestSelectOutputUnknownLabelLeavesConfigUntouched(t *testing.T) {
	c := NewConfig(&Descriptor{
		URL:     "u2",
		Outputs: []Output{{Label: "SD", URL: "u2", Current: true}},
	})

	if _, ok := c.SelectOutput("4K"); ok {
		t.Fatal("SelectOutput matched a label that does not exist")
	}
	if c.URL != "u2" || !c.Outputs[0].Current {
		t.Errorf("config mutated on failed selection: %+v", c)
	}
}

func TestSelectCaption(t *testing.T) {
	c := NewConfig(&Descriptor{
		URL: "u",
		Captions: []Caption{
			{Language: "en", URL: "c1", Current: true},
			{Language: "pt", URL: "c2"},
		},
	})

	chosen, ok := c.SelectCaption("pt")
	if !ok {
		t.Fatal("SelectCaption(pt) did not match")
	}
	if chosen.Language != "pt" {
		t.Errorf("chosen = %+v", chosen)
	}

	current := 0
	for _, cap := range c.Captions {
		if cap.Current {
			current++
			if cap.Language != "pt" {
				t.Errorf("current caption = %q, want pt", cap.Language)
			}
		}
	}
	if current != 1 {
		t.Errorf("%d captions marked current, want exactly 1", current)
	}

	// Caption selection never touches the playback URL.
	if c.URL != "u" {
		t.Errorf("URL changed to %q on caption selection", c.URL)
	}
}

func TestCurrentAccessors(t *testing.T) {
	c := NewConfig(&Descriptor{URL: "u"})
	if _, ok := c.CurrentOutput(); ok {
		t.Error("CurrentOutput reported a selection on empty outputs")
	}
	if _, ok := c.CurrentCaption(); ok {
		t.Error("CurrentCaption reported a selection on empty captions")
	}

	c.Outputs = []Output{{Label: "HD", URL: "u1", Current: true}}
	o, ok := c.CurrentOutput()
	if !ok || o.Label != "HD" {
		t.Errorf("CurrentOutput = %+v, %v", o, ok)
	}
}
