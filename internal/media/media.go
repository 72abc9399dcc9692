package media

import "strings"

// StreamType is the container/protocol family of a media URL.
type StreamType int

const (
	StreamOther StreamType = iota
	StreamHLS
	StreamDASH
)

func (t StreamType) String() string {
	switch t {
	case StreamHLS:
		return "hls"
	case StreamDASH:
		return "dash"
	default:
		return "other"
	}
}

// ParseStreamType resolves a caller-supplied type string case-insensitively.
// Anything unrecognized is treated as StreamOther.
func ParseStreamType(s string) StreamType {
	switch strings.ToLower(s) {
	case "hls":
		return StreamHLS
	case "dash":
		return StreamDASH
	default:
		return StreamOther
	}
}

// Output is an alternate rendition of the same content, selectable at runtime.
type Output struct {
	Label   string `json:"label"`
	URL     string `json:"url"`
	Current bool   `json:"current"`
}

// Caption is a subtitle track descriptor.
type Caption struct {
	Language string `json:"language"`
	URL      string `json:"url"`
	Current  bool   `json:"current"`
}

// Descriptor is the caller-supplied description of a media item. It is
// copied, never aliased, when a session config is built from it.
type Descriptor struct {
	URL         string    `json:"url"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	IsLive      bool      `json:"is_live"`
	IsAudioOnly bool      `json:"is_audio_only"`
	AdURL       string    `json:"ad_url,omitempty"`
	ThemeColor  string    `json:"theme_color,omitempty"`
	Outputs     []Output  `json:"outputs,omitempty"`
	Captions    []Caption `json:"captions,omitempty"`
}

// Config is the per-session snapshot of the media to play. It is replaced
// wholesale when new media is set; the controller mutates only its URL and
// the Current flags of outputs and captions.
type Config struct {
	URL         string     `json:"url"`
	Type        StreamType `json:"-"`
	Title       string     `json:"title"`
	IsLive      bool       `json:"is_live"`
	IsAudioOnly bool       `json:"is_audio_only"`
	AdURL       string     `json:"ad_url,omitempty"`
	ThemeColor  string     `json:"theme_color,omitempty"`
	Outputs     []Output   `json:"outputs,omitempty"`
	Captions    []Caption  `json:"captions,omitempty"`
}

// NewConfig deep-copies the descriptor into a fresh session config.
func NewConfig(d *Descriptor) *Config {
	c := &Config{
		URL:         d.URL,
		Type:        ParseStreamType(d.Type),
		Title:       d.Title,
		IsLive:      d.IsLive,
		IsAudioOnly: d.IsAudioOnly,
		AdURL:       d.AdURL,
		ThemeColor:  d.ThemeColor,
	}
	if len(d.Outputs) > 0 {
		c.Outputs = make([]Output, len(d.Outputs))
		copy(c.Outputs, d.Outputs)
	}
	if len(d.Captions) > 0 {
		c.Captions = make([]Caption, len(d.Captions))
		copy(c.Captions, d.Captions)
	}
	return c
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	out := *c
	if len(c.Outputs) > 0 {
		out.Outputs = make([]Output, len(c.Outputs))
		copy(out.Outputs, c.Outputs)
	}
	if len(c.Captions) > 0 {
		out.Captions = make([]Caption, len(c.Captions))
		copy(out.Captions, c.Captions)
	}
	return &out
}

// SelectOutput marks the output with the given label as current, clears all
// others, and rewrites the config URL to the chosen rendition. Returns the
// chosen output, or false if no label matched (in which case the config is
// unchanged).
func (c *Config) SelectOutput(label string) (Output, bool) {
	idx := -1
	for i := range c.Outputs {
		if c.Outputs[i].Label == label {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Output{}, false
	}
	for i := range c.Outputs {
		c.Outputs[i].Current = i == idx
	}
	c.URL = c.Outputs[idx].URL
	return c.Outputs[idx], true
}

// SelectCaption marks the caption with the given language as current and
// clears all others. Pure metadata update. Returns false if no language
// matched, leaving the config unchanged.
func (c *Config) SelectCaption(language string) (Caption, bool) {
	idx := -1
	for i := range c.Captions {
		if c.Captions[i].Language == language {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Caption{}, false
	}
	for i := range c.Captions {
		c.Captions[i].Current = i == idx
	}
	return c.Captions[idx], true
}

// CurrentOutput returns the output currently marked current, if any.
func (c *Config) CurrentOutput() (Output, bool) {
	for _, o := range c.Outputs {
		if o.Current {
			return o, true
		}
	}
	return Output{}, false
}

// CurrentCaption returns the caption currently marked current, if any.
func (c *Config) CurrentCaption() (Caption, bool) {
	for _, cap := range c.Captions {
		if cap.Current {
			return cap, true
		}
	}
	return Caption{}, false
}
