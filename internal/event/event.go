package event

// Type identifies a session lifecycle event.
type Type int

const (
	Unknown Type = iota
	Load
	Start
	Play
	Pause
	Stop
	Finish
	Progress
	Resize
	Error
	Fullscreen
	FullscreenExit
	Portrait
	Landscape
	Unload
)

// String returns the wire label for the event type.
func (t Type) String() string {
	switch t {
	case Load:
		return "load"
	case Start:
		return "start"
	case Play:
		return "play"
	case Pause:
		return "pause"
	case Stop:
		return "stop"
	case Finish:
		return "finish"
	case Progress:
		return "progress"
	case Resize:
		return "resize"
	case Error:
		return "error"
	case Fullscreen:
		return "fullscreen"
	case FullscreenExit:
		return "fullscreen_exit"
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	case Unload:
		return "unload"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the type as its wire label.
func (t Type) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// ProgressData carries playback position in seconds.
type ProgressData struct {
	CurrentTime float64 `json:"current_time"`
	Duration    float64 `json:"duration"`
}

// ResizeData carries the rendered video dimensions.
type ResizeData struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	RotationDegrees  int     `json:"rotation_degrees"`
	PixelAspectRatio float64 `json:"pixel_aspect_ratio"`
}

// Event is an immutable session notification. Only the payload matching
// the Type is set.
type Event struct {
	Type     Type          `json:"type"`
	Progress *ProgressData `json:"progress,omitempty"`
	Resize   *ResizeData   `json:"resize,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// New builds a payload-free event.
func New(t Type) Event {
	return Event{Type: t}
}

// NewProgress builds a PROGRESS event. Times are seconds.
func NewProgress(currentTime, duration float64) Event {
	return Event{Type: Progress, Progress: &ProgressData{CurrentTime: currentTime, Duration: duration}}
}

// NewResize builds a RESIZE event.
func NewResize(width, height, rotationDegrees int, pixelAspectRatio float64) Event {
	return Event{Type: Resize, Resize: &ResizeData{
		Width:            width,
		Height:           height,
		RotationDegrees:  rotationDegrees,
		PixelAspectRatio: pixelAspectRatio,
	}}
}

// NewError builds an ERROR event carrying the underlying message.
func NewError(msg string) Event {
	return Event{Type: Error, Message: msg}
}
