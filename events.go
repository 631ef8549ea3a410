package kenburns

import (
	"image"
	"time"
)

// ShowEventType identifies a slideshow lifecycle event.
type ShowEventType uint8

const (
	EventImageChanged   ShowEventType = iota // a new image is on screen
	EventPanStarted                          // the camera started moving
	EventPanStopped                          // the camera came to rest
	EventFadeOutStarted                      // the curtain started closing before the cut
	EventPaused                              // StopAnimating froze the show
	EventResumed                             // StartAnimating resumed a paused show
	EventCycleFailed                         // a search ended without a path
)

var eventNames = [...]string{
	EventImageChanged:   "image-changed",
	EventPanStarted:     "pan-started",
	EventPanStopped:     "pan-stopped",
	EventFadeOutStarted: "fade-out-started",
	EventPaused:         "paused",
	EventResumed:        "resumed",
	EventCycleFailed:    "cycle-failed",
}

func (t ShowEventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// ShowEvent carries lifecycle data to an EventSink. Only the fields relevant
// to Type are set.
type ShowEvent struct {
	Type ShowEventType
	// Image is set for EventImageChanged.
	Image image.Image
	// Path, Score and Duration describe the move of the displayed image.
	Path     CameraPath
	Score    float64
	Duration time.Duration
	// Err is set for EventCycleFailed.
	Err error
}

// EventSink is the interface for optional ECS integration. When set on a
// ShowScheduler, lifecycle events are forwarded to it on the tick loop.
type EventSink interface {
	EmitEvent(event ShowEvent)
}
