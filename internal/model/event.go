package model

import (
	"math"
	"time"
)

// EventType names a notification emitted by the core for presentation layers.
type EventType string

const (
	EventProgress        EventType = "progress"
	EventCompleted       EventType = "completed"
	EventBlocked         EventType = "blocked"
	EventCancelled       EventType = "cancelled"
	EventValidationError EventType = "validationError"

	// EventAnalyzed carries a freshly synthesized playlist
	EventAnalyzed EventType = "analyzed"
	// EventVideoStatus reports a single video's status transition
	EventVideoStatus EventType = "status"
	// EventReset reports that the current playlist was discarded
	EventReset EventType = "reset"
)

// Progress is the payload of a progress event.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// NewProgress builds a progress payload with a rounded percentage.
func NewProgress(current, total int) Progress {
	p := Progress{Current: current, Total: total}
	if total > 0 {
		p.Percent = int(math.Round(float64(current) / float64(total) * 100))
	}
	return p
}

// VideoUpdate is the payload of a status event.
type VideoUpdate struct {
	Index  int         `json:"index"`
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Status VideoStatus `json:"status"`
	Path   string      `json:"path,omitempty"`
}

// ErrorPayload describes a validation or save failure.
type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Event is one notification on the core's event stream.
type Event struct {
	Type       EventType     `json:"event"`
	PlaylistID string        `json:"playlist_id,omitempty"`
	Progress   *Progress     `json:"progress,omitempty"`
	Video      *VideoUpdate  `json:"video,omitempty"`
	Error      *ErrorPayload `json:"error,omitempty"`
	Playlist   *Playlist     `json:"playlist,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// NewEvent creates an event of the given type stamped with the current time.
func NewEvent(eventType EventType, playlistID string) Event {
	return Event{
		Type:       eventType,
		PlaylistID: playlistID,
		Timestamp:  time.Now(),
	}
}

// ProgressEvent reports that video current of total has started.
func ProgressEvent(playlistID string, current, total int) Event {
	e := NewEvent(EventProgress, playlistID)
	p := NewProgress(current, total)
	e.Progress = &p
	return e
}

// VideoStatusEvent reports the status of the video at index.
func VideoStatusEvent(playlistID string, index int, video *Video) Event {
	e := NewEvent(EventVideoStatus, playlistID)
	e.Video = &VideoUpdate{
		Index:  index,
		ID:     video.ID,
		Title:  video.Title,
		Status: video.Status,
		Path:   video.OutputPath,
	}
	return e
}

// ErrorEvent wraps err into an event of the given type with its kind and
// user-facing message.
func ErrorEvent(eventType EventType, playlistID string, err error) Event {
	e := NewEvent(eventType, playlistID)
	e.Error = &ErrorPayload{
		Kind:    ErrorKind(err),
		Message: UserMessage(err),
	}
	return e
}

// IsTerminal reports whether the event ends a pipeline run.
func (e Event) IsTerminal() bool {
	return e.Type == EventCompleted || e.Type == EventBlocked || e.Type == EventCancelled
}
