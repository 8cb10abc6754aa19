package model

import (
	"github.com/pkg/errors"
)

// Error kinds surfaced in event payloads and API responses.
const (
	KindEmptyInput  = "EmptyInput"
	KindInvalidURL  = "InvalidUrl"
	KindNoPlaylist  = "NoPlaylistId"
	KindSaveBlocked = "SaveBlocked"
	KindInternal    = "Internal"
)

// Analysis errors. Each is terminal for the analyze step.
var (
	ErrEmptyInput   = errors.New("please enter a YouTube playlist URL")
	ErrInvalidURL   = errors.New("please enter a valid YouTube URL")
	ErrNoPlaylistID = errors.New("could not extract playlist ID from URL")
)

// ErrSaveBlocked is the simulated refusal of a local save. It ends the run.
var ErrSaveBlocked = errors.New("browser blocked download")

// Pipeline control errors.
var (
	ErrNoPlaylist     = errors.New("no playlist loaded")
	ErrAlreadyRunning = errors.New("download already in progress")
	ErrNotRunning     = errors.New("no download in progress")
)

var userMessages = map[string]string{
	KindEmptyInput:  "Please enter a YouTube playlist URL",
	KindInvalidURL:  "Please enter a valid YouTube URL",
	KindNoPlaylist:  "Could not extract playlist ID from URL",
	KindSaveBlocked: "Your browser blocked the download. Allow downloads for this site and try again.",
}

// ErrorKind classifies err. Unknown errors are reported as Internal.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return KindEmptyInput
	case errors.Is(err, ErrInvalidURL):
		return KindInvalidURL
	case errors.Is(err, ErrNoPlaylistID):
		return KindNoPlaylist
	case errors.Is(err, ErrSaveBlocked):
		return KindSaveBlocked
	default:
		return KindInternal
	}
}

// IsValidationError reports whether err is one of the analysis errors.
func IsValidationError(err error) bool {
	switch ErrorKind(err) {
	case KindEmptyInput, KindInvalidURL, KindNoPlaylist:
		return true
	}
	return false
}

// UserMessage returns the message shown to users for err.
func UserMessage(err error) string {
	if msg, ok := userMessages[ErrorKind(err)]; ok {
		return msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
