package ui

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/ytget/playlist-demo/internal/model"
)

func TestLocalization_SetLanguage(t *testing.T) {
	tests := []struct {
		name string
		lang string
		want string
	}{
		{name: "russian", lang: "ru", want: "ru"},
		{name: "portuguese", lang: "pt", want: "pt"},
		{name: "system falls back to english", lang: "system", want: "en"},
		{name: "unknown keeps current", lang: "de", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLocalization()
			l.SetLanguage(tt.lang)
			if got := l.GetCurrentLanguage(); got != tt.want {
				t.Errorf("GetCurrentLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocalization_AllLanguagesHaveEveryKey(t *testing.T) {
	l := NewLocalization()
	for key := range l.texts["en"] {
		for lang := range l.GetAvailableLanguages() {
			if _, ok := l.texts[lang][key]; !ok {
				t.Errorf("language %q is missing key %q", lang, key)
			}
		}
	}
}

func TestLocalization_GetTextFallback(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("ru")
	delete(l.texts["ru"], KeyAnalyze)

	if got := l.GetText(KeyAnalyze); got != "Analyze" {
		t.Errorf("GetText() = %q, want english fallback", got)
	}
	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("GetText() = %q, want key itself", got)
	}
}

func TestLocalization_Format(t *testing.T) {
	l := NewLocalization()

	if got := l.Format(KeyDownloadingOf, 3, 8); got != "Downloading video 3 of 8" {
		t.Errorf("Format() = %q", got)
	}
	if got := l.Format(KeyVideosFound, 12); got != "12 videos found" {
		t.Errorf("Format() = %q", got)
	}
	if got := l.Format(KeyDownloadingTitle, "Go Basics"); got != "Downloading: Go Basics" {
		t.Errorf("Format() = %q", got)
	}
}

func TestLocalization_ErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "empty input", err: model.ErrEmptyInput, want: "Please enter a YouTube playlist URL"},
		{name: "invalid url", err: model.ErrInvalidURL, want: "Please enter a valid YouTube URL"},
		{name: "wrapped no playlist id", err: errors.Wrap(model.ErrNoPlaylistID, "analyze"), want: "Could not extract playlist ID from URL"},
		{name: "unknown error", err: errors.New("disk on fire"), want: "disk on fire"},
	}

	l := NewLocalization()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.ErrorText(tt.err); got != tt.want {
				t.Errorf("ErrorText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocalization_StatusText(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("pt")

	if got := l.StatusText(model.VideoStatusCompleted); got != "Concluído" {
		t.Errorf("StatusText() = %q", got)
	}
	if got := l.StatusText(model.VideoStatus("paused")); got != "paused" {
		t.Errorf("StatusText() = %q, want raw status", got)
	}
}
