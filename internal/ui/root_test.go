package ui

import (
	"context"
	"sync"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/pkg/errors"

	"github.com/ytget/playlist-demo/internal/config"
	"github.com/ytget/playlist-demo/internal/model"
)

type fakeController struct {
	mu          sync.Mutex
	playlist    *model.Playlist
	downloading bool
	cancelErr   error
	starts      int
	cancels     int
	resets      int
	events      chan model.Event
}

func newFakeController() *fakeController {
	return &fakeController{events: make(chan model.Event)}
}

func (f *fakeController) Analyze(_ context.Context, url string) (*model.Playlist, error) {
	return nil, model.ErrInvalidURL
}

func (f *fakeController) StartDownload() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.playlist == nil {
		return model.ErrNoPlaylist
	}
	f.downloading = true
	return nil
}

func (f *fakeController) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
	return f.cancelErr
}

func (f *fakeController) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	f.playlist = nil
}

func (f *fakeController) Playlist() *model.Playlist {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playlist
}

func (f *fakeController) State() model.RunState {
	if f.IsDownloading() {
		return model.RunStateRunning
	}
	return model.RunStateNotStarted
}

func (f *fakeController) IsDownloading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.downloading
}

func (f *fakeController) Subscribe() (<-chan model.Event, func()) {
	var once sync.Once
	return f.events, func() { once.Do(func() { close(f.events) }) }
}

func newTestRootUI(t *testing.T) (*RootUI, *fakeController, fyne.Window) {
	t.Helper()
	app := test.NewApp()
	window := test.NewWindow(nil)
	t.Cleanup(window.Close)

	controller := newFakeController()
	ui := NewRootUI(window, config.NewSettings(app), controller)
	t.Cleanup(ui.Close)
	return ui, controller, window
}

func analyzedEvent(playlist *model.Playlist) model.Event {
	e := model.NewEvent(model.EventAnalyzed, playlist.ID)
	e.Playlist = playlist
	return e
}

func TestRootUI_InitialState(t *testing.T) {
	ui, _, window := newTestRootUI(t)

	if window.Title() != "Playlist Downloader Demo" {
		t.Errorf("title = %q", window.Title())
	}
	if ui.results.Visible() {
		t.Error("results should be hidden before analysis")
	}
	if !ui.downloadBtn.Disabled() || !ui.cancelBtn.Disabled() {
		t.Error("download and cancel should be disabled without a playlist")
	}
	if ui.errorLabel.Visible() {
		t.Error("error label should start hidden")
	}
}

func TestRootUI_AnalyzedShowsResults(t *testing.T) {
	ui, controller, _ := newTestRootUI(t)
	playlist := testPlaylist("One", "Two", "Three")
	controller.playlist = playlist

	ui.showError("stale")
	ui.handleEvent(analyzedEvent(playlist.Clone()))

	if !ui.results.Visible() {
		t.Fatal("results should be visible after analysis")
	}
	if ui.errorLabel.Visible() {
		t.Error("analysis should clear the error label")
	}
	if ui.videoList.VisibleCount() != 3 {
		t.Errorf("rows = %d, want 3", ui.videoList.VisibleCount())
	}
	if ui.downloadBtn.Disabled() {
		t.Error("download should be enabled once a playlist is loaded")
	}
	if ui.progressPanel.Visible() {
		t.Error("progress should stay hidden until a run starts")
	}
}

func TestRootUI_ValidationErrorShowsMessage(t *testing.T) {
	ui, _, _ := newTestRootUI(t)

	ui.handleEvent(model.ErrorEvent(model.EventValidationError, "", model.ErrNoPlaylistID))

	if !ui.errorLabel.Visible() {
		t.Fatal("error label should be visible")
	}
	if ui.errorLabel.Text != "Could not extract playlist ID from URL" {
		t.Errorf("error = %q", ui.errorLabel.Text)
	}
	if ui.errorTimer == nil {
		t.Error("error should be scheduled to hide")
	}

	ui.hideError()
	if ui.errorLabel.Visible() || ui.errorTimer != nil {
		t.Error("hideError should hide the label and stop the timer")
	}
}

func TestRootUI_RunEvents(t *testing.T) {
	ui, controller, _ := newTestRootUI(t)
	playlist := testPlaylist("One", "Two")
	controller.playlist = playlist
	ui.handleEvent(analyzedEvent(playlist.Clone()))

	test.Tap(ui.downloadBtn)
	if controller.starts != 1 {
		t.Fatalf("starts = %d, want 1", controller.starts)
	}
	if !ui.downloadBtn.Disabled() || ui.cancelBtn.Disabled() {
		t.Error("a running download should only allow cancel")
	}

	ui.handleEvent(model.ProgressEvent(playlist.ID, 0, 2))
	if !ui.progressPanel.Visible() {
		t.Fatal("progress should show when the run starts")
	}

	video := playlist.Videos[0]
	video.Status = model.VideoStatusDownloading
	ui.handleEvent(model.VideoStatusEvent(playlist.ID, 0, video))
	ui.handleEvent(model.ProgressEvent(playlist.ID, 1, 2))
	if ui.progressPanel.currentLabel.Text != "Downloading: One" {
		t.Errorf("current = %q", ui.progressPanel.currentLabel.Text)
	}
	if ui.progressPanel.countLabel.Text != "Downloading video 1 of 2" {
		t.Errorf("count = %q", ui.progressPanel.countLabel.Text)
	}

	video.Status = model.VideoStatusCompleted
	video.OutputPath = "/tmp/One.txt"
	ui.handleEvent(model.VideoStatusEvent(playlist.ID, 0, video))
	if ui.lastSavedPath != "/tmp/One.txt" {
		t.Errorf("lastSavedPath = %q", ui.lastSavedPath)
	}

	test.Tap(ui.cancelBtn)
	if controller.cancels != 1 {
		t.Errorf("cancels = %d, want 1", controller.cancels)
	}

	controller.downloading = false
	ui.handleEvent(model.NewEvent(model.EventCancelled, playlist.ID))
	if ui.progressPanel.Visible() {
		t.Error("cancel should hide progress")
	}
	if ui.downloadBtn.Disabled() {
		t.Error("download should be enabled again after cancel")
	}
}

func TestRootUI_BlockedCloseHidesProgress(t *testing.T) {
	ui, controller, _ := newTestRootUI(t)
	var toasts []string
	ui.toast = func(message string) {
		toasts = append(toasts, message)
	}

	playlist := testPlaylist("One")
	controller.playlist = playlist
	ui.handleEvent(analyzedEvent(playlist.Clone()))
	ui.handleEvent(model.ProgressEvent(playlist.ID, 0, 1))
	toasts = nil

	ui.handleEvent(model.NewEvent(model.EventBlocked, playlist.ID))
	ui.onBlockedClosed()

	if controller.cancels != 0 {
		t.Errorf("cancels = %d, want 0", controller.cancels)
	}
	if ui.progressPanel.Visible() {
		t.Error("closing the blocked dialog should hide progress")
	}
	if len(toasts) != 0 {
		t.Errorf("expected no toast after a blocked run, got %q", toasts)
	}
}

func TestRootUI_ResetClearsEverything(t *testing.T) {
	ui, controller, _ := newTestRootUI(t)
	playlist := testPlaylist("One", "Two")
	controller.playlist = playlist
	ui.handleEvent(analyzedEvent(playlist.Clone()))
	ui.urlEntry.SetText("https://www.youtube.com/playlist?list=PL123")

	controller.Reset()
	ui.handleEvent(model.NewEvent(model.EventReset, ""))

	if ui.results.Visible() {
		t.Error("results should be hidden after reset")
	}
	if ui.urlEntry.Text != "" {
		t.Errorf("url entry = %q, want empty", ui.urlEntry.Text)
	}
	if ui.videoList.VisibleCount() != 0 {
		t.Error("video list should be empty after reset")
	}
	if !ui.downloadBtn.Disabled() {
		t.Error("download should be disabled without a playlist")
	}
}

func TestRootUI_SetAnalyzing(t *testing.T) {
	ui, _, _ := newTestRootUI(t)

	ui.setAnalyzing(true)
	if ui.analyzeBtn.Text != "Analyzing..." || !ui.analyzeBtn.Disabled() {
		t.Errorf("button = %q disabled=%v", ui.analyzeBtn.Text, ui.analyzeBtn.Disabled())
	}

	ui.setAnalyzing(false)
	if ui.analyzeBtn.Text != "Analyze" || ui.analyzeBtn.Disabled() {
		t.Errorf("button = %q disabled=%v", ui.analyzeBtn.Text, ui.analyzeBtn.Disabled())
	}
}

func TestRootUI_LanguageChange(t *testing.T) {
	ui, _, window := newTestRootUI(t)

	ui.onLanguageChange("ru")

	if window.Title() != "Демо загрузчика плейлистов" {
		t.Errorf("title = %q", window.Title())
	}
	if ui.downloadBtn.Text != "Скачать все" {
		t.Errorf("download button = %q", ui.downloadBtn.Text)
	}
	if ui.settings.GetLanguage() != "ru" {
		t.Errorf("stored language = %q", ui.settings.GetLanguage())
	}
}

func TestRootUI_RevealFile(t *testing.T) {
	ui, _, _ := newTestRootUI(t)

	var revealed string
	ui.revealFile = func(p string) error {
		revealed = p
		return nil
	}
	ui.onRevealFile("/tmp/One.txt")

	if revealed != "/tmp/One.txt" {
		t.Errorf("revealed = %q", revealed)
	}
}

func TestRootUI_ViewFileError(t *testing.T) {
	ui, _, _ := newTestRootUI(t)

	calls := 0
	ui.viewFile = func(string) error {
		calls++
		return errors.New("no default application")
	}
	ui.onViewFile("/tmp/One.txt")

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
