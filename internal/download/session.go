package download

import (
	"context"
	"sync"
	"time"

	"github.com/ytget/playlist-demo/internal/logger"
	"github.com/ytget/playlist-demo/internal/model"
	"github.com/ytget/playlist-demo/internal/platform"
)

// Session holds the single current playlist and pipeline for one user. It
// replaces process-wide state: every presentation layer owns its sessions.
type Session struct {
	ID string

	parser   *platform.PlaylistParserService
	pipeline *Service
	bus      *Bus

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	lastActive time.Time
}

// NewSession creates a session that saves through saver.
func NewSession(id string, saver platform.Saver, opts Options) *Session {
	opts = opts.withDefaults()

	parser := platform.NewPlaylistParserService(opts.Rand)
	parser.SetDelay(opts.AnalyzeDelay)
	parser.SetSleeper(opts.Sleep)

	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		ID:         id,
		parser:     parser,
		pipeline:   NewService(id, saver, bus, opts),
		bus:        bus,
		ctx:        ctx,
		cancel:     cancel,
		lastActive: time.Now(),
	}
}

// Analyze validates url and, after the simulated lookup, replaces the current
// playlist with a freshly synthesized one. Validation failures publish a
// validationError event and leave the current playlist untouched.
func (s *Session) Analyze(ctx context.Context, url string) (*model.Playlist, error) {
	s.touch()
	start := time.Now()

	playlist, err := s.parser.ParsePlaylist(ctx, url)
	if err != nil {
		logger.LogAnalyze(ctx, s.ID, "", 0, time.Since(start), err)
		if model.IsValidationError(err) {
			s.bus.Publish(model.ErrorEvent(model.EventValidationError, "", err))
		}
		return nil, err
	}

	snapshot := s.pipeline.SetPlaylist(playlist)
	logger.LogAnalyze(ctx, s.ID, snapshot.ID, snapshot.VideoCount, time.Since(start), nil)

	e := model.NewEvent(model.EventAnalyzed, snapshot.ID)
	e.Playlist = snapshot
	s.bus.Publish(e)

	return snapshot, nil
}

// StartDownload starts the pipeline. The run lives as long as the session,
// not the caller's request.
func (s *Session) StartDownload() error {
	s.touch()
	return s.pipeline.Start(s.ctx)
}

// Cancel stops a running download.
func (s *Session) Cancel() error {
	s.touch()
	return s.pipeline.Cancel()
}

// Reset discards the playlist and any run.
func (s *Session) Reset() {
	s.touch()
	s.pipeline.SetPlaylist(nil)
	s.bus.Publish(model.NewEvent(model.EventReset, ""))
}

// Playlist returns a snapshot of the current playlist, or nil.
func (s *Session) Playlist() *model.Playlist {
	return s.pipeline.Snapshot()
}

// State returns the pipeline state.
func (s *Session) State() model.RunState {
	return s.pipeline.State()
}

// IsDownloading reports whether a run is in progress.
func (s *Session) IsDownloading() bool {
	return s.pipeline.IsRunning()
}

// Wait blocks until the current run finishes.
func (s *Session) Wait() {
	s.pipeline.Wait()
}

// Subscribe registers for this session's events.
func (s *Session) Subscribe() (<-chan model.Event, func()) {
	return s.bus.Subscribe()
}

// Bus exposes the session's event bus for sinks.
func (s *Session) Bus() *Bus {
	return s.bus
}

// LastActive returns the time of the last control call.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Close stops any run and closes every subscription.
func (s *Session) Close() {
	s.pipeline.SetPlaylist(nil)
	s.cancel()
	s.pipeline.Wait()
	s.bus.Close()
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}
