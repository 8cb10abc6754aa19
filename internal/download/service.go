package download

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/ytget/playlist-demo/internal/logger"
	"github.com/ytget/playlist-demo/internal/model"
	"github.com/ytget/playlist-demo/internal/platform"
)

// Transfer delay bounds
const (
	DefaultMinDelay = 2 * time.Second
	DefaultMaxDelay = 5 * time.Second
)

// Options tune the simulated timings and the random source.
type Options struct {
	AnalyzeDelay time.Duration
	MinDelay     time.Duration
	MaxDelay     time.Duration
	Sleep        platform.Sleeper
	Rand         platform.Random
}

// DefaultOptions returns the stock timings with a crypto-seeded source.
func DefaultOptions() Options {
	return Options{
		AnalyzeDelay: platform.DefaultAnalyzeDelay,
		MinDelay:     DefaultMinDelay,
		MaxDelay:     DefaultMaxDelay,
		Sleep:        platform.SleepContext,
		Rand:         platform.NewRandom(0),
	}
}

func (o Options) withDefaults() Options {
	if o.Sleep == nil {
		o.Sleep = platform.SleepContext
	}
	if o.Rand == nil {
		o.Rand = platform.NewRandom(0)
	}
	if o.MinDelay < 0 {
		o.MinDelay = 0
	}
	if o.MaxDelay < o.MinDelay {
		o.MaxDelay = o.MinDelay
	}
	return o
}

// Service runs the simulated download pipeline over one playlist. Videos are
// processed strictly in order, so at most one is downloading at a time.
type Service struct {
	mu         sync.Mutex
	label      string
	playlist   *model.Playlist
	saver      platform.Saver
	opts       Options
	bus        *Bus
	state      model.RunState
	running    bool
	generation uint64
	cancel     context.CancelFunc
	processed  int
	done       chan struct{}
}

// NewService creates a pipeline that saves through saver and reports on bus.
// label tags log lines.
func NewService(label string, saver platform.Saver, bus *Bus, opts Options) *Service {
	return &Service{
		label: label,
		saver: saver,
		opts:  opts.withDefaults(),
		bus:   bus,
		state: model.RunStateNotStarted,
	}
}

// SetPlaylist replaces the current playlist and returns a copy of what was
// installed, taken under the same lock. A run in progress is abandoned
// without a cancelled event; pass nil to clear.
func (s *Service) SetPlaylist(playlist *model.Playlist) *model.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.stopLocked()
	}
	s.playlist = playlist
	s.state = model.RunStateNotStarted
	s.processed = 0
	return playlist.Clone()
}

// Start begins a run over the current playlist in the background. It returns
// ErrNoPlaylist or ErrAlreadyRunning without side effects. ctx bounds the
// whole run; cancelling it has the same effect as Cancel.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playlist == nil {
		return model.ErrNoPlaylist
	}
	if s.running {
		return model.ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.generation++
	s.running = true
	s.state = model.RunStateRunning
	s.processed = 0
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(runCtx, s.generation, s.playlist, s.done)
	return nil
}

// Cancel stops the run. Videos in downloading go back to pending; completed
// and errored videos keep their status. The in-flight delay is aborted.
func (s *Service) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return model.ErrNotRunning
	}
	s.cancelLocked()
	return nil
}

// Wait blocks until the current run goroutine has exited.
func (s *Service) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Done returns a channel closed when the current run goroutine exits, or nil
// if nothing was ever started.
func (s *Service) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// IsRunning reports whether a run is in progress
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// State returns the pipeline's externally visible state
func (s *Service) State() model.RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Processed returns how many videos the current run has reached
func (s *Service) Processed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processed
}

// Snapshot returns a copy of the current playlist, or nil.
func (s *Service) Snapshot() *model.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlist.Clone()
}

func (s *Service) run(ctx context.Context, gen uint64, playlist *model.Playlist, done chan struct{}) {
	defer close(done)

	total := len(playlist.Videos)

	s.mu.Lock()
	if !s.current(gen) {
		s.mu.Unlock()
		return
	}
	s.emitLocked(model.ProgressEvent(playlist.ID, 0, total))
	s.mu.Unlock()

	for i := 0; i < total; i++ {
		s.mu.Lock()
		if !s.current(gen) {
			s.mu.Unlock()
			return
		}
		if ctx.Err() != nil {
			s.cancelLocked()
			s.mu.Unlock()
			return
		}
		video := playlist.Videos[i]
		video.SetStatus(model.VideoStatusDownloading)
		video.Error = ""
		s.processed = i + 1
		s.emitLocked(model.VideoStatusEvent(playlist.ID, i, video))
		s.emitLocked(model.ProgressEvent(playlist.ID, i+1, total))
		s.mu.Unlock()

		if err := s.opts.Sleep(ctx, s.delay()); err != nil {
			s.abandon(gen)
			return
		}

		path, err := s.saver.Save(ctx, i, video)

		s.mu.Lock()
		if !s.current(gen) {
			s.mu.Unlock()
			return
		}
		switch {
		case err == nil:
			video.OutputPath = path
			video.SetStatus(model.VideoStatusCompleted)
			s.emitLocked(model.VideoStatusEvent(playlist.ID, i, video))

		case errors.Is(err, model.ErrSaveBlocked):
			video.Error = model.UserMessage(err)
			video.SetStatus(model.VideoStatusError)
			s.emitLocked(model.VideoStatusEvent(playlist.ID, i, video))
			s.finishLocked(model.RunStateBlocked)
			s.emitLocked(model.ErrorEvent(model.EventBlocked, playlist.ID, err))
			s.mu.Unlock()
			return

		case ctx.Err() != nil:
			s.cancelLocked()
			s.mu.Unlock()
			return

		default:
			// Not a blocked save: record it on the video and keep going.
			video.Error = err.Error()
			video.SetStatus(model.VideoStatusError)
			s.emitLocked(model.VideoStatusEvent(playlist.ID, i, video))
			logger.Logger.Error("Save failed",
				"session_id", s.label,
				"video_id", video.ID,
				"error", err.Error(),
			)
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(gen) {
		return
	}
	s.finishLocked(model.RunStateCompleted)
	if s.processed == total {
		s.emitLocked(model.NewEvent(model.EventCompleted, playlist.ID))
	}
}

// abandon handles a delay cut short by the run context.
func (s *Service) abandon(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current(gen) {
		s.cancelLocked()
	}
}

func (s *Service) delay() time.Duration {
	spread := s.opts.MaxDelay - s.opts.MinDelay
	if spread <= 0 {
		return s.opts.MinDelay
	}
	return s.opts.MinDelay + time.Duration(s.opts.Rand.Int63n(int64(spread)))
}

// current reports whether gen is the live run. Callers hold s.mu.
func (s *Service) current(gen uint64) bool {
	return s.running && s.generation == gen
}

func (s *Service) finishLocked(state model.RunState) {
	s.running = false
	s.state = state
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// stopLocked ends the live run and invalidates its goroutine.
func (s *Service) stopLocked() []int {
	s.generation++
	s.finishLocked(model.RunStateCancelled)
	if s.playlist == nil {
		return nil
	}
	return s.playlist.ResetDownloading()
}

func (s *Service) cancelLocked() {
	reset := s.stopLocked()
	id := s.playlist.ID
	for _, i := range reset {
		s.emitLocked(model.VideoStatusEvent(id, i, s.playlist.Videos[i]))
	}
	s.emitLocked(model.NewEvent(model.EventCancelled, id))
}

func (s *Service) emitLocked(e model.Event) {
	if e.IsTerminal() {
		logger.LogPipelineEvent(context.Background(), s.label, string(e.Type), e.PlaylistID,
			"processed", s.processed,
		)
	} else {
		logger.LogPipelineEvent(context.Background(), s.label, string(e.Type), e.PlaylistID)
	}
	if s.bus != nil {
		s.bus.Publish(e)
	}
}
