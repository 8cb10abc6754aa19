package download

import (
	"context"
	"sync"
	"time"

	"github.com/ytget/playlist-demo/internal/model"
	"github.com/ytget/playlist-demo/internal/platform"
)

type saverFunc func(ctx context.Context, index int, video *model.Video) (string, error)

func (f saverFunc) Save(ctx context.Context, index int, video *model.Video) (string, error) {
	return f(ctx, index, video)
}

var okSaver = saverFunc(func(_ context.Context, _ int, video *model.Video) (string, error) {
	return "/tmp/" + video.ID + ".txt", nil
})

// gateSleeper returns immediately for the first n calls and then parks until
// the run context ends. entered is closed when the parked call begins.
type gateSleeper struct {
	mu      sync.Mutex
	n       int
	calls   int
	entered chan struct{}
	delays  []time.Duration
}

func newGateSleeper(n int) *gateSleeper {
	return &gateSleeper{n: n, entered: make(chan struct{})}
}

func (g *gateSleeper) Sleep(ctx context.Context, d time.Duration) error {
	g.mu.Lock()
	g.calls++
	g.delays = append(g.delays, d)
	park := g.calls == g.n+1
	g.mu.Unlock()

	if !park {
		return ctx.Err()
	}
	close(g.entered)
	<-ctx.Done()
	return ctx.Err()
}

func testOptions() Options {
	return Options{
		MinDelay: DefaultMinDelay,
		MaxDelay: DefaultMaxDelay,
		Sleep:    platform.NoSleep,
		Rand:     platform.NewRandom(1),
	}
}

func testPlaylist(n int) *model.Playlist {
	videos := make([]*model.Video, n)
	for i := range videos {
		videos[i] = &model.Video{
			ID:       model.VideoID(i),
			Title:    "Video " + model.VideoID(i),
			Duration: "5:00",
			Status:   model.VideoStatusPending,
		}
	}
	return model.NewPlaylist("PL123", "Test", platform.CategoryMusic, videos)
}

// drain collects everything already buffered on ch.
func drain(ch <-chan model.Event) []model.Event {
	var events []model.Event
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, e)
		default:
			return events
		}
	}
}

func countEvents(events []model.Event, eventType model.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

func statuses(p *model.Playlist) []model.VideoStatus {
	out := make([]model.VideoStatus, len(p.Videos))
	for i, v := range p.Videos {
		out[i] = v.Status
	}
	return out
}

func repeat(status model.VideoStatus, n int) []model.VideoStatus {
	out := make([]model.VideoStatus, n)
	for i := range out {
		out[i] = status
	}
	return out
}
