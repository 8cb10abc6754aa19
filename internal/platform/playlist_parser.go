package platform

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ytget/playlist-demo/internal/model"
)

// DefaultAnalyzeDelay simulates the round trip to a playlist backend.
const DefaultAnalyzeDelay = 2 * time.Second

var youtubeURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+`)

// Tried in order; the first capture wins.
var playlistIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`list=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`playlist\?list=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtube\.com/v/[^&]+&list=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtube\.com/embed/[^?]+\?list=([a-zA-Z0-9_-]+)`),
}

// ValidateURL reports whether url points at youtube.com or youtu.be with a
// non-empty path.
func ValidateURL(url string) bool {
	return youtubeURLPattern.MatchString(url)
}

// ExtractPlaylistID returns the playlist identifier carried by url.
func ExtractPlaylistID(url string) (string, bool) {
	for _, pattern := range playlistIDPatterns {
		if match := pattern.FindStringSubmatch(url); match != nil {
			return match[1], true
		}
	}
	return "", false
}

// CheckURL trims raw and runs validation and extraction, returning the
// playlist ID or one of the analysis errors.
func CheckURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", model.ErrEmptyInput
	}
	if !ValidateURL(url) {
		return "", model.ErrInvalidURL
	}
	id, ok := ExtractPlaylistID(url)
	if !ok {
		return "", model.ErrNoPlaylistID
	}
	return id, nil
}

// PlaylistParserService turns a pasted URL into a synthesized playlist
type PlaylistParserService struct {
	delay       time.Duration
	sleep       Sleeper
	synthesizer *Synthesizer
}

// NewPlaylistParserService creates a new playlist parser service
func NewPlaylistParserService(rng Random) *PlaylistParserService {
	return &PlaylistParserService{
		delay:       DefaultAnalyzeDelay,
		sleep:       SleepContext,
		synthesizer: NewSynthesizer(rng),
	}
}

// ParsePlaylist validates url, waits for the simulated lookup and fabricates a
// playlist. Invalid input returns before any delay.
func (p *PlaylistParserService) ParsePlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	id, err := CheckURL(url)
	if err != nil {
		return nil, err
	}

	if err := p.sleep(ctx, p.delay); err != nil {
		return nil, errors.Wrap(err, "analyze playlist")
	}

	return p.synthesizer.Synthesize(id), nil
}

// SetDelay sets the simulated lookup delay
func (p *PlaylistParserService) SetDelay(delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	p.delay = delay
}

// SetSleeper replaces the function used to wait out the lookup delay
func (p *PlaylistParserService) SetSleeper(sleep Sleeper) {
	p.sleep = sleep
}
