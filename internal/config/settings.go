package config

import (
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/playlist-demo/internal/download"
	"github.com/ytget/playlist-demo/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyLanguage           = "app_language"
	KeyFailureRate        = "failure_rate_percent"
	KeyMinDelayMs         = "min_transfer_delay_ms"
	KeyMaxDelayMs         = "max_transfer_delay_ms"
	KeyAnalyzeDelayMs     = "analyze_delay_ms"
	KeyRandomSeed         = "random_seed"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultLanguage           = "system"
	DefaultFailureRate        = 10
	DefaultMinDelayMs         = 2000
	DefaultMaxDelayMs         = 5000
	DefaultAnalyzeDelayMs     = 2000
	DefaultAutoRevealComplete = false
	MaxDelayMs                = 60000
	fallbackDownloadDirName   = "playlist-demo"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = filepath.Join(os.TempDir(), fallbackDownloadDirName)
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetFailureRate returns the blocked-save probability in percent
func (s *Settings) GetFailureRate() int {
	return s.app.Preferences().IntWithFallback(KeyFailureRate, DefaultFailureRate)
}

// SetFailureRate sets the blocked-save probability, clamped to 0..100
func (s *Settings) SetFailureRate(percent int) {
	s.app.Preferences().SetInt(KeyFailureRate, clamp(percent, 0, 100))
}

// GetTransferDelays returns the min and max simulated transfer delay
func (s *Settings) GetTransferDelays() (time.Duration, time.Duration) {
	minMs := s.app.Preferences().IntWithFallback(KeyMinDelayMs, DefaultMinDelayMs)
	maxMs := s.app.Preferences().IntWithFallback(KeyMaxDelayMs, DefaultMaxDelayMs)
	if maxMs < minMs {
		maxMs = minMs
	}
	return time.Duration(minMs) * time.Millisecond, time.Duration(maxMs) * time.Millisecond
}

// SetTransferDelays sets the delay range in milliseconds. max below min is
// raised to min.
func (s *Settings) SetTransferDelays(minMs, maxMs int) {
	minMs = clamp(minMs, 0, MaxDelayMs)
	maxMs = clamp(maxMs, minMs, MaxDelayMs)
	s.app.Preferences().SetInt(KeyMinDelayMs, minMs)
	s.app.Preferences().SetInt(KeyMaxDelayMs, maxMs)
}

// GetAnalyzeDelay returns the simulated lookup delay
func (s *Settings) GetAnalyzeDelay() time.Duration {
	ms := s.app.Preferences().IntWithFallback(KeyAnalyzeDelayMs, DefaultAnalyzeDelayMs)
	return time.Duration(ms) * time.Millisecond
}

// SetAnalyzeDelay sets the simulated lookup delay in milliseconds
func (s *Settings) SetAnalyzeDelay(ms int) {
	s.app.Preferences().SetInt(KeyAnalyzeDelayMs, clamp(ms, 0, MaxDelayMs))
}

// GetRandomSeed returns the configured seed; 0 means seed from crypto/rand
func (s *Settings) GetRandomSeed() int64 {
	return int64(s.app.Preferences().Int(KeyRandomSeed))
}

// SetRandomSeed sets the seed used at the next start
func (s *Settings) SetRandomSeed(seed int64) {
	s.app.Preferences().SetInt(KeyRandomSeed, int(seed))
}

// GetAutoRevealOnComplete returns whether to reveal the last file when a run completes
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal the last file when a run completes
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// PipelineOptions converts the stored timings into pipeline options drawing
// from rng.
func (s *Settings) PipelineOptions(rng platform.Random) download.Options {
	minDelay, maxDelay := s.GetTransferDelays()
	return download.Options{
		AnalyzeDelay: s.GetAnalyzeDelay(),
		MinDelay:     minDelay,
		MaxDelay:     maxDelay,
		Sleep:        platform.SleepContext,
		Rand:         rng,
	}
}

// FaultInjector builds the random fault injector for the stored failure rate.
func (s *Settings) FaultInjector(rng platform.Random) platform.FaultInjector {
	return platform.NewRandomFaults(float64(s.GetFailureRate())/100, rng)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
