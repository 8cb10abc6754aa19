package platform

import (
	"github.com/ytget/playlist-demo/internal/model"
)

// DefaultFailureRate is the chance that a single save is reported as blocked.
const DefaultFailureRate = 0.10

// FaultInjector decides whether the save of a video is blocked. It stands in
// for a host refusing a file save and never looks at real I/O.
type FaultInjector interface {
	ShouldBlock(index int, video *model.Video) bool
}

// FaultFunc adapts a function to FaultInjector.
type FaultFunc func(index int, video *model.Video) bool

// ShouldBlock calls f.
func (f FaultFunc) ShouldBlock(index int, video *model.Video) bool {
	return f(index, video)
}

// NoFaults never blocks.
var NoFaults = FaultFunc(func(int, *model.Video) bool { return false })

// BlockAt blocks only the video at index.
func BlockAt(index int) FaultInjector {
	return FaultFunc(func(i int, _ *model.Video) bool { return i == index })
}

// RandomFaults blocks each save independently with probability Rate.
type RandomFaults struct {
	Rate float64
	Rand Random
}

// NewRandomFaults creates an injector with rate clamped to [0, 1].
func NewRandomFaults(rate float64, rng Random) *RandomFaults {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return &RandomFaults{Rate: rate, Rand: rng}
}

// ShouldBlock draws once per call.
func (f *RandomFaults) ShouldBlock(int, *model.Video) bool {
	if f.Rate <= 0 {
		return false
	}
	return f.Rand.Float64() < f.Rate
}
