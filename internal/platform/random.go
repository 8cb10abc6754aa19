package platform

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"
)

// Random is the pseudo-random source used for synthesis, delays and fault
// injection. Implementations must be safe for concurrent use.
type Random interface {
	Intn(n int) int
	Int63n(n int64) int64
	Float64() float64
}

type lockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRandom returns a goroutine-safe source seeded with seed. A zero seed
// draws one from crypto/rand.
func NewRandom(seed int64) Random {
	if seed == 0 {
		seed = trueRandSeed()
	}
	return &lockedRand{src: rand.New(rand.NewSource(seed))}
}

func trueRandSeed() (seed int64) {
	err := binary.Read(cryptorand.Reader, binary.LittleEndian, &seed)
	if err == nil && seed != 0 {
		return
	}
	return time.Now().UnixNano()
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

func (r *lockedRand) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Int63n(n)
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}
