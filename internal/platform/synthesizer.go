package platform

import (
	"fmt"

	"github.com/ytget/playlist-demo/internal/model"
)

// Playlist categories
const (
	CategoryEducational = "educational"
	CategoryMusic       = "music"
	CategoryProgramming = "programming"
)

// Synthesis bounds
const (
	MinVideos        = 6
	MaxVideos        = 12
	MinDurationMin   = 5
	DurationMinRange = 45
	ThumbnailLength  = 11
)

const thumbnailAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// Categories lists the pools in selection order
var Categories = []string{CategoryEducational, CategoryMusic, CategoryProgramming}

var playlistTitles = map[string]string{
	CategoryEducational: "Educational Video Series",
	CategoryMusic:       "Best Music Playlist 2025",
	CategoryProgramming: "Complete Web Development Course",
}

var titlePools = map[string][]string{
	CategoryProgramming: {
		"Introduction to Programming - Complete Tutorial",
		"JavaScript Basics for Beginners",
		"HTML & CSS Fundamentals",
		"React.js Crash Course 2025",
		"Node.js Backend Development",
		"Database Design and SQL",
		"API Development with Express",
		"Frontend Frameworks Comparison",
		"Mobile App Development Basics",
		"Git and Version Control",
		"Deployment and DevOps",
		"Project Showcase and Next Steps",
	},
	CategoryMusic: {
		"Summer Vibes - Tropical House Mix",
		"Chill Lo-Fi Beats to Study/Relax",
		"Classic Rock Greatest Hits",
		"Electronic Dance Music Playlist",
		"Jazz & Blues Collection",
		"Indie Folk Favorites",
		"Hip Hop & R&B Classics",
		"Country Music Essentials",
		"Pop Music Top 40",
		"Reggae & Ska Mix",
		"Classical Music for Focus",
		"Meditation & Yoga Music",
	},
	CategoryEducational: {
		"World History: Ancient Civilizations",
		"Biology 101: Cell Structure",
		"Chemistry Fundamentals",
		"Physics: Motion and Forces",
		"Mathematics: Algebra Basics",
		"Literature: Shakespeare Analysis",
		"Geography: Climate and Weather",
		"Economics: Supply and Demand",
		"Psychology: Human Behavior",
		"Art History: Renaissance Period",
		"Computer Science: Algorithms",
		"Language Learning: Spanish Basics",
	},
}

// TitlePool returns a copy of the titles for category.
func TitlePool(category string) []string {
	return append([]string(nil), titlePools[category]...)
}

// PlaylistTitle returns the display title used for category.
func PlaylistTitle(category string) string {
	return playlistTitles[category]
}

// Synthesizer fabricates playlists from the static title pools.
type Synthesizer struct {
	rng Random
}

// NewSynthesizer creates a synthesizer drawing from rng.
func NewSynthesizer(rng Random) *Synthesizer {
	return &Synthesizer{rng: rng}
}

// Synthesize builds a playlist for id. It cannot fail.
func (s *Synthesizer) Synthesize(id string) *model.Playlist {
	category := Categories[s.rng.Intn(len(Categories))]

	titles := TitlePool(category)
	// Fisher-Yates
	for i := len(titles) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		titles[i], titles[j] = titles[j], titles[i]
	}

	count := MinVideos + s.rng.Intn(MaxVideos-MinVideos+1)
	if count > len(titles) {
		count = len(titles)
	}

	videos := make([]*model.Video, count)
	for i := 0; i < count; i++ {
		videos[i] = &model.Video{
			ID:          model.VideoID(i),
			Title:       titles[i],
			Duration:    s.duration(),
			Status:      model.VideoStatusPending,
			ThumbnailID: s.thumbnailID(),
		}
	}

	return model.NewPlaylist(id, playlistTitles[category], category, videos)
}

// duration renders M:SS with minutes in [5, 49]
func (s *Synthesizer) duration() string {
	minutes := MinDurationMin + s.rng.Intn(DurationMinRange)
	seconds := s.rng.Intn(60)
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func (s *Synthesizer) thumbnailID() string {
	b := make([]byte, ThumbnailLength)
	for i := range b {
		b[i] = thumbnailAlphabet[s.rng.Intn(len(thumbnailAlphabet))]
	}
	return string(b)
}
