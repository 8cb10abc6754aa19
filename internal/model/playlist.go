package model

import (
	"fmt"
	"time"
)

// ThumbnailURLFormat renders a thumbnail reference the way YouTube serves
// medium quality previews.
const ThumbnailURLFormat = "https://img.youtube.com/vi/%s/mqdefault.jpg"

// VideoStatus represents the status of a single video in a playlist
type VideoStatus string

const (
	VideoStatusPending     VideoStatus = "pending"
	VideoStatusDownloading VideoStatus = "downloading"
	VideoStatusCompleted   VideoStatus = "completed"
	VideoStatusError       VideoStatus = "error"
)

// String returns the string representation of VideoStatus
func (vs VideoStatus) String() string {
	return string(vs)
}

// IsFinished reports whether the video reached a terminal status for a run.
func (vs VideoStatus) IsFinished() bool {
	return vs == VideoStatusCompleted || vs == VideoStatusError
}

// Video is a single synthesized entry of a playlist. Identity is positional:
// ID mirrors the index ("video_1" for index 0) and is not an external key.
type Video struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Duration    string      `json:"duration"`
	Status      VideoStatus `json:"status"`
	ThumbnailID string      `json:"thumbnail_id"`
	OutputPath  string      `json:"output_path,omitempty"`
	Error       string      `json:"error,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ThumbnailURL returns the preview image URL for the video's thumbnail reference.
func (v *Video) ThumbnailURL() string {
	return fmt.Sprintf(ThumbnailURLFormat, v.ThumbnailID)
}

// SetStatus moves the video to status and stamps the update time.
func (v *Video) SetStatus(status VideoStatus) {
	v.Status = status
	v.UpdatedAt = time.Now()
}

// Playlist is the fabricated playlist produced by one successful analysis.
// Only the videos' status fields change after creation.
type Playlist struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	VideoCount int       `json:"video_count"`
	Videos     []*Video  `json:"videos"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewPlaylist creates a playlist whose VideoCount matches the given videos.
func NewPlaylist(id, title, category string, videos []*Video) *Playlist {
	if videos == nil {
		videos = make([]*Video, 0)
	}
	return &Playlist{
		ID:         id,
		Title:      title,
		Category:   category,
		VideoCount: len(videos),
		Videos:     videos,
		CreatedAt:  time.Now(),
	}
}

// VideoID returns the positional identifier for the video at index.
func VideoID(index int) string {
	return fmt.Sprintf("video_%d", index+1)
}

// Video returns the video at index, or nil when out of range.
func (p *Playlist) Video(index int) *Video {
	if index < 0 || index >= len(p.Videos) {
		return nil
	}
	return p.Videos[index]
}

// CountByStatus returns how many videos currently have status.
func (p *Playlist) CountByStatus(status VideoStatus) int {
	n := 0
	for _, video := range p.Videos {
		if video.Status == status {
			n++
		}
	}
	return n
}

// ResetDownloading moves every downloading video back to pending and returns
// the indices it touched. Completed and errored videos are left alone.
func (p *Playlist) ResetDownloading() []int {
	var reset []int
	for i, video := range p.Videos {
		if video.Status == VideoStatusDownloading {
			video.SetStatus(VideoStatusPending)
			reset = append(reset, i)
		}
	}
	return reset
}

// GetDownloadProgress returns overall download progress as percentage
func (p *Playlist) GetDownloadProgress() float64 {
	if len(p.Videos) == 0 {
		return 0
	}
	return float64(p.CountByStatus(VideoStatusCompleted)) / float64(len(p.Videos)) * 100
}

// HasErrors checks if any video has errors
func (p *Playlist) HasErrors() bool {
	return p.CountByStatus(VideoStatusError) > 0
}

// Clone returns a deep copy safe to hand to readers while a run mutates the
// original.
func (p *Playlist) Clone() *Playlist {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Videos = make([]*Video, len(p.Videos))
	for i, video := range p.Videos {
		v := *video
		cp.Videos[i] = &v
	}
	return &cp
}
