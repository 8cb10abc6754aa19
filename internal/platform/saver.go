package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ytget/playlist-demo/internal/model"
)

// SavedFileExt is appended to every sanitized title
const SavedFileExt = ".txt"

const tempFilePattern = ".playlist-demo-*.part"

// DownloadedAtLayout formats the timestamp written into payloads
const DownloadedAtLayout = "2006-01-02 15:04:05"

// Saver performs the local save action for one video and returns where the
// stand-in file ended up.
type Saver interface {
	Save(ctx context.Context, index int, video *model.Video) (string, error)
}

// BuildPayload renders the plain-text stand-in for a video.
func BuildPayload(video *model.Video, at time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "This is a mock download for: %s\n\n", video.Title)
	b.WriteString("In a real implementation, this would contain the actual video content.\n")
	fmt.Fprintf(&b, "Video duration: %s\n", video.Duration)
	fmt.Fprintf(&b, "Downloaded at: %s", at.Format(DownloadedAtLayout))
	return []byte(b.String())
}

// SanitizeFileName lower-cases title and replaces every character outside
// [a-zA-Z0-9] with an underscore, then appends SavedFileExt.
func SanitizeFileName(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	return b.String() + SavedFileExt
}

// FileSaver writes stand-in files into a directory. The payload is staged in
// a temporary file that is removed on both the blocked and success paths.
type FileSaver struct {
	Dir    string
	Faults FaultInjector
	Now    func() time.Time
}

// NewFileSaver creates a saver writing into dir
func NewFileSaver(dir string, faults FaultInjector) *FileSaver {
	if faults == nil {
		faults = NoFaults
	}
	return &FileSaver{Dir: dir, Faults: faults, Now: time.Now}
}

// Save stages the payload, consults the fault injector and moves the file
// into place. A blocked save returns an error wrapping model.ErrSaveBlocked.
func (s *FileSaver) Save(ctx context.Context, index int, video *model.Video) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := CreateDirectoryIfNotExists(s.Dir); err != nil {
		return "", errors.Wrapf(err, "create download directory %s", s.Dir)
	}

	tmp, err := os.CreateTemp(s.Dir, tempFilePattern)
	if err != nil {
		return "", errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, err = tmp.Write(BuildPayload(video, s.Now()))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", errors.Wrap(err, "write payload")
	}

	if s.Faults.ShouldBlock(index, video) {
		return "", errors.Wrapf(model.ErrSaveBlocked, "save %s", video.ID)
	}

	target := filepath.Join(s.Dir, SanitizeFileName(video.Title))
	if err := os.Rename(tmpPath, target); err != nil {
		return "", errors.Wrapf(err, "move payload to %s", target)
	}
	return target, nil
}
