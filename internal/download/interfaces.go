package download

import (
	"context"

	"github.com/ytget/playlist-demo/internal/model"
)

// Controller is the surface presentation layers drive.
type Controller interface {
	Analyze(ctx context.Context, url string) (*model.Playlist, error)
	StartDownload() error
	Cancel() error
	Reset()
	Playlist() *model.Playlist
	State() model.RunState
	IsDownloading() bool
	Subscribe() (<-chan model.Event, func())
}

var _ Controller = (*Session)(nil)
