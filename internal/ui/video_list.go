package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ytget/playlist-demo/internal/model"
)

// VideoList is the results section: playlist header, title filter and one
// VideoRow per video. It repaints its own snapshot of the playlist.
type VideoList struct {
	localization *Localization

	playlist *model.Playlist
	visible  []int
	query    string

	titleLabel  *widget.Label
	countLabel  *widget.Label
	filterEntry *widget.Entry
	list        *widget.List
	container   *fyne.Container

	onReveal func(filePath string)
	onView   func(filePath string)
}

// NewVideoList creates an empty results section.
func NewVideoList(localization *Localization) *VideoList {
	vl := &VideoList{localization: localization}
	vl.createUI()
	return vl
}

func (vl *VideoList) createUI() {
	vl.titleLabel = widget.NewLabel("")
	vl.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	vl.titleLabel.Truncation = fyne.TextTruncateEllipsis

	vl.countLabel = widget.NewLabel("")

	vl.filterEntry = widget.NewEntry()
	vl.filterEntry.SetPlaceHolder(vl.localization.GetText(KeyFilterVideos))
	vl.filterEntry.OnChanged = vl.SetFilter

	vl.list = widget.NewList(
		func() int {
			return len(vl.visible)
		},
		func() fyne.CanvasObject {
			row := NewVideoRow(vl.localization)
			row.SetCallbacks(vl.reveal, vl.view)
			return row
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			vl.updateRow(id, obj)
		},
	)

	header := container.NewBorder(nil, nil, nil, vl.countLabel, vl.titleLabel)
	vl.container = container.NewBorder(
		container.NewVBox(header, vl.filterEntry),
		nil,
		nil,
		nil,
		vl.list,
	)
}

// Container returns the section's root object.
func (vl *VideoList) Container() *fyne.Container {
	return vl.container
}

// SetCallbacks sets the file actions used by the rows.
func (vl *VideoList) SetCallbacks(onReveal, onView func(filePath string)) {
	vl.onReveal = onReveal
	vl.onView = onView
}

// SetPlaylist replaces the shown playlist. nil clears the section.
func (vl *VideoList) SetPlaylist(playlist *model.Playlist) {
	vl.playlist = playlist
	vl.query = ""
	vl.filterEntry.SetText("")

	if playlist == nil {
		vl.titleLabel.SetText("")
		vl.countLabel.SetText("")
	} else {
		vl.titleLabel.SetText(playlist.Title)
		vl.countLabel.SetText(vl.localization.Format(KeyVideosFound, playlist.VideoCount))
	}
	vl.applyFilter()
}

// UpdateVideo applies a status event to the shown snapshot and repaints the row.
func (vl *VideoList) UpdateVideo(update *model.VideoUpdate) {
	if vl.playlist == nil || update == nil {
		return
	}
	video := vl.playlist.Video(update.Index)
	if video == nil || video.ID != update.ID {
		return
	}
	video.Status = update.Status
	if update.Path != "" {
		video.OutputPath = update.Path
	}

	for row, index := range vl.visible {
		if index == update.Index {
			vl.list.RefreshItem(row)
			return
		}
	}
}

// SetFilter narrows the rows to titles fuzzily matching query.
func (vl *VideoList) SetFilter(query string) {
	vl.query = query
	vl.applyFilter()
}

// VisibleCount returns how many rows pass the current filter.
func (vl *VideoList) VisibleCount() int {
	return len(vl.visible)
}

// RefreshTexts re-reads localized strings.
func (vl *VideoList) RefreshTexts() {
	vl.filterEntry.SetPlaceHolder(vl.localization.GetText(KeyFilterVideos))
	if vl.playlist != nil {
		vl.countLabel.SetText(vl.localization.Format(KeyVideosFound, vl.playlist.VideoCount))
	}
	vl.list.Refresh()
}

func (vl *VideoList) applyFilter() {
	if vl.playlist == nil {
		vl.visible = nil
	} else {
		vl.visible = filterVideoIndexes(vl.playlist.Videos, vl.query)
	}
	vl.list.Refresh()
}

func (vl *VideoList) updateRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if vl.playlist == nil || id < 0 || id >= len(vl.visible) {
		return
	}
	row, ok := obj.(*VideoRow)
	if !ok {
		return
	}
	index := vl.visible[id]
	row.SetVideo(index, vl.playlist.Video(index))
}

func (vl *VideoList) reveal(filePath string) {
	if vl.onReveal != nil {
		vl.onReveal(filePath)
	}
}

func (vl *VideoList) view(filePath string) {
	if vl.onView != nil {
		vl.onView(filePath)
	}
}

// filterVideoIndexes returns the positions of videos whose title fuzzily
// matches query, in playlist order. A blank query keeps every video.
func filterVideoIndexes(videos []*model.Video, query string) []int {
	query = strings.TrimSpace(query)
	indexes := make([]int, 0, len(videos))
	for i, video := range videos {
		if video == nil {
			continue
		}
		if query == "" || fuzzy.MatchFold(query, video.Title) {
			indexes = append(indexes, i)
		}
	}
	return indexes
}
