package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/playlist-demo/internal/model"
)

// VideoRow renders one playlist entry: position, title, duration, status and
// reveal/view buttons that become active once the stand-in file exists.
type VideoRow struct {
	widget.BaseWidget

	video        model.Video
	index        int
	localization *Localization

	indexLabel    *widget.Label
	titleLabel    *widget.Label
	durationLabel *widget.Label
	statusText    *canvas.Text
	revealBtn     *widget.Button
	viewBtn       *widget.Button

	onReveal func(filePath string)
	onView   func(filePath string)
}

// NewVideoRow creates an empty row; SetVideo fills it.
func NewVideoRow(localization *Localization) *VideoRow {
	vr := &VideoRow{
		localization: localization,
		video:        model.Video{Status: model.VideoStatusPending},
	}
	vr.ExtendBaseWidget(vr)
	vr.createUI()
	return vr
}

// SetCallbacks sets the actions invoked with the saved file path: reveal in
// the file manager and open with the default application.
func (vr *VideoRow) SetCallbacks(onReveal, onView func(filePath string)) {
	vr.onReveal = onReveal
	vr.onView = onView
}

// SetVideo updates the row with a copy of video at playlist position index.
func (vr *VideoRow) SetVideo(index int, video *model.Video) {
	if video == nil {
		return
	}
	vr.index = index
	vr.video = *video
	vr.updateFromVideo()
}

func (vr *VideoRow) createUI() {
	vr.indexLabel = widget.NewLabel("")
	vr.indexLabel.TextStyle = fyne.TextStyle{Monospace: true}

	vr.titleLabel = widget.NewLabel("")
	vr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	vr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	vr.durationLabel = widget.NewLabel("")
	vr.durationLabel.Alignment = fyne.TextAlignTrailing

	vr.statusText = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	vr.statusText.Alignment = fyne.TextAlignTrailing

	vr.revealBtn = widget.NewButton(vr.localization.GetText(KeyReveal), func() {
		vr.withPath(vr.revealBtn, vr.onReveal)
	})
	vr.revealBtn.Importance = widget.LowImportance
	vr.revealBtn.Disable()

	vr.viewBtn = widget.NewButton(vr.localization.GetText(KeyView), func() {
		vr.withPath(vr.viewBtn, vr.onView)
	})
	vr.viewBtn.Importance = widget.LowImportance
	vr.viewBtn.Disable()
}

func (vr *VideoRow) withPath(source fyne.CanvasObject, action func(filePath string)) {
	if action == nil {
		return
	}
	if vr.video.OutputPath == "" {
		widget.ShowPopUp(widget.NewLabel(vr.localization.GetText(KeyFileNotAvailable)),
			fyne.CurrentApp().Driver().CanvasForObject(source))
		return
	}
	action(vr.video.OutputPath)
}

func (vr *VideoRow) updateFromVideo() {
	vr.indexLabel.SetText(fmt.Sprintf("%2d.", vr.index+1))
	vr.titleLabel.SetText(vr.video.Title)
	vr.durationLabel.SetText(vr.video.Duration)

	vr.statusText.Text = StatusIcon(vr.video.Status) + " " + vr.localization.StatusText(vr.video.Status)
	vr.statusText.Color = theme.Color(StatusColorName(vr.video.Status))
	vr.statusText.Refresh()

	vr.revealBtn.SetText(vr.localization.GetText(KeyReveal))
	vr.viewBtn.SetText(vr.localization.GetText(KeyView))
	for _, btn := range []*widget.Button{vr.revealBtn, vr.viewBtn} {
		if vr.video.OutputPath != "" {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
	vr.Refresh()
}

// CreateRenderer creates the widget renderer
func (vr *VideoRow) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	right := container.NewHBox(
		fixedWidth(DurationLabelWidth, vr.durationLabel),
		fixedWidth(StatusLabelWidth, container.NewCenter(vr.statusText)),
		vr.revealBtn,
		vr.viewBtn,
	)
	row := container.NewBorder(nil, nil, vr.indexLabel, right, vr.titleLabel)

	return &videoRowRenderer{
		row:    vr,
		layout: container.NewVBox(row, widget.NewSeparator()),
	}
}

type videoRowRenderer struct {
	row    *VideoRow
	layout *fyne.Container
}

func (r *videoRowRenderer) Layout(size fyne.Size) {
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	r.layout.Resize(size)
}

func (r *videoRowRenderer) MinSize() fyne.Size {
	minSize := r.layout.MinSize()
	if minSize.Height < RowMinHeight {
		minSize.Height = RowMinHeight
	}
	return minSize
}

func (r *videoRowRenderer) Refresh() {
	r.layout.Refresh()
}

func (r *videoRowRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.layout}
}

func (r *videoRowRenderer) Destroy() {}
