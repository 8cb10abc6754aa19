package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/playlist-demo/internal/model"
)

// ProgressPanel is the progress section shown while a run is active.
type ProgressPanel struct {
	localization *Localization

	bar          *widget.ProgressBar
	countLabel   *widget.Label
	currentLabel *widget.Label
	percentLabel *widget.Label
	container    *fyne.Container

	progress model.Progress
	current  string
}

// NewProgressPanel creates a hidden progress section.
func NewProgressPanel(localization *Localization) *ProgressPanel {
	pp := &ProgressPanel{localization: localization}

	pp.bar = widget.NewProgressBar()
	pp.bar.Min = 0
	pp.bar.Max = 100
	pp.bar.TextFormatter = func() string { return "" }

	pp.countLabel = widget.NewLabel("")
	pp.countLabel.TextStyle = fyne.TextStyle{Bold: true}
	pp.currentLabel = widget.NewLabel("")
	pp.currentLabel.Truncation = fyne.TextTruncateEllipsis
	pp.percentLabel = widget.NewLabel("")
	pp.percentLabel.Alignment = fyne.TextAlignTrailing

	pp.container = container.NewVBox(
		container.NewBorder(nil, nil, nil, pp.percentLabel, pp.countLabel),
		pp.bar,
		pp.currentLabel,
	)
	pp.container.Hide()
	return pp
}

// Container returns the section's root object.
func (pp *ProgressPanel) Container() *fyne.Container {
	return pp.container
}

// SetProgress shows the run's position.
func (pp *ProgressPanel) SetProgress(p model.Progress) {
	pp.progress = p
	pp.bar.SetValue(float64(p.Percent))
	pp.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, p.Percent))
	pp.countLabel.SetText(pp.countText())
}

// SetCurrent shows the title of the video being processed.
func (pp *ProgressPanel) SetCurrent(title string) {
	pp.current = title
	pp.currentLabel.SetText(pp.currentText())
}

// Show resets the section to zero and makes it visible.
func (pp *ProgressPanel) Show(total int) {
	pp.current = ""
	pp.currentLabel.SetText("")
	pp.SetProgress(model.NewProgress(0, total))
	pp.container.Show()
}

// Hide hides the section.
func (pp *ProgressPanel) Hide() {
	pp.container.Hide()
}

// Visible reports whether the section is shown.
func (pp *ProgressPanel) Visible() bool {
	return pp.container.Visible()
}

// RefreshTexts re-reads localized strings.
func (pp *ProgressPanel) RefreshTexts() {
	pp.countLabel.SetText(pp.countText())
	pp.currentLabel.SetText(pp.currentText())
}

// countText renders "Downloading video X of Y". Before the first video
// starts X is zero.
func (pp *ProgressPanel) countText() string {
	if pp.progress.Total == 0 {
		return ""
	}
	return pp.localization.Format(KeyDownloadingOf, pp.progress.Current, pp.progress.Total)
}

func (pp *ProgressPanel) currentText() string {
	if pp.current == "" {
		return ""
	}
	return pp.localization.Format(KeyDownloadingTitle, pp.current)
}
