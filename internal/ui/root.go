package ui

import (
	"context"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"

	"github.com/ytget/playlist-demo/internal/config"
	"github.com/ytget/playlist-demo/internal/download"
	"github.com/ytget/playlist-demo/internal/model"
	"github.com/ytget/playlist-demo/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	controller   download.Controller
	settings     *config.Settings
	localization *Localization

	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()

	urlEntry   *widget.Entry
	analyzeBtn *widget.Button
	errorLabel *widget.Label
	errorTimer *time.Timer

	videoList     *VideoList
	progressPanel *ProgressPanel
	downloadBtn   *widget.Button
	cancelBtn     *widget.Button
	results       *fyne.Container

	analyzing     bool
	lastSavedPath string

	// swapped in tests
	revealFile func(filePath string) error
	viewFile   func(filePath string) error
	toast      func(message string)
}

// NewRootUI builds the window content and starts listening to controller
// events. Close stops listening.
func NewRootUI(window fyne.Window, settings *config.Settings, controller download.Controller) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ctx, cancel := context.WithCancel(context.Background())
	ui := &RootUI{
		window:       window,
		controller:   controller,
		settings:     settings,
		localization: localization,
		ctx:          ctx,
		cancel:       cancel,
		revealFile:   platform.OpenFileInManager,
		viewFile:     platform.OpenFileWithDefaultApp,
	}
	ui.toast = func(message string) {
		showToast(window, message)
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()

	events, unsubscribe := controller.Subscribe()
	ui.unsubscribe = unsubscribe
	go ui.listen(events)

	return ui
}

// Close stops event delivery and abandons an in-flight analysis.
func (ui *RootUI) Close() {
	ui.cancel()
	if ui.unsubscribe != nil {
		ui.unsubscribe()
	}
}

func (ui *RootUI) listen(events <-chan model.Event) {
	for e := range events {
		fyne.Do(func() {
			ui.handleEvent(e)
		})
	}
}

func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onAnalyzeClick()
	}

	ui.analyzeBtn = widget.NewButton(ui.localization.GetText(KeyAnalyze), ui.onAnalyzeClick)
	ui.analyzeBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	left := container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		left = container.NewHBox(logoImage, settingsBtn)
	}
	urlRow := container.NewBorder(nil, nil, left, ui.analyzeBtn, ui.urlEntry)

	ui.errorLabel = widget.NewLabel("")
	ui.errorLabel.Importance = widget.DangerImportance
	ui.errorLabel.Wrapping = fyne.TextWrapWord
	ui.errorLabel.Hide()

	ui.videoList = NewVideoList(ui.localization)
	ui.videoList.SetCallbacks(ui.onRevealFile, ui.onViewFile)

	ui.progressPanel = NewProgressPanel(ui.localization)

	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownloadAll), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton(ui.localization.GetText(KeyCancelDownload), ui.onCancelClick)
	ui.cancelBtn.Importance = widget.DangerImportance

	actions := container.NewHBox(ui.downloadBtn, ui.cancelBtn)
	ui.results = container.NewBorder(
		nil,
		container.NewVBox(ui.progressPanel.Container(), actions),
		nil,
		nil,
		ui.videoList.Container(),
	)
	ui.results.Hide()

	content := container.NewBorder(
		container.NewVBox(urlRow, ui.errorLabel),
		nil,
		nil,
		nil,
		ui.results,
	)

	ui.window.SetContent(content)
	ui.updateButtons()
}

func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for _, code := range languageCodes(ui.localization.GetAvailableLanguages()) {
		langCode := code
		langItem := fyne.NewMenuItem(ui.localization.GetAvailableLanguages()[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	if ui.analyzing {
		ui.analyzeBtn.SetText(ui.localization.GetText(KeyAnalyzing))
	} else {
		ui.analyzeBtn.SetText(ui.localization.GetText(KeyAnalyze))
	}
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownloadAll))
	ui.cancelBtn.SetText(ui.localization.GetText(KeyCancelDownload))
	ui.videoList.RefreshTexts()
	ui.progressPanel.RefreshTexts()
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.onLanguageChange(ui.settings.GetLanguage())
	}).Show()
}

// onAnalyzeClick runs the lookup off the UI thread. Results and validation
// failures arrive as events; the returned error only matters when the
// lookup was abandoned.
func (ui *RootUI) onAnalyzeClick() {
	if ui.analyzing {
		return
	}
	url := strings.TrimSpace(ui.urlEntry.Text)

	ui.setAnalyzing(true)
	go func() {
		_, err := ui.controller.Analyze(ui.ctx, url)
		fyne.Do(func() {
			ui.setAnalyzing(false)
			if err != nil && !model.IsValidationError(err) && !errors.Is(err, context.Canceled) {
				log.Printf("Playlist analysis failed: %v", err)
				ui.showError(ui.localization.ErrorText(err))
			}
		})
	}()
}

func (ui *RootUI) setAnalyzing(analyzing bool) {
	ui.analyzing = analyzing
	if analyzing {
		ui.analyzeBtn.SetText(ui.localization.GetText(KeyAnalyzing))
		ui.analyzeBtn.Disable()
		return
	}
	ui.analyzeBtn.SetText(ui.localization.GetText(KeyAnalyze))
	ui.analyzeBtn.Enable()
}

func (ui *RootUI) onDownloadClick() {
	if err := ui.controller.StartDownload(); err != nil {
		log.Printf("Failed to start playlist download: %v", err)
	}
	ui.updateButtons()
}

func (ui *RootUI) onCancelClick() {
	if err := ui.controller.Cancel(); err != nil {
		log.Printf("Failed to cancel playlist download: %v", err)
	}
}

func (ui *RootUI) onRevealFile(filePath string) {
	ui.openPath(filePath, ui.revealFile)
}

func (ui *RootUI) onViewFile(filePath string) {
	ui.openPath(filePath, ui.viewFile)
}

func (ui *RootUI) openPath(filePath string, open func(string) error) {
	if err := open(filePath); err != nil {
		log.Printf("Failed to open %s: %v", filePath, err)
		dialog.ShowError(errors.Wrap(err, ui.localization.GetText(KeyErrorOpeningFile)), ui.window)
	}
}

// handleEvent applies one controller event. Must run on the UI thread.
func (ui *RootUI) handleEvent(e model.Event) {
	switch e.Type {
	case model.EventAnalyzed:
		ui.hideError()
		ui.lastSavedPath = ""
		ui.videoList.SetPlaylist(e.Playlist)
		ui.progressPanel.Hide()
		ui.results.Show()
		ui.toast(ui.localization.GetText(KeyAnalyzed))

	case model.EventValidationError:
		if e.Error != nil {
			ui.showError(ui.localization.ErrorKindText(e.Error.Kind, e.Error.Message))
		}

	case model.EventProgress:
		if e.Progress == nil {
			break
		}
		if !ui.progressPanel.Visible() {
			ui.progressPanel.Show(e.Progress.Total)
		}
		ui.progressPanel.SetProgress(*e.Progress)

	case model.EventVideoStatus:
		if e.Video == nil {
			break
		}
		ui.videoList.UpdateVideo(e.Video)
		switch e.Video.Status {
		case model.VideoStatusDownloading:
			ui.progressPanel.SetCurrent(e.Video.Title)
		case model.VideoStatusCompleted:
			if e.Video.Path != "" {
				ui.lastSavedPath = e.Video.Path
			}
		}

	case model.EventCompleted:
		ui.toast(ui.localization.GetText(KeyDownloadCompleted))
		if ui.settings.GetAutoRevealOnComplete() && ui.lastSavedPath != "" {
			ui.onRevealFile(ui.lastSavedPath)
		}
		showOutcomeDialog(ui.window, ui.localization, KeyCompletedTitle, KeyCompletedMessage, ui.controller.Reset)

	case model.EventBlocked:
		showOutcomeDialog(ui.window, ui.localization, KeyBlockedTitle, KeyBlockedMessage, ui.onBlockedClosed)

	case model.EventCancelled:
		ui.onCancelled()

	case model.EventReset:
		ui.lastSavedPath = ""
		ui.urlEntry.SetText("")
		ui.videoList.SetPlaylist(nil)
		ui.progressPanel.Hide()
		ui.results.Hide()
	}

	ui.updateButtons()
}

// onBlockedClosed clears the progress of the stopped blocked run.
func (ui *RootUI) onBlockedClosed() {
	ui.progressPanel.Hide()
	ui.updateButtons()
}

func (ui *RootUI) onCancelled() {
	ui.progressPanel.Hide()
	ui.toast(ui.localization.GetText(KeyDownloadCancelled))
}

func (ui *RootUI) updateButtons() {
	downloading := ui.controller.IsDownloading()
	hasPlaylist := ui.controller.Playlist() != nil

	if hasPlaylist && !downloading {
		ui.downloadBtn.Enable()
	} else {
		ui.downloadBtn.Disable()
	}
	if downloading {
		ui.cancelBtn.Enable()
	} else {
		ui.cancelBtn.Disable()
	}
}

// showError shows message under the URL entry for ErrorAutoHide.
func (ui *RootUI) showError(message string) {
	ui.errorLabel.SetText(message)
	ui.errorLabel.Show()

	if ui.errorTimer != nil {
		ui.errorTimer.Stop()
	}
	ui.errorTimer = time.AfterFunc(ErrorAutoHide, func() {
		fyne.Do(ui.hideError)
	})
}

func (ui *RootUI) hideError() {
	if ui.errorTimer != nil {
		ui.errorTimer.Stop()
		ui.errorTimer = nil
	}
	ui.errorLabel.SetText("")
	ui.errorLabel.Hide()
}
