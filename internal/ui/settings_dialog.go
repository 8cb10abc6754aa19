package ui

import (
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/playlist-demo/internal/config"
)

// SettingsDialog edits the persisted demo settings
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	downloadDirEntry  *widget.Entry
	failureRateEntry  *widget.Entry
	minDelayEntry     *widget.Entry
	maxDelayEntry     *widget.Entry
	analyzeDelayEntry *widget.Entry
	seedEntry         *widget.Entry
	autoRevealCheck   *widget.Check
	languageSelect    *widget.Select
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// values were written.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	loc := sd.localization

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(loc.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.failureRateEntry = widget.NewEntry()
	sd.failureRateEntry.SetPlaceHolder("0-100")
	sd.failureRateEntry.Validator = intValidator

	sd.minDelayEntry = widget.NewEntry()
	sd.minDelayEntry.Validator = intValidator
	sd.maxDelayEntry = widget.NewEntry()
	sd.maxDelayEntry.Validator = intValidator
	delayRow := container.NewGridWithColumns(2, sd.minDelayEntry, sd.maxDelayEntry)

	sd.analyzeDelayEntry = widget.NewEntry()
	sd.analyzeDelayEntry.Validator = intValidator

	sd.seedEntry = widget.NewEntry()
	sd.seedEntry.Validator = intValidator

	sd.autoRevealCheck = widget.NewCheck(loc.GetText(KeyAutoReveal), nil)

	sd.languageSelect = widget.NewSelect(languageCodes(sd.settings.GetLanguageOptions()), nil)

	form := container.NewVBox(
		widget.NewLabel(loc.GetText(KeyDownloadDirectory)),
		downloadDirRow,

		widget.NewLabel(loc.GetText(KeyFailureRate)),
		sd.failureRateEntry,

		widget.NewLabel(loc.GetText(KeyTransferDelay)),
		delayRow,

		widget.NewLabel(loc.GetText(KeyAnalyzeDelay)),
		sd.analyzeDelayEntry,

		widget.NewLabel(loc.GetText(KeyRandomSeed)),
		sd.seedEntry,

		sd.autoRevealCheck,

		widget.NewSeparator(),
		widget.NewLabel(loc.GetText(KeyLanguage)),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeySettings),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	minDelay, maxDelay := sd.settings.GetTransferDelays()

	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.failureRateEntry.SetText(strconv.Itoa(sd.settings.GetFailureRate()))
	sd.minDelayEntry.SetText(strconv.FormatInt(minDelay.Milliseconds(), 10))
	sd.maxDelayEntry.SetText(strconv.FormatInt(maxDelay.Milliseconds(), 10))
	sd.analyzeDelayEntry.SetText(strconv.FormatInt(sd.settings.GetAnalyzeDelay().Milliseconds(), 10))
	sd.seedEntry.SetText(strconv.FormatInt(sd.settings.GetRandomSeed(), 10))
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := strings.TrimSpace(sd.downloadDirEntry.Text); dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	if rate, ok := parseInt(sd.failureRateEntry.Text); ok {
		sd.settings.SetFailureRate(rate)
	}

	minDelay, minOK := parseInt(sd.minDelayEntry.Text)
	maxDelay, maxOK := parseInt(sd.maxDelayEntry.Text)
	if minOK && maxOK {
		sd.settings.SetTransferDelays(minDelay, maxDelay)
	}

	if delay, ok := parseInt(sd.analyzeDelayEntry.Text); ok {
		sd.settings.SetAnalyzeDelay(delay)
	}

	if seed, ok := parseInt(sd.seedEntry.Text); ok {
		sd.settings.SetRandomSeed(int64(seed))
	}

	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySettingsSaved)+"\n"+sd.localization.GetText(KeyRestartRequired), sd.window)
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	return v, err == nil
}

func intValidator(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err
}

// languageCodes returns the option codes in a stable order with "system" first.
func languageCodes(options map[string]string) []string {
	codes := make([]string, 0, len(options))
	for code := range options {
		if code != "system" {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	if _, ok := options["system"]; ok {
		codes = append([]string{"system"}, codes...)
	}
	return codes
}
