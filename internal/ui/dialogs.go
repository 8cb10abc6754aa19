package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showToast shows message in the top-right corner and hides it after
// ToastAutoHide. Safe to call only on the UI thread.
func showToast(window fyne.Window, message string) *widget.PopUp {
	messageLabel := widget.NewLabel(message)
	messageLabel.TextStyle = fyne.TextStyle{Bold: true}
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	var toast *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		toast.Hide()
	})
	closeBtn.Importance = widget.LowImportance

	toast = widget.NewPopUp(container.NewBorder(nil, nil, nil, closeBtn, messageLabel), window.Canvas())

	canvasSize := window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toast.Resize(toastSize)
	toast.ShowAtPosition(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toast.Hide)
	})
	return toast
}

// showOutcomeDialog shows a modal with a single close button and calls
// onClosed once it is dismissed.
func showOutcomeDialog(window fyne.Window, loc *Localization, titleKey, messageKey string, onClosed func()) dialog.Dialog {
	d := dialog.NewInformation(loc.GetText(titleKey), loc.GetText(messageKey), window)
	d.SetDismissText(loc.GetText(KeyClose))
	if onClosed != nil {
		d.SetOnClosed(onClosed)
	}
	d.Show()
	return d
}
