// Package ui contains the Fyne desktop front end of the playlist demo.
// It drives a download.Controller, repaints from the controller's event
// stream on the UI thread and keeps every string behind Localization.
package ui
