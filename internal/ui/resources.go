package ui

import (
	"fyne.io/fyne/v2"
)

const (
	AppIcon = "playlist-demo.png"
)

// LoadLogoResource loads the logo from the working directory. A missing
// file is not fatal: callers fall back to a text-only header.
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}
