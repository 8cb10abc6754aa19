package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/playlist-demo/internal/model"
)

var (
	colorBrandRed = color.RGBA{R: 204, G: 0, B: 0, A: 255}
	colorSuccess  = color.RGBA{R: 46, G: 160, B: 67, A: 255}
	colorError    = color.RGBA{R: 183, G: 28, B: 28, A: 255}
	colorWarning  = color.RGBA{R: 255, G: 193, B: 7, A: 255}
)

// CompactTheme is the default theme with a red accent and tighter spacing
// so a twelve video playlist fits without scrolling.
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return colorBrandRed
	case theme.ColorNameSuccess:
		return colorSuccess
	case theme.ColorNameError:
		return colorError
	case theme.ColorNameWarning:
		return colorWarning
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 24, G: 24, B: 24, A: 255}
		}
		return color.RGBA{R: 249, G: 249, B: 249, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNameInputRadius:
		return 3
	}

	return theme.DefaultTheme().Size(name)
}

// StatusColorName maps a video status to the theme color used for its label.
func StatusColorName(status model.VideoStatus) fyne.ThemeColorName {
	switch status {
	case model.VideoStatusDownloading:
		return theme.ColorNamePrimary
	case model.VideoStatusCompleted:
		return theme.ColorNameSuccess
	case model.VideoStatusError:
		return theme.ColorNameError
	default:
		return theme.ColorNameForeground
	}
}

// StatusIcon returns the glyph shown before a video's status label.
func StatusIcon(status model.VideoStatus) string {
	switch status {
	case model.VideoStatusDownloading:
		return IconActive
	case model.VideoStatusCompleted:
		return IconDone
	case model.VideoStatusError:
		return IconError
	default:
		return IconPending
	}
}
