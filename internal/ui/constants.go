package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconClose    = "×"
	IconPending  = "○"
	IconActive   = "↓"
	IconDone     = "✓"
	IconError    = "✗"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	ProgressLabelFormat = "%d%%"
)

// Layout sizing (VideoRow / lists)
const (
	StatusLabelWidth   float32 = 110
	DurationLabelWidth float32 = 56

	RowMinWidth  float32 = 400
	RowMinHeight float32 = 44

	WindowWidth  float32 = 820
	WindowHeight float32 = 620
	LogoSize     float32 = 32
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 64
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// ErrorAutoHide is how long a validation message stays under the URL entry.
const ErrorAutoHide = 5 * time.Second

// Settings dialog sizing
const (
	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 460
)
