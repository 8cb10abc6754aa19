package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/google/uuid"

	"github.com/ytget/playlist-demo/internal/config"
	"github.com/ytget/playlist-demo/internal/download"
	"github.com/ytget/playlist-demo/internal/logger"
	"github.com/ytget/playlist-demo/internal/platform"
	"github.com/ytget/playlist-demo/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.playlist-demo"
	AppName = "Playlist Downloader Demo"
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logger.SetLevel(level)
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		fmt.Printf("failed to ensure downloads dir: %v\n", err)
	}

	rng := platform.NewRandom(settings.GetRandomSeed())
	saver := platform.NewFileSaver(downloadsDir, settings.FaultInjector(rng))
	session := download.NewSession(uuid.NewString(), saver, settings.PipelineOptions(rng))
	defer session.Close()

	rootUI := ui.NewRootUI(myWindow, settings, session)
	defer rootUI.Close()

	myWindow.ShowAndRun()
}
