package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// AndroidDownloadsDir is where Android builds save stand-in files
const AndroidDownloadsDir = "/sdcard/Download"

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// Sleeper waits for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the real Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoSleep returns immediately unless ctx is already done.
func NoSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	absPath, err := resolveExisting(filePath)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openDirLinux(filepath.Dir(absPath))
	case OSAndroid:
		return exec.Command("am", "start", "-a", "android.intent.action.VIEW", "-d", "file://"+filepath.Dir(absPath)).Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	absPath, err := resolveExisting(filePath)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath).Run()
	case OSLinux:
		return exec.Command(XDGOpenCommand, absPath).Run()
	case OSAndroid:
		return exec.Command("am", "start", "-a", "android.intent.action.VIEW", "-d", "file://"+absPath, "-t", "text/plain").Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func resolveExisting(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file does not exist: %v", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}

// openDirLinux tries xdg-open, then the common file managers.
// File selection is not standardized on Linux, so the parent directory is opened.
func openDirLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}
	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}
	return fmt.Errorf("no suitable file manager found")
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	isAndroid := runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != ""
	if isAndroid {
		return AndroidDownloadsDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}
