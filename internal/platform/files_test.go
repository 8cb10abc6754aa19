package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	t.Setenv("ANDROID_DATA", "")
	t.Setenv("ANDROID_ROOT", "")

	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestGetHomeDownloadsDir_Android(t *testing.T) {
	t.Setenv("ANDROID_DATA", "/data")

	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if downloadsDir != AndroidDownloadsDir {
		t.Errorf("expected %s, got %s", AndroidDownloadsDir, downloadsDir)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	nonExistentFile := filepath.Join(t.TempDir(), "nonexistent.txt")

	if err := OpenFileInManager(nonExistentFile); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
	if err := OpenFileWithDefaultApp(""); err == nil {
		t.Error("Expected error for empty path, got nil")
	}
}

func TestSleepContext(t *testing.T) {
	tests := []struct {
		name      string
		delay     time.Duration
		cancelled bool
		wantErr   bool
	}{
		{name: "zero delay returns immediately", delay: 0},
		{name: "short delay elapses", delay: time.Millisecond},
		{name: "cancelled context aborts long delay", delay: time.Hour, cancelled: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancelled {
				cancel()
			}

			err := SleepContext(ctx, tt.delay)
			if (err != nil) != tt.wantErr {
				t.Errorf("SleepContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
