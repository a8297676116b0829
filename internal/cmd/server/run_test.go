package serverrun

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	cfgpkg "github.com/sazikov-a/userver/internal/config"
	pebblestore "github.com/sazikov-a/userver/internal/storage/pebble"
)

func TestGetenvDefault(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		def      string
		envValue string
		expected string
	}{
		{name: "environment variable set", key: "TEST_VAR", def: "default", envValue: "env_value", expected: "env_value"},
		{name: "environment variable not set", key: "TEST_VAR_NOT_SET", def: "default", expected: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				_ = os.Setenv(tt.key, tt.envValue)
			} else {
				_ = os.Unsetenv(tt.key)
			}
			t.Cleanup(func() { _ = os.Unsetenv(tt.key) })

			result := getenvDefault(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("getenvDefault(%s, %s) = %s, expected %s", tt.key, tt.def, result, tt.expected)
			}
		})
	}
}

func TestDataDirStoreSubdirectory(t *testing.T) {
	baseDir := "/tmp/uuidv7d"
	expectedStoreDir := filepath.Join(baseDir, "store")
	storeDir := filepath.Join(baseDir, "store")
	if storeDir != expectedStoreDir {
		t.Errorf("expected store dir %s, got %s", expectedStoreDir, storeDir)
	}
}

func TestOptionsDataDirFallback(t *testing.T) {
	opts := Options{Config: cfgpkg.Default()}
	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	if opts.DataDir == "" {
		t.Fatalf("expected DataDir to be set after fallback")
	}
}

// TestRunIntegration exercises the full server lifecycle: it starts real
// gRPC and HTTP listeners on ephemeral ports and expects Run to return
// cleanly once its context is cancelled.
func TestRunIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tempDir := t.TempDir()
	opts := Options{
		DataDir:       tempDir,
		GRPCAddr:      "127.0.0.1:0",
		HTTPAddr:      "127.0.0.1:0",
		Fsync:         pebblestore.FsyncModeNever,
		FsyncInterval: time.Millisecond,
		Config:        cfgpkg.Default(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := Run(ctx, opts); err != nil {
		t.Fatalf("run: %v", err)
	}
}
