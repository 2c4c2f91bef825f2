package app

import (
	"os"
	"testing"
)

// chdirTemp changes into a fresh temp dir and restores the previous working
// directory on cleanup (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
