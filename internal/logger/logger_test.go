package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "play.log")

	log, err := NewFile("production", path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	log.Info("round finalized")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"round finalized"`) {
		t.Fatalf("log = %q", data)
	}
}

func TestNewFileWithoutPath(t *testing.T) {
	log, err := NewFile("local", "")
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if log.Core().Enabled(0) {
		t.Fatal("logger without a path is enabled")
	}
}
