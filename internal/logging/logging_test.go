package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level   string
		debug   bool
		wantErr bool
	}{
		{"", false, false},
		{"debug", true, false},
		{"warn", false, false},
		{"loud", false, true},
	}

	for _, tc := range tests {
		var buf bytes.Buffer
		l, err := New(&buf, "arcade", tc.level)
		if tc.wantErr {
			if err == nil {
				t.Errorf("New(%q) should fail", tc.level)
			}
			continue
		}
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tc.level, err)
		}
		l.Debug("state changed", "to", "playing")
		if got := strings.Contains(buf.String(), "state changed"); got != tc.debug {
			t.Errorf("level %q: debug logged = %v, expected %v", tc.level, got, tc.debug)
		}
	}
}

func TestNewPrefix(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "arcade-ssh", "info")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	l.Info("session started", "user", "ann")
	out := buf.String()
	if !strings.Contains(out, "arcade-ssh") || !strings.Contains(out, "user=ann") {
		t.Errorf("output %q missing prefix or key/value", out)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "arcade.log")
	l, c, err := Open(path, "arcade", "info")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	l.Info("hello")
	if err := c.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file = %q, expected the message", data)
	}
}

func TestOpenDiscard(t *testing.T) {
	l, c, err := Open("", "arcade", "")
	if err != nil {
		t.Fatalf("Open(\"\") failed: %v", err)
	}
	l.Info("dropped")
	if err := c.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
