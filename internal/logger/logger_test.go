package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{LevelOff, false, false},
		{LevelNormal, false, true},
		{LevelVerbose, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, &buf)
			log.Debug("debug line")
			log.Info("info line")

			out := buf.String()
			if got := strings.Contains(out, "[DBG] "); got != tt.wantDebug {
				t.Errorf("debug output = %v, want %v (%q)", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "[INF] "); got != tt.wantInfo {
				t.Errorf("info output = %v, want %v (%q)", got, tt.wantInfo, out)
			}
		})
	}
}

func TestNamedSharesLevelAndPrefixes(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelOff, &buf)
	child := root.Named("timer").Named("cadence")

	child.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output at LevelOff, got %q", buf.String())
	}

	root.SetLevel(LevelNormal)
	child.Warn("pulse %d", 3)

	out := buf.String()
	if !strings.Contains(out, "timer.cadence: pulse 3") {
		t.Fatalf("expected prefixed message, got %q", out)
	}
	if child.GetLevel() != LevelNormal {
		t.Fatalf("child level = %s, want normal", child.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"QUIET", LevelOff, false},
		{"", LevelNormal, false},
		{"info", LevelNormal, false},
		{"debug", LevelVerbose, false},
		{" verbose ", LevelVerbose, false},
		{"loud", LevelNormal, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
