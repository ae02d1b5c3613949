package logger

import (
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want *zapcore.Level
	}{
		{"debug", levelPtr(zapcore.DebugLevel)},
		{"info", levelPtr(zapcore.InfoLevel)},
		{"WARN", levelPtr(zapcore.WarnLevel)},
		{"error", levelPtr(zapcore.ErrorLevel)},
		{"", nil},
		{"loud", nil},
	}

	for _, tt := range tests {
		got := parseLevel(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("parseLevel(%q) = %v, want nil", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, *tt.want)
		}
	}
}

func TestNewBuildsBothModes(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		log := New("error", pretty)
		if log == nil {
			t.Fatalf("New(pretty=%v) returned nil", pretty)
		}
		log.Debug("dropped", String("k", "v"), Int("n", 1), Duration("d", time.Second))
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("nothing")
	log.Infof("nothing %d", 1)
	if err := log.Sync(); err != nil {
		t.Errorf("Sync() on nop logger: %v", err)
	}
}

func levelPtr(l zapcore.Level) *zapcore.Level { return &l }
