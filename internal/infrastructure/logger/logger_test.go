package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		l, err := New(in, "json")
		if err != nil {
			t.Fatalf("New(%q): %v", in, err)
		}
		if !l.Core().Enabled(want) {
			t.Fatalf("level %q: %v not enabled", in, want)
		}
		if want > zapcore.DebugLevel && l.Core().Enabled(want-1) {
			t.Fatalf("level %q: %v should be disabled", in, want-1)
		}
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	l, err := New("info", "console")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("console logger works")
}
