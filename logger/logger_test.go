package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: VerbosityUser},
		{name: "Console output mode", jsonOutput: false, verbosity: VerbosityDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			if err := Initialize(tt.jsonOutput, tt.verbosity); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			if Logger == nil {
				t.Fatal("Initialize() did not set global Logger")
			}
			if JSONOutput != tt.jsonOutput {
				t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}

			Cleanup()
			Logger = zap.NewNop().Sugar()
		})
	}
}

func TestLevelGating(t *testing.T) {
	core, logs := observer.New(VerbosityToLevel(VerbosityUser))
	Logger = zap.New(core).Sugar()
	defer func() { Logger = zap.NewNop().Sugar() }()

	Debugw("debug hidden")
	Infow("info hidden")
	Warnw("duplicate property", FieldType, "Player", FieldField, "_score")
	Errorw("render failed", FieldUnit, "PlayerGen0")

	if logs.Len() != 2 {
		t.Fatalf("expected 2 entries at warn level, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Level != zapcore.WarnLevel {
		t.Errorf("expected warn level, got %v", entry.Level)
	}
	if got := entry.ContextMap()[FieldType]; got != "Player" {
		t.Errorf("expected type field 'Player', got %v", got)
	}
}

func TestLoggingFunctionsWithNilLogger(t *testing.T) {
	Logger = nil
	defer func() { Logger = zap.NewNop().Sugar() }()

	// All helpers must be safe without a logger
	Infow("test", "key", "value")
	Errorw("test", "key", "value")
	Warnw("test", "key", "value")
	Debugw("test", "key", "value")
	Cleanup()
}
