package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/tasknest/tasknest-api/internal/config"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		configured string
		want       slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.configured, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tt.configured})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if logger == nil {
				t.Fatal("Expected a logger")
			}

			ctx := context.Background()
			if !logger.Enabled(ctx, tt.want) {
				t.Errorf("Expected level %v to be enabled", tt.want)
			}
			if tt.want > slog.LevelDebug && logger.Enabled(ctx, tt.want-1) {
				t.Errorf("Expected level below %v to be disabled", tt.want)
			}
		})
	}
}

func TestSetupSetsProcessDefault(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: "warn"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if slog.Default() != logger {
		t.Error("Expected Setup to install the logger as process default")
	}
}

func TestContextRoundTrip(t *testing.T) {
	base := slog.Default()
	attached := base.With("trace_id", "abc123")

	ctx := WithLogger(context.Background(), attached)

	if got := FromContext(ctx); got != attached {
		t.Error("Expected the attached logger back from FromContext")
	}

	if got := FromContext(context.Background()); got != slog.Default() {
		t.Error("Expected process default for a bare context")
	}

	fallback := base.With("component", "test")
	if got := FromContextOrDefault(context.Background(), fallback); got != fallback {
		t.Error("Expected the provided fallback logger")
	}

	if got := FromContextOrDefault(ctx, fallback); got != attached {
		t.Error("Expected the attached logger to win over the fallback")
	}
}
