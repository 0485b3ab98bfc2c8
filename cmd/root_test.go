package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"testing"
	"time"

	"github.com/dvidx/tempo/internal/adapters/storage"
	"github.com/dvidx/tempo/internal/config"
	"github.com/dvidx/tempo/internal/domain"
	"github.com/dvidx/tempo/internal/engine"
)

// setupTestApp wires the global app over in-memory storage.
func setupTestApp(t *testing.T) {
	t.Helper()

	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	app.config = config.DefaultConfig()
	app.settings = &config.Static{Snapshot: domain.DefaultSettings()}
	app.storage = store
	app.engine = engine.New(engine.Deps{
		Settings:  app.settings,
		Stats:     store.Stats(),
		Snapshots: store.TimerState(),
	})
}

// captureStdout runs fn and returns what it printed.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	if fnErr != nil {
		t.Fatalf("command failed: %v", fnErr)
	}
	return buf.String()
}

func TestFormatCmdDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{25 * time.Minute, "25:00"},
		{61 * time.Second, "01:01"},
		{0, "00:00"},
		{-time.Minute, "00:00"},
	}
	for _, tc := range cases {
		if got := formatCmdDuration(tc.d); got != tc.want {
			t.Errorf("formatCmdDuration(%v) = %s, want %s", tc.d, got, tc.want)
		}
	}
}

func TestStatusJSON(t *testing.T) {
	setupTestApp(t)

	t.Run("idle", func(t *testing.T) {
		out := captureStdout(t, func() error {
			summary, err := app.engine.StatsSummary(context.Background())
			if err != nil {
				return err
			}
			return outputStatusJSON(app.engine.State(), summary)
		})

		var payload map[string]interface{}
		if err := json.Unmarshal([]byte(out), &payload); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		if payload["status"] != "idle" {
			t.Errorf("expected idle status, got %v", payload["status"])
		}
		if payload["phase"] != "idle" {
			t.Errorf("expected idle phase, got %v", payload["phase"])
		}
	})

	t.Run("running", func(t *testing.T) {
		if _, err := app.engine.Start(context.Background()); err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		t.Cleanup(func() { _, _ = app.engine.Reset(context.Background()) })

		out := captureStdout(t, func() error {
			summary, err := app.engine.StatsSummary(context.Background())
			if err != nil {
				return err
			}
			return outputStatusJSON(app.engine.State(), summary)
		})

		var payload map[string]interface{}
		if err := json.Unmarshal([]byte(out), &payload); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		if payload["status"] != "running" {
			t.Errorf("expected running status, got %v", payload["status"])
		}
		if _, ok := payload["remaining"]; !ok {
			t.Error("expected remaining field while running")
		}
	})
}

func TestDayLabel(t *testing.T) {
	today := domain.DateKey("2025-03-12")

	if got := dayLabel(today, today); got != "Today" {
		t.Errorf("expected Today, got %q", got)
	}
	if got := dayLabel(domain.DateKey("2025-03-10"), today); got != "Mon  " {
		t.Errorf("expected padded weekday, got %q", got)
	}
	if got := dayLabel(domain.DateKey("garbage"), today); got != "garbage" {
		t.Errorf("unparseable day should pass through, got %q", got)
	}
}
