package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tetris-saver/internal/storage"
)

type fakeHistory struct {
	sessions  []storage.Session
	totals    *storage.Totals
	totalsErr error
}

func (f fakeHistory) RecentSessions(int) ([]storage.Session, error) {
	return f.sessions, nil
}

func (f fakeHistory) Totals() (*storage.Totals, error) {
	return f.totals, f.totalsErr
}

func oneSession() []storage.Session {
	return []storage.Session{{
		Mode:       storage.ModeRun,
		StartedAt:  time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC),
		Duration:   90 * time.Second,
		Pieces:     12,
		Lines:      3,
		ExitReason: "key",
	}}
}

func TestPrintHistoryTotals(t *testing.T) {
	var out, errOut bytes.Buffer
	src := fakeHistory{
		sessions: oneSession(),
		totals:   &storage.Totals{Sessions: 1, Duration: 90 * time.Second, Pieces: 12, Lines: 3},
	}
	if err := printHistory(&out, &errOut, src, 10); err != nil {
		t.Fatalf("printHistory: %v", err)
	}
	if !strings.Contains(out.String(), "Total: 1 sessions, 1m30s, 12 pieces, 3 lines, 0 wipes") {
		t.Errorf("missing totals line:\n%s", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected error output: %q", errOut.String())
	}
}

func TestPrintHistoryReportsTotalsError(t *testing.T) {
	var out, errOut bytes.Buffer
	src := fakeHistory{sessions: oneSession(), totalsErr: errors.New("database is locked")}
	if err := printHistory(&out, &errOut, src, 10); err != nil {
		t.Fatalf("printHistory: %v", err)
	}
	if !strings.Contains(out.String(), "key") {
		t.Errorf("sessions should still be listed:\n%s", out.String())
	}
	if !strings.Contains(errOut.String(), "database is locked") {
		t.Errorf("totals error not reported, stderr = %q", errOut.String())
	}
	if strings.Contains(out.String(), "Total:") {
		t.Error("totals line printed despite the error")
	}
}

func TestHistoryOpenFailureReturnsError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	old := flagDBPath
	t.Cleanup(func() { flagDBPath = old })
	flagDBPath = filepath.Join(blocker, "sub", "history.db")

	if err := runHistory(nil, nil); err == nil {
		t.Fatal("expected an error for an unusable database path")
	}
}

func TestLoadSettingsToleratesUnreadablePalette(t *testing.T) {
	oldConfig, oldPalette := flagConfig, flagPalette
	t.Cleanup(func() { flagConfig, flagPalette = oldConfig, oldPalette })

	cfgPath := filepath.Join(t.TempDir(), "saver.yaml")
	if err := os.WriteFile(cfgPath, []byte("tick_ms: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	flagConfig = cfgPath
	flagPalette = t.TempDir() // A directory cannot be read as a palette

	s, err := loadSettings()
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.saver.TickMS != 50 {
		t.Errorf("TickMS = %d, want 50", s.saver.TickMS)
	}
}
