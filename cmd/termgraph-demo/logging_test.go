package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

// inTempDir runs the test from an empty directory so logs/ is isolated
func inTempDir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
}

func TestSetupLoggingDisabled(t *testing.T) {
	inTempDir(t)
	if f := setupLogging(false); f != nil {
		f.Close()
		t.Error("expected nil log file when debug is off")
	}
	if out := log.Writer(); out != io.Discard {
		t.Errorf("log output = %v, want io.Discard", out)
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("logs directory created with debug off")
	}
}

func TestSetupLoggingEnabled(t *testing.T) {
	inTempDir(t)
	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected log file when debug is on")
	}
	defer f.Close()

	out := log.Writer()
	if out == os.Stdout || out == os.Stderr {
		t.Error("log output must not reach the terminal")
	}

	log.Println("demo started")
	info, err := os.Stat(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("log file is empty")
	}
}

func TestSetupLoggingRotation(t *testing.T) {
	inTempDir(t)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected log file")
	}
	defer f.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatal(err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("oversized log was not rotated")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("new log file is %d bytes", info.Size())
	}
}
