package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// setupTestDir creates a temporary directory for test logs and resets global state
func setupTestDir(t *testing.T) (cleanup func()) {
	t.Helper()

	// Create temp directory
	tempDir, err := os.MkdirTemp("", "playwright-logging-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	// Save original state
	origLogDir := logDir
	origInitErr := initErr
	origInitOnce := initOnce
	origRunID := runID
	origRunIDOnce := runIDOnce

	// Reset global state
	logDir = tempDir
	initErr = nil
	initOnce = sync.Once{}
	runID = ""
	runIDOnce = sync.Once{}

	// Return cleanup function
	return func() {
		// Restore original state
		logDir = origLogDir
		initErr = origInitErr
		initOnce = origInitOnce
		runID = origRunID
		runIDOnce = origRunIDOnce

		// Remove temp directory
		os.RemoveAll(tempDir)
	}
}

func TestNewLogger(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("test-component")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if logger.component != "test-component" {
		t.Errorf("Expected component 'test-component', got %q", logger.component)
	}

	if logger.runID == "" {
		t.Error("Expected non-empty run ID")
	}

	if logger.logPath == "" {
		t.Error("Expected non-empty log path")
	}

	// Verify log file exists
	if _, err := os.Stat(logger.logPath); os.IsNotExist(err) {
		t.Errorf("Log file does not exist at %s", logger.logPath)
	}
}

func TestLoggerFormatting(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("test")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	logger.Debugf("Debug message")
	logger.Infof("Info message %d", 123)
	logger.Warnf("Warning message")
	logger.Errorf("Error message")

	// Give file system time to flush
	time.Sleep(50 * time.Millisecond)

	// Read log file
	content, err := os.ReadFile(logger.logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logContent := string(content)

	// Verify each log level appears
	expectedPatterns := []string{
		"[test] [DEBUG] Debug message",
		"[test] [INFO] Info message 123",
		"[test] [WARN] Warning message",
		"[test] [ERROR] Error message",
	}

	for _, pattern := range expectedPatterns {
		if !strings.Contains(logContent, pattern) {
			t.Errorf("Log content missing expected pattern: %q\nContent:\n%s", pattern, logContent)
		}
	}
}

func TestMultipleComponents(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	// Create two loggers with different components
	logger1, err := NewLogger("launcher")
	if err != nil {
		t.Fatalf("Failed to create logger1: %v", err)
	}
	defer logger1.Close()

	logger2, err := NewLogger("grid")
	if err != nil {
		t.Fatalf("Failed to create logger2: %v", err)
	}
	defer logger2.Close()

	// They should share the same run ID and log file
	if logger1.runID != logger2.runID {
		t.Errorf("Expected same run ID, got %q and %q", logger1.runID, logger2.runID)
	}

	if logger1.logPath != logger2.logPath {
		t.Errorf("Expected same log path, got %q and %q", logger1.logPath, logger2.logPath)
	}

	// Write from both loggers
	logger1.Infof("Message from launcher")
	logger2.Infof("Message from grid")

	time.Sleep(50 * time.Millisecond)

	// Read log file
	content, err := os.ReadFile(logger1.logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logContent := string(content)

	// Verify both components logged
	if !strings.Contains(logContent, "[launcher]") {
		t.Error("Log missing launcher entries")
	}
	if !strings.Contains(logContent, "[grid]") {
		t.Error("Log missing grid entries")
	}
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("launcher", &buf)

	logger.Warnf("storage state not saved: %v", os.ErrPermission)

	out := buf.String()
	if !strings.Contains(out, "[launcher] [WARN] storage state not saved") {
		t.Errorf("Unexpected writer logger output: %q", out)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestRunID(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	id1 := RunID()
	id2 := RunID()

	if id1 != id2 {
		t.Errorf("Expected consistent run ID, got %q and %q", id1, id2)
	}

	if id1 == "" {
		t.Error("Expected non-empty run ID")
	}
}

func TestLogDirectory(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	dir, err := LogDirectory()
	if err != nil {
		t.Fatalf("Failed to get log directory: %v", err)
	}

	// In test mode, we use a temp directory, so just verify it exists and is a directory
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("Log directory does not exist or is not a directory: %s", dir)
	}
}

func TestLoggerClose(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("test")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	// Close once
	if err := logger.Close(); err != nil {
		t.Errorf("First close failed: %v", err)
	}

	// Close again should be safe
	if err := logger.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}

func TestLogPathFormat(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("test")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	// Verify log file name format: <run-id>-playwright.log
	fileName := filepath.Base(logger.logPath)
	if !strings.HasSuffix(fileName, "-playwright.log") {
		t.Errorf("Expected log file to end with '-playwright.log', got %q", fileName)
	}

	// Verify it starts with a UUID-like run ID (has dashes)
	runPart := strings.TrimSuffix(fileName, "-playwright.log")
	if !strings.Contains(runPart, "-") {
		t.Errorf("Expected run ID part to contain dashes (UUID format), got %q", runPart)
	}
}
