package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rr13k/playwright/pkg/launcher"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	fn()
	_ = w.Close()
	os.Stdout = old
	out, _ := io.ReadAll(r)
	return string(out)
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	fn()
	_ = w.Close()
	os.Stderr = old
	out, _ := io.ReadAll(r)
	return string(out)
}

func TestDispatchUnknownCommand(t *testing.T) {
	errOut := captureStderr(t, func() {
		if code := dispatch([]string{"teleport"}); code != 1 {
			t.Errorf("expected exit code 1, got %d", code)
		}
	})
	if !strings.Contains(errOut, "unknown command: teleport") {
		t.Errorf("expected unknown command message, got: %s", errOut)
	}
}

func TestDispatchUnknownFlag(t *testing.T) {
	errOut := captureStderr(t, func() {
		if code := dispatch([]string{"--frobnicate"}); code != 1 {
			t.Errorf("expected exit code 1, got %d", code)
		}
	})
	if !strings.Contains(errOut, "unknown flag: --frobnicate") {
		t.Errorf("expected unknown flag message, got: %s", errOut)
	}
}

func TestDispatchVersion(t *testing.T) {
	out := captureStdout(t, func() {
		if code := dispatch([]string{"version"}); code != 0 {
			t.Errorf("version should exit 0, got %d", code)
		}
	})
	if !strings.Contains(out, "playwright "+version) {
		t.Errorf("expected version output, got: %s", out)
	}
}

func TestDispatchNoArgsPrintsHelp(t *testing.T) {
	out := captureStdout(t, func() {
		if code := dispatch(nil); code != 0 {
			t.Errorf("help should exit 0, got %d", code)
		}
	})
	if !strings.Contains(out, "USAGE:") || !strings.Contains(out, "screenshot") {
		t.Errorf("expected help output, got: %s", out)
	}
}

func TestRunCommandGuidanceExitsZero(t *testing.T) {
	handler := func([]string) error {
		return &launcher.GuidanceError{Message: "pick a device from the list"}
	}

	out := captureStdout(t, func() {
		if code := runCommand(handler, nil); code != 0 {
			t.Errorf("guidance should exit 0, got %d", code)
		}
	})
	if !strings.Contains(out, "pick a device from the list") {
		t.Errorf("guidance message should go to stdout, got: %s", out)
	}
}

func TestRunCommandErrorExitsOne(t *testing.T) {
	handler := func([]string) error {
		return &launcher.ConfigurationError{Message: "unsupported browser"}
	}

	errOut := captureStderr(t, func() {
		if code := runCommand(handler, nil); code != 1 {
			t.Errorf("configuration errors should exit 1, got %d", code)
		}
	})
	if !strings.Contains(errOut, "Error: unsupported browser") {
		t.Errorf("error should go to stderr, got: %s", errOut)
	}
}

func TestRunCommandWrappedGuidanceExitsZero(t *testing.T) {
	handler := func([]string) error {
		return fmt.Errorf("normalizing options: %w", &launcher.GuidanceError{Message: "guidance"})
	}

	captureStdout(t, func() {
		if code := runCommand(handler, nil); code != 0 {
			t.Errorf("wrapped guidance should still exit 0, got %d", code)
		}
	})
}

func TestScreenshotCommandUsageError(t *testing.T) {
	err := runScreenshotCommand([]string{"https://example.com"})
	if err == nil {
		t.Fatal("expected usage error for missing output file")
	}
	if !strings.Contains(err.Error(), "usage:") {
		t.Errorf("expected usage message, got: %v", err)
	}
}

func TestPDFCommandUsageError(t *testing.T) {
	err := runPDFCommand(nil)
	if err == nil {
		t.Fatal("expected usage error for missing arguments")
	}
	if !strings.Contains(err.Error(), "usage:") {
		t.Errorf("expected usage message, got: %v", err)
	}
}
