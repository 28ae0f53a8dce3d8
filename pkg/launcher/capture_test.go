package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureScreenshot_WaitsBeforeCapture(t *testing.T) {
	view := &fakeView{}
	opts := CaptureOptions{
		WaitForSelector: "#ready",
		WaitForTimeout:  250,
		FullPage:        true,
	}

	err := CaptureScreenshot(view, "out.png", opts)

	require.NoError(t, err)
	assert.Equal(t, []string{"#ready"}, view.waitedFor)
	assert.Equal(t, []float64{250}, view.waitedMS)
	assert.Equal(t, "out.png", view.shotPath)
	assert.True(t, view.shotFullPage)
}

func TestCaptureScreenshot_SelectorFailure(t *testing.T) {
	view := &fakeView{selectorErr: errors.New("timed out")}

	err := CaptureScreenshot(view, "out.png", CaptureOptions{WaitForSelector: "#never"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed waiting for selector #never")
	assert.Empty(t, view.shotPath, "capture must not run after a failed wait")
}

func TestCaptureScreenshot_EngineFailure(t *testing.T) {
	view := &fakeView{shotErr: errors.New("target crashed")}

	err := CaptureScreenshot(view, "out.png", CaptureOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to capture screenshot")
}

func TestCapturePDF_RejectsInvalidOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	view := &fakeView{
		pdfFunc: func(path string) error {
			return os.WriteFile(path, []byte("not a pdf"), 0o644)
		},
	}

	err := CapturePDF(view, path, CaptureOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")
}

func TestCapturePDF_EngineFailure(t *testing.T) {
	view := &fakeView{
		pdfFunc: func(string) error { return errors.New("printing not supported") },
	}

	err := CapturePDF(view, filepath.Join(t.TempDir(), "out.pdf"), CaptureOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to capture pdf")
}
