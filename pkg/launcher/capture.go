package launcher

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// CaptureOptions configures the one-shot capture commands.
type CaptureOptions struct {
	// WaitForSelector delays the capture until an element matching the
	// selector appears.
	WaitForSelector string

	// WaitForTimeout delays the capture by a fixed number of milliseconds.
	WaitForTimeout float64

	// FullPage captures the whole scrollable page instead of the viewport.
	// Screenshots only.
	FullPage bool
}

// CaptureScreenshot waits for the view to be ready and writes a screenshot
// to path.
func CaptureScreenshot(view View, path string, opts CaptureOptions) error {
	if err := waitReady(view, opts); err != nil {
		return err
	}
	if err := view.Screenshot(path, opts.FullPage); err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return nil
}

// CapturePDF waits for the view to be ready, renders it to a PDF file and
// validates the result so a truncated write never passes silently.
func CapturePDF(view View, path string, opts CaptureOptions) error {
	if err := waitReady(view, opts); err != nil {
		return err
	}
	if err := view.PDF(path); err != nil {
		return fmt.Errorf("failed to capture pdf: %w", err)
	}
	if err := api.ValidateFile(path, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("captured pdf failed validation: %w", err)
	}
	return nil
}

func waitReady(view View, opts CaptureOptions) error {
	if opts.WaitForSelector != "" {
		if err := view.WaitForSelector(opts.WaitForSelector); err != nil {
			return fmt.Errorf("failed waiting for selector %s: %w", opts.WaitForSelector, err)
		}
	}
	if opts.WaitForTimeout > 0 {
		view.WaitFor(opts.WaitForTimeout)
	}
	return nil
}
