package main

import (
	"fmt"
	"os"
	"testing"

	md2card "github.com/alnah/go-md2card"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"browser connect", md2card.ErrBrowserConnect, ExitBrowser},
		{"render timeout", md2card.ErrRenderTimeout, ExitBrowser},
		{"capture failed", md2card.ErrCaptureFailed, ExitBrowser},
		{"file missing", os.ErrNotExist, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"input not found", ErrInputNotFound, ExitIO},
		{"write output", md2card.ErrWriteOutput, ExitIO},
		{"empty body", md2card.ErrEmptyBody, ExitUsage},
		{"invalid mode", md2card.ErrInvalidMode, ExitUsage},
		{"incomplete cookie", md2card.ErrCookieIncomplete, ExitUsage},
		{"cookie missing", ErrCookieMissing, ExitUsage},
		{"publish multi", ErrPublishMulti, ExitUsage},
		{"no publish title", ErrNoPublishTitle, ExitUsage},
		{"unknown error", fmt.Errorf("something else"), ExitGeneral},
		{"publish failure", md2card.ErrPublishFailed, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("rendering doc.md: %w", md2card.ErrRenderTimeout)
	if got := exitCodeFor(wrapped); got != ExitBrowser {
		t.Errorf("exitCodeFor(wrapped) = %d, want %d", got, ExitBrowser)
	}
}
