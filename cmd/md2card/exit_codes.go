package main

import (
	"errors"
	"os"

	md2card "github.com/alnah/go-md2card"
)

// Exit codes for the md2card CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2card.ErrBrowserConnect) ||
		errors.Is(err, md2card.ErrPageCreate) ||
		errors.Is(err, md2card.ErrPageLoad) ||
		errors.Is(err, md2card.ErrRenderTimeout) ||
		errors.Is(err, md2card.ErrCaptureFailed) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInputNotFound) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, md2card.ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, md2card.ErrEmptyBody) ||
		errors.Is(err, md2card.ErrInvalidDimensions) ||
		errors.Is(err, md2card.ErrInvalidMaxHeight) ||
		errors.Is(err, md2card.ErrInvalidPixelRatio) ||
		errors.Is(err, md2card.ErrInvalidMode) ||
		errors.Is(err, md2card.ErrCookieIncomplete) ||
		errors.Is(err, md2card.ErrNoImages) ||
		errors.Is(err, ErrPublishMulti) ||
		errors.Is(err, ErrNoPublishTitle) ||
		errors.Is(err, ErrCookieMissing) {
		return ExitUsage
	}

	return ExitGeneral
}
