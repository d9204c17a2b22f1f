package md2card

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyBody      = errors.New("document body has no content")
	ErrMarkupConvert  = errors.New("markup conversion failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrRenderTimeout  = errors.New("render operation timed out")
	ErrCaptureFailed  = errors.New("screenshot capture failed")

	// ErrMeasureUnavailable reports that a measured region was absent.
	// Callers degrade to the configured minimum instead of failing the run.
	ErrMeasureUnavailable = errors.New("measured region not found")

	// Layout validation errors.
	ErrInvalidDimensions = errors.New("invalid canvas dimensions")
	ErrInvalidMaxHeight  = errors.New("max height must be at least the canvas height")
	ErrInvalidPixelRatio = errors.New("invalid device pixel ratio")
	ErrInvalidMode       = errors.New("invalid paging mode")

	// Output errors.
	ErrWriteOutput = errors.New("failed to write output image")

	// Publish boundary errors.
	ErrPublishUnavailable = errors.New("publish service unavailable")
	ErrPublishFailed      = errors.New("publish request failed")
	ErrSessionInit        = errors.New("publish session initialization failed")
	ErrNoImages           = errors.New("no publishable images")
	ErrCookieIncomplete   = errors.New("cookie missing required fields")
)
