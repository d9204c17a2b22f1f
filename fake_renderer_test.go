package md2card

import (
	"context"
	"errors"
	"strings"
)

// errBoom is an injectable failure for exercising error paths.
var errBoom = errors.New("boom")

// measureFunc scripts measurements for a fake surface. It receives the
// selector being measured and the HTML last navigated to.
type measureFunc func(selector, page string) (Box, error)

type scaleCall struct {
	selector string
	scale    float64
}

type captureCall struct {
	width  int
	height int
}

// fakeSurface records the calls the assembler and paginator make,
// returning scripted measurements instead of driving a browser.
type fakeSurface struct {
	measure measureFunc

	page      string
	navigates int
	scales    []scaleCall
	captures  []captureCall
	closed    bool

	navigateErr error
	captureErr  error
}

func (s *fakeSurface) Navigate(_ context.Context, html string) error {
	if s.navigateErr != nil {
		return s.navigateErr
	}
	s.page = html
	s.navigates++
	return nil
}

func (s *fakeSurface) Measure(_ context.Context, selector string) (Box, error) {
	if s.measure == nil {
		return Box{}, ErrMeasureUnavailable
	}
	return s.measure(selector, s.page)
}

func (s *fakeSurface) ApplyScale(_ context.Context, selector string, scale float64) error {
	s.scales = append(s.scales, scaleCall{selector: selector, scale: scale})
	return nil
}

func (s *fakeSurface) Capture(_ context.Context, width, height int) ([]byte, error) {
	if s.captureErr != nil {
		return nil, s.captureErr
	}
	s.captures = append(s.captures, captureCall{width: width, height: height})
	return []byte("fake-png"), nil
}

func (s *fakeSurface) Close() error {
	s.closed = true
	return nil
}

// fakeRenderer hands out fakeSurfaces and keeps them for inspection.
type fakeRenderer struct {
	measure  measureFunc
	surfaces []*fakeSurface
	closed   bool

	openErr error
	// failNavigateOn makes the nth surface (1-based) fail its navigations.
	failNavigateOn int
	// failCaptureOn makes the nth surface (1-based) fail its captures.
	failCaptureOn int
}

func (r *fakeRenderer) NewSurface(_ context.Context, _ Viewport) (Surface, error) {
	if r.openErr != nil {
		return nil, r.openErr
	}
	s := &fakeSurface{measure: r.measure}
	r.surfaces = append(r.surfaces, s)
	if r.failNavigateOn == len(r.surfaces) {
		s.navigateErr = errBoom
	}
	if r.failCaptureOn == len(r.surfaces) {
		s.captureErr = errBoom
	}
	return s, nil
}

func (r *fakeRenderer) Close() error {
	r.closed = true
	return nil
}

// measureParagraphs scripts content heights proportional to the number of
// rendered paragraphs on the page, and container heights with the card
// chrome added back on top.
func measureParagraphs(perParagraph float64) measureFunc {
	return func(selector, page string) (Box, error) {
		n := float64(strings.Count(page, "<p>"))
		switch selector {
		case contentSelector, scaleSelector:
			return Box{Width: 600, Height: perParagraph * n}, nil
		case containerSelector:
			return Box{Width: 1080, Height: perParagraph*n + interiorChrome}, nil
		}
		return Box{}, ErrMeasureUnavailable
	}
}

// fixedMeasure scripts one box for every selector.
func fixedMeasure(w, h float64) measureFunc {
	return func(string, string) (Box, error) {
		return Box{Width: w, Height: h}, nil
	}
}
