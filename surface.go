package md2card

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2card/internal/fileutil"
)

// Box is a measured natural content-box size in CSS pixels, independent of
// any transform applied for fitting.
type Box struct {
	Width  float64
	Height float64
}

// Viewport sizes a render session.
type Viewport struct {
	Width            int
	Height           int
	DevicePixelRatio int
}

// Surface is one live render session. It loads page descriptors, measures
// box dimensions, applies style mutations, and rasterizes regions.
//
// All operations are bounded waits on the underlying engine; Close must be
// called on every exit path.
type Surface interface {
	// Navigate loads an HTML page descriptor and waits for assets to settle.
	Navigate(ctx context.Context, html string) error

	// Measure returns the natural content-box size of the first element
	// matching selector. Returns ErrMeasureUnavailable when absent.
	Measure(ctx context.Context, selector string) (Box, error)

	// ApplyScale applies a uniform scale transform anchored at the top-left
	// corner of the matched element. Missing elements are a no-op.
	ApplyScale(ctx context.Context, selector string, scale float64) error

	// Capture rasterizes the {0,0,width,height} rectangle to PNG bytes,
	// reflecting any prior ApplyScale.
	Capture(ctx context.Context, width, height int) ([]byte, error)

	// Close releases all resources held by the session.
	Close() error
}

// Renderer creates render sessions against an external layout engine.
type Renderer interface {
	NewSurface(ctx context.Context, vp Viewport) (Surface, error)
	Close() error
}

// Compile-time interface checks.
var (
	_ Renderer = (*rodRenderer)(nil)
	_ Surface  = (*rodSurface)(nil)
)

// rodRenderer implements Renderer using headless Chrome via go-rod.
// Rod automatically downloads Chromium on first run if not found. The
// browser process is connected lazily and shared across surfaces; each
// surface is its own page.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
	settle  time.Duration
}

// newRodRenderer creates a rodRenderer with the given wait bounds.
func newRodRenderer(timeout, settle time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout, settle: settle}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// NewSurface opens a blank page sized to the viewport at the given pixel density.
func (r *rodRenderer) NewSurface(ctx context.Context, vp Viewport) (Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: float64(vp.DevicePixelRatio),
		Mobile:            false,
	})
	if err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	return &rodSurface{page: page, timeout: r.timeout, settle: r.settle}, nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// rodSurface is one Chrome page driven through the CDP.
type rodSurface struct {
	page    *rod.Page
	timeout time.Duration
	settle  time.Duration
}

// Navigate writes the descriptor to a temp file, loads it, waits for the
// load event, then holds for the settle delay so late web-font swaps land
// before any measurement.
func (s *rodSurface) Navigate(ctx context.Context, html string) error {
	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return err
	}
	defer cleanup()

	page := s.page.Context(ctx).Timeout(s.timeout)
	if err := page.Navigate("file://" + tmpPath); err != nil {
		return wrapWaitErr(ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return wrapWaitErr(ErrPageLoad, err)
	}

	if s.settle > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.settle):
		}
	}
	return nil
}

// measureJS returns the natural scroll box of the matched element, falling
// back to the bounding rect which can exceed scroll size for inline content.
const measureJS = `(sel) => {
	const el = document.querySelector(sel);
	if (!el) return null;
	const rect = el.getBoundingClientRect();
	return {
		width: Math.max(el.scrollWidth, rect.width),
		height: Math.max(el.scrollHeight, rect.height),
	};
}`

func (s *rodSurface) Measure(ctx context.Context, selector string) (Box, error) {
	obj, err := s.page.Context(ctx).Timeout(s.timeout).Eval(measureJS, selector)
	if err != nil {
		return Box{}, wrapWaitErr(ErrPageLoad, err)
	}
	if obj.Value.Nil() {
		return Box{}, fmt.Errorf("%w: %q", ErrMeasureUnavailable, selector)
	}
	return Box{
		Width:  obj.Value.Get("width").Num(),
		Height: obj.Value.Get("height").Num(),
	}, nil
}

// applyScaleJS scales the matched block anchored top-left. The layout box
// is widened by 1/scale so the scaled result still spans the parent and
// nothing gets clipped by the pre-transform layout width.
const applyScaleJS = `(sel, scale) => {
	const el = document.querySelector(sel);
	if (!el) return false;
	el.style.transformOrigin = 'top left';
	if (el.parentElement && scale > 0 && scale < 1) {
		el.style.width = (el.parentElement.clientWidth / scale) + 'px';
	}
	el.style.transform = 'scale(' + scale + ')';
	return true;
}`

func (s *rodSurface) ApplyScale(ctx context.Context, selector string, scale float64) error {
	_, err := s.page.Context(ctx).Timeout(s.timeout).Eval(applyScaleJS, selector, scale)
	if err != nil {
		return wrapWaitErr(ErrPageLoad, err)
	}
	return nil
}

func (s *rodSurface) Capture(ctx context.Context, width, height int) ([]byte, error) {
	buf, err := s.page.Context(ctx).Timeout(s.timeout).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      0,
			Y:      0,
			Width:  float64(width),
			Height: float64(height),
			Scale:  1,
		},
	})
	if err != nil {
		return nil, wrapWaitErr(ErrCaptureFailed, err)
	}
	return buf, nil
}

func (s *rodSurface) Close() error {
	return s.page.Close()
}

// wrapWaitErr maps engine wait failures onto library sentinels, surfacing
// exceeded deadlines as ErrRenderTimeout.
func wrapWaitErr(sentinel error, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrRenderTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
