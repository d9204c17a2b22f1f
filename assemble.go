package md2card

import (
	"context"
	"errors"
	"math"
)

// assembler drives a Renderer through load, mode-specific measurement and
// transforms, and capture for one page at a time.
type assembler struct {
	renderer Renderer
}

// renderPage rasterizes one page descriptor and returns the PNG bytes and
// the final capture height in CSS pixels. The surface is released on every
// exit path.
//
// The mode is passed separately from cfg because covers always use the
// fixed-canvas policy regardless of the body paging mode.
func (a *assembler) renderPage(ctx context.Context, page string, cfg LayoutConfig, mode string) ([]byte, int, error) {
	viewportHeight := cfg.Height
	if mode == ModeDynamic {
		viewportHeight = cfg.MaxHeight
	}

	surface, err := a.renderer.NewSurface(ctx, Viewport{
		Width:            cfg.Width,
		Height:           viewportHeight,
		DevicePixelRatio: cfg.DevicePixelRatio,
	})
	if err != nil {
		return nil, 0, err
	}
	defer surface.Close()

	if err := surface.Navigate(ctx, page); err != nil {
		return nil, 0, err
	}

	captureHeight, err := a.fitPage(ctx, surface, cfg, mode)
	if err != nil {
		return nil, 0, err
	}

	png, err := surface.Capture(ctx, cfg.Width, captureHeight)
	if err != nil {
		return nil, 0, err
	}
	return png, captureHeight, nil
}

// fitPage applies the mode's sizing policy and returns the capture height.
func (a *assembler) fitPage(ctx context.Context, surface Surface, cfg LayoutConfig, mode string) (int, error) {
	switch mode {
	case ModeAutoFit:
		// Shrink-only: measure the natural content block, scale it down to
		// the available interior, never magnify. Unmeasurable content keeps
		// scale 1. Canvas height stays fixed.
		natural, err := surface.Measure(ctx, scaleSelector)
		if err != nil {
			if !errors.Is(err, ErrMeasureUnavailable) {
				return 0, err
			}
			natural = Box{}
		}

		availW := float64(cfg.Width - interiorChrome)
		availH := float64(cfg.Height - interiorChrome)
		scale := 1.0
		if natural.Width > 0 && natural.Height > 0 && availW > 0 && availH > 0 {
			scale = math.Min(1, math.Min(availW/natural.Width, availH/natural.Height))
		}
		if scale < 1 {
			if err := surface.ApplyScale(ctx, scaleSelector, scale); err != nil {
				return 0, err
			}
		}
		return cfg.Height, nil

	case ModeDynamic:
		// Grow above the minimum to fit content, capped at the ceiling.
		// Content beyond MaxHeight is clipped at capture: an explicit lossy
		// policy, not re-split.
		measured := float64(cfg.Height)
		box, err := surface.Measure(ctx, containerSelector)
		switch {
		case err == nil:
			measured = box.Height
		case !errors.Is(err, ErrMeasureUnavailable):
			return 0, err
		}
		return clampHeight(int(math.Ceil(measured)), cfg.Height, cfg.MaxHeight), nil

	default: // separator, auto-split, cover
		// Minimum-height canvas: overflow grows the capture.
		height := cfg.Height
		box, err := surface.Measure(ctx, containerSelector)
		switch {
		case err == nil:
			if h := int(math.Ceil(box.Height)); h > height {
				height = h
			}
		case !errors.Is(err, ErrMeasureUnavailable):
			return 0, err
		}
		return height, nil
	}
}

// clampHeight bounds h to [minH, maxH].
func clampHeight(h, minH, maxH int) int {
	if h < minH {
		return minH
	}
	if h > maxH {
		return maxH
	}
	return h
}
