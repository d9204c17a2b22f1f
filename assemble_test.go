package md2card

import (
	"context"
	"errors"
	"testing"
)

func TestRenderPageAutoFit(t *testing.T) {
	cfg := DefaultLayout()
	cfg.Mode = ModeAutoFit
	// Available interior is 860x1220 for the default 1080x1440 canvas.

	t.Run("oversized content is scaled down", func(t *testing.T) {
		renderer := &fakeRenderer{measure: fixedMeasure(860, 2440)}
		asm := &assembler{renderer: renderer}

		_, height, err := asm.renderPage(context.Background(), "<html/>", cfg, cfg.Mode)
		if err != nil {
			t.Fatalf("renderPage() error = %v", err)
		}
		if height != cfg.Height {
			t.Errorf("capture height = %d, want fixed %d", height, cfg.Height)
		}

		scales := renderer.surfaces[0].scales
		if len(scales) != 1 {
			t.Fatalf("ApplyScale calls = %d, want 1", len(scales))
		}
		if scales[0].selector != scaleSelector {
			t.Errorf("scaled selector = %q, want %q", scales[0].selector, scaleSelector)
		}
		if want := 1220.0 / 2440.0; scales[0].scale != want {
			t.Errorf("scale = %v, want %v", scales[0].scale, want)
		}
	})

	t.Run("width can drive the scale", func(t *testing.T) {
		renderer := &fakeRenderer{measure: fixedMeasure(1720, 1220)}
		asm := &assembler{renderer: renderer}

		if _, _, err := asm.renderPage(context.Background(), "<html/>", cfg, cfg.Mode); err != nil {
			t.Fatalf("renderPage() error = %v", err)
		}
		scales := renderer.surfaces[0].scales
		if len(scales) != 1 {
			t.Fatalf("ApplyScale calls = %d, want 1", len(scales))
		}
		if want := 860.0 / 1720.0; scales[0].scale != want {
			t.Errorf("scale = %v, want %v", scales[0].scale, want)
		}
	})

	t.Run("fitting content is never magnified", func(t *testing.T) {
		renderer := &fakeRenderer{measure: fixedMeasure(400, 600)}
		asm := &assembler{renderer: renderer}

		if _, _, err := asm.renderPage(context.Background(), "<html/>", cfg, cfg.Mode); err != nil {
			t.Fatalf("renderPage() error = %v", err)
		}
		if scales := renderer.surfaces[0].scales; len(scales) != 0 {
			t.Errorf("ApplyScale calls = %d, want 0 for content that already fits", len(scales))
		}
	})

	t.Run("unmeasurable content keeps natural size", func(t *testing.T) {
		renderer := &fakeRenderer{}
		asm := &assembler{renderer: renderer}

		_, height, err := asm.renderPage(context.Background(), "<html/>", cfg, cfg.Mode)
		if err != nil {
			t.Fatalf("renderPage() error = %v", err)
		}
		if height != cfg.Height {
			t.Errorf("capture height = %d, want %d", height, cfg.Height)
		}
		if scales := renderer.surfaces[0].scales; len(scales) != 0 {
			t.Errorf("ApplyScale calls = %d, want 0", len(scales))
		}
	})
}

func TestRenderPageDynamic(t *testing.T) {
	cfg := DefaultLayout()
	cfg.Mode = ModeDynamic

	tests := []struct {
		name       string
		measured   float64
		wantHeight int
	}{
		{"short content stays at minimum", 900, cfg.Height},
		{"tall content grows the canvas", 2600.4, 2601},
		{"very tall content is capped at the ceiling", 9000, cfg.MaxHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &fakeRenderer{measure: fixedMeasure(1080, tt.measured)}
			asm := &assembler{renderer: renderer}

			_, height, err := asm.renderPage(context.Background(), "<html/>", cfg, cfg.Mode)
			if err != nil {
				t.Fatalf("renderPage() error = %v", err)
			}
			if height != tt.wantHeight {
				t.Errorf("capture height = %d, want %d", height, tt.wantHeight)
			}

			captures := renderer.surfaces[0].captures
			if len(captures) != 1 {
				t.Fatalf("Capture calls = %d, want 1", len(captures))
			}
			if captures[0].height != tt.wantHeight {
				t.Errorf("captured height = %d, want %d", captures[0].height, tt.wantHeight)
			}
		})
	}

	t.Run("unmeasurable content uses the minimum", func(t *testing.T) {
		renderer := &fakeRenderer{}
		asm := &assembler{renderer: renderer}

		_, height, err := asm.renderPage(context.Background(), "<html/>", cfg, cfg.Mode)
		if err != nil {
			t.Fatalf("renderPage() error = %v", err)
		}
		if height != cfg.Height {
			t.Errorf("capture height = %d, want %d", height, cfg.Height)
		}
	})
}

func TestRenderPageSeparator(t *testing.T) {
	cfg := DefaultLayout()

	t.Run("overflow grows the capture", func(t *testing.T) {
		renderer := &fakeRenderer{measure: fixedMeasure(1080, 1800)}
		asm := &assembler{renderer: renderer}

		_, height, err := asm.renderPage(context.Background(), "<html/>", cfg, ModeSeparator)
		if err != nil {
			t.Fatalf("renderPage() error = %v", err)
		}
		if height != 1800 {
			t.Errorf("capture height = %d, want 1800", height)
		}
	})

	t.Run("short content keeps the canvas height", func(t *testing.T) {
		renderer := &fakeRenderer{measure: fixedMeasure(1080, 700)}
		asm := &assembler{renderer: renderer}

		_, height, err := asm.renderPage(context.Background(), "<html/>", cfg, ModeSeparator)
		if err != nil {
			t.Fatalf("renderPage() error = %v", err)
		}
		if height != cfg.Height {
			t.Errorf("capture height = %d, want %d", height, cfg.Height)
		}
	})
}

func TestRenderPageReleasesSurface(t *testing.T) {
	cfg := DefaultLayout()

	t.Run("on success", func(t *testing.T) {
		renderer := &fakeRenderer{measure: fixedMeasure(1080, 1440)}
		asm := &assembler{renderer: renderer}

		if _, _, err := asm.renderPage(context.Background(), "<html/>", cfg, cfg.Mode); err != nil {
			t.Fatalf("renderPage() error = %v", err)
		}
		if !renderer.surfaces[0].closed {
			t.Error("surface left open")
		}
	})

	t.Run("on navigation failure", func(t *testing.T) {
		renderer := &fakeRenderer{failNavigateOn: 1}
		asm := &assembler{renderer: renderer}

		_, _, err := asm.renderPage(context.Background(), "<html/>", cfg, cfg.Mode)
		if !errors.Is(err, errBoom) {
			t.Fatalf("renderPage() error = %v, want %v", err, errBoom)
		}
		if !renderer.surfaces[0].closed {
			t.Error("surface left open after failure")
		}
	})

	t.Run("on capture failure", func(t *testing.T) {
		renderer := &fakeRenderer{measure: fixedMeasure(1080, 1440), failCaptureOn: 1}
		asm := &assembler{renderer: renderer}

		_, _, err := asm.renderPage(context.Background(), "<html/>", cfg, cfg.Mode)
		if !errors.Is(err, errBoom) {
			t.Fatalf("renderPage() error = %v, want %v", err, errBoom)
		}
		if !renderer.surfaces[0].closed {
			t.Error("surface left open after failure")
		}
	})
}
