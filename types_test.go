package md2card

import (
	"errors"
	"testing"
)

func TestLayoutConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LayoutConfig)
		wantErr error
	}{
		{"defaults are valid", func(*LayoutConfig) {}, nil},
		{"zero width", func(c *LayoutConfig) { c.Width = 0 }, ErrInvalidDimensions},
		{"negative height", func(c *LayoutConfig) { c.Height = -10 }, ErrInvalidDimensions},
		{"max height below height", func(c *LayoutConfig) { c.MaxHeight = 100 }, ErrInvalidMaxHeight},
		{"zero pixel ratio", func(c *LayoutConfig) { c.DevicePixelRatio = 0 }, ErrInvalidPixelRatio},
		{"unknown mode", func(c *LayoutConfig) { c.Mode = "spiral" }, ErrInvalidMode},
		{"mode is case-insensitive", func(c *LayoutConfig) { c.Mode = "Auto-Fit" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultLayout()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLayoutConfigNormalized(t *testing.T) {
	cfg := LayoutConfig{Width: 800, Height: 1000, DevicePixelRatio: 2}
	got := cfg.normalized()

	if got.MaxHeight != 1000 {
		t.Errorf("MaxHeight = %d, want Height (1000)", got.MaxHeight)
	}
	if got.Mode != ModeSeparator {
		t.Errorf("Mode = %q, want %q", got.Mode, ModeSeparator)
	}
	if cfg.MaxHeight != 0 {
		t.Error("normalized() mutated its receiver")
	}

	mixed := LayoutConfig{Width: 800, Height: 1000, DevicePixelRatio: 2, Mode: "Auto-Fit"}
	if got := mixed.normalized().Mode; got != ModeAutoFit {
		t.Errorf("Mode = %q, want canonical %q", got, ModeAutoFit)
	}
}

func TestResultPaths(t *testing.T) {
	r := &Result{
		CoverPath: "out/cover.png",
		Cards: []Card{
			{Path: "out/card_1.png"},
			{Path: "out/card_2.png"},
		},
	}
	got := r.Paths()
	want := []string{"out/cover.png", "out/card_1.png", "out/card_2.png"}
	if len(got) != len(want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Paths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	noCover := &Result{Cards: []Card{{Path: "out/card_1.png"}}}
	if got := noCover.Paths(); len(got) != 1 || got[0] != "out/card_1.png" {
		t.Errorf("Paths() without cover = %v", got)
	}
}
