package md2card

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Output file naming. Cards are 1-indexed.
const (
	coverFileName   = "cover.png"
	cardFilePattern = "card_%d.png"
)

// Service orchestrates the document-to-cards pipeline:
// parse -> paginate -> assemble -> output files.
type Service struct {
	cfg      serviceConfig
	markup   *markupRenderer
	renderer Renderer
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithRenderer).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:    serviceConfig{timeout: DefaultTimeout, settle: defaultSettleDelay},
		markup: newMarkupRenderer(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create the browser-backed renderer if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = newRodRenderer(s.cfg.timeout, s.cfg.settle)
	}

	return s
}

// Render runs the full pipeline and writes one PNG per card, plus cover.png
// when the metadata carries a title or emoji. Cards are processed
// sequentially so order is deterministic and only one render session is
// open per card.
//
// On any failure the files already written by this run are removed, so the
// output directory never holds a partial card sequence.
func (s *Service) Render(ctx context.Context, input Input) (*Result, error) {
	cfg := input.Layout.normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	doc := ParseDocument(input.Source)
	if doc.Body == "" {
		return nil, ErrEmptyBody
	}

	bundles, err := s.paginate(ctx, doc.Body, cfg)
	if err != nil {
		return nil, err
	}
	if len(bundles) == 0 {
		return nil, ErrEmptyBody
	}

	if err := os.MkdirAll(input.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	asm := &assembler{renderer: s.renderer}
	result := &Result{}

	var written []string
	fail := func(err error) (*Result, error) {
		for _, path := range written {
			_ = os.Remove(path)
		}
		return nil, err
	}

	if doc.HasCover() {
		page, err := s.markup.CoverPage(doc, cfg)
		if err != nil {
			return fail(err)
		}
		png, height, err := asm.renderPage(ctx, page, cfg, ModeSeparator)
		if err != nil {
			return fail(err)
		}
		path := filepath.Join(input.OutputDir, coverFileName)
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		written = append(written, path)
		result.CoverPath = path
		result.CoverHeightPx = height
	}

	total := len(bundles)
	for i, content := range bundles {
		index := i + 1
		page, err := s.markup.CardPage(ctx, content, cfg, index, total)
		if err != nil {
			return fail(err)
		}
		png, height, err := asm.renderPage(ctx, page, cfg, cfg.Mode)
		if err != nil {
			return fail(err)
		}
		path := filepath.Join(input.OutputDir, fmt.Sprintf(cardFilePattern, index))
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		written = append(written, path)
		result.Cards = append(result.Cards, Card{
			Index:    index,
			Total:    total,
			Content:  content,
			Path:     path,
			HeightPx: height,
		})
	}

	return result, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}
