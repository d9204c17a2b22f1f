package md2card

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// Separator syntax: a line of three or more dashes on its own.
var separatorPattern = regexp.MustCompile(`\n-{3,}\n`)

// Paragraph units are separated by one or more blank lines.
var paragraphPattern = regexp.MustCompile(`\n\n+`)

// paginate partitions the body into content bundles, one per card, using
// the layout's paging mode. Content is never reordered and never dropped;
// an empty body yields zero bundles and the caller decides whether that is
// fatal. The partition is a pure function of body + config for every mode
// except auto-split, which consults live measurements.
func (s *Service) paginate(ctx context.Context, body string, cfg LayoutConfig) ([]string, error) {
	switch cfg.Mode {
	case ModeAutoSplit:
		return s.autoSplit(ctx, body, cfg)
	case ModeAutoFit, ModeDynamic:
		// Single card; the visual fitting happens at capture time.
		if strings.TrimSpace(body) == "" {
			return nil, nil
		}
		return []string{strings.TrimSpace(body)}, nil
	default:
		return splitBySeparator(body), nil
	}
}

// splitBySeparator cuts the body at standalone `---` lines. Each non-empty
// segment becomes one card. Purely syntactic, no measurement.
func splitBySeparator(body string) []string {
	var segments []string
	for _, part := range separatorPattern.Split(body, -1) {
		if part = strings.TrimSpace(part); part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// splitParagraphs splits the body into paragraph units.
func splitParagraphs(body string) []string {
	var paragraphs []string
	for _, part := range paragraphPattern.Split(body, -1) {
		if part = strings.TrimSpace(part); part != "" {
			paragraphs = append(paragraphs, part)
		}
	}
	return paragraphs
}

// autoSplit greedily packs paragraphs into cards by rendering each
// candidate headlessly and measuring its content height.
//
// One surface stays open across all probe round trips; each probe
// re-navigates it. A paragraph is committed to the current card unless the
// grown candidate overflows the available interior height, in which case
// the accumulated paragraphs become a finished card and the rejected
// paragraph starts the next one. A paragraph that alone exceeds the
// available height is still placed alone: content is never split
// mid-paragraph or truncated. One measurement per paragraph attempt, no
// re-measuring from scratch.
func (s *Service) autoSplit(ctx context.Context, body string, cfg LayoutConfig) ([]string, error) {
	paragraphs := splitParagraphs(body)
	if len(paragraphs) == 0 {
		return nil, nil
	}

	surface, err := s.renderer.NewSurface(ctx, Viewport{
		Width:            cfg.Width,
		Height:           cfg.Height * 2,
		DevicePixelRatio: cfg.DevicePixelRatio,
	})
	if err != nil {
		return nil, err
	}
	defer surface.Close()

	availableHeight := float64(cfg.Height - interiorChrome)

	var cards []string
	var current []string
	for _, paragraph := range paragraphs {
		candidate := make([]string, 0, len(current)+1)
		candidate = append(candidate, current...)
		candidate = append(candidate, paragraph)

		page, err := s.markup.CardPage(ctx, strings.Join(candidate, "\n\n"), cfg, 1, 1)
		if err != nil {
			return nil, err
		}
		if err := surface.Navigate(ctx, page); err != nil {
			return nil, err
		}

		box, err := surface.Measure(ctx, contentSelector)
		if err != nil && !errors.Is(err, ErrMeasureUnavailable) {
			return nil, err
		}

		if box.Height > availableHeight && len(current) > 0 {
			cards = append(cards, strings.Join(current, "\n\n"))
			current = []string{paragraph}
		} else {
			current = candidate
		}
	}
	if len(current) > 0 {
		cards = append(cards, strings.Join(current, "\n\n"))
	}
	return cards, nil
}
