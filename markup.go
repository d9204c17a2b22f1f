package md2card

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Trailing tag syntax: one or more consecutive #token groups at the very
// end of a card's content. Tokens are Unicode letters, digits, and
// underscore, so CJK, kana, Hangul, and accented tags all count.
var (
	trailingTagsPattern = regexp.MustCompile(`((?:#[\p{L}\p{N}_]+\s*)+)$`)
	tagTokenPattern     = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
)

// extractTags strips a trailing run of hashtag tokens from content.
// Returns the remaining body and the extracted tag names (without "#").
// Content with no trailing tags comes back unmodified with no tags.
func extractTags(content string) (string, []string) {
	m := trailingTagsPattern.FindStringIndex(content)
	if m == nil {
		return content, nil
	}

	var tags []string
	for _, token := range tagTokenPattern.FindAllStringSubmatch(content[m[0]:], -1) {
		tags = append(tags, token[1])
	}
	if len(tags) == 0 {
		return content, nil
	}

	return strings.TrimSpace(content[:m[0]]), tags
}

// htmlConverter abstracts Markdown to HTML conversion.
type htmlConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// goldmarkConverter converts Markdown to an HTML fragment using goldmark.
type goldmarkConverter struct {
	md goldmark.Markdown
}

// newGoldmarkConverter creates a goldmarkConverter with GFM extensions and
// class-based syntax highlighting (the theme stylesheet styles the classes).
func newGoldmarkConverter() *goldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>, card text is prose
			html.WithXHTML(),     // Self-closing tags
		),
	)
	return &goldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *goldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkupConvert, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
