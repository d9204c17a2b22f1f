package md2card

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// defaultFontFamily matches the CJK-first stack the themes are designed for.
const defaultFontFamily = `'Noto Sans SC', 'Source Han Sans CN', 'PingFang SC', 'Microsoft YaHei', sans-serif`

// Selectors the assembler measures and transforms. The templates below and
// the theme stylesheets both depend on these names.
const (
	containerSelector = ".card-container"
	contentSelector   = ".card-content"
	scaleSelector     = ".card-content-scale"
)

// fallbackCoverEmoji decorates covers whose metadata has a title but no emoji.
const fallbackCoverEmoji = "📝"

var cardPageTemplate = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width={{.Width}}">
<title>card</title>
<style>
@import url('https://fonts.googleapis.com/css2?family=Noto+Sans+SC:wght@300;400;500;700;900&display=swap');

* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: ` + defaultFontFamily + `;
    width: {{.Width}}px;
    overflow: hidden;
    background: transparent;
}

.card-container {
    {{.ContainerCSS}}
}

.card-inner {
    {{.InnerCSS}}
}

.card-content {
    line-height: 1.7;
    {{.ContentCSS}}
}

/* auto-fit scales this block as a whole, anchored top-left */
.card-content-scale {
    transform-origin: top left;
    will-change: transform;
}

{{.ThemeCSS}}

.page-number {
    position: absolute;
    bottom: 80px;
    right: 80px;
    font-size: 36px;
    color: rgba(255, 255, 255, 0.8);
    font-weight: 500;
}
</style>
</head>
<body>
<div class="card-container">
    <div class="card-inner">
        <div class="card-content">
            <div class="card-content-scale">{{.Content}}{{if .Tags}}
<div class="tags-container">{{range .Tags}}<span class="tag">#{{.}}</span>{{end}}</div>{{end}}</div>
        </div>
    </div>
    <div class="page-number">{{.PageLabel}}</div>
</div>
</body>
</html>
`))

var coverPageTemplate = template.Must(template.New("cover").Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width={{.Width}}, height={{.Height}}">
<title>cover</title>
<style>
@import url('https://fonts.googleapis.com/css2?family=Noto+Sans+SC:wght@300;400;500;700;900&display=swap');

* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: ` + defaultFontFamily + `;
    width: {{.Width}}px;
    height: {{.Height}}px;
    overflow: hidden;
}

.cover-container {
    width: {{.Width}}px;
    height: {{.Height}}px;
    background: {{.Background}};
    position: relative;
    overflow: hidden;
}

.cover-inner {
    position: absolute;
    width: {{.InnerWidth}}px;
    height: {{.InnerHeight}}px;
    left: {{.InnerLeft}}px;
    top: {{.InnerTop}}px;
    background: #F3F3F3;
    border-radius: 25px;
    display: flex;
    flex-direction: column;
    padding: {{.PadVertical}}px {{.PadHorizontal}}px;
}

.cover-emoji {
    font-size: {{.EmojiSize}}px;
    line-height: 1.2;
    margin-bottom: {{.EmojiMargin}}px;
}

.cover-title {
    font-weight: 900;
    font-size: {{.TitleSize}}px;
    line-height: 1.4;
    background: {{.TitleGradient}};
    -webkit-background-clip: text;
    -webkit-text-fill-color: transparent;
    background-clip: text;
    flex: 1;
    display: flex;
    align-items: flex-start;
    word-break: break-all;
}

.cover-subtitle {
    font-weight: 350;
    font-size: {{.SubtitleSize}}px;
    line-height: 1.4;
    color: #000000;
    margin-top: auto;
}
</style>
</head>
<body>
<div class="cover-container">
    <div class="cover-inner">
        <div class="cover-emoji">{{.Emoji}}</div>
        <div class="cover-title">{{.Title}}</div>
        <div class="cover-subtitle">{{.Subtitle}}</div>
    </div>
</div>
</body>
</html>
`))

// cardPageData feeds cardPageTemplate.
type cardPageData struct {
	Width        int
	Content      template.HTML
	Tags         []string
	PageLabel    string
	ContainerCSS template.CSS
	InnerCSS     template.CSS
	ContentCSS   template.CSS
	ThemeCSS     template.CSS
}

// coverPageData feeds coverPageTemplate.
type coverPageData struct {
	Width, Height          int
	InnerWidth             int
	InnerHeight            int
	InnerLeft, InnerTop    int
	PadVertical            int
	PadHorizontal          int
	EmojiSize, EmojiMargin int
	TitleSize              int
	SubtitleSize           int
	Background             template.CSS
	TitleGradient          template.CSS
	Emoji                  string
	Title                  string
	Subtitle               string
}

// markupRenderer builds renderable page descriptors from content bundles.
type markupRenderer struct {
	conv htmlConverter
}

func newMarkupRenderer() *markupRenderer {
	return &markupRenderer{conv: newGoldmarkConverter()}
}

// CardPage builds the HTML document for one body card. Trailing hashtag
// tokens are extracted into styled chips, the rest of the content is
// converted to HTML, and the container sizing follows the paging mode.
func (r *markupRenderer) CardPage(ctx context.Context, content string, cfg LayoutConfig, index, total int) (string, error) {
	body, tags := extractTags(content)

	frag, err := r.conv.ToHTML(ctx, body)
	if err != nil {
		return "", err
	}

	pageLabel := ""
	if total > 1 {
		pageLabel = fmt.Sprintf("%d/%d", index, total)
	}

	container, inner, contentCSS := containerStyles(cfg)

	var buf bytes.Buffer
	err = cardPageTemplate.Execute(&buf, cardPageData{
		Width:        cfg.Width,
		Content:      template.HTML(frag),
		Tags:         tags,
		PageLabel:    pageLabel,
		ContainerCSS: template.CSS(container),
		InnerCSS:     template.CSS(inner),
		ContentCSS:   template.CSS(contentCSS),
		ThemeCSS:     template.CSS(themeStylesheet(cfg.Theme)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkupConvert, err)
	}
	return buf.String(), nil
}

// CoverPage builds the HTML document for the cover image from metadata.
func (r *markupRenderer) CoverPage(doc Document, cfg LayoutConfig) (string, error) {
	palette := paletteFor(cfg.Theme)

	emoji := doc.Emoji()
	if emoji == "" {
		emoji = fallbackCoverEmoji
	}

	w, h := cfg.Width, cfg.Height
	var buf bytes.Buffer
	err := coverPageTemplate.Execute(&buf, coverPageData{
		Width:         w,
		Height:        h,
		InnerWidth:    w * 88 / 100,
		InnerHeight:   h * 91 / 100,
		InnerLeft:     w * 6 / 100,
		InnerTop:      h * 45 / 1000,
		PadVertical:   w * 74 / 1000,
		PadHorizontal: w * 79 / 1000,
		EmojiSize:     w * 167 / 1000,
		EmojiMargin:   h * 35 / 1000,
		TitleSize:     coverTitleSize(w, doc.Title()),
		SubtitleSize:  w * 67 / 1000,
		Background:    template.CSS(palette.coverBackground),
		TitleGradient: template.CSS(palette.titleGradient),
		Emoji:         emoji,
		Title:         doc.Title(),
		Subtitle:      doc.Subtitle(),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkupConvert, err)
	}
	return buf.String(), nil
}

// coverTitleSize picks a font size tier from the title length so short
// titles fill the cover and long ones still fit.
func coverTitleSize(width int, title string) int {
	switch n := len([]rune(title)); {
	case n <= 6:
		return width * 14 / 100
	case n <= 10:
		return width * 12 / 100
	case n <= 18:
		return width * 9 / 100
	case n <= 30:
		return width * 7 / 100
	default:
		return width * 55 / 1000
	}
}

// containerStyles returns the mode-specific CSS for the card shell.
//
// Separator and auto-split cards have a minimum height and grow with
// overflow (the capture height follows the content). Auto-fit cards are
// fixed-size and clip, relying on the shrink transform. Dynamic cards grow
// like separator cards but the capture height is clamped later.
func containerStyles(cfg LayoutConfig) (container, inner, content string) {
	bg := paletteFor(cfg.Theme).cardBackground

	switch cfg.Mode {
	case ModeAutoFit:
		container = fmt.Sprintf(
			"width: %dpx; height: %dpx; background: %s; position: relative; padding: %dpx; overflow: hidden;",
			cfg.Width, cfg.Height, bg, cardPadding)
		inner = fmt.Sprintf(
			"background: rgba(255, 255, 255, 0.95); border-radius: 20px; padding: %dpx; height: calc(%dpx - %dpx); box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1); overflow: hidden; display: flex; flex-direction: column;",
			innerPadding, cfg.Height, 2*cardPadding)
		content = "flex: 1; overflow: hidden;"
	case ModeDynamic:
		container = fmt.Sprintf(
			"width: %dpx; min-height: %dpx; background: %s; position: relative; padding: %dpx;",
			cfg.Width, cfg.Height, bg, cardPadding)
		inner = fmt.Sprintf(
			"background: rgba(255, 255, 255, 0.95); border-radius: 20px; padding: %dpx; box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);",
			innerPadding)
	default: // separator, auto-split
		container = fmt.Sprintf(
			"width: %dpx; min-height: %dpx; background: %s; position: relative; padding: %dpx; overflow: hidden;",
			cfg.Width, cfg.Height, bg, cardPadding)
		inner = fmt.Sprintf(
			"background: rgba(255, 255, 255, 0.95); border-radius: 20px; padding: %dpx; min-height: calc(%dpx - %dpx); box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);",
			innerPadding, cfg.Height, 2*cardPadding)
	}
	return container, inner, content
}
