// Package md2card renders Markdown documents into fixed-aspect-ratio image
// cards for social carousel posts, using headless Chrome for layout and
// measurement.
//
// # Quick Start
//
// Create a service, render a document, and close when done:
//
//	svc := md2card.New()
//	defer svc.Close()
//
//	result, err := svc.Render(ctx, md2card.Input{
//	    Source:    "---\ntitle: Hello\n---\n\nFirst card\n\n---\n\nSecond card",
//	    OutputDir: "out",
//	    Layout:    md2card.DefaultLayout(),
//	})
//
// The result lists the written images: cover.png when the front matter has
// a title or emoji, then card_1.png..card_N.png in order.
//
// # Paging Modes
//
// How the body is split across cards, and how each card's canvas is sized,
// is chosen by LayoutConfig.Mode:
//
//   - separator: cut at standalone "---" lines; canvas grows with overflow
//   - auto-fit: one card; content is shrunk (never magnified) to fit
//   - auto-split: paragraphs are packed greedily, each candidate rendered
//     headlessly and measured before being committed
//   - dynamic: one card whose height grows with content up to MaxHeight
//
// # Rendering
//
// Layout and measurement are delegated to a real browser engine behind the
// Renderer/Surface interfaces; the library orchestrates iterative
// measure-and-decide loops on top of its measurements. Inject a fake
// Renderer with WithRenderer to test pagination policy without Chrome.
//
// Rod downloads Chromium automatically on first run. Set ROD_BROWSER_BIN
// to use a pre-installed browser.
package md2card
