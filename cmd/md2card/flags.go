package main

import (
	"time"

	flag "github.com/spf13/pflag"

	md2card "github.com/alnah/go-md2card"
)

// cliFlags holds the resolved command-line configuration.
type cliFlags struct {
	outputDir string
	theme     string
	mode      string
	width     int
	height    int
	maxHeight int
	dpr       int
	timeout   time.Duration
	workers   int
	verbose   bool

	publish bool
	title   string
	desc    string
	private bool
	apiURL  string

	args []string
}

// parseFlags parses os.Args-style arguments into cliFlags.
func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet("md2card", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.outputDir, "output-dir", "o", ".", "output directory for rendered images")
	fs.StringVarP(&f.theme, "theme", "t", md2card.ThemeDefault, "visual theme (unknown names fall back to default)")
	fs.StringVarP(&f.mode, "mode", "m", md2card.ModeSeparator, "paging mode: separator, auto-fit, auto-split, dynamic")
	fs.IntVarP(&f.width, "width", "w", md2card.DefaultWidth, "card width in pixels")
	fs.IntVar(&f.height, "height", md2card.DefaultHeight, "card height in pixels (minimum height in dynamic mode)")
	fs.IntVar(&f.maxHeight, "max-height", md2card.DefaultMaxHeight, "maximum card height in dynamic mode")
	fs.IntVar(&f.dpr, "dpr", md2card.DefaultDPR, "device pixel ratio")
	fs.DurationVar(&f.timeout, "timeout", md2card.DefaultTimeout, "per-operation browser wait bound")
	fs.IntVar(&f.workers, "workers", 0, "parallel workers for multiple documents (0 = auto)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")

	fs.BoolVar(&f.publish, "publish", false, "publish the rendered images as a note")
	fs.StringVar(&f.title, "title", "", "note title (defaults to the document title)")
	fs.StringVar(&f.desc, "desc", "", "note description")
	fs.BoolVar(&f.private, "private", false, "publish as a private note")
	fs.StringVar(&f.apiURL, "api-url", "", "publish API address (default $XHS_API_URL or http://localhost:5005)")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	f.args = fs.Args()
	return f, nil
}
