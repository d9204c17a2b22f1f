package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	md2card "github.com/alnah/go-md2card"
)

// CLI-level sentinel errors.
var (
	ErrNoInput        = errors.New("no input document specified")
	ErrInputNotFound  = errors.New("input document not found")
	ErrReadInput      = errors.New("failed to read input document")
	ErrPublishMulti   = errors.New("--publish requires a single input document")
	ErrNoPublishTitle = errors.New("no note title: pass --title or add a title to the front matter")
)

// run renders every input document and optionally publishes the result.
func run(flags *cliFlags, logger *log.Logger) error {
	if len(flags.args) == 0 {
		return ErrNoInput
	}
	if flags.publish && len(flags.args) > 1 {
		return ErrPublishMulti
	}

	layout := md2card.LayoutConfig{
		Width:            flags.width,
		Height:           flags.height,
		MaxHeight:        flags.maxHeight,
		DevicePixelRatio: flags.dpr,
		Theme:            flags.theme,
		Mode:             flags.mode,
	}
	// Fail on bad canvas config before any browser starts.
	if err := layout.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	if len(flags.args) == 1 {
		svc := md2card.New(md2card.WithTimeout(flags.timeout))
		defer svc.Close()

		result, err := renderDocument(ctx, svc, flags.args[0], flags.outputDir, layout, logger)
		if err != nil {
			return err
		}
		if flags.publish {
			return publishResult(ctx, flags, result, logger)
		}
		return nil
	}

	return renderBatch(ctx, flags, layout, logger)
}

// renderDocument renders one document into outputDir.
func renderDocument(ctx context.Context, svc *md2card.Service, path, outputDir string, layout md2card.LayoutConfig, logger *log.Logger) (*md2card.Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	logger.Info("rendering", "file", path, "theme", layout.Theme, "mode", layout.Mode)

	result, err := svc.Render(ctx, md2card.Input{
		Source:    string(raw),
		OutputDir: outputDir,
		Layout:    layout,
	})
	if err != nil {
		return nil, err
	}

	if result.CoverPath != "" {
		logger.Info("generated", "image", result.CoverPath,
			"size", fmt.Sprintf("%dx%d", layout.Width, result.CoverHeightPx))
	}
	for _, card := range result.Cards {
		logger.Info("generated", "image", card.Path,
			"size", fmt.Sprintf("%dx%d", layout.Width, card.HeightPx),
			"card", fmt.Sprintf("%d/%d", card.Index, card.Total))
	}
	return result, nil
}

// renderBatch renders several documents in parallel, one subdirectory per
// document (named after the file stem), using a service pool.
func renderBatch(ctx context.Context, flags *cliFlags, layout md2card.LayoutConfig, logger *log.Logger) error {
	pool := md2card.NewServicePool(
		md2card.ResolvePoolSize(flags.workers),
		md2card.WithTimeout(flags.timeout),
	)
	defer pool.Close()

	logger.Debug("rendering batch", "documents", len(flags.args), "workers", pool.Size())

	var wg sync.WaitGroup
	errs := make([]error, len(flags.args))
	for i, path := range flags.args {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			svc := pool.Acquire()
			defer pool.Release(svc)

			stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			outDir := filepath.Join(flags.outputDir, stem)
			if _, err := renderDocument(ctx, svc, path, outDir, layout, logger); err != nil {
				errs[i] = fmt.Errorf("%s: %w", path, err)
			}
		}(i, path)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// publishResult posts the rendered images through the publish API.
func publishResult(ctx context.Context, flags *cliFlags, result *md2card.Result, logger *log.Logger) error {
	title := flags.title
	if title == "" {
		raw, err := os.ReadFile(flags.args[0])
		if err == nil {
			title = md2card.ParseDocument(string(raw)).Title()
		}
	}
	if title == "" {
		return ErrNoPublishTitle
	}

	cookie, err := loadCookie()
	if err != nil {
		return err
	}

	publisher := md2card.NewAPIPublisher(resolveAPIURL(flags.apiURL), cookie)
	if err := publisher.Init(ctx); err != nil {
		return err
	}

	logger.Info("publishing", "title", md2card.TruncateTitle(title), "images", len(result.Paths()))

	receipt, err := publisher.Publish(ctx, md2card.Post{
		Title:       title,
		Description: flags.desc,
		ImagePaths:  result.Paths(),
		Private:     flags.private,
	})
	if err != nil {
		return err
	}

	logger.Info("published", "note", receipt.PostID)
	return nil
}
