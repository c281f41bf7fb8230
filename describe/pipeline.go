package describe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/imagetagger/gpt"
	"github.com/lepinkainen/imagetagger/lockguard"
	"github.com/lepinkainen/imagetagger/photo"
)

// Generator produces raw descriptive text for an image payload and prompt.
type Generator interface {
	Describe(ctx context.Context, imageData []byte, prompt, caption string) (string, error)
}

// MetadataWriter persists descriptive fields into an image's embedded container.
type MetadataWriter interface {
	Write(srcPath, dstPath string, rec photo.Metadata) error
}

// ExiftoolWriter is the production MetadataWriter backed by photo.WriteMetadata.
type ExiftoolWriter struct{}

func (ExiftoolWriter) Write(srcPath, dstPath string, rec photo.Metadata) error {
	return photo.WriteMetadata(srcPath, dstPath, rec)
}

// Summary aggregates per-item outcomes for one run. Owned and mutated only
// by the pipeline; discarded at end of run.
type Summary struct {
	Processed   int
	Failed      int
	Quarantined int
	Elapsed     time.Duration
}

// Pipeline drives the per-file sequence: classify, release holders, generate,
// parse, write, and aggregate. Items are processed sequentially in
// directory-enumeration order; item-level failures never cross between items.
type Pipeline struct {
	Generator   Generator
	Guard       lockguard.Guard
	Writer      MetadataWriter
	Logger      *slog.Logger
	Prompt      string
	Author      string
	SourceDir   string
	DestDir     string
	UseCaptions bool
	ShowBar     bool
}

// Run processes every file in the source directory. Only fatal conditions
// (a generator error response, an unreadable source directory) return an
// error; everything else lands in the summary counts.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	summary := Summary{}

	names, err := photo.ListEntries(p.SourceDir)
	if err != nil {
		return summary, fmt.Errorf("list source folder: %w", err)
	}

	p.Logger.Info("images processing has started", "files", len(names), "source", p.SourceDir)

	bar := p.newBar(len(names))
	for _, name := range names {
		if err := p.processEntry(ctx, name, &summary); err != nil {
			return summary, err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	summary.Elapsed = time.Since(start)
	p.Logger.Info("processing complete",
		"processed", summary.Processed,
		"unprocessed", summary.Failed,
		"quarantined", summary.Quarantined,
		"elapsed", FormatElapsed(summary.Elapsed))
	return summary, nil
}

// processEntry handles one directory entry. The returned error is fatal to
// the run; per-item failures are logged and counted instead.
func (p *Pipeline) processEntry(ctx context.Context, name string, summary *Summary) error {
	srcPath := filepath.Join(p.SourceDir, name)
	dstPath := filepath.Join(p.DestDir, name)

	class := photo.ClassifyFile(srcPath)
	switch class.Kind {
	case photo.KindNotImage:
		moved, err := photo.Quarantine(srcPath, p.DestDir)
		if err != nil {
			// The file remains wherever it last resided.
			p.Logger.Error("failed to move non-image file", "file", name, "error", err)
			summary.Failed++
			return nil
		}
		p.Logger.Warn("moved non-image file", "file", name, "to", moved)
		summary.Quarantined++
		return nil

	case photo.KindUnsupported:
		if class.Err != nil {
			p.Logger.Warn("image is corrupt or unreadable, leaving in place", "file", name, "error", class.Err)
		} else {
			p.Logger.Warn("unsupported image format, leaving in place", "file", name, "format", class.Format)
		}
		summary.Failed++
		return nil
	}

	if err := p.processImage(ctx, name, srcPath, dstPath); err != nil {
		var apiErr *gpt.APIError
		if errors.As(err, &apiErr) {
			// The generator itself is failing; no further item can succeed.
			p.Logger.Error("description generator reported an error", "file", name, "error", apiErr.Message)
			return err
		}
		p.Logger.Error("error adding metadata", "file", name, "error", err)
		summary.Failed++
		return nil
	}

	p.Logger.Info("metadata added", "file", name)
	summary.Processed++
	return nil
}

// processImage runs one accepted JPEG through lock release, description
// generation, parsing, and the metadata write.
func (p *Pipeline) processImage(ctx context.Context, name, srcPath, dstPath string) error {
	if err := p.Guard.ReleaseHolders(srcPath); err != nil {
		// Best effort; the write surfaces any lock that survives.
		p.Logger.Warn("could not release file holders", "file", name, "error", err)
	}

	imageData, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	caption := ""
	if p.UseCaptions {
		caption, err = p.readCaption(srcPath)
		if err != nil {
			p.Logger.Warn("could not read existing caption", "file", name, "error", err)
		}
	}

	text, err := p.Generator.Describe(ctx, imageData, p.Prompt, caption)
	if err != nil {
		return err
	}

	parsed := Parse(text)
	p.logDefaulted(name, parsed)

	rec := photo.Metadata{
		Title:       parsed.Title,
		Description: parsed.Description,
		Keywords:    parsed.Keywords,
		Author:      p.Author,
	}
	if err := p.Writer.Write(srcPath, dstPath, rec); err != nil {
		return err
	}

	p.removeOriginal(srcPath, dstPath)
	return nil
}

// removeOriginal deletes the source copy after a successful write, but only
// when the destination path differs from the source path.
func (p *Pipeline) removeOriginal(srcPath, dstPath string) {
	srcAbs, err1 := filepath.Abs(srcPath)
	dstAbs, err2 := filepath.Abs(dstPath)
	if err1 != nil || err2 != nil || srcAbs == dstAbs {
		return
	}
	if err := os.Remove(srcPath); err != nil {
		p.Logger.Warn("could not remove original after write", "file", srcPath, "error", err)
	}
}

func (p *Pipeline) readCaption(path string) (string, error) {
	return photo.ReadCaption(path)
}

func (p *Pipeline) logDefaulted(name string, parsed Description) {
	if parsed.TitleDefaulted {
		p.Logger.Warn("no title section in generated text, using default", "file", name)
	}
	if parsed.DescriptionDefaulted {
		p.Logger.Warn("no description section in generated text, using default", "file", name)
	}
	if parsed.KeywordsDefaulted {
		p.Logger.Warn("no keywords section in generated text, keyword list is empty", "file", name)
	}
}

func (p *Pipeline) newBar(total int) *progressbar.ProgressBar {
	if !p.ShowBar || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Describing images"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
