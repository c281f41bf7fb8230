package describe

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lepinkainen/imagetagger/gpt"
	"github.com/lepinkainen/imagetagger/photo"
)

// WriteCSV runs the generator over every accepted image and writes one CSV
// row per image (filename, title, description, keywords) to the destination
// folder instead of touching the image files. Non-image files are still
// quarantined. Returns the summary and the CSV path.
func (p *Pipeline) WriteCSV(ctx context.Context) (Summary, string, error) {
	start := time.Now()
	summary := Summary{}

	names, err := photo.ListEntries(p.SourceDir)
	if err != nil {
		return summary, "", fmt.Errorf("list source folder: %w", err)
	}

	csvPath := filepath.Join(p.DestDir, fmt.Sprintf("described_images_%s.csv", start.Format("2006-01-02_15-04-05")))
	f, err := os.Create(csvPath)
	if err != nil {
		return summary, "", fmt.Errorf("create csv file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Filename", "Title", "Description", "Keywords"}); err != nil {
		return summary, "", fmt.Errorf("write csv header: %w", err)
	}

	p.Logger.Info("csv generation has started", "files", len(names), "source", p.SourceDir)

	bar := p.newBar(len(names))
	for _, name := range names {
		if err := p.describeToCSV(ctx, name, w, &summary); err != nil {
			return summary, csvPath, err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return summary, csvPath, fmt.Errorf("flush csv: %w", err)
	}

	summary.Elapsed = time.Since(start)
	p.Logger.Info("csv generation complete",
		"processed", summary.Processed,
		"unprocessed", summary.Failed,
		"quarantined", summary.Quarantined,
		"csv", csvPath,
		"elapsed", FormatElapsed(summary.Elapsed))
	return summary, csvPath, nil
}

func (p *Pipeline) describeToCSV(ctx context.Context, name string, w *csv.Writer, summary *Summary) error {
	srcPath := filepath.Join(p.SourceDir, name)

	class := photo.ClassifyFile(srcPath)
	switch class.Kind {
	case photo.KindNotImage:
		moved, err := photo.Quarantine(srcPath, p.DestDir)
		if err != nil {
			p.Logger.Error("failed to move non-image file", "file", name, "error", err)
			summary.Failed++
			return nil
		}
		p.Logger.Warn("moved non-image file", "file", name, "to", moved)
		summary.Quarantined++
		return nil

	case photo.KindUnsupported:
		p.Logger.Warn("skipping file that is not a processable image", "file", name)
		summary.Failed++
		return nil
	}

	imageData, err := os.ReadFile(srcPath)
	if err != nil {
		p.Logger.Error("error reading image", "file", name, "error", err)
		summary.Failed++
		return nil
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
		var apiErr *gpt.APIError
		if errors.As(err, &apiErr) {
			p.Logger.Error("description generator reported an error", "file", name, "error", apiErr.Message)
			return err
		}
		p.Logger.Error("error describing image", "file", name, "error", err)
		summary.Failed++
		return nil
	}

	parsed := Parse(text)
	p.logDefaulted(name, parsed)

	row := []string{name, parsed.Title, parsed.Description, strings.Join(parsed.Keywords, ", ")}
	if err := w.Write(row); err != nil {
		p.Logger.Error("error writing csv row", "file", name, "error", err)
		summary.Failed++
		return nil
	}

	p.Logger.Info("image described", "file", name)
	summary.Processed++
	return nil
}
