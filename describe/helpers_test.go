package describe

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/lepinkainen/imagetagger/photo"
)

func writeJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 15), G: uint8(y * 15), B: 90, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatalf("encoding jpeg: %v", err)
	}
}

func writeBytes(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGenerator returns a canned response, or a fixed error.
type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (g *fakeGenerator) Describe(_ context.Context, _ []byte, _, _ string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

// recordingWriter captures metadata writes; it creates the destination file
// so move semantics behave like the real writer's.
type recordingWriter struct {
	calls []writeCall
	err   error
}

type writeCall struct {
	srcPath string
	dstPath string
	rec     photo.Metadata
}

func (w *recordingWriter) Write(srcPath, dstPath string, rec photo.Metadata) error {
	if w.err != nil {
		return w.err
	}
	w.calls = append(w.calls, writeCall{srcPath: srcPath, dstPath: dstPath, rec: rec})
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	return os.WriteFile(dstPath, data, 0o644)
}

// stubGuard records release requests without touching any process.
type stubGuard struct {
	released []string
}

func (g *stubGuard) ReleaseHolders(path string) error {
	g.released = append(g.released, path)
	return nil
}

func newTestPipeline(srcDir, dstDir string, gen Generator, writer MetadataWriter) *Pipeline {
	return &Pipeline{
		Generator: gen,
		Guard:     &stubGuard{},
		Writer:    writer,
		Logger:    discardLogger(),
		Prompt:    "Create title, description, and keywords",
		Author:    "Jane Doe",
		SourceDir: srcDir,
		DestDir:   dstDir,
	}
}

func mkdir(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	return path
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
