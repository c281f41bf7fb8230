package photo

import (
	"path/filepath"
	"testing"
)

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		// Valid image files
		{"JPG lowercase", "test.jpg", true},
		{"JPG uppercase", "test.JPG", true},
		{"JPEG", "test.jpeg", true},
		{"PNG", "test.png", true},
		{"GIF", "test.gif", true},
		{"BMP", "test.bmp", true},
		{"WebP", "test.webp", true},
		{"TIFF", "test.tiff", true},
		{"ICO", "test.ico", true},
		{"SVG", "test.svg", true},

		// With full path
		{"Full path JPG", "/path/to/photo.jpg", true},
		{"Relative path", "./photos/test.png", true},

		// Invalid files
		{"No extension", "test", false},
		{"Text file", "test.txt", false},
		{"Video file", "test.mp4", false},
		{"Audio file", "test.mp3", false},
		{"Document", "test.pdf", false},
		{"Empty string", "", false},

		// Edge cases
		{"Multiple dots", "test.photo.jpg", true},
		{"Hidden file", ".hidden.jpg", true},
		{"Space in name", "test file.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsImageFile(tt.path)
			if result != tt.expected {
				t.Errorf("IsImageFile(%q) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()

	jpegPath := filepath.Join(dir, "valid.jpg")
	writeJPEG(t, jpegPath, 8, 8)

	pngPath := filepath.Join(dir, "valid.png")
	writePNG(t, pngPath, 8, 8)

	corruptPath := filepath.Join(dir, "corrupt.jpg")
	writeBytes(t, corruptPath, []byte("definitely not a jpeg"))

	format, err := DetectFormat(jpegPath)
	if err != nil {
		t.Fatalf("DetectFormat(jpeg) error = %v", err)
	}
	if format != "jpeg" {
		t.Errorf("DetectFormat(jpeg) = %q, expected \"jpeg\"", format)
	}

	format, err = DetectFormat(pngPath)
	if err != nil {
		t.Fatalf("DetectFormat(png) error = %v", err)
	}
	if format != "png" {
		t.Errorf("DetectFormat(png) = %q, expected \"png\"", format)
	}

	if _, err := DetectFormat(corruptPath); err == nil {
		t.Error("DetectFormat(corrupt) expected error, got nil")
	}

	if _, err := DetectFormat(filepath.Join(dir, "missing.jpg")); err == nil {
		t.Error("DetectFormat(missing) expected error, got nil")
	}
}

func TestClassifyFile(t *testing.T) {
	dir := t.TempDir()

	jpegPath := filepath.Join(dir, "photo.jpg")
	writeJPEG(t, jpegPath, 8, 8)

	pngPath := filepath.Join(dir, "icon.png")
	writePNG(t, pngPath, 8, 8)

	corruptPath := filepath.Join(dir, "broken.jpg")
	writeBytes(t, corruptPath, []byte{0xFF, 0xD8, 0x00})

	textPath := filepath.Join(dir, "notes.txt")
	writeBytes(t, textPath, []byte("hello"))

	tests := []struct {
		name     string
		path     string
		expected Kind
		wantErr  bool
	}{
		{"Valid JPEG is processable", jpegPath, KindProcessable, false},
		{"PNG is unsupported", pngPath, KindUnsupported, false},
		{"Corrupt JPEG is unsupported with error", corruptPath, KindUnsupported, true},
		{"Text file is not an image", textPath, KindNotImage, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ClassifyFile(tt.path)
			if c.Kind != tt.expected {
				t.Errorf("ClassifyFile(%q).Kind = %v, expected %v", tt.path, c.Kind, tt.expected)
			}
			if (c.Err != nil) != tt.wantErr {
				t.Errorf("ClassifyFile(%q).Err = %v, wantErr %v", tt.path, c.Err, tt.wantErr)
			}
		})
	}
}
