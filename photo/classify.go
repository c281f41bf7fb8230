package photo

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

// IsImageFile checks if the given file extension is one of known image file extensions
func IsImageFile(path string) bool {
	var desiredExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".tiff", ".ico", ".svg"}

	ext := filepath.Ext(path)
	ext = strings.ToLower(ext) // handle cases where extension is upper case

	for _, v := range desiredExtensions {
		if v == ext {
			return true
		}
	}
	return false
}

// DetectFormat decodes the image header and reports the container format.
// An error means the file is corrupt, unreadable, or not a format the
// standard decoders recognize.
func DetectFormat(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", err
	}
	return format, nil
}

// ClassifyFile decides how a single file moves through the pipeline.
// Only JPEGs are processable; other recognized image files and files that
// fail inspection stay in place, and non-image extensions are quarantined.
func ClassifyFile(path string) Classification {
	if !IsImageFile(path) {
		return Classification{Kind: KindNotImage}
	}

	format, err := DetectFormat(path)
	if err != nil {
		return Classification{Kind: KindUnsupported, Err: err}
	}
	if format != "jpeg" {
		return Classification{Kind: KindUnsupported, Format: format}
	}
	return Classification{Kind: KindProcessable, Format: format}
}
