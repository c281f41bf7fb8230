package photo

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// backupSuffix is the sibling artifact exiftool leaves next to a rewritten
// file unless told otherwise. It is removed on every exit path.
const backupSuffix = "_original"

// VerifyImage checks that the file fully decodes as an image.
// A corrupt source is a per-item failure, not a fatal one.
func VerifyImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, _, err := image.Decode(f); err != nil {
		return fmt.Errorf("image is corrupted or invalid: %w", err)
	}
	return nil
}

// WriteMetadata rewrites the embedded IPTC container of srcPath and places
// the result at dstPath, preserving pixel data byte-for-byte.
//
// The rewrite is staged on a temporary copy in the destination directory;
// dstPath is only ever replaced by a fully written file, so a failure at any
// earlier step leaves the destination untouched. Temporary and backup
// artifacts are removed on every exit path.
func WriteMetadata(srcPath, dstPath string, rec Metadata) (err error) {
	if err := VerifyImage(srcPath); err != nil {
		return err
	}

	temp, err := os.CreateTemp(filepath.Dir(dstPath), ".iptc-*"+filepath.Ext(dstPath))
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tempPath := temp.Name()

	defer func() {
		// Backup and temp cleanup must run whether the write succeeded or not.
		if _, statErr := os.Stat(tempPath + backupSuffix); statErr == nil {
			_ = os.Remove(tempPath + backupSuffix)
		}
		if _, statErr := os.Stat(tempPath); statErr == nil {
			_ = os.Remove(tempPath)
		}
	}()

	src, err := os.Open(srcPath)
	if err != nil {
		_ = temp.Close()
		return fmt.Errorf("open source: %w", err)
	}
	_, err = io.Copy(temp, src)
	_ = src.Close()
	if closeErr := temp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("stage copy: %w", err)
	}

	if err := applyIPTC(tempPath, rec); err != nil {
		return err
	}

	// The single point of irreversible visible change.
	if err := os.Rename(tempPath, dstPath); err != nil {
		return fmt.Errorf("replace destination: %w", err)
	}
	return nil
}

// applyIPTC runs exiftool against the staged copy. An absent or unparseable
// existing container is not an error; exiftool starts an empty one (-m
// downgrades minor container errors).
func applyIPTC(path string, rec Metadata) error {
	args := []string{
		"-m",
		"-IPTC:ObjectName=" + rec.Title,
		"-IPTC:Caption-Abstract=" + rec.Description,
		"-IPTC:By-line=" + rec.Author,
		"-IPTC:Keywords=",
	}
	for _, kw := range rec.Keywords {
		args = append(args, "-IPTC:Keywords+="+kw)
	}
	args = append(args, path)

	cmd := exec.Command("exiftool", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("exiftool write failed: %w\nexiftool output: %s", err, extractFirstLine(string(output)))
	}
	return nil
}

// ReadCaption extracts the existing IPTC caption/abstract from an image,
// or an empty string when the container has none.
func ReadCaption(path string) (string, error) {
	cmd := exec.Command("exiftool", "-j", "-m", "-IPTC:Caption-Abstract", path)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("exiftool read failed: %w", err)
	}

	var records []struct {
		CaptionAbstract string `json:"Caption-Abstract"`
	}
	if err := json.Unmarshal(output, &records); err != nil {
		return "", fmt.Errorf("parse exiftool output: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}
	return records[0].CaptionAbstract, nil
}

// extractFirstLine extracts just the first line from a multi-line string
func extractFirstLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		return strings.TrimSpace(lines[0])
	}
	return "no additional information available"
}
