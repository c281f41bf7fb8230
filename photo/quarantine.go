package photo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// QuarantineFolder is the holding subdirectory for non-image files.
const QuarantineFolder = "Not_Images"

// Quarantine moves a non-image file into the Not_Images subfolder of baseDir,
// creating it on demand. On a name collision the file gets a numeric
// disambiguator in parentheses before the extension, retried until free.
// Returns the final path of the moved file.
func Quarantine(srcPath, baseDir string) (string, error) {
	holdingDir := filepath.Join(baseDir, QuarantineFolder)
	if err := os.MkdirAll(holdingDir, 0o755); err != nil {
		return "", fmt.Errorf("create %s folder: %w", QuarantineFolder, err)
	}

	name := filepath.Base(srcPath)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	destPath := filepath.Join(holdingDir, name)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(destPath); os.IsNotExist(err) {
			break
		}
		destPath = filepath.Join(holdingDir, fmt.Sprintf("%s_(%d)%s", base, counter, ext))
	}

	if err := moveFile(srcPath, destPath); err != nil {
		return "", fmt.Errorf("move %s to %s: %w", name, holdingDir, err)
	}
	return destPath, nil
}

// moveFile renames src onto dst, falling back to copy-and-remove when the
// paths sit on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
