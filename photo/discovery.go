package photo

import (
	"os"
	"strings"
)

// ListEntries returns the names of regular, non-hidden files in a directory,
// in directory-enumeration order. Hidden entries (dot-prefixed) and
// subdirectories are skipped.
func ListEntries(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}
