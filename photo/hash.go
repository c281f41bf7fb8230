package photo

import (
	"fmt"
	"image"
	"os"

	"github.com/corona10/goimagehash"
)

// SimilarPair is a pair of images whose perceptual hashes fall within the
// similarity threshold (lower distance = more similar).
type SimilarPair struct {
	A        string
	B        string
	Distance int
}

// CalculatePerceptualHash decodes an image and calculates its perceptual hash
func CalculatePerceptualHash(path string) (*goimagehash.ImageHash, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate perceptual hash: %w", err)
	}

	return hash, nil
}

// FindSimilarImages compares all pairs of files and reports the ones within
// the Hamming distance threshold. Files that fail to hash are skipped and
// reported through the returned error list.
func FindSimilarImages(files []string, threshold int) ([]SimilarPair, []error) {
	type fileHash struct {
		file string
		hash *goimagehash.ImageHash
	}

	var hashes []fileHash
	var failures []error

	for _, file := range files {
		hash, err := CalculatePerceptualHash(file)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", file, err))
			continue
		}
		hashes = append(hashes, fileHash{file: file, hash: hash})
	}

	var pairs []SimilarPair
	for i := 0; i < len(hashes); i++ {
		for j := i + 1; j < len(hashes); j++ {
			distance, err := hashes[i].hash.Distance(hashes[j].hash)
			if err != nil {
				failures = append(failures, fmt.Errorf("compare %s and %s: %w", hashes[i].file, hashes[j].file, err))
				continue
			}
			if distance <= threshold {
				pairs = append(pairs, SimilarPair{A: hashes[i].file, B: hashes[j].file, Distance: distance})
			}
		}
	}

	return pairs, failures
}
