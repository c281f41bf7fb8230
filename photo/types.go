package photo

// Kind is the classification verdict for a single directory entry.
type Kind int

const (
	// KindProcessable decodes as a JPEG, the one format whose metadata
	// container the writer can rewrite.
	KindProcessable Kind = iota
	// KindUnsupported has an image extension but is either a format the
	// writer cannot rewrite or fails deep inspection entirely.
	KindUnsupported
	// KindNotImage does not have an image extension at all.
	KindNotImage
)

// Classification is the result of inspecting one file.
type Classification struct {
	Kind   Kind
	Format string // "jpeg", "png", ... when the file decoded
	Err    error  // inspection failure, set only for KindUnsupported
}

// Metadata carries the embedded-container fields rewritten into an image.
type Metadata struct {
	Title       string
	Description string
	Keywords    []string
	Author      string
}
