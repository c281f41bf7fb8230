package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/lepinkainen/imagetagger/photo"
	"github.com/lepinkainen/imagetagger/types"
	"github.com/lepinkainen/imagetagger/ui"
)

// DupesCmd finds perceptually similar images in a folder. It compares
// perceptual hashes of every image pair and reports the ones that fall
// within the similarity threshold.
type DupesCmd struct {
	Directory string `arg:"" name:"directory" help:"Directory to scan for similar images" type:"existingdir" default:"."`
	Threshold int    `help:"Hamming distance threshold for similarity (0-64)" default:"10"`
}

// Run executes the similarity comparison, reporting any image pair within the
// threshold (lower distance = more similar).
func (cmd *DupesCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("Image Tagger %s", version)))

	names, err := photo.ListEntries(cmd.Directory)
	if err != nil {
		return fmt.Errorf("list directory: %w", err)
	}

	var files []string
	for _, name := range names {
		if photo.IsImageFile(name) {
			files = append(files, filepath.Join(cmd.Directory, name))
		}
	}

	if len(files) < 2 {
		fmt.Printf("%s\n", ui.ErrorStyle.Render("❌ Need at least 2 images to compare"))
		return nil
	}

	fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("Calculating perceptual hashes for %d images...", len(files))))

	pairs, failures := photo.FindSimilarImages(files, cmd.Threshold)
	for _, failure := range failures {
		fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %v", failure)))
	}

	fmt.Printf("\n%s\n", ui.InfoStyle.Render(fmt.Sprintf("Comparing for similarity (threshold: %d):", cmd.Threshold)))

	if len(pairs) == 0 {
		fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ No similar images found within threshold"))
		return nil
	}

	for _, pair := range pairs {
		fmt.Printf("🎯 Similar (distance %d): %s ↔ %s\n", pair.Distance, pair.A, pair.B)
	}
	return nil
}
