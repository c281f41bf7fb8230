package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/lepinkainen/imagetagger/photo"
	"github.com/lepinkainen/imagetagger/types"
	"github.com/lepinkainen/imagetagger/ui"
)

// FilterCmd classifies a folder's contents without calling the generator.
// By default it only reports; with --quarantine it also moves non-image
// files into the quarantine folder.
type FilterCmd struct {
	Directory  string `arg:"" name:"directory" help:"Directory to classify" type:"existingdir" default:"."`
	Quarantine bool   `help:"Move non-image files into the quarantine folder"`
}

func (cmd *FilterCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("Image Tagger %s", version)))
	fmt.Printf("Classifying %s...\n\n", cmd.Directory)

	names, err := photo.ListEntries(cmd.Directory)
	if err != nil {
		return fmt.Errorf("list directory: %w", err)
	}

	var accepted, unsupported, notImages int
	for _, name := range names {
		path := filepath.Join(cmd.Directory, name)
		class := photo.ClassifyFile(path)

		switch class.Kind {
		case photo.KindProcessable:
			fmt.Printf("%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ %s", name)))
			accepted++

		case photo.KindUnsupported:
			if class.Err != nil {
				fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %s (unreadable: %v)", name, class.Err)))
			} else {
				fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %s (unsupported format: %s)", name, class.Format)))
			}
			unsupported++

		case photo.KindNotImage:
			notImages++
			if !cmd.Quarantine {
				fmt.Printf("%s\n", ui.WarningStyle.Render(fmt.Sprintf("⚠️  %s (not an image)", name)))
				continue
			}
			moved, err := photo.Quarantine(path, cmd.Directory)
			if err != nil {
				fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %s (move failed: %v)", name, err)))
				continue
			}
			fmt.Printf("%s\n", ui.WarningStyle.Render(fmt.Sprintf("⚠️  %s → %s", name, moved)))
		}
	}

	fmt.Printf("\n%s\n", ui.InfoStyle.Render(fmt.Sprintf(
		"✅ Accepted: %d, ❌ Unsupported: %d, ⚠️  Not images: %d", accepted, unsupported, notImages)))
	return nil
}
