package cmd

import (
	"context"
	"fmt"

	"github.com/lepinkainen/imagetagger/types"
	"github.com/lepinkainen/imagetagger/ui"
	"github.com/lepinkainen/imagetagger/utils"
)

// CsvCmd generates the description report without touching any image file.
// Non-image files are still moved aside so the report covers real images only.
type CsvCmd struct {
	Config      string `help:"Path to the configuration file" default:"configurations.txt" type:"path"`
	UseCaptions bool   `name:"use-captions" help:"Feed existing IPTC captions to the generator as context"`
	NoBar       bool   `name:"no-bar" help:"Disable the progress bar"`
}

func (cmd *CsvCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("Image Tagger %s", version)))

	cfg, logger, closer, err := loadRuntime(cmd.Config)
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	if cmd.UseCaptions {
		// Caption extraction goes through exiftool even in report mode.
		if err := utils.ValidateExiftoolDependency(); err != nil {
			return err
		}
	}

	pipeline := newPipeline(cfg, logger, cmd.UseCaptions, !cmd.NoBar)

	summary, csvPath, err := pipeline.WriteCSV(context.Background())
	if err != nil {
		return err
	}
	printCSVSummary(summary, csvPath)
	return nil
}
