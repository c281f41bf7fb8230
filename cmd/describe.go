package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/imagetagger/config"
	"github.com/lepinkainen/imagetagger/describe"
	"github.com/lepinkainen/imagetagger/gpt"
	"github.com/lepinkainen/imagetagger/lockguard"
	"github.com/lepinkainen/imagetagger/logging"
	"github.com/lepinkainen/imagetagger/types"
	"github.com/lepinkainen/imagetagger/ui"
	"github.com/lepinkainen/imagetagger/utils"
)

type DescribeCmd struct {
	Config string `help:"Path to the configuration file" default:"configurations.txt" type:"path"`
	Yes    bool   `short:"y" help:"Skip the confirmation screen and write metadata"`
	NoBar  bool   `name:"no-bar" help:"Disable the progress bar"`
}

func (cmd *DescribeCmd) Run(appCtx *types.AppContext) error {
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

	if err := utils.ValidateExiftoolDependency(); err != nil {
		return err
	}
	if err := utils.ValidateLockToolDependency(); err != nil {
		logger.Warn("busy-file release unavailable", "error", err)
	}

	mode := ui.ModeMetadata
	if !cmd.Yes {
		mode, err = confirmRun(cfg)
		if err != nil {
			return err
		}
		if mode == ui.ModeCancelled {
			// Cancelling before the run is a non-zero exit, matching an
			// operator declining the folder confirmation.
			return fmt.Errorf("run cancelled, no files were touched")
		}
	}

	pipeline := newPipeline(cfg, logger, mode == ui.ModeCSVCaptions, !cmd.NoBar)

	switch mode {
	case ui.ModeCSV, ui.ModeCSVCaptions:
		summary, csvPath, err := pipeline.WriteCSV(context.Background())
		if err != nil {
			return err
		}
		printCSVSummary(summary, csvPath)

	default:
		summary, err := pipeline.Run(context.Background())
		if err != nil {
			return err
		}
		printRunSummary(summary)
	}

	return nil
}

// confirmRun shows the pre-run confirmation screen and returns the picked mode.
func confirmRun(cfg *config.Config) (ui.Mode, error) {
	model := ui.NewConfirmModel(ui.RunSettings{
		SourceFolder:      cfg.SourceFolder,
		DestinationFolder: cfg.DestinationFolder,
		Model:             cfg.Model,
		Author:            cfg.AuthorName,
	})

	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return ui.ModeCancelled, fmt.Errorf("confirmation screen: %w", err)
	}
	return final.(ui.ConfirmModel).Choice(), nil
}

// loadRuntime reads the configuration file and builds the run logger from it.
func loadRuntime(path string) (*config.Config, *slog.Logger, io.Closer, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	logger, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, LogFile: cfg.LogFile})
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, closer, nil
}

func newPipeline(cfg *config.Config, logger *slog.Logger, useCaptions, showBar bool) *describe.Pipeline {
	return &describe.Pipeline{
		Generator:   gpt.NewClient(cfg.APIKey, cfg.Model),
		Guard:       lockguard.ForHost(runtime.GOOS, logger),
		Writer:      describe.ExiftoolWriter{},
		Logger:      logger,
		Prompt:      cfg.Prompt,
		Author:      cfg.AuthorName,
		SourceDir:   cfg.SourceFolder,
		DestDir:     cfg.DestinationFolder,
		UseCaptions: useCaptions,
		ShowBar:     showBar,
	}
}

func printRunSummary(summary describe.Summary) {
	fmt.Printf("\n%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ Processed: %d", summary.Processed)))
	if summary.Failed > 0 {
		fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ Failed: %d", summary.Failed)))
	}
	if summary.Quarantined > 0 {
		fmt.Printf("%s\n", ui.WarningStyle.Render(fmt.Sprintf("⚠️  Quarantined: %d", summary.Quarantined)))
	}
	fmt.Printf("%s\n", ui.InfoStyle.Render("Elapsed: "+describe.FormatElapsed(summary.Elapsed)))
}

func printCSVSummary(summary describe.Summary, csvPath string) {
	printRunSummary(summary)
	fmt.Printf("%s\n", ui.InfoStyle.Render("Report written to "+csvPath))
}
