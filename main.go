package main

import (
	"github.com/alecthomas/kong"

	"github.com/lepinkainen/imagetagger/cmd"
	"github.com/lepinkainen/imagetagger/types"
)

var Version = "dev"

type CLI struct {
	Describe cmd.DescribeCmd `cmd:"" default:"withargs" help:"Describe images and write the results into their metadata"`
	Csv      cmd.CsvCmd      `cmd:"" help:"Generate a CSV report of descriptions without modifying images"`
	Filter   cmd.FilterCmd   `cmd:"" help:"Classify a folder's contents without calling the generator"`
	Dupes    cmd.DupesCmd    `cmd:"" help:"Find perceptually similar images"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("imagetagger"),
		kong.Description("Enrich image files with generated titles, descriptions and keywords"),
	)

	appCtx := &types.AppContext{Version: Version}
	err := ctx.Run(appCtx)
	ctx.FatalIfErrorf(err)
}
