package main

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

const version = "1.0.0"

var commands []*cli.Command

func main() {
	app := &cli.App{
		Name:                   "carlos",
		Usage:                  "Check Carlos programs for semantic errors",
		Version:                version,
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log each phase to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			log.SetFlags(0)
			log.SetPrefix("carlos: ")
			if !c.Bool("verbose") {
				log.SetOutput(io.Discard)
			}
			return nil
		},
		Commands: commands,
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}
}
