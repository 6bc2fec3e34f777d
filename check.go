package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/Carlos/lib/analyzer"
	"github.com/vyPal/Carlos/lib/ast"
	"github.com/vyPal/Carlos/lib/parser"
	"github.com/vyPal/Carlos/lib/project"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "check",
		Usage:     "Analyze a Carlos file",
		ArgsUsage: "[file]",
		Category:  "analyze",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "The path to the project file. ",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:    "input-str",
				Aliases: []string{"s"},
				Usage:   "Check a string instead of a file",
			},
			&cli.BoolFlag{
				Name:    "dump-ast",
				Aliases: []string{"d"},
				Usage:   "Dump the analyzed program graph to stdout as JSON",
			},
			&cli.BoolFlag{
				Name:    "only-parse",
				Aliases: []string{"p"},
				Usage:   "Only parse the input and dump the unresolved tree to stdout",
			},
			&cli.BoolFlag{
				Name: "ebnf",
				Usage: "Print the EBNF grammar for Carlos. " +
					"Useful for debugging the parser.",
			},
		},
		Action: check,
	})
}

func check(c *cli.Context) error {
	if c.Bool("ebnf") {
		fmt.Println(parser.Parser().String())
		return nil
	}

	prog, err := parseInput(c)
	if err != nil {
		return err
	}

	if c.Bool("only-parse") {
		return dumpJSON(prog)
	}

	log.Println("analyzing")
	analyzed, err := analyzer.Analyze(prog)
	if err != nil {
		return exitError(err)
	}

	if c.Bool("dump-ast") {
		return dumpJSON(analyzed)
	}

	color.Green("No errors found")
	return nil
}

// parseInput reads the program from --input-str, the file argument or the
// main file of the project in the current directory, in that order.
func parseInput(c *cli.Context) (*ast.Program, error) {
	if src := c.String("input-str"); src != "" {
		log.Println("parsing input string")
		prog, err := parser.ParseString("<input>", src)
		if err != nil {
			return nil, exitError(err)
		}
		return prog, nil
	}

	f := c.Args().First()
	if f == "" {
		var err error
		f, err = projectMain(c.String("config"))
		if err != nil {
			return nil, cli.Exit(color.RedString("Error: No file specified and %s", err), 1)
		}
	}

	log.Printf("parsing %s", f)
	prog, err := parser.ParseFile(f)
	if err != nil {
		return nil, exitError(err)
	}
	return prog, nil
}

// projectMain loads the project file and returns the path of its main
// source. A failed version requirement is only a warning.
func projectMain(confPath string) (string, error) {
	dir := "."
	if confPath != "" {
		dir = filepath.Dir(confPath)
	}

	conf, err := project.GetCarlosConf(dir)
	if err != nil {
		return "", err
	}
	log.Printf("loaded project %s", conf.Name)

	ok, err := conf.CheckVersion(version)
	if err != nil {
		color.Yellow("Warning: %s", err)
	} else if !ok {
		color.Yellow("Warning: project requires carlos %s, this is %s", conf.Requires, version)
	}
	return conf.MainPath(dir), nil
}

func dumpJSON(prog *ast.Program) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ast.Dump(prog))
}
