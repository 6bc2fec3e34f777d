package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/Carlos/lib/project"
	"github.com/vyPal/Carlos/util"
)

const helloWorld = `// Entry point of the project.
let greeting = "Hello, world!";
print(greeting);
`

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new Carlos project",
		ArgsUsage: "[directory]",
		Category:  "project",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
			&cli.StringFlag{
				Name:  "version",
				Usage: "The version of the project",
			},
			&cli.StringFlag{
				Name:    "main",
				Aliases: []string{"m"},
				Usage:   "The main file of the project",
			},
			&cli.StringFlag{
				Name:    "author",
				Aliases: []string{"a"},
				Usage:   "The author of the project",
			},
			&cli.StringFlag{
				Name:    "license",
				Aliases: []string{"l"},
				Usage:   "The license of the project",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept the default configuration without prompting",
			},
		},
		Action: initProject,
	})
}

func initProject(c *cli.Context) error {
	rootDir := c.Args().First()
	if rootDir == "" {
		rootDir = "."
	}

	if _, err := os.Stat(rootDir); !os.IsNotExist(err) {
		files, err := os.ReadDir(rootDir)
		if err != nil {
			return errors.Wrapf(err, "reading %s", rootDir)
		}

		if len(files) > 0 && !c.Bool("yes") {
			ok, err := util.PromptYN("The directory is not empty, continue?", false)
			if err != nil || !ok {
				return err
			}
		}
	} else {
		if err := os.MkdirAll(rootDir, 0755); err != nil {
			return errors.Wrapf(err, "creating %s", rootDir)
		}
		fmt.Println("Created directory:", rootDir)
	}

	conf, err := configure(c, filepath.Base(rootDir))
	if err != nil {
		return err
	}

	mainPath := conf.MainPath(rootDir)
	if _, err := os.Stat(mainPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(mainPath), 0755); err != nil {
			return errors.Wrapf(err, "creating %s", filepath.Dir(mainPath))
		}
		if err := os.WriteFile(mainPath, []byte(helloWorld), 0644); err != nil {
			return errors.Wrapf(err, "writing %s", mainPath)
		}
		fmt.Println("Created file:", mainPath)
	}

	confPath := filepath.Join(rootDir, project.FileName)
	if err := conf.Save(confPath, c.Bool("yes")); err != nil {
		return err
	}
	fmt.Println("Created file:", confPath)

	fmt.Println("----------------------------------------")
	color.Green("Project initialized successfully!")
	fmt.Println("Run 'cd", rootDir, "&& carlos check' to check the project.")
	fmt.Println("----------------------------------------")

	return nil
}

// configure builds the project config from flags, falling back to prompts
// unless --yes was given.
func configure(c *cli.Context, dirName string) (project.CarlosConf, error) {
	conf := project.CarlosConf{}
	conf.CreateDefault(dirName)
	conf.Requires = "^" + version

	fields := []struct {
		flag   string
		prompt string
		value  *string
	}{
		{"name", "Project name", &conf.Name},
		{"version", "Project version", &conf.Version},
		{"main", "Main file", &conf.Main},
		{"author", "Author", &conf.Author},
		{"license", "License", &conf.License},
	}

	useDefaults := c.Bool("yes")
	if !useDefaults {
		var err error
		useDefaults, err = util.PromptYN("Use default configuration?", false)
		if err != nil {
			return conf, err
		}
	}

	for _, f := range fields {
		if v := c.String(f.flag); v != "" {
			*f.value = v
			continue
		}
		if useDefaults {
			continue
		}
		v, err := util.PromptString(f.prompt, *f.value)
		if err != nil {
			return conf, err
		}
		*f.value = v
	}
	return conf, nil
}
