package project

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/vyPal/Carlos/util"
	"gopkg.in/yaml.v3"
)

// FileName is the project file looked up in a project directory.
const FileName = "carlos.yaml"

type CarlosConf struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	Main        string `yaml:"main"`
	Author      string `yaml:"author"`
	License     string `yaml:"license"`
	// Requires constrains the tool version, e.g. "^1.0.0".
	Requires string `yaml:"requires,omitempty"`
}

func (c *CarlosConf) CreateDefault(name string) {
	if name == "." || name == "" {
		name = "NewProject"
	}
	c.Name = name
	c.Description = "A new Carlos project"
	c.Version = "1.0.0"
	c.Main = "src/main.carlos"
	c.Author = "Anonymous"
	c.License = "MIT"
}

// Save writes the config to path. An existing file is only replaced when
// overwrite is set or the user confirms.
func (c *CarlosConf) Save(path string, overwrite bool) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) && !overwrite {
		ok, err := util.PromptYN(path+" already exists. Overwrite?", false)
		if err != nil {
			return errors.Wrap(err, "reading answer")
		}
		if !ok {
			return nil
		}
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}

	if err := os.WriteFile(path, yml, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// CheckVersion reports whether version satisfies Requires.
func (c *CarlosConf) CheckVersion(version string) (bool, error) {
	v, err := util.Parse(version)
	if err != nil {
		return false, errors.Wrapf(err, "parsing version %s", version)
	}
	ok, err := v.Satisfies(c.Requires)
	if err != nil {
		return false, errors.Wrapf(err, "parsing requirement %q", c.Requires)
	}
	return ok, nil
}

// MainPath is the main source file relative to the project directory.
func (c *CarlosConf) MainPath(dir string) string {
	return filepath.Join(dir, filepath.FromSlash(c.Main))
}

func GetCarlosConf(dir string) (CarlosConf, error) {
	var conf CarlosConf

	file, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		return CarlosConf{}, errors.Wrapf(err, "opening %s", FileName)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&conf); err != nil {
		return CarlosConf{}, errors.Wrapf(err, "decoding %s", FileName)
	}

	return conf, nil
}
