package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	conf := CarlosConf{}
	conf.CreateDefault("demo")
	conf.Requires = "^1.0.0"

	if err := conf.Save(filepath.Join(dir, FileName), true); err != nil {
		t.Fatal(err)
	}

	loaded, err := GetCarlosConf(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(loaded, conf); diff != nil {
		t.Error(diff)
	}
	if loaded.MainPath(dir) != filepath.Join(dir, "src", "main.carlos") {
		t.Errorf("unexpected main path %s", loaded.MainPath(dir))
	}
}

func TestCreateDefaultName(t *testing.T) {
	conf := CarlosConf{}
	conf.CreateDefault(".")
	if conf.Name != "NewProject" {
		t.Errorf("expected NewProject, got %s", conf.Name)
	}
}

func TestGetCarlosConfErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := GetCarlosConf(dir); err == nil || !strings.Contains(err.Error(), "opening carlos.yaml") {
		t.Errorf("expected an open error, got %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("name: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := GetCarlosConf(dir); err == nil || !strings.Contains(err.Error(), "decoding carlos.yaml") {
		t.Errorf("expected a decode error, got %v", err)
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		requires string
		version  string
		ok       bool
	}{
		{"", "1.0.0", true},
		{"^1.0.0", "1.4.2", true},
		{"^1.2.0", "1.1.9", false},
		{"^1.0.0", "2.0.0", false},
		{"~1.2.0", "1.2.7", true},
		{"~1.2.0", "1.3.0", false},
		{">=1.0.0", "1.0.0", true},
		{"<1.0.0", "1.0.0", false},
	}

	for _, tt := range tests {
		conf := CarlosConf{Requires: tt.requires}
		ok, err := conf.CheckVersion(tt.version)
		if err != nil {
			t.Errorf("%s against %s: %v", tt.version, tt.requires, err)
			continue
		}
		if ok != tt.ok {
			t.Errorf("%s against %s: expected %v", tt.version, tt.requires, tt.ok)
		}
	}

	conf := CarlosConf{Requires: "^one"}
	if _, err := conf.CheckVersion("1.0.0"); err == nil {
		t.Error("expected an error for a malformed requirement")
	}
}
