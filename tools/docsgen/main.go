package main

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"
)

type Manifest struct {
	Subcommands []Subcommand `yaml:"subcommands"`
	Common      Common       `yaml:"common"`
}

type Common struct {
	Flags []Flag `yaml:"flags"`
}

type Subcommand struct {
	ID          string    `yaml:"id"`
	Short       string    `yaml:"short"`
	Description string    `yaml:"description"`
	Usage       string    `yaml:"usage"`
	Flags       []Flag    `yaml:"flags"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string `yaml:"id"`
	Syntax      string `yaml:"syntax"`
	Description string `yaml:"description"`
	Default     string `yaml:"default,omitempty"`
	More        string `yaml:"more,omitempty"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
}

type Output struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

func main() {

	docs := os.Args[1]

	data, err := os.ReadFile(docs + "/templates/stkctl.yaml")
	if err != nil {
		panic(err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		panic(err)
	}

	outputs := []Output{
		{Template: docs + "/templates/stkctl.md.tmpl", Folder: docs + "/commands/", Suffix: ".md"},
		{Template: docs + "/templates/stkctl.man.tmpl", Folder: docs + "/man/share/man1/", Prefix: "stkctl-", Suffix: ".1"},
	}

	for _, sub := range manifest.Subcommands {
		// Common flags apply to every subcommand. Merge into a fresh
		// slice so one subcommand's flags never leak into the next.
		merged := make([]Flag, 0, len(manifest.Common.Flags)+len(sub.Flags))
		merged = append(merged, manifest.Common.Flags...)
		merged = append(merged, sub.Flags...)

		sort.Slice(merged, func(i, j int) bool {
			return merged[i].ID < merged[j].ID
		})
		sub.Flags = merged

		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    getVersion(),
		}

		for _, out := range outputs {
			if err := os.MkdirAll(out.Folder, 0755); err != nil {
				panic(err)
			}

			target := out.Folder + out.Prefix + sub.ID + out.Suffix
			fmt.Println("Generating", target)

			tmpl, err := template.ParseFiles(out.Template)
			if err != nil {
				panic(err)
			}

			file, err := os.Create(target)
			if err != nil {
				panic(err)
			}

			if err := tmpl.Execute(file, metadata); err != nil {
				panic(err)
			}

			file.Close()
		}
	}
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
