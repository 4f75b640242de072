// Package config loads the optional per-project configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".src-context.yaml"

// Config mirrors the generate flags that make sense to persist per project.
// Flags given on the command line take precedence over these values.
type Config struct {
	Ignore           []string `yaml:"ignore"`
	IgnoreFile       string   `yaml:"ignore-file"`
	MinifyFile       string   `yaml:"minify-file"`
	PriorityFile     string   `yaml:"priority-file"`
	RemoveWhitespace bool     `yaml:"remove-whitespace"`
	KeepComments     bool     `yaml:"keep-comments"`
	TokenBudget      int      `yaml:"token-budget"`
	MaxFileKB        int      `yaml:"max-file-kb"`
	NoDefaultIgnores bool     `yaml:"no-default-ignores"`
	Output           string   `yaml:"output"`
	Clipboard        bool     `yaml:"clipboard"`
}

// Load reads the configuration file from dir. A missing file yields an
// empty config; a file that exists but fails to parse is an error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return &cfg, nil
}
