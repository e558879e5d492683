package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config file lookup.
const (
	EnvConfig         = "JSONDOC_CONFIG"
	DefaultConfigFile = ".jsondoc.yaml"
)

// Config holds settings read from the YAML config file. Flags given on the
// command line override them.
type Config struct {
	DB      string `yaml:"db"`
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"`
}

// LoadConfig reads and parses a config file. Unknown keys are rejected.
// An empty file yields a zero Config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// configPath resolves the config file: --config, then $JSONDOC_CONFIG, then
// DefaultConfigFile if it exists. required reports whether the file was
// named explicitly and so must exist.
func (o *RootOptions) configPath() (path string, required bool) {
	if o.Config != "" {
		return o.Config, true
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, true
	}
	return DefaultConfigFile, false
}

// applyConfig loads the config file and copies its values into every
// option whose flag was not set on the command line.
func (o *RootOptions) applyConfig(cmd *cobra.Command) error {
	path, required := o.configPath()
	if !required {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if cfg.DB != "" && !flags.Changed("db") {
		o.DB = cfg.DB
	}
	if cfg.Format != "" && !flags.Changed("format") {
		o.Format = cfg.Format
	}
	if cfg.Verbose && !flags.Changed("verbose") {
		o.Verbose = true
	}
	return nil
}
