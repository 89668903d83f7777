package main

import (
	"errors"
	"os"

	"github.com/fwojciec/castgraph"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when no --config is given and it exists.
const DefaultConfigFile = "castgraph.yaml"

// DefaultDBPath is the SQLite database used when none is configured.
const DefaultDBPath = "castgraph.db"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// StoreConfig selects and addresses the graph store.
type StoreConfig struct {
	Kind     string `yaml:"store" validate:"required,oneof=sqlite neo4j postgres"`
	DB       string `yaml:"db" validate:"required_if=Kind sqlite"`
	URI      string `yaml:"uri" validate:"required_unless=Kind sqlite"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// Merge fills the fields of c that are empty with the values from other.
func (c *StoreConfig) Merge(other StoreConfig) {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Kind, other.Kind)
	fill(&c.DB, other.DB)
	fill(&c.URI, other.URI)
	fill(&c.User, other.User)
	fill(&c.Password, other.Password)
	fill(&c.Database, other.Database)
}

// Validate returns EINVALID if the configuration cannot address a store.
func (c *StoreConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return castgraph.Errorf(castgraph.EINVALID, "invalid store configuration: %s fails %q", fe.Field(), fe.Tag())
		}
		return castgraph.Errorf(castgraph.EINVALID, "invalid store configuration: %v", err)
	}
	return nil
}

// FileConfig is the layout of the YAML configuration file.
type FileConfig struct {
	StoreConfig `yaml:",inline"`
	Categories  []string `yaml:"categories"`
}

// LoadConfigFile reads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf FileConfig
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, castgraph.Errorf(castgraph.EINVALID, "parsing %s: %v", path, err)
	}
	return &cf, nil
}

// resolveConfig merges the command line with the configuration file and
// applies defaults. An explicitly named file must exist.
func resolveConfig(cli *CLI) (*StoreConfig, []string, error) {
	path := cli.Config
	if path == "" {
		path = DefaultConfigFile
	}

	file, err := LoadConfigFile(path)
	if errors.Is(err, ErrConfigNotFound) && cli.Config == "" {
		file, err = &FileConfig{}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	cfg := cli.StoreConfig()
	cfg.Merge(file.StoreConfig)
	cfg.Merge(StoreConfig{Kind: "sqlite"})
	if cfg.Kind == "sqlite" {
		cfg.Merge(StoreConfig{DB: DefaultDBPath})
	}
	return &cfg, file.Categories, nil
}
