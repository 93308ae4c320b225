package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces the tool's environment variables, e.g.
// CORELOG_LOGGING_LEVEL=debug.
const envPrefix = "CORELOG"

// Config is the complete tool configuration shared by the aggregator and
// renamer commands.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Aggregate AggregateConfig `yaml:"aggregate" envconfig:"AGGREGATE"`
	Rename    RenameConfig    `yaml:"rename" envconfig:"RENAME"`
}

// LoggingConfig controls log verbosity and destination.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/corelog.log"`
}

// AggregateConfig tunes the aggregation run.
type AggregateConfig struct {
	// Separator splits a session folder name from its part number;
	// XYZ exports use "_part" instead of the default.
	Separator       string   `yaml:"separator" envconfig:"SEPARATOR" default:"-p"`
	FilterMinimum   float64  `yaml:"filter_minimum" envconfig:"FILTER_MINIMUM" default:"-50"`
	FilterColumns   []string `yaml:"filter_columns" envconfig:"FILTER_COLUMNS"`
	DistinctColumns []string `yaml:"distinct_columns" envconfig:"DISTINCT_COLUMNS"`
}

// RenameConfig tunes the core assignment pass. Column indices of -1 locate
// the column by its candidate names.
type RenameConfig struct {
	CoreColumn        string   `yaml:"core_column" envconfig:"CORE_COLUMN" default:"Core ID"`
	DepthColumn       int      `yaml:"depth_column" envconfig:"DEPTH_COLUMN" default:"-1" validate:"gte=-1"`
	SectionColumn     int      `yaml:"section_column" envconfig:"SECTION_COLUMN" default:"-1" validate:"gte=-1"`
	DepthCandidates   []string `yaml:"depth_candidates" envconfig:"DEPTH_CANDIDATES"`
	SectionCandidates []string `yaml:"section_candidates" envconfig:"SECTION_CANDIDATES"`
}

// Load builds the configuration from envconfig defaults, CORELOG_
// environment variables, and finally the YAML file at path when one is
// given and exists.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
