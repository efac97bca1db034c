package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/processor.log"`
}

// PipelineConfig contains pipeline run configuration
type PipelineConfig struct {
	SchemaFile         string   `yaml:"schema_file" envconfig:"SCHEMA_FILE"`
	NormalizeColumns   []string `yaml:"normalize_columns" envconfig:"NORMALIZE_COLUMNS"`
	StandardizeColumns []string `yaml:"standardize_columns" envconfig:"STANDARDIZE_COLUMNS"`
	// MissingTokens are the cell values ingest treats as missing,
	// in addition to the empty cell
	MissingTokens []string `yaml:"missing_tokens" envconfig:"MISSING_TOKENS" default:"NA,N/A,null,NaN"`
	// ExcelBOM prepends a UTF-8 BOM to CSV exports so Excel opens them correctly
	ExcelBOM bool `yaml:"excel_bom" envconfig:"EXCEL_BOM" default:"true"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR" default:"data/input" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/output" validate:"required"`
}

// Load loads configuration from environment variables and an optional
// config file. Explicit environment variables (PULSE_ prefix) win over
// file values, file values win over built-in defaults.
func Load() (*Config, error) {
	return LoadFromFile(getConfigFilePath())
}

// LoadFromFile loads configuration using the given config file path.
// A missing file is not an error; the file is simply skipped.
func LoadFromFile(configFile string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("PULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = mergeConfigs(*fileCfg, cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for structural problems
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Logging.Output != "stdout" && c.Logging.FilePath == "" {
		return fmt.Errorf("invalid configuration: logging output %q requires a file path", c.Logging.Output)
	}
	return nil
}

// getConfigFilePath returns the config file path, honoring PULSE_CONFIG
func getConfigFilePath() string {
	if path := os.Getenv("PULSE_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}

// loadFromFile reads configuration from a YAML file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges the file config with the env config. Explicitly set
// environment variables override the file; everything the file leaves
// empty falls back to the env side, which carries the built-in defaults.
func mergeConfigs(fileCfg, envCfg Config) Config {
	merged := fileCfg

	overrides := []struct {
		env   string
		apply func()
	}{
		{"PULSE_LOGGING_LEVEL", func() { merged.Logging.Level = envCfg.Logging.Level }},
		{"PULSE_LOGGING_OUTPUT", func() { merged.Logging.Output = envCfg.Logging.Output }},
		{"PULSE_LOGGING_FILE_PATH", func() { merged.Logging.FilePath = envCfg.Logging.FilePath }},
		{"PULSE_PIPELINE_SCHEMA_FILE", func() { merged.Pipeline.SchemaFile = envCfg.Pipeline.SchemaFile }},
		{"PULSE_PIPELINE_NORMALIZE_COLUMNS", func() { merged.Pipeline.NormalizeColumns = envCfg.Pipeline.NormalizeColumns }},
		{"PULSE_PIPELINE_STANDARDIZE_COLUMNS", func() { merged.Pipeline.StandardizeColumns = envCfg.Pipeline.StandardizeColumns }},
		{"PULSE_PIPELINE_MISSING_TOKENS", func() { merged.Pipeline.MissingTokens = envCfg.Pipeline.MissingTokens }},
		{"PULSE_PIPELINE_EXCEL_BOM", func() { merged.Pipeline.ExcelBOM = envCfg.Pipeline.ExcelBOM }},
		{"PULSE_PATHS_INPUT_DIR", func() { merged.Paths.InputDir = envCfg.Paths.InputDir }},
		{"PULSE_PATHS_OUTPUT_DIR", func() { merged.Paths.OutputDir = envCfg.Paths.OutputDir }},
	}
	for _, o := range overrides {
		if _, ok := os.LookupEnv(o.env); ok {
			o.apply()
		}
	}

	if merged.Logging.Level == "" {
		merged.Logging.Level = envCfg.Logging.Level
	}
	if merged.Logging.Output == "" {
		merged.Logging.Output = envCfg.Logging.Output
	}
	if merged.Logging.FilePath == "" {
		merged.Logging.FilePath = envCfg.Logging.FilePath
	}
	if len(merged.Pipeline.MissingTokens) == 0 {
		merged.Pipeline.MissingTokens = envCfg.Pipeline.MissingTokens
	}
	if merged.Paths.InputDir == "" {
		merged.Paths.InputDir = envCfg.Paths.InputDir
	}
	if merged.Paths.OutputDir == "" {
		merged.Paths.OutputDir = envCfg.Paths.OutputDir
	}

	return merged
}
