package cmd

import (
	"fmt"

	"sheet2sql/internal/engine"

	"github.com/spf13/viper"
)

type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	SQL      SQLConfig      `mapstructure:"sql"`
	Template TemplateConfig `mapstructure:"template"`
	Progress bool           `mapstructure:"progress"`
}

type InputConfig struct {
	Folder    string `mapstructure:"folder"`
	Recursive bool   `mapstructure:"recursive"`
	Workbooks bool   `mapstructure:"workbooks"`
}

type OutputConfig struct {
	Root    string `mapstructure:"root"`
	Schema  string `mapstructure:"schema"`
	Dialect string `mapstructure:"dialect"`
}

type SQLConfig struct {
	Statistics       bool   `mapstructure:"statistics"`
	StatisticsTarget int    `mapstructure:"statistics_target"`
	Owner            bool   `mapstructure:"owner"`
	OwnerRole        string `mapstructure:"owner_role"`
}

type TemplateConfig struct {
	Shared string `mapstructure:"shared"`
}

func init() {
	SetDefaults(viper.GetViper())
}

// SetDefaults registers the default value of every config key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input.folder", "./db/")
	v.SetDefault("input.recursive", true)
	v.SetDefault("input.workbooks", true)
	v.SetDefault("output.root", "")
	v.SetDefault("output.schema", "public")
	v.SetDefault("output.dialect", "postgres")
	v.SetDefault("sql.statistics", false)
	v.SetDefault("sql.statistics_target", 0)
	v.SetDefault("sql.owner", false)
	v.SetDefault("sql.owner_role", "postgres")
	v.SetDefault("template.shared", "")
	v.SetDefault("progress", false)
}

// LoadConfig returns the effective configuration (flag > env > file > default).
func LoadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Input.Folder == "" {
		return nil, fmt.Errorf("input.folder cannot be empty")
	}
	if cfg.SQL.Owner && cfg.SQL.OwnerRole == "" {
		return nil, fmt.Errorf("sql.owner_role is required when sql.owner is set")
	}
	return &cfg, nil
}

// EmitterConfig maps the config onto the emitter's settings.
func (c *Config) EmitterConfig() engine.EmitterConfig {
	return engine.EmitterConfig{
		OutputRoot:     c.Output.Root,
		SharedTemplate: c.Template.Shared,
		Render: engine.RenderOptions{
			Statistics:       c.SQL.Statistics,
			StatisticsTarget: c.SQL.StatisticsTarget,
			Owner:            c.SQL.Owner,
			OwnerRole:        c.SQL.OwnerRole,
		},
	}
}

func (c *Config) RunnerConfig() engine.RunnerConfig {
	return engine.RunnerConfig{
		Recursive: c.Input.Recursive,
		Workbooks: c.Input.Workbooks,
	}
}
