package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/curriculumwatch/curriculumwatch/internal/engine"
)

// Config is the top-level curriculumwatch configuration.
type Config struct {
	Listen     string     `mapstructure:"listen"`
	DBPath     string     `mapstructure:"db_path"`
	Thresholds Thresholds `mapstructure:"thresholds"`
	Output     Output     `mapstructure:"output"`
}

// Thresholds mirrors the evaluation thresholds so deployments can tune
// them without a rebuild.
type Thresholds struct {
	Target            float64 `mapstructure:"target"`
	CriticalFloor     float64 `mapstructure:"critical_floor"`
	EmployerMin       float64 `mapstructure:"employer_min"`
	ExamMin           float64 `mapstructure:"exam_min"`
	ReliabilityMin    float64 `mapstructure:"reliability_min"`
	DiscriminationMin float64 `mapstructure:"discrimination_min"`
	TrendWindow       int     `mapstructure:"trend_window"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// EngineThresholds converts the configured values into the evaluator's
// threshold set.
func (c *Config) EngineThresholds() engine.Thresholds {
	return engine.Thresholds{
		Target:            c.Thresholds.Target,
		CriticalFloor:     c.Thresholds.CriticalFloor,
		EmployerMin:       c.Thresholds.EmployerMin,
		ExamMin:           c.Thresholds.ExamMin,
		ReliabilityMin:    c.Thresholds.ReliabilityMin,
		DiscriminationMin: c.Thresholds.DiscriminationMin,
		TrendWindow:       c.Thresholds.TrendWindow,
	}
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("listen", DefaultListen)
	v.SetDefault("db_path", DBPath())
	v.SetDefault("thresholds.target", DefaultThresholds.Target)
	v.SetDefault("thresholds.critical_floor", DefaultThresholds.CriticalFloor)
	v.SetDefault("thresholds.employer_min", DefaultThresholds.EmployerMin)
	v.SetDefault("thresholds.exam_min", DefaultThresholds.ExamMin)
	v.SetDefault("thresholds.reliability_min", DefaultThresholds.ReliabilityMin)
	v.SetDefault("thresholds.discrimination_min", DefaultThresholds.DiscriminationMin)
	v.SetDefault("thresholds.trend_window", DefaultThresholds.TrendWindow)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.DBPath = expandPath(cfg.DBPath)
	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
