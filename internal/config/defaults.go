// Package config provides configuration loading and defaults for curriculumwatch.
package config

// DefaultListen is the default HTTP listen address for the dashboard API.
const DefaultListen = "127.0.0.1:8742"

// DefaultConfigDir is the default location for curriculumwatch configuration.
const DefaultConfigDir = "~/.config/curriculumwatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "curriculumwatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultThresholds holds the out-of-the-box evaluation thresholds.
var DefaultThresholds = Thresholds{
	Target:            80,
	CriticalFloor:     70,
	EmployerMin:       3.5,
	ExamMin:           80,
	ReliabilityMin:    0.70,
	DiscriminationMin: 0.20,
	TrendWindow:       3,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
