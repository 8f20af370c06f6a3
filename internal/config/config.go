// Package config handles weighttool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Normalize NormalizeConfig `yaml:"normalize"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// NormalizeConfig holds weight normalization settings.
type NormalizeConfig struct {
	// Tolerance is the absolute tolerance for the per-vertex sum
	// invariant when auditing.
	Tolerance float64 `yaml:"tolerance"`
	// ActiveGroup names the group whose weight is held during
	// normalization. Empty means the mesh's own active group.
	ActiveGroup string `yaml:"active_group"`
}

// OutputConfig holds output file settings.
type OutputConfig struct {
	// Suffix is appended to the input file stem when no explicit
	// output path is given.
	Suffix string `yaml:"suffix"`
	// Overwrite allows writing over an existing output file.
	Overwrite bool `yaml:"overwrite"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Normalize: NormalizeConfig{
			Tolerance: 1e-6,
		},
		Output: OutputConfig{
			Suffix:    "_normalized",
			Overwrite: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
