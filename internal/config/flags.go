package config

// Overrides carries CLI flag values that take priority over file and
// default settings. Zero values mean "not set".
type Overrides struct {
	Debug       bool
	LogFile     string
	Tolerance   float64
	ActiveGroup string
	Overwrite   bool
}

// Apply applies flag overrides to the config.
func (c *Config) Apply(o Overrides) {
	if o.Debug {
		c.Logging.Level = "debug"
	}
	if o.LogFile != "" {
		c.Logging.LogFile = o.LogFile
	}
	if o.Tolerance > 0 {
		c.Normalize.Tolerance = o.Tolerance
	}
	if o.ActiveGroup != "" {
		c.Normalize.ActiveGroup = o.ActiveGroup
	}
	if o.Overwrite {
		c.Output.Overwrite = true
	}
}
