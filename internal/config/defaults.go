package config

const (
	defaultInputRoot          = "Power Output Data"
	defaultOutputRoot         = "outputs"
	defaultGear3Teeth         = 24
	defaultGear4Teeth         = 48
	defaultWheel2RadiusInches = 5.906
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		InputRoot:          defaultInputRoot,
		OutputRoot:         defaultOutputRoot,
		Gear3Teeth:         defaultGear3Teeth,
		Gear4Teeth:         defaultGear4Teeth,
		Wheel2RadiusInches: defaultWheel2RadiusInches,
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
