package transcode

const (
	strictWarningsConfigurationKeyConstant = "strict_warnings"
	configurationKeySeparatorConstant      = "."
)

// Configuration captures transcoder behavior toggles sourced from the application configuration.
type Configuration struct {
	StrictWarnings bool `mapstructure:"strict_warnings"`
}

// DefaultConfigurationValues exposes configuration defaults scoped under the provided key.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	return map[string]any{
		configurationKey + configurationKeySeparatorConstant + strictWarningsConfigurationKeyConstant: false,
	}
}
