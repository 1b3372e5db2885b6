package hooks

const (
	subjectLengthConfigurationKeyConstant  = "subject_length"
	bodyLineLengthConfigurationKeyConstant = "body_line_length"
	configurationKeySeparatorConstant      = "."
)

// Configuration captures commit message limits sourced from the application configuration.
type Configuration struct {
	SubjectLength  int `mapstructure:"subject_length"`
	BodyLineLength int `mapstructure:"body_line_length"`
}

// DefaultConfigurationValues exposes configuration defaults scoped under the provided key.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	return map[string]any{
		configurationKey + configurationKeySeparatorConstant + subjectLengthConfigurationKeyConstant:  DefaultSubjectLengthLimitConstant,
		configurationKey + configurationKeySeparatorConstant + bodyLineLengthConfigurationKeyConstant: DefaultBodyLineLengthLimitConstant,
	}
}
