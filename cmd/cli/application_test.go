package cli_test

import (
	"bytes"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mateuszpolis/WinCC-Code-Extractor/cmd/cli"
)

const (
	embeddedConfigurationTypeConstant       = "yaml"
	embeddedDefaultLogLevelConstant         = "info"
	embeddedDefaultLogFormatConstant        = "structured"
	embeddedDefaultSubjectLengthConstant    = 50
	embeddedDefaultBodyLineLengthConstant   = 72
	expectedExtractCommandUseConstant       = "extract"
	expectedUpdateCommandUseConstant        = "update"
	expectedExtractDirectoryCommandConstant = "extract-dir"
	expectedUpdateDirectoryCommandConstant  = "update-dir"
	expectedHooksCommandUseConstant         = "hooks"
)

func TestEmbeddedDefaultConfigurationParses(testInstance *testing.T) {
	var parsedDocument map[string]any
	require.NoError(testInstance, yaml.Unmarshal(cli.EmbeddedDefaultConfiguration(), &parsedDocument))
	require.Contains(testInstance, parsedDocument, "common")
	require.Contains(testInstance, parsedDocument, "tools")
}

func TestEmbeddedDefaultConfigurationDecodes(testInstance *testing.T) {
	viperInstance := viper.New()
	viperInstance.SetConfigType(embeddedConfigurationTypeConstant)
	require.NoError(testInstance, viperInstance.ReadConfig(bytes.NewReader(cli.EmbeddedDefaultConfiguration())))

	var applicationConfiguration cli.ApplicationConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &applicationConfiguration})
	require.NoError(testInstance, decoderError)
	require.NoError(testInstance, decoder.Decode(viperInstance.AllSettings()))

	require.Equal(testInstance, embeddedDefaultLogLevelConstant, applicationConfiguration.Common.LogLevel)
	require.Equal(testInstance, embeddedDefaultLogFormatConstant, applicationConfiguration.Common.LogFormat)
	require.False(testInstance, applicationConfiguration.Tools.Transcode.StrictWarnings)
	require.Equal(testInstance, embeddedDefaultSubjectLengthConstant, applicationConfiguration.Tools.Hooks.SubjectLength)
	require.Equal(testInstance, embeddedDefaultBodyLineLengthConstant, applicationConfiguration.Tools.Hooks.BodyLineLength)
}

func TestNewApplicationRegistersCommands(testInstance *testing.T) {
	testCases := []struct {
		name               string
		expectedCommandUse string
	}{
		{name: "ExtractCommand", expectedCommandUse: expectedExtractCommandUseConstant},
		{name: "UpdateCommand", expectedCommandUse: expectedUpdateCommandUseConstant},
		{name: "ExtractDirectoryCommand", expectedCommandUse: expectedExtractDirectoryCommandConstant},
		{name: "UpdateDirectoryCommand", expectedCommandUse: expectedUpdateDirectoryCommandConstant},
		{name: "HooksCommand", expectedCommandUse: expectedHooksCommandUseConstant},
	}

	application := cli.NewApplication()

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			registeredCommand, _, lookupError := application.RootCommand().Find([]string{testCase.expectedCommandUse})
			require.NoError(subtest, lookupError)
			require.Equal(subtest, testCase.expectedCommandUse, registeredCommand.Name())
		})
	}
}
