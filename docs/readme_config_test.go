package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mateuszpolis/WinCC-Code-Extractor/cmd/cli"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
	expectedSubjectLengthConstant    = 50
	expectedBodyLineLengthConstant   = 72
)

func TestReadmeConfigurationSnippetParses(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	snippetContent := strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])

	var parsedDocument map[string]any
	require.NoError(testInstance, yaml.Unmarshal([]byte(snippetContent), &parsedDocument))

	var applicationConfiguration cli.ApplicationConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &applicationConfiguration})
	require.NoError(testInstance, decoderError)
	require.NoError(testInstance, decoder.Decode(parsedDocument))

	require.Equal(testInstance, expectedSubjectLengthConstant, applicationConfiguration.Tools.Hooks.SubjectLength)
	require.Equal(testInstance, expectedBodyLineLengthConstant, applicationConfiguration.Tools.Hooks.BodyLineLength)
	require.False(testInstance, applicationConfiguration.Tools.Transcode.StrictWarnings)
}
