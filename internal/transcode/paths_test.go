package transcode_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mateuszpolis/WinCC-Code-Extractor/internal/transcode"
)

const testSubtestNameTemplateConstant = "%d_%s"

func TestCompanionPathResolverCTLCompanionPath(testInstance *testing.T) {
	testCases := []struct {
		name         string
		xmlPath      string
		expectedPath string
	}{
		{
			name:         "xml_segment_substituted",
			xmlPath:      "project/xml/forms/a.xml",
			expectedPath: "project/ctl/forms/a.ctl",
		},
		{
			name:         "bare_file_placed_under_sibling_directory",
			xmlPath:      "a.xml",
			expectedPath: "ctl/a.ctl",
		},
		{
			name:         "nested_file_without_xml_segment",
			xmlPath:      "forms/main/a.xml",
			expectedPath: "forms/main/ctl/a.ctl",
		},
		{
			name:         "absolute_path_with_xml_segment",
			xmlPath:      "/data/panels/xml/p.xml",
			expectedPath: "/data/panels/ctl/p.ctl",
		},
		{
			name:         "only_first_xml_segment_substituted",
			xmlPath:      "xml/nested/xml/a.xml",
			expectedPath: "ctl/nested/xml/a.ctl",
		},
		{
			name:         "file_name_is_not_a_segment",
			xmlPath:      "panels/xml.xml",
			expectedPath: "panels/ctl/xml.ctl",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			resolvedPath := transcode.CompanionPathResolver{}.CTLCompanionPath(testCase.xmlPath)
			require.Equal(testInstance, testCase.expectedPath, resolvedPath)
		})
	}
}

func TestCompanionPathResolverXMLCompanionPath(testInstance *testing.T) {
	testCases := []struct {
		name         string
		ctlPath      string
		expectedPath string
	}{
		{
			name:         "ctl_segment_substituted",
			ctlPath:      "project/ctl/forms/a.ctl",
			expectedPath: "project/xml/forms/a.xml",
		},
		{
			name:         "bare_file_placed_under_sibling_directory",
			ctlPath:      "a.ctl",
			expectedPath: "xml/a.xml",
		},
		{
			name:         "sibling_directory_round_trip",
			ctlPath:      "ctl/a.ctl",
			expectedPath: "xml/a.xml",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			resolvedPath := transcode.CompanionPathResolver{}.XMLCompanionPath(testCase.ctlPath)
			require.Equal(testInstance, testCase.expectedPath, resolvedPath)
		})
	}
}
