package hooks_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mateuszpolis/WinCC-Code-Extractor/internal/hooks"
)

func TestValidateBranchName(testInstance *testing.T) {
	testCases := []struct {
		name        string
		branchName  string
		expectError bool
	}{
		{name: "feature_branch", branchName: "feature/panel-extraction"},
		{name: "bugfix_branch", branchName: "bugfix/ctl-parser-line-numbers"},
		{name: "hotfix_branch", branchName: "hotfix/cdata-terminator"},
		{name: "release_branch", branchName: "release/1-4-0"},
		{name: "docs_branch", branchName: "docs/readme"},
		{name: "missing_prefix", branchName: "panel-extraction", expectError: true},
		{name: "unknown_prefix", branchName: "chore/cleanup", expectError: true},
		{name: "uppercase_rejected", branchName: "feature/Panel", expectError: true},
		{name: "underscore_rejected", branchName: "feature/panel_extraction", expectError: true},
		{name: "empty_suffix", branchName: "feature/", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			validationError := hooks.ValidateBranchName(testCase.branchName)

			if testCase.expectError {
				require.Error(testInstance, validationError)
				var violationError *hooks.BranchNameViolationError
				require.ErrorAs(testInstance, validationError, &violationError)
				require.Equal(testInstance, testCase.branchName, violationError.BranchName)
				return
			}

			require.NoError(testInstance, validationError)
		})
	}
}
