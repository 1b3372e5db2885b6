package hooks

import (
	"fmt"
	"regexp"
)

const (
	branchNamePatternConstant           = `^(feature|bugfix|hotfix|release|docs)/[a-z0-9-]+$`
	branchNameViolationTemplateConstant = "invalid branch name %q: must match %s"
)

var branchNamePattern = regexp.MustCompile(branchNamePatternConstant)

// BranchNameViolationError describes why a branch name was rejected.
type BranchNameViolationError struct {
	BranchName string
}

// Error names the rejected branch and the expected pattern.
func (violationError *BranchNameViolationError) Error() string {
	return fmt.Sprintf(branchNameViolationTemplateConstant, violationError.BranchName, branchNamePatternConstant)
}

// ValidateBranchName checks a branch name against the required naming pattern.
func ValidateBranchName(branchName string) error {
	if !branchNamePattern.MatchString(branchName) {
		return &BranchNameViolationError{BranchName: branchName}
	}
	return nil
}
