package hooks

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	subjectPatternConstant = `^(feat|fix|refactor|style|docs|test|chore):\s.+`

	// DefaultSubjectLengthLimitConstant bounds the commit subject line.
	DefaultSubjectLengthLimitConstant = 50
	// DefaultBodyLineLengthLimitConstant bounds commit body lines.
	DefaultBodyLineLengthLimitConstant = 72

	commentLinePrefixConstant = "#"

	emptyMessageReasonConstant           = "commit message is empty"
	subjectPatternReasonTemplateConstant = "subject line must match %s"
	subjectLengthReasonTemplateConstant  = "subject line exceeds %d characters"
	bodyLineLengthReasonTemplate         = "body line exceeds %d characters"
	violationErrorTemplateConstant       = "invalid commit message at line %d: %s"
)

var subjectPattern = regexp.MustCompile(subjectPatternConstant)

// CommitMessageViolationError describes why a commit message was rejected.
type CommitMessageViolationError struct {
	LineNumber int
	Reason     string
}

// Error renders the violation with its line number.
func (violationError *CommitMessageViolationError) Error() string {
	return fmt.Sprintf(violationErrorTemplateConstant, violationError.LineNumber, violationError.Reason)
}

// CommitMessagePolicy validates commit messages against subject and body limits.
type CommitMessagePolicy struct {
	SubjectLengthLimit  int
	BodyLineLengthLimit int
}

// NewCommitMessagePolicy constructs a policy, substituting defaults for non-positive limits.
func NewCommitMessagePolicy(subjectLengthLimit int, bodyLineLengthLimit int) CommitMessagePolicy {
	if subjectLengthLimit <= 0 {
		subjectLengthLimit = DefaultSubjectLengthLimitConstant
	}
	if bodyLineLengthLimit <= 0 {
		bodyLineLengthLimit = DefaultBodyLineLengthLimitConstant
	}

	return CommitMessagePolicy{SubjectLengthLimit: subjectLengthLimit, BodyLineLengthLimit: bodyLineLengthLimit}
}

// Validate checks the subject pattern, subject length, and body line lengths.
// Lines starting with # are exempt from the body limit.
func (policy CommitMessagePolicy) Validate(message string) error {
	messageLines := strings.Split(strings.TrimSuffix(message, "\n"), "\n")
	if len(messageLines) == 0 || len(strings.TrimSpace(messageLines[0])) == 0 {
		return &CommitMessageViolationError{LineNumber: 1, Reason: emptyMessageReasonConstant}
	}

	subjectLine := messageLines[0]
	if !subjectPattern.MatchString(subjectLine) {
		return &CommitMessageViolationError{LineNumber: 1, Reason: fmt.Sprintf(subjectPatternReasonTemplateConstant, subjectPatternConstant)}
	}
	if len(subjectLine) > policy.SubjectLengthLimit {
		return &CommitMessageViolationError{LineNumber: 1, Reason: fmt.Sprintf(subjectLengthReasonTemplateConstant, policy.SubjectLengthLimit)}
	}

	for lineIndex := 1; lineIndex < len(messageLines); lineIndex++ {
		bodyLine := messageLines[lineIndex]
		if strings.HasPrefix(bodyLine, commentLinePrefixConstant) {
			continue
		}
		if len(bodyLine) > policy.BodyLineLengthLimit {
			return &CommitMessageViolationError{LineNumber: lineIndex + 1, Reason: fmt.Sprintf(bodyLineLengthReasonTemplate, policy.BodyLineLengthLimit)}
		}
	}

	return nil
}
