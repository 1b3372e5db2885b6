package hooks

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	hooksCommandUseConstant              = "hooks"
	hooksCommandShortDescriptionConstant = "Git lint hooks for commit messages and branch names"
	hooksCommandLongDescriptionConstant  = "hooks groups the repository lint checks wired into git: commit message validation and branch name validation."

	commitMessageCommandUseConstant              = "commit-message [message-file]"
	commitMessageCommandShortDescriptionConstant = "Validate a commit message from a file or standard input"
	branchNameCommandUseConstant                 = "branch-name <name>"
	branchNameCommandShortDescriptionConstant    = "Validate a branch name against the naming convention"

	messageFileReadErrorTemplateConstant = "failed to read commit message file %s: %w"
	standardInputReadErrorTemplateConst  = "failed to read commit message from standard input: %w"
	commitMessageAcceptedMessageConstant = "commit message accepted"
	branchNameAcceptedMessageConstant    = "branch name accepted"
	logFieldBranchNameConstant           = "branch_name"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the hook configuration resolved by the application.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the hooks command group.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the hooks command group with its lint subcommands.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	hooksCommand := &cobra.Command{
		Use:   hooksCommandUseConstant,
		Short: hooksCommandShortDescriptionConstant,
		Long:  hooksCommandLongDescriptionConstant,
	}

	hooksCommand.AddCommand(builder.buildCommitMessageCommand())
	hooksCommand.AddCommand(builder.buildBranchNameCommand())

	return hooksCommand, nil
}

func (builder *CommandBuilder) buildCommitMessageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   commitMessageCommandUseConstant,
		Short: commitMessageCommandShortDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			message, messageError := readCommitMessage(command, arguments)
			if messageError != nil {
				return messageError
			}

			policy := builder.resolvePolicy()
			if validationError := policy.Validate(message); validationError != nil {
				return validationError
			}

			builder.resolveLogger().Debug(commitMessageAcceptedMessageConstant)
			return nil
		},
	}
}

func (builder *CommandBuilder) buildBranchNameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   branchNameCommandUseConstant,
		Short: branchNameCommandShortDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			if validationError := ValidateBranchName(arguments[0]); validationError != nil {
				return validationError
			}

			builder.resolveLogger().Debug(branchNameAcceptedMessageConstant, zap.String(logFieldBranchNameConstant, arguments[0]))
			return nil
		},
	}
}

func (builder *CommandBuilder) resolvePolicy() CommitMessagePolicy {
	var configuration Configuration
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return NewCommitMessagePolicy(configuration.SubjectLength, configuration.BodyLineLength)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func readCommitMessage(command *cobra.Command, arguments []string) (string, error) {
	if len(arguments) == 1 {
		messageContent, readError := os.ReadFile(arguments[0])
		if readError != nil {
			return "", fmt.Errorf(messageFileReadErrorTemplateConstant, arguments[0], readError)
		}
		return string(messageContent), nil
	}

	messageContent, readError := io.ReadAll(command.InOrStdin())
	if readError != nil {
		return "", fmt.Errorf(standardInputReadErrorTemplateConst, readError)
	}
	return string(messageContent), nil
}
