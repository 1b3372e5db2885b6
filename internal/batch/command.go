package batch

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mateuszpolis/WinCC-Code-Extractor/internal/transcode"
)

const (
	extractDirCommandUseConstant              = "extract-dir <directory>"
	extractDirCommandShortDescriptionConstant = "Extract scripts from every panel XML file under a directory"
	extractDirCommandLongDescriptionConstant  = "extract-dir walks a directory tree and writes a companion CTL file for every panel XML file, reporting per-file outcomes."
	updateDirCommandUseConstant               = "update-dir <directory>"
	updateDirCommandShortDescriptionConstant  = "Update every panel XML file from its CTL file under a directory"
	updateDirCommandLongDescriptionConstant   = "update-dir walks a directory tree and rewrites every panel XML file from its companion CTL file, reporting per-file outcomes."

	flagStrictNameConstant        = "strict"
	flagStrictDescriptionConstant = "Treat reconciliation mismatch warnings as failures"

	batchFailureTemplateConstant = "%d of %d files failed"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the transcoder configuration resolved by the application.
type ConfigurationProvider func() transcode.Configuration

// ExtractDirCommandBuilder assembles the Cobra command for directory extraction.
type ExtractDirCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the extract-dir command.
func (builder *ExtractDirCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   extractDirCommandUseConstant,
		Short: extractDirCommandShortDescriptionConstant,
		Long:  extractDirCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			runner := buildRunner(command, builder.LoggerProvider, builder.ConfigurationProvider)
			summary, runError := runner.RunExtract(arguments[0])
			return finalizeRun(summary, runError)
		},
	}

	command.Flags().Bool(flagStrictNameConstant, false, flagStrictDescriptionConstant)

	return command, nil
}

// UpdateDirCommandBuilder assembles the Cobra command for directory updates.
type UpdateDirCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the update-dir command.
func (builder *UpdateDirCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   updateDirCommandUseConstant,
		Short: updateDirCommandShortDescriptionConstant,
		Long:  updateDirCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			runner := buildRunner(command, builder.LoggerProvider, builder.ConfigurationProvider)
			summary, runError := runner.RunUpdate(arguments[0])
			return finalizeRun(summary, runError)
		},
	}

	command.Flags().Bool(flagStrictNameConstant, false, flagStrictDescriptionConstant)

	return command, nil
}

func buildRunner(command *cobra.Command, loggerProvider LoggerProvider, configurationProvider ConfigurationProvider) *Runner {
	logger := resolveLogger(loggerProvider)

	var configuration transcode.Configuration
	if configurationProvider != nil {
		configuration = configurationProvider()
	}
	if command != nil && command.Flags().Changed(flagStrictNameConstant) {
		strictValue, _ := command.Flags().GetBool(flagStrictNameConstant)
		configuration.StrictWarnings = strictValue
	}

	transcodeService := transcode.NewService(logger, configuration)
	reporter := NewWriterReporter(command.OutOrStdout())

	return NewRunner(logger, transcodeService, reporter)
}

func finalizeRun(summary Summary, runError error) error {
	if runError != nil {
		return runError
	}
	if summary.Failed > 0 {
		return fmt.Errorf(batchFailureTemplateConstant, summary.Failed, len(summary.Outcomes))
	}
	return nil
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}

	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}
