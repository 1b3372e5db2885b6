package transcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	extractCommandUseConstant              = "extract <panel.xml>"
	extractCommandShortDescriptionConstant = "Extract embedded scripts from a panel XML file into a CTL file"
	extractCommandLongDescriptionConstant  = "extract reads a WinCC panel XML file and writes every embedded script body into a companion CTL file for flat-text editing."
	updateCommandUseConstant               = "update <scripts.ctl>"
	updateCommandShortDescriptionConstant  = "Update a panel XML file from an edited CTL file"
	updateCommandLongDescriptionConstant   = "update parses an edited CTL file and rewrites the matching script bodies inside the companion panel XML file."

	flagStrictNameConstant        = "strict"
	flagStrictDescriptionConstant = "Treat reconciliation mismatch warnings as failures"

	extractArgumentExtensionMessageConstant = "extract expects a path ending in .xml"
	updateArgumentExtensionMessageConstant  = "update expects a path ending in .ctl"
	extractExecutionErrorTemplateConstant   = "extraction failed: %w"
	updateExecutionErrorTemplateConstant    = "update failed: %w"
)

var (
	errExtractArgumentExtension = errors.New(extractArgumentExtensionMessageConstant)
	errUpdateArgumentExtension  = errors.New(updateArgumentExtensionMessageConstant)
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the transcoder configuration resolved by the application.
type ConfigurationProvider func() Configuration

// ExtractCommandBuilder assembles the Cobra command for single-file extraction.
type ExtractCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the extract command.
func (builder *ExtractCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   extractCommandUseConstant,
		Short: extractCommandShortDescriptionConstant,
		Long:  extractCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().Bool(flagStrictNameConstant, false, flagStrictDescriptionConstant)

	return command, nil
}

func (builder *ExtractCommandBuilder) run(command *cobra.Command, arguments []string) error {
	xmlPath := arguments[0]
	if !strings.HasSuffix(xmlPath, XMLFileExtensionConstant) {
		return errExtractArgumentExtension
	}

	service := NewService(resolveLogger(builder.LoggerProvider), resolveConfiguration(command, builder.ConfigurationProvider))
	if _, extractError := service.ExtractFile(xmlPath); extractError != nil {
		return fmt.Errorf(extractExecutionErrorTemplateConstant, extractError)
	}

	return nil
}

// UpdateCommandBuilder assembles the Cobra command for single-file updates.
type UpdateCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the update command.
func (builder *UpdateCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   updateCommandUseConstant,
		Short: updateCommandShortDescriptionConstant,
		Long:  updateCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().Bool(flagStrictNameConstant, false, flagStrictDescriptionConstant)

	return command, nil
}

func (builder *UpdateCommandBuilder) run(command *cobra.Command, arguments []string) error {
	ctlPath := arguments[0]
	if !strings.HasSuffix(ctlPath, CTLFileExtensionConstant) {
		return errUpdateArgumentExtension
	}

	service := NewService(resolveLogger(builder.LoggerProvider), resolveConfiguration(command, builder.ConfigurationProvider))
	if _, updateError := service.UpdateFile(ctlPath); updateError != nil {
		return fmt.Errorf(updateExecutionErrorTemplateConstant, updateError)
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

func resolveConfiguration(command *cobra.Command, provider ConfigurationProvider) Configuration {
	var configuration Configuration
	if provider != nil {
		configuration = provider()
	}

	if command != nil && command.Flags().Changed(flagStrictNameConstant) {
		strictValue, _ := command.Flags().GetBool(flagStrictNameConstant)
		configuration.StrictWarnings = strictValue
	}

	return configuration
}
