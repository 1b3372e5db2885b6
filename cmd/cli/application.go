package cli

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/mateuszpolis/WinCC-Code-Extractor/internal/batch"
	"github.com/mateuszpolis/WinCC-Code-Extractor/internal/hooks"
	"github.com/mateuszpolis/WinCC-Code-Extractor/internal/transcode"
	"github.com/mateuszpolis/WinCC-Code-Extractor/internal/utils"
)

const (
	applicationNameConstant             = "wincc-extractor"
	applicationShortDescriptionConstant = "Extract and update WinCC panel scripts through CTL companion files"
	applicationLongDescriptionConstant  = "wincc-extractor extracts embedded script bodies from WinCC panel XML files into flat CTL files and writes edited CTL files back into the panels."

	configFileFlagNameConstant  = "config"
	configFileFlagUsageConstant = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant    = "log-level"
	logLevelFlagUsageConstant   = "Override the configured log level."
	logFormatFlagNameConstant   = "log-format"
	logFormatFlagUsageConstant  = "Override the configured log format (structured or console)."

	commonConfigurationKeyConstant    = "common"
	commonLogLevelConfigKeyConstant   = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant  = commonConfigurationKeyConstant + ".log_format"
	toolsConfigurationKeyConstant     = "tools"
	transcodeConfigurationKeyConstant = toolsConfigurationKeyConstant + ".transcode"
	hooksConfigurationKeyConstant     = toolsConfigurationKeyConstant + ".hooks"

	environmentPrefixConstant              = "WINCC_EXTRACTOR"
	configurationNameConstant              = "config"
	configurationTypeConstant              = "yaml"
	defaultConfigurationSearchPathConstant = "."

	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandInfoMessageConstant          = "wincc-extractor CLI executed"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	loggerNotInitializedMessageConstant     = "logger not initialized"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool family.
type ApplicationToolsConfiguration struct {
	Transcode transcode.Configuration `mapstructure:"transcode"`
	Hooks     hooks.Configuration     `mapstructure:"hooks"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	loggerProvider := func() *zap.Logger {
		return application.logger
	}
	transcodeConfigurationProvider := func() transcode.Configuration {
		return application.configuration.Tools.Transcode
	}

	extractBuilder := transcode.ExtractCommandBuilder{
		LoggerProvider:        loggerProvider,
		ConfigurationProvider: transcodeConfigurationProvider,
	}
	if extractCommand, extractBuildError := extractBuilder.Build(); extractBuildError == nil {
		cobraCommand.AddCommand(extractCommand)
	}

	updateBuilder := transcode.UpdateCommandBuilder{
		LoggerProvider:        loggerProvider,
		ConfigurationProvider: transcodeConfigurationProvider,
	}
	if updateCommand, updateBuildError := updateBuilder.Build(); updateBuildError == nil {
		cobraCommand.AddCommand(updateCommand)
	}

	extractDirBuilder := batch.ExtractDirCommandBuilder{
		LoggerProvider:        loggerProvider,
		ConfigurationProvider: transcodeConfigurationProvider,
	}
	if extractDirCommand, extractDirBuildError := extractDirBuilder.Build(); extractDirBuildError == nil {
		cobraCommand.AddCommand(extractDirCommand)
	}

	updateDirBuilder := batch.UpdateDirCommandBuilder{
		LoggerProvider:        loggerProvider,
		ConfigurationProvider: transcodeConfigurationProvider,
	}
	if updateDirCommand, updateDirBuildError := updateDirBuilder.Build(); updateDirBuildError == nil {
		cobraCommand.AddCommand(updateDirCommand)
	}

	hooksBuilder := hooks.CommandBuilder{
		LoggerProvider: loggerProvider,
		ConfigurationProvider: func() hooks.Configuration {
			return application.configuration.Tools.Hooks
		},
	}
	if hooksCommand, hooksBuildError := hooksBuilder.Build(); hooksBuildError == nil {
		cobraCommand.AddCommand(hooksCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// RootCommand exposes the assembled Cobra root command.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range transcode.DefaultConfigurationValues(transcodeConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range hooks.DefaultConfigurationValues(hooksConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	return command.Help()
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	rootCommand := command.Root()
	if rootCommand == nil {
		return false
	}

	return flagSetChanged(rootCommand.PersistentFlags(), flagName)
}

func flagSetChanged(flagSet *pflag.FlagSet, flagName string) bool {
	if flagSet == nil {
		return false
	}
	return flagSet.Changed(flagName)
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}
