package utils

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// LoggerFactory builds zap.Logger instances for the CLI commands.
type LoggerFactory struct{}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
// The structured format emits production JSON for hook and batch pipelines;
// the console format keeps human-readable output for interactive runs.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	zapLogLevel, levelError := resolveZapLevel(requestedLogLevel)
	if levelError != nil {
		return nil, levelError
	}

	configuration, formatError := resolveZapConfiguration(requestedLogFormat)
	if formatError != nil {
		return nil, formatError
	}

	configuration.Level = zap.NewAtomicLevelAt(zapLogLevel)

	return configuration.Build()
}

func resolveZapLevel(requestedLogLevel LogLevel) (zapcore.Level, error) {
	switch requestedLogLevel {
	case LogLevelDebug:
		return zapcore.DebugLevel, nil
	case LogLevelInfo:
		return zapcore.InfoLevel, nil
	case LogLevelWarn:
		return zapcore.WarnLevel, nil
	case LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InvalidLevel, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}
}

func resolveZapConfiguration(requestedLogFormat LogFormat) (zap.Config, error) {
	switch requestedLogFormat {
	case LogFormatStructured:
		configuration := zap.NewProductionConfig()
		configuration.EncoderConfig.TimeKey = "timestamp"
		configuration.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return configuration, nil
	case LogFormatConsole:
		configuration := zap.NewDevelopmentConfig()
		configuration.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		return configuration, nil
	default:
		return zap.Config{}, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}
}
