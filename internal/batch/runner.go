package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/mateuszpolis/WinCC-Code-Extractor/internal/transcode"
)

const (
	xmlFilePatternConstant = "**/*.xml"
	ctlFilePatternConstant = "**/*.ctl"

	enumerationErrorTemplateConstant = "failed to enumerate %s files under %s: %w"

	noFilesFoundTemplateConstant   = "No %s files found in %s\n"
	summaryHeaderConstant          = "\nSummary:\n"
	summarySucceededTemplate       = "- Successfully processed: %d files\n"
	summaryFailedTemplateConstant  = "- Failed to process: %d files\n"
	summaryTotalTemplateConstant   = "- Total files: %d files\n"
	failureDetailTemplateConstant  = "  %s: %v\n"
	processingFileTemplateConstant = "Processing %s\n"

	fileProcessedMessageConstant = "file processed"
	fileFailedMessageConstant    = "file failed"

	logFieldFilePathConstant = "file_path"

	xmlFileKindConstant = "XML"
	ctlFileKindConstant = "CTL"
)

// FileTranscoder performs single-file extract and update operations.
type FileTranscoder interface {
	ExtractFile(xmlPath string) (transcode.ExtractResult, error)
	UpdateFile(ctlPath string) (transcode.UpdateResult, error)
}

// FileOutcome records the result of processing one file.
type FileOutcome struct {
	Path string
	Err  error
}

// Summary aggregates per-file outcomes for one directory run.
type Summary struct {
	Outcomes  []FileOutcome
	Succeeded int
	Failed    int
}

// Runner walks a directory tree and applies a transcoding pipeline to every
// qualifying file sequentially. Per-file failures are recorded and never
// abort the walk.
type Runner struct {
	logger     *zap.Logger
	transcoder FileTranscoder
	reporter   Reporter
}

// NewRunner constructs a batch runner around the provided transcoder.
func NewRunner(logger *zap.Logger, transcoder FileTranscoder, reporter Reporter) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = NewWriterReporter(nil)
	}

	return &Runner{logger: logger, transcoder: transcoder, reporter: reporter}
}

// RunExtract extracts every panel XML file under the root directory.
func (runner *Runner) RunExtract(rootDirectory string) (Summary, error) {
	return runner.runOperation(rootDirectory, xmlFilePatternConstant, xmlFileKindConstant, func(filePath string) error {
		_, extractError := runner.transcoder.ExtractFile(filePath)
		return extractError
	})
}

// RunUpdate updates every panel from its CTL file under the root directory.
func (runner *Runner) RunUpdate(rootDirectory string) (Summary, error) {
	return runner.runOperation(rootDirectory, ctlFilePatternConstant, ctlFileKindConstant, func(filePath string) error {
		_, updateError := runner.transcoder.UpdateFile(filePath)
		return updateError
	})
}

func (runner *Runner) runOperation(rootDirectory string, filePattern string, fileKind string, operation func(string) error) (Summary, error) {
	relativePaths, enumerationError := doublestar.Glob(os.DirFS(rootDirectory), filePattern)
	if enumerationError != nil {
		return Summary{}, fmt.Errorf(enumerationErrorTemplateConstant, fileKind, rootDirectory, enumerationError)
	}
	sort.Strings(relativePaths)

	if len(relativePaths) == 0 {
		runner.reporter.Printf(noFilesFoundTemplateConstant, fileKind, rootDirectory)
		return Summary{}, nil
	}

	var summary Summary
	for _, relativePath := range relativePaths {
		filePath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		runner.reporter.Printf(processingFileTemplateConstant, filePath)

		operationError := operation(filePath)
		summary.Outcomes = append(summary.Outcomes, FileOutcome{Path: filePath, Err: operationError})

		if operationError != nil {
			summary.Failed++
			runner.logger.Warn(fileFailedMessageConstant, zap.String(logFieldFilePathConstant, filePath), zap.Error(operationError))
			continue
		}

		summary.Succeeded++
		runner.logger.Debug(fileProcessedMessageConstant, zap.String(logFieldFilePathConstant, filePath))
	}

	runner.reporter.Printf(summaryHeaderConstant)
	runner.reporter.Printf(summarySucceededTemplate, summary.Succeeded)
	runner.reporter.Printf(summaryFailedTemplateConstant, summary.Failed)
	runner.reporter.Printf(summaryTotalTemplateConstant, len(summary.Outcomes))

	for _, outcome := range summary.Outcomes {
		if outcome.Err != nil {
			runner.reporter.Printf(failureDetailTemplateConstant, outcome.Path, outcome.Err)
		}
	}

	return summary, nil
}
