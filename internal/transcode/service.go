package transcode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mateuszpolis/WinCC-Code-Extractor/internal/ctl"
	"github.com/mateuszpolis/WinCC-Code-Extractor/internal/panel"
)

const (
	panelReadErrorTemplateConstant          = "failed to read panel file %s: %w"
	panelWriteErrorTemplateConstant         = "failed to write panel file %s: %w"
	companionReadErrorTemplateConstant      = "failed to read CTL file %s: %w"
	companionWriteErrorTemplateConstant     = "failed to write CTL file %s: %w"
	outputDirectoryErrorTemplateConstant    = "failed to create output directory %s: %w"
	missingCompanionPanelTemplateConstant   = "panel file %s derived from %s does not exist: %w"
	mismatchEscalationErrorTemplateConstant = "update reported %d mismatch warnings"

	ctlHeaderLineConstant           = "// Auto-generated CTL companion file."
	ctlHeaderSourceTemplateConstant = "// Source: %s"
	ctlHeaderKeysLineConstant       = "// Keys: shape_name::script_name for scripts inside shapes,"
	ctlHeaderKeysContinuedConstant  = "//       script_name for top-level scripts."

	extractCompletedMessageConstant = "extracted panel scripts"
	updateCompletedMessageConstant  = "updated panel scripts"
	scriptDiscoveredMessageConstant = "script discovered"
	mismatchWarningMessageConstant  = "reconciliation mismatch"

	logFieldPanelPathConstant           = "panel_path"
	logFieldCompanionPathConstant       = "ctl_path"
	logFieldScriptCountConstant         = "script_count"
	logFieldUpdatedCountConstant        = "updated_count"
	logFieldQualifiedIdentifierConstant = "qualified_identifier"
	logFieldWarningKindConstant         = "warning_kind"

	outputDirectoryPermissionsConstant = 0o755
	outputFilePermissionsConstant      = 0o644
)

// MismatchEscalationError reports mismatch warnings escalated to a failure by the strict policy.
type MismatchEscalationError struct {
	Warnings []panel.MismatchWarning
}

// Error summarizes the escalated warnings.
func (escalationError *MismatchEscalationError) Error() string {
	return fmt.Sprintf(mismatchEscalationErrorTemplateConstant, len(escalationError.Warnings))
}

// ExtractResult describes a successful single-file extraction.
type ExtractResult struct {
	CTLPath              string
	QualifiedIdentifiers []string
}

// UpdateResult describes a successful single-file update.
type UpdateResult struct {
	XMLPath      string
	UpdatedCount int
	Warnings     []panel.MismatchWarning
}

// Service runs the extract and update pipelines for individual files.
type Service struct {
	logger         *zap.Logger
	locator        *panel.Locator
	reconciler     *panel.Reconciler
	pathResolver   CompanionPathResolver
	strictWarnings bool
}

// NewService constructs a transcoding service honoring the provided configuration.
func NewService(logger *zap.Logger, configuration Configuration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger:         logger,
		locator:        panel.NewLocator(logger),
		reconciler:     panel.NewReconciler(logger),
		pathResolver:   CompanionPathResolver{},
		strictWarnings: configuration.StrictWarnings,
	}
}

// ExtractFile reads a panel XML file and writes its companion CTL file.
// Nothing is written when locating or identifier resolution fails.
func (service *Service) ExtractFile(xmlPath string) (ExtractResult, error) {
	panelContent, readError := os.ReadFile(xmlPath)
	if readError != nil {
		return ExtractResult{}, fmt.Errorf(panelReadErrorTemplateConstant, xmlPath, readError)
	}

	document, parseError := panel.ParseDocument(panelContent)
	if parseError != nil {
		return ExtractResult{}, parseError
	}

	locatedScripts, locateError := service.locator.LocateScripts(document)
	if locateError != nil {
		return ExtractResult{}, locateError
	}

	if uniquenessError := panel.EnsureUniqueIdentifiers(locatedScripts); uniquenessError != nil {
		return ExtractResult{}, uniquenessError
	}

	entries := make([]ctl.ScriptEntry, 0, len(locatedScripts))
	qualifiedIdentifiers := make([]string, 0, len(locatedScripts))
	for _, locatedScript := range locatedScripts {
		qualifiedIdentifier := locatedScript.Reference.QualifiedIdentifier()
		entries = append(entries, ctl.ScriptEntry{QualifiedIdentifier: qualifiedIdentifier, Body: locatedScript.Body})
		qualifiedIdentifiers = append(qualifiedIdentifiers, qualifiedIdentifier)
		service.logger.Debug(scriptDiscoveredMessageConstant, zap.String(logFieldQualifiedIdentifierConstant, qualifiedIdentifier))
	}

	ctlPath := service.pathResolver.CTLCompanionPath(xmlPath)
	outputDirectory := filepath.Dir(ctlPath)
	if directoryError := os.MkdirAll(outputDirectory, outputDirectoryPermissionsConstant); directoryError != nil {
		return ExtractResult{}, fmt.Errorf(outputDirectoryErrorTemplateConstant, outputDirectory, directoryError)
	}

	companionContent := buildCompanionHeader(filepath.Base(xmlPath)) + ctl.Serialize(entries)
	if writeError := os.WriteFile(ctlPath, []byte(companionContent), outputFilePermissionsConstant); writeError != nil {
		return ExtractResult{}, fmt.Errorf(companionWriteErrorTemplateConstant, ctlPath, writeError)
	}

	service.logger.Info(
		extractCompletedMessageConstant,
		zap.String(logFieldPanelPathConstant, xmlPath),
		zap.String(logFieldCompanionPathConstant, ctlPath),
		zap.Int(logFieldScriptCountConstant, len(entries)),
	)

	return ExtractResult{CTLPath: ctlPath, QualifiedIdentifiers: qualifiedIdentifiers}, nil
}

// UpdateFile parses a CTL file and rewrites the companion panel XML in place.
func (service *Service) UpdateFile(ctlPath string) (UpdateResult, error) {
	xmlPath := service.pathResolver.XMLCompanionPath(ctlPath)
	if _, statError := os.Stat(xmlPath); statError != nil {
		return UpdateResult{}, fmt.Errorf(missingCompanionPanelTemplateConstant, xmlPath, ctlPath, statError)
	}

	companionContent, companionReadError := os.ReadFile(ctlPath)
	if companionReadError != nil {
		return UpdateResult{}, fmt.Errorf(companionReadErrorTemplateConstant, ctlPath, companionReadError)
	}

	entries, parseError := ctl.Parse(string(companionContent))
	if parseError != nil {
		return UpdateResult{}, parseError
	}

	panelContent, panelReadError := os.ReadFile(xmlPath)
	if panelReadError != nil {
		return UpdateResult{}, fmt.Errorf(panelReadErrorTemplateConstant, xmlPath, panelReadError)
	}

	document, documentParseError := panel.ParseDocument(panelContent)
	if documentParseError != nil {
		return UpdateResult{}, documentParseError
	}

	updatedCount, warnings, applyError := service.reconciler.ApplyScriptEntries(document, entries)
	if applyError != nil {
		return UpdateResult{}, applyError
	}

	for _, warning := range warnings {
		service.logger.Warn(
			mismatchWarningMessageConstant,
			zap.String(logFieldWarningKindConstant, string(warning.Kind)),
			zap.String(logFieldQualifiedIdentifierConstant, warning.QualifiedIdentifier),
		)
	}

	if service.strictWarnings && len(warnings) > 0 {
		return UpdateResult{}, &MismatchEscalationError{Warnings: warnings}
	}

	rewrittenContent, serializeError := document.Serialize()
	if serializeError != nil {
		return UpdateResult{}, serializeError
	}

	if writeError := os.WriteFile(xmlPath, rewrittenContent, outputFilePermissionsConstant); writeError != nil {
		return UpdateResult{}, fmt.Errorf(panelWriteErrorTemplateConstant, xmlPath, writeError)
	}

	service.logger.Info(
		updateCompletedMessageConstant,
		zap.String(logFieldPanelPathConstant, xmlPath),
		zap.String(logFieldCompanionPathConstant, ctlPath),
		zap.Int(logFieldUpdatedCountConstant, updatedCount),
	)

	return UpdateResult{XMLPath: xmlPath, UpdatedCount: updatedCount, Warnings: warnings}, nil
}

func buildCompanionHeader(sourceFileName string) string {
	headerLines := []string{
		ctlHeaderLineConstant,
		fmt.Sprintf(ctlHeaderSourceTemplateConstant, sourceFileName),
		ctlHeaderKeysLineConstant,
		ctlHeaderKeysContinuedConstant,
		"",
	}
	return strings.Join(headerLines, "\n") + "\n"
}
