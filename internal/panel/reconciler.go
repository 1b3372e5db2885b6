package panel

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/mateuszpolis/WinCC-Code-Extractor/internal/ctl"
)

const cdataTerminatorSequenceConstant = "]]>"

// Reconciler rewrites panel script bodies from CTL entries by identifier lookup.
type Reconciler struct {
	logger  *zap.Logger
	locator *Locator
}

// NewReconciler constructs a reconciler sharing the provided zap logger.
func NewReconciler(logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{logger: logger, locator: NewLocator(logger)}
}

// ApplyScriptEntries replaces the body of every matched script with the entry
// text wrapped in a CDATA section, leaving all other document structure
// untouched. Entries without a matching script and scripts without a matching
// entry are reported as warnings; the count of rewritten scripts is returned.
func (reconciler *Reconciler) ApplyScriptEntries(document *Document, entries []ctl.ScriptEntry) (int, []MismatchWarning, error) {
	locatedScripts, locateError := reconciler.locator.LocateScripts(document)
	if locateError != nil {
		return 0, nil, locateError
	}
	if uniquenessError := EnsureUniqueIdentifiers(locatedScripts); uniquenessError != nil {
		return 0, nil, uniquenessError
	}

	scriptElementsByIdentifier := make(map[string]*etree.Element, len(locatedScripts))
	for _, locatedScript := range locatedScripts {
		scriptElementsByIdentifier[locatedScript.Reference.QualifiedIdentifier()] = locatedScript.element
	}

	for _, entry := range entries {
		if _, elementExists := scriptElementsByIdentifier[entry.QualifiedIdentifier]; !elementExists {
			continue
		}
		if strings.Contains(entry.Body, cdataTerminatorSequenceConstant) {
			return 0, nil, &UnsupportedBodyContentError{QualifiedIdentifier: entry.QualifiedIdentifier}
		}
	}

	var warnings []MismatchWarning
	matchedIdentifiers := make(map[string]struct{}, len(entries))
	updatedCount := 0

	for _, entry := range entries {
		scriptElement, elementExists := scriptElementsByIdentifier[entry.QualifiedIdentifier]
		if !elementExists {
			warnings = append(warnings, MismatchWarning{
				Kind:                MismatchKindDanglingCTLEntry,
				QualifiedIdentifier: entry.QualifiedIdentifier,
			})
			continue
		}

		scriptElement.SetCData(entry.Body)
		matchedIdentifiers[entry.QualifiedIdentifier] = struct{}{}
		updatedCount++
	}

	for _, locatedScript := range locatedScripts {
		qualifiedIdentifier := locatedScript.Reference.QualifiedIdentifier()
		if _, entryMatched := matchedIdentifiers[qualifiedIdentifier]; !entryMatched {
			warnings = append(warnings, MismatchWarning{
				Kind:                MismatchKindUnmatchedXMLScript,
				QualifiedIdentifier: qualifiedIdentifier,
			})
		}
	}

	return updatedCount, warnings, nil
}
