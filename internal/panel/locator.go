package panel

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"
)

const (
	deepShapeNestingWarningMessageConstant = "script nested inside multiple shapes; using nearest enclosing shape"
	logFieldQualifiedIdentifierConstant    = "qualified_identifier"
	logFieldShapeDepthConstant             = "shape_depth"
)

// ScriptReference identifies one script occurrence inside a panel document.
type ScriptReference struct {
	ScriptName string
	ShapeName  string
}

// QualifiedIdentifier derives the canonical identifier joining shape and script names.
func (reference ScriptReference) QualifiedIdentifier() string {
	if len(reference.ShapeName) == 0 {
		return reference.ScriptName
	}
	return reference.ShapeName + qualifiedIdentifierSeparatorConstant + reference.ScriptName
}

// LocatedScript pairs a script reference with its body text and source element.
type LocatedScript struct {
	Reference ScriptReference
	Body      string

	element *etree.Element
}

// Locator discovers script elements in document order together with their shape context.
type Locator struct {
	logger *zap.Logger
}

// NewLocator constructs a locator logging through the provided zap logger.
func NewLocator(logger *zap.Logger) *Locator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{logger: logger}
}

// LocateScripts walks the document tree and returns every script with its
// nearest enclosing shape. A script element without a name attribute aborts
// the traversal.
func (locator *Locator) LocateScripts(document *Document) ([]LocatedScript, error) {
	rootElement := document.rootElement()
	if rootElement == nil {
		return nil, nil
	}

	var locatedScripts []LocatedScript
	traversalError := locator.collectScripts(rootElement, nil, &locatedScripts)
	if traversalError != nil {
		return nil, traversalError
	}

	return locatedScripts, nil
}

func (locator *Locator) collectScripts(element *etree.Element, enclosingShapeNames []string, locatedScripts *[]LocatedScript) error {
	if element.Tag == scriptElementTagConstant {
		scriptNameAttribute := element.SelectAttr(scriptNameAttributeConstant)
		if scriptNameAttribute == nil || len(scriptNameAttribute.Value) == 0 {
			return &MissingIdentifierError{ElementPath: element.GetPath()}
		}

		scriptReference := ScriptReference{ScriptName: scriptNameAttribute.Value}
		if len(enclosingShapeNames) > 0 {
			scriptReference.ShapeName = enclosingShapeNames[len(enclosingShapeNames)-1]
		}

		if len(enclosingShapeNames) > 1 {
			locator.logger.Warn(
				deepShapeNestingWarningMessageConstant,
				zap.String(logFieldQualifiedIdentifierConstant, scriptReference.QualifiedIdentifier()),
				zap.Int(logFieldShapeDepthConstant, len(enclosingShapeNames)),
			)
		}

		*locatedScripts = append(*locatedScripts, LocatedScript{
			Reference: scriptReference,
			Body:      element.Text(),
			element:   element,
		})
		return nil
	}

	childShapeNames := enclosingShapeNames
	if shapeNameAttribute := element.SelectAttr(shapeNameAttributeConstant); shapeNameAttribute != nil && len(shapeNameAttribute.Value) > 0 {
		childShapeNames = append(append([]string{}, enclosingShapeNames...), shapeNameAttribute.Value)
	}

	for _, childElement := range element.ChildElements() {
		if collectError := locator.collectScripts(childElement, childShapeNames, locatedScripts); collectError != nil {
			return collectError
		}
	}

	return nil
}
