package panel

import "fmt"

const (
	xmlParseErrorTemplateConstant          = "failed to parse panel XML: %v"
	missingIdentifierErrorTemplateConstant = "script element at %s is missing the %q attribute"
	duplicateIdentifierErrorTemplate       = "duplicate qualified script identifier %q"
	unsupportedBodyContentErrorTemplate    = "script %q body contains the CDATA terminator sequence and cannot be embedded"
	danglingEntryWarningTemplateConstant   = "CTL entry %q has no matching script in the panel"
	unmatchedScriptWarningTemplateConstant = "panel script %q has no matching CTL entry"
	unknownMismatchWarningTemplateConstant = "mismatch for script %q"
)

// XMLParseError indicates the panel file is not well-formed XML.
type XMLParseError struct {
	Cause error
}

// Error describes the underlying parse failure.
func (parseError *XMLParseError) Error() string {
	return fmt.Sprintf(xmlParseErrorTemplateConstant, parseError.Cause)
}

// Unwrap exposes the underlying parser error.
func (parseError *XMLParseError) Unwrap() error {
	return parseError.Cause
}

// MissingIdentifierError indicates a script element without a name attribute.
type MissingIdentifierError struct {
	ElementPath string
}

// Error names the offending element by its document path.
func (missingError *MissingIdentifierError) Error() string {
	return fmt.Sprintf(missingIdentifierErrorTemplateConstant, missingError.ElementPath, scriptNameAttributeConstant)
}

// DuplicateIdentifierError indicates two scripts resolving to the same qualified identifier.
type DuplicateIdentifierError struct {
	QualifiedIdentifier string
}

// Error names the colliding identifier.
func (duplicateError *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf(duplicateIdentifierErrorTemplate, duplicateError.QualifiedIdentifier)
}

// UnsupportedBodyContentError indicates a script body that cannot be represented inside a CDATA section.
type UnsupportedBodyContentError struct {
	QualifiedIdentifier string
}

// Error names the script whose body cannot be embedded.
func (bodyError *UnsupportedBodyContentError) Error() string {
	return fmt.Sprintf(unsupportedBodyContentErrorTemplate, bodyError.QualifiedIdentifier)
}

// MismatchKind enumerates non-fatal reconciliation mismatches.
type MismatchKind string

// Supported mismatch kinds.
const (
	MismatchKindDanglingCTLEntry   MismatchKind = "dangling_ctl_entry"
	MismatchKindUnmatchedXMLScript MismatchKind = "unmatched_xml_script"
)

// MismatchWarning reports a script present on only one side of a reconciliation.
type MismatchWarning struct {
	Kind                MismatchKind
	QualifiedIdentifier string
}

// Description renders a human-readable summary of the mismatch.
func (warning MismatchWarning) Description() string {
	switch warning.Kind {
	case MismatchKindDanglingCTLEntry:
		return fmt.Sprintf(danglingEntryWarningTemplateConstant, warning.QualifiedIdentifier)
	case MismatchKindUnmatchedXMLScript:
		return fmt.Sprintf(unmatchedScriptWarningTemplateConstant, warning.QualifiedIdentifier)
	default:
		return fmt.Sprintf(unknownMismatchWarningTemplateConstant, warning.QualifiedIdentifier)
	}
}
