package ctl

import (
	"bufio"
	"fmt"
	"strings"
)

const (
	// StartMarkerPrefixConstant introduces a script block inside a CTL document.
	StartMarkerPrefixConstant = "//START_SCRIPT: "
	// EndMarkerPrefixConstant terminates a script block inside a CTL document.
	EndMarkerPrefixConstant = "//END_SCRIPT: "

	blockSeparatorConstant  = "\n"
	lineTerminatorConstant  = "\n"
	maximumLineSizeConstant = 1024 * 1024

	unterminatedStartReasonConstant = "start marker is never terminated"
	nestedStartReasonConstant       = "start marker opened before previous block terminated"
	strayEndReasonConstant          = "end marker has no matching start marker"
	mismatchedEndReasonTemplate     = "end marker identifier %q does not match start marker identifier %q"
	malformedMarkerErrorTemplate    = "malformed marker at line %d (%s): %s"
	scanFailureTemplateConstant     = "failed to scan CTL content: %w"
)

// ScriptEntry pairs a qualified script identifier with its raw body text.
type ScriptEntry struct {
	QualifiedIdentifier string
	Body                string
}

// MalformedMarkerError describes a structurally invalid marker pair in a CTL document.
type MalformedMarkerError struct {
	LineNumber          int
	QualifiedIdentifier string
	Reason              string
}

// Error renders the marker violation with its line number and identifier.
func (malformedError *MalformedMarkerError) Error() string {
	return fmt.Sprintf(malformedMarkerErrorTemplate, malformedError.LineNumber, malformedError.QualifiedIdentifier, malformedError.Reason)
}

// Serialize renders the entries in order using start and end markers.
// Each body is written verbatim followed by exactly one newline, so any body
// that does not itself contain marker-prefixed lines survives a parse
// round-trip unchanged.
func Serialize(entries []ScriptEntry) string {
	var contentBuilder strings.Builder

	for entryIndex, entry := range entries {
		if entryIndex > 0 {
			contentBuilder.WriteString(blockSeparatorConstant)
		}

		contentBuilder.WriteString(StartMarkerPrefixConstant)
		contentBuilder.WriteString(entry.QualifiedIdentifier)
		contentBuilder.WriteString(lineTerminatorConstant)
		contentBuilder.WriteString(entry.Body)
		contentBuilder.WriteString(lineTerminatorConstant)
		contentBuilder.WriteString(EndMarkerPrefixConstant)
		contentBuilder.WriteString(entry.QualifiedIdentifier)
		contentBuilder.WriteString(lineTerminatorConstant)
	}

	return contentBuilder.String()
}

// Parse scans a CTL document and returns its script entries in document
// order. Text outside marker pairs is ignored, which allows free-form
// comments between blocks. Line endings are normalized: a document edited
// with CRLF endings parses to the same entries as its LF equivalent.
func Parse(content string) ([]ScriptEntry, error) {
	lineScanner := bufio.NewScanner(strings.NewReader(content))
	lineScanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maximumLineSizeConstant)

	var entries []ScriptEntry
	var openIdentifier string
	var openLineNumber int
	var bodyLines []string
	blockOpen := false
	lineNumber := 0

	for lineScanner.Scan() {
		lineNumber++
		lineText := lineScanner.Text()

		switch {
		case strings.HasPrefix(lineText, StartMarkerPrefixConstant):
			if blockOpen {
				return nil, &MalformedMarkerError{LineNumber: lineNumber, QualifiedIdentifier: openIdentifier, Reason: nestedStartReasonConstant}
			}
			openIdentifier = strings.TrimPrefix(lineText, StartMarkerPrefixConstant)
			openLineNumber = lineNumber
			bodyLines = nil
			blockOpen = true
		case strings.HasPrefix(lineText, EndMarkerPrefixConstant):
			endIdentifier := strings.TrimPrefix(lineText, EndMarkerPrefixConstant)
			if !blockOpen {
				return nil, &MalformedMarkerError{LineNumber: lineNumber, QualifiedIdentifier: endIdentifier, Reason: strayEndReasonConstant}
			}
			if endIdentifier != openIdentifier {
				return nil, &MalformedMarkerError{
					LineNumber:          lineNumber,
					QualifiedIdentifier: endIdentifier,
					Reason:              fmt.Sprintf(mismatchedEndReasonTemplate, endIdentifier, openIdentifier),
				}
			}
			entries = append(entries, ScriptEntry{
				QualifiedIdentifier: openIdentifier,
				Body:                strings.Join(bodyLines, lineTerminatorConstant),
			})
			blockOpen = false
		case blockOpen:
			bodyLines = append(bodyLines, lineText)
		}
	}

	if scanError := lineScanner.Err(); scanError != nil {
		return nil, fmt.Errorf(scanFailureTemplateConstant, scanError)
	}

	if blockOpen {
		return nil, &MalformedMarkerError{LineNumber: openLineNumber, QualifiedIdentifier: openIdentifier, Reason: unterminatedStartReasonConstant}
	}

	return entries, nil
}
