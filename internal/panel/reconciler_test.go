package panel_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mateuszpolis/WinCC-Code-Extractor/internal/ctl"
	"github.com/mateuszpolis/WinCC-Code-Extractor/internal/panel"
)

const (
	testRewrittenBodyConstant       = "int updated = 42;\nreturn updated;"
	testGhostIdentifierConstant     = "ghost"
	testCdataTerminatorBodyConstant = "if (a[b[0]]> 1) {}"
	testRewrittenCdataFragmentName  = "<![CDATA[int updated = 42;\nreturn updated;]]>"

	testComparisonPanelConstant = `<panel>
  <shape Name="Box1">
    <script name="calc"><![CDATA[return 1;]]></script>
  </shape>
  <script name="compare"><![CDATA[if (a < b) return;]]></script>
</panel>`
	testComparisonCdataFragmentName = "<![CDATA[if (a < b) return;]]>"
	testEscapedComparisonFragment   = "if (a &lt; b) return;"
)

func TestReconcilerApplyScriptEntries(testInstance *testing.T) {
	document, parseError := panel.ParseDocument([]byte(testPanelDocumentConstant))
	require.NoError(testInstance, parseError)

	entries := []ctl.ScriptEntry{
		{QualifiedIdentifier: "Box1::calc", Body: testRewrittenBodyConstant},
		{QualifiedIdentifier: testGhostIdentifierConstant, Body: "phantom()"},
	}

	updatedCount, warnings, applyError := panel.NewReconciler(nil).ApplyScriptEntries(document, entries)
	require.NoError(testInstance, applyError)
	require.Equal(testInstance, 1, updatedCount)

	expectedWarnings := []panel.MismatchWarning{
		{Kind: panel.MismatchKindDanglingCTLEntry, QualifiedIdentifier: testGhostIdentifierConstant},
		{Kind: panel.MismatchKindUnmatchedXMLScript, QualifiedIdentifier: "Initialize"},
		{Kind: panel.MismatchKindUnmatchedXMLScript, QualifiedIdentifier: "Inner::deep"},
		{Kind: panel.MismatchKindUnmatchedXMLScript, QualifiedIdentifier: "calc"},
	}
	require.Equal(testInstance, expectedWarnings, warnings)

	serializedDocument, serializeError := document.Serialize()
	require.NoError(testInstance, serializeError)
	require.Contains(testInstance, string(serializedDocument), testRewrittenCdataFragmentName)

	reparsedDocument, reparseError := panel.ParseDocument(serializedDocument)
	require.NoError(testInstance, reparseError)
	relocatedScripts, relocateError := panel.NewLocator(nil).LocateScripts(reparsedDocument)
	require.NoError(testInstance, relocateError)

	relocatedBodies := make(map[string]string, len(relocatedScripts))
	for _, relocatedScript := range relocatedScripts {
		relocatedBodies[relocatedScript.Reference.QualifiedIdentifier()] = relocatedScript.Body
	}

	require.Equal(testInstance, testRewrittenBodyConstant, relocatedBodies["Box1::calc"])
	require.Equal(testInstance, "return 2;", relocatedBodies["calc"])
	require.Equal(testInstance, "main()\n{\n  init();\n}", relocatedBodies["Initialize"])
}

func TestReconcilerPreservesUnmatchedCdataSections(testInstance *testing.T) {
	document, parseError := panel.ParseDocument([]byte(testComparisonPanelConstant))
	require.NoError(testInstance, parseError)

	entries := []ctl.ScriptEntry{
		{QualifiedIdentifier: "Box1::calc", Body: testRewrittenBodyConstant},
	}

	updatedCount, warnings, applyError := panel.NewReconciler(nil).ApplyScriptEntries(document, entries)
	require.NoError(testInstance, applyError)
	require.Equal(testInstance, 1, updatedCount)
	require.Equal(testInstance, []panel.MismatchWarning{
		{Kind: panel.MismatchKindUnmatchedXMLScript, QualifiedIdentifier: "compare"},
	}, warnings)

	serializedDocument, serializeError := document.Serialize()
	require.NoError(testInstance, serializeError)
	require.Contains(testInstance, string(serializedDocument), testComparisonCdataFragmentName)
	require.NotContains(testInstance, string(serializedDocument), testEscapedComparisonFragment)
}

func TestReconcilerRejectsCdataTerminatorBody(testInstance *testing.T) {
	document, parseError := panel.ParseDocument([]byte(testPanelDocumentConstant))
	require.NoError(testInstance, parseError)

	entries := []ctl.ScriptEntry{
		{QualifiedIdentifier: "Box1::calc", Body: testCdataTerminatorBodyConstant},
	}

	updatedCount, warnings, applyError := panel.NewReconciler(nil).ApplyScriptEntries(document, entries)
	require.Error(testInstance, applyError)
	require.Zero(testInstance, updatedCount)
	require.Empty(testInstance, warnings)

	var bodyError *panel.UnsupportedBodyContentError
	require.ErrorAs(testInstance, applyError, &bodyError)
	require.Equal(testInstance, "Box1::calc", bodyError.QualifiedIdentifier)

	serializedDocument, serializeError := document.Serialize()
	require.NoError(testInstance, serializeError)
	require.False(testInstance, strings.Contains(string(serializedDocument), "updated"))
}
