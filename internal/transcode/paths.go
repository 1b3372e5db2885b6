package transcode

import (
	"path/filepath"
	"strings"
)

const (
	xmlDirectorySegmentConstant = "xml"
	ctlDirectorySegmentConstant = "ctl"
	pathSeparatorConstant       = "/"

	// XMLFileExtensionConstant identifies panel files handled by extraction.
	XMLFileExtensionConstant = ".xml"
	// CTLFileExtensionConstant identifies companion files handled by updates.
	CTLFileExtensionConstant = ".ctl"
)

// CompanionPathResolver maps panel XML paths to CTL companion paths and back.
// The first path segment equal to xml (or ctl) is substituted for the
// opposite; when no such segment exists the file is placed under a sibling
// ctl (or xml) directory at the same relative position. The same rule serves
// single-file and directory modes.
type CompanionPathResolver struct{}

// CTLCompanionPath derives the CTL output path for a panel XML path.
func (resolver CompanionPathResolver) CTLCompanionPath(xmlPath string) string {
	return resolver.mapCompanionPath(xmlPath, xmlDirectorySegmentConstant, ctlDirectorySegmentConstant, CTLFileExtensionConstant)
}

// XMLCompanionPath derives the panel XML path for a CTL companion path.
func (resolver CompanionPathResolver) XMLCompanionPath(ctlPath string) string {
	return resolver.mapCompanionPath(ctlPath, ctlDirectorySegmentConstant, xmlDirectorySegmentConstant, XMLFileExtensionConstant)
}

func (resolver CompanionPathResolver) mapCompanionPath(inputPath string, sourceSegment string, targetSegment string, targetExtension string) string {
	normalizedPath := filepath.ToSlash(inputPath)
	pathSegments := strings.Split(normalizedPath, pathSeparatorConstant)

	segmentSubstituted := false
	for segmentIndex := 0; segmentIndex < len(pathSegments)-1; segmentIndex++ {
		if pathSegments[segmentIndex] == sourceSegment {
			pathSegments[segmentIndex] = targetSegment
			segmentSubstituted = true
			break
		}
	}

	if !segmentSubstituted {
		fileName := pathSegments[len(pathSegments)-1]
		pathSegments = append(pathSegments[:len(pathSegments)-1], targetSegment, fileName)
	}

	fileName := pathSegments[len(pathSegments)-1]
	pathSegments[len(pathSegments)-1] = strings.TrimSuffix(fileName, filepath.Ext(fileName)) + targetExtension

	return filepath.FromSlash(strings.Join(pathSegments, pathSeparatorConstant))
}
