package panel

import (
	"github.com/beevik/etree"
)

const (
	scriptElementTagConstant    = "script"
	scriptNameAttributeConstant = "name"
	shapeNameAttributeConstant  = "Name"
)

// Document wraps a parsed WinCC panel XML tree.
type Document struct {
	tree *etree.Document
}

// ParseDocument parses raw panel XML content into a Document.
func ParseDocument(content []byte) (*Document, error) {
	tree := etree.NewDocument()
	tree.ReadSettings.PreserveCData = true
	if parseError := tree.ReadFromBytes(content); parseError != nil {
		return nil, &XMLParseError{Cause: parseError}
	}

	return &Document{tree: tree}, nil
}

// Serialize renders the document back into XML bytes.
func (document *Document) Serialize() ([]byte, error) {
	return document.tree.WriteToBytes()
}

func (document *Document) rootElement() *etree.Element {
	if document == nil || document.tree == nil {
		return nil
	}
	return document.tree.Root()
}
