package panel

const qualifiedIdentifierSeparatorConstant = "::"

// EnsureUniqueIdentifiers verifies that no two located scripts resolve to the
// same qualified identifier within one document.
func EnsureUniqueIdentifiers(locatedScripts []LocatedScript) error {
	seenIdentifiers := make(map[string]struct{}, len(locatedScripts))

	for _, locatedScript := range locatedScripts {
		qualifiedIdentifier := locatedScript.Reference.QualifiedIdentifier()
		if _, alreadySeen := seenIdentifiers[qualifiedIdentifier]; alreadySeen {
			return &DuplicateIdentifierError{QualifiedIdentifier: qualifiedIdentifier}
		}
		seenIdentifiers[qualifiedIdentifier] = struct{}{}
	}

	return nil
}
