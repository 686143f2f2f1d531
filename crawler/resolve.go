package crawler

// resolveOne tries each candidate selector in catalog order under root and
// returns the first element of the first candidate that matches anything.
// Earlier candidates are assumed to be the current markup, later ones
// historical fallbacks, so the first hit short-circuits unconditionally.
// A query error for one candidate counts as a miss, never propagates.
// Returns nil when no candidate matches.
func resolveOne(root QueryRoot, candidates []string) Element {
	for _, sel := range candidates {
		els, err := root.Query(sel)
		if err != nil || len(els) == 0 {
			continue
		}
		return els[0]
	}
	return nil
}

// resolveMany is resolveOne's multi-element form: the first candidate with
// at least one match supplies the whole result set. Returns an empty slice
// when nothing matches.
func resolveMany(root QueryRoot, candidates []string) []Element {
	for _, sel := range candidates {
		els, err := root.Query(sel)
		if err != nil || len(els) == 0 {
			continue
		}
		return els
	}
	return nil
}
