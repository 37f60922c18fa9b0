// Package selection implements partial-match scan (C8): parsing a query
// into per-attribute terms, reducing the choice vector to known/unknown bit
// masks, enumerating the candidate buckets those masks can address, and
// streaming matching tuples out of each candidate's page chain.
package selection

import "strings"

// ParseQuery splits a comma-separated query into exactly nattrs terms,
// right-padding with "?" (attribute unknown) when fewer terms are given and
// discarding anything past the nattrs'th term, matching the original's
// startSelection loop bound by "i < new->nattrs".
func ParseQuery(raw string, nattrs int) []string {
	terms := make([]string, nattrs)
	for i := range terms {
		terms[i] = "?"
	}
	if raw == "" {
		return terms
	}
	tokens := strings.Split(raw, ",")
	for i := 0; i < nattrs && i < len(tokens); i++ {
		terms[i] = tokens[i]
	}
	return terms
}

// isWildcard reports whether a term carries no hashable literal content: a
// bare "?" or any pattern containing "%".
func isWildcard(term string) bool {
	return term == "?" || strings.Contains(term, "%")
}
