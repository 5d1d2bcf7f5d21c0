package search

import (
	"sort"
	"strings"
)

// FindDuplicates returns, in insertion order, the ids of documents whose
// term set repeats that of an earlier document. Term frequencies are
// ignored; two documents built from the same words in different proportions
// count as duplicates.
func FindDuplicates(s *SearchServer) []int {
	seen := make(map[string]struct{}, s.DocumentCount())
	var duplicates []int
	for _, id := range s.DocumentIDs() {
		key := termSetKey(s.WordFrequencies(id))
		if _, ok := seen[key]; ok {
			duplicates = append(duplicates, id)
			continue
		}
		seen[key] = struct{}{}
	}
	return duplicates
}

// RemoveDuplicates removes every duplicate found by FindDuplicates and
// returns how many documents were dropped.
func RemoveDuplicates(s *SearchServer) int {
	duplicates := FindDuplicates(s)
	for _, id := range duplicates {
		s.RemoveDocument(id)
	}
	return len(duplicates)
}

// termSetKey folds a term set into a single comparable string. Terms cannot
// contain spaces, so the space-joined sorted list is unambiguous.
func termSetKey(freqs map[string]float64) string {
	terms := make([]string, 0, len(freqs))
	for term := range freqs {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return strings.Join(terms, " ")
}
