package search

import "fmt"

// stopWordSet is the immutable set of words ignored during indexing and
// query parsing. It is fixed at engine construction.
type stopWordSet map[string]struct{}

// newStopWordSet builds the set from any collection of words. Empty strings
// are dropped; a word carrying a control byte fails construction.
func newStopWordSet(words []string) (stopWordSet, error) {
	set := make(stopWordSet, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		if !isValidWord(word) {
			return nil, fmt.Errorf("stop word %q: %w", word, ErrInvalidArgument)
		}
		set[word] = struct{}{}
	}
	return set, nil
}

func (s stopWordSet) contains(word string) bool {
	_, ok := s[word]
	return ok
}
