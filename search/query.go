package search

import (
	"fmt"
	"sort"
)

// query is a parsed free-text query. Both term lists are deduplicated and
// sorted; the fixed iteration order keeps floating-point accumulation
// deterministic across runs.
type query struct {
	plus  []string
	minus []string
}

// queryWord is one parsed query token.
type queryWord struct {
	word    string
	isMinus bool
	isStop  bool
}

// parseQueryWord classifies a single raw token. A leading '-' marks a
// minus-term. A token that is empty, is a bare '-', starts with "--", or
// carries a control byte is malformed.
func (s *SearchServer) parseQueryWord(text string) (queryWord, error) {
	if text == "" {
		return queryWord{}, fmt.Errorf("empty query word: %w", ErrInvalidArgument)
	}
	word := text
	isMinus := word[0] == '-'
	if isMinus {
		word = word[1:]
	}
	if word == "" || word[0] == '-' || !isValidWord(word) {
		return queryWord{}, fmt.Errorf("query word %q: %w", text, ErrInvalidArgument)
	}
	return queryWord{word: word, isMinus: isMinus, isStop: s.stopWords.contains(word)}, nil
}

// parseQuery splits raw into plus- and minus-terms, discarding stop words.
func (s *SearchServer) parseQuery(raw string) (query, error) {
	plus := make(map[string]struct{})
	minus := make(map[string]struct{})
	for _, token := range splitWords(raw) {
		word, err := s.parseQueryWord(token)
		if err != nil {
			return query{}, err
		}
		if word.isStop {
			continue
		}
		if word.isMinus {
			minus[word.word] = struct{}{}
		} else {
			plus[word.word] = struct{}{}
		}
	}
	return query{plus: sortedTerms(plus), minus: sortedTerms(minus)}, nil
}

func sortedTerms(set map[string]struct{}) []string {
	terms := make([]string, 0, len(set))
	for term := range set {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
