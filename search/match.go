package search

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// MatchDocument reports which of the query's plus-terms occur in the given
// document, alongside the document's status. If any minus-term occurs in the
// document the matched list is empty. The raw query must be free of control
// bytes and the id must be live.
func (s *SearchServer) MatchDocument(rawQuery string, id int) ([]string, DocumentStatus, error) {
	data, query, err := s.prepareMatch(rawQuery, id)
	if err != nil {
		return nil, 0, err
	}

	freqs := s.forward[id]
	matched := make([]string, 0, len(query.plus))
	for _, term := range query.plus {
		if _, ok := freqs[term]; ok {
			matched = append(matched, term)
		}
	}
	for _, term := range query.minus {
		if _, ok := freqs[term]; ok {
			matched = matched[:0]
			break
		}
	}
	return matched, data.status, nil
}

// MatchDocumentParallel is MatchDocument with both term lists partitioned
// across workers. Minus-terms are probed first and short-circuit the
// plus-term walk entirely on a hit.
func (s *SearchServer) MatchDocumentParallel(rawQuery string, id int) ([]string, DocumentStatus, error) {
	data, query, err := s.prepareMatch(rawQuery, id)
	if err != nil {
		return nil, 0, err
	}
	freqs := s.forward[id]

	var minusHit atomic.Bool
	s.forEachChunk(len(query.minus), func(_, lo, hi int) {
		for _, term := range query.minus[lo:hi] {
			if minusHit.Load() {
				return
			}
			if _, ok := freqs[term]; ok {
				minusHit.Store(true)
				return
			}
		}
	})
	if minusHit.Load() {
		return []string{}, data.status, nil
	}

	// Chunk results are concatenated in chunk order, so the matched list
	// keeps the sorted order of the parsed plus-terms.
	chunks := make([][]string, s.workerCount)
	s.forEachChunk(len(query.plus), func(chunk, lo, hi int) {
		found := make([]string, 0, hi-lo)
		for _, term := range query.plus[lo:hi] {
			if _, ok := freqs[term]; ok {
				found = append(found, term)
			}
		}
		chunks[chunk] = found
	})
	matched := make([]string, 0, len(query.plus))
	for _, found := range chunks {
		matched = append(matched, found...)
	}
	return matched, data.status, nil
}

// prepareMatch validates the raw query and id and parses the query.
func (s *SearchServer) prepareMatch(rawQuery string, id int) (documentData, query, error) {
	if !isValidWord(rawQuery) {
		return documentData{}, query{}, fmt.Errorf("query %q: %w", rawQuery, ErrInvalidArgument)
	}
	data, ok := s.documents[id]
	if !ok {
		return documentData{}, query{}, fmt.Errorf("document id %d: %w", id, ErrOutOfRange)
	}
	parsed, err := s.parseQuery(rawQuery)
	if err != nil {
		return documentData{}, query{}, err
	}
	return data, parsed, nil
}

// forEachChunk splits [0, n) into at most workerCount contiguous chunks and
// runs fn on each concurrently, joining before it returns. fn receives the
// chunk ordinal and the half-open range it covers; chunk ordinals never
// exceed workerCount.
func (s *SearchServer) forEachChunk(n int, fn func(chunk, lo, hi int)) {
	if n == 0 {
		return
	}
	workers := min(s.workerCount, n)
	chunkSize := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for chunk, lo := 0, 0; lo < n; chunk, lo = chunk+1, lo+chunkSize {
		hi := min(lo+chunkSize, n)
		wg.Add(1)
		go func(chunk, lo, hi int) {
			defer wg.Done()
			fn(chunk, lo, hi)
		}(chunk, lo, hi)
	}
	wg.Wait()
}
