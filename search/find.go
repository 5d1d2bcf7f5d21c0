package search

import (
	"math"
	"sort"
	"sync"
)

// DocumentPredicate filters scoring candidates by id, status and rating.
type DocumentPredicate func(id int, status DocumentStatus, rating int) bool

func statusPredicate(status DocumentStatus) DocumentPredicate {
	return func(_ int, documentStatus DocumentStatus, _ int) bool {
		return documentStatus == status
	}
}

// FindTop ranks the documents with status ACTUAL against the query.
func (s *SearchServer) FindTop(rawQuery string) ([]Document, error) {
	return s.FindTopWithStatus(rawQuery, StatusActual)
}

// FindTopWithStatus ranks the documents carrying the given status.
func (s *SearchServer) FindTopWithStatus(rawQuery string, status DocumentStatus) ([]Document, error) {
	return s.FindTopFunc(rawQuery, statusPredicate(status))
}

// FindTopFunc returns up to five documents matching the query's plus-terms
// and passing the predicate, scored by summed tf-idf, sorted by descending
// relevance with near-equal relevances broken by higher rating. Documents
// containing any minus-term are excluded regardless of the predicate.
func (s *SearchServer) FindTopFunc(rawQuery string, predicate DocumentPredicate) ([]Document, error) {
	query, err := s.parseQuery(rawQuery)
	if err != nil {
		return nil, err
	}
	return s.rankTop(s.findAll(query, predicate)), nil
}

// FindTopParallel is FindTop with parallel scoring.
func (s *SearchServer) FindTopParallel(rawQuery string) ([]Document, error) {
	return s.FindTopWithStatusParallel(rawQuery, StatusActual)
}

// FindTopWithStatusParallel is FindTopWithStatus with parallel scoring.
func (s *SearchServer) FindTopWithStatusParallel(rawQuery string, status DocumentStatus) ([]Document, error) {
	return s.FindTopFuncParallel(rawQuery, statusPredicate(status))
}

// FindTopFuncParallel is FindTopFunc with plus-terms scored across a worker
// pool into a sharded accumulator private to this call.
func (s *SearchServer) FindTopFuncParallel(rawQuery string, predicate DocumentPredicate) ([]Document, error) {
	query, err := s.parseQuery(rawQuery)
	if err != nil {
		return nil, err
	}
	return s.rankTop(s.findAllParallel(query, predicate)), nil
}

// findAll accumulates tf*idf per candidate document, then erases every
// document named by a minus-term posting list.
func (s *SearchServer) findAll(query query, predicate DocumentPredicate) map[int]float64 {
	scores := make(map[int]float64)
	for _, term := range query.plus {
		postings, ok := s.inverted[term]
		if !ok {
			continue
		}
		idf := s.inverseDocumentFreq(term)
		for id, tf := range postings {
			data := s.documents[id]
			if predicate(id, data.status, data.rating) {
				scores[id] += tf * idf
			}
		}
	}
	s.eraseMinusMatches(scores, query.minus)
	return scores
}

// findAllParallel partitions plus-terms across workers accumulating into a
// sharded score map; minus-term erasure runs after the join, sequentially,
// on the merged map.
func (s *SearchServer) findAllParallel(query query, predicate DocumentPredicate) map[int]float64 {
	accumulator := NewConcurrentScoreMap(s.shardCount)

	terms := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < s.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for term := range terms {
				postings, ok := s.inverted[term]
				if !ok {
					continue
				}
				idf := s.inverseDocumentFreq(term)
				for id, tf := range postings {
					data := s.documents[id]
					if !predicate(id, data.status, data.rating) {
						continue
					}
					slot := accumulator.Slot(id)
					*slot.Ref += tf * idf
					slot.Release()
				}
			}
		}()
	}
	for _, term := range query.plus {
		terms <- term
	}
	close(terms)
	wg.Wait()

	scores := accumulator.Drain()
	s.eraseMinusMatches(scores, query.minus)
	return scores
}

func (s *SearchServer) eraseMinusMatches(scores map[int]float64, minus []string) {
	for _, term := range minus {
		for id := range s.inverted[term] {
			delete(scores, id)
		}
	}
}

// rankTop turns the score map into the final ranked, truncated result. The
// candidates are laid out in ascending-id order before the stable sort, so
// the ε tie-break is total over (relevance, rating, id) and sequential and
// parallel scoring produce the same ordering.
func (s *SearchServer) rankTop(scores map[int]float64) []Document {
	ids := make([]int, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	matched := make([]Document, 0, len(ids))
	for _, id := range ids {
		matched = append(matched, Document{ID: id, Relevance: scores[id], Rating: s.documents[id].rating})
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if math.Abs(matched[i].Relevance-matched[j].Relevance) < relevanceEpsilon {
			return matched[i].Rating > matched[j].Rating
		}
		return matched[i].Relevance > matched[j].Relevance
	})
	if len(matched) > maxResultCount {
		matched = matched[:maxResultCount]
	}
	return matched
}
