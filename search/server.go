package search

import (
	"fmt"
	"math"
	"runtime"
	"strings"
)

const (
	// maxResultCount caps the ranked output of the Find family.
	maxResultCount = 5
	// relevanceEpsilon is the tolerance below which two relevances are
	// considered equal and ranking falls back to the rating.
	relevanceEpsilon = 1e-6
	// defaultShardCount is two score-map shards per expected core.
	defaultShardCount = 8
)

// SearchServer is an in-memory TF-IDF index over short documents.
//
// AddDocument and the Remove family mutate the index and must be serialized
// externally, both against each other and against reads. Once no mutation is
// in flight, the Find, Match, WordFrequencies and iteration methods are safe
// to call concurrently with each other; the parallel variants keep their
// scratch state private to the call.
type SearchServer struct {
	stopWords stopWordSet

	// terms owns every term string ever inserted through a document. All
	// index keys alias entries of this set, so term keys stay stable across
	// insertions. Entries are never removed.
	terms map[string]string

	inverted  map[string]map[int]float64 // term -> document id -> tf
	forward   map[int]map[string]float64 // document id -> term -> tf
	documents map[int]documentData
	ids       []int // live ids in insertion order

	shardCount  int
	workerCount int
}

// Option adjusts engine construction.
type Option func(*SearchServer)

// WithShardCount sets the shard count of the score accumulator used by the
// parallel Find variants.
func WithShardCount(n int) Option {
	return func(s *SearchServer) { s.shardCount = n }
}

// WithWorkerCount sets the number of goroutines the parallel variants fan
// work out to.
func WithWorkerCount(n int) Option {
	return func(s *SearchServer) { s.workerCount = n }
}

// New builds an engine with the given stop words. Empty stop words are
// dropped; one carrying a control byte fails construction.
func New(stopWords []string, opts ...Option) (*SearchServer, error) {
	set, err := newStopWordSet(stopWords)
	if err != nil {
		return nil, err
	}
	s := &SearchServer{
		stopWords:   set,
		terms:       make(map[string]string),
		inverted:    make(map[string]map[int]float64),
		forward:     make(map[int]map[string]float64),
		documents:   make(map[int]documentData),
		shardCount:  defaultShardCount,
		workerCount: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.shardCount <= 0 {
		return nil, fmt.Errorf("shard count %d: %w", s.shardCount, ErrInvalidArgument)
	}
	if s.workerCount <= 0 {
		return nil, fmt.Errorf("worker count %d: %w", s.workerCount, ErrInvalidArgument)
	}
	return s, nil
}

// NewFromText builds an engine from a single space-separated stop-words
// string.
func NewFromText(stopWordsText string, opts ...Option) (*SearchServer, error) {
	return New(splitWords(stopWordsText), opts...)
}

// AddDocument indexes a document under the given id. The id must be
// non-negative and not already present, and no token of text may contain a
// control byte; on failure the engine is left unchanged. A document whose
// tokens are all stop words is stored with an empty term set and still
// counts toward DocumentCount.
func (s *SearchServer) AddDocument(id int, text string, status DocumentStatus, ratings []int) error {
	if id < 0 {
		return fmt.Errorf("document id %d: %w", id, ErrInvalidArgument)
	}
	if _, ok := s.documents[id]; ok {
		return fmt.Errorf("duplicate document id %d: %w", id, ErrInvalidArgument)
	}
	words, err := s.splitWordsNoStop(text)
	if err != nil {
		return err
	}

	freqs := make(map[string]float64, len(words))
	if len(words) > 0 {
		invCount := 1.0 / float64(len(words))
		for _, word := range words {
			freqs[s.intern(word)] += invCount
		}
	}
	for term, tf := range freqs {
		postings := s.inverted[term]
		if postings == nil {
			postings = make(map[int]float64)
			s.inverted[term] = postings
		}
		postings[id] = tf
	}
	s.forward[id] = freqs
	s.documents[id] = documentData{rating: averageRating(ratings), status: status}
	s.ids = append(s.ids, id)
	return nil
}

// DocumentCount returns the number of live documents.
func (s *SearchServer) DocumentCount() int {
	return len(s.documents)
}

// DocumentIDAt returns the id at the given insertion-order position.
func (s *SearchServer) DocumentIDAt(index int) (int, error) {
	if index < 0 || index >= len(s.ids) {
		return 0, fmt.Errorf("document index %d of %d: %w", index, len(s.ids), ErrOutOfRange)
	}
	return s.ids[index], nil
}

// DocumentIDs returns the live document ids in insertion order.
func (s *SearchServer) DocumentIDs() []int {
	ids := make([]int, len(s.ids))
	copy(ids, s.ids)
	return ids
}

// WordFrequencies returns the term-frequency mapping of a document. The
// result is a copy; an unknown id yields an empty map.
func (s *SearchServer) WordFrequencies(id int) map[string]float64 {
	freqs := make(map[string]float64, len(s.forward[id]))
	for term, tf := range s.forward[id] {
		freqs[term] = tf
	}
	return freqs
}

// intern returns the engine-owned copy of word, inserting one if needed.
// Cloning detaches the stored term from the caller's text buffer.
func (s *SearchServer) intern(word string) string {
	if term, ok := s.terms[word]; ok {
		return term
	}
	term := strings.Clone(word)
	s.terms[term] = term
	return term
}

// splitWordsNoStop tokenizes text and drops stop words and the empty tokens
// produced by consecutive spaces. Control bytes in any token are rejected.
func (s *SearchServer) splitWordsNoStop(text string) ([]string, error) {
	var words []string
	for _, word := range splitWords(text) {
		if !isValidWord(word) {
			return nil, fmt.Errorf("word %q: %w", word, ErrInvalidArgument)
		}
		if word == "" || s.stopWords.contains(word) {
			continue
		}
		words = append(words, word)
	}
	return words, nil
}

// averageRating is the floor of the mean rating, 0 for no ratings.
func averageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return int(math.Floor(float64(sum) / float64(len(ratings))))
}

// inverseDocumentFreq is ln(liveDocuments / postingListLength). Callers
// guarantee the term is present in the inverted index.
func (s *SearchServer) inverseDocumentFreq(term string) float64 {
	return math.Log(float64(len(s.documents)) / float64(len(s.inverted[term])))
}
