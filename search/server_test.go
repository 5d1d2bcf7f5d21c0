package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCatsServer builds the small corpus most engine tests run against.
func newCatsServer(t *testing.T) *SearchServer {
	t.Helper()
	server := newTestServer(t, "in the")
	require.NoError(t, server.AddDocument(1, "white cat and fashionable collar", StatusActual, []int{8, -3}))
	require.NoError(t, server.AddDocument(2, "fluffy cat fluffy tail", StatusActual, []int{7, 2, 7}))
	require.NoError(t, server.AddDocument(3, "well-groomed dog expressive eyes", StatusActual, []int{5, -12, 2, 1}))
	return server
}

// checkIndexInvariants asserts the structural agreement between the forward
// and inverted indices, the id list, and the metadata map.
func checkIndexInvariants(t *testing.T, server *SearchServer) {
	t.Helper()

	// Every posting list is non-empty and mirrored by the forward index.
	for term, postings := range server.inverted {
		assert.NotEmpty(t, postings, "posting list of %q must not be empty", term)
		for id, tf := range postings {
			forwardTF, ok := server.forward[id][term]
			assert.True(t, ok, "inverted[%q] holds %d but forward does not", term, id)
			assert.Equal(t, tf, forwardTF, "tf mismatch for term %q in document %d", term, id)
		}
	}

	// Every forward entry is mirrored by the inverted index, and no stop
	// word leaked into the term set.
	for id, freqs := range server.forward {
		for term, tf := range freqs {
			assert.Equal(t, tf, server.inverted[term][id])
			assert.False(t, server.stopWords.contains(term), "stop word %q was indexed", term)
		}
	}

	// Counts and the id list agree.
	assert.Equal(t, len(server.documents), server.DocumentCount())
	assert.Len(t, server.ids, server.DocumentCount())
	seen := make(map[int]struct{})
	for _, id := range server.ids {
		_, dup := seen[id]
		assert.False(t, dup, "id %d appears twice in the id list", id)
		seen[id] = struct{}{}
		_, ok := server.documents[id]
		assert.True(t, ok, "listed id %d has no metadata", id)
	}
}

func TestAddDocument(t *testing.T) {
	server := newCatsServer(t)

	assert.Equal(t, 3, server.DocumentCount())
	checkIndexInvariants(t, server)

	// Term frequencies of one document sum to 1.
	freqs := server.WordFrequencies(2)
	assert.Equal(t, map[string]float64{"fluffy": 0.5, "cat": 0.25, "tail": 0.25}, freqs)
	sum := 0.0
	for _, tf := range freqs {
		sum += tf
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestAddDocumentValidation(t *testing.T) {
	server := newCatsServer(t)

	// Negative ids, duplicates, and control bytes are all rejected without
	// touching the index.
	assert.ErrorIs(t, server.AddDocument(-1, "cat", StatusActual, nil), ErrInvalidArgument)
	assert.ErrorIs(t, server.AddDocument(2, "cat", StatusActual, nil), ErrInvalidArgument)
	assert.ErrorIs(t, server.AddDocument(4, "bad\x01word", StatusActual, nil), ErrInvalidArgument)

	assert.Equal(t, 3, server.DocumentCount())
	assert.Empty(t, server.WordFrequencies(4))
	checkIndexInvariants(t, server)
}

func TestAddDocumentEmptyText(t *testing.T) {
	server := newTestServer(t, "in the")

	// A document with no indexable tokens is stored with an empty term set
	// and still counts toward the corpus size.
	require.NoError(t, server.AddDocument(0, "", StatusActual, []int{0}))
	require.NoError(t, server.AddDocument(1, "in the", StatusActual, []int{5}))

	assert.Equal(t, 2, server.DocumentCount())
	assert.Empty(t, server.WordFrequencies(0))
	assert.Empty(t, server.WordFrequencies(1))
	checkIndexInvariants(t, server)

	results, err := server.FindTop("anything")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0, averageRating(nil))
	assert.Equal(t, 2, averageRating([]int{8, -3}))
	assert.Equal(t, 5, averageRating([]int{7, 2, 7}))
	assert.Equal(t, -1, averageRating([]int{5, -12, 2, 1}))
	// Floor, not truncation, for negative means.
	assert.Equal(t, -3, averageRating([]int{-5, 0}))
}

func TestDocumentIDAccessors(t *testing.T) {
	server := newCatsServer(t)

	assert.Equal(t, []int{1, 2, 3}, server.DocumentIDs())

	id, err := server.DocumentIDAt(1)
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	_, err = server.DocumentIDAt(3)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = server.DocumentIDAt(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestWordFrequenciesUnknownID(t *testing.T) {
	server := newCatsServer(t)
	assert.Empty(t, server.WordFrequencies(42))
}

func TestWordFrequenciesReturnsCopy(t *testing.T) {
	server := newCatsServer(t)

	freqs := server.WordFrequencies(2)
	freqs["fluffy"] = 99

	assert.Equal(t, 0.5, server.WordFrequencies(2)["fluffy"])
}

func TestTermInterning(t *testing.T) {
	server := newTestServer(t, "")
	require.NoError(t, server.AddDocument(1, "cat dog", StatusActual, nil))
	require.NoError(t, server.AddDocument(2, "cat bird", StatusActual, nil))

	// The owned set holds each distinct term exactly once, shared across
	// documents.
	assert.Len(t, server.terms, 3)
	for _, term := range []string{"cat", "dog", "bird"} {
		assert.Equal(t, term, server.terms[term])
	}

	// Removal never shrinks the owned set.
	server.RemoveDocument(2)
	assert.Len(t, server.terms, 3)
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(nil, WithShardCount(0))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(nil, WithWorkerCount(-1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
