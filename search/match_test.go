package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchDocument(t *testing.T) {
	server := newCatsServer(t)

	words, status, err := server.MatchDocument("fluffy -dog", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"fluffy"}, words)
	assert.Equal(t, StatusActual, status)

	// A minus-term hit empties the match list but still reports the status.
	words, status, err = server.MatchDocument("fluffy -cat", 2)
	require.NoError(t, err)
	assert.Empty(t, words)
	assert.Equal(t, StatusActual, status)
}

func TestMatchDocumentMultipleTerms(t *testing.T) {
	server := newCatsServer(t)

	words, _, err := server.MatchDocument("tail cat zebra fluffy", 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cat", "fluffy", "tail"}, words)

	// Duplicated query terms match once.
	words, _, err = server.MatchDocument("cat cat cat", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, words)
}

func TestMatchDocumentErrors(t *testing.T) {
	server := newCatsServer(t)

	_, _, err := server.MatchDocument("flu\x02ffy", 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = server.MatchDocument("cat --dog", 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = server.MatchDocument("fluffy", 42)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, _, err = server.MatchDocumentParallel("fluffy", 42)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestMatchDocumentStatusReported(t *testing.T) {
	server := newCatsServer(t)
	require.NoError(t, server.AddDocument(4, "banned cat", StatusBanned, []int{1}))

	words, status, err := server.MatchDocument("cat", 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, words)
	assert.Equal(t, StatusBanned, status)
}

func TestMatchDocumentParallelMatchesSequential(t *testing.T) {
	server := newCatsServer(t)

	queries := []string{
		"fluffy -dog",
		"fluffy -cat",
		"tail cat zebra fluffy",
		"white collar -zebra",
		"-tail",
	}
	for _, q := range queries {
		for _, id := range server.DocumentIDs() {
			seqWords, seqStatus, err := server.MatchDocument(q, id)
			require.NoError(t, err)
			parWords, parStatus, err := server.MatchDocumentParallel(q, id)
			require.NoError(t, err)
			assert.Equal(t, seqStatus, parStatus)
			assert.ElementsMatch(t, seqWords, parWords, "query %q id %d", q, id)
		}
	}
}
