package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, stopWords string) *SearchServer {
	t.Helper()
	server, err := NewFromText(stopWords)
	require.NoError(t, err)
	return server
}

func TestParseQuery(t *testing.T) {
	server := newTestServer(t, "in the")

	q, err := server.parseQuery("fluffy cat -dog")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "fluffy"}, q.plus)
	assert.Equal(t, []string{"dog"}, q.minus)
}

func TestParseQueryDeduplicatesAndSorts(t *testing.T) {
	server := newTestServer(t, "")

	q, err := server.parseQuery("tail cat tail -dog -dog")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "tail"}, q.plus)
	assert.Equal(t, []string{"dog"}, q.minus)
}

func TestParseQueryDropsStopWords(t *testing.T) {
	server := newTestServer(t, "in the")

	q, err := server.parseQuery("cat in the hat -the")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "hat"}, q.plus)
	assert.Empty(t, q.minus)
}

func TestParseQueryErrors(t *testing.T) {
	server := newTestServer(t, "in the")

	tests := []struct {
		name  string
		query string
	}{
		{"Bare minus", "cat -"},
		{"Double minus", "cat --dog"},
		{"Control byte", "ca\x01t"},
		{"Empty token from doubled space", "cat  dog"},
		{"Empty query", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := server.parseQuery(tt.query)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestParseQueryMinusStopWordDiscarded(t *testing.T) {
	server := newTestServer(t, "in the")

	q, err := server.parseQuery("cat -in")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, q.plus)
	assert.Empty(t, q.minus)
}
