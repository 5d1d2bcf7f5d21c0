package search

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ProcessQueries runs every query through FindTop in parallel. Position i of
// the result holds the outcome of queries[i], so input order is preserved.
// If any query is malformed the first error wins and no results are
// returned.
func (s *SearchServer) ProcessQueries(queries []string) ([][]Document, error) {
	results := make([][]Document, len(queries))
	var group errgroup.Group
	group.SetLimit(s.workerCount)
	for i, rawQuery := range queries {
		i, rawQuery := i, rawQuery
		group.Go(func() error {
			documents, err := s.FindTop(rawQuery)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			results[i] = documents
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ProcessQueriesJoined flattens the per-query results of ProcessQueries
// into one sequence, copying each inner result in input order.
func (s *SearchServer) ProcessQueriesJoined(queries []string) ([]Document, error) {
	results, err := s.ProcessQueries(queries)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, documents := range results {
		total += len(documents)
	}
	joined := make([]Document, 0, total)
	for _, documents := range results {
		joined = append(joined, documents...)
	}
	return joined, nil
}
