package search

// RemoveDocument erases the document from every index. Removing an unknown
// id is a no-op. Interned term strings are kept even when their last posting
// list disappears.
func (s *SearchServer) RemoveDocument(id int) {
	freqs, ok := s.forward[id]
	if !ok {
		return
	}
	for term := range freqs {
		postings := s.inverted[term]
		delete(postings, id)
		if len(postings) == 0 {
			delete(s.inverted, term)
		}
	}
	s.dropDocument(id)
}

// RemoveDocumentParallel snapshots the document's terms and erases its
// postings across workers. Distinct workers touch distinct posting lists,
// so only the per-term deletes run concurrently; the structural pruning of
// emptied posting lists from the inverted index runs as a sequential
// post-pass.
func (s *SearchServer) RemoveDocumentParallel(id int) {
	freqs, ok := s.forward[id]
	if !ok {
		return
	}
	terms := make([]string, 0, len(freqs))
	for term := range freqs {
		terms = append(terms, term)
	}

	s.forEachChunk(len(terms), func(_, lo, hi int) {
		for _, term := range terms[lo:hi] {
			delete(s.inverted[term], id)
		}
	})
	for _, term := range terms {
		if len(s.inverted[term]) == 0 {
			delete(s.inverted, term)
		}
	}
	s.dropDocument(id)
}

func (s *SearchServer) dropDocument(id int) {
	delete(s.forward, id)
	delete(s.documents, id)
	for i, docID := range s.ids {
		if docID == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
}
