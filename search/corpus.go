package search

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/klauspost/compress/gzip"
)

// CorpusDocument is one entry of a gzip'd XML corpus dump.
type CorpusDocument struct {
	ID      int    `xml:"id,attr"`
	Status  string `xml:"status,attr"`
	Title   string `xml:"title"`
	Text    string `xml:"text"`
	Ratings []int  `xml:"rating"`
}

// LoadCorpus parses a gzip-compressed XML corpus dump and returns its
// documents in file order.
func LoadCorpus(path string) ([]CorpusDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	defer gz.Close()

	dump := struct {
		Documents []CorpusDocument `xml:"doc"`
	}{}
	if err := xml.NewDecoder(gz).Decode(&dump); err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return dump.Documents, nil
}

// AddCorpusDocument indexes one corpus entry, resolving its status name.
func (s *SearchServer) AddCorpusDocument(doc CorpusDocument) error {
	status, err := ParseStatus(doc.Status)
	if err != nil {
		return err
	}
	return s.AddDocument(doc.ID, doc.Text, status, doc.Ratings)
}
