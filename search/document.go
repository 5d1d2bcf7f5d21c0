package search

import "fmt"

// DocumentStatus tags every stored document with a moderation state.
type DocumentStatus int

const (
	StatusActual DocumentStatus = iota
	StatusIrrelevant
	StatusBanned
	StatusRemoved
)

// String returns the canonical name of the status.
func (s DocumentStatus) String() string {
	switch s {
	case StatusActual:
		return "ACTUAL"
	case StatusIrrelevant:
		return "IRRELEVANT"
	case StatusBanned:
		return "BANNED"
	case StatusRemoved:
		return "REMOVED"
	default:
		return "UNKNOWN"
	}
}

// ParseStatus converts a canonical status name back to its DocumentStatus.
func ParseStatus(name string) (DocumentStatus, error) {
	switch name {
	case "ACTUAL":
		return StatusActual, nil
	case "IRRELEVANT":
		return StatusIrrelevant, nil
	case "BANNED":
		return StatusBanned, nil
	case "REMOVED":
		return StatusRemoved, nil
	default:
		return 0, fmt.Errorf("document status %q: %w", name, ErrInvalidArgument)
	}
}

// Document is a scored search result.
type Document struct {
	ID        int
	Relevance float64
	Rating    int
}

// documentData is the per-document metadata kept by the engine.
type documentData struct {
	rating int
	status DocumentStatus
}
