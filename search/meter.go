package search

// requestWindow is how many recorded queries the meter looks back over.
const requestWindow = 1440

type meterEntry struct {
	timestamp   int
	resultCount int
}

// RequestMeter counts the queries that returned zero results among the last
// 1,440 recorded queries. A virtual clock advances by one per record, so
// the window is measured in queries rather than wall time. The meter is not
// safe for concurrent use.
type RequestMeter struct {
	server  *SearchServer
	entries []meterEntry
	zero    int
	now     int
}

// NewRequestMeter builds a meter reporting on the given engine.
func NewRequestMeter(server *SearchServer) *RequestMeter {
	return &RequestMeter{server: server}
}

// FindTop runs the query against the engine with status ACTUAL and records
// its result count. Malformed queries are not recorded.
func (m *RequestMeter) FindTop(rawQuery string) ([]Document, error) {
	return m.record(m.server.FindTop(rawQuery))
}

// FindTopWithStatus runs the query with the given status filter and records
// its result count.
func (m *RequestMeter) FindTopWithStatus(rawQuery string, status DocumentStatus) ([]Document, error) {
	return m.record(m.server.FindTopWithStatus(rawQuery, status))
}

func (m *RequestMeter) record(documents []Document, err error) ([]Document, error) {
	if err != nil {
		return nil, err
	}
	m.Record(len(documents))
	return documents, nil
}

// Record notes one query outcome, expiring entries that fall out of the
// window.
func (m *RequestMeter) Record(resultCount int) {
	m.now++
	for len(m.entries) > 0 && m.now-m.entries[0].timestamp >= requestWindow {
		if m.entries[0].resultCount == 0 {
			m.zero--
		}
		m.entries = m.entries[1:]
	}
	m.entries = append(m.entries, meterEntry{timestamp: m.now, resultCount: resultCount})
	if resultCount == 0 {
		m.zero++
	}
}

// ZeroResultCount returns how many queries in the window returned nothing.
func (m *RequestMeter) ZeroResultCount() int {
	return m.zero
}
