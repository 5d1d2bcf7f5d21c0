package search

import "sync"

// ConcurrentScoreMap is a fixed-shard concurrent mapping from document id to
// accumulated score. Each shard guards its entries with its own mutex, so
// workers scoring disjoint ids rarely contend. A worker holds at most one
// shard lock at a time, acquired through Slot and released through the
// returned handle.
type ConcurrentScoreMap struct {
	shards []scoreShard
}

type scoreShard struct {
	mu     sync.Mutex
	scores map[int]*float64
}

// ScoreSlot is a handle to one score cell with its shard lock held. Ref
// stays valid only until Release.
type ScoreSlot struct {
	shard *scoreShard
	Ref   *float64
}

// Release unlocks the shard backing the slot.
func (s ScoreSlot) Release() {
	s.shard.mu.Unlock()
}

// NewConcurrentScoreMap builds a map with the given number of shards.
func NewConcurrentScoreMap(shardCount int) *ConcurrentScoreMap {
	if shardCount <= 0 {
		panic("search: shard count must be positive")
	}
	shards := make([]scoreShard, shardCount)
	for i := range shards {
		shards[i].scores = make(map[int]*float64)
	}
	return &ConcurrentScoreMap{shards: shards}
}

// Slot locks the shard covering id and returns a handle to its score cell,
// inserting a zero cell if absent. The unsigned reinterpretation of id makes
// negative ids wrap to a deterministic shard.
func (m *ConcurrentScoreMap) Slot(id int) ScoreSlot {
	shard := &m.shards[int(uint64(id)%uint64(len(m.shards)))]
	shard.mu.Lock()
	ref := shard.scores[id]
	if ref == nil {
		ref = new(float64)
		shard.scores[id] = ref
	}
	return ScoreSlot{shard: shard, Ref: ref}
}

// Drain locks each shard in turn and merges its contents into a single
// plain map. Callers must have released every slot first; Drain gives no
// ordering guarantee against concurrent Slot calls.
func (m *ConcurrentScoreMap) Drain() map[int]float64 {
	merged := make(map[int]float64)
	for i := range m.shards {
		shard := &m.shards[i]
		shard.mu.Lock()
		for id, ref := range shard.scores {
			merged[id] = *ref
		}
		shard.mu.Unlock()
	}
	return merged
}
