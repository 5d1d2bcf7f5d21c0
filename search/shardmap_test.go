package search

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcurrentScoreMap(t *testing.T) {
	scores := NewConcurrentScoreMap(4)

	slot := scores.Slot(7)
	*slot.Ref += 1.5
	slot.Release()

	slot = scores.Slot(7)
	*slot.Ref += 0.5
	slot.Release()

	slot = scores.Slot(11)
	*slot.Ref += 3
	slot.Release()

	assert.Equal(t, map[int]float64{7: 2.0, 11: 3.0}, scores.Drain())
}

func TestConcurrentScoreMapZeroInsert(t *testing.T) {
	scores := NewConcurrentScoreMap(2)

	// Touching a slot inserts a zero cell even when nothing is added.
	scores.Slot(5).Release()

	assert.Equal(t, map[int]float64{5: 0}, scores.Drain())
}

func TestConcurrentScoreMapParallelAccumulation(t *testing.T) {
	scores := NewConcurrentScoreMap(8)

	const workers = 16
	const perWorker = 200
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				slot := scores.Slot(i % 10)
				*slot.Ref++
				slot.Release()
			}
		}(w)
	}
	wg.Wait()

	merged := scores.Drain()
	assert.Len(t, merged, 10)
	for id, score := range merged {
		assert.Equal(t, float64(workers*perWorker/10), score, "id %d", id)
	}
}

func TestConcurrentScoreMapNegativeIDWrapsDeterministically(t *testing.T) {
	scores := NewConcurrentScoreMap(4)

	slot := scores.Slot(-3)
	*slot.Ref = 1
	slot.Release()
	slot = scores.Slot(-3)
	*slot.Ref += 1
	slot.Release()

	assert.Equal(t, map[int]float64{-3: 2}, scores.Drain())
}

func TestConcurrentScoreMapRejectsBadShardCount(t *testing.T) {
	assert.Panics(t, func() { NewConcurrentScoreMap(0) })
}
