package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar_tracker/internal/model"
)

func makeRun(id string, steps int) model.Run {
	results := make([]model.Result, steps)
	for i := range results {
		results[i] = model.Result{Time: float64(i) * 5}
	}
	return model.Run{
		Info:    model.RunInfo{ID: id, State: model.RunCompleted, Steps: steps},
		Results: results,
	}
}

func TestStorePutGet(t *testing.T) {
	s := New()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Put(makeRun("a", 3))
	run, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", run.Info.ID)
	assert.Len(t, run.Results, 3)
	assert.Equal(t, 1, s.Count())
}

func TestStoreList_InsertionOrder(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		s.Put(makeRun(fmt.Sprintf("run-%d", i), 1))
	}

	infos := s.List()
	require.Len(t, infos, 5)
	for i, info := range infos {
		assert.Equal(t, fmt.Sprintf("run-%d", i), info.ID)
	}
}

func TestStorePut_ReplaceKeepsOrder(t *testing.T) {
	s := New()
	s.Put(makeRun("a", 1))
	s.Put(makeRun("b", 1))
	s.Put(makeRun("a", 7))

	assert.Equal(t, 2, s.Count())

	infos := s.List()
	require.Len(t, infos, 2)
	assert.Equal(t, "a", infos[0].ID)
	assert.Equal(t, 7, infos[0].Steps)
	assert.Equal(t, "b", infos[1].ID)
}

func TestStoreResults_Window(t *testing.T) {
	s := New()
	s.Put(makeRun("a", 10))

	_, ok := s.Results("missing", 0)
	assert.False(t, ok)

	all, ok := s.Results("a", 0)
	require.True(t, ok)
	assert.Len(t, all, 10)

	// Beyond the history returns everything.
	over, _ := s.Results("a", 50)
	assert.Equal(t, all, over)

	// A window returns the tail in chronological order.
	tail, _ := s.Results("a", 3)
	require.Len(t, tail, 3)
	assert.Equal(t, 35.0, tail[0].Time)
	assert.Equal(t, 45.0, tail[2].Time)
}
