package upload_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/authly/authly-rhythm/internal/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaging_StageAndTake(t *testing.T) {
	s := upload.NewStaging()

	id := s.Stage([]byte("audio"))
	require.NotEmpty(t, id)

	payload, ok := s.Take(id)
	require.True(t, ok)
	assert.Equal(t, []byte("audio"), payload)

	// Take does not remove; a second read still succeeds.
	payload, ok = s.Take(id)
	require.True(t, ok)
	assert.Equal(t, []byte("audio"), payload)
}

func TestStaging_ReleaseRemovesEntry(t *testing.T) {
	s := upload.NewStaging()

	id := s.Stage([]byte("audio"))
	s.Release(id)

	_, ok := s.Take(id)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	// Releasing again is a no-op.
	s.Release(id)
}

func TestStaging_IdentifiersAreUnique(t *testing.T) {
	s := upload.NewStaging()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := s.Stage([]byte{byte(i)})
		assert.False(t, seen[id], "duplicate identifier %s", id)
		seen[id] = true
	}
	assert.Equal(t, 1000, s.Len())
}

func TestStaging_ConcurrentStageAndRelease(t *testing.T) {
	s := upload.NewStaging()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := []byte(fmt.Sprintf("payload-%d", i))
			id := s.Stage(payload)

			got, ok := s.Take(id)
			assert.True(t, ok)
			assert.Equal(t, payload, got)

			s.Release(id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, s.Len())
}
