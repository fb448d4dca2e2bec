package usecase

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex(t *testing.T) {
	t.Run("Serialises holders of the same key", func(t *testing.T) {
		// Given: many goroutines updating a counter under one key
		locks := newKeyedMutex()
		counter := 0

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()

				unlock := locks.Lock("game")
				defer unlock()

				counter++
			}()
		}

		// When: all of them finish
		wg.Wait()

		// Then: no increment was lost and the key was released
		assert.Equal(t, 50, counter)
		assert.Zero(t, locks.size())
	})

	t.Run("Different keys do not block each other", func(t *testing.T) {
		locks := newKeyedMutex()

		unlockA := locks.Lock("a")
		unlockB := locks.Lock("b")

		assert.Equal(t, 2, locks.size())

		unlockA()
		unlockB()

		assert.Zero(t, locks.size())
	})
}
