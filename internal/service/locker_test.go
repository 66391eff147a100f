package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameLocks(t *testing.T) {
	t.Run("Serialises holders of the same game", func(t *testing.T) {
		locks := newGameLocks()

		counter := 0
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := locks.Lock("g1")
				defer unlock()

				value := counter
				counter = value + 1
			}()
		}
		wg.Wait()

		assert.Equal(t, 100, counter)
	})

	t.Run("Different games do not block each other", func(t *testing.T) {
		locks := newGameLocks()

		unlockFirst := locks.Lock("g1")
		unlockSecond := locks.Lock("g2")

		assert.Equal(t, 2, locks.size())
		unlockSecond()
		unlockFirst()
	})

	t.Run("Released locks are dropped", func(t *testing.T) {
		locks := newGameLocks()

		locks.Lock("g1")()

		assert.Equal(t, 0, locks.size())
	})
}
