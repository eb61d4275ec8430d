package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	// Unsynchronized counter; the race detector flags any overlap.
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("fee-1")
			counter++
			km.Unlock("fee-1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("a")
	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()
	<-done // a held does not block b
	km.Unlock("a")
}

func TestKeyedMutexFreesEntries(t *testing.T) {
	km := NewKeyedMutex()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("k")
			km.Unlock("k")
		}()
	}
	wg.Wait()

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}

func TestKeyedMutexUnlockUnheldPanics(t *testing.T) {
	km := NewKeyedMutex()
	assert.Panics(t, func() { km.Unlock("nope") })
}
