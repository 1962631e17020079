package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAccountLocks_SerializesSameAccount(t *testing.T) {
	locks := newAccountLocks()
	accountID := uuid.New()

	// A plain int mutated by 100 goroutines is racy unless the lock
	// actually serializes them.
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(accountID)
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestAccountLocks_EntryRemovedAfterLastRelease(t *testing.T) {
	locks := newAccountLocks()
	accountID := uuid.New()

	unlock := locks.Lock(accountID)
	locks.mu.Lock()
	assert.Len(t, locks.locks, 1)
	locks.mu.Unlock()

	unlock()

	locks.mu.Lock()
	assert.Empty(t, locks.locks, "released accounts must not leak map entries")
	locks.mu.Unlock()
}

func TestAccountLocks_DifferentAccountsDoNotBlock(t *testing.T) {
	locks := newAccountLocks()

	unlockA := locks.Lock(uuid.New())
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock(uuid.New())
		unlockB()
		close(done)
	}()

	<-done
}

func TestAccountLocks_Reentry(t *testing.T) {
	locks := newAccountLocks()
	accountID := uuid.New()

	for i := 0; i < 3; i++ {
		unlock := locks.Lock(accountID)
		unlock()
	}

	locks.mu.Lock()
	assert.Empty(t, locks.locks)
	locks.mu.Unlock()
}
