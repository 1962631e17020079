package services

import (
	"sync"

	"github.com/google/uuid"
)

// accountLocks serializes transaction submission per account. Fraud windows
// and balance updates must not observe another submission's in-flight state,
// so the whole evaluate-persist-update-evaluate sequence runs under one
// account's mutex. Different accounts proceed in parallel.
type accountLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocks() *accountLocks {
	return &accountLocks{
		locks: make(map[uuid.UUID]*accountLock),
	}
}

// Lock acquires the account's critical section and returns the release
// function. The entry is reference-counted and removed once the last holder
// releases, so the map only holds accounts with submissions in flight.
func (al *accountLocks) Lock(accountID uuid.UUID) func() {
	al.mu.Lock()
	lock, ok := al.locks[accountID]
	if !ok {
		lock = &accountLock{}
		al.locks[accountID] = lock
	}
	lock.refs++
	al.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		al.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(al.locks, accountID)
		}
		al.mu.Unlock()
	}
}
