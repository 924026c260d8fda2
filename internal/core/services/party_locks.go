package services

import "sync"

// partyLocks serializes work per party id within this process.
type partyLocks struct {
	mu    sync.Mutex
	locks map[string]*partyLock
}

type partyLock struct {
	mu   sync.Mutex
	refs int
}

func newPartyLocks() *partyLocks {
	return &partyLocks{locks: make(map[string]*partyLock)}
}

// Lock blocks until the party is free and returns the matching unlock function.
func (l *partyLocks) Lock(partyID string) func() {
	l.mu.Lock()
	pl, ok := l.locks[partyID]
	if !ok {
		pl = &partyLock{}
		l.locks[partyID] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.mu.Lock()
	return func() {
		pl.mu.Unlock()
		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.locks, partyID)
		}
		l.mu.Unlock()
	}
}
