package workflow

import "sync"

// claimLocker hands out one mutex per claim ID so that transition
// attempts on the same claim serialize while different claims proceed
// independently. SQLite has no SELECT ... FOR UPDATE; holding the
// per-claim mutex for the span of the transaction gives the same
// exclusive-row guarantee.
type claimLocker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newClaimLocker() *claimLocker {
	return &claimLocker{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the exclusive lock for the claim and returns its release func
func (l *claimLocker) Lock(claimID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[claimID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[claimID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
