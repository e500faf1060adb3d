package repository

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// KeyLocker serializes read-modify-write cycles on the same storage key
// within this process. Writers in other processes are not covered.
//
// A background goroutine drops mutexes that have not been used for a while.
// Call Stop() during graceful shutdown.
type KeyLocker struct {
	log *logrus.Logger

	keyMu sync.Map // map[string]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

func NewKeyLocker(log *logrus.Logger) *KeyLocker {
	l := &KeyLocker{
		log:      log,
		stopChan: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

// Lock acquires the mutex of key and returns its unlock function
func (l *KeyLocker) Lock(key string) func() {
	for {
		value, _ := l.keyMu.LoadOrStore(key, &mutexWithTimestamp{})
		mt := value.(*mutexWithTimestamp)
		mt.mu.Lock()

		// The cleanup loop may have dropped this mutex before we got it.
		if current, ok := l.keyMu.Load(key); ok && current == value {
			mt.lastUsed.Store(time.Now().Unix())
			return mt.mu.Unlock
		}
		mt.mu.Unlock()
	}
}

// Stop terminates the cleanup goroutine. Safe to call multiple times.
func (l *KeyLocker) Stop() {
	if l.stopped.CompareAndSwap(false, true) {
		close(l.stopChan)
		l.wg.Wait()
		l.log.Info("KeyLocker stopped")
	}
}

func (l *KeyLocker) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.cleanupStale(time.Now().Add(-mutexStaleThreshold))
		}
	}
}

// cleanupStale removes mutexes unused since cutoff. A mutex that is held is
// skipped; lastUsed is checked inside the lock so a concurrent Lock is never lost.
func (l *KeyLocker) cleanupStale(cutoff time.Time) int {
	var cleaned int

	l.keyMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoff.Unix() {
				l.keyMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		l.log.Debugf("Cleaned up %d stale key mutexes", cleaned)
	}
	return cleaned
}
