package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale locks
	lockCleanupInterval = 10 * time.Minute

	// How long a lock must be unused before cleanup
	lockStaleThreshold = 10 * time.Minute
)

// InflightGuard allows at most one running operation per key. It backs the
// AI analysis endpoint, where a second request for the same patient while one
// is pending is rejected rather than queued.
type InflightGuard struct {
	log   *logrus.Logger
	locks sync.Map // map[string]*lockWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

type lockWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewInflightGuard starts a background goroutine that drops unused locks.
// Call Stop() during graceful shutdown.
func NewInflightGuard(log *logrus.Logger) *InflightGuard {
	g := &InflightGuard{
		log:      log,
		stopChan: make(chan struct{}),
	}

	g.wg.Add(1)
	go g.cleanupLoop()

	return g
}

// TryAcquire returns a release func and true when no operation for key is
// running. The caller must call release exactly once.
func (g *InflightGuard) TryAcquire(key string) (release func(), ok bool) {
	v, _ := g.locks.LoadOrStore(key, &lockWithTimestamp{})
	lt := v.(*lockWithTimestamp)
	lt.lastUsed.Store(time.Now().Unix())

	if !lt.mu.TryLock() {
		return nil, false
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			lt.lastUsed.Store(time.Now().Unix())
			lt.mu.Unlock()
		})
	}, true
}

// Stop shuts down the cleanup goroutine. Safe to call multiple times.
func (g *InflightGuard) Stop() {
	if g.stopped.CompareAndSwap(false, true) {
		close(g.stopChan)
		g.wg.Wait()
		g.log.Info("InflightGuard stopped")
	}
}

func (g *InflightGuard) cleanupLoop() {
	defer g.wg.Done()

	ticker := time.NewTicker(lockCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopChan:
			return
		case <-ticker.C:
			g.cleanupStale(time.Now().Add(-lockStaleThreshold))
		}
	}
}

// cleanupStale removes locks idle since before cutoff. lastUsed is checked
// while holding the lock so a concurrent TryAcquire is never dropped.
func (g *InflightGuard) cleanupStale(cutoff time.Time) int {
	var cleaned int

	g.locks.Range(func(key, value any) bool {
		lt, ok := value.(*lockWithTimestamp)
		if !ok {
			return true
		}

		if lt.mu.TryLock() {
			if lt.lastUsed.Load() < cutoff.Unix() {
				g.locks.Delete(key)
				cleaned++
			}
			lt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		g.log.Debugf("Cleaned up %d stale inflight locks", cleaned)
	}
	return cleaned
}
