package preference

import (
	"sync"

	"dotpi/internal/feedback"
	"dotpi/internal/logger"
)

// Source supplies the feedback history.
type Source interface {
	LoadAll() ([]feedback.Entry, error)
}

// Cache holds the latest snapshot and rebuilds it on Refresh.
type Cache struct {
	src Source
	log *logger.Logger

	// refreshMu serializes refreshes so snapshots are swapped in load order.
	refreshMu sync.Mutex

	mu   sync.RWMutex
	snap Snapshot
}

func NewCache(src Source, log *logger.Logger) *Cache {
	if log == nil {
		log = logger.Nop()
	}
	return &Cache{src: src, log: log, snap: NewSnapshot()}
}

// Refresh reloads the history. On error the previous snapshot is kept.
func (c *Cache) Refresh() error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	entries, err := c.src.LoadAll()
	if err != nil {
		c.log.Warn("preference refresh failed, keeping previous snapshot", "error", err)
		return err
	}
	snap := Aggregate(entries)
	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
	c.log.Debug("preferences refreshed", "entries", snap.Entries, "liked_tones", snap.LikedTones, "liked_moods", snap.LikedMoods)
	return nil
}

func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}
