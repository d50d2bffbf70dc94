// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scale

import "sync"

// axisKey identifies one axis mapping: srcLen source pixels spread over
// dstLen destination pixels.
type axisKey struct {
	srcLen int
	dstLen int
}

// tableCache is a thread-safe soft-limit cache of nearest-neighbor index
// tables. When the cache exceeds its limit the least recently used quarter
// is evicted.
type tableCache struct {
	mu        sync.Mutex
	entries   map[axisKey]*tableEntry
	softLimit int
	tick      int64
}

type tableEntry struct {
	table []int
	atime int64
}

func newTableCache(softLimit int) *tableCache {
	return &tableCache{
		entries:   make(map[axisKey]*tableEntry),
		softLimit: softLimit,
	}
}

// get returns the index table for key, building it on a miss.
// Tables are shared and must not be modified by callers.
func (c *tableCache) get(key axisKey) []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[key]; ok {
		e.atime = c.tick
		return e.table
	}

	table := buildAxis(key.srcLen, key.dstLen)
	c.entries[key] = &tableEntry{table: table, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return table
}

func (c *tableCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *tableCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[axisKey]*tableEntry)
	c.tick = 0
}

// evictOldest trims the cache to three quarters of its soft limit.
// Caller must hold c.mu.
func (c *tableCache) evictOldest() {
	target := max(c.softLimit*3/4, 1)
	for len(c.entries) > target {
		var (
			oldest axisKey
			atime  int64 = -1
		)
		for k, e := range c.entries {
			if atime < 0 || e.atime < atime {
				oldest, atime = k, e.atime
			}
		}
		delete(c.entries, oldest)
	}
}
