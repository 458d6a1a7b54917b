package web

type cacheEntry struct {
	hash uint64
	data []byte
}

// cache is a fixed size ring of recently sent frames, keyed by the
// xxhash of their encoded data. Clients mirror it, so a repeated
// frame is sent as its index alone.
type cache struct {
	entries []cacheEntry
	idx     int
}

func newCache(size int) *cache {
	if size < 1 {
		size = 1
	}
	return &cache{
		entries: make([]cacheEntry, size),
	}
}

// index returns the index of the entry with the given hash, or -1.
func (c *cache) index(hash uint64) int {
	for i, e := range c.entries {
		if e.data != nil && e.hash == hash {
			return i
		}
	}

	return -1
}

// add stores data over the oldest entry and returns its index.
func (c *cache) add(hash uint64, data []byte) int {
	i := c.idx
	c.entries[i] = cacheEntry{hash: hash, data: data}
	c.idx = (c.idx + 1) % len(c.entries)
	return i
}
