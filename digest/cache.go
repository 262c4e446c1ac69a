package digest

import (
	"github.com/cespare/xxhash"
	"github.com/coocood/freecache"

	"gitlab.com/semkodev/ccurl/convert"
	"gitlab.com/semkodev/ccurl/crypt"
)

const MinCacheSize = 512 * 1024

// Cache keeps recent digests in memory, keyed by the xxhash of the
// fingerprint.
type Cache struct {
	cache  *freecache.Cache
	expire int
}

// NewCache creates a cache of size bytes. Entries expire after expire
// seconds, 0 keeps them until evicted.
func NewCache(size int, expire int) *Cache {
	if size < MinCacheSize {
		size = MinCacheSize
	}
	return &Cache{cache: freecache.NewCache(size), expire: expire}
}

func cacheKey(fingerprint []byte) []byte {
	sum := xxhash.Sum64(fingerprint)
	key := make([]byte, 8)
	for i := range key {
		key[i] = byte(sum >> (8 * uint(i)))
	}
	return key
}

func (c *Cache) Get(fingerprint []byte) (crypt.Trits, bool) {
	value, err := c.cache.Get(cacheKey(fingerprint))
	if err != nil {
		return nil, false
	}
	trits, err := convert.TrytesToTrits(string(value))
	if err != nil {
		return nil, false
	}
	return trits, true
}

func (c *Cache) Set(fingerprint []byte, digest crypt.Trits) {
	// Values larger than the segment limit are ignored by freecache
	c.cache.Set(cacheKey(fingerprint), []byte(convert.TritsToTrytes(digest)), c.expire)
}

func (c *Cache) EntryCount() int64 {
	return c.cache.EntryCount()
}

func (c *Cache) HitCount() int64 {
	return c.cache.HitCount()
}
