package digest

import (
	"context"
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"gitlab.com/semkodev/ccurl/convert"
	"gitlab.com/semkodev/ccurl/crypt"
	"gitlab.com/semkodev/ccurl/logs"
)

// Params select how a digest is computed.
type Params struct {
	Rounds int
	Mode   crypt.Mode
	Length int
}

const fingerprintHeaderLength = 17

// Fingerprint identifies a digest computation: the params followed by the
// input trits shifted to {0, 1, 2}.
func Fingerprint(trits crypt.Trits, params Params) []byte {
	fingerprint := make([]byte, fingerprintHeaderLength+len(trits))
	binary.BigEndian.PutUint64(fingerprint[0:], uint64(params.Rounds))
	fingerprint[8] = byte(params.Mode)
	binary.BigEndian.PutUint64(fingerprint[9:], uint64(params.Length))
	for i, trit := range trits {
		fingerprint[fingerprintHeaderLength+i] = byte(trit + 1)
	}
	return fingerprint
}

type Stats struct {
	Hashed       int64
	CacheEntries int64
	CacheHits    int64
	Stored       int
}

// Hasher computes Curl digests, consulting the cache and store first when
// they are set. It is safe for concurrent use.
type Hasher struct {
	hashed   int64 // first for 64-bit alignment of atomic access
	defaults Params
	workers  int
	cache    *Cache
	store    Storage
}

func NewHasher(defaults Params, workers int, cache *Cache, store Storage) *Hasher {
	if defaults.Rounds <= 0 {
		defaults.Rounds = crypt.NUMBER_OF_ROUNDSP81
	}
	if defaults.Length <= 0 {
		defaults.Length = crypt.HASH_LENGTH
	}
	if workers < 1 {
		workers = 1
	}
	return &Hasher{defaults: defaults, workers: workers, cache: cache, store: store}
}

func (h *Hasher) Defaults() Params {
	return h.defaults
}

// Resolve fills unset params with the hasher defaults and rounds the length
// up to what Squeeze returns.
func (h *Hasher) Resolve(params Params) Params {
	if params.Rounds <= 0 {
		params.Rounds = h.defaults.Rounds
	}
	if params.Length <= 0 {
		params.Length = h.defaults.Length
	}
	params.Mode |= h.defaults.Mode
	params.Length = crypt.SqueezeLength(params.Length)
	return params
}

func (h *Hasher) Hash(trits crypt.Trits, params Params) crypt.Trits {
	params = h.Resolve(params)
	fingerprint := Fingerprint(trits, params)

	if h.cache != nil {
		if digest, ok := h.cache.Get(fingerprint); ok {
			return digest
		}
	}

	if h.store != nil {
		if stored, err := h.store.Get(fingerprint); err == nil {
			if digest, err := convert.TrytesToTrits(stored); err == nil && len(digest) == params.Length {
				if h.cache != nil {
					h.cache.Set(fingerprint, digest)
				}
				return digest
			}
		}
	}

	digest := crypt.HashCurl(trits, params.Length, params.Rounds, params.Mode)
	atomic.AddInt64(&h.hashed, 1)

	if h.cache != nil {
		h.cache.Set(fingerprint, digest)
	}
	if h.store != nil {
		if err := h.store.Put(fingerprint, convert.TritsToTrytes(digest)); err != nil {
			logs.Log.Warningf("Could not store digest: %v", err)
		}
	}
	return digest
}

type job struct {
	index int
	trits crypt.Trits
}

// HashBatch hashes inputs on the worker pool. Digests keep the input order.
// No input is hashed when one of them holds an invalid trit.
func (h *Hasher) HashBatch(ctx context.Context, inputs []crypt.Trits, params Params) ([]crypt.Trits, error) {
	for i, trits := range inputs {
		if err := convert.ValidTrits(trits); err != nil {
			return nil, errors.Wrapf(err, "input %d", i)
		}
	}

	digests := make([]crypt.Trits, len(inputs))
	if len(inputs) == 0 {
		return digests, nil
	}

	workers := h.workers
	if workers > len(inputs) {
		workers = len(inputs)
	}

	jobs := make(chan job)
	wg := &sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				digests[j.index] = h.Hash(j.trits, params)
			}
		}()
	}

	err := error(nil)
feed:
	for i, trits := range inputs {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- job{index: i, trits: trits}:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return digests, nil
}

func (h *Hasher) Stats() Stats {
	stats := Stats{Hashed: atomic.LoadInt64(&h.hashed), Stored: -1}
	if h.cache != nil {
		stats.CacheEntries = h.cache.EntryCount()
		stats.CacheHits = h.cache.HitCount()
	}
	if h.store != nil {
		stats.Stored = h.store.Count()
	}
	return stats
}
