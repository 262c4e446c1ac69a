package sponge

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/semkodev/ccurl/convert"
	"gitlab.com/semkodev/ccurl/crypt"
)

func hello(t *testing.T) crypt.Trits {
	trits, err := convert.TrytesToTrits("HELLOWORLD")
	require.NoError(t, err)
	return trits
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(10, 0)
	defer r.Close()

	id, err := r.Create(0, 0)
	require.NoError(t, err)
	assert.True(t, convert.IsTrytes(id, SESSION_ID_LENGTH))
	assert.Equal(t, []string{id}, r.IDs())

	require.NoError(t, r.Absorb(id, hello(t)))
	digest, err := r.Squeeze(id, crypt.HASH_LENGTH)
	require.NoError(t, err)
	assert.Equal(t, crypt.RunHashCurl(hello(t)), digest)

	require.NoError(t, r.Reset(id))
	require.NoError(t, r.Do(id, func(curl *crypt.Curl) {
		assert.Equal(t, [crypt.STATE_LENGTH]crypt.Trit{}, curl.State())
	}))

	require.NoError(t, r.Remove(id))
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, ErrSessionNotFound, errors.Cause(r.Remove(id)))
}

func TestRegistryAbsorbInvalidTrits(t *testing.T) {
	r := NewRegistry(10, 0)
	defer r.Close()

	id, err := r.Create(0, 0)
	require.NoError(t, err)

	err = r.Absorb(id, hello(t), crypt.Trits{0, 3})
	assert.Equal(t, convert.ErrInvalidTrit, errors.Cause(err))
	assert.Contains(t, err.Error(), "input 1")

	// nothing was absorbed
	require.NoError(t, r.Do(id, func(curl *crypt.Curl) {
		assert.Equal(t, [crypt.STATE_LENGTH]crypt.Trit{}, curl.State())
	}))
}

func TestRegistrySessionParams(t *testing.T) {
	r := NewRegistry(10, 0)
	defer r.Close()

	id, err := r.Create(27, crypt.CompatSqueezeWindow)
	require.NoError(t, err)
	require.NoError(t, r.Do(id, func(curl *crypt.Curl) {
		assert.Equal(t, 27, curl.Rounds())
		assert.Equal(t, crypt.CompatSqueezeWindow, curl.Mode())
	}))
}

func TestRegistryAbsorbInOrder(t *testing.T) {
	r := NewRegistry(10, 0)
	defer r.Close()

	id, err := r.Create(0, 0)
	require.NoError(t, err)
	require.NoError(t, r.Absorb(id, hello(t), crypt.Trits{1, 1, 1}))

	expected := crypt.NewCurl(0)
	expected.Absorb(hello(t))
	expected.Absorb(crypt.Trits{1, 1, 1})

	digest, err := r.Squeeze(id, 1)
	require.NoError(t, err)
	assert.Equal(t, expected.Squeeze(1), digest)
}

func TestRegistryTransform(t *testing.T) {
	r := NewRegistry(10, 0)
	defer r.Close()

	id, err := r.Create(1, 0)
	require.NoError(t, err)
	require.NoError(t, r.Transform(id))

	rate, err := r.Squeeze(id, 0)
	require.NoError(t, err)
	for _, trit := range rate {
		require.Equal(t, crypt.Trit(-1), trit)
	}
}

func TestRegistryClone(t *testing.T) {
	r := NewRegistry(10, 0)
	defer r.Close()

	id, err := r.Create(0, 0)
	require.NoError(t, err)
	require.NoError(t, r.Absorb(id, hello(t)))

	cloneID, err := r.Clone(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, cloneID)
	assert.Equal(t, 2, r.Len())

	a, err := r.Squeeze(id, 243)
	require.NoError(t, err)
	b, err := r.Squeeze(cloneID, 243)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = r.Clone("MISSING")
	assert.Equal(t, ErrSessionNotFound, errors.Cause(err))
}

func TestRegistryUnknownSession(t *testing.T) {
	r := NewRegistry(10, 0)
	defer r.Close()

	assert.Equal(t, ErrSessionNotFound, errors.Cause(r.Absorb("MISSING", hello(t))))
	_, err := r.Squeeze("MISSING", 243)
	assert.Equal(t, ErrSessionNotFound, errors.Cause(err))
	assert.Equal(t, ErrSessionNotFound, errors.Cause(r.Reset("MISSING")))
	assert.Equal(t, ErrSessionNotFound, errors.Cause(r.Transform("MISSING")))
}

func TestRegistryLimit(t *testing.T) {
	r := NewRegistry(2, 0)
	defer r.Close()

	_, err := r.Create(0, 0)
	require.NoError(t, err)
	id, err := r.Create(0, 0)
	require.NoError(t, err)

	_, err = r.Create(0, 0)
	assert.Equal(t, ErrTooManySessions, errors.Cause(err))
	_, err = r.Clone(id)
	assert.Equal(t, ErrTooManySessions, errors.Cause(err))
}

func TestRegistryExpire(t *testing.T) {
	r := NewRegistry(10, time.Hour)
	defer r.Close()

	old, err := r.Create(0, 0)
	require.NoError(t, err)
	fresh, err := r.Create(0, 0)
	require.NoError(t, err)

	require.NoError(t, r.Do(old, func(*crypt.Curl) {}))
	r.sessions[old].lastUsed = time.Now().Add(-2 * time.Hour)

	assert.Equal(t, 1, r.Expire(time.Now()))
	assert.Equal(t, []string{fresh}, r.IDs())
}

func TestRegistryJanitor(t *testing.T) {
	r := NewRegistry(10, 10*time.Millisecond)
	defer r.Close()

	_, err := r.Create(0, 0)
	require.NoError(t, err)

	deadline := time.Now().Add(5 * time.Second)
	for r.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	assert.Equal(t, 0, r.Len())
}

func TestRegistryClose(t *testing.T) {
	r := NewRegistry(10, time.Minute)
	_, err := r.Create(0, 0)
	require.NoError(t, err)

	r.Close()
	r.Close()
	assert.Equal(t, 0, r.Len())

	_, err = r.Create(0, 0)
	assert.Equal(t, ErrRegistryClosed, err)
}

func TestRegistryConcurrentSessions(t *testing.T) {
	r := NewRegistry(100, 0)
	defer r.Close()

	input := hello(t)
	wg := &sync.WaitGroup{}
	digests := make([]crypt.Trits, 16)
	for i := range digests {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := r.Create(27, 0)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, r.Absorb(id, input))
			digests[i], err = r.Squeeze(id, 243)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	expected := crypt.HashCurl(input, 243, 27)
	for _, digest := range digests {
		assert.Equal(t, expected, digest)
	}
}
