package sponge

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"gitlab.com/semkodev/ccurl/convert"
	"gitlab.com/semkodev/ccurl/crypt"
	"gitlab.com/semkodev/ccurl/logs"
	"gitlab.com/semkodev/ccurl/utils"
)

const SESSION_ID_LENGTH = 27

var (
	ErrSessionNotFound = errors.New("sponge session not found")
	ErrTooManySessions = errors.New("too many sponge sessions")
	ErrRegistryClosed  = errors.New("sponge registry closed")
)

var (
	minJanitorInterval  = time.Second
	idGenerationRetries = 10
)

type session struct {
	sync.Mutex
	curl     *crypt.Curl
	lastUsed time.Time
}

// Registry holds named sponges that are driven one call at a time. Calls on
// one session are serialized, different sessions run in parallel.
type Registry struct {
	lock        sync.RWMutex
	sessions    map[string]*session
	max         int
	idleTimeout time.Duration
	closed      bool

	janitorTicker    *time.Ticker
	janitorWaitGroup *sync.WaitGroup
	janitorQuit      chan struct{}
}

// NewRegistry starts an expiry janitor when idleTimeout is positive.
func NewRegistry(max int, idleTimeout time.Duration) *Registry {
	r := &Registry{
		sessions:         map[string]*session{},
		max:              max,
		idleTimeout:      idleTimeout,
		janitorWaitGroup: &sync.WaitGroup{},
		janitorQuit:      make(chan struct{}),
	}
	if idleTimeout > 0 {
		interval := idleTimeout / 2
		if interval < minJanitorInterval {
			interval = minJanitorInterval
		}
		r.janitorTicker = time.NewTicker(interval)
		r.janitorWaitGroup.Add(1)
		go r.janitor()
	}
	return r
}

func (r *Registry) janitor() {
	defer r.janitorWaitGroup.Done()

	for {
		select {
		case <-r.janitorQuit:
			return

		case now := <-r.janitorTicker.C:
			if expired := r.Expire(now); expired > 0 {
				logs.Log.Debugf("Expired %v idle sponge sessions", expired)
			}
		}
	}
}

func (r *Registry) add(curl *crypt.Curl) (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		return "", ErrRegistryClosed
	}
	if len(r.sessions) >= r.max {
		return "", errors.Wrapf(ErrTooManySessions, "limit is %d", r.max)
	}

	for i := 0; i < idGenerationRetries; i++ {
		id, err := utils.RandomTrytes(SESSION_ID_LENGTH)
		if err != nil {
			return "", errors.Wrap(err, "generate session id")
		}
		if _, exists := r.sessions[id]; !exists {
			r.sessions[id] = &session{curl: curl, lastUsed: time.Now()}
			return id, nil
		}
	}
	return "", errors.New("could not generate a unique session id")
}

// Create opens a session on a zeroed sponge.
func (r *Registry) Create(rounds int, mode crypt.Mode) (string, error) {
	return r.add(crypt.NewCurl(rounds, mode))
}

// Do runs fn with exclusive access to the session's sponge.
func (r *Registry) Do(id string, fn func(curl *crypt.Curl)) error {
	r.lock.RLock()
	s, ok := r.sessions[id]
	r.lock.RUnlock()
	if !ok {
		return errors.Wrapf(ErrSessionNotFound, "session %s", id)
	}

	s.Lock()
	defer s.Unlock()
	fn(s.curl)
	s.lastUsed = time.Now()
	return nil
}

// Absorb absorbs each input in order, one Absorb call per input. Nothing is
// absorbed when any input holds an invalid trit.
func (r *Registry) Absorb(id string, inputs ...crypt.Trits) error {
	for i, trits := range inputs {
		if err := convert.ValidTrits(trits); err != nil {
			return errors.Wrapf(err, "input %d", i)
		}
	}
	return r.Do(id, func(curl *crypt.Curl) {
		for _, trits := range inputs {
			curl.Absorb(trits)
		}
	})
}

func (r *Registry) Squeeze(id string, length int) (crypt.Trits, error) {
	var trits crypt.Trits
	err := r.Do(id, func(curl *crypt.Curl) {
		trits = curl.Squeeze(length)
	})
	return trits, err
}

func (r *Registry) Reset(id string) error {
	return r.Do(id, func(curl *crypt.Curl) {
		curl.Reset()
	})
}

func (r *Registry) Transform(id string) error {
	return r.Do(id, func(curl *crypt.Curl) {
		curl.Transform()
	})
}

// Clone opens a new session holding a copy of the sponge of id.
func (r *Registry) Clone(id string) (string, error) {
	var clone *crypt.Curl
	if err := r.Do(id, func(curl *crypt.Curl) {
		clone = curl.Clone()
	}); err != nil {
		return "", err
	}
	return r.add(clone)
}

func (r *Registry) Remove(id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return errors.Wrapf(ErrSessionNotFound, "session %s", id)
	}
	delete(r.sessions, id)
	return nil
}

// IDs returns the open session ids, sorted.
func (r *Registry) IDs() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.sessions)
}

// Expire drops sessions unused for longer than the idle timeout and returns
// how many were dropped.
func (r *Registry) Expire(now time.Time) int {
	if r.idleTimeout <= 0 {
		return 0
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	expired := 0
	for id, s := range r.sessions {
		s.Lock()
		idle := now.Sub(s.lastUsed)
		s.Unlock()
		if idle > r.idleTimeout {
			delete(r.sessions, id)
			expired++
		}
	}
	return expired
}

// Close stops the janitor and drops every session.
func (r *Registry) Close() {
	r.lock.Lock()
	if r.closed {
		r.lock.Unlock()
		return
	}
	r.closed = true
	r.sessions = map[string]*session{}
	r.lock.Unlock()

	if r.janitorTicker != nil {
		r.janitorTicker.Stop()
		close(r.janitorQuit)
		r.janitorWaitGroup.Wait()
	}
}
