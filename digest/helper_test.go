package digest

import (
	"sync"

	"github.com/pkg/errors"

	"gitlab.com/semkodev/ccurl/db"
)

type storage struct {
	sync.Mutex
	digests map[string]string
	puts    int
	failPut bool
}

func newStorage() *storage {
	return &storage{digests: map[string]string{}}
}

func (s *storage) Get(fingerprint []byte) (string, error) {
	s.Lock()
	defer s.Unlock()
	digest, ok := s.digests[string(fingerprint)]
	if !ok {
		return "", db.ErrKeyNotFound
	}
	return digest, nil
}

func (s *storage) Put(fingerprint []byte, digest string) error {
	s.Lock()
	defer s.Unlock()
	if s.failPut {
		return errors.New("disk full")
	}
	s.puts++
	s.digests[string(fingerprint)] = digest
	return nil
}

func (s *storage) Count() int {
	s.Lock()
	defer s.Unlock()
	return len(s.digests)
}
