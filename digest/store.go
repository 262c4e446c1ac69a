package digest

import (
	"github.com/pkg/errors"

	"gitlab.com/semkodev/ccurl/db"
	"gitlab.com/semkodev/ccurl/db/coding"
	"gitlab.com/semkodev/ccurl/db/ns"
)

var storedKey = ns.Key([]byte("stored"), ns.NamespaceStats)

type Storage interface {
	Get(fingerprint []byte) (string, error)
	Put(fingerprint []byte, digest string) error
	Count() int
}

// Store persists digest trytes in the database under the md5 thumbnail of
// their fingerprint.
type Store struct {
	db db.Interface
}

func NewStore(database db.Interface) *Store {
	return &Store{db: database}
}

func (s *Store) Get(fingerprint []byte) (string, error) {
	digest, err := coding.GetString(s.db, ns.HashKey(fingerprint, ns.NamespaceDigest))
	if err != nil {
		return "", errors.Wrap(err, "get digest")
	}
	return digest, nil
}

func (s *Store) Put(fingerprint []byte, digest string) error {
	key := ns.HashKey(fingerprint, ns.NamespaceDigest)
	return s.db.Update(func(tx db.Transaction) error {
		isNew := !tx.HasKey(key)
		if err := coding.PutString(tx, key, digest); err != nil {
			return errors.Wrap(err, "put digest")
		}
		if !isNew {
			return nil
		}
		_, err := coding.IncrementInt64By(tx, storedKey, 1, false)
		return errors.Wrap(err, "count digest")
	})
}

// Count walks the digest namespace.
func (s *Store) Count() int {
	return ns.Count(s.db, ns.NamespaceDigest)
}

// Stored returns the number of digests ever written, as kept in the stats
// namespace.
func (s *Store) Stored() int64 {
	stored, _ := coding.GetInt64(s.db, storedKey)
	return stored
}

func (s *Store) Purge() error {
	return ns.Remove(s.db, ns.NamespaceDigest)
}
