package db

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

var implementations = map[string]Constructor{}

func RegisterImplementation(name string, constructor Constructor) {
	if _, ok := implementations[name]; ok {
		panic(fmt.Sprintf("database implementation with name [%s] is already registered", name))
	}
	implementations[name] = constructor
}

type Constructor func(config *viper.Viper) (Interface, error)

type Manipulator interface {
	GetBytes(key []byte) ([]byte, error)
	PutBytes(key []byte, value []byte, ttl *time.Duration) error
	HasKey(key []byte) bool
	Remove(key []byte) error
	RemovePrefix(prefix []byte) error
	CountPrefix(prefix []byte) int
}

// Interface is a key/value store. Update runs fn in one read-write
// transaction and commits it when fn returns nil.
type Interface interface {
	Manipulator
	Update(fn func(Transaction) error) error
	Close() error
}

type Transaction interface {
	Manipulator
}
