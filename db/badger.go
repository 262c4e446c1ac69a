package db

import (
	"sync"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"gitlab.com/semkodev/ccurl/config"
	"gitlab.com/semkodev/ccurl/logs"
	"gitlab.com/semkodev/ccurl/utils"
)

func init() {
	RegisterImplementation("badger", startBadger)
}

type Badger struct {
	db                     *badger.DB
	dbLock                 *sync.Mutex
	cleanUpTicker          *time.Ticker
	cleanUpTickerWaitGroup *sync.WaitGroup
	cleanUpTickerQuit      chan struct{}
}

func startBadger(viperConfig *viper.Viper) (Interface, error) {
	options, cleanUpInterval := config.ConfigureBadger(viperConfig)

	if err := utils.CreateDirectory(options.Dir); err != nil {
		return nil, errors.Wrapf(err, "create db directory [%s]", options.Dir)
	}

	logs.Log.Infof("Loading database at %s", options.Dir)
	db, err := badger.Open(options)
	if err != nil {
		return nil, errors.Wrapf(err, "open db [%s]", options.Dir)
	}
	logs.Log.Info("Database loaded")

	b := &Badger{
		db:                     db,
		dbLock:                 &sync.Mutex{},
		cleanUpTicker:          time.NewTicker(cleanUpInterval),
		cleanUpTickerWaitGroup: &sync.WaitGroup{},
		cleanUpTickerQuit:      make(chan struct{}),
	}
	b.cleanUpTickerWaitGroup.Add(1)
	go b.cleanUp()
	return b, nil
}

func (b *Badger) PutBytes(key, value []byte, ttl *time.Duration) error {
	return b.Update(func(t Transaction) error {
		return t.PutBytes(key, value, ttl)
	})
}

func (b *Badger) GetBytes(key []byte) ([]byte, error) {
	tx := b.newTransaction()
	defer tx.Discard()

	return tx.GetBytes(key)
}

func (b *Badger) HasKey(key []byte) bool {
	tx := b.newTransaction()
	defer tx.Discard()

	return tx.HasKey(key)
}

func (b *Badger) Remove(key []byte) error {
	return b.Update(func(t Transaction) error {
		return t.Remove(key)
	})
}

func (b *Badger) RemovePrefix(prefix []byte) error {
	return b.Update(func(t Transaction) error {
		return t.RemovePrefix(prefix)
	})
}

func (b *Badger) CountPrefix(prefix []byte) int {
	tx := b.newTransaction()
	defer tx.Discard()

	return tx.CountPrefix(prefix)
}

// newTransaction opens a read-only transaction. Callers discard it.
func (b *Badger) newTransaction() *BadgerTransaction {
	return &BadgerTransaction{txn: b.db.NewTransaction(false)}
}

func (b *Badger) Update(fn func(Transaction) error) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return fn(&BadgerTransaction{txn: txn})
	})
	if err == badger.ErrConflict {
		return ErrTransactionConflict
	}
	return err
}

// Close waits for a running cleanup and closes the database. Should be
// called before exiting.
func (b *Badger) Close() error {
	b.cleanUpTicker.Stop()
	close(b.cleanUpTickerQuit)

	b.cleanUpTickerWaitGroup.Wait()

	b.dbLock.Lock()
	defer b.dbLock.Unlock()
	return b.db.Close()
}

func (b *Badger) cleanUp() {
	defer b.cleanUpTickerWaitGroup.Done()

	for {
		select {
		case <-b.cleanUpTickerQuit:
			return

		case <-b.cleanUpTicker.C:
			executeCleanUp(b)
		}
	}
}

func executeCleanUp(b *Badger) {
	logs.Log.Debug("Cleanup database started")
	b.dbLock.Lock()
	b.db.RunValueLogGC(0.5)
	b.dbLock.Unlock()
	logs.Log.Debug("Cleanup database finished")
}
