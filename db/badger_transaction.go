package db

import (
	"time"

	"github.com/dgraph-io/badger"
)

type BadgerTransaction struct {
	txn *badger.Txn
}

func (bt *BadgerTransaction) PutBytes(key, value []byte, ttl *time.Duration) error {
	err := error(nil)
	if ttl == nil {
		err = bt.txn.Set(key, value)
	} else {
		err = bt.txn.SetWithTTL(key, value, *ttl)
	}
	if err == badger.ErrTxnTooBig {
		return ErrTransactionTooBig
	}
	return err
}

// GetBytes returns a copy of the value, safe to use after the transaction
// ends.
func (bt *BadgerTransaction) GetBytes(key []byte) ([]byte, error) {
	item, err := bt.txn.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}

	value, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (bt *BadgerTransaction) HasKey(key []byte) bool {
	_, err := bt.txn.Get(key)
	return err == nil
}

func (bt *BadgerTransaction) Remove(key []byte) error {
	err := bt.txn.Delete(key)
	if err == badger.ErrTxnTooBig {
		return ErrTransactionTooBig
	}
	return err
}

func (bt *BadgerTransaction) RemovePrefix(prefix []byte) error {
	keys := [][]byte{}
	err := bt.forPrefix(prefix, false, func(itemKey, _ []byte) (bool, error) {
		key := make([]byte, len(itemKey))
		copy(key, itemKey)
		keys = append(keys, key)
		return true, nil
	})
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := bt.Remove(key); err != nil {
			return err
		}
	}

	return nil
}

func (bt *BadgerTransaction) CountPrefix(prefix []byte) int {
	count := 0
	bt.forPrefix(prefix, false, func(_, _ []byte) (bool, error) {
		count++
		return true, nil
	})
	return count
}

func (bt *BadgerTransaction) Discard() {
	bt.txn.Discard()
}

func (bt *BadgerTransaction) forPrefix(prefix []byte, fetchValues bool, fn func([]byte, []byte) (bool, error)) error {
	options := badger.DefaultIteratorOptions
	options.PrefetchValues = fetchValues
	it := bt.txn.NewIterator(options)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		key := append([]byte(nil), it.Item().Key()...)
		ok, err := false, error(nil)
		if fetchValues {
			value, valueErr := it.Item().ValueCopy(nil)
			if valueErr != nil {
				return valueErr
			}
			ok, err = fn(key, value)
		} else {
			ok, err = fn(key, nil)
		}
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}

	return nil
}
