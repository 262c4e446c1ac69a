package db_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/semkodev/ccurl/db"
	"gitlab.com/semkodev/ccurl/db/coding"
	"gitlab.com/semkodev/ccurl/db/ns"
)

var (
	testKey   = []byte("key")
	testValue = []byte("value")
)

func InterfaceSuite(t *testing.T, setUpFn setUpFunc) {
	t.Run("PutBytes", func(t *testing.T) {
		e := setUpTestEnvironment(t, setUpFn)
		defer e.tearDown()

		require.NoError(t,
			e.db.PutBytes(testKey, testValue, nil))
	})

	t.Run("GetBytes", func(t *testing.T) {
		e := setUpTestEnvironment(t, setUpFn)
		defer e.tearDown()

		require.NoError(t,
			e.db.PutBytes(testKey, testValue, nil))

		value, err := e.db.GetBytes(testKey)
		require.NoError(t, err)

		assert.Equal(t, "value", string(value))
	})

	t.Run("GetBytesMissing", func(t *testing.T) {
		e := setUpTestEnvironment(t, setUpFn)
		defer e.tearDown()

		_, err := e.db.GetBytes(testKey)
		assert.Equal(t, db.ErrKeyNotFound, errors.Cause(err))
	})

	t.Run("PutBytesWithTTL", func(t *testing.T) {
		e := setUpTestEnvironment(t, setUpFn)
		defer e.tearDown()

		ttl := time.Hour
		require.NoError(t,
			e.db.PutBytes(testKey, testValue, &ttl))

		assert.True(t, e.db.HasKey(testKey))
	})

	t.Run("HasKey", func(t *testing.T) {
		e := setUpTestEnvironment(t, setUpFn)
		defer e.tearDown()

		require.NoError(t,
			e.db.PutBytes(testKey, testValue, nil))

		assert.True(t, e.db.HasKey(testKey))
		assert.False(t, e.db.HasKey([]byte("other")))
	})

	t.Run("Coding", func(t *testing.T) {
		e := setUpTestEnvironment(t, setUpFn)
		defer e.tearDown()

		require.NoError(t, coding.PutString(e.db, testKey, "HELLOWORLD"))

		value, err := coding.GetString(e.db, testKey)
		require.NoError(t, err)
		assert.Equal(t, "HELLOWORLD", value)
	})

	t.Run("Remove", func(t *testing.T) {
		e := setUpTestEnvironment(t, setUpFn)
		defer e.tearDown()

		require.NoError(t,
			e.db.PutBytes(testKey, testValue, nil))

		require.NoError(t,
			e.db.Remove(testKey))

		assert.False(t, e.db.HasKey(testKey))
	})

	t.Run("RemovePrefix", func(t *testing.T) {
		e := setUpTestEnvironment(t, setUpFn)
		defer e.tearDown()

		require.NoError(t, e.db.PutBytes([]byte("abc"), testValue, nil))
		require.NoError(t, e.db.PutBytes([]byte("aac"), testValue, nil))

		require.NoError(t,
			e.db.RemovePrefix([]byte("aa")))

		assert.True(t, e.db.HasKey([]byte("abc")))
		assert.False(t, e.db.HasKey([]byte("aac")))
	})

	t.Run("CountPrefix", func(t *testing.T) {
		e := setUpTestEnvironment(t, setUpFn)
		defer e.tearDown()

		require.NoError(t, e.db.PutBytes([]byte("abc"), testValue, nil))
		require.NoError(t, e.db.PutBytes([]byte("aac"), testValue, nil))
		require.NoError(t, e.db.PutBytes([]byte("bac"), testValue, nil))

		assert.Equal(t, 2, e.db.CountPrefix([]byte("a")))
	})

	t.Run("Namespace", func(t *testing.T) {
		e := setUpTestEnvironment(t, setUpFn)
		defer e.tearDown()

		require.NoError(t, e.db.PutBytes(ns.HashKey([]byte("a"), ns.NamespaceDigest), testValue, nil))
		require.NoError(t, e.db.PutBytes(ns.HashKey([]byte("b"), ns.NamespaceDigest), testValue, nil))
		require.NoError(t, e.db.PutBytes(ns.Key([]byte("hashed"), ns.NamespaceStats), testValue, nil))

		assert.Equal(t, 2, ns.Count(e.db, ns.NamespaceDigest))
		require.NoError(t, ns.Remove(e.db, ns.NamespaceDigest))
		assert.Equal(t, 0, ns.Count(e.db, ns.NamespaceDigest))
		assert.Equal(t, 1, ns.Count(e.db, ns.NamespaceStats))
	})

	t.Run("IncrementInt64By", func(t *testing.T) {
		e := setUpTestEnvironment(t, setUpFn)
		defer e.tearDown()

		require.NoError(t, coding.PutInt64(e.db, testKey, 1000))

		value, err := coding.IncrementInt64By(e.db, testKey, 10, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1010), value)

		value, err = coding.GetInt64(e.db, testKey)
		require.NoError(t, err)
		assert.Equal(t, int64(1010), value)
	})

	t.Run("Transaction", func(t *testing.T) {
		e := setUpTestEnvironment(t, setUpFn)
		defer e.tearDown()

		require.NoError(t, e.db.Update(func(tx db.Transaction) error {
			if err := tx.PutBytes([]byte("abc"), testValue, nil); err != nil {
				return err
			}
			return tx.PutBytes([]byte("abd"), testValue, nil)
		}))

		assert.Equal(t, 2, e.db.CountPrefix([]byte("ab")))

		require.NoError(t, e.db.Update(func(tx db.Transaction) error {
			if err := tx.Remove([]byte("abc")); err != nil {
				return err
			}
			assert.False(t, tx.HasKey([]byte("abc")))
			return nil
		}))
		assert.False(t, e.db.HasKey([]byte("abc")))

		// a failing update is rolled back
		failure := errors.New("rollback")
		assert.Equal(t, failure, e.db.Update(func(tx db.Transaction) error {
			if err := tx.Remove([]byte("abd")); err != nil {
				return err
			}
			return failure
		}))
		assert.True(t, e.db.HasKey([]byte("abd")))
	})
}
