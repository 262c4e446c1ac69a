package db_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"gitlab.com/semkodev/ccurl/db"
)

type environment struct {
	db       db.Interface
	tearDown func()
}

type setUpFunc func() (*viper.Viper, func())

func setUpTestEnvironment(tb testing.TB, setUpFn setUpFunc) *environment {
	config, tearDownFn := setUpFn()

	database, err := db.Load(config)
	require.NoError(tb, err)

	return &environment{
		db: database,
		tearDown: func() {
			require.NoError(tb, database.Close())
			tearDownFn()
		},
	}
}
