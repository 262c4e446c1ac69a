package config

import (
	"time"

	"github.com/dgraph-io/badger"
	"github.com/dgraph-io/badger/options"
	"github.com/spf13/viper"
)

func ConfigureBadger(config *viper.Viper) (badger.Options, time.Duration) {
	path := config.GetString("database.path")
	light := config.GetBool("light")

	cleanUpInterval := 5 * time.Minute

	badgerOptions := badger.DefaultOptions
	badgerOptions.Dir = path
	badgerOptions.ValueDir = path
	badgerOptions.ValueLogLoadingMode = options.FileIO
	badgerOptions.TableLoadingMode = options.FileIO
	if light {
		// Source: https://github.com/dgraph-io/badger#memory-usage
		badgerOptions.NumMemtables = 1
		badgerOptions.NumLevelZeroTables = 1
		badgerOptions.NumLevelZeroTablesStall = 2
		badgerOptions.NumCompactors = 1
		badgerOptions.MaxLevels = 5
		badgerOptions.LevelOneSize = 256 << 18
		badgerOptions.MaxTableSize = 64 << 18
		badgerOptions.ValueLogFileSize = 1 << 25
		badgerOptions.ValueLogMaxEntries = 250000
		cleanUpInterval = 2 * time.Minute
	}
	return badgerOptions, cleanUpInterval
}
