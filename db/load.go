package db

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const DefaultType = "badger"

func Load(config *viper.Viper) (Interface, error) {
	databaseType := config.GetString("database.type")
	if len(databaseType) == 0 {
		databaseType = DefaultType
	}

	implementation, found := implementations[databaseType]
	if !found {
		return nil, errors.Errorf("could not load database of type [%s]", databaseType)
	}

	database, err := implementation(config)
	if err != nil {
		return nil, errors.Wrapf(err, "loading database [%s]", databaseType)
	}

	return database, nil
}
