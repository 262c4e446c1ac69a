package coding

import (
	"bytes"
	"encoding/gob"
)

type Getter interface {
	GetBytes([]byte) ([]byte, error)
}

// Get decodes the gob encoded value stored at key into value.
func Get(g Getter, key []byte, value interface{}) error {
	buffer, err := g.GetBytes(key)
	if err != nil {
		return err
	}
	return gob.NewDecoder(bytes.NewReader(buffer)).Decode(value)
}

func GetBool(g Getter, key []byte) (bool, error) {
	value := false
	err := Get(g, key, &value)
	return value, err
}

func GetBytes(g Getter, key []byte) ([]byte, error) {
	var value []byte
	err := Get(g, key, &value)
	return value, err
}

func GetInt(g Getter, key []byte) (int, error) {
	value := 0
	err := Get(g, key, &value)
	return value, err
}

func GetInt64(g Getter, key []byte) (int64, error) {
	value := int64(0)
	err := Get(g, key, &value)
	return value, err
}

func GetString(g Getter, key []byte) (string, error) {
	value := ""
	err := Get(g, key, &value)
	return value, err
}
