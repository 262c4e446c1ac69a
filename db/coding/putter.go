package coding

import (
	"bytes"
	"encoding/gob"
	"time"
)

type Putter interface {
	PutBytes([]byte, []byte, *time.Duration) error
}

func Put(p Putter, key []byte, value interface{}, ttl *time.Duration) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return err
	}
	return p.PutBytes(key, buf.Bytes(), ttl)
}

func PutBool(p Putter, key []byte, value bool) error {
	return Put(p, key, value, nil)
}

func PutInt64(p Putter, key []byte, value int64) error {
	return Put(p, key, value, nil)
}

func PutString(p Putter, key []byte, value string) error {
	return Put(p, key, value, nil)
}
