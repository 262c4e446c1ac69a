package coding

type PutGetRemover interface {
	Putter
	Getter
	Remove([]byte) error
}

// IncrementInt64By adds delta to the counter at key. A missing counter
// starts at zero.
func IncrementInt64By(pgr PutGetRemover, key []byte, delta int64, deleteOnZero bool) (int64, error) {
	value, _ := GetInt64(pgr, key)
	value += delta
	if value == 0 && deleteOnZero {
		return value, pgr.Remove(key)
	}
	return value, PutInt64(pgr, key, value)
}
