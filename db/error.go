package db

import "errors"

var ErrKeyNotFound = errors.New("key not found")
var ErrTransactionTooBig = errors.New("transaction too big")
var ErrTransactionConflict = errors.New("transaction conflict")
