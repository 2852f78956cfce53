package lazybtree

import (
	"github.com/cockroachdb/errors"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyExists   = errors.New("key already exists")
)
