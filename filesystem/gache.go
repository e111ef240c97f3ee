package filesystem

import (
	"io"
	"os"
	"time"

	"github.com/metafates/gache"
)

// NewCache returns a JSON cache stored at path on whichever backend API
// currently points to. A non-positive lifetime never expires.
func NewCache[T any](path string, lifetime time.Duration) *gache.Cache[T] {
	if lifetime <= 0 {
		lifetime = -1
	}

	return gache.New[T](&gache.Options{
		Path:       path,
		Lifetime:   lifetime,
		FileSystem: cacheFs{},
	})
}

// cacheFs resolves API on every call so that swapping backends in tests also
// moves caches created at package init.
type cacheFs struct{}

func (cacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (cacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
