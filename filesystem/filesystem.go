// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// It utilizes the afero library to allow seamless switching between OS-level and in-memory filesystem backends.
// Every favicon write, stat, rename and removal goes through API().
package filesystem

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs initializes a volatile in-memory filesystem backend for unit testing.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// WriteStream creates or truncates path and copies r into it.
// Missing parent directories are created.
func WriteStream(path string, r io.Reader) (written int64, err error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err = backend.MkdirAll(dir, os.ModePerm); err != nil {
			return 0, err
		}
	}

	f, err := backend.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return io.Copy(f, r)
}

// ReadHeader returns up to n leading bytes of the file at path.
func ReadHeader(path string, n int) ([]byte, error) {
	f, err := backend.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:read], nil
}
