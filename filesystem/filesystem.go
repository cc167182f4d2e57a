// Package filesystem holds the afero backend every package reads and writes through.
package filesystem

import "github.com/spf13/afero"

var backend = osBackend()

func osBackend() afero.Afero {
	return afero.Afero{Fs: afero.NewOsFs()}
}

// API returns the current backend.
func API() afero.Afero {
	return backend
}

// SetOsFs switches back to the real disk.
func SetOsFs() {
	backend = osBackend()
}

// SetMemMapFs switches to an in-memory backend, used by tests.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}
