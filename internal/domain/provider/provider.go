// Package provider declares the side-effecting collaborators the user
// services depend on: password hashing and avatar file storage.
package provider

import (
	"context"
	"errors"
)

// ErrFileNotFound is returned by storage providers when the file to store or
// remove cannot be resolved.
var ErrFileNotFound = errors.New("file not found")

// HashProvider hashes and verifies passwords.
type HashProvider interface {
	GenerateHash(plain string) (string, error)
	Compare(plain, hashed string) bool
}

// StorageProvider moves staged uploads into permanent storage.
// SaveFile takes the name of a file already present in the staging folder and
// returns the name under which it is stored. DeleteFile tolerates absent files.
type StorageProvider interface {
	SaveFile(ctx context.Context, file string) (string, error)
	DeleteFile(ctx context.Context, file string) error
}
