// Package store persists the collated document to an object store.
//
// [Blob] is the minimal read/modify/write surface the job needs. [Update]
// implements the merge: it reads the existing JSON object at a key, replaces
// the top-level members it is given, and writes the result back. Members it
// is not given are left alone, so other producers can share the document.
//
// Backends:
//
//   - [S3Store]: AWS S3 or any S3-compatible service via minio-go
//   - [MongoStore]: one MongoDB document per key
//   - [LocalStore]: files under a directory
//   - [MemoryStore]: in-process, for tests
package store

import (
	"context"
	stderrors "errors"
)

// ErrNotFound is returned by [Blob.Get] for a key that does not exist.
var ErrNotFound = stderrors.New("object not found")

// Blob is a key/value object store.
type Blob interface {
	// Connect prepares the store for use. It is idempotent.
	Connect(ctx context.Context) error
	IsConnected() bool
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	// Location describes where key lives, for messages.
	Location(key string) string
	Close(ctx context.Context) error
}
