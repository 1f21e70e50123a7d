// Package blobstore wraps the S3-compatible object store that holds both the
// shared JSON document database and the uploaded benchmark files.
package blobstore

import (
	"context"
	"errors"
)

// Failure kinds. Callers at the form boundary collapse every failure to an
// empty default, but the distinction stays available for diagnostics.
var (
	ErrNotFound     = errors.New("blobstore: object not found")
	ErrUnauthorized = errors.New("blobstore: access denied")
)

// Store is the gateway surface consumed by the repositories and services.
type Store interface {
	// ReadJSON unmarshals the JSON document stored under the configured
	// JSON prefix. Returns ErrNotFound when the document does not exist.
	ReadJSON(ctx context.Context, name string, v interface{}) error
	// WriteJSON marshals v and stores it under the JSON prefix, replacing
	// any previous version whole.
	WriteJSON(ctx context.Context, name string, v interface{}) error
	// Upload stores raw file content at the bucket root under name,
	// replacing an existing object of the same name.
	Upload(ctx context.Context, name string, content []byte) error
	// List returns the base names of all bucket objects outside the JSON
	// prefix.
	List(ctx context.Context) ([]ObjectInfo, error)
	// Exists reports whether an object named name exists at the bucket
	// root.
	Exists(ctx context.Context, name string) (bool, error)
}

// ObjectInfo is the listing metadata the catalog needs.
type ObjectInfo struct {
	Name         string
	LastModified string
}
