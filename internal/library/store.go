package library

import (
	"context"
	"errors"
)

// ErrLibraryNotFound is returned by Store implementations when the given
// library id does not exist.
var ErrLibraryNotFound = errors.New("library not found")

// Store is the injected port to the external document store. Implementations
// must provide snapshot semantics: one Documents or Folders call observes a
// single consistent state of the library, never a live cursor.
type Store interface {
	// Documents enumerates every document record of the library.
	Documents(ctx context.Context, libraryID int64) ([]Document, error)

	// Folders enumerates every folder record of the library.
	Folders(ctx context.Context, libraryID int64) ([]Folder, error)

	// LibraryName resolves the library's display name. Best-effort; callers
	// fall back to DefaultLibraryName on error.
	LibraryName(ctx context.Context, libraryID int64) (string, error)
}
