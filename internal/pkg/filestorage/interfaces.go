package filestorage

import "io"

// Storage defines the byte-stream store used by the report pipeline for
// rendered output and markup snapshots.
type Storage interface {
	// SaveBytes persists data under subPath/filename and returns the stored
	// (relative) path recorded on the artifact.
	SaveBytes(data []byte, subPath, filename string) (string, error)

	// Open opens a previously stored file for reading.
	Open(storedPath string) (io.ReadCloser, error)

	// Exists reports whether the stored path is still present on disk.
	Exists(storedPath string) bool

	// FullPath resolves a stored path to the full filesystem path.
	FullPath(storedPath string) string
}
