package fsx

import (
	"context"
	"io"
	"path"
)

// FileSystem abstracts blob storage for uploaded documents
type FileSystem interface {
	// ReadFile returns the full contents of a stored file
	ReadFile(ctx context.Context, filePath string) ([]byte, error)

	// WriteFileStream stores a file from a reader
	WriteFileStream(ctx context.Context, filePath string, reader io.Reader) error

	// DeleteFile removes a stored file
	DeleteFile(ctx context.Context, filePath string) error

	// Exists checks whether a file is stored
	Exists(ctx context.Context, filePath string) (bool, error)

	// Join builds a storage path from segments
	Join(segments ...string) string
}

// Join is the default path joiner shared by implementations
func Join(segments ...string) string {
	return path.Join(segments...)
}
