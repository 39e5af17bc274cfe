package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// FileReader is the file access the parsers depend on
type FileReader interface {
	// Exists reports whether a file is present at path.
	Exists(ctx context.Context, path string) (bool, error)
	// ReadJSON decodes the JSON file at path into v. Decode and I/O errors
	// are returned as-is.
	ReadJSON(ctx context.Context, path string, v any) error
}

// OSFileReader reads files from the local filesystem
type OSFileReader struct{}

// NewOSFileReader creates a new OSFileReader
func NewOSFileReader() *OSFileReader {
	return &OSFileReader{}
}

// Exists returns false without error when path does not exist
func (r *OSFileReader) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadJSON reads the whole file and unmarshals it into v
func (r *OSFileReader) ReadJSON(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
