package parser

import (
	"context"
	"encoding/json"
	"errors"
)

// memReader serves JSON documents from memory and counts calls
type memReader struct {
	files      map[string]string
	existsErr  error
	existCalls int
	readCalls  int
}

func newMemReader(files map[string]string) *memReader {
	return &memReader{files: files}
}

func (r *memReader) Exists(_ context.Context, path string) (bool, error) {
	r.existCalls++
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.files[path]
	return ok, nil
}

func (r *memReader) ReadJSON(_ context.Context, path string, v any) error {
	r.readCalls++
	content, ok := r.files[path]
	if !ok {
		return errors.New("no such file: " + path)
	}
	return json.Unmarshal([]byte(content), v)
}
