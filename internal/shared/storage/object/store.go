package object

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
)

// ErrNotFound is returned by Open when no object exists under a key.
var ErrNotFound = errors.New("object not found")

// Info describes a stored object.
type Info struct {
	ContentType string
	Size        int64
}

// MediaStore holds portrait, project and certificate images addressed by
// slash-separated keys.
type MediaStore interface {
	Put(ctx context.Context, key string, r io.Reader) (Info, error)
	Open(ctx context.Context, key string) (io.ReadCloser, Info, error)
}

// Sniff reads up to 512 bytes from r to detect its content type and returns a
// reader that replays them.
func Sniff(r io.Reader) (string, io.Reader, error) {
	var buf [512]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head := append([]byte(nil), buf[:n]...)
	return http.DetectContentType(head), io.MultiReader(bytes.NewReader(head), r), nil
}
