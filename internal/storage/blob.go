package storage

import "io"

// BlobStore backs the asset uploader. Keys are slash separated, e.g.
// "audio/<uuid>.mp3".
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	SignedURL(key string) (string, error) // FSStore returns a file:// URL
}
