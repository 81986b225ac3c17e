package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AssetKind is the class of media an author attaches to a question.
type AssetKind string

const (
	KindAudio AssetKind = "audio"
	KindImage AssetKind = "image"
)

func ParseAssetKind(s string) (AssetKind, error) {
	switch k := AssetKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAudio, KindImage:
		return k, nil
	default:
		return "", fmt.Errorf("unknown asset kind %q", s)
	}
}

// Uploader stores an asset and returns an opaque resource reference.
type Uploader interface {
	Upload(ctx context.Context, kind AssetKind, name string, r io.Reader) (string, error)
}

// BlobUploader writes assets to a BlobStore. When BaseURL is set references
// are served from BaseURL + "/" + key, otherwise the store's signed URL is used.
type BlobUploader struct {
	Store   BlobStore
	BaseURL string
}

func (u BlobUploader) Upload(ctx context.Context, kind AssetKind, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := ParseAssetKind(string(kind)); err != nil {
		return "", err
	}
	key := string(kind) + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(name))
	key, err := u.Store.Put(key, r)
	if err != nil {
		return "", fmt.Errorf("store %s: %w", kind, err)
	}
	if u.BaseURL != "" {
		return strings.TrimSuffix(u.BaseURL, "/") + "/" + key, nil
	}
	return u.Store.SignedURL(key)
}

// MockUploader returns synthetic references without storing anything.
type MockUploader struct {
	BaseURL string
}

func (u MockUploader) Upload(ctx context.Context, kind AssetKind, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := ParseAssetKind(string(kind)); err != nil {
		return "", err
	}
	if r != nil {
		_, _ = io.Copy(io.Discard, r)
	}
	base := u.BaseURL
	if base == "" {
		base = "https://assets.mock.local"
	}
	return fmt.Sprintf("%s/%s/%s%s", strings.TrimSuffix(base, "/"), kind, uuid.NewString(), strings.ToLower(filepath.Ext(name))), nil
}
