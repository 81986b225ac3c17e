package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mind-engage/mindengage-mocktest/internal/storage"
)

const maxAssetBytes = 32 << 20

// MountAssets serves question media. bs may be nil when uploads go to a
// store that serves its own URLs.
func MountAssets(r chi.Router, up storage.Uploader, bs storage.BlobStore) {
	// POST /assets/{kind}  multipart field "file"
	r.Post("/{kind}", func(w http.ResponseWriter, r *http.Request) {
		kind, err := storage.ParseAssetKind(chi.URLParam(r, "kind"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxAssetBytes)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		ref, err := up.Upload(r.Context(), kind, hdr.Filename, f)
		if err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"url": ref})
	})

	if bs == nil {
		return
	}
	// GET /assets/*   -> returns the blob at whatever follows /assets/
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		rc, err := bs.Get(key)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.Copy(w, rc)
	})
}
