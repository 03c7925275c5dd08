// Package blob stores profile pictures on local disk and serves them by
// public URL. Content is sniffed; only images are accepted.
package blob

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"skillswap/errors"
)

// Handle points at one stored blob, relative to the store root.
type Handle string

type Store struct {
	root    string
	baseURL string
	log     *slog.Logger
}

func NewStore(root, baseURL string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root, baseURL: strings.TrimRight(baseURL, "/"), log: log}, nil
}

// Upload writes the bytes under the given logical path. The extension is
// derived from the sniffed MIME type, never from the caller.
func (s *Store) Upload(logicalPath string, data []byte) (Handle, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %w (%s)", errors.ErrValidation, errors.ErrNotAnImage, mt.String())
	}

	rel := path.Clean(logicalPath)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: invalid blob path %q", errors.ErrValidation, logicalPath)
	}
	rel += mt.Extension()

	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}

	s.log.Debug("Blob stored", "path", rel, "mime", mt.String(), "bytes", len(data))
	return Handle(rel), nil
}

// PublicURL resolves a handle to its externally reachable URL.
func (s *Store) PublicURL(h Handle) string {
	return s.baseURL + "/" + path.Clean(string(h))
}
