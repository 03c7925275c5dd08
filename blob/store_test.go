package blob

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"skillswap/errors"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func Test_Upload_Stores_Image_With_Sniffed_Extension(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	store, err := NewStore(root, "http://localhost:8080/blobs/", slog.Default())
	req.NoError(err)

	handle, err := store.Upload("profilePictures/u1", pngHeader)
	req.NoError(err)
	req.Equal(Handle("profilePictures/u1.png"), handle)

	data, err := os.ReadFile(filepath.Join(root, "profilePictures", "u1.png"))
	req.NoError(err)
	req.Equal(pngHeader, data)

	req.Equal("http://localhost:8080/blobs/profilePictures/u1.png", store.PublicURL(handle))
}

func Test_Upload_Rejects_Non_Image(t *testing.T) {
	req := require.New(t)
	store, err := NewStore(t.TempDir(), "http://localhost:8080/blobs", slog.Default())
	req.NoError(err)

	_, err = store.Upload("profilePictures/u1", []byte("{\"not\": \"an image\"}"))
	req.ErrorIs(err, errors.ErrValidation)
	req.ErrorIs(err, errors.ErrNotAnImage)
}

func Test_Upload_Rejects_Path_Escape(t *testing.T) {
	req := require.New(t)
	store, err := NewStore(t.TempDir(), "http://localhost:8080/blobs", slog.Default())
	req.NoError(err)

	for _, p := range []string{"../outside", "a/../../outside", "."} {
		_, err = store.Upload(p, pngHeader)
		req.ErrorIs(err, errors.ErrValidation, "path %q", p)
	}
}
