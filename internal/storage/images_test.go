package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestImageStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(filepath.Join(dir, "uploads"), 1024)
	require.NoError(t, err)

	url, err := store.Save(fileHeader(t, "Cake.PNG", []byte("png-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, URLPrefix+"/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored, err := os.ReadFile(filepath.Join(store.Dir, strings.TrimPrefix(url, URLPrefix+"/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), stored)
}

func TestImageStore_Rejects(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 4)
	require.NoError(t, err)

	_, err = store.Save(fileHeader(t, "script.sh", []byte("x")))
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = store.Save(fileHeader(t, "big.jpg", []byte("too many bytes")))
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestImageStore_Remove(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 1024)
	require.NoError(t, err)

	url, err := store.Save(fileHeader(t, "tart.jpg", []byte("jpg-bytes")))
	require.NoError(t, err)
	require.NoError(t, store.Remove(url))

	entries, err := os.ReadDir(store.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// already gone, foreign and traversal URLs are no-ops
	assert.NoError(t, store.Remove(url))
	assert.NoError(t, store.Remove("https://cdn.example.com/cake.png"))
	assert.NoError(t, store.Remove(URLPrefix+"/../secret.png"))
}
