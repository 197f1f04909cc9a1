package uploads

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
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	s := NewService(dir, "/static/uploads")

	url, err := s.SaveImage(fileHeader(t, "avatar.PNG", []byte("fake png bytes")), "avatars")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/static/uploads/avatars/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	rel := strings.TrimPrefix(url, "/static/uploads/")
	saved, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), saved)
}

func TestSaveImageRejectsExtension(t *testing.T) {
	s := NewService(t.TempDir(), "/static/uploads")

	_, err := s.SaveImage(fileHeader(t, "doc.gif", []byte("x")), "avatars")
	require.ErrorIs(t, err, ErrInvalidExtension)

	_, err = s.SaveImage(fileHeader(t, "doc.pdf", []byte("x")), "avatars")
	require.ErrorIs(t, err, ErrInvalidExtension)
}

func TestSaveImageRejectsEmptyFile(t *testing.T) {
	s := NewService(t.TempDir(), "/static/uploads")

	_, err := s.SaveImage(fileHeader(t, "a.jpg", nil), "avatars")
	require.ErrorIs(t, err, ErrEmptyFile)
}
