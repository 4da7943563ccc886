package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"estate_backend/internal/storage"
	"estate_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeFileHeader builds a real *multipart.FileHeader by writing and re-parsing
// a multipart body, so fh.Open() works like it does in handlers.
func makeFileHeader(t *testing.T, fieldName, fileName, content string) *multipart.FileHeader {
	t.Helper()
	return makeTypedFileHeader(t, fieldName, fileName, content, "")
}

// makeTypedFileHeader additionally sets an explicit Content-Type on the part,
// the way browsers do for known file types.
func makeTypedFileHeader(t *testing.T, fieldName, fileName, content, contentType string) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, fileName))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File[fieldName]
	require.Len(t, files, 1)
	return files[0]
}

type recordingUploader struct {
	seenPath       string
	existedOnEntry bool
	fail           bool
}

func (u *recordingUploader) Upload(ctx context.Context, localPath string, folder string) (string, error) {
	u.seenPath = localPath
	_, err := os.Stat(localPath)
	u.existedOnEntry = err == nil
	if u.fail {
		return "", errors.New("upload rejected")
	}
	return "https://host/" + folder + "/img.jpg", nil
}

func TestSaveTempFileWritesContent(t *testing.T) {
	fh := makeFileHeader(t, "portfolio[0][images]", "photo.jpg", "image bytes")

	path, err := SaveTempFile(fh)
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
	assert.True(t, strings.HasSuffix(path, ".jpg"))
}

func TestUploadFromFileHeaderCleansUpOnSuccess(t *testing.T) {
	fh := makeFileHeader(t, "portfolio[0][images]", "photo.jpg", "image bytes")
	up := &recordingUploader{}

	url, err := UploadFromFileHeader(context.Background(), up, fh, "portfolio")
	require.NoError(t, err)
	assert.Equal(t, "https://host/portfolio/img.jpg", url)

	assert.True(t, up.existedOnEntry, "temp file should exist while uploading")
	_, statErr := os.Stat(up.seenPath)
	assert.True(t, os.IsNotExist(statErr), "temp file must be removed after upload")
}

func TestUploadFromFileHeaderCleansUpOnFailure(t *testing.T) {
	fh := makeFileHeader(t, "portfolio[0][images]", "photo.jpg", "image bytes")
	up := &recordingUploader{fail: true}

	url, err := UploadFromFileHeader(context.Background(), up, fh, "portfolio")
	assert.Error(t, err)
	assert.Empty(t, url)

	_, statErr := os.Stat(up.seenPath)
	assert.True(t, os.IsNotExist(statErr), "temp file must be removed after a failed upload")
}

func TestStorageUploaderProducesURL(t *testing.T) {
	local, err := storage.NewLocalStorage(storage.Config{
		BasePath: t.TempDir(),
		BaseURL:  "https://cdn.estatehub.test",
	})
	require.NoError(t, err)

	fh := makeFileHeader(t, "portfolio[0][images]", "site.png", "png bytes")
	up := NewStorageUploader(local, UploadLimits{})

	url, err := UploadFromFileHeader(context.Background(), up, fh, "portfolio")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.estatehub.test/portfolio/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
}

func TestUploadRejectsOversizedPart(t *testing.T) {
	local, err := storage.NewLocalStorage(storage.Config{
		BasePath: t.TempDir(),
		BaseURL:  "https://cdn.estatehub.test",
	})
	require.NoError(t, err)

	fh := makeFileHeader(t, "portfolio[0][images]", "huge.jpg", strings.Repeat("x", 64))
	up := NewStorageUploader(local, UploadLimits{MaxSize: 16})

	url, err := UploadFromFileHeader(context.Background(), up, fh, "portfolio")
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	assert.Empty(t, url)
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	local, err := storage.NewLocalStorage(storage.Config{
		BasePath: t.TempDir(),
		BaseURL:  "https://cdn.estatehub.test",
	})
	require.NoError(t, err)

	limits := UploadLimits{AllowedTypes: []string{"image/jpeg", "image/png"}}
	up := NewStorageUploader(local, limits)

	fh := makeFileHeader(t, "portfolio[0][images]", "payload.exe", "MZ binary")
	url, err := UploadFromFileHeader(context.Background(), up, fh, "portfolio")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
	assert.Empty(t, url)

	fh = makeTypedFileHeader(t, "portfolio[0][images]", "site.png", "png bytes", "image/png")
	url, err = UploadFromFileHeader(context.Background(), up, fh, "portfolio")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}

func TestUniqueObjectNameKeepsExtension(t *testing.T) {
	name := UniqueObjectName("kitchen remodel.jpeg")
	assert.True(t, strings.HasSuffix(name, ".jpeg"))
	assert.NotEqual(t, name, UniqueObjectName("kitchen remodel.jpeg"))
}
