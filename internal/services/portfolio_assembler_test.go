package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUploader resolves URLs from the uploaded file's content, so tests can
// pin which part produced which URL. Content starting with "FAIL" simulates
// a media-host failure for that file only.
type fakeUploader struct{}

func (u *fakeUploader) Upload(ctx context.Context, localPath string, folder string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", err
	}
	content := string(data)
	if strings.HasPrefix(content, "FAIL") {
		return "", errors.New("media host rejected file")
	}
	return fmt.Sprintf("https://host/%s.jpg", content), nil
}

// multipartRequest builds and re-parses a multipart body so the resulting
// form carries real *multipart.FileHeader values.
func multipartRequest(t *testing.T, fields map[string]string, files [][2]string) *multipart.Form {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for key, val := range fields {
		require.NoError(t, writer.WriteField(key, val))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f[0], "photo.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte(f[1]))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm
}

func entryFields(idx int, title string) map[string]string {
	prefix := fmt.Sprintf("portfolio[%d]", idx)
	return map[string]string{
		prefix + "[title]":       title,
		prefix + "[description]": "Full renovation",
		prefix + "[completedOn]": "2023-05-01",
		prefix + "[location]":    "Pune",
	}
}

func TestAssemblePortfolioEndToEnd(t *testing.T) {
	form := multipartRequest(t,
		entryFields(0, "Kitchen Remodel"),
		[][2]string{{"portfolio[0][images]", "img1"}},
	)

	result, err := AssemblePortfolio(context.Background(), &fakeUploader{}, AssembleInput{
		Fields: form.Value,
		Files:  form.File,
		Folder: "portfolio",
	})
	require.NoError(t, err)

	require.Len(t, result.Accepted, 1)
	entry := result.Accepted[0]
	assert.Equal(t, "Kitchen Remodel", entry.Title)
	assert.Equal(t, "Full renovation", entry.Description)
	assert.Equal(t, "2023-05-01", entry.CompletedOn)
	assert.Equal(t, "Pune", entry.Location)
	assert.Equal(t, []string{"https://host/img1.jpg"}, entry.Images)
	assert.Empty(t, result.Rejected)
}

func TestAssemblePortfolioIndexCorrespondence(t *testing.T) {
	fields := entryFields(0, "First")
	for k, v := range entryFields(3, "Second") {
		fields[k] = v
	}

	form := multipartRequest(t, fields, [][2]string{
		{"portfolio[0][images]", "a"},
		{"portfolio[3][images]", "b"},
		{"portfolio[3][images]", "c"},
	})

	result, err := AssemblePortfolio(context.Background(), &fakeUploader{}, AssembleInput{
		Fields: form.Value,
		Files:  form.File,
	})
	require.NoError(t, err)

	require.Len(t, result.Accepted, 2)
	assert.Equal(t, []string{"https://host/a.jpg"}, result.Accepted[0].Images)
	assert.Equal(t, []string{"https://host/b.jpg", "https://host/c.jpg"}, result.Accepted[1].Images)

	// Output sorted by numeric index
	assert.Equal(t, 0, result.Accepted[0].Index)
	assert.Equal(t, 3, result.Accepted[1].Index)
}

func TestAssemblePortfolioDropsIncompleteEntry(t *testing.T) {
	fields := map[string]string{
		"portfolio[1][title]":       "Has title",
		"portfolio[1][description]": "", // missing
		"portfolio[1][completedOn]": "2024-01-01",
		"portfolio[1][location]":    "Mumbai",
	}

	form := multipartRequest(t, fields, [][2]string{
		{"portfolio[1][images]", "ok"},
	})

	result, err := AssemblePortfolio(context.Background(), &fakeUploader{}, AssembleInput{
		Fields: form.Value,
		Files:  form.File,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Accepted)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, 1, result.Rejected[0].Index)
	assert.Contains(t, result.Rejected[0].Reasons, "missing description")
}

func TestAssemblePortfolioDropsEntryWithoutImages(t *testing.T) {
	form := multipartRequest(t, entryFields(0, "No photos"), nil)

	result, err := AssemblePortfolio(context.Background(), &fakeUploader{}, AssembleInput{
		Fields: form.Value,
		Files:  form.File,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Accepted)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, []string{"no images"}, result.Rejected[0].Reasons)
}

func TestAssemblePortfolioPartialUploadFailureIsolation(t *testing.T) {
	form := multipartRequest(t, entryFields(0, "Partial"), [][2]string{
		{"portfolio[0][images]", "one"},
		{"portfolio[0][images]", "FAIL-two"},
		{"portfolio[0][images]", "three"},
	})

	result, err := AssemblePortfolio(context.Background(), &fakeUploader{}, AssembleInput{
		Fields: form.Value,
		Files:  form.File,
	})
	require.NoError(t, err)

	require.Len(t, result.Accepted, 1)
	// Failed upload contributes no URL and no placeholder; order of the
	// surviving uploads is preserved.
	assert.Equal(t, []string{"https://host/one.jpg", "https://host/three.jpg"}, result.Accepted[0].Images)
	assert.Empty(t, result.Rejected)
}

func TestAssemblePortfolioUpdateKeepsExistingFirst(t *testing.T) {
	form := multipartRequest(t, entryFields(0, "Update"), [][2]string{
		{"portfolio[0][images]", "C"},
		{"portfolio[0][images]", "D"},
	})

	result, err := AssemblePortfolio(context.Background(), &fakeUploader{}, AssembleInput{
		Fields:   form.Value,
		Files:    form.File,
		Existing: map[int][]string{0: {"A", "B"}},
	})
	require.NoError(t, err)

	require.Len(t, result.Accepted, 1)
	assert.Equal(t, []string{"A", "B", "https://host/C.jpg", "https://host/D.jpg"},
		result.Accepted[0].Images)
}

func TestAssemblePortfolioFabricatesRecordForOrphanFiles(t *testing.T) {
	// Files for an index with no text fields produce a skeletal record,
	// which the completeness filter then drops.
	form := multipartRequest(t, nil, [][2]string{
		{"portfolio[7][images]", "orphan"},
	})

	result, err := AssemblePortfolio(context.Background(), &fakeUploader{}, AssembleInput{
		Fields: form.Value,
		Files:  form.File,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Accepted)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, 7, result.Rejected[0].Index)
}
