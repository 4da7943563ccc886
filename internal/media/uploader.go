// Package media turns uploaded multipart parts into hosted public URLs.
// Each part takes a temp-file round trip: the buffer is written to a unique
// temporary file, handed to the path-based upload client, and the temp file
// is removed whether or not the upload succeeded.
package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"estate_backend/internal/logger"
	"estate_backend/internal/storage"
	"estate_backend/pkg/apperrors"
)

// Uploader hosts a local file and returns its durable public URL.
type Uploader interface {
	Upload(ctx context.Context, localPath string, folder string) (string, error)
}

// FileValidator is implemented by uploaders that enforce limits on a part
// before it is spooled to disk.
type FileValidator interface {
	ValidateFileHeader(fh *multipart.FileHeader) error
}

// UploadLimits caps what an uploader accepts. A zero MaxSize or an empty
// AllowedTypes list disables the corresponding check.
type UploadLimits struct {
	MaxSize      int64
	AllowedTypes []string
}

// StorageUploader implements Uploader on top of the storage layer.
type StorageUploader struct {
	storage storage.Storage
	limits  UploadLimits
}

func NewStorageUploader(s storage.Storage, limits UploadLimits) *StorageUploader {
	return &StorageUploader{storage: s, limits: limits}
}

// ValidateFileHeader rejects parts that exceed the size cap or carry a
// content type outside the allow-list. The declared Content-Type header is
// trusted first, the filename extension is the fallback.
func (u *StorageUploader) ValidateFileHeader(fh *multipart.FileHeader) error {
	if u.limits.MaxSize > 0 && fh.Size > u.limits.MaxSize {
		return apperrors.ErrFileTooLarge
	}

	if len(u.limits.AllowedTypes) == 0 {
		return nil
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = MimeTypeFromFilename(fh.Filename)
	}
	for _, allowed := range u.limits.AllowedTypes {
		if mimeType == allowed {
			return nil
		}
	}
	return apperrors.ErrInvalidFileType
}

func (u *StorageUploader) Upload(ctx context.Context, localPath string, folder string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open file for upload: %w", err)
	}
	defer file.Close()

	key := filepath.ToSlash(filepath.Join(folder, UniqueObjectName(filepath.Base(localPath))))
	contentType := MimeTypeFromFilename(localPath)

	if err := u.storage.Save(ctx, key, file, contentType); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	url, err := u.storage.GetURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to resolve file URL: %w", err)
	}

	return url, nil
}

// UploadFromFileHeader runs the full temp-file round trip for one part.
// The temp file is always deleted, success or failure. A failed upload
// returns ("", err) and must not abort sibling uploads.
func UploadFromFileHeader(ctx context.Context, up Uploader, fh *multipart.FileHeader, folder string) (string, error) {
	if v, ok := up.(FileValidator); ok {
		if err := v.ValidateFileHeader(fh); err != nil {
			return "", err
		}
	}

	tempPath, err := SaveTempFile(fh)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			logger.CtxWarn(ctx, "failed to remove temp file", "path", tempPath, "error", err.Error())
		}
	}()

	return up.Upload(ctx, tempPath, folder)
}
