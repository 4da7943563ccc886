package media

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveTempFile writes an uploaded part to a uniquely named temporary file and
// returns its path. The caller owns the file and must remove it when done.
func SaveTempFile(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(fh.Filename)
	tempFile, err := os.CreateTemp("", "estate_upload_*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, src); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}

	return tempFile.Name(), nil
}

// UniqueObjectName builds a collision-resistant object name for an upload:
// <unix-nano>_<random-hex><original-extension>.
func UniqueObjectName(originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), secureRandomString(8), ext)
}

func secureRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)[:length]
}

// MimeTypeFromFilename guesses a content type from the file extension.
func MimeTypeFromFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	mimeTypes := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".mp4":  "video/mp4",
		".pdf":  "application/pdf",
	}

	if mime, ok := mimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}
