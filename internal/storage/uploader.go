package storage

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Decoders for the structural image check.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"portfolio-service/internal/errs"
	"portfolio-service/internal/metrics"
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedExtensions = []string{"jpg", "jpeg", "png", "gif", "webp"}

// UploadedFile describes a stored upload.
type UploadedFile struct {
	Filename     string
	OriginalName string
	Path         string
	FullPath     string
	URL          string
	Size         int64
	MimeType     string
}

// ImageUploader validates uploaded image files and stores them on the
// local filesystem under the configured upload directory.
type ImageUploader struct {
	uploadDir string
	baseURL   string
	maxSize   int64
	collector *metrics.Collector
}

// NewImageUploader creates a new ImageUploader. baseURL must end with a
// slash; collector may be nil.
func NewImageUploader(uploadDir, baseURL string, maxSize int64, collector *metrics.Collector) *ImageUploader {
	return &ImageUploader{
		uploadDir: uploadDir,
		baseURL:   baseURL,
		maxSize:   maxSize,
		collector: collector,
	}
}

// Upload validates a single uploaded image and moves it into the target
// folder. Validation failures map to 400, a failed store to 500.
func (u *ImageUploader) Upload(file *multipart.FileHeader, folder string) (*UploadedFile, error) {
	data, err := u.validate(file)
	if err != nil {
		u.collector.RecordUploadFailure()
		return nil, err
	}

	extension := getExtension(file.Filename)
	filename := generateFilename(extension)

	uploadDir := u.uploadDir
	if folder != "" {
		uploadDir = filepath.Join(uploadDir, folder)
	}
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		u.collector.RecordUploadFailure()
		return nil, errors.Wrap(err, "failed to create upload directory")
	}

	fullPath := filepath.Join(uploadDir, filename)
	relativePath := filename
	if folder != "" {
		relativePath = folder + "/" + filename
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		u.collector.RecordUploadFailure()
		return nil, errs.Storage("Failed to move uploaded file")
	}

	u.collector.RecordUpload(file.Size)

	return &UploadedFile{
		Filename:     filename,
		OriginalName: file.Filename,
		Path:         relativePath,
		FullPath:     fullPath,
		URL:          u.baseURL + relativePath,
		Size:         file.Size,
		MimeType:     mimetype.Detect(data).String(),
	}, nil
}

// Delete removes a stored file if present, returning false when absent.
func (u *ImageUploader) Delete(filename, folder string) bool {
	path := u.uploadDir
	if folder != "" {
		path = filepath.Join(path, folder)
	}
	path = filepath.Join(path, filename)

	if _, err := os.Stat(path); err != nil {
		return false
	}
	return os.Remove(path) == nil
}

// validate runs the upload checks in order, first failure wins, and
// returns the file contents on success.
func (u *ImageUploader) validate(file *multipart.FileHeader) ([]byte, error) {
	if file.Size > u.maxSize {
		maxMB := u.maxSize / (1024 * 1024)
		return nil, errs.Validation("File size exceeds maximum allowed (%dMB)", maxMB)
	}

	src, err := file.Open()
	if err != nil {
		return nil, errs.Validation("Failed to read uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errs.Validation("Failed to read uploaded file")
	}

	mime := mimetype.Detect(data)
	if !allowedMimeTypes[mime.String()] {
		return nil, errs.Validation("Invalid file type. Allowed: %s", strings.Join(allowedExtensions, ", "))
	}

	extension := getExtension(file.Filename)
	if !isAllowedExtension(extension) {
		return nil, errs.Validation("Invalid file extension. Allowed: %s", strings.Join(allowedExtensions, ", "))
	}

	// MIME and extension can both be spoofed; require a decodable image.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, errs.Validation("File is not a valid image")
	}

	return data, nil
}

func isAllowedExtension(extension string) bool {
	for _, allowed := range allowedExtensions {
		if extension == allowed {
			return true
		}
	}
	return false
}

func getExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// generateFilename builds a collision-resistant stored name from a
// timestamp and a random suffix, keeping the original extension.
func generateFilename(extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	random := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("img_%s_%s.%s", timestamp, random, extension)
}
