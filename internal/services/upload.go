package services

import (
	"fmt"
	"io"
	"mime/multipart"

	"alfredoptarigan/resume-insights/internal/models"
)

// UploadService turns a multipart file into an in-memory document. Nothing
// is written to disk.
type UploadService interface {
	Read(file *multipart.FileHeader) (*models.UploadedDocument, error)
	MaxFileSize() int64
}

type uploadService struct {
	maxFileSize int64
}

func NewUploadService(maxFileSize int64) UploadService {
	return &uploadService{
		maxFileSize: maxFileSize,
	}
}

func (s *uploadService) MaxFileSize() int64 {
	return s.maxFileSize
}

func (s *uploadService) Read(file *multipart.FileHeader) (*models.UploadedDocument, error) {
	if file == nil {
		return nil, fmt.Errorf("no file provided")
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes, max %d", models.ErrFileTooLarge, file.Size, s.maxFileSize)
	}

	contentType := file.Header.Get("Content-Type")
	mediaType := models.DetectMediaType(contentType, file.Filename)
	if !mediaType.Supported() {
		return nil, fmt.Errorf("%w: %s (%s)", models.ErrUnsupportedFormat, file.Filename, contentType)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Read one byte past the limit so a lying Size header is still caught.
	reader := io.Reader(src)
	if s.maxFileSize > 0 {
		reader = io.LimitReader(src, s.maxFileSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return nil, fmt.Errorf("%w: max %d bytes", models.ErrFileTooLarge, s.maxFileSize)
	}

	return models.NewUploadedDocument(file.Filename, contentType, data), nil
}
