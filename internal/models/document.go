package models

import (
	"path/filepath"
	"strings"
)

type MediaType string

const (
	MediaTypePDF         MediaType = "pdf"
	MediaTypeDOCX        MediaType = "docx"
	MediaTypeUnsupported MediaType = "unsupported"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

func (m MediaType) Supported() bool {
	return m == MediaTypePDF || m == MediaTypeDOCX
}

// DetectMediaType trusts the declared content type and only looks at the
// extension when the client did not declare anything useful.
func DetectMediaType(contentType, filename string) MediaType {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	switch {
	case ct == ContentTypePDF:
		return MediaTypePDF
	case strings.Contains(ct, "wordprocessingml"):
		return MediaTypeDOCX
	case ct != "" && ct != "application/octet-stream":
		return MediaTypeUnsupported
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MediaTypePDF
	case ".docx":
		return MediaTypeDOCX
	default:
		return MediaTypeUnsupported
	}
}

// UploadedDocument is the raw file as selected by the user. It is never
// modified after creation; a new upload replaces it.
type UploadedDocument struct {
	Filename  string
	MediaType MediaType
	Data      []byte
}

func NewUploadedDocument(filename, contentType string, data []byte) *UploadedDocument {
	return &UploadedDocument{
		Filename:  filename,
		MediaType: DetectMediaType(contentType, filename),
		Data:      data,
	}
}
