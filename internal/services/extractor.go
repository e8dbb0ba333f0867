package services

import (
	"context"
	"fmt"
	"time"

	"alfredoptarigan/resume-insights/internal/logger"
	"alfredoptarigan/resume-insights/internal/models"
)

// Extractor turns an uploaded document into plain text. An empty result is
// not an error; callers decide what "nothing to analyze" means.
type Extractor interface {
	Extract(ctx context.Context, doc *models.UploadedDocument) (string, error)
}

type extractorService struct {
	pdfParser  PDFParserService
	docxParser DOCXParserService
}

func NewExtractor(pdfParser PDFParserService, docxParser DOCXParserService) Extractor {
	return &extractorService{
		pdfParser:  pdfParser,
		docxParser: docxParser,
	}
}

func (e *extractorService) Extract(ctx context.Context, doc *models.UploadedDocument) (string, error) {
	if doc == nil || !doc.MediaType.Supported() {
		return "", models.ErrUnsupportedFormat
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	var (
		text string
		err  error
	)
	switch doc.MediaType {
	case models.MediaTypePDF:
		text, err = e.pdfParser.ExtractText(doc.Data)
	case models.MediaTypeDOCX:
		text, err = e.docxParser.ExtractText(doc.Data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", doc.Filename, err)
	}

	logger.Ctx(ctx).Debug().
		Str("filename", doc.Filename).
		Str("media_type", string(doc.MediaType)).
		Int("characters", len(text)).
		Dur("took", time.Since(start)).
		Msg("document text extracted")

	return text, nil
}
