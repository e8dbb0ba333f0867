package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-insights/internal/models"
)

type stubParser struct {
	text  string
	err   error
	calls int
}

func (s *stubParser) ExtractText(data []byte) (string, error) {
	s.calls++
	return s.text, s.err
}

func (s *stubParser) ExtractTextWithMetaData(data []byte) (*PDFContent, error) {
	text, err := s.ExtractText(data)
	if err != nil {
		return nil, err
	}
	return &PDFContent{Text: text, PageCount: 1}, nil
}

func TestExtractorDispatchesByMediaType(t *testing.T) {
	pdfStub := &stubParser{text: "from pdf"}
	docxStub := &stubParser{text: "from docx"}
	ex := NewExtractor(pdfStub, docxStub)
	ctx := context.Background()

	text, err := ex.Extract(ctx, &models.UploadedDocument{Filename: "a.pdf", MediaType: models.MediaTypePDF})
	require.NoError(t, err)
	assert.Equal(t, "from pdf", text)

	text, err = ex.Extract(ctx, &models.UploadedDocument{Filename: "a.docx", MediaType: models.MediaTypeDOCX})
	require.NoError(t, err)
	assert.Equal(t, "from docx", text)

	assert.Equal(t, 1, pdfStub.calls)
	assert.Equal(t, 1, docxStub.calls)
}

func TestExtractorRejectsUnsupportedWithoutParsing(t *testing.T) {
	pdfStub := &stubParser{}
	docxStub := &stubParser{}
	ex := NewExtractor(pdfStub, docxStub)

	_, err := ex.Extract(context.Background(), &models.UploadedDocument{Filename: "a.png", MediaType: models.MediaTypeUnsupported})
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)

	_, err = ex.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)

	assert.Zero(t, pdfStub.calls)
	assert.Zero(t, docxStub.calls)
}

func TestExtractorEmptyTextIsNotAnError(t *testing.T) {
	ex := NewExtractor(&stubParser{text: ""}, &stubParser{})

	text, err := ex.Extract(context.Background(), &models.UploadedDocument{MediaType: models.MediaTypePDF})
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractorWrapsParserErrors(t *testing.T) {
	cause := errors.New("boom")
	ex := NewExtractor(&stubParser{err: cause}, &stubParser{})

	_, err := ex.Extract(context.Background(), &models.UploadedDocument{Filename: "cv.pdf", MediaType: models.MediaTypePDF})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "cv.pdf")
}

func TestExtractorRealDocuments(t *testing.T) {
	ex := NewExtractor(NewPDFParserService(), NewDOCXParserService())
	ctx := context.Background()

	text, err := ex.Extract(ctx, models.NewUploadedDocument("resume.pdf", models.ContentTypePDF,
		buildPDF(t, "Name: Jane Doe", "Skills: Python, Go")))
	require.NoError(t, err)
	assert.Equal(t, "Name: Jane Doe \nSkills: Python, Go \n", text)

	text, err = ex.Extract(ctx, models.NewUploadedDocument("resume.docx", models.ContentTypeDOCX,
		buildDOCX(t, `<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`)))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\n", text)
}
