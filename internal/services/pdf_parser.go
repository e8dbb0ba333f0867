package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/resume-insights/internal/logger"
	"alfredoptarigan/resume-insights/internal/models"
)

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractTextWithMetaData(data []byte) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
}

// pageSource exposes the text items of a paginated document, 1-based.
type pageSource interface {
	NumPage() int
	PageItems(pageIndex int) ([]string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	content, err := p.ExtractTextWithMetaData(data)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

func (p *pdfParserService) ExtractTextWithMetaData(data []byte) (content *PDFContent, err error) {
	// The pdf package panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("%w: failed to read PDF: %v", models.ErrExtractionFailed, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %v", models.ErrExtractionFailed, err)
	}

	pages := &ledongthucPages{reader: r}
	return &PDFContent{
		Text:      assemblePages(pages),
		PageCount: pages.NumPage(),
	}, nil
}

// assemblePages writes every item of a page followed by a single space and
// ends each page with a newline, in document page order.
func assemblePages(pages pageSource) string {
	var textBuilder strings.Builder
	totalPage := pages.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		items, err := pages.PageItems(pageIndex)
		if err != nil {
			logger.Warn().Err(err).Int("page", pageIndex).Msg("skipping unreadable PDF page")
			items = nil
		}

		for _, item := range items {
			textBuilder.WriteString(item)
			textBuilder.WriteByte(' ')
		}
		textBuilder.WriteByte('\n')
	}

	return textBuilder.String()
}

type ledongthucPages struct {
	reader *pdf.Reader
}

func (l *ledongthucPages) NumPage() int {
	return l.reader.NumPage()
}

func (l *ledongthucPages) PageItems(pageIndex int) ([]string, error) {
	page := l.reader.Page(pageIndex)
	if page.V.IsNull() {
		return nil, nil
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("failed to read page %d: %w", pageIndex, err)
	}

	var items []string
	for _, row := range rows {
		for _, text := range row.Content {
			// Each shown string is preceded by an empty positioning item.
			if text.S == "" {
				continue
			}
			items = append(items, text.S)
		}
	}
	return items, nil
}
