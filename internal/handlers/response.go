package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/services"
)

const genericFailureMessage = "Something went wrong. Try again."

// StatusFor maps a domain error to an HTTP status code.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, models.ErrUnsupportedFormat):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, models.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrEmptyInput):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrBusy):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrExtractionFailed):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, models.ErrGenerationFailed), errors.Is(err, models.ErrMalformedResponse):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes {"error","code"}. message is what the controller
// surfaced to the user; remote failure causes never reach the client.
func respondError(c *fiber.Ctx, err error, message string) error {
	code := StatusFor(err)
	if message == "" {
		switch code {
		case fiber.StatusBadGateway, fiber.StatusInternalServerError:
			message = genericFailureMessage
		default:
			message = err.Error()
		}
	}
	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}

func readUpload(c *fiber.Ctx, uploads services.UploadService) (*models.UploadedDocument, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "multipart field 'file' is required")
	}
	return uploads.Read(file)
}

// documentTask is the part of a resume-based controller the upload routes use.
type documentTask interface {
	Upload(ctx context.Context, doc *models.UploadedDocument) (*models.UploadResponse, error)
	ClearDocument()
	Snapshot() models.TaskState
}

type documentRoutes struct {
	task    documentTask
	uploads services.UploadService
}

func (d documentRoutes) handleUpload(c *fiber.Ctx) error {
	doc, err := readUpload(c, d.uploads)
	if err != nil {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return respondError(c, err, fiberErr.Message)
		}
		if errors.Is(err, models.ErrUnsupportedFormat) {
			return respondError(c, err, "Upload PDF or DOCX only.")
		}
		return respondError(c, err, "")
	}

	resp, err := d.task.Upload(c.UserContext(), doc)
	if err != nil {
		return respondError(c, err, d.task.Snapshot().Message)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (d documentRoutes) handleClear(c *fiber.Ctx) error {
	d.task.ClearDocument()
	return c.JSON(d.task.Snapshot())
}

func (d documentRoutes) handleState(c *fiber.Ctx) error {
	return c.JSON(d.task.Snapshot())
}
