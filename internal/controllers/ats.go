package controllers

import (
	"context"

	"alfredoptarigan/resume-insights/internal/models"
)

type ATSController struct {
	s *session
}

func NewATSController(deps Dependencies) *ATSController {
	return &ATSController{
		s: newSession(models.TaskAtsScore, deps, "Error calculating ATS score."),
	}
}

func (c *ATSController) Upload(ctx context.Context, doc *models.UploadedDocument) (*models.UploadResponse, error) {
	return c.s.upload(ctx, doc)
}

func (c *ATSController) ClearDocument() {
	c.s.clearDocument()
}

// Score fails with models.ErrMalformedResponse when the reply is not the
// requested JSON object.
func (c *ATSController) Score(ctx context.Context) (*models.AtsScoreResult, error) {
	result, err := c.s.run(ctx, func(text string) models.TaskRequest {
		return models.AtsScoreRequest{Text: text}
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.AtsScoreResult), nil
}

func (c *ATSController) Snapshot() models.TaskState {
	return c.s.snapshot()
}
