package controllers

import (
	"context"

	"alfredoptarigan/resume-insights/internal/models"
)

// ResumeController produces free-form resume feedback.
type ResumeController struct {
	s *session
}

func NewResumeController(deps Dependencies) *ResumeController {
	return &ResumeController{
		s: newSession(models.TaskResumeAnalysis, deps, "Error analyzing resume."),
	}
}

func (c *ResumeController) Upload(ctx context.Context, doc *models.UploadedDocument) (*models.UploadResponse, error) {
	return c.s.upload(ctx, doc)
}

func (c *ResumeController) ClearDocument() {
	c.s.clearDocument()
}

func (c *ResumeController) Analyze(ctx context.Context) (*models.ResumeAnalysisResult, error) {
	result, err := c.s.run(ctx, func(text string) models.TaskRequest {
		return models.ResumeAnalysisRequest{Text: text}
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.ResumeAnalysisResult), nil
}

func (c *ResumeController) Snapshot() models.TaskState {
	return c.s.snapshot()
}
