package controllers

import (
	"context"

	"alfredoptarigan/resume-insights/internal/models"
)

// MatchController compares the uploaded resume with a pasted job
// description. The job text is per request and never stored.
type MatchController struct {
	s *session
}

func NewMatchController(deps Dependencies) *MatchController {
	return &MatchController{
		s: newSession(models.TaskJobMatch, deps, "Error analyzing. Try again."),
	}
}

func (c *MatchController) Upload(ctx context.Context, doc *models.UploadedDocument) (*models.UploadResponse, error) {
	return c.s.upload(ctx, doc)
}

func (c *MatchController) ClearDocument() {
	c.s.clearDocument()
}

func (c *MatchController) Match(ctx context.Context, jobText string) (*models.JobMatchResult, error) {
	result, err := c.s.run(ctx, func(text string) models.TaskRequest {
		return models.JobMatchRequest{ResumeText: text, JobText: jobText}
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.JobMatchResult), nil
}

func (c *MatchController) Snapshot() models.TaskState {
	return c.s.snapshot()
}
