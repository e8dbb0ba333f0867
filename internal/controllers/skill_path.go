package controllers

import (
	"context"

	"alfredoptarigan/resume-insights/internal/models"
)

// SkillPathController needs no document; both inputs come with the request.
type SkillPathController struct {
	s *session
}

func NewSkillPathController(deps Dependencies) *SkillPathController {
	return &SkillPathController{
		s: newSession(models.TaskSkillPath, deps, "Something went wrong. Try again."),
	}
}

func (c *SkillPathController) Generate(ctx context.Context, currentSkills, targetRole string) (*models.SkillPathResult, error) {
	result, err := c.s.run(ctx, func(string) models.TaskRequest {
		return models.SkillPathRequest{CurrentSkills: currentSkills, TargetRole: targetRole}
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.SkillPathResult), nil
}

func (c *SkillPathController) Snapshot() models.TaskState {
	return c.s.snapshot()
}
