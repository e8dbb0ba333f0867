package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-insights/internal/controllers"
	"alfredoptarigan/resume-insights/internal/models"
)

type SkillPathHandler struct {
	controller *controllers.SkillPathController
}

func NewSkillPathHandler(controller *controllers.SkillPathController) *SkillPathHandler {
	return &SkillPathHandler{controller: controller}
}

func (h *SkillPathHandler) Register(router fiber.Router) {
	router.Post("/skill-path", h.HandleGenerate)
	router.Get("/skill-path", h.HandleGetState)
}

// HandleGenerate handles POST /skill-path
func (h *SkillPathHandler) HandleGenerate(c *fiber.Ctx) error {
	var req models.SkillPathPayload
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
			"code":  fiber.StatusBadRequest,
		})
	}

	if _, err := h.controller.Generate(c.UserContext(), req.CurrentSkills, req.TargetRole); err != nil {
		return respondError(c, err, h.controller.Snapshot().Message)
	}
	return c.JSON(h.controller.Snapshot())
}

func (h *SkillPathHandler) HandleGetState(c *fiber.Ctx) error {
	return c.JSON(h.controller.Snapshot())
}
