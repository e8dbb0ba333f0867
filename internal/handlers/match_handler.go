package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-insights/internal/controllers"
	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/services"
)

type MatchHandler struct {
	documentRoutes
	controller *controllers.MatchController
}

func NewMatchHandler(controller *controllers.MatchController, uploads services.UploadService) *MatchHandler {
	return &MatchHandler{
		documentRoutes: documentRoutes{task: controller, uploads: uploads},
		controller:     controller,
	}
}

func (h *MatchHandler) Register(router fiber.Router) {
	group := router.Group("/match")
	group.Post("/upload", h.handleUpload)
	group.Delete("/document", h.handleClear)
	group.Post("", h.HandleMatch)
	group.Get("", h.handleState)
}

// HandleMatch handles POST /match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	var req models.JobMatchPayload
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
			"code":  fiber.StatusBadRequest,
		})
	}

	if _, err := h.controller.Match(c.UserContext(), req.JobText); err != nil {
		return respondError(c, err, h.controller.Snapshot().Message)
	}
	return c.JSON(h.controller.Snapshot())
}
