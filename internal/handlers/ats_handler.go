package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-insights/internal/controllers"
	"alfredoptarigan/resume-insights/internal/services"
)

type ATSHandler struct {
	documentRoutes
	controller *controllers.ATSController
}

func NewATSHandler(controller *controllers.ATSController, uploads services.UploadService) *ATSHandler {
	return &ATSHandler{
		documentRoutes: documentRoutes{task: controller, uploads: uploads},
		controller:     controller,
	}
}

func (h *ATSHandler) Register(router fiber.Router) {
	group := router.Group("/ats")
	group.Post("/upload", h.handleUpload)
	group.Delete("/document", h.handleClear)
	group.Post("/score", h.HandleScore)
	group.Get("", h.handleState)
}

// HandleScore handles POST /ats/score
func (h *ATSHandler) HandleScore(c *fiber.Ctx) error {
	if _, err := h.controller.Score(c.UserContext()); err != nil {
		return respondError(c, err, h.controller.Snapshot().Message)
	}
	return c.JSON(h.controller.Snapshot())
}
