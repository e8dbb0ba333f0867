package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-insights/internal/controllers"
	"alfredoptarigan/resume-insights/internal/services"
)

type ResumeHandler struct {
	documentRoutes
	controller *controllers.ResumeController
}

func NewResumeHandler(controller *controllers.ResumeController, uploads services.UploadService) *ResumeHandler {
	return &ResumeHandler{
		documentRoutes: documentRoutes{task: controller, uploads: uploads},
		controller:     controller,
	}
}

func (h *ResumeHandler) Register(router fiber.Router) {
	group := router.Group("/resume")
	group.Post("/upload", h.handleUpload)
	group.Delete("/document", h.handleClear)
	group.Post("/analyze", h.HandleAnalyze)
	group.Get("", h.handleState)
}

// HandleAnalyze handles POST /resume/analyze
func (h *ResumeHandler) HandleAnalyze(c *fiber.Ctx) error {
	if _, err := h.controller.Analyze(c.UserContext()); err != nil {
		return respondError(c, err, h.controller.Snapshot().Message)
	}
	return c.JSON(h.controller.Snapshot())
}
