package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/project-college/backend/config"
)

// DownloadHandler serves the blank import sheet templates.
type DownloadHandler struct {
	cfg *config.Config
}

func NewDownloadHandler(cfg *config.Config) *DownloadHandler { return &DownloadHandler{cfg: cfg} }

// GET /admin/templates/topics
func (h *DownloadHandler) TopicTemplate(c echo.Context) error {
	return c.Attachment(h.cfg.TopicTemplatePath(), "topics.xlsx")
}

// GET /admin/templates/students
func (h *DownloadHandler) StudentTemplate(c echo.Context) error {
	return c.Attachment(h.cfg.StudentTemplatePath(), "students.xlsx")
}
