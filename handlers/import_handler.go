package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/project-college/backend/config"
	"github.com/project-college/backend/database"
	"github.com/project-college/backend/importer"
	"github.com/project-college/backend/middlewares"
	"github.com/project-college/backend/models"
)

// ImportHandler accepts .xlsx uploads and hands them to the importer.
// Files are buffered under a per-uploader path and never kept.
type ImportHandler struct {
	cfg *config.Config
}

func NewImportHandler(cfg *config.Config) *ImportHandler { return &ImportHandler{cfg: cfg} }

// saveUpload writes the multipart "file" part to the uploader's buffer
// path and returns it. A non-.xlsx name is rejected before any IO.
func (h *ImportHandler) saveUpload(c echo.Context) (string, string) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", "Файл не выбран"
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".xlsx") {
		return "", "Неверный формат файла"
	}

	src, err := fh.Open()
	if err != nil {
		return "", "Не удалось прочитать файл"
	}
	defer src.Close()

	claims := middlewares.AuthClaims(c)
	path := importer.UploadPath(h.cfg.ExcelDir(), claims.Sub)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", "Не удалось сохранить файл"
	}
	dst, err := os.Create(path)
	if err != nil {
		return "", "Не удалось сохранить файл"
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", "Не удалось сохранить файл"
	}
	return path, ""
}

// POST /admin/import/topics - multipart: file + module_id.
func (h *ImportHandler) Topics(c echo.Context) error {
	var module models.Module
	if err := database.DB.First(&module, "id = ?", c.FormValue("module_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	path, msg := h.saveUpload(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "IMPORT_ERRORS", "messages": []string{msg}})
	}

	msgs, err := importer.ImportTopics(database.DB, path, module.ID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "IMPORT_ERRORS", "messages": []string{"Не удалось открыть файл"}})
	}
	if len(msgs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "IMPORT_ERRORS", "messages": msgs})
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /admin/import/students - multipart: file + group_id.
func (h *ImportHandler) Students(c echo.Context) error {
	var group models.Group
	if err := database.DB.First(&group, "id = ?", c.FormValue("group_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	path, msg := h.saveUpload(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "IMPORT_ERRORS", "messages": []string{msg}})
	}

	msgs, err := importer.ImportStudents(database.DB, path, group.ID, h.cfg.DefaultPassword)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "IMPORT_ERRORS", "messages": []string{"Не удалось открыть файл"}})
	}
	if len(msgs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "IMPORT_ERRORS", "messages": msgs})
	}
	return c.NoContent(http.StatusNoContent)
}
