package v1

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// ImportReleituras receives a pending-services report upload.
// POST /api/v1/releituras/import
func (h *Handler) ImportReleituras(c *gin.Context) {
	path, filename, cleanup, ok := h.saveUpload(c)
	if !ok {
		return
	}
	defer cleanup()

	result, err := h.coordinator.ImportReleituras(path, filename)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "result": result})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

// ImportPorteira receives a reading-results report upload. The optional
// "ciclo" form field enables the rural cycle pre-filter.
// POST /api/v1/porteira/import
func (h *Handler) ImportPorteira(c *gin.Context) {
	path, filename, cleanup, ok := h.saveUpload(c)
	if !ok {
		return
	}
	defer cleanup()

	ciclo := c.DefaultPostForm("ciclo", "")

	result, err := h.coordinator.ImportPorteira(path, filename, ciclo)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "result": result})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

// saveUpload stores the multipart file in a temp location and returns
// its path plus a cleanup func. Responds with 400 on a bad form.
func (h *Handler) saveUpload(c *gin.Context) (path, filename string, cleanup func(), ok bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "arquivo não encontrado no formulário"})
		return "", "", nil, false
	}

	tempPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("vigila_upload_%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao salvar arquivo"})
		return "", "", nil, false
	}

	return tempPath, file.Filename, func() { os.Remove(tempPath) }, true
}
