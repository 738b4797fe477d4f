package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d9647/EduDirectory-sub000/internal/repository"
)

type UploadHandler struct {
	Photos *repository.PhotoRepository
	Log    *zap.SugaredLogger
}

// RegisterProtectedRoutes adds the authenticated upload endpoint.
func (h *UploadHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.Upload)
}

// RegisterPublicRoutes adds the photo download endpoint. Stored photos are
// referenced from public listings, so reads stay unauthenticated.
func (h *UploadHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/uploads/:id", h.Download)
}

// POST /api/upload accepts multipart field "file".
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": "missing file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	filename := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	id, err := h.Photos.Upload(file, filename)
	if err != nil {
		h.Log.Errorw("photo upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": "/api/uploads/" + id})
}

// GET /api/uploads/:id
func (h *UploadHandler) Download(c *gin.Context) {
	data, err := h.Photos.Download(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
