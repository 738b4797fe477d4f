package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d9647/EduDirectory-sub000/internal/middleware"
	"github.com/d9647/EduDirectory-sub000/internal/repository"
)

type EngagementHandler struct {
	Repo *repository.EngagementRepository
	Log  *zap.SugaredLogger
}

func (h *EngagementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/thumbs-up", h.ToggleThumbsUp)
	rg.POST("/bookmarks", h.ToggleBookmark)
	rg.GET("/bookmarks", h.ListBookmarks)
}

type toggleRequest struct {
	ListingType string `json:"listingType" binding:"required,listingtype"`
	ListingID   int64  `json:"listingId" binding:"required,gt=0"`
}

// POST /api/thumbs-up
func (h *EngagementHandler) ToggleThumbsUp(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	on, err := h.Repo.ToggleThumbsUp(c.Request.Context(),
		middleware.CallerID(c), req.ListingType, req.ListingID)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"thumbsUp": on})
}

// POST /api/bookmarks
func (h *EngagementHandler) ToggleBookmark(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	on, err := h.Repo.ToggleBookmark(c.Request.Context(),
		middleware.CallerID(c), req.ListingType, req.ListingID)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": on})
}

// GET /api/bookmarks
func (h *EngagementHandler) ListBookmarks(c *gin.Context) {
	bookmarks, err := h.Repo.ListBookmarks(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, bookmarks)
}
