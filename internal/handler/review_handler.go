package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d9647/EduDirectory-sub000/internal/middleware"
	"github.com/d9647/EduDirectory-sub000/internal/model"
	"github.com/d9647/EduDirectory-sub000/internal/service"
)

type ReviewHandler struct {
	Reviews *service.ReviewService
	Log     *zap.SugaredLogger
}

// RegisterPublicRoutes adds the unauthenticated review reads.
func (h *ReviewHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/reviews/:listingType/:listingId", h.List)
}

// RegisterProtectedRoutes adds the authenticated review mutations.
func (h *ReviewHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.Create)
	rg.PUT("/reviews/:id", h.Update)
	rg.DELETE("/reviews/:id", h.Delete)
}

// GET /api/reviews/:listingType/:listingId
func (h *ReviewHandler) List(c *gin.Context) {
	listingType := c.Param("listingType")
	listingID, err := strconv.ParseInt(c.Param("listingId"), 10, 64)
	if err != nil || !model.ValidListingType(listingType) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	reviews, err := h.Reviews.List(c.Request.Context(), listingType, listingID)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

type createReviewRequest struct {
	ListingType string  `json:"listingType" binding:"required,listingtype"`
	ListingID   int64   `json:"listingId" binding:"required,gt=0"`
	Rating      int     `json:"rating" binding:"required,min=1,max=5"`
	Title       string  `json:"title" binding:"required"`
	Content     *string `json:"content"`
}

// POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rev, err := h.Reviews.Create(c.Request.Context(),
		middleware.CallerID(c), req.ListingType, req.ListingID, req.Rating, req.Title, req.Content)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}

type updateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Title   string  `json:"title" binding:"required"`
	Content *string `json:"content"`
}

// PUT /api/reviews/:id, owner only.
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rev, err := h.Reviews.Update(c.Request.Context(),
		middleware.CallerID(c), id, req.Rating, req.Title, req.Content)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, rev)
}

// DELETE /api/reviews/:id, owner or admin.
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	err := h.Reviews.Delete(c.Request.Context(),
		middleware.CallerID(c), middleware.CallerIsAdmin(c), id)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
