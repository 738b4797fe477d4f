package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d9647/EduDirectory-sub000/internal/middleware"
	"github.com/d9647/EduDirectory-sub000/internal/model"
	"github.com/d9647/EduDirectory-sub000/internal/repository"
)

type ReportHandler struct {
	Repo *repository.ReportRepository
	Log  *zap.SugaredLogger
}

func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reports", h.Create)
}

type createReportRequest struct {
	ReportType  string  `json:"reportType" binding:"required"`
	ItemType    string  `json:"itemType" binding:"required"`
	ItemID      int64   `json:"itemId" binding:"required,gt=0"`
	Reason      string  `json:"reason" binding:"required"`
	Description *string `json:"description"`
}

// POST /api/reports: any authenticated user may flag a listing or a review.
func (h *ReportHandler) Create(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !model.ValidListingType(req.ItemType) && req.ItemType != "review" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": "unknown item type"})
		return
	}

	rep := &model.Report{
		ReporterUserID: middleware.CallerID(c),
		ReportType:     req.ReportType,
		ItemType:       req.ItemType,
		ItemID:         req.ItemID,
		Reason:         req.Reason,
		Description:    req.Description,
	}
	if err := h.Repo.Insert(c.Request.Context(), rep); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, rep)
}
