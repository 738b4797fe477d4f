package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d9647/EduDirectory-sub000/internal/middleware"
	"github.com/d9647/EduDirectory-sub000/internal/model"
	"github.com/d9647/EduDirectory-sub000/internal/repository"
	"github.com/d9647/EduDirectory-sub000/internal/service"
)

type InternshipHandler struct {
	Repo  *repository.InternshipRepository
	Users *repository.UserRepository
	Views *service.ViewService
	Log   *zap.SugaredLogger
}

func (h *InternshipHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/internships", h.List)
	rg.GET("/internships/:id", h.Get)
	rg.POST("/internships", h.Create)
}

// GET /api/internships?search=&categories=a,b&city=&state=&isRemote=&isPaid=&selectivity=&sortBy=&sortOrder=&limit=&offset=
func (h *InternshipHandler) List(c *gin.Context) {
	f := repository.InternshipFilter{
		Search:      c.Query("search"),
		Categories:  csvQuery(c, "categories"),
		City:        c.Query("city"),
		State:       c.Query("state"),
		IsRemote:    boolQuery(c, "isRemote"),
		IsPaid:      boolQuery(c, "isPaid"),
		Selectivity: c.Query("selectivity"),
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.DefaultQuery("sortOrder", "desc"),
	}
	f.Limit, f.Offset = pagination(c, 10)

	items, total, err := h.Repo.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

// GET /api/internships/:id
func (h *InternshipHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	in, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.Views.Record(c.Request.Context(), middleware.CallerID(c), c.ClientIP(), model.TypeInternships, id)
	c.JSON(http.StatusOK, in)
}

type createInternshipRequest struct {
	Title               string     `json:"title" binding:"required"`
	CompanyName         string     `json:"companyName" binding:"required"`
	Description         string     `json:"description" binding:"required"`
	Categories          []string   `json:"categories" binding:"required,min=1"`
	City                *string    `json:"city"`
	State               *string    `json:"state"`
	IsRemote            bool       `json:"isRemote"`
	IsPaid              bool       `json:"isPaid"`
	Selectivity         *string    `json:"selectivity" binding:"omitempty,oneof=open selective highly_selective"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	Website             *string    `json:"website" binding:"omitempty,url"`
}

// POST /api/internships: public submission, lands unapproved.
func (h *InternshipHandler) Create(c *gin.Context) {
	var req createInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in := &model.Internship{
		Title:               req.Title,
		CompanyName:         req.CompanyName,
		Description:         req.Description,
		Categories:          req.Categories,
		City:                req.City,
		State:               req.State,
		IsRemote:            req.IsRemote,
		IsPaid:              req.IsPaid,
		Selectivity:         req.Selectivity,
		ApplicationDeadline: req.ApplicationDeadline,
		Website:             req.Website,
	}
	applyContributor(c, h.Users, &in.ListingMeta)

	if err := h.Repo.Create(c.Request.Context(), in); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, in)
}
