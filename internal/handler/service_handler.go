package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d9647/EduDirectory-sub000/internal/middleware"
	"github.com/d9647/EduDirectory-sub000/internal/model"
	"github.com/d9647/EduDirectory-sub000/internal/repository"
	"github.com/d9647/EduDirectory-sub000/internal/service"
)

type ServiceHandler struct {
	Repo  *repository.ServiceRepository
	Users *repository.UserRepository
	Views *service.ViewService
	Log   *zap.SugaredLogger
}

func (h *ServiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", h.List)
	rg.GET("/services/:id", h.Get)
	rg.POST("/services", h.Create)
}

// GET /api/services?search=&categories=a,b&city=&state=&sortBy=&sortOrder=&limit=&offset=
func (h *ServiceHandler) List(c *gin.Context) {
	f := repository.ServiceFilter{
		Search:     c.Query("search"),
		Categories: csvQuery(c, "categories"),
		City:       c.Query("city"),
		State:      c.Query("state"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.DefaultQuery("sortOrder", "desc"),
	}
	f.Limit, f.Offset = pagination(c, 10)

	items, total, err := h.Repo.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

// GET /api/services/:id
func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	s, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.Views.Record(c.Request.Context(), middleware.CallerID(c), c.ClientIP(), model.TypeServices, id)
	c.JSON(http.StatusOK, s)
}

type createServiceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Categories  []string `json:"categories" binding:"required,min=1"`
	City        *string  `json:"city"`
	State       *string  `json:"state"`
	Website     *string  `json:"website" binding:"omitempty,url"`
	Email       *string  `json:"email" binding:"omitempty,email"`
	Phone       *string  `json:"phone"`
	PhotoURL    *string  `json:"photoUrl"`
}

// POST /api/services: public submission, lands unapproved.
func (h *ServiceHandler) Create(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s := &model.ServiceListing{
		Name:        req.Name,
		Description: req.Description,
		Categories:  req.Categories,
		City:        req.City,
		State:       req.State,
		Website:     req.Website,
		Email:       req.Email,
		Phone:       req.Phone,
		PhotoURL:    req.PhotoURL,
	}
	applyContributor(c, h.Users, &s.ListingMeta)

	if err := h.Repo.Create(c.Request.Context(), s); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}
