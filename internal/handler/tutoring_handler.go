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

// TutoringHandler serves the public tutoring-provider endpoints.
type TutoringHandler struct {
	Repo  *repository.TutoringProviderRepository
	Users *repository.UserRepository
	Views *service.ViewService
	Log   *zap.SugaredLogger
}

func (h *TutoringHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tutoring-providers", h.List)
	rg.GET("/tutoring-providers/:id", h.Get)
	rg.POST("/tutoring-providers", h.Create)
}

// GET /api/tutoring-providers?search=&subjects=a,b&gradeLevels=&deliveryMode=&city=&state=&maxHourlyRate=&sortBy=&sortOrder=&limit=&offset=
func (h *TutoringHandler) List(c *gin.Context) {
	f := repository.TutoringProviderFilter{
		Search:        c.Query("search"),
		Subjects:      csvQuery(c, "subjects"),
		GradeLevels:   csvQuery(c, "gradeLevels"),
		DeliveryMode:  c.Query("deliveryMode"),
		City:          c.Query("city"),
		State:         c.Query("state"),
		MaxHourlyRate: floatQuery(c, "maxHourlyRate"),
		SortBy:        c.Query("sortBy"),
		SortOrder:     c.DefaultQuery("sortOrder", "desc"),
	}
	f.Limit, f.Offset = pagination(c, 10)

	items, total, err := h.Repo.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

// GET /api/tutoring-providers/:id
func (h *TutoringHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.Views.Record(c.Request.Context(), middleware.CallerID(c), c.ClientIP(), model.TypeTutoringProviders, id)
	c.JSON(http.StatusOK, p)
}

type createTutoringRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Subjects      []string `json:"subjects" binding:"required,min=1"`
	GradeLevels   []string `json:"gradeLevels"`
	DeliveryMode  *string  `json:"deliveryMode" binding:"omitempty,oneof=online in_person hybrid"`
	City          *string  `json:"city"`
	State         *string  `json:"state"`
	Website       *string  `json:"website" binding:"omitempty,url"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	Phone         *string  `json:"phone"`
	HourlyRateMin *float64 `json:"hourlyRateMin" binding:"omitempty,gte=0"`
	HourlyRateMax *float64 `json:"hourlyRateMax" binding:"omitempty,gte=0"`
	PhotoURL      *string  `json:"photoUrl"`
}

// POST /api/tutoring-providers: public submission, lands unapproved.
func (h *TutoringHandler) Create(c *gin.Context) {
	var req createTutoringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p := &model.TutoringProvider{
		Name:          req.Name,
		Description:   req.Description,
		Subjects:      req.Subjects,
		GradeLevels:   req.GradeLevels,
		DeliveryMode:  req.DeliveryMode,
		City:          req.City,
		State:         req.State,
		Website:       req.Website,
		Email:         req.Email,
		Phone:         req.Phone,
		HourlyRateMin: req.HourlyRateMin,
		HourlyRateMax: req.HourlyRateMax,
		PhotoURL:      req.PhotoURL,
	}
	applyContributor(c, h.Users, &p.ListingMeta)

	if err := h.Repo.Create(c.Request.Context(), p); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}
