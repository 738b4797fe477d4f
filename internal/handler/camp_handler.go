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

type CampHandler struct {
	Repo  *repository.SummerCampRepository
	Users *repository.UserRepository
	Views *service.ViewService
	Log   *zap.SugaredLogger
}

func (h *CampHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/summer-camps", h.List)
	rg.GET("/summer-camps/:id", h.Get)
	rg.POST("/summer-camps", h.Create)
}

// GET /api/summer-camps?search=&categories=a,b&city=&state=&childAge=&maxPrice=&overnight=&sortBy=&sortOrder=&limit=&offset=
func (h *CampHandler) List(c *gin.Context) {
	f := repository.SummerCampFilter{
		Search:     c.Query("search"),
		Categories: csvQuery(c, "categories"),
		City:       c.Query("city"),
		State:      c.Query("state"),
		ChildAge:   intQuery(c, "childAge"),
		MaxPrice:   floatQuery(c, "maxPrice"),
		Overnight:  boolQuery(c, "overnight"),
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

// GET /api/summer-camps/:id
func (h *CampHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	camp, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.Views.Record(c.Request.Context(), middleware.CallerID(c), c.ClientIP(), model.TypeSummerCamps, id)
	c.JSON(http.StatusOK, camp)
}

type createCampRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Categories  []string   `json:"categories" binding:"required,min=1"`
	City        *string    `json:"city"`
	State       *string    `json:"state"`
	AgeMin      *int       `json:"ageMin" binding:"omitempty,gte=0"`
	AgeMax      *int       `json:"ageMax" binding:"omitempty,gte=0"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Price       *float64   `json:"price" binding:"omitempty,gte=0"`
	IsOvernight bool       `json:"isOvernight"`
	Website     *string    `json:"website" binding:"omitempty,url"`
	PhotoURL    *string    `json:"photoUrl"`
}

// POST /api/summer-camps: public submission, lands unapproved.
func (h *CampHandler) Create(c *gin.Context) {
	var req createCampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	camp := &model.SummerCamp{
		Name:        req.Name,
		Description: req.Description,
		Categories:  req.Categories,
		City:        req.City,
		State:       req.State,
		AgeMin:      req.AgeMin,
		AgeMax:      req.AgeMax,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Price:       req.Price,
		IsOvernight: req.IsOvernight,
		Website:     req.Website,
		PhotoURL:    req.PhotoURL,
	}
	applyContributor(c, h.Users, &camp.ListingMeta)

	if err := h.Repo.Create(c.Request.Context(), camp); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, camp)
}
