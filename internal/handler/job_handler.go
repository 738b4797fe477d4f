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

type JobHandler struct {
	Repo  *repository.JobRepository
	Users *repository.UserRepository
	Views *service.ViewService
	Log   *zap.SugaredLogger
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.List)
	rg.GET("/jobs/:id", h.Get)
	rg.POST("/jobs", h.Create)
}

// GET /api/jobs?search=&categories=a,b&city=&state=&employmentType=&minSalary=&workerAge=&sortBy=&sortOrder=&limit=&offset=
func (h *JobHandler) List(c *gin.Context) {
	f := repository.JobFilter{
		Search:         c.Query("search"),
		Categories:     csvQuery(c, "categories"),
		City:           c.Query("city"),
		State:          c.Query("state"),
		EmploymentType: c.Query("employmentType"),
		MinSalary:      floatQuery(c, "minSalary"),
		WorkerAge:      intQuery(c, "workerAge"),
		SortBy:         c.Query("sortBy"),
		SortOrder:      c.DefaultQuery("sortOrder", "desc"),
	}
	f.Limit, f.Offset = pagination(c, 10)

	items, total, err := h.Repo.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

// GET /api/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	j, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.Views.Record(c.Request.Context(), middleware.CallerID(c), c.ClientIP(), model.TypeJobs, id)
	c.JSON(http.StatusOK, j)
}

type createJobRequest struct {
	Title          string   `json:"title" binding:"required"`
	CompanyName    string   `json:"companyName" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	Categories     []string `json:"categories" binding:"required,min=1"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
	EmploymentType *string  `json:"employmentType" binding:"omitempty,oneof=full_time part_time seasonal contract"`
	SalaryMin      *float64 `json:"salaryMin" binding:"omitempty,gte=0"`
	SalaryMax      *float64 `json:"salaryMax" binding:"omitempty,gte=0"`
	MinimumAge     *int     `json:"minimumAge" binding:"omitempty,gte=0"`
	Website        *string  `json:"website" binding:"omitempty,url"`
}

// POST /api/jobs: public submission, lands unapproved.
func (h *JobHandler) Create(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	j := &model.Job{
		Title:          req.Title,
		CompanyName:    req.CompanyName,
		Description:    req.Description,
		Categories:     req.Categories,
		City:           req.City,
		State:          req.State,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		MinimumAge:     req.MinimumAge,
		Website:        req.Website,
	}
	applyContributor(c, h.Users, &j.ListingMeta)

	if err := h.Repo.Create(c.Request.Context(), j); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, j)
}
