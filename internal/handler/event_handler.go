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

type EventHandler struct {
	Repo  *repository.EventRepository
	Users *repository.UserRepository
	Views *service.ViewService
	Log   *zap.SugaredLogger
}

func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.List)
	rg.GET("/events/:id", h.Get)
	rg.POST("/events", h.Create)
}

// GET /api/events?search=&categories=a,b&city=&state=&isFree=&startsAfter=&sortBy=&sortOrder=&limit=&offset=
func (h *EventHandler) List(c *gin.Context) {
	f := repository.EventFilter{
		Search:     c.Query("search"),
		Categories: csvQuery(c, "categories"),
		City:       c.Query("city"),
		State:      c.Query("state"),
		IsFree:     boolQuery(c, "isFree"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.DefaultQuery("sortOrder", "desc"),
	}
	if v := c.Query("startsAfter"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.StartsAfter = &t
		}
	}
	f.Limit, f.Offset = pagination(c, 10)

	items, total, err := h.Repo.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

// GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	e, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.Views.Record(c.Request.Context(), middleware.CallerID(c), c.ClientIP(), model.TypeEvents, id)
	c.JSON(http.StatusOK, e)
}

type createEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Categories  []string   `json:"categories" binding:"required,min=1"`
	Venue       *string    `json:"venue"`
	City        *string    `json:"city"`
	State       *string    `json:"state"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	IsFree      bool       `json:"isFree"`
	Website     *string    `json:"website" binding:"omitempty,url"`
	PhotoURL    *string    `json:"photoUrl"`
}

// POST /api/events: public submission, lands unapproved.
func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	e := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Categories:  req.Categories,
		Venue:       req.Venue,
		City:        req.City,
		State:       req.State,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		IsFree:      req.IsFree,
		Website:     req.Website,
		PhotoURL:    req.PhotoURL,
	}
	applyContributor(c, h.Users, &e.ListingMeta)

	if err := h.Repo.Create(c.Request.Context(), e); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}
