package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d9647/EduDirectory-sub000/internal/middleware"
	"github.com/d9647/EduDirectory-sub000/internal/model"
	"github.com/d9647/EduDirectory-sub000/internal/repository"
)

type ProfileHandler struct {
	Users *repository.UserRepository
	Log   *zap.SugaredLogger
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Get)
	rg.PUT("/profile", h.Update)
}

// GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	u, err := h.Users.GetByID(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type updateProfileRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Nickname  *string `json:"nickname"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// PUT /api/profile upserts the profile and fans the display fields out to
// the contributor columns on existing listings and reviews.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u := &model.User{
		ID:        middleware.CallerID(c),
		Email:     req.Email,
		Nickname:  req.Nickname,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := h.Users.UpsertProfile(c.Request.Context(), u); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
