package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/d9647/EduDirectory-sub000/internal/errs"
	"github.com/d9647/EduDirectory-sub000/internal/middleware"
	"github.com/d9647/EduDirectory-sub000/internal/model"
	"github.com/d9647/EduDirectory-sub000/internal/repository"
)

// RegisterValidators installs the custom binding validators on gin's
// validator engine. Call once before registering routes.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("listingtype", func(fl validator.FieldLevel) bool {
			return model.ValidListingType(fl.Field().String())
		})
	}
}

// respondError maps service/repository errors onto the HTTP taxonomy.
// Anything unrecognized is logged server-side and surfaced as a generic 500.
func respondError(c *gin.Context, log *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, errs.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": "already reviewed"})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		log.Errorw("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// Query-string parsing below is deliberately forgiving: malformed values are
// treated as absent rather than failing the request.

func csvQuery(c *gin.Context, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func floatQuery(c *gin.Context, key string) *float64 {
	if v := c.Query(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

func intQuery(c *gin.Context, key string) *int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
	}
	return nil
}

func boolQuery(c *gin.Context, key string) *bool {
	if v := c.Query(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return &b
		}
	}
	return nil
}

// pagination parses limit/offset with a caller-supplied default page size.
func pagination(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

// applyContributor stamps the submitter and copies their display fields onto
// a new listing, when the caller is authenticated. Submissions stay anonymous
// otherwise.
func applyContributor(c *gin.Context, users *repository.UserRepository, meta *model.ListingMeta) {
	uid := middleware.CallerID(c)
	if uid == "" {
		return
	}
	meta.UserID = &uid
	if u, err := users.GetByID(c.Request.Context(), uid); err == nil {
		meta.ContributorNickname = u.Nickname
		meta.ContributorFirstName = u.FirstName
		meta.ContributorLastName = u.LastName
	}
}
