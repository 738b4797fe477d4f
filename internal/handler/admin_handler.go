package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/d9647/EduDirectory-sub000/internal/model"
	"github.com/d9647/EduDirectory-sub000/internal/repository"
)

const (
	liveListingsCap   = 50
	searchListingsCap = 20
)

type AdminHandler struct {
	Registry *repository.Registry
	Reports  *repository.ReportRepository
	Log      *zap.SugaredLogger
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pending-approvals", h.PendingApprovals)
	rg.GET("/live-listings", h.LiveListings)
	rg.GET("/search-listings/:type", h.SearchListings)

	rg.POST("/approve/:type/:id", h.Approve)
	rg.POST("/deactivate/:type/:id", h.Deactivate)
	rg.POST("/activate/:type/:id", h.Activate)
	rg.PUT("/edit/:type/:id", h.Edit)
	rg.DELETE("/delete/:type/:id", h.Delete)

	rg.GET("/reports", h.ListReports)
	rg.POST("/reports/:id/resolve", h.ResolveReport)
}

func (h *AdminHandler) store(c *gin.Context) (repository.ListingStore, string, bool) {
	listingType := c.Param("type")
	store, ok := h.Registry.Store(listingType)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown listing type"})
		return nil, "", false
	}
	return store, listingType, true
}

// GET /api/admin/pending-approvals returns every unapproved submission, keyed by type.
func (h *AdminHandler) PendingApprovals(c *gin.Context) {
	out, err := h.Registry.PendingAll(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/admin/live-listings returns the most recent approved listings per type.
func (h *AdminHandler) LiveListings(c *gin.Context) {
	out, err := h.Registry.LiveAll(c.Request.Context(), liveListingsCap)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/admin/search-listings/:type?query= searches approved rows across
// the type's text fields.
func (h *AdminHandler) SearchListings(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	items, err := store.AdminSearch(c.Request.Context(), c.Query("query"), searchListingsCap)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /api/admin/approve/:type/:id
func (h *AdminHandler) Approve(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := store.Approve(c.Request.Context(), id); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "approved"})
}

// POST /api/admin/deactivate/:type/:id
func (h *AdminHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

// POST /api/admin/activate/:type/:id
func (h *AdminHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *AdminHandler) setActive(c *gin.Context, active bool) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := store.SetActive(c.Request.Context(), id, active); err != nil {
		respondError(c, h.Log, err)
		return
	}
	if active {
		c.JSON(http.StatusOK, gin.H{"message": "activated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deactivated"})
}

// PUT /api/admin/edit/:type/:id applies a partial patch. The JSON body carries
// camelCase field names; each is coerced to its column type before the update.
func (h *AdminHandler) Edit(c *gin.Context) {
	store, listingType, ok := h.store(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	fields, err := coerceFields(listingType, body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	if err := store.UpdateFields(c.Request.Context(), id, fields); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// DELETE /api/admin/delete/:type/:id is a hard delete; dependent engagement rows
// are purged, reports are kept.
func (h *AdminHandler) Delete(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// GET /api/admin/reports?unresolved=true
func (h *AdminHandler) ListReports(c *gin.Context) {
	unresolvedOnly := false
	if v, ok := boolQueryValue(c, "unresolved"); ok {
		unresolvedOnly = v
	}
	reports, err := h.Reports.List(c.Request.Context(), unresolvedOnly)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// POST /api/admin/reports/:id/resolve
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Reports.Resolve(c.Request.Context(), id); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "resolved"})
}

func boolQueryValue(c *gin.Context, name string) (bool, bool) {
	v := c.Query(name)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// Field coercion for admin edits. JSON numbers arrive as float64 and admin
// UIs routinely send numerics and booleans as strings, so each editable field
// declares a target kind and the raw value is converted before it reaches the
// store.

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindInt
	kindBool
	kindDate
	kindArray
)

type editField struct {
	column string
	kind   fieldKind
}

var commonEditFields = map[string]editField{
	"description": {"description", kindString},
	"city":        {"city", kindString},
	"state":       {"state", kindString},
	"website":     {"website", kindString},
	"isApproved":  {"is_approved", kindBool},
	"isActive":    {"is_active", kindBool},
}

var editFieldsByType = map[string]map[string]editField{
	model.TypeTutoringProviders: {
		"name":          {"name", kindString},
		"subjects":      {"subjects", kindArray},
		"gradeLevels":   {"grade_levels", kindArray},
		"deliveryMode":  {"delivery_mode", kindString},
		"email":         {"email", kindString},
		"phone":         {"phone", kindString},
		"hourlyRateMin": {"hourly_rate_min", kindNumber},
		"hourlyRateMax": {"hourly_rate_max", kindNumber},
		"photoUrl":      {"photo_url", kindString},
	},
	model.TypeSummerCamps: {
		"name":        {"name", kindString},
		"categories":  {"categories", kindArray},
		"ageMin":      {"age_min", kindInt},
		"ageMax":      {"age_max", kindInt},
		"startDate":   {"start_date", kindDate},
		"endDate":     {"end_date", kindDate},
		"price":       {"price", kindNumber},
		"isOvernight": {"is_overnight", kindBool},
		"photoUrl":    {"photo_url", kindString},
	},
	model.TypeInternships: {
		"title":               {"title", kindString},
		"companyName":         {"company_name", kindString},
		"categories":          {"categories", kindArray},
		"isRemote":            {"is_remote", kindBool},
		"isPaid":              {"is_paid", kindBool},
		"selectivity":         {"selectivity", kindString},
		"applicationDeadline": {"application_deadline", kindDate},
	},
	model.TypeJobs: {
		"title":          {"title", kindString},
		"companyName":    {"company_name", kindString},
		"categories":     {"categories", kindArray},
		"employmentType": {"employment_type", kindString},
		"salaryMin":      {"salary_min", kindNumber},
		"salaryMax":      {"salary_max", kindNumber},
		"minimumAge":     {"minimum_age", kindInt},
	},
	model.TypeServices: {
		"name":       {"name", kindString},
		"categories": {"categories", kindArray},
		"email":      {"email", kindString},
		"phone":      {"phone", kindString},
		"photoUrl":   {"photo_url", kindString},
	},
	model.TypeEvents: {
		"title":      {"title", kindString},
		"categories": {"categories", kindArray},
		"venue":      {"venue", kindString},
		"startsAt":   {"starts_at", kindDate},
		"endsAt":     {"ends_at", kindDate},
		"isFree":     {"is_free", kindBool},
		"photoUrl":   {"photo_url", kindString},
	},
}

func coerceFields(listingType string, body map[string]interface{}) (map[string]interface{}, error) {
	typed := editFieldsByType[listingType]
	fields := make(map[string]interface{}, len(body))
	for name, raw := range body {
		spec, ok := typed[name]
		if !ok {
			spec, ok = commonEditFields[name]
		}
		if !ok {
			return nil, fmt.Errorf("field %q is not editable", name)
		}
		val, err := coerceValue(spec.kind, raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields[spec.column] = val
	}
	return fields, nil
}

func coerceValue(kind fieldKind, raw interface{}) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	switch kind {
	case kindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		return s, nil

	case kindNumber:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("expected number: %v", err)
			}
			return f, nil
		}
		return nil, fmt.Errorf("expected number, got %T", raw)

	case kindInt:
		switch v := raw.(type) {
		case float64:
			return int64(v), nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("expected integer: %v", err)
			}
			return n, nil
		}
		return nil, fmt.Errorf("expected integer, got %T", raw)

	case kindBool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("expected boolean: %v", err)
			}
			return b, nil
		}
		return nil, fmt.Errorf("expected boolean, got %T", raw)

	case kindDate:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected date string, got %T", raw)
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("expected RFC3339 or YYYY-MM-DD date")
		}
		return t, nil

	case kindArray:
		switch v := raw.(type) {
		case []interface{}:
			arr := make(pq.StringArray, 0, len(v))
			for _, el := range v {
				s, ok := el.(string)
				if !ok {
					return nil, fmt.Errorf("expected array of strings, got element %T", el)
				}
				arr = append(arr, s)
			}
			return arr, nil
		case string:
			parts := strings.Split(v, ",")
			arr := make(pq.StringArray, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					arr = append(arr, p)
				}
			}
			return arr, nil
		}
		return nil, fmt.Errorf("expected array, got %T", raw)
	}
	return nil, fmt.Errorf("unhandled field kind")
}
