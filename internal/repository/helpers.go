package repository

import (
	"fmt"
	"strings"

	"github.com/d9647/EduDirectory-sub000/internal/model"
)

// listingTables maps a listing type slug to the table owning it.
var listingTables = map[string]string{
	model.TypeTutoringProviders: "tutoring_providers",
	model.TypeSummerCamps:       "summer_camps",
	model.TypeInternships:       "internships",
	model.TypeJobs:              "jobs",
	model.TypeServices:          "services",
	model.TypeEvents:            "events",
}

// TableFor resolves a listing type slug to its table name.
func TableFor(listingType string) (string, bool) {
	t, ok := listingTables[listingType]
	return t, ok
}

// aggregateColumns renders the three correlated subqueries attached to every
// public listing read: thumbs-up count, review count and the average rating
// rounded half away from zero to one decimal (0 when unreviewed). The table
// and listing type come from package constants, never from request input.
func aggregateColumns(table, listingType string) string {
	return fmt.Sprintf(`(SELECT COUNT(*) FROM thumbs_up tu WHERE tu.listing_type = '%[2]s' AND tu.listing_id = %[1]s.id) AS thumbs_up_count,
(SELECT COUNT(*) FROM reviews rv WHERE rv.listing_type = '%[2]s' AND rv.listing_id = %[1]s.id) AS review_count,
(COALESCE((SELECT ROUND(AVG(rv.rating)::numeric, 1) FROM reviews rv WHERE rv.listing_type = '%[2]s' AND rv.listing_id = %[1]s.id), 0))::float8 AS average_rating`,
		table, listingType)
}

// orderClause builds the ORDER BY from a per-store whitelist. Unknown sort
// keys fall back to submitted_at; id DESC is always appended so pages are
// stable under ties.
func orderClause(cols map[string]string, sortBy, sortOrder string) string {
	col, ok := cols[sortBy]
	if !ok {
		col = "submitted_at"
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id DESC", col, dir)
}

// columnSet builds a whitelist for partial updates.
func columnSet(cols ...string) map[string]bool {
	set := make(map[string]bool, len(cols))
	for _, c := range cols {
		set[c] = true
	}
	return set
}
