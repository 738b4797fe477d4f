package model

import (
	"time"

	"github.com/lib/pq"
)

// Listing type identifiers. These are the same slugs the public routes use,
// and they are what gets stored in the listing_type columns of the shared
// reviews/thumbs_up/bookmarks/view_tracking tables.
const (
	TypeTutoringProviders = "tutoring-providers"
	TypeSummerCamps       = "summer-camps"
	TypeInternships       = "internships"
	TypeJobs              = "jobs"
	TypeServices          = "services"
	TypeEvents            = "events"
)

var listingTypes = []string{
	TypeTutoringProviders,
	TypeSummerCamps,
	TypeInternships,
	TypeJobs,
	TypeServices,
	TypeEvents,
}

// ListingTypes returns the known listing type slugs in display order.
func ListingTypes() []string {
	out := make([]string, len(listingTypes))
	copy(out, listingTypes)
	return out
}

// ValidListingType reports whether s is one of the known listing type slugs.
func ValidListingType(s string) bool {
	for _, t := range listingTypes {
		if t == s {
			return true
		}
	}
	return false
}

// ListingMeta holds the columns every listing table shares: identity,
// submitter, lifecycle flags, denormalized contributor display fields and the
// view counter, plus the per-row aggregates computed by correlated subqueries
// at query time (never stored).
type ListingMeta struct {
	ID          int64      `db:"id" json:"id"`
	UserID      *string    `db:"user_id" json:"userId,omitempty"`
	IsApproved  bool       `db:"is_approved" json:"isApproved"`
	IsActive    bool       `db:"is_active" json:"isActive"`
	SubmittedAt time.Time  `db:"submitted_at" json:"submittedAt"`
	ApprovedAt  *time.Time `db:"approved_at" json:"approvedAt,omitempty"`

	ContributorNickname  *string `db:"contributor_nickname" json:"contributorNickname,omitempty"`
	ContributorFirstName *string `db:"contributor_first_name" json:"contributorFirstName,omitempty"`
	ContributorLastName  *string `db:"contributor_last_name" json:"contributorLastName,omitempty"`

	ViewCount int `db:"view_count" json:"viewCount"`

	ThumbsUpCount int     `db:"thumbs_up_count" json:"thumbsUpCount"`
	ReviewCount   int     `db:"review_count" json:"reviewCount"`
	AverageRating float64 `db:"average_rating" json:"averageRating"`
}

type TutoringProvider struct {
	ListingMeta

	Name          string         `db:"name" json:"name"`
	Description   string         `db:"description" json:"description"`
	Subjects      pq.StringArray `db:"subjects" json:"subjects"`
	GradeLevels   pq.StringArray `db:"grade_levels" json:"gradeLevels"`
	DeliveryMode  *string        `db:"delivery_mode" json:"deliveryMode,omitempty"` // online, in_person, hybrid
	City          *string        `db:"city" json:"city,omitempty"`
	State         *string        `db:"state" json:"state,omitempty"`
	Website       *string        `db:"website" json:"website,omitempty"`
	Email         *string        `db:"email" json:"email,omitempty"`
	Phone         *string        `db:"phone" json:"phone,omitempty"`
	HourlyRateMin *float64       `db:"hourly_rate_min" json:"hourlyRateMin,omitempty"`
	HourlyRateMax *float64       `db:"hourly_rate_max" json:"hourlyRateMax,omitempty"`
	PhotoURL      *string        `db:"photo_url" json:"photoUrl,omitempty"`
}

type SummerCamp struct {
	ListingMeta

	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Categories  pq.StringArray `db:"categories" json:"categories"`
	City        *string        `db:"city" json:"city,omitempty"`
	State       *string        `db:"state" json:"state,omitempty"`
	AgeMin      *int           `db:"age_min" json:"ageMin,omitempty"`
	AgeMax      *int           `db:"age_max" json:"ageMax,omitempty"`
	StartDate   *time.Time     `db:"start_date" json:"startDate,omitempty"`
	EndDate     *time.Time     `db:"end_date" json:"endDate,omitempty"`
	Price       *float64       `db:"price" json:"price,omitempty"`
	IsOvernight bool           `db:"is_overnight" json:"isOvernight"`
	Website     *string        `db:"website" json:"website,omitempty"`
	PhotoURL    *string        `db:"photo_url" json:"photoUrl,omitempty"`
}

type Internship struct {
	ListingMeta

	Title               string         `db:"title" json:"title"`
	CompanyName         string         `db:"company_name" json:"companyName"`
	Description         string         `db:"description" json:"description"`
	Categories          pq.StringArray `db:"categories" json:"categories"`
	City                *string        `db:"city" json:"city,omitempty"`
	State               *string        `db:"state" json:"state,omitempty"`
	IsRemote            bool           `db:"is_remote" json:"isRemote"`
	IsPaid              bool           `db:"is_paid" json:"isPaid"`
	Selectivity         *string        `db:"selectivity" json:"selectivity,omitempty"` // open, selective, highly_selective
	ApplicationDeadline *time.Time     `db:"application_deadline" json:"applicationDeadline,omitempty"`
	Website             *string        `db:"website" json:"website,omitempty"`
}

type Job struct {
	ListingMeta

	Title          string         `db:"title" json:"title"`
	CompanyName    string         `db:"company_name" json:"companyName"`
	Description    string         `db:"description" json:"description"`
	Categories     pq.StringArray `db:"categories" json:"categories"`
	City           *string        `db:"city" json:"city,omitempty"`
	State          *string        `db:"state" json:"state,omitempty"`
	EmploymentType *string        `db:"employment_type" json:"employmentType,omitempty"` // full_time, part_time, seasonal, contract
	SalaryMin      *float64       `db:"salary_min" json:"salaryMin,omitempty"`
	SalaryMax      *float64       `db:"salary_max" json:"salaryMax,omitempty"`
	MinimumAge     *int           `db:"minimum_age" json:"minimumAge,omitempty"`
	Website        *string        `db:"website" json:"website,omitempty"`
}

type ServiceListing struct {
	ListingMeta

	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Categories  pq.StringArray `db:"categories" json:"categories"`
	City        *string        `db:"city" json:"city,omitempty"`
	State       *string        `db:"state" json:"state,omitempty"`
	Website     *string        `db:"website" json:"website,omitempty"`
	Email       *string        `db:"email" json:"email,omitempty"`
	Phone       *string        `db:"phone" json:"phone,omitempty"`
	PhotoURL    *string        `db:"photo_url" json:"photoUrl,omitempty"`
}

type Event struct {
	ListingMeta

	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Categories  pq.StringArray `db:"categories" json:"categories"`
	Venue       *string        `db:"venue" json:"venue,omitempty"`
	City        *string        `db:"city" json:"city,omitempty"`
	State       *string        `db:"state" json:"state,omitempty"`
	StartsAt    *time.Time     `db:"starts_at" json:"startsAt,omitempty"`
	EndsAt      *time.Time     `db:"ends_at" json:"endsAt,omitempty"`
	IsFree      bool           `db:"is_free" json:"isFree"`
	Website     *string        `db:"website" json:"website,omitempty"`
	PhotoURL    *string        `db:"photo_url" json:"photoUrl,omitempty"`
}
