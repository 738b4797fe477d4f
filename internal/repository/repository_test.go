package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d9647/EduDirectory-sub000/internal/db"
	"github.com/d9647/EduDirectory-sub000/internal/errs"
	"github.com/d9647/EduDirectory-sub000/internal/model"
)

// These tests run against a real Postgres. Set TEST_DATABASE_URL to enable
// them; they are skipped otherwise.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	conn, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(conn))

	for _, table := range []string{
		"view_tracking", "reports", "bookmarks", "thumbs_up", "reviews",
		"tutoring_providers", "summer_camps", "internships", "jobs", "services", "events",
		"users",
	} {
		_, err := conn.Exec("DELETE FROM " + table)
		require.NoError(t, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func newProvider(name string) *model.TutoringProvider {
	return &model.TutoringProvider{
		Name:        name,
		Description: "Algebra and calculus tutoring",
		Subjects:    []string{"math"},
		GradeLevels: []string{"9-12"},
	}
}

func TestTutoringProviderLifecycle(t *testing.T) {
	conn := testDB(t)
	repo := NewTutoringProviderRepository(conn)
	ctx := context.Background()

	p := newProvider("Peak Tutoring")
	require.NoError(t, repo.Create(ctx, p))
	require.NotZero(t, p.ID)
	assert.False(t, p.IsApproved)
	assert.True(t, p.IsActive)

	// Unapproved submissions are invisible on the public list but directly
	// fetchable by id.
	items, total, err := repo.List(ctx, TutoringProviderFilter{Limit: 10, SortOrder: "desc"})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Peak Tutoring", got.Name)

	require.NoError(t, repo.Approve(ctx, p.ID))
	items, total, err = repo.List(ctx, TutoringProviderFilter{Limit: 10, SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, total)

	// Deactivation hides the listing without touching approval.
	require.NoError(t, repo.SetActive(ctx, p.ID, false))
	_, total, err = repo.List(ctx, TutoringProviderFilter{Limit: 10, SortOrder: "desc"})
	require.NoError(t, err)
	assert.Zero(t, total)

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsApproved)
	assert.False(t, got.IsActive)

	// Reactivation restores public visibility; approval was never touched.
	require.NoError(t, repo.SetActive(ctx, p.ID, true))
	items, total, err = repo.List(ctx, TutoringProviderFilter{Limit: 10, SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, total)
	assert.True(t, items[0].IsApproved)
	assert.True(t, items[0].IsActive)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestApproveIsIdempotent(t *testing.T) {
	conn := testDB(t)
	repo := NewTutoringProviderRepository(conn)
	ctx := context.Background()

	p := newProvider("Twice Approved")
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Approve(ctx, p.ID))
	require.NoError(t, repo.Approve(ctx, p.ID))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsApproved)
	assert.NotNil(t, got.ApprovedAt)

	assert.ErrorIs(t, repo.Approve(ctx, p.ID+999), errs.ErrNotFound)
}

func TestUpdateFieldsWhitelist(t *testing.T) {
	conn := testDB(t)
	repo := NewTutoringProviderRepository(conn)
	ctx := context.Background()

	p := newProvider("Editable")
	require.NoError(t, repo.Create(ctx, p))

	err := repo.UpdateFields(ctx, p.ID, map[string]interface{}{
		"name": "Renamed", "city": "Denver",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	require.NotNil(t, got.City)
	assert.Equal(t, "Denver", *got.City)

	err = repo.UpdateFields(ctx, p.ID, map[string]interface{}{"view_count": 1000})
	assert.Error(t, err)
}

func TestCategoryFilterMatchesByOverlap(t *testing.T) {
	conn := testDB(t)
	jobs := NewJobRepository(conn)
	ctx := context.Background()

	retail := &model.Job{
		Title: "Cashier", CompanyName: "Corner Store",
		Description: "Weekend shifts", Categories: []string{"retail", "customer-service"},
	}
	tutoringJob := &model.Job{
		Title: "Homework Helper", CompanyName: "Study Hall",
		Description: "After-school program", Categories: []string{"education"},
	}
	for _, j := range []*model.Job{retail, tutoringJob} {
		require.NoError(t, jobs.Create(ctx, j))
		require.NoError(t, jobs.Approve(ctx, j.ID))
	}

	// A single-element filter matches any row sharing that element, not only
	// rows whose array equals the filter exactly.
	items, total, err := jobs.List(ctx, JobFilter{
		Categories: []string{"retail"}, Limit: 10, SortOrder: "desc",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Cashier", items[0].Title)

	// Disjoint arrays are excluded.
	_, total, err = jobs.List(ctx, JobFilter{
		Categories: []string{"healthcare"}, Limit: 10, SortOrder: "desc",
	})
	require.NoError(t, err)
	assert.Zero(t, total)

	// Overlap on any one element of a multi-element filter is enough.
	_, total, err = jobs.List(ctx, JobFilter{
		Categories: []string{"healthcare", "education"}, Limit: 10, SortOrder: "desc",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestToggleRoundTrip(t *testing.T) {
	conn := testDB(t)
	listings := NewTutoringProviderRepository(conn)
	engagement := NewEngagementRepository(conn)
	ctx := context.Background()

	p := newProvider("Toggled")
	require.NoError(t, listings.Create(ctx, p))

	on, err := engagement.ToggleThumbsUp(ctx, "user-1", model.TypeTutoringProviders, p.ID)
	require.NoError(t, err)
	assert.True(t, on)

	has, err := engagement.HasThumbsUp(ctx, "user-1", model.TypeTutoringProviders, p.ID)
	require.NoError(t, err)
	assert.True(t, has)

	on, err = engagement.ToggleThumbsUp(ctx, "user-1", model.TypeTutoringProviders, p.ID)
	require.NoError(t, err)
	assert.False(t, on)

	on, err = engagement.ToggleBookmark(ctx, "user-1", model.TypeTutoringProviders, p.ID)
	require.NoError(t, err)
	assert.True(t, on)

	bookmarks, err := engagement.ListBookmarks(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, p.ID, bookmarks[0].ListingID)
}

func TestRecordViewWindow(t *testing.T) {
	conn := testDB(t)
	listings := NewTutoringProviderRepository(conn)
	views := NewViewRepository(conn)
	ctx := context.Background()

	p := newProvider("Viewed")
	require.NoError(t, listings.Create(ctx, p))

	counted, err := views.RecordView(ctx, "anon_1.2.3.4", model.TypeTutoringProviders, p.ID, time.Hour)
	require.NoError(t, err)
	assert.True(t, counted)

	// Same identity inside the window is not counted again.
	counted, err = views.RecordView(ctx, "anon_1.2.3.4", model.TypeTutoringProviders, p.ID, time.Hour)
	require.NoError(t, err)
	assert.False(t, counted)

	// A different identity counts independently.
	counted, err = views.RecordView(ctx, "user-1", model.TypeTutoringProviders, p.ID, time.Hour)
	require.NoError(t, err)
	assert.True(t, counted)

	// Once the window has elapsed the same identity counts again.
	time.Sleep(100 * time.Millisecond)
	counted, err = views.RecordView(ctx, "anon_1.2.3.4", model.TypeTutoringProviders, p.ID, 50*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, counted)

	got, err := listings.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ViewCount)
}

func TestDeletePurgesDependentsKeepsReports(t *testing.T) {
	conn := testDB(t)
	listings := NewTutoringProviderRepository(conn)
	engagement := NewEngagementRepository(conn)
	reviews := NewReviewRepository(conn)
	reports := NewReportRepository(conn)
	ctx := context.Background()

	p := newProvider("Doomed")
	require.NoError(t, listings.Create(ctx, p))

	rev := &model.Review{
		UserID: "user-1", ListingType: model.TypeTutoringProviders, ListingID: p.ID,
		Rating: 4, Title: "Solid",
	}
	require.NoError(t, reviews.Insert(ctx, rev))
	_, err := engagement.ToggleThumbsUp(ctx, "user-1", model.TypeTutoringProviders, p.ID)
	require.NoError(t, err)

	rep := &model.Report{
		ReporterUserID: "user-2", ReportType: "inappropriate",
		ItemType: model.TypeTutoringProviders, ItemID: p.ID, Reason: "spam",
	}
	require.NoError(t, reports.Insert(ctx, rep))

	require.NoError(t, listings.Delete(ctx, p.ID))

	remaining, err := reviews.ListForListing(ctx, model.TypeTutoringProviders, p.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	has, err := engagement.HasThumbsUp(ctx, "user-1", model.TypeTutoringProviders, p.ID)
	require.NoError(t, err)
	assert.False(t, has)

	kept, err := reports.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, p.ID, kept[0].ItemID)
}

func TestAggregateCounts(t *testing.T) {
	conn := testDB(t)
	listings := NewTutoringProviderRepository(conn)
	engagement := NewEngagementRepository(conn)
	reviews := NewReviewRepository(conn)
	ctx := context.Background()

	p := newProvider("Aggregated")
	require.NoError(t, listings.Create(ctx, p))
	require.NoError(t, listings.Approve(ctx, p.ID))

	require.NoError(t, reviews.Insert(ctx, &model.Review{
		UserID: "user-1", ListingType: model.TypeTutoringProviders, ListingID: p.ID,
		Rating: 4, Title: "Good",
	}))
	require.NoError(t, reviews.Insert(ctx, &model.Review{
		UserID: "user-2", ListingType: model.TypeTutoringProviders, ListingID: p.ID,
		Rating: 5, Title: "Great",
	}))
	_, err := engagement.ToggleThumbsUp(ctx, "user-1", model.TypeTutoringProviders, p.ID)
	require.NoError(t, err)

	got, err := listings.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ReviewCount)
	assert.Equal(t, 1, got.ThumbsUpCount)
	assert.InDelta(t, 4.5, got.AverageRating, 0.001)
}

func TestUpsertProfileFanOut(t *testing.T) {
	conn := testDB(t)
	listings := NewTutoringProviderRepository(conn)
	users := NewUserRepository(conn)
	ctx := context.Background()

	uid := "user-1"
	nickname := "oldname"
	p := newProvider("Contributed")
	p.UserID = &uid
	p.ContributorNickname = &nickname
	require.NoError(t, listings.Create(ctx, p))

	newNick := "newname"
	first := "Pat"
	require.NoError(t, users.UpsertProfile(ctx, &model.User{
		ID: uid, Nickname: &newNick, FirstName: &first,
	}))

	got, err := listings.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ContributorNickname)
	assert.Equal(t, "newname", *got.ContributorNickname)
	require.NotNil(t, got.ContributorFirstName)
	assert.Equal(t, "Pat", *got.ContributorFirstName)
}

func TestReportResolveIsOneWay(t *testing.T) {
	conn := testDB(t)
	reports := NewReportRepository(conn)
	ctx := context.Background()

	rep := &model.Report{
		ReporterUserID: "user-1", ReportType: "spam",
		ItemType: "review", ItemID: 12, Reason: "advertising",
	}
	require.NoError(t, reports.Insert(ctx, rep))
	assert.False(t, rep.IsResolved)

	require.NoError(t, reports.Resolve(ctx, rep.ID))

	unresolved, err := reports.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, unresolved)

	all, err := reports.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsResolved)

	assert.ErrorIs(t, reports.Resolve(ctx, rep.ID+999), errs.ErrNotFound)
}
