package repository

import (
	"context"
	"fmt"

	"github.com/d9647/EduDirectory-sub000/internal/model"
)

// Registry indexes the six listing stores by their route slug so the admin
// layer can dispatch on the :type path segment, and runs the fan-out queries
// that assemble the cross-type admin views.
type Registry struct {
	order  []string
	stores map[string]ListingStore
}

func NewRegistry(
	tutoring *TutoringProviderRepository,
	camps *SummerCampRepository,
	internships *InternshipRepository,
	jobs *JobRepository,
	services *ServiceRepository,
	events *EventRepository,
) *Registry {
	r := &Registry{stores: map[string]ListingStore{}}
	r.add(model.TypeTutoringProviders, tutoring)
	r.add(model.TypeSummerCamps, camps)
	r.add(model.TypeInternships, internships)
	r.add(model.TypeJobs, jobs)
	r.add(model.TypeServices, services)
	r.add(model.TypeEvents, events)
	return r
}

func (r *Registry) add(listingType string, s ListingStore) {
	r.order = append(r.order, listingType)
	r.stores[listingType] = s
}

// Store resolves a listing type slug to its store.
func (r *Registry) Store(listingType string) (ListingStore, bool) {
	s, ok := r.stores[listingType]
	return s, ok
}

// PendingAll fans out one unapproved-rows query per listing type and returns
// the results keyed by type.
func (r *Registry) PendingAll(ctx context.Context) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(r.order))
	for _, t := range r.order {
		items, err := r.stores[t].Pending(ctx)
		if err != nil {
			return nil, fmt.Errorf("pending %s: %w", t, err)
		}
		out[t] = items
	}
	return out, nil
}

// LiveAll fans out one approved-rows query per listing type, each capped at
// limit rows. Not paginated; the cap is a known scale limit.
func (r *Registry) LiveAll(ctx context.Context, limit int) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(r.order))
	for _, t := range r.order {
		items, err := r.stores[t].Live(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("live %s: %w", t, err)
		}
		out[t] = items
	}
	return out, nil
}
