package agrovia

import (
	"context"
	"net/url"
	"time"

	"github.com/agrovia/agrovia-go/httpclient"
)

// ActivitiesService records and queries field operations.
type ActivitiesService struct {
	client *Client
}

// ActivityFilter narrows activity listings. Zero values are omitted.
type ActivityFilter struct {
	CropID string
	Type   string
	From   *time.Time
	To     *time.Time
	ListOptions
}

func (f ActivityFilter) query() []httpclient.QueryParam {
	q := f.ListOptions.query()
	if f.CropID != "" {
		q = append(q, httpclient.QueryParam{Key: "crop_id", Value: f.CropID})
	}
	if f.Type != "" {
		q = append(q, httpclient.QueryParam{Key: "type", Value: f.Type})
	}
	if f.From != nil {
		q = append(q, httpclient.QueryParam{Key: "from", Value: f.From.Format(time.RFC3339)})
	}
	if f.To != nil {
		q = append(q, httpclient.QueryParam{Key: "to", Value: f.To.Format(time.RFC3339)})
	}
	return q
}

// List returns a page of activities matching the filter.
func (s *ActivitiesService) List(ctx context.Context, filter ActivityFilter) (*Page[Activity], error) {
	ctx, done := s.client.observe(ctx, "activities.list")
	resp, err := httpclient.Get[Page[Activity]](s.client.http, ctx, "/activities",
		httpclient.WithQueryParams(filter.query()))
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Get fetches a single activity by ID.
func (s *ActivitiesService) Get(ctx context.Context, id string) (*Activity, error) {
	ctx, done := s.client.observe(ctx, "activities.get")
	resp, err := httpclient.Get[Activity](s.client.http, ctx, "/activities/"+url.PathEscape(id))
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Create logs a new activity against a crop.
func (s *ActivitiesService) Create(ctx context.Context, req ActivityRequest) (*Activity, error) {
	ctx, done := s.client.observe(ctx, "activities.create")
	resp, err := httpclient.Post[Activity](s.client.http, ctx, "/activities", req)
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Delete removes an activity record.
func (s *ActivitiesService) Delete(ctx context.Context, id string) error {
	ctx, done := s.client.observe(ctx, "activities.delete")
	_, err := httpclient.Delete[struct{}](s.client.http, ctx, "/activities/"+url.PathEscape(id))
	err = apiError(err)
	done(err)
	return err
}
