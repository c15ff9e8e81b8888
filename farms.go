package agrovia

import (
	"context"
	"net/url"

	"github.com/agrovia/agrovia-go/httpclient"
	"github.com/agrovia/agrovia-go/validation"
)

// FarmsService manages farms.
type FarmsService struct {
	client *Client
}

// List returns a page of farms, optionally scoped to one farmer.
func (s *FarmsService) List(ctx context.Context, farmerID string, opts ListOptions) (*Page[Farm], error) {
	ctx, done := s.client.observe(ctx, "farms.list")
	q := opts.query()
	if farmerID != "" {
		q = append(q, httpclient.QueryParam{Key: "farmer_id", Value: farmerID})
	}
	resp, err := httpclient.Get[Page[Farm]](s.client.http, ctx, "/farms",
		httpclient.WithQueryParams(q))
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Get fetches a single farm by ID.
func (s *FarmsService) Get(ctx context.Context, id string) (*Farm, error) {
	ctx, done := s.client.observe(ctx, "farms.get")
	resp, err := httpclient.Get[Farm](s.client.http, ctx, "/farms/"+url.PathEscape(id),
		httpclient.WithValidator(validation.Schema[Farm]()))
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Create registers a new farm under a farmer.
func (s *FarmsService) Create(ctx context.Context, req FarmRequest) (*Farm, error) {
	ctx, done := s.client.observe(ctx, "farms.create")
	resp, err := httpclient.Post[Farm](s.client.http, ctx, "/farms", req)
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Update replaces a farm's details.
func (s *FarmsService) Update(ctx context.Context, id string, req FarmRequest) (*Farm, error) {
	ctx, done := s.client.observe(ctx, "farms.update")
	resp, err := httpclient.Put[Farm](s.client.http, ctx, "/farms/"+url.PathEscape(id), req)
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Delete removes a farm.
func (s *FarmsService) Delete(ctx context.Context, id string) error {
	ctx, done := s.client.observe(ctx, "farms.delete")
	_, err := httpclient.Delete[struct{}](s.client.http, ctx, "/farms/"+url.PathEscape(id))
	err = apiError(err)
	done(err)
	return err
}
