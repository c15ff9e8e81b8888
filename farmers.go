package agrovia

import (
	"context"
	"net/url"

	"github.com/agrovia/agrovia-go/httpclient"
	"github.com/agrovia/agrovia-go/validation"
)

// FarmersService manages farmer accounts.
type FarmersService struct {
	client *Client
}

// List returns a page of farmers.
func (s *FarmersService) List(ctx context.Context, opts ListOptions) (*Page[Farmer], error) {
	ctx, done := s.client.observe(ctx, "farmers.list")
	resp, err := httpclient.Get[Page[Farmer]](s.client.http, ctx, "/farmers",
		httpclient.WithQueryParams(opts.query()))
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Get fetches a single farmer by ID.
func (s *FarmersService) Get(ctx context.Context, id string) (*Farmer, error) {
	ctx, done := s.client.observe(ctx, "farmers.get")
	resp, err := httpclient.Get[Farmer](s.client.http, ctx, "/farmers/"+url.PathEscape(id),
		httpclient.WithValidator(validation.Schema[Farmer]()))
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Create registers a new farmer.
func (s *FarmersService) Create(ctx context.Context, req FarmerRequest) (*Farmer, error) {
	ctx, done := s.client.observe(ctx, "farmers.create")
	resp, err := httpclient.Post[Farmer](s.client.http, ctx, "/farmers", req)
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Update replaces a farmer's profile.
func (s *FarmersService) Update(ctx context.Context, id string, req FarmerRequest) (*Farmer, error) {
	ctx, done := s.client.observe(ctx, "farmers.update")
	resp, err := httpclient.Put[Farmer](s.client.http, ctx, "/farmers/"+url.PathEscape(id), req)
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Delete removes a farmer and everything they own.
func (s *FarmersService) Delete(ctx context.Context, id string) error {
	ctx, done := s.client.observe(ctx, "farmers.delete")
	_, err := httpclient.Delete[struct{}](s.client.http, ctx, "/farmers/"+url.PathEscape(id))
	err = apiError(err)
	done(err)
	return err
}
