package agrovia

import (
	"context"
	"net/url"

	"github.com/agrovia/agrovia-go/httpclient"
	"github.com/agrovia/agrovia-go/validation"
)

// CropsService manages crop plantings on farms.
type CropsService struct {
	client *Client
}

// List returns a page of crops, optionally scoped to one farm.
func (s *CropsService) List(ctx context.Context, farmID string, opts ListOptions) (*Page[Crop], error) {
	ctx, done := s.client.observe(ctx, "crops.list")
	q := opts.query()
	if farmID != "" {
		q = append(q, httpclient.QueryParam{Key: "farm_id", Value: farmID})
	}
	resp, err := httpclient.Get[Page[Crop]](s.client.http, ctx, "/crops",
		httpclient.WithQueryParams(q))
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Get fetches a single crop by ID.
func (s *CropsService) Get(ctx context.Context, id string) (*Crop, error) {
	ctx, done := s.client.observe(ctx, "crops.get")
	resp, err := httpclient.Get[Crop](s.client.http, ctx, "/crops/"+url.PathEscape(id),
		httpclient.WithValidator(validation.Schema[Crop]()))
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Create registers a new crop planting.
func (s *CropsService) Create(ctx context.Context, req CropRequest) (*Crop, error) {
	ctx, done := s.client.observe(ctx, "crops.create")
	resp, err := httpclient.Post[Crop](s.client.http, ctx, "/crops", req)
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Update replaces a crop's details.
func (s *CropsService) Update(ctx context.Context, id string, req CropRequest) (*Crop, error) {
	ctx, done := s.client.observe(ctx, "crops.update")
	resp, err := httpclient.Put[Crop](s.client.http, ctx, "/crops/"+url.PathEscape(id), req)
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// RecordHarvest marks a crop as harvested with its final yield.
func (s *CropsService) RecordHarvest(ctx context.Context, id string, yieldKg float64) (*Crop, error) {
	ctx, done := s.client.observe(ctx, "crops.harvest")
	body := map[string]any{"yield_kg": yieldKg}
	resp, err := httpclient.Post[Crop](s.client.http, ctx, "/crops/"+url.PathEscape(id)+"/harvest", body)
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Delete removes a crop.
func (s *CropsService) Delete(ctx context.Context, id string) error {
	ctx, done := s.client.observe(ctx, "crops.delete")
	_, err := httpclient.Delete[struct{}](s.client.http, ctx, "/crops/"+url.PathEscape(id))
	err = apiError(err)
	done(err)
	return err
}
