package agrovia

import (
	"context"
	"net/url"

	"github.com/agrovia/agrovia-go/httpclient"
	"github.com/agrovia/agrovia-go/validation"
)

// ReportsService produces aggregated views over farm data.
type ReportsService struct {
	client *Client
}

// Yield returns the yield summary for a farm. Season is optional and
// defaults to the current season server-side.
func (s *ReportsService) Yield(ctx context.Context, farmID, season string) (*YieldReport, error) {
	ctx, done := s.client.observe(ctx, "reports.yield")
	var q []httpclient.QueryParam
	if season != "" {
		q = append(q, httpclient.QueryParam{Key: "season", Value: season})
	}
	resp, err := httpclient.Get[YieldReport](s.client.http, ctx,
		"/reports/yield/"+url.PathEscape(farmID),
		httpclient.WithQueryParams(q),
		httpclient.WithValidator(validation.Schema[YieldReport]()))
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ExportCSV downloads a farm's raw activity log as CSV bytes.
func (s *ReportsService) ExportCSV(ctx context.Context, farmID string) ([]byte, error) {
	ctx, done := s.client.observe(ctx, "reports.export_csv")
	resp, err := s.client.http.Do(ctx, httpclient.Request{
		Method:  "GET",
		Path:    "/reports/export/" + url.PathEscape(farmID),
		Headers: map[string]string{"Accept": "text/csv"},
	})
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
