package agrovia

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"time"

	"github.com/agrovia/agrovia-go/httpclient"
	"github.com/agrovia/agrovia-go/resilience"
	"github.com/agrovia/agrovia-go/validation"
)

// ErrJobNotFinished is returned by Await when the job is still queued or
// running after the polling budget is spent.
var ErrJobNotFinished = stderrors.New("agrovia: bulk job has not finished")

// JobError reports a bulk job that ended in the failed state.
type JobError struct {
	Job *BulkJob
}

func (e *JobError) Error() string {
	return fmt.Sprintf("agrovia: bulk job %s failed after %d/%d records",
		e.Job.ID, e.Job.Processed, e.Job.Total)
}

// JobsService submits and tracks asynchronous bulk operations.
type JobsService struct {
	client *Client
}

// SubmitImport queues a batch of activity records for ingestion and
// returns the job handle immediately.
func (s *JobsService) SubmitImport(ctx context.Context, req BulkImportRequest) (*BulkJob, error) {
	ctx, done := s.client.observe(ctx, "jobs.submit_import")
	resp, err := httpclient.Post[BulkJob](s.client.http, ctx, "/jobs/import", req,
		httpclient.WithValidator(validation.Schema[BulkJob]()))
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// SubmitExport queues an export of all records for a farm and returns
// the job handle immediately. The finished job carries a ResultURL.
func (s *JobsService) SubmitExport(ctx context.Context, farmID string) (*BulkJob, error) {
	ctx, done := s.client.observe(ctx, "jobs.submit_export")
	body := map[string]any{"farm_id": farmID}
	resp, err := httpclient.Post[BulkJob](s.client.http, ctx, "/jobs/export", body,
		httpclient.WithValidator(validation.Schema[BulkJob]()))
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Get fetches the current state of a job.
func (s *JobsService) Get(ctx context.Context, id string) (*BulkJob, error) {
	ctx, done := s.client.observe(ctx, "jobs.get")
	resp, err := httpclient.Get[BulkJob](s.client.http, ctx, "/jobs/"+url.PathEscape(id))
	err = apiError(err)
	done(err)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// AwaitOptions bounds how long Await polls for a terminal job state.
type AwaitOptions struct {
	// MaxPolls caps the number of status checks. Defaults to 30.
	MaxPolls int
	// Interval is the initial delay between polls. Defaults to 2s and
	// grows by half each poll up to MaxInterval.
	Interval time.Duration
	// MaxInterval caps the delay between polls. Defaults to 30s.
	MaxInterval time.Duration
}

func (o *AwaitOptions) applyDefaults() {
	if o.MaxPolls <= 0 {
		o.MaxPolls = 30
	}
	if o.Interval <= 0 {
		o.Interval = 2 * time.Second
	}
	if o.MaxInterval <= 0 {
		o.MaxInterval = 30 * time.Second
	}
}

// Await polls the job until it completes, fails, or the polling budget
// runs out. A failed job is returned alongside a *JobError so callers
// can inspect partial progress.
func (s *JobsService) Await(ctx context.Context, id string, opts AwaitOptions) (*BulkJob, error) {
	opts.applyDefaults()

	cfg := resilience.RetryConfig{
		MaxAttempts:    opts.MaxPolls,
		InitialBackoff: opts.Interval,
		MaxBackoff:     opts.MaxInterval,
		Factor:         1.5,
		RetryIf: func(err error) bool {
			return stderrors.Is(err, ErrJobNotFinished)
		},
	}

	job, err := resilience.Retry(ctx, cfg, func() (*BulkJob, error) {
		job, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		switch job.Status {
		case JobCompleted:
			return job, nil
		case JobFailed:
			return job, &JobError{Job: job}
		default:
			return job, ErrJobNotFinished
		}
	})
	if err != nil {
		var jerr *JobError
		if stderrors.As(err, &jerr) {
			return jerr.Job, err
		}
		return nil, err
	}
	return job, nil
}
