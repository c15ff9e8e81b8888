package agrovia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apierrors "github.com/agrovia/agrovia-go/errors"
	"github.com/agrovia/agrovia-go/httpclient"
)

func newTestServer(t *testing.T, handler http.Handler) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		BaseURL:  server.URL,
		APIToken: "test-token",
		Retry: &httpclient.RetryPolicy{
			MaxRetries: 1,
			BaseDelay:  time.Millisecond,
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return server, client
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() error = nil, want missing base URL")
	}
}

func TestPing(t *testing.T) {
	_, client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q, want /health", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestFarmersCRUD(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /farmers", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.RawQuery; got != "limit=2&search=kaya" {
			t.Errorf("query = %q", got)
		}
		_ = json.NewEncoder(w).Encode(Page[Farmer]{
			Items: []Farmer{{ID: "fr1", Name: "Kaya", Email: "kaya@example.com"}},
			Total: 1, Limit: 2,
		})
	})
	mux.HandleFunc("GET /farmers/fr1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Farmer{ID: "fr1", Name: "Kaya", Email: "kaya@example.com"})
	})
	mux.HandleFunc("POST /farmers", func(w http.ResponseWriter, r *http.Request) {
		var req FarmerRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Farmer{ID: "fr2", Name: req.Name, Email: req.Email})
	})
	mux.HandleFunc("DELETE /farmers/fr1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	_, client := newTestServer(t, mux)
	ctx := context.Background()

	page, err := client.Farmers.List(ctx, ListOptions{Limit: 2, Search: "kaya"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "fr1" {
		t.Errorf("List() = %+v", page)
	}

	farmer, err := client.Farmers.Get(ctx, "fr1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if farmer.Name != "Kaya" {
		t.Errorf("Get().Name = %q", farmer.Name)
	}

	created, err := client.Farmers.Create(ctx, FarmerRequest{Name: "Mati", Email: "mati@example.com"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != "fr2" || created.Name != "Mati" {
		t.Errorf("Create() = %+v", created)
	}

	if err := client.Farmers.Delete(ctx, "fr1"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestGetValidatesResponseSchema(t *testing.T) {
	_, client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Missing required fields: the schema validator must reject this.
		fmt.Fprint(w, `{"name":"Ghost Farm"}`)
	}))

	_, err := client.Farms.Get(context.Background(), "f1")
	if !httpclient.IsValidation(err) {
		t.Errorf("Get() error = %v, want validation error", err)
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	_, client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"code":"NOT_FOUND","message":"farm f9 does not exist"}`)
	}))

	_, err := client.Farms.Get(context.Background(), "f9")
	if !apierrors.IsNotFound(err) {
		t.Fatalf("Get() error = %v, want NOT_FOUND", err)
	}
	var aerr *apierrors.APIError
	if !errors.As(err, &aerr) {
		t.Fatalf("error type = %T", err)
	}
	if aerr.HTTPStatus != 404 || aerr.Message != "farm f9 does not exist" {
		t.Errorf("APIError = %+v", aerr)
	}
	// The transport classification stays reachable underneath.
	if !httpclient.IsClient(err) {
		t.Error("transport error not reachable through the API error")
	}
}

func TestCropsRecordHarvest(t *testing.T) {
	_, client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/crops/c1/harvest" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]float64
		_ = json.NewDecoder(r.Body).Decode(&body)
		now := time.Now()
		_ = json.NewEncoder(w).Encode(Crop{
			ID: "c1", FarmID: "f1", Name: "Wheat",
			HarvestedAt: &now, YieldKg: body["yield_kg"],
		})
	}))

	crop, err := client.Crops.RecordHarvest(context.Background(), "c1", 1250.5)
	if err != nil {
		t.Fatalf("RecordHarvest() error = %v", err)
	}
	if crop.YieldKg != 1250.5 || crop.HarvestedAt == nil {
		t.Errorf("RecordHarvest() = %+v", crop)
	}
}

func TestActivitiesListFilter(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("crop_id") != "c1" || q.Get("type") != ActivityIrrigation {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		if q.Get("from") != "2026-03-01T00:00:00Z" {
			t.Errorf("from = %q", q.Get("from"))
		}
		_ = json.NewEncoder(w).Encode(Page[Activity]{
			Items: []Activity{{ID: "a1", CropID: "c1", Type: ActivityIrrigation}},
			Total: 1,
		})
	}))

	page, err := client.Activities.List(context.Background(), ActivityFilter{
		CropID: "c1",
		Type:   ActivityIrrigation,
		From:   &from,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Type != ActivityIrrigation {
		t.Errorf("List() = %+v", page)
	}
}

func TestJobsAwaitPollsUntilCompleted(t *testing.T) {
	var polls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /jobs/import", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(BulkJob{ID: "j1", Kind: "import", Status: JobQueued})
	})
	mux.HandleFunc("GET /jobs/j1", func(w http.ResponseWriter, r *http.Request) {
		job := BulkJob{ID: "j1", Kind: "import", Status: JobRunning, Total: 10}
		if polls.Add(1) >= 3 {
			job.Status = JobCompleted
			job.Processed = 10
		}
		_ = json.NewEncoder(w).Encode(job)
	})
	_, client := newTestServer(t, mux)
	ctx := context.Background()

	job, err := client.Jobs.SubmitImport(ctx, BulkImportRequest{
		FarmID:  "f1",
		Records: []ActivityRequest{{CropID: "c1", Type: ActivityPlanting, Date: time.Now()}},
	})
	if err != nil {
		t.Fatalf("SubmitImport() error = %v", err)
	}
	if job.Status != JobQueued {
		t.Errorf("Status = %q, want queued", job.Status)
	}

	finished, err := client.Jobs.Await(ctx, job.ID, AwaitOptions{
		MaxPolls: 10,
		Interval: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	if finished.Status != JobCompleted || finished.Processed != 10 {
		t.Errorf("Await() = %+v", finished)
	}
	if got := polls.Load(); got != 3 {
		t.Errorf("polls = %d, want 3", got)
	}
}

func TestJobsAwaitFailedJob(t *testing.T) {
	_, client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(BulkJob{
			ID: "j2", Status: JobFailed, Total: 10, Processed: 4,
			Errors: []string{"row 5: unknown crop"},
		})
	}))

	job, err := client.Jobs.Await(context.Background(), "j2", AwaitOptions{
		MaxPolls: 3,
		Interval: time.Millisecond,
	})
	var jerr *JobError
	if !errors.As(err, &jerr) {
		t.Fatalf("Await() error = %v, want *JobError", err)
	}
	if job == nil || job.Processed != 4 {
		t.Errorf("failed job = %+v, want partial progress returned", job)
	}
}

func TestJobsAwaitBudgetExhausted(t *testing.T) {
	_, client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(BulkJob{ID: "j3", Status: JobRunning})
	}))

	_, err := client.Jobs.Await(context.Background(), "j3", AwaitOptions{
		MaxPolls: 2,
		Interval: time.Millisecond,
	})
	if !errors.Is(err, ErrJobNotFinished) {
		t.Errorf("Await() error = %v, want ErrJobNotFinished", err)
	}
}

func TestReportsYieldAndExport(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reports/yield/f1", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("season"); got != "2026" {
			t.Errorf("season = %q", got)
		}
		_ = json.NewEncoder(w).Encode(YieldReport{
			FarmID: "f1", Season: "2026", TotalKg: 5400,
			ByCrop: map[string]float64{"wheat": 5400},
		})
	})
	mux.HandleFunc("GET /reports/export/f1", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "text/csv" {
			t.Errorf("Accept = %q, want text/csv", got)
		}
		fmt.Fprint(w, "crop,yield_kg\nwheat,5400\n")
	})
	_, client := newTestServer(t, mux)
	ctx := context.Background()

	report, err := client.Reports.Yield(ctx, "f1", "2026")
	if err != nil {
		t.Fatalf("Yield() error = %v", err)
	}
	if report.TotalKg != 5400 || report.ByCrop["wheat"] != 5400 {
		t.Errorf("Yield() = %+v", report)
	}

	csv, err := client.Reports.ExportCSV(ctx, "f1")
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	if string(csv) != "crop,yield_kg\nwheat,5400\n" {
		t.Errorf("ExportCSV() = %q", csv)
	}
}
