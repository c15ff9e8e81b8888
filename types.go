package agrovia

import (
	"time"

	"github.com/agrovia/agrovia-go/httpclient"
)

// Farmer is an account holder who operates one or more farms.
type Farmer struct {
	ID        string     `json:"id" validate:"required"`
	Name      string     `json:"name" validate:"required"`
	Email     string     `json:"email" validate:"required,email"`
	Phone     string     `json:"phone,omitempty"`
	Region    string     `json:"region,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// FarmerRequest is the create/update payload for a farmer.
type FarmerRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Region string `json:"region,omitempty"`
}

// Farm is a physical site owned by a farmer.
type Farm struct {
	ID          string     `json:"id" validate:"required"`
	FarmerID    string     `json:"farmer_id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Location    string     `json:"location,omitempty"`
	AreaHa      float64    `json:"area_ha"`
	Irrigated   bool       `json:"irrigated"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// FarmRequest is the create/update payload for a farm.
type FarmRequest struct {
	FarmerID  string  `json:"farmer_id"`
	Name      string  `json:"name"`
	Location  string  `json:"location,omitempty"`
	AreaHa    float64 `json:"area_ha,omitempty"`
	Irrigated bool    `json:"irrigated,omitempty"`
}

// Crop is a planting of a single variety on a farm.
type Crop struct {
	ID          string     `json:"id" validate:"required"`
	FarmID      string     `json:"farm_id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Variety     string     `json:"variety,omitempty"`
	PlantedAt   *time.Time `json:"planted_at,omitempty"`
	HarvestedAt *time.Time `json:"harvested_at,omitempty"`
	YieldKg     float64    `json:"yield_kg,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CropRequest is the create/update payload for a crop.
type CropRequest struct {
	FarmID    string     `json:"farm_id"`
	Name      string     `json:"name"`
	Variety   string     `json:"variety,omitempty"`
	PlantedAt *time.Time `json:"planted_at,omitempty"`
}

// Activity types recorded against a crop.
const (
	ActivityPlanting    = "planting"
	ActivityIrrigation  = "irrigation"
	ActivityFertilizing = "fertilizing"
	ActivityHarvest     = "harvest"
)

// Activity is a dated field operation logged against a crop.
type Activity struct {
	ID        string    `json:"id" validate:"required"`
	CropID    string    `json:"crop_id" validate:"required"`
	Type      string    `json:"type" validate:"required,oneof=planting irrigation fertilizing harvest"`
	Date      time.Time `json:"date"`
	Quantity  float64   `json:"quantity,omitempty"`
	Unit      string    `json:"unit,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityRequest is the create payload for an activity.
type ActivityRequest struct {
	CropID   string    `json:"crop_id"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity,omitempty"`
	Unit     string    `json:"unit,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

// Bulk job states.
const (
	JobQueued    = "queued"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// BulkJob tracks a server-side import or export.
type BulkJob struct {
	ID        string     `json:"id" validate:"required"`
	Kind      string     `json:"kind"`
	Status    string     `json:"status" validate:"required,oneof=queued running completed failed"`
	Total     int        `json:"total,omitempty"`
	Processed int        `json:"processed,omitempty"`
	Errors    []string   `json:"errors,omitempty"`
	ResultURL string     `json:"result_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// BulkImportRequest submits a batch of activity records for asynchronous
// ingestion.
type BulkImportRequest struct {
	FarmID  string            `json:"farm_id"`
	Records []ActivityRequest `json:"records"`
}

// YieldReport aggregates harvested yield for one farm over a season.
type YieldReport struct {
	FarmID      string             `json:"farm_id" validate:"required"`
	Season      string             `json:"season"`
	TotalKg     float64            `json:"total_kg"`
	ByCrop      map[string]float64 `json:"by_crop,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Page is the envelope returned by list endpoints.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListOptions narrows and pages list endpoints. Zero values are omitted
// from the query string.
type ListOptions struct {
	Limit  int
	Offset int
	Search string
}

func (o ListOptions) query() []httpclient.QueryParam {
	var q []httpclient.QueryParam
	if o.Limit > 0 {
		q = append(q, httpclient.QueryParam{Key: "limit", Value: o.Limit})
	}
	if o.Offset > 0 {
		q = append(q, httpclient.QueryParam{Key: "offset", Value: o.Offset})
	}
	if o.Search != "" {
		q = append(q, httpclient.QueryParam{Key: "search", Value: o.Search})
	}
	return q
}
