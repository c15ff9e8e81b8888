package observability

import (
	"context"
	"testing"
	"time"
)

func TestClientMetricsRecordsWithoutProvider(t *testing.T) {
	// With no global meter provider configured the instruments are no-ops,
	// but creating and using them must still work.
	m, err := NewClientMetrics(Meter("test"))
	if err != nil {
		t.Fatalf("NewClientMetrics() error = %v", err)
	}
	m.RecordCall(context.Background(), "farms.get", "ok", 25*time.Millisecond)
	m.RecordRetry(context.Background(), "farms.get")
}

func TestClientMetricsNilSafe(t *testing.T) {
	var m *ClientMetrics
	m.RecordCall(context.Background(), "farms.get", "error", time.Millisecond)
	m.RecordRetry(context.Background(), "farms.get")
}

func TestDefaultConfigs(t *testing.T) {
	mc := DefaultMeterConfig("agrovia-sdk")
	if mc.ServiceName != "agrovia-sdk" || mc.Endpoint == "" || mc.Interval <= 0 {
		t.Errorf("DefaultMeterConfig() = %+v", mc)
	}
	tc := DefaultTracerConfig("agrovia-sdk")
	if tc.SampleRate != 1.0 || tc.Endpoint == "" {
		t.Errorf("DefaultTracerConfig() = %+v", tc)
	}
}
