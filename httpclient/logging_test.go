package httpclient

import (
	"strings"
	"testing"
)

func TestLogConfigDefaults(t *testing.T) {
	var cfg LogConfig
	cfg.ApplyDefaults()
	if cfg.Enabled {
		t.Error("Enabled defaulted to true")
	}
	if cfg.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Level)
	}
	if cfg.MaxBodyLogBytes != defaultMaxBodyLogBytes {
		t.Errorf("MaxBodyLogBytes = %d", cfg.MaxBodyLogBytes)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate([]byte("short"), 10); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
	got := truncate([]byte(strings.Repeat("x", 20)), 10)
	if got != strings.Repeat("x", 10)+"...(truncated)" {
		t.Errorf("truncate() = %q", got)
	}
}
