package httpclient

import (
	"time"

	"github.com/agrovia/agrovia-go/logger"
)

const defaultMaxBodyLogBytes = 2048

// LogConfig configures request/response logging for the engine. It is
// purely observational: enabling or disabling any field never changes
// retry or error behavior.
type LogConfig struct {
	// Enabled turns engine logging on. Off by default.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Level is the log level for request/response lines. Defaults to debug.
	Level string `yaml:"level" mapstructure:"level"`
	// LogRequests includes request bodies in log lines.
	LogRequests bool `yaml:"log_requests" mapstructure:"log_requests"`
	// LogResponses includes response bodies in log lines.
	LogResponses bool `yaml:"log_responses" mapstructure:"log_responses"`
	// MaxBodyLogBytes caps the number of body bytes logged. Defaults to 2048.
	MaxBodyLogBytes int `yaml:"max_body_log_bytes" mapstructure:"max_body_log_bytes"`
}

// ApplyDefaults fills in zero-value fields.
func (c *LogConfig) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "debug"
	}
	if c.MaxBodyLogBytes <= 0 {
		c.MaxBodyLogBytes = defaultMaxBodyLogBytes
	}
}

// engineLogger emits the engine's structured log lines.
type engineLogger struct {
	log *logger.Logger
	cfg LogConfig
}

func newEngineLogger(cfg Config) engineLogger {
	if !cfg.Log.Enabled {
		return engineLogger{log: logger.Nop(), cfg: cfg.Log}
	}
	lc := &logger.Config{Level: cfg.Log.Level, Format: "json", Output: "stderr", Timestamp: true}
	return engineLogger{
		log: logger.New(lc, cfg.Name).WithComponent("httpclient"),
		cfg: cfg.Log,
	}
}

func (l engineLogger) request(requestID string, attempt int, method, target string, body []byte) {
	fields := logger.Fields(
		logger.FieldRequestID, requestID,
		"attempt", attempt,
		"method", method,
		"url", target,
	)
	if l.cfg.LogRequests && len(body) > 0 {
		fields["body"] = truncate(body, l.cfg.MaxBodyLogBytes)
	}
	l.log.Debug("request", fields)
}

func (l engineLogger) response(requestID string, attempt, status int, body []byte) {
	fields := logger.Fields(
		logger.FieldRequestID, requestID,
		"attempt", attempt,
		logger.FieldStatus, status,
	)
	if l.cfg.LogResponses && len(body) > 0 {
		fields["body"] = truncate(body, l.cfg.MaxBodyLogBytes)
	}
	l.log.Debug("response", fields)
}

func (l engineLogger) retry(requestID string, attempt int, delay time.Duration, err error) {
	l.log.Warn("retrying", logger.Fields(
		logger.FieldRequestID, requestID,
		"attempt", attempt,
		"delay_ms", delay.Milliseconds(),
		logger.FieldError, err.Error(),
	))
}

func (l engineLogger) failure(requestID string, attempt int, err error) {
	l.log.Error("request failed", logger.Fields(
		logger.FieldRequestID, requestID,
		"attempt", attempt,
		logger.FieldError, err.Error(),
	))
}

// truncate caps a body for logging without mutating it.
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "...(truncated)"
}
