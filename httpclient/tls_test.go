package httpclient

import "testing"

func TestTLSConfigValidate(t *testing.T) {
	if err := (&TLSConfig{CertFile: "client.crt"}).Validate(); err == nil {
		t.Error("Validate() = nil with cert but no key")
	}
	if err := (&TLSConfig{CertFile: "client.crt", KeyFile: "client.key"}).Validate(); err != nil {
		t.Errorf("Validate() = %v with matched pair", err)
	}
	var nilCfg *TLSConfig
	if err := nilCfg.Validate(); err != nil {
		t.Errorf("Validate() on nil = %v", err)
	}
}

func TestTLSConfigBuild(t *testing.T) {
	cfg, err := (&TLSConfig{}).Build()
	if err != nil || cfg != nil {
		t.Errorf("Build() on empty config = %v, %v, want nil, nil", cfg, err)
	}

	cfg, err = (&TLSConfig{SkipVerify: true, ServerName: "api.internal"}).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !cfg.InsecureSkipVerify || cfg.ServerName != "api.internal" {
		t.Errorf("Build() = %+v", cfg)
	}

	if _, err := (&TLSConfig{CAFile: "/nonexistent/ca.pem"}).Build(); err == nil {
		t.Error("Build() = nil error for missing CA file")
	}
}
