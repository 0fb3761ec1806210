package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/cajafund/cajafund/internal/infrastructure/config"
)

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{
		HTTPPort:         "9090",
		HTTPReadTimeout:  15 * time.Second,
		HTTPWriteTimeout: 20 * time.Second,
		HTTPIdleTimeout:  90 * time.Second,
	}

	handler := http.NewServeMux()
	server := newHTTPServer(cfg, handler)

	if server.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %s", server.Addr)
	}

	if server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %v", server.ReadTimeout)
	}

	if server.WriteTimeout != 20*time.Second {
		t.Errorf("unexpected write timeout: %v", server.WriteTimeout)
	}

	if server.IdleTimeout != 90*time.Second {
		t.Errorf("unexpected idle timeout: %v", server.IdleTimeout)
	}

	if server.Handler == nil {
		t.Error("expected handler to be set")
	}
}
