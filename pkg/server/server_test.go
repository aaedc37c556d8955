package server

import (
	"net/http"
	"testing"

	"mapfnet/pkg/config"
	"mapfnet/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func init() {
	logger.Init("error")
}

func TestNewServer(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{Name: "test-app"},
		GRPC: config.GRPCConfig{
			Port:      50051,
			KeepAlive: config.KeepAliveConfig{},
		},
		RateLimit: config.RateLimitConfig{
			Enabled: false,
		},
		Audit: config.AuditConfig{
			Enabled: false,
		},
	}

	srv := New(cfg, nil)
	assert.NotNil(t, srv)
	assert.Nil(t, srv.GetAuditLogger())
}

func TestNewServer_WithOptions(t *testing.T) {
	cfg := &config.Config{
		App:   config.AppConfig{Name: "test-app"},
		GRPC:  config.GRPCConfig{Port: 50052},
		Audit: config.AuditConfig{Enabled: true},
	}

	opts := &Options{
		Handler:     http.NewServeMux(),
		AuditLogger: nil,
	}

	srv := New(cfg, opts)
	assert.NotNil(t, srv)
}
