package config_test

import (
	"strings"
	"testing"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("inspector-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Telemetry.ServiceName != "inspector-test" {
		t.Errorf("expected service name inspector-test, got %s", cfg.Telemetry.ServiceName)
	}
	if cfg.Canvas.Width != 700 || cfg.Canvas.Height != 420 {
		t.Errorf("expected 700x420 canvas, got %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("INSPECTOR_SERVER_PORT", "9191")
	t.Setenv("INSPECTOR_DATABASE_HOST", "db.internal")

	cfg, err := config.Load("inspector-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("expected port 9191, got %d", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("expected host db.internal, got %s", cfg.Database.Host)
	}
	if !strings.Contains(cfg.Database.DSN(), "@db.internal:5432/") {
		t.Errorf("unexpected DSN %s", cfg.Database.DSN())
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := &config.Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"server.port", "database.host", "nats.url", "valkey.addr", "canvas size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in error, got:\n%s", want, err)
		}
	}
}
