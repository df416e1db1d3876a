package control

import (
	"context"
	"testing"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/config"
)

func memoryConfig() config.AppConfig {
	return config.AppConfig{
		Server: config.ServerConfig{Port: 0},
		Assets: config.AssetConfig{BaseURL: "http://localhost:9"},
		Data:   config.DataConfig{BaseURL: "http://localhost:9", DefaultLanguage: "es"},
	}
}

func TestNewServiceMemoryMode(t *testing.T) {
	svc, err := NewService(memoryConfig(), nil)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	status := svc.Snapshot()
	if !status.Online {
		t.Error("expected default platform to report online")
	}
	if status.Quality != "good" {
		t.Errorf("Quality = %q, want %q", status.Quality, "good")
	}
	if status.CachedResources != 0 {
		t.Errorf("CachedResources = %d, want 0", status.CachedResources)
	}
}

func TestServiceStopWithoutStart(t *testing.T) {
	svc, err := NewService(memoryConfig(), nil)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}
