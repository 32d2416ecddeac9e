package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.AppPort != "8080" {
		t.Fatalf("port: got %q", cfg.AppPort)
	}
	if cfg.MaxMark != 5 || cfg.AbsentMark != "н" {
		t.Fatalf("grading defaults: max=%d absent=%q", cfg.MaxMark, cfg.AbsentMark)
	}
	if cfg.JWTTTL != 7*24*time.Hour {
		t.Fatalf("ttl: got %v", cfg.JWTTTL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MARKS_SYSTEM", "10")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("APP_PORT", "9000")

	cfg := Load()
	if cfg.MaxMark != 10 {
		t.Fatalf("max mark: got %d", cfg.MaxMark)
	}
	if cfg.JWTTTL != 30*time.Minute {
		t.Fatalf("ttl: got %v", cfg.JWTTTL)
	}
	if cfg.AppPort != "9000" {
		t.Fatalf("port: got %q", cfg.AppPort)
	}
}

func TestMarkValues(t *testing.T) {
	cfg := &Config{MaxMark: 5, AbsentMark: "н"}
	got := cfg.MarkValues()
	want := []string{"2", "3", "4", "5", "н"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
