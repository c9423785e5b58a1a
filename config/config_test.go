package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.Width != 30 || cfg.Game.Height != 30 {
		t.Fatalf("expected 30x30 board, got %dx%d", cfg.Game.Width, cfg.Game.Height)
	}
	if cfg.Game.TickInterval != 100*time.Millisecond {
		t.Fatalf("expected 100ms tick, got %s", cfg.Game.TickInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "snake.toml", `
[server]
addr = ":9000"

[game]
tick_interval = "50ms"
autoplay_threshold = 3

[logging]
format = "json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Game.TickInterval != 50*time.Millisecond || cfg.Game.AutoplayThreshold != 3 {
		t.Fatalf("unexpected game config %+v", cfg.Game)
	}
	if cfg.Game.Width != 30 {
		t.Fatalf("unset fields must keep defaults, width=%d", cfg.Game.Width)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("format = %q", cfg.Logging.Format)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "snake.yaml", `
game:
  width: 20
  turn_debounce: 80ms
network:
  send_queue: 8
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.Width != 20 || cfg.Game.Height != 30 {
		t.Fatalf("unexpected board %dx%d", cfg.Game.Width, cfg.Game.Height)
	}
	if cfg.Game.TurnDebounce != 80*time.Millisecond {
		t.Fatalf("turn_debounce = %s", cfg.Game.TurnDebounce)
	}
	if cfg.Network.SendQueue != 8 {
		t.Fatalf("send_queue = %d", cfg.Network.SendQueue)
	}
}

func TestValidateReportsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Game.Width = 0
	cfg.Network.SendQueue = 0
	cfg.Logging.Format = "xml"
	cfg.Game.FoodScore = -10
	cfg.Network.ReadLimit = 0
	cfg.Game.MaxRecordedMoves = 0
	cfg.Server.AdminAddr = cfg.Server.Addr
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"board", "send_queue", "xml", "food_score", "read_limit", "max_recorded_moves", "admin_addr"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidateRejectsNonPositiveFoodScore(t *testing.T) {
	for _, score := range []int{0, -10} {
		cfg := Default()
		cfg.Game.FoodScore = score
		if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "food_score") {
			t.Fatalf("food_score=%d: expected food_score error, got %v", score, err)
		}
	}
}
