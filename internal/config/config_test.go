package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}

	def := Default()
	if cfg.Game != def.Game {
		t.Errorf("embedded game section = %+v, want %+v", cfg.Game, def.Game)
	}
	if cfg.Share.Template != def.Share.Template || cfg.Share.URL != def.Share.URL {
		t.Errorf("embedded share section = %+v, want %+v", cfg.Share, def.Share)
	}
	if strings.Join(cfg.Share.Targets, ",") != strings.Join(def.Share.Targets, ",") {
		t.Errorf("embedded share targets = %v, want %v", cfg.Share.Targets, def.Share.Targets)
	}
	if cfg.Storage != def.Storage || cfg.Log != def.Log {
		t.Errorf("embedded storage/log = %+v %+v", cfg.Storage, cfg.Log)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("game:\n  win_target: 4096\nshare:\n  targets: [file]\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
	if cfg.Game.WinTarget != 4096 {
		t.Errorf("WinTarget = %d, want 4096", cfg.Game.WinTarget)
	}
	if cfg.Game.SpawnFourProbability != 0.1 {
		t.Errorf("omitted key should keep default, got %v", cfg.Game.SpawnFourProbability)
	}
	if len(cfg.Share.Targets) != 1 || cfg.Share.Targets[0] != "file" {
		t.Errorf("Targets = %v, want [file]", cfg.Share.Targets)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() of a missing custom path should fail")
	}
}

func TestLoadCustomPathMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("game: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Load(path); err == nil {
		t.Fatal("Load() of malformed YAML should fail")
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, source, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != SourceEmbedded {
		t.Errorf("source = %q, want %q", source, SourceEmbedded)
	}
	if cfg.Game.WinTarget != 2048 {
		t.Errorf("WinTarget = %d, want 2048", cfg.Game.WinTarget)
	}
}

func TestLoadPrefersUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, ".term2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("game:\n  scoring: merge\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != filepath.Join(dir, "config.yaml") {
		t.Errorf("source = %q", source)
	}
	if cfg.Game.Scoring != "merge" {
		t.Errorf("Scoring = %q, want merge", cfg.Game.Scoring)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative probability", func(c *Config) { c.Game.SpawnFourProbability = -0.1 }},
		{"probability above one", func(c *Config) { c.Game.SpawnFourProbability = 1.5 }},
		{"target not power of two", func(c *Config) { c.Game.WinTarget = 1000 }},
		{"target too small", func(c *Config) { c.Game.WinTarget = 2 }},
		{"too many initial tiles", func(c *Config) { c.Game.InitialTiles = 17 }},
		{"unknown scoring", func(c *Config) { c.Game.Scoring = "delta" }},
		{"unknown share target", func(c *Config) { c.Share.Targets = []string{"twitter"} }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v should wrap ErrInvalid", err)
			}
		})
	}
}

func TestShareMessage(t *testing.T) {
	cfg := Default()
	cfg.Share.URL = "https://example.com"

	got := cfg.ShareMessage(1234)
	want := "I scored 1234 in 2048! https://example.com"
	if got != want {
		t.Errorf("ShareMessage() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/.term2048/scores.db")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".term2048", "scores.db"); got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}

	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed: %q", got)
	}
}

func TestLoadNormalizesEmptyScoring(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("game:\n  scoring: \"\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.Scoring != "board_sum" {
		t.Errorf("Scoring = %q, want board_sum so results share one partition", cfg.Game.Scoring)
	}
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.Game.Scoring = ""

	got, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if got.Game.Scoring != "board_sum" {
		t.Errorf("Scoring = %q, want board_sum", got.Game.Scoring)
	}

	cfg.Share.Targets = []string{"twitter"}
	if _, err := cfg.Resolve(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Resolve() error = %v, want ErrInvalid", err)
	}
}
