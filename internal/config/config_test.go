package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	t.Setenv("STRACK_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("data dir = %q, want %q", cfg.DataDir, DefaultDataDir)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("listen addr = %q, want %q", cfg.ListenAddr, DefaultListenAddr)
	}
	if cfg.GitHub.StoryLabel != DefaultStoryLabel {
		t.Errorf("story label = %q, want %q", cfg.GitHub.StoryLabel, DefaultStoryLabel)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strack.toml")
	content := `
data_dir = "/var/lib/strack"
listen_addr = ":9090"

[github]
owner = "octocat"
repo = "demo"
story_label = "story"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STRACK_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "/var/lib/strack" {
		t.Errorf("data dir = %q", cfg.DataDir)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.GitHub.Owner != "octocat" || cfg.GitHub.Repo != "demo" {
		t.Errorf("github = %+v", cfg.GitHub)
	}
	if cfg.GitHub.StoryLabel != "story" {
		t.Errorf("story label = %q", cfg.GitHub.StoryLabel)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strack.toml")
	if err := os.WriteFile(path, []byte(`data_dir = "from-file"`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STRACK_CONFIG", path)
	t.Setenv("STRACK_DATA_DIR", "from-env")
	t.Setenv("STRACK_GITHUB_TOKEN", "tok-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "from-env" {
		t.Errorf("data dir = %q, env must win", cfg.DataDir)
	}
	if cfg.GitHub.Token != "tok-123" {
		t.Errorf("token = %q", cfg.GitHub.Token)
	}
}

func TestBadTOMLIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strack.toml")
	if err := os.WriteFile(path, []byte(`data_dir = [`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STRACK_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
