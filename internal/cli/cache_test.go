package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/daygrid/pkg/cache"
)

func writeCacheConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCachePathCommand(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		config string
		want   string
	}{
		{"file", "[cache]\nbackend = \"file\"\ndir = \"" + dir + "\"\n", dir},
		{"redis", "[cache]\nbackend = \"redis\"\nredis_url = \"redis://cache:6379/0\"\n", "redis redis://cache:6379/0"},
		{"none", "[cache]\nbackend = \"none\"\n", "disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "--config", writeCacheConfig(t, tt.config), "cache", "path")
			if err != nil {
				t.Fatalf("cache path error: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("cache path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	store, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"layout:a", "layout:b"} {
		if err := store.Set(ctx, key, []byte("{}"), 0); err != nil {
			t.Fatal(err)
		}
	}

	cfg := writeCacheConfig(t, "[cache]\ndir = \""+dir+"\"\n")
	if _, err := execute(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	if _, hit, _ := store.Get(ctx, "layout:a"); hit {
		t.Error("entry should be gone after cache clear")
	}
}

func TestLayoutUsesFileCache(t *testing.T) {
	input, _ := writeFixtures(t)
	dir := t.TempDir()
	cfg := writeCacheConfig(t, "[cache]\ndir = \""+dir+"\"\nttl = \"1h\"\n")
	output := filepath.Join(t.TempDir(), "out.json")

	for range 2 {
		if _, err := execute(t, "--config", cfg, "layout", input, "-o", output); err != nil {
			t.Fatalf("layout error: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read cache dir: %v", err)
	}
	if len(entries) == 0 {
		t.Error("layout should have written cache entries")
	}
}
