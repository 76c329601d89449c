package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"
)

// Load reads and parses a settings file from the local filesystem.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}

// Fetch retrieves a settings document from src and parses it. src may be a
// local path or any go-getter address (http, s3, gcs, git).
func Fetch(ctx context.Context, src string) (*Settings, error) {
	if _, err := os.Stat(src); err == nil {
		return Load(src)
	}

	dir, err := os.MkdirTemp("", "hexterrain-settings-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working dir: %w", err)
	}

	dst := filepath.Join(dir, "settings")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("fetch settings %s: %w", src, err)
	}
	return Load(dst)
}
