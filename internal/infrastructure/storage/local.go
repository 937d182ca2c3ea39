package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"jobboard/internal/config"

	"github.com/google/uuid"
)

// LocalStore copies uploads into a served directory and builds URLs from the
// configured public base.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(cfg config.StorageConfig) (*LocalStore, error) {
	dir := strings.TrimSpace(cfg.UploadDir)
	if dir == "" {
		return nil, fmt.Errorf("empty upload dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/"),
	}, nil
}

func (s *LocalStore) Transfer(ctx context.Context, localPath string) (string, error) {
	defer func() {
		_ = os.Remove(localPath)
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.New().String() + filepath.Ext(localPath)
	dstPath := filepath.Join(s.dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath)
		return "", err
	}

	return s.baseURL + "/" + name, nil
}
