package storage

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalUploader writes files under Dir and returns URLs under BaseURL, which
// the HTTP server serves statically.
type LocalUploader struct {
	Dir     string
	BaseURL string
}

func NewLocalUploader(dir, baseURL string) *LocalUploader {
	return &LocalUploader{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (u *LocalUploader) UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", errors.New("invalid file name")
	}
	folder = filepath.Clean("/" + folder)[1:]

	dir := filepath.Join(u.Dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
		return "", err
	}

	return u.BaseURL + "/" + path.Join(filepath.ToSlash(folder), name), nil
}
