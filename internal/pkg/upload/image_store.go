package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const MaxImageBytes = 5 << 20

var (
	ErrInvalidImage  = errors.New("gambar tidak valid")
	ErrImageTooLarge = errors.New("ukuran gambar melebihi 5MB")
)

type StoredImage struct {
	URL      string // public path, e.g. /uploads/images/<id>.jpg
	MimeType string
	Base64   string // payload without the data URL prefix
}

type ImageStore interface {
	Save(encoded string) (*StoredImage, error)
	Remove(url string) error
}

// LocalImageStore writes images below dir and serves them under urlPrefix.
type LocalImageStore struct {
	dir       string
	urlPrefix string
}

func NewLocalImageStore(dir, urlPrefix string) *LocalImageStore {
	return &LocalImageStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Save accepts a data URL or raw base64, checks the bytes really are an image
// and stores them under a fresh name.
func (s *LocalImageStore) Save(encoded string) (*StoredImage, error) {
	payload := stripDataURL(strings.TrimSpace(encoded))
	if payload == "" {
		return nil, ErrInvalidImage
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+3 {
		return nil, ErrImageTooLarge
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(raw) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}

	mt := mimetype.Detect(raw)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImage, mt.String())
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + mt.Extension()
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	return &StoredImage{
		URL:      path.Join(s.urlPrefix, name),
		MimeType: mt.String(),
		Base64:   payload,
	}, nil
}

// Remove deletes a previously saved image by its public URL. Missing files are not an error.
func (s *LocalImageStore) Remove(url string) error {
	err := os.Remove(filepath.Join(s.dir, path.Base(url)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func stripDataURL(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.Index(s, ","); i >= 0 {
		return s[i+1:]
	}
	return ""
}
