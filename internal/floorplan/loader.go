package floorplan

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/jengzang/igs-backend-go/internal/models"
)

var (
	// ErrImageLoad is returned when a floor plan cannot be read or decoded
	ErrImageLoad = errors.New("failed to load floor plan image")
	// ErrNetworkFetch is returned when a remote resource cannot be retrieved
	ErrNetworkFetch = errors.New("failed to fetch remote resource")
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tiff": true, ".tif": true, ".webp": true,
}

// IsImageFile reports whether the file name has a supported image extension
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Loader reads floor plan images and reports their dimensions
type Loader struct {
	client *http.Client
}

// NewLoader creates a loader whose remote fetches time out after timeout
func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{client: &http.Client{Timeout: timeout}}
}

// Decode reads the image header from r. Only the config is decoded.
func (l *Loader) Decode(r io.Reader, source string) (*models.Floorplan, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageLoad, source, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %s has no pixels", ErrImageLoad, source)
	}
	return &models.Floorplan{
		Source: source,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// LoadFile decodes an image from the local filesystem
func (l *Loader) LoadFile(path string) (*models.Floorplan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	defer f.Close()
	return l.Decode(f, filepath.Base(path))
}

// LoadURL downloads and decodes an image
func (l *Loader) LoadURL(ctx context.Context, url string) (*models.Floorplan, error) {
	body, err := l.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return l.Decode(body, url)
}

// Fetch opens a remote resource. The caller closes the body.
func (l *Loader) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkFetch, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %s", ErrNetworkFetch, url, resp.Status)
	}
	return resp.Body, nil
}
