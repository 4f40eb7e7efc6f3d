package floorplan

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jengzang/igs-backend-go/internal/models"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	l := NewLoader(time.Second)
	fp, err := l.Decode(bytes.NewReader(pngBytes(t, 40, 25)), "plan.png")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fp.Width != 40 || fp.Height != 25 || fp.Format != "png" || !fp.IsLoaded() {
		t.Fatalf("floorplan %+v", fp)
	}

	_, err = l.Decode(strings.NewReader("not an image"), "notes.png")
	if !errors.Is(err, ErrImageLoad) {
		t.Fatalf("expected ErrImageLoad, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floor.png")
	if err := os.WriteFile(path, pngBytes(t, 8, 6), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader(0)
	fp, err := l.LoadFile(path)
	if err != nil || fp.Source != "floor.png" || fp.Width != 8 {
		t.Fatalf("load file: %+v %v", fp, err)
	}
	if _, err := l.LoadFile(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, ErrImageLoad) {
		t.Fatalf("missing file: %v", err)
	}
}

func TestLoadURL(t *testing.T) {
	img := pngBytes(t, 12, 9)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/plan.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(img)
	}))
	defer srv.Close()

	l := NewLoader(time.Second)
	fp, err := l.LoadURL(context.Background(), srv.URL+"/plan.png")
	if err != nil || fp.Height != 9 {
		t.Fatalf("load url: %+v %v", fp, err)
	}

	if _, err := l.LoadURL(context.Background(), srv.URL+"/gone.png"); !errors.Is(err, ErrNetworkFetch) {
		t.Fatalf("expected ErrNetworkFetch, got %v", err)
	}
}

func TestIsImageFile(t *testing.T) {
	for name, want := range map[string]bool{
		"plan.PNG": true, "a.jpeg": true, "b.webp": true, "c.tif": true,
		"movement.csv": false, "video.mp4": false, "noext": false,
	} {
		if got := IsImageFile(name); got != want {
			t.Errorf("IsImageFile(%q) = %v", name, got)
		}
	}
}

func TestFitTo(t *testing.T) {
	fp := &models.Floorplan{Width: 800, Height: 400}
	fit := FitTo(fp, 400, 400)
	if fit.Scale != 0.5 || fit.Width != 400 || fit.Height != 200 {
		t.Fatalf("fit %+v", fit)
	}
	if empty := FitTo(nil, 100, 100); empty.Scale != 0 {
		t.Fatalf("unloaded plan %+v", empty)
	}
}
