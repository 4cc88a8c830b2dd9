package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestInspectAcceptsPNG(t *testing.T) {
	data := pngBytes(t, 4, 3)
	img, err := NewInspector(0, 0).Inspect(Upload{
		Reader:      bytes.NewReader(data),
		Size:        int64(len(data)),
		FileName:    "pic.png",
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if img.ContentType != "image/png" || img.Extension != ".png" {
		t.Fatalf("unexpected type %s / %s", img.ContentType, img.Extension)
	}
	if img.Width != 4 || img.Height != 3 {
		t.Fatalf("expected 4x3, got %dx%d", img.Width, img.Height)
	}
}

func TestInspectInfersTypeWhenUndeclared(t *testing.T) {
	data := pngBytes(t, 2, 2)
	img, err := NewInspector(0, 0).Inspect(Upload{Reader: bytes.NewReader(data), ContentType: "application/octet-stream"})
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if img.ContentType != "image/png" {
		t.Fatalf("expected image/png, got %s", img.ContentType)
	}
}

func TestInspectRejects(t *testing.T) {
	data := pngBytes(t, 8, 8)

	t.Run("not an image", func(t *testing.T) {
		_, err := NewInspector(0, 0).Inspect(Upload{Reader: strings.NewReader("<script>alert(1)</script>"), FileName: "x.png"})
		if !errors.Is(err, ErrUnsupportedImage) {
			t.Fatalf("expected ErrUnsupportedImage, got %v", err)
		}
	})

	t.Run("declared type mismatch", func(t *testing.T) {
		_, err := NewInspector(0, 0).Inspect(Upload{Reader: bytes.NewReader(data), ContentType: "image/jpeg"})
		if !errors.Is(err, ErrUnsupportedImage) {
			t.Fatalf("expected ErrUnsupportedImage, got %v", err)
		}
	})

	t.Run("too many bytes", func(t *testing.T) {
		_, err := NewInspector(int64(len(data)-1), 0).Inspect(Upload{Reader: bytes.NewReader(data)})
		if !errors.Is(err, ErrTooLarge) {
			t.Fatalf("expected ErrTooLarge, got %v", err)
		}
	})

	t.Run("declared size too large", func(t *testing.T) {
		_, err := NewInspector(10, 0).Inspect(Upload{Reader: bytes.NewReader(data), Size: 11})
		if !errors.Is(err, ErrTooLarge) {
			t.Fatalf("expected ErrTooLarge, got %v", err)
		}
	})

	t.Run("dimensions", func(t *testing.T) {
		_, err := NewInspector(0, 4).Inspect(Upload{Reader: bytes.NewReader(data)})
		if !errors.Is(err, ErrDimensions) {
			t.Fatalf("expected ErrDimensions, got %v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewInspector(0, 0).Inspect(Upload{Reader: bytes.NewReader(nil)})
		if !errors.Is(err, ErrEmptyImage) {
			t.Fatalf("expected ErrEmptyImage, got %v", err)
		}
	})
}

func TestNormalizeContentType(t *testing.T) {
	cases := map[[2]string]string{
		{"image/JPG", ""}:                      "image/jpeg",
		{"", "photo.jpeg"}:                     "image/jpeg",
		{"image/png; charset=binary", ""}:      "image/png",
		{"application/octet-stream", "a.webp"}: "image/webp",
		{"", ""}:                               "",
	}
	for in, want := range cases {
		if got := normalizeContentType(in[0], in[1]); got != want {
			t.Fatalf("normalizeContentType(%q, %q) = %q, want %q", in[0], in[1], got, want)
		}
	}
}
