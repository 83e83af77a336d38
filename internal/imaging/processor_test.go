// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage creates a simple gradient with the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	img := createTestImage(4, 4)
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", encodePNG(t, img), "png"},
		{"jpeg", encodeJPEG(t, img), "jpeg"},
		{"gif", []byte("GIF89a\x01\x00\x01\x00"), "gif"},
		{"tiff", []byte("II*\x00\x08\x00\x00\x00"), ""},
		{"text", []byte("hello world"), ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.data); got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcess_WritesPhotoAndThumbnail(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	res, err := p.Process(encodePNG(t, createTestImage(1200, 800)), "1700000000000-stage.png")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if res.Filename != "1700000000000-stage.png" {
		t.Errorf("Filename = %q", res.Filename)
	}
	if res.Width != 1200 || res.Height != 800 {
		t.Errorf("dimensions = %dx%d, want 1200x800", res.Width, res.Height)
	}

	wantPhoto := filepath.Join(dir, PhotosDir, res.Filename)
	if abs, _ := filepath.Abs(wantPhoto); res.FilePath != abs {
		t.Errorf("FilePath = %q, want %q", res.FilePath, abs)
	}
	if _, err := os.Stat(res.FilePath); err != nil {
		t.Errorf("photo not written: %v", err)
	}

	f, err := os.Open(res.ThumbnailPath)
	if err != nil {
		t.Fatalf("thumbnail not written: %v", err)
	}
	defer func() { _ = f.Close() }()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != ThumbWidth || cfg.Height != 400 {
		t.Errorf("thumbnail = %dx%d, want %dx400", cfg.Width, cfg.Height, ThumbWidth)
	}
}

func TestProcess_FixesExtension(t *testing.T) {
	p := NewProcessor(t.TempDir())

	res, err := p.Process(encodeJPEG(t, createTestImage(10, 10)), "band.png")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Filename != "band.jpg" {
		t.Errorf("Filename = %q, want band.jpg", res.Filename)
	}
}

func TestProcess_RejectsUnsupported(t *testing.T) {
	p := NewProcessor(t.TempDir())

	_, err := p.Process([]byte("not an image at all"), "notes.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestProcess_RefusesOverwrite(t *testing.T) {
	p := NewProcessor(t.TempDir())
	data := encodePNG(t, createTestImage(10, 10))

	if _, err := p.Process(data, "same.png"); err != nil {
		t.Fatalf("first Process: %v", err)
	}
	if _, err := p.Process(data, "same.png"); err == nil {
		t.Fatal("expected second write of the same name to fail")
	}
}

func TestProcess_RejectsTraversal(t *testing.T) {
	p := NewProcessor(t.TempDir())

	if _, err := p.Process(encodePNG(t, createTestImage(4, 4)), "../evil.png"); err == nil {
		t.Fatal("expected traversal to be rejected")
	}
}

func TestApplyOrientation(t *testing.T) {
	img := createTestImage(20, 10)

	tests := []struct {
		orientation int
		wantW       int
		wantH       int
	}{
		{1, 20, 10},
		{2, 20, 10},
		{3, 20, 10},
		{4, 20, 10},
		{5, 10, 20},
		{6, 10, 20},
		{7, 10, 20},
		{8, 10, 20},
	}

	for _, tt := range tests {
		b := applyOrientation(img, tt.orientation).Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("orientation %d: got %dx%d, want %dx%d", tt.orientation, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestWithExtension(t *testing.T) {
	tests := []struct{ name, format, want string }{
		{"a.JPEG", "jpeg", "a.jpeg"},
		{"a.webp", "jpeg", "a.jpg"},
		{"a.jpg", "png", "a.png"},
		{"a", "gif", "a.gif"},
	}
	for _, tt := range tests {
		if got := withExtension(tt.name, tt.format); got != tt.want {
			t.Errorf("withExtension(%q, %q) = %q, want %q", tt.name, tt.format, got, tt.want)
		}
	}
}
