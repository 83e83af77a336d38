// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging normalizes uploaded gallery photos and renders their thumbnails.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/bandsite/internal/util"
)

// Gallery layout under the uploads directory.
const (
	PhotosDir = "photos"
	ThumbsDir = "thumbs"
)

// Thumbnail bounds and encoder quality.
const (
	ThumbWidth   = 600
	ThumbHeight  = 600
	ThumbQuality = 82
	PhotoQuality = 92
)

// ErrUnsupportedFormat is returned for data that is not a JPEG, PNG, GIF or WebP image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Result describes a stored photo and its thumbnail.
type Result struct {
	Filename      string // final file name, extension matches the encoded format
	Width         int
	Height        int
	FilePath      string // absolute path of the stored photo
	ThumbnailPath string // absolute path of the thumbnail
}

// Processor writes photos beneath an uploads directory.
type Processor struct {
	uploadDir string
}

// NewProcessor creates a processor rooted at uploadDir.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{uploadDir: uploadDir}
}

// Dir returns the uploads directory the processor writes beneath.
func (p *Processor) Dir() string {
	return p.uploadDir
}

// Process decodes data, applies the EXIF orientation, stores the photo as
// photos/<filename> and a bounded thumbnail as photos/thumbs/<filename>.
// The extension of filename is rewritten when the stored format differs
// (WebP is stored as JPEG).
func (p *Processor) Process(data []byte, filename string) (*Result, error) {
	format := DetectFormat(data)
	if format == "" {
		return nil, ErrUnsupportedFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	img = applyOrientation(img, readExifOrientation(data))

	outFormat := format
	if outFormat == "webp" {
		outFormat = "jpeg"
	}
	filename = withExtension(filename, outFormat)

	encoded, err := encodeImage(img, outFormat, PhotoQuality)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	photoPath, err := p.save(PhotosDir, filename, encoded)
	if err != nil {
		return nil, fmt.Errorf("saving photo: %w", err)
	}

	thumb := imaging.Fit(img, ThumbWidth, ThumbHeight, imaging.Lanczos)
	encodedThumb, err := encodeImage(thumb, outFormat, ThumbQuality)
	if err != nil {
		_ = os.Remove(photoPath)
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	thumbPath, err := p.save(filepath.Join(PhotosDir, ThumbsDir), filename, encodedThumb)
	if err != nil {
		_ = os.Remove(photoPath)
		return nil, fmt.Errorf("saving thumbnail: %w", err)
	}

	b := img.Bounds()
	return &Result{
		Filename:      filename,
		Width:         b.Dx(),
		Height:        b.Dy(),
		FilePath:      photoPath,
		ThumbnailPath: thumbPath,
	}, nil
}

// DetectFormat returns "jpeg", "png", "gif" or "webp" for supported image
// data and "" otherwise.
func DetectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// TIFF is refused outright (CVE-2023-36308 in disintegration/imaging).
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

func withExtension(filename, format string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	switch format {
	case "jpeg":
		if ext == ".jpg" || ext == ".jpeg" {
			return stem + ext
		}
		return stem + ".jpg"
	default:
		return stem + "." + format
	}
}

// readExifOrientation returns the EXIF orientation tag, or 1 when absent.
func readExifOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation undoes the camera rotation recorded in EXIF orientation
// values 2 through 8.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// save writes data to uploadDir/subDir/filename, refusing names that
// would land outside the uploads directory.
func (p *Processor) save(subDir, filename string, data []byte) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == ".." || name == "" || name != filename {
		return "", fmt.Errorf("invalid filename %q", filename)
	}

	path, err := util.SafeJoinPath(p.uploadDir, subDir, name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}

	// O_EXCL keeps two uploads with the same generated name from clobbering each other.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}
