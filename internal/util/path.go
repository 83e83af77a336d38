// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxStemLength = 80

var (
	unsafeStemChars = regexp.MustCompile(`[^a-z0-9._-]+`)
	repeatedDashes  = regexp.MustCompile(`-{2,}`)
)

// SanitizeFilename strips directory components from an uploaded name and
// rejects names that resolve to nothing usable.
func SanitizeFilename(filename string) (string, error) {
	safe := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if safe == "." || safe == ".." || safe == "" || safe == "/" {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}
	return safe, nil
}

// StorageName turns an uploaded file name into a lowercase ASCII name safe
// to place on disk and in URLs, keeping the extension. "Ärzte Live!.JPG"
// becomes "arzte-live.jpg".
func StorageName(filename string) (string, error) {
	base, err := SanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stem, _, _ = transform.String(t, stem)
	stem = strings.ToLower(unidecode.Unidecode(stem))
	stem = strings.ReplaceAll(stem, " ", "-")
	stem = unsafeStemChars.ReplaceAllString(stem, "-")
	stem = repeatedDashes.ReplaceAllString(stem, "-")
	stem = strings.Trim(stem, "-.")

	if len(stem) > maxStemLength {
		stem = strings.TrimRight(stem[:maxStemLength], "-.")
	}
	if stem == "" {
		stem = "photo"
	}

	ext = unsafeStemChars.ReplaceAllString(ext, "")
	return stem + ext, nil
}

// SafeJoinPath joins components onto basePath and fails if the result
// escapes basePath.
func SafeJoinPath(basePath string, components ...string) (string, error) {
	full := filepath.Join(append([]string{basePath}, components...)...)

	absBase, err := filepath.Abs(filepath.Clean(basePath))
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	absFull, err := filepath.Abs(full)
	if err != nil {
		return "", fmt.Errorf("invalid target path: %w", err)
	}

	if absFull != absBase && !strings.HasPrefix(absFull, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal detected: %q escapes %q", full, basePath)
	}
	return full, nil
}
