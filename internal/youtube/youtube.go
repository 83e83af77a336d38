// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package youtube extracts video identifiers from the YouTube URL shapes
// admins paste into the video form.
package youtube

import (
	"errors"
	"strings"
)

// ErrUnrecognizedReference is returned when a URL matches none of the
// supported shapes or yields an empty identifier.
var ErrUnrecognizedReference = errors.New("could not extract video ID from URL")

const (
	watchMarker  = "watch?v="
	shortsMarker = "shorts/"
	shortMarker  = "youtu.be/"
)

// ExtractID returns the video identifier embedded in rawURL. Recognized
// shapes, checked in order:
//
//	https://www.youtube.com/watch?v=ID[&...]
//	https://www.youtube.com/shorts/ID[?...]
//	https://youtu.be/ID[?...]
//
// The identifier is not validated against YouTube.
func ExtractID(rawURL string) (string, error) {
	var id string
	switch {
	case strings.Contains(rawURL, watchMarker):
		_, after, _ := strings.Cut(rawURL, "v=")
		id = cutAny(after, "&")
	case strings.Contains(rawURL, shortsMarker):
		_, after, _ := strings.Cut(rawURL, shortsMarker)
		id = cutAny(after, "?&")
	case strings.Contains(rawURL, shortMarker):
		_, after, _ := strings.Cut(rawURL, shortMarker)
		id = cutAny(after, "?&")
	default:
		return "", ErrUnrecognizedReference
	}

	if id == "" {
		return "", ErrUnrecognizedReference
	}
	return id, nil
}

// EmbedURL returns the iframe source for id.
func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

// ThumbnailURL returns the high quality still for id.
func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}

func cutAny(s, seps string) string {
	if i := strings.IndexAny(s, seps); i >= 0 {
		return s[:i]
	}
	return s
}
