// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markup renders admin-authored Markdown into HTML that is safe to
// embed in public pages.
package markup

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()),
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// RenderMarkdown converts src to sanitized HTML. Raw HTML in src is
// dropped by goldmark and anything unsafe that survives is stripped.
func RenderMarkdown(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return policy.Sanitize(buf.String()), nil
}

// StripTags returns s as plain text with all markup removed. Entities
// are decoded so the result can be escaped again by its consumer.
func StripTags(s string) string {
	return html.UnescapeString(bluemonday.StrictPolicy().Sanitize(s))
}
