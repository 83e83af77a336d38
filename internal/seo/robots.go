// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
)

// DefaultDisallowPaths keeps crawlers away from the admin API and
// per-subscriber links.
var DefaultDisallowPaths = []string{
	"/api/admin",
	"/api/login",
	"/api/logout",
	"/api/setup",
	"/api/unsubscribe",
}

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	SiteURL       string   // Base URL for the sitemap reference
	DisallowAll   bool     // Block all crawlers (staging)
	ExtraRules    string   // Appended verbatim
	DisallowPaths []string // In addition to DefaultDisallowPaths
}

// RobotsBuilder builds robots.txt content.
type RobotsBuilder struct {
	config RobotsConfig
}

// NewRobotsBuilder creates a new robots.txt builder.
func NewRobotsBuilder(config RobotsConfig) *RobotsBuilder {
	return &RobotsBuilder{config: config}
}

// Build generates the robots.txt content.
func (b *RobotsBuilder) Build() string {
	var sb strings.Builder

	sb.WriteString("User-agent: *\n")

	if b.config.DisallowAll {
		sb.WriteString("Disallow: /\n")
	} else {
		for _, group := range [][]string{DefaultDisallowPaths, b.config.DisallowPaths} {
			for _, path := range group {
				sb.WriteString("Disallow: " + path + "\n")
			}
		}
		sb.WriteString("Allow: /\n")
	}

	if b.config.ExtraRules != "" {
		sb.WriteString("\n")
		sb.WriteString(b.config.ExtraRules)
		if !strings.HasSuffix(b.config.ExtraRules, "\n") {
			sb.WriteString("\n")
		}
	}

	if b.config.SiteURL != "" && !b.config.DisallowAll {
		sb.WriteString("\nSitemap: " + strings.TrimSuffix(b.config.SiteURL, "/") + "/sitemap.xml\n")
	}

	return sb.String()
}
