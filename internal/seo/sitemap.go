// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds robots.txt and sitemap.xml for the public site.
package seo

import (
	"encoding/xml"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the marketing pages.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// Page is one public page of the site.
type Page struct {
	Path       string
	ChangeFreq ChangeFreq
	Priority   string
	// Source names the content the page lists ("events", "videos",
	// "photos"); its newest update becomes the page's lastmod.
	Source string
}

// MarketingPages are the pages of the public site.
var MarketingPages = []Page{
	{Path: "/", ChangeFreq: ChangeFreqWeekly, Priority: "1.0", Source: "events"},
	{Path: "/about", ChangeFreq: ChangeFreqMonthly, Priority: "0.6"},
	{Path: "/shows", ChangeFreq: ChangeFreqDaily, Priority: "0.9", Source: "events"},
	{Path: "/acoustic", ChangeFreq: ChangeFreqWeekly, Priority: "0.7", Source: "videos"},
	{Path: "/gallery", ChangeFreq: ChangeFreqWeekly, Priority: "0.7", Source: "photos"},
	{Path: "/contact", ChangeFreq: ChangeFreqMonthly, Priority: "0.5"},
}

// SitemapBuilder builds sitemap XML.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddPage adds a page. A zero lastMod omits the element.
func (b *SitemapBuilder) AddPage(page Page, lastMod time.Time) {
	loc := b.siteURL + page.Path
	if page.Path == "/" {
		loc = b.siteURL + "/"
	}
	url := SitemapURL{
		Loc:        loc,
		ChangeFreq: page.ChangeFreq,
		Priority:   page.Priority,
	}
	if !lastMod.IsZero() {
		url.LastMod = lastMod.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap builds the sitemap for pages. lastMod maps a page's
// Source to the newest update of that content.
func GenerateSitemap(siteURL string, pages []Page, lastMod map[string]time.Time) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL)
	for _, p := range pages {
		builder.AddPage(p, lastMod[p.Source])
	}
	return builder.Build()
}
