// /home/krylon/go/src/github.com/blicero/arithma/taxonomy/taxonomy.go
// -*- mode: go; coding: utf-8; -*-
// Created on 23. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-23 16:25:12 krylon>

// Package taxonomy derives Categories and Subcategories from the manifest
// and the URLs of the listing pages.
package taxonomy

import (
	"log"
	"net/url"
	"slices"
	"strings"

	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/logdomain"
	"github.com/blicero/arithma/manifest"
	"github.com/blicero/arithma/model"
	"github.com/blicero/arithma/scraper"
)

// UnknownSubcategory is used for listing pages whose URL does not tell us
// their Subcategory.
const UnknownSubcategory = "unknown_subcategory"

const subcategoryParam = "quoi"

// SubcategoryFromURL returns the Subcategory a listing page belongs to,
// which is the last segment of the path in its "quoi" query parameter.
// URLs that cannot be parsed, or lack the parameter, yield
// UnknownSubcategory.
func SubcategoryFromURL(raw string) string {
	var (
		idx   int
		query string
		vals  url.Values
	)

	if idx = strings.IndexByte(raw, '?'); idx < 0 {
		return UnknownSubcategory
	}

	query = raw[idx+1:]
	if idx = strings.IndexByte(query, '#'); idx >= 0 {
		query = query[:idx]
	}

	// ParseQuery keeps the pairs it could parse, even if it returns an error.
	vals, _ = url.ParseQuery(query)

	var q = strings.Trim(vals.Get(subcategoryParam), "/")

	if q == "" {
		return UnknownSubcategory
	}

	var segments = strings.Split(q, "/")

	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}

	return UnknownSubcategory
} // func SubcategoryFromURL(raw string) string

// Plan returns the Subcategories of each Category named in the manifest, in
// the order they are first seen. For every Category, a directory below
// baseDir is created. Entries sharing a Category are merged.
func Plan(m *manifest.Manifest, baseDir string) (map[string][]string, error) {
	var (
		err  error
		l    *log.Logger
		plan = make(map[string][]string, len(m.Entries))
		seen = make(map[string]map[string]bool, len(m.Entries))
	)

	if l, err = common.GetLogger(logdomain.Taxonomy); err != nil {
		return nil, err
	}

	for _, e := range m.Entries {
		if _, err = scraper.ProvisionDir(baseDir, e.Category, ""); err != nil {
			l.Printf("[ERROR] Cannot create directory for Category %s: %s\n",
				e.Category,
				err.Error())
			return nil, model.NewFault(model.FaultIO, e.Key, err)
		}

		if seen[e.Category] == nil {
			seen[e.Category] = make(map[string]bool)
			plan[e.Category] = make([]string, 0, len(e.URLs))
		}

		for _, u := range e.URLs {
			var sub = SubcategoryFromURL(u)

			if sub == UnknownSubcategory {
				l.Printf("[WARN] Cannot determine Subcategory of %s\n", u)
			}

			if !seen[e.Category][sub] {
				seen[e.Category][sub] = true
				plan[e.Category] = append(plan[e.Category], sub)
			}
		}
	}

	l.Printf("[DEBUG] Planned %d Categories from %d manifest entries\n",
		len(plan),
		len(m.Entries))

	return plan, nil
} // func Plan(m *manifest.Manifest, baseDir string) (map[string][]string, error)

// Categories returns the names of the Categories in a plan, sorted.
func Categories(plan map[string][]string) []string {
	var names = make([]string, 0, len(plan))

	for n := range plan {
		names = append(names, n)
	}

	slices.Sort(names)
	return names
} // func Categories(plan map[string][]string) []string
