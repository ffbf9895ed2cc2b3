// /home/krylon/go/src/github.com/blicero/arithma/scraper/dirs.go
// -*- mode: go; coding: utf-8; -*-
// Created on 21. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-21 17:14:02 krylon>

package scraper

import (
	"os"
	"path/filepath"
)

// ProvisionDir makes sure the directory base/category/subcategory exists
// and returns its path. An empty subcategory yields the Category's
// directory.
func ProvisionDir(base, category, subcategory string) (string, error) {
	var dir = filepath.Join(base, category, subcategory)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	return dir, nil
} // func ProvisionDir(base, category, subcategory string) (string, error)
