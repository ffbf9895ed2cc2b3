// /home/krylon/go/src/github.com/blicero/arithma/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 18:02:11 krylon>

// Package logdomain provides symbolic constants for the parts of the
// application that get their own Logger.
package logdomain

//go:generate stringer -type=ID

// ID identifies the part of the application a Logger belongs to.
type ID uint8

const (
	Database ID = iota
	Scraper
	Taxonomy
	Manifest
	Ingest
	Cache
	Web
)
