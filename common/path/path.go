// /home/krylon/go/src/github.com/blicero/arithma/common/path/path.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 18:04:40 krylon>

// Package path provides symbolic constants for the files and directories
// the application uses.
package path

//go:generate stringer -type=ID

// ID identifies a path relative to the application's base directory.
type ID uint8

const (
	Base ID = iota
	Database
	Exercises
	Train
	Manifest
	PageCache
	Log
	Env
)
