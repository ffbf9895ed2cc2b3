// /home/krylon/go/src/github.com/blicero/arithma/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 20:03:17 krylon>

// Package query provides symbolic constants to identify database queries.
package query

//go:generate stringer -type=ID

// ID identifies a prepared database query.
type ID uint8

const (
	CategoryAdd ID = iota
	CategoryGetByName
	CategoryGetByID
	CategoryGetAll
	SubcategoryAdd
	SubcategoryGetByName
	SubcategoryGetByCategory
	ExerciseAdd
	ExerciseGetByID
	ExerciseGetByCategory
	ExerciseCount
	ExerciseCountByCategory
)

// AllQueries returns a slice of all queries.
func AllQueries() []ID {
	return []ID{
		CategoryAdd,
		CategoryGetByName,
		CategoryGetByID,
		CategoryGetAll,
		SubcategoryAdd,
		SubcategoryGetByName,
		SubcategoryGetByCategory,
		ExerciseAdd,
		ExerciseGetByID,
		ExerciseGetByCategory,
		ExerciseCount,
		ExerciseCountByCategory,
	}
} // func AllQueries() []ID
