// /home/krylon/go/src/github.com/blicero/arithma/model/model.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 19:12:45 krylon>

// Package model provides the data types used across the application.
package model

import "fmt"

// Language tags used for Exercises.
const (
	LangFrench  = "french"
	LangEnglish = "en"
)

// Category is the top level of the taxonomy, e.g. "Algebra".
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (c *Category) String() string {
	return fmt.Sprintf(`{ ID: %d, Name: %q }`, c.ID, c.Name)
}

// Subcategory is a child of a Category. Its name is only unique within
// its parent.
type Subcategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
}

func (s *Subcategory) String() string {
	return fmt.Sprintf(`{ ID: %d, Name: %q, CategoryID: %d }`,
		s.ID,
		s.Name,
		s.CategoryID)
}

// Exercise is a single problem, optionally with a hint, and its solution.
// Level is empty and SubcategoryID is 0 when they are unknown, they are
// stored as NULL.
type Exercise struct {
	ID            int64  `json:"id"`
	Script        string `json:"script"`
	Hint          string `json:"hint"`
	Solution      string `json:"solution"`
	Lang          string `json:"lang"`
	Level         string `json:"level,omitempty"`
	CategoryID    int64  `json:"category_id"`
	SubcategoryID int64  `json:"subcategory_id,omitempty"`
}

// Plaintext returns the text of the Exercise in one piece.
func (e *Exercise) Plaintext() string {
	if e.Hint == "" {
		return e.Script + "\n\n" + e.Solution
	}
	return e.Script + "\n\n" + e.Hint + "\n\n" + e.Solution
} // func (e *Exercise) Plaintext() string

// ScrapeResult is what the Scraper returns for a single listing page.
// Categories and Subcategories always hold (at most) one name each, since
// a page belongs to exactly one place in the taxonomy.
type ScrapeResult struct {
	Exercises     []Exercise `json:"exercises"`
	Categories    []string   `json:"categories"`
	Subcategories []string   `json:"subcategories"`
}
