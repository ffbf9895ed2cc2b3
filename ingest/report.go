// /home/krylon/go/src/github.com/blicero/arithma/ingest/report.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-24 14:40:03 krylon>

package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/model"
	"github.com/google/uuid"
)

// Failure describes a unit of work that could not be processed.
type Failure struct {
	Kind    model.FaultKind
	Source  string
	Message string
	Action  Action
}

// Report sums up an ingestion run.
type Report struct {
	RunID         uuid.UUID
	Started       time.Time
	Finished      time.Time
	Categories    int
	Subcategories int
	Pages         int
	Files         int
	Exercises     int
	Failures      []Failure
}

func newReport() *Report {
	return &Report{
		RunID:   uuid.New(),
		Started: time.Now(),
	}
} // func newReport() *Report

func (r *Report) finish() {
	r.Finished = time.Now()
}

func (r *Report) addFailure(err error, source string, act Action) {
	var f = Failure{
		Kind:    model.KindOf(err),
		Source:  source,
		Message: err.Error(),
		Action:  act,
	}

	r.Failures = append(r.Failures, f)
} // func (r *Report) addFailure(err error, source string, act Action)

// Skipped returns the number of units that were skipped.
func (r *Report) Skipped() int {
	var cnt int

	for _, f := range r.Failures {
		if f.Action == Skip {
			cnt++
		}
	}

	return cnt
} // func (r *Report) Skipped() int

// Duration returns how long the run took.
func (r *Report) Duration() time.Duration {
	if r.Finished.IsZero() {
		return time.Since(r.Started)
	}

	return r.Finished.Sub(r.Started)
} // func (r *Report) Duration() time.Duration

func (r *Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s, started %s, took %s\n",
		r.RunID,
		r.Started.Format(common.TimestampFormat),
		r.Duration().Round(time.Millisecond))
	fmt.Fprintf(&b, "Categories: %d, Subcategories: %d, Pages: %d, Files: %d, Exercises: %d\n",
		r.Categories,
		r.Subcategories,
		r.Pages,
		r.Files,
		r.Exercises)

	if len(r.Failures) > 0 {
		fmt.Fprintf(&b, "%d failures (%d skipped):\n",
			len(r.Failures),
			r.Skipped())
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "\t[%s/%s] %s\n",
				f.Kind,
				f.Action,
				f.Message)
		}
	}

	return b.String()
} // func (r *Report) String() string
