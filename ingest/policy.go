// /home/krylon/go/src/github.com/blicero/arithma/ingest/policy.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-24 14:12:40 krylon>

package ingest

import "github.com/blicero/arithma/model"

// Action is what the Ingestor does when a unit of work fails.
type Action uint8

const (
	// Skip records the failure in the Report and goes on with the next unit.
	Skip Action = iota
	// Abort ends the run and returns the error.
	Abort
)

func (a Action) String() string {
	switch a {
	case Skip:
		return "Skip"
	case Abort:
		return "Abort"
	default:
		return "Action(?)"
	}
} // func (a Action) String() string

// Policy maps each kind of Fault to the Action taken in response.
// Kinds that are not listed abort the run.
type Policy map[model.FaultKind]Action

// Decide returns the Action for the given kind of Fault.
func (p Policy) Decide(k model.FaultKind) Action {
	if a, ok := p[k]; ok {
		return a
	}

	return Abort
} // func (p Policy) Decide(k model.FaultKind) Action

// DefaultPolicy skips pages and files that cannot be fetched, read, or
// understood, but gives up when the database fails.
var DefaultPolicy = Policy{
	model.FaultFetch:     Skip,
	model.FaultParse:     Skip,
	model.FaultSchema:    Skip,
	model.FaultIO:        Skip,
	model.FaultDuplicate: Abort,
	model.FaultStorage:   Abort,
}

// StrictPolicy gives up on the first error.
var StrictPolicy = Policy{
	model.FaultFetch:     Abort,
	model.FaultParse:     Abort,
	model.FaultSchema:    Abort,
	model.FaultIO:        Abort,
	model.FaultDuplicate: Abort,
	model.FaultStorage:   Abort,
}
