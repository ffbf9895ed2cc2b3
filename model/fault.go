// /home/krylon/go/src/github.com/blicero/arithma/model/fault.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 19:40:02 krylon>

package model

import (
	"errors"
	"fmt"
)

//go:generate stringer -type=FaultKind -trimprefix=Fault

// FaultKind classifies the errors that can occur at the boundaries of the
// ingestion pipeline.
type FaultKind uint8

const (
	FaultNone FaultKind = iota
	FaultFetch
	FaultParse
	FaultSchema
	FaultDuplicate
	FaultIO
	FaultStorage
)

// Fault is an error that occurred while processing a single unit of work,
// a listing page or an input file, identified by Source.
type Fault struct {
	Kind   FaultKind
	Source string
	Err    error
}

// NewFault wraps err into a Fault.
func NewFault(kind FaultKind, source string, err error) *Fault {
	return &Fault{
		Kind:   kind,
		Source: source,
		Err:    err,
	}
} // func NewFault(kind FaultKind, source string, err error) *Fault

func (f *Fault) Error() string {
	return fmt.Sprintf("%s error for %s: %s",
		f.Kind,
		f.Source,
		f.Err)
} // func (f *Fault) Error() string

func (f *Fault) Unwrap() error {
	return f.Err
}

// KindOf returns the FaultKind of err. Errors that are not Faults are
// storage errors, nil is FaultNone.
func KindOf(err error) FaultKind {
	var f *Fault

	if err == nil {
		return FaultNone
	} else if errors.As(err, &f) {
		return f.Kind
	}

	return FaultStorage
} // func KindOf(err error) FaultKind
