// /home/krylon/go/src/github.com/blicero/arithma/ingest/ingest.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-24 19:31:55 krylon>

// Package ingest fills the databank, either from the listing pages named in
// the manifest, or from a tree of JSON files.
package ingest

import (
	"context"
	"errors"
	"log"

	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/database"
	"github.com/blicero/arithma/logdomain"
	"github.com/blicero/arithma/manifest"
	"github.com/blicero/arithma/model"
	"github.com/blicero/arithma/scraper"
	"github.com/blicero/arithma/taxonomy"
)

// Ingestor moves Exercises into the database.
type Ingestor struct {
	log          *log.Logger
	db           *database.Database
	scr          *scraper.Scraper
	exercisesDir string
	policy       Policy
}

// New creates an Ingestor. The Scraper is only needed for IngestWeb and may
// be nil otherwise. Scraped Exercises are also saved below exercisesDir.
func New(db *database.Database, scr *scraper.Scraper, exercisesDir string) (*Ingestor, error) {
	var (
		err error
		ing = &Ingestor{
			db:           db,
			scr:          scr,
			exercisesDir: exercisesDir,
			policy:       DefaultPolicy,
		}
	)

	if ing.log, err = common.GetLogger(logdomain.Ingest); err != nil {
		return nil, err
	}

	return ing, nil
} // func New(db *database.Database, scr *scraper.Scraper, exercisesDir string) (*Ingestor, error)

// SetPolicy sets the Policy that decides which errors end a run.
func (ing *Ingestor) SetPolicy(p Policy) {
	ing.policy = p
} // func (ing *Ingestor) SetPolicy(p Policy)

// storageFault wraps err into a FaultStorage, unless it is a Fault already.
func storageFault(source string, err error) error {
	var f *model.Fault

	if errors.As(err, &f) {
		return err
	}

	return model.NewFault(model.FaultStorage, source, err)
} // func storageFault(source string, err error) error

// handle records a failed unit in the Report and returns err if the Policy
// says to abort, nil if the run should go on.
func (ing *Ingestor) handle(rep *Report, source string, err error) error {
	var act = ing.policy.Decide(model.KindOf(err))

	rep.addFailure(err, source, act)

	if act == Abort {
		ing.log.Printf("[CRITICAL] Aborting run %s at %s: %s\n",
			rep.RunID,
			source,
			err.Error())
		return err
	}

	ing.log.Printf("[ERROR] Skipping %s: %s\n",
		source,
		err.Error())
	return nil
} // func (ing *Ingestor) handle(rep *Report, source string, err error) error

// IngestWeb scrapes the listing pages named in the manifest, in order, and
// stores their Exercises. Each page is stored in its own transaction, pages
// that were stored before the run is aborted stay in the database.
func (ing *Ingestor) IngestWeb(ctx context.Context, m *manifest.Manifest) (*Report, error) {
	var (
		err     error
		rep     = newReport()
		catSeen = make(map[int64]bool)
		subSeen = make(map[int64]bool)
	)

	defer rep.finish()

	if ing.scr == nil {
		return rep, errors.New("Ingestor has no Scraper")
	}

	ing.log.Printf("[INFO] Run %s: ingest %d pages in %d entries\n",
		rep.RunID,
		m.Count(),
		len(m.Entries))

	for _, e := range m.Entries {
		var catID int64

		if err = ctx.Err(); err != nil {
			ing.log.Printf("[INFO] Run %s was cancelled\n", rep.RunID)
			return rep, err
		} else if catID, err = ing.db.CategoryGetOrCreate(e.Category); err != nil {
			if err = ing.handle(rep, e.Key, storageFault(e.Key, err)); err != nil {
				return rep, err
			}
			continue
		} else if !catSeen[catID] {
			catSeen[catID] = true
			rep.Categories++
		}

		for _, u := range e.URLs {
			var (
				subID int64
				res   *model.ScrapeResult
				sub   = taxonomy.SubcategoryFromURL(u)
			)

			if err = ctx.Err(); err != nil {
				ing.log.Printf("[INFO] Run %s was cancelled\n", rep.RunID)
				return rep, err
			} else if subID, err = ing.db.SubcategoryGetOrCreate(sub, catID); err != nil {
				if err = ing.handle(rep, u, storageFault(u, err)); err != nil {
					return rep, err
				}
				continue
			} else if !subSeen[subID] {
				subSeen[subID] = true
				rep.Subcategories++
			}

			if res, err = ing.scr.Scrape(ctx, u, e.Category, sub, ing.exercisesDir, true); err != nil {
				if ctx.Err() != nil {
					return rep, ctx.Err()
				} else if err = ing.handle(rep, u, err); err != nil {
					return rep, err
				}
				continue
			} else if err = ing.storePage(u, res.Exercises, catID, subID); err != nil {
				if err = ing.handle(rep, u, err); err != nil {
					return rep, err
				}
				continue
			}

			rep.Pages++
			rep.Exercises += len(res.Exercises)
		}
	}

	ing.log.Printf("[INFO] Run %s finished: %d pages, %d exercises, %d skipped\n",
		rep.RunID,
		rep.Pages,
		rep.Exercises,
		rep.Skipped())

	return rep, nil
} // func (ing *Ingestor) IngestWeb(ctx context.Context, m *manifest.Manifest) (*Report, error)

// storePage adds the Exercises of one listing page in a single transaction.
func (ing *Ingestor) storePage(source string, list []model.Exercise, catID, subID int64) (err error) {
	var status bool

	if len(list) == 0 {
		return nil
	} else if err = ing.db.Begin(); err != nil {
		ing.log.Printf("[ERROR] Cannot start transaction for %s: %s\n",
			source,
			err.Error())
		return storageFault(source, err)
	}

	defer func() {
		var err2 error
		if status {
			if err2 = ing.db.Commit(); err2 != nil {
				ing.log.Printf("[ERROR] Cannot commit Exercises from %s: %s\n",
					source,
					err2.Error())
				err = storageFault(source, err2)
			}
		} else if err2 = ing.db.Rollback(); err2 != nil {
			ing.log.Printf("[ERROR] Cannot roll back transaction for %s: %s\n",
				source,
				err2.Error())
		}
	}()

	for i := range list {
		var e = &list[i]

		e.CategoryID = catID
		e.SubcategoryID = subID

		ing.checkLanguage(e, source)

		if err = ing.db.ExerciseAdd(e); err != nil {
			return storageFault(source, err)
		}
	}

	status = true
	return nil
} // func (ing *Ingestor) storePage(...) error

// Prepare creates the Categories and Subcategories of a plan, so the
// taxonomy is in place before any Exercise is stored. This happens in a
// single transaction, either all of them are created or none.
func (ing *Ingestor) Prepare(plan map[string][]string) (rep *Report, err error) {
	var status bool

	rep = newReport()
	defer rep.finish()

	if err = ing.db.Begin(); err != nil {
		ing.log.Printf("[ERROR] Cannot start transaction: %s\n",
			err.Error())
		return rep, storageFault("plan", err)
	}

	defer func() {
		var err2 error
		if status {
			if err2 = ing.db.Commit(); err2 != nil {
				ing.log.Printf("[ERROR] Cannot commit taxonomy: %s\n",
					err2.Error())
				err = storageFault("plan", err2)
			}
		} else if err2 = ing.db.Rollback(); err2 != nil {
			ing.log.Printf("[ERROR] Cannot roll back transaction: %s\n",
				err2.Error())
		}
	}()

	for _, cat := range taxonomy.Categories(plan) {
		var catID int64

		if catID, err = ing.db.CategoryGetOrCreate(cat); err != nil {
			return rep, storageFault(cat, err)
		}

		rep.Categories++

		for _, sub := range plan[cat] {
			if _, err = ing.db.SubcategoryGetOrCreate(sub, catID); err != nil {
				return rep, storageFault(cat+"/"+sub, err)
			}

			rep.Subcategories++
		}
	}

	ing.log.Printf("[INFO] Prepared %d Categories and %d Subcategories\n",
		rep.Categories,
		rep.Subcategories)

	status = true
	return rep, nil
} // func (ing *Ingestor) Prepare(plan map[string][]string) (*Report, error)
