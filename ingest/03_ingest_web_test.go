// /home/krylon/go/src/github.com/blicero/arithma/ingest/03_ingest_web_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-25 18:21:50 krylon>

package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/blicero/arithma/manifest"
	"github.com/blicero/arithma/model"
	"github.com/blicero/arithma/scraper"
	"github.com/blicero/arithma/taxonomy"
)

func webIngestor(t *testing.T) (*Ingestor, string) {
	t.Helper()

	var (
		err error
		scr *scraper.Scraper
		ing *Ingestor
		dir = t.TempDir()
	)

	if scr, err = scraper.New(); err != nil {
		t.Fatalf("Cannot create Scraper: %s", err.Error())
	} else if ing, err = New(db, scr, dir); err != nil {
		t.Fatalf("Cannot create Ingestor: %s", err.Error())
	}

	return ing, dir
} // func webIngestor(t *testing.T) (*Ingestor, string)

func TestIngestWeb(t *testing.T) {
	var (
		err      error
		rep      *Report
		ing, dir = webIngestor(t)
		m        = &manifest.Manifest{
			Entries: []manifest.Entry{
				{
					Key:      "algebre",
					Category: "Algebra",
					URLs: []string{
						srv.URL + "/ressources/?quoi=algebre/anneaux",
						srv.URL + "/missing/?quoi=algebre/perdu",
						srv.URL + "/broken/?quoi=algebre/casse",
					},
				},
			},
		}
	)

	if rep, err = ing.IngestWeb(context.Background(), m); err != nil {
		t.Fatalf("IngestWeb failed: %s", err.Error())
	}

	if rep.Pages != 1 || rep.Exercises != 2 {
		t.Errorf("Expected 1 page with 2 Exercises, got %d / %d",
			rep.Pages,
			rep.Exercises)
	}
	if rep.Categories != 1 || rep.Subcategories != 3 {
		t.Errorf("Expected 1 Category and 3 Subcategories, got %d / %d",
			rep.Categories,
			rep.Subcategories)
	}
	if len(rep.Failures) != 2 {
		t.Fatalf("Expected 2 failures, got %d", len(rep.Failures))
	} else if rep.Failures[0].Kind != model.FaultFetch {
		t.Errorf("Expected a Fetch failure, got %s", rep.Failures[0].Kind)
	} else if rep.Failures[1].Kind != model.FaultParse {
		t.Errorf("Expected a Parse failure, got %s", rep.Failures[1].Kind)
	}

	var catID = categoryID(t, "Algebra")

	list, err := db.ExerciseGetByCategory(catID, 10, 0)
	if err != nil {
		t.Fatalf("Cannot load Exercises: %s", err.Error())
	} else if len(list) != 2 {
		t.Fatalf("Expected 2 Exercises, got %d", len(list))
	}

	subs, err := db.SubcategoryGetByCategory(catID)
	if err != nil {
		t.Fatalf("Cannot load Subcategories: %s", err.Error())
	}

	var subID int64
	for _, s := range subs {
		if s.Name == "anneaux" {
			subID = s.ID
		}
	}

	for _, e := range list {
		if e.Lang != model.LangFrench {
			t.Errorf("Expected language %q, got %q", model.LangFrench, e.Lang)
		} else if e.SubcategoryID != subID {
			t.Errorf("Expected Subcategory %d, got %d", subID, e.SubcategoryID)
		} else if e.Hint == "" || e.Level != "" {
			t.Errorf("Unexpected Exercise: %#v", e)
		}
	}

	// The files are written, too.
	for _, name := range []string{"exercise_1.json", "exercise_2.json"} {
		if _, err = os.Stat(filepath.Join(dir, "Algebra", "anneaux", name)); err != nil {
			t.Errorf("File %s was not written: %s", name, err.Error())
		}
	}

	// Running again reuses the taxonomy, but stores the Exercises again.
	if rep, err = ing.IngestWeb(context.Background(), m); err != nil {
		t.Fatalf("Second run failed: %s", err.Error())
	} else if subs2, _ := db.SubcategoryGetByCategory(catID); len(subs2) != len(subs) {
		t.Errorf("Second run created Subcategories: %d -> %d", len(subs), len(subs2))
	} else if cnt := countCategory(t, "Algebra"); cnt != 4 {
		t.Errorf("Expected 4 Exercises after two runs, got %d", cnt)
	}
} // func TestIngestWeb(t *testing.T)

func TestIngestWebStrict(t *testing.T) {
	var (
		err     error
		rep     *Report
		ing, _  = webIngestor(t)
		pageURL = srv.URL + "/ressources/?quoi=geometrie/coniques"
		m       = &manifest.Manifest{
			Entries: []manifest.Entry{
				{
					Key:      "geometrie",
					Category: "Geometry",
					URLs: []string{
						pageURL,
						srv.URL + "/missing/?quoi=geometrie/perdu",
						pageURL,
					},
				},
			},
		}
	)

	ing.SetPolicy(StrictPolicy)

	if rep, err = ing.IngestWeb(context.Background(), m); err == nil {
		t.Fatal("IngestWeb should fail on the missing page")
	} else if k := model.KindOf(err); k != model.FaultFetch {
		t.Errorf("Expected a Fetch error, got %s: %s", k, err.Error())
	}

	// The first page stays committed.
	if rep.Pages != 1 {
		t.Errorf("Expected 1 page before the abort, got %d", rep.Pages)
	} else if cnt := countCategory(t, "Geometry"); cnt != 2 {
		t.Errorf("Expected 2 Exercises in Geometry, got %d", cnt)
	}
} // func TestIngestWebStrict(t *testing.T)

func TestIngestWebCancel(t *testing.T) {
	var (
		err         error
		ing, _      = webIngestor(t)
		ctx, cancel = context.WithCancel(context.Background())
		m           = &manifest.Manifest{
			Entries: []manifest.Entry{
				{
					Category: "Combinatorics",
					URLs:     []string{srv.URL + "/ressources/?quoi=combinatoire/denombrement"},
				},
			},
		}
	)

	cancel()

	if _, err = ing.IngestWeb(ctx, m); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	cats, _ := db.CategoryGetAll()
	for _, c := range cats {
		if c.Name == "Combinatorics" {
			t.Error("Cancelled run created a Category")
		}
	}
} // func TestIngestWebCancel(t *testing.T)

func TestPrepare(t *testing.T) {
	var (
		err  error
		ing  *Ingestor
		rep  *Report
		plan = map[string][]string{
			"Topology": {"espaces_metriques", "compacite"},
			"Logic":    {taxonomy.UnknownSubcategory},
		}
	)

	if ing, err = New(db, nil, ""); err != nil {
		t.Fatalf("Cannot create Ingestor: %s", err.Error())
	}

	for i := 0; i < 2; i++ {
		if rep, err = ing.Prepare(plan); err != nil {
			t.Fatalf("Prepare #%d failed: %s", i+1, err.Error())
		} else if rep.Categories != 2 || rep.Subcategories != 3 {
			t.Errorf("Prepare #%d: expected 2 / 3, got %d / %d",
				i+1,
				rep.Categories,
				rep.Subcategories)
		} else if db.InTx() {
			t.Errorf("Prepare #%d left a transaction open", i+1)
		}
	}

	subs, err := db.SubcategoryGetByCategory(categoryID(t, "Topology"))
	if err != nil {
		t.Fatalf("Cannot load Subcategories: %s", err.Error())
	} else if len(subs) != 2 {
		t.Errorf("Expected 2 Subcategories of Topology, got %d", len(subs))
	}

	// An invalid name rolls back the whole plan.
	plan = map[string][]string{
		"Set Theory": {"cardinaux", ""},
	}

	if _, err = ing.Prepare(plan); err == nil {
		t.Error("Prepare should fail on an empty Subcategory name")
	} else if db.InTx() {
		t.Error("Failed Prepare left a transaction open")
	}

	cats, _ := db.CategoryGetAll()
	for _, c := range cats {
		if c.Name == "Set Theory" {
			t.Error("Failed Prepare was not rolled back")
		}
	}
} // func TestPrepare(t *testing.T)
