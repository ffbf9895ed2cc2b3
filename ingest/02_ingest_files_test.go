// /home/krylon/go/src/github.com/blicero/arithma/ingest/02_ingest_files_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-25 16:47:19 krylon>

package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/blicero/arithma/model"
)

// trainTree creates a directory of training files and returns its path.
func trainTree(t *testing.T) string {
	t.Helper()

	var (
		base  = t.TempDir()
		files = map[string]string{
			"Arithmetic/001.json":  `{"problem": "What is 2 + 3?", "solution": "2 + 3 = 5", "level": "Level 1"}`,
			"Arithmetic/002.json":  `{"problem": "What is 7 times 6?", "solution": "42", "level": 2}`,
			"Arithmetic/notes.txt": "not an exercise",
			"Probability/a.json": `{"problem": "A fair coin is tossed twice. What is the probability of two heads?",
                                     "solution": "One in four.", "level": null, "type": "Counting"}`,
			"Probability/b.json": `{"problem": "Roll a die. What is the expected value?", "level": "Level 3"}`,
			"Probability/c.json": `{"problem": "Pick a card.", "solution": "1/52", "level": "Level 2"}`,
		}
	)

	for name, content := range files {
		var p = filepath.Join(base, name)

		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("Cannot create directory for %s: %s", name, err.Error())
		} else if err = os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("Cannot write %s: %s", name, err.Error())
		}
	}

	// A stray file at the top is ignored.
	if err := os.WriteFile(filepath.Join(base, "README"), []byte("hello"), 0644); err != nil {
		t.Fatalf("Cannot write README: %s", err.Error())
	}

	return base
} // func trainTree(t *testing.T) string

func TestReadTrainingFile(t *testing.T) {
	var (
		dir   = t.TempDir()
		cases = []struct {
			content string
			kind    model.FaultKind
			level   string
		}{
			{content: `{"problem": "p", "solution": "s", "level": "Level 5"}`, level: "Level 5"},
			{content: `{"problem": "p", "solution": "s", "level": 3}`, level: "3"},
			{content: `{"problem": "p", "solution": "s", "level": 2.5}`, level: "2.5"},
			{content: `{"problem": "p", "solution": "s", "level": null}`, level: ""},
			{content: `{"problem": "p", "solution": "s"}`, kind: model.FaultSchema},
			{content: `{"problem": "p", "level": 1}`, kind: model.FaultSchema},
			{content: `{"solution": "s", "level": 1}`, kind: model.FaultSchema},
			{content: `{"problem": 17, "solution": "s", "level": 1}`, kind: model.FaultSchema},
			{content: `{"problem": "p", "solution": "s", "level": [1]}`, kind: model.FaultSchema},
			{content: `{"problem": "p", "solution": "s", "level": true}`, kind: model.FaultSchema},
			{content: `{"problem": "p", "solution": "s", "level": false}`, kind: model.FaultSchema},
			{content: `{"problem": "p", `, kind: model.FaultParse},
			{content: `not json at all`, kind: model.FaultParse},
		}
	)

	for i, c := range cases {
		var p = filepath.Join(dir, "case.json")

		if err := os.WriteFile(p, []byte(c.content), 0644); err != nil {
			t.Fatalf("Cannot write test file: %s", err.Error())
		}

		e, err := ReadTrainingFile(p)

		if c.kind != model.FaultNone {
			if err == nil {
				t.Errorf("Case %d: expected a %s error", i, c.kind)
			} else if k := model.KindOf(err); k != c.kind {
				t.Errorf("Case %d: expected a %s error, got %s: %s",
					i,
					c.kind,
					k,
					err.Error())
			}
			continue
		} else if err != nil {
			t.Errorf("Case %d: unexpected error: %s", i, err.Error())
			continue
		}

		if e.Level != c.level {
			t.Errorf("Case %d: expected level %q, got %q", i, c.level, e.Level)
		} else if e.Lang != model.LangEnglish {
			t.Errorf("Case %d: expected language %q, got %q", i, model.LangEnglish, e.Lang)
		} else if e.Hint != "" {
			t.Errorf("Case %d: expected no hint, got %q", i, e.Hint)
		}
	}

	if _, err := ReadTrainingFile(filepath.Join(dir, "missing.json")); model.KindOf(err) != model.FaultIO {
		t.Errorf("Missing file should be an IO error, got %v", err)
	}
} // func TestReadTrainingFile(t *testing.T)

func TestIngestFiles(t *testing.T) {
	var (
		err  error
		ing  *Ingestor
		rep  *Report
		tree = trainTree(t)
	)

	if ing, err = New(db, nil, ""); err != nil {
		t.Fatalf("Cannot create Ingestor: %s", err.Error())
	} else if rep, err = ing.IngestFiles(context.Background(), tree); err != nil {
		t.Fatalf("IngestFiles failed: %s", err.Error())
	}

	if rep.Categories != 2 {
		t.Errorf("Expected 2 Categories, got %d", rep.Categories)
	}
	if rep.Files != 4 || rep.Exercises != 4 {
		t.Errorf("Expected 4 files / exercises, got %d / %d",
			rep.Files,
			rep.Exercises)
	}
	if len(rep.Failures) != 1 {
		t.Fatalf("Expected 1 failure, got %d", len(rep.Failures))
	} else if f := rep.Failures[0]; f.Kind != model.FaultSchema || f.Action != Skip {
		t.Errorf("Unexpected failure: %#v", f)
	}

	var catID = categoryID(t, "Arithmetic")

	list, err := db.ExerciseGetByCategory(catID, 10, 0)
	if err != nil {
		t.Fatalf("Cannot load Exercises: %s", err.Error())
	} else if len(list) != 2 {
		t.Fatalf("Expected 2 Exercises in Arithmetic, got %d", len(list))
	}

	// Files are processed in name order.
	if list[0].Level != "Level 1" || list[1].Level != "2" {
		t.Errorf("Unexpected levels: %q, %q", list[0].Level, list[1].Level)
	}

	for _, e := range list {
		if e.Lang != model.LangEnglish || e.SubcategoryID != 0 || e.Hint != "" {
			t.Errorf("Unexpected Exercise: %#v", e)
		}
	}
} // func TestIngestFiles(t *testing.T)

func TestIngestFilesTwice(t *testing.T) {
	var (
		err  error
		ing  *Ingestor
		tree = trainTree(t)
	)

	if ing, err = New(db, nil, ""); err != nil {
		t.Fatalf("Cannot create Ingestor: %s", err.Error())
	}

	var before = countCategory(t, "Probability")

	if _, err = ing.IngestFiles(context.Background(), tree); err != nil {
		t.Fatalf("IngestFiles failed: %s", err.Error())
	}

	// No deduplication: the same two Exercises are stored again.
	if after := countCategory(t, "Probability"); after != before+2 {
		t.Errorf("Expected %d Exercises in Probability, got %d",
			before+2,
			after)
	}
} // func TestIngestFilesTwice(t *testing.T)

func TestIngestFilesStrict(t *testing.T) {
	var (
		err  error
		ing  *Ingestor
		rep  *Report
		tree = trainTree(t)
	)

	if ing, err = New(db, nil, ""); err != nil {
		t.Fatalf("Cannot create Ingestor: %s", err.Error())
	}

	ing.SetPolicy(StrictPolicy)

	var before = countCategory(t, "Probability")

	if rep, err = ing.IngestFiles(context.Background(), tree); err == nil {
		t.Fatal("IngestFiles should fail on the broken file")
	} else if k := model.KindOf(err); k != model.FaultSchema {
		t.Errorf("Expected a Schema error, got %s: %s", k, err.Error())
	}

	// Arithmetic and a.json are stored before b.json ends the run.
	if rep.Exercises != 3 {
		t.Errorf("Expected 3 Exercises before the abort, got %d", rep.Exercises)
	}

	if after := countCategory(t, "Probability"); after != before+1 {
		t.Errorf("Expected %d Exercises in Probability, got %d",
			before+1,
			after)
	}
} // func TestIngestFilesStrict(t *testing.T)

func TestIngestFilesCancel(t *testing.T) {
	var (
		err         error
		ing         *Ingestor
		tree        = trainTree(t)
		ctx, cancel = context.WithCancel(context.Background())
	)

	cancel()

	if ing, err = New(db, nil, ""); err != nil {
		t.Fatalf("Cannot create Ingestor: %s", err.Error())
	} else if _, err = ing.IngestFiles(ctx, tree); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	if _, err = ing.IngestFiles(context.Background(), filepath.Join(tree, "nope")); model.KindOf(err) != model.FaultIO {
		t.Errorf("Missing folder should be an IO error, got %v", err)
	}
} // func TestIngestFilesCancel(t *testing.T)
