// /home/krylon/go/src/github.com/blicero/arithma/ingest/files.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-25 13:48:07 krylon>

package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blicero/arithma/model"
)

// trainingFile is the format of the files IngestFiles reads. Pointers tell
// a missing key from an empty value.
type trainingFile struct {
	Problem  *string         `json:"problem"`
	Solution *string         `json:"solution"`
	Level    json.RawMessage `json:"level"`
}

// levelText returns the level as text. Levels may be strings or numbers,
// null means there is no level.
func levelText(raw json.RawMessage) (string, error) {
	var val = bytes.TrimSpace(raw)

	if len(val) == 0 {
		return "", errors.New("missing key \"level\"")
	}

	switch val[0] {
	case 'n':
		return "", nil
	case '"':
		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[', 't', 'f':
		return "", fmt.Errorf("level must be a string or a number, not %s", val)
	default:
		return string(val), nil
	}
} // func levelText(raw json.RawMessage) (string, error)

// ReadTrainingFile loads an Exercise from one of the files IngestFiles
// processes.
func ReadTrainingFile(path string) (*model.Exercise, error) {
	var (
		err  error
		raw  []byte
		rec  trainingFile
		terr *json.UnmarshalTypeError
		e    = &model.Exercise{Lang: model.LangEnglish}
	)

	if raw, err = os.ReadFile(path); err != nil {
		return nil, model.NewFault(model.FaultIO, path, err)
	} else if err = json.Unmarshal(raw, &rec); err != nil {
		if errors.As(err, &terr) {
			return nil, model.NewFault(model.FaultSchema, path, err)
		}
		return nil, model.NewFault(model.FaultParse, path, err)
	} else if rec.Problem == nil {
		return nil, model.NewFault(model.FaultSchema, path,
			errors.New("missing key \"problem\""))
	} else if rec.Solution == nil {
		return nil, model.NewFault(model.FaultSchema, path,
			errors.New("missing key \"solution\""))
	} else if e.Level, err = levelText(rec.Level); err != nil {
		return nil, model.NewFault(model.FaultSchema, path, err)
	}

	e.Script = *rec.Problem
	e.Solution = *rec.Solution

	return e, nil
} // func ReadTrainingFile(path string) (*model.Exercise, error)

// IngestFiles stores the Exercises found below baseFolder. Each directory
// directly below baseFolder is a Category, each JSON file inside it holds
// one Exercise. Categories are processed in alphabetical order.
//
// Exercises are not deduplicated, ingesting the same tree twice stores
// each Exercise twice.
func (ing *Ingestor) IngestFiles(ctx context.Context, baseFolder string) (*Report, error) {
	var (
		err     error
		rep     = newReport()
		entries []os.DirEntry
	)

	defer rep.finish()

	if entries, err = os.ReadDir(baseFolder); err != nil {
		ing.log.Printf("[ERROR] Cannot read directory %s: %s\n",
			baseFolder,
			err.Error())
		return rep, model.NewFault(model.FaultIO, baseFolder, err)
	}

	ing.log.Printf("[INFO] Run %s: ingest files from %s\n",
		rep.RunID,
		baseFolder)

	for _, d := range entries {
		if !d.IsDir() {
			continue
		} else if err = ctx.Err(); err != nil {
			ing.log.Printf("[INFO] Run %s was cancelled\n", rep.RunID)
			return rep, err
		} else if err = ing.ingestCategory(ctx, rep, filepath.Join(baseFolder, d.Name()), d.Name()); err != nil {
			return rep, err
		}
	}

	ing.log.Printf("[INFO] Run %s finished: %d files, %d exercises, %d skipped\n",
		rep.RunID,
		rep.Files,
		rep.Exercises,
		rep.Skipped())

	return rep, nil
} // func (ing *Ingestor) IngestFiles(ctx context.Context, baseFolder string) (*Report, error)

// ingestCategory processes the files in one Category's directory. It only
// returns an error if the run is to be aborted.
func (ing *Ingestor) ingestCategory(ctx context.Context, rep *Report, dir, category string) error {
	var (
		err   error
		catID int64
		files []os.DirEntry
	)

	if files, err = os.ReadDir(dir); err != nil {
		ing.log.Printf("[ERROR] Cannot read directory %s: %s\n",
			dir,
			err.Error())
		return ing.handle(rep, dir, model.NewFault(model.FaultIO, dir, err))
	} else if catID, err = ing.db.CategoryGetOrCreate(category); err != nil {
		return ing.handle(rep, dir, storageFault(dir, err))
	}

	rep.Categories++

	for _, f := range files {
		var (
			e    *model.Exercise
			path = filepath.Join(dir, f.Name())
		)

		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		} else if err = ctx.Err(); err != nil {
			ing.log.Printf("[INFO] Run %s was cancelled\n", rep.RunID)
			return err
		} else if e, err = ReadTrainingFile(path); err != nil {
			if err = ing.handle(rep, path, err); err != nil {
				return err
			}
			continue
		}

		e.CategoryID = catID
		ing.checkLanguage(e, path)

		if err = ing.db.ExerciseAdd(e); err != nil {
			if err = ing.handle(rep, path, storageFault(path, err)); err != nil {
				return err
			}
			continue
		}

		rep.Files++
		rep.Exercises++
	}

	return nil
} // func (ing *Ingestor) ingestCategory(...) error
