// /home/krylon/go/src/github.com/blicero/arithma/scraper/scraper.go
// -*- mode: go; coding: utf-8; -*-
// Created on 21. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-22 16:37:05 krylon>

// Package scraper extracts Exercises from the listing pages of the site.
// A listing page holds any number of exercise blocks, each of which has a
// statement, a hint, and a solution.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/logdomain"
	"github.com/blicero/arithma/model"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
)

// CSS selectors for the parts of a listing page we care about.
const (
	selExercise  = "div.exo"
	selStatement = "div.enonce"
	selHint      = "div.indication"
	selSolution  = "div.corrige"
)

const (
	fetchTimeout = time.Second * 60
	userAgent    = "Mozilla/5.0 (compatible; Arithma/0.3)"
)

// Scraper fetches listing pages and turns them into Exercises.
type Scraper struct {
	log    *log.Logger
	client *resty.Client
	cache  *PageCache
	layout bool
}

// New creates a new Scraper.
func New() (*Scraper, error) {
	var (
		err error
		s   = &Scraper{
			client: resty.New().
				SetTimeout(fetchTimeout).
				SetHeader("User-Agent", userAgent),
		}
	)

	if s.log, err = common.GetLogger(logdomain.Scraper); err != nil {
		return nil, err
	}

	return s, nil
} // func New() (*Scraper, error)

// SetCache makes the Scraper look up pages in the given cache before
// fetching them. Passing nil disables the cache.
func (s *Scraper) SetCache(c *PageCache) {
	s.cache = c
} // func (s *Scraper) SetCache(c *PageCache)

// SetPreserveLayout switches text extraction from the compact form, where
// all the text of a block is glued together, to a rendering that keeps
// line breaks.
func (s *Scraper) SetPreserveLayout(flag bool) {
	s.layout = flag
} // func (s *Scraper) SetPreserveLayout(flag bool)

// fetch downloads a page and returns its body converted to UTF-8.
func (s *Scraper) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	var (
		err  error
		res  *resty.Response
		rdr  io.Reader
		body []byte
	)

	if s.cache != nil {
		if body, ok := s.cache.Lookup(pageURL); ok {
			return body, nil
		}
	}

	s.log.Printf("[DEBUG] Fetch %s\n", pageURL)

	if res, err = s.client.R().SetContext(ctx).Get(pageURL); err != nil {
		s.log.Printf("[ERROR] Failed to fetch %s: %s\n",
			pageURL,
			err.Error())
		return nil, model.NewFault(model.FaultFetch, pageURL, err)
	} else if res.IsError() {
		err = fmt.Errorf("HTTP status %s", res.Status())
		s.log.Printf("[ERROR] Failed to fetch %s: %s\n",
			pageURL,
			err.Error())
		return nil, model.NewFault(model.FaultFetch, pageURL, err)
	} else if rdr, err = charset.NewReader(bytes.NewReader(res.Body()), res.Header().Get("Content-Type")); err != nil {
		s.log.Printf("[ERROR] Cannot determine encoding of %s: %s\n",
			pageURL,
			err.Error())
		return nil, model.NewFault(model.FaultParse, pageURL, err)
	} else if body, err = io.ReadAll(rdr); err != nil {
		s.log.Printf("[ERROR] Cannot decode %s: %s\n",
			pageURL,
			err.Error())
		return nil, model.NewFault(model.FaultParse, pageURL, err)
	}

	if s.cache != nil {
		s.cache.Store(pageURL, body)
	}

	return body, nil
} // func (s *Scraper) fetch(ctx context.Context, pageURL string) ([]byte, error)

// blockText extracts the text of the first element matching sel within the
// exercise block and cleans it.
func (s *Scraper) blockText(exo *goquery.Selection, sel string) (string, error) {
	var block = exo.Find(sel).First()

	if block.Length() == 0 {
		return "", fmt.Errorf("no %s block", sel)
	} else if !s.layout {
		return Clean(strippedText(block)), nil
	}

	var (
		err  error
		text string
	)

	if text, err = layoutText(block); err != nil {
		return "", err
	}

	return Clean(text), nil
} // func (s *Scraper) blockText(exo *goquery.Selection, sel string) (string, error)

// Extract parses a listing page and returns its Exercises in document
// order. If any block is missing one of its parts, the whole page is
// rejected.
func (s *Scraper) Extract(body []byte, source string) ([]model.Exercise, error) {
	var (
		err  error
		doc  *goquery.Document
		list []model.Exercise
	)

	if doc, err = goquery.NewDocumentFromReader(bytes.NewReader(body)); err != nil {
		s.log.Printf("[ERROR] Cannot parse %s: %s\n",
			source,
			err.Error())
		return nil, model.NewFault(model.FaultParse, source, err)
	}

	var blocks = doc.Find(selExercise)
	list = make([]model.Exercise, 0, blocks.Length())

	blocks.EachWithBreak(func(idx int, exo *goquery.Selection) bool {
		var e = model.Exercise{Lang: model.LangFrench}

		if e.Script, err = s.blockText(exo, selStatement); err != nil {
			err = fmt.Errorf("exercise %d: %w", idx+1, err)
			return false
		} else if e.Hint, err = s.blockText(exo, selHint); err != nil {
			err = fmt.Errorf("exercise %d: %w", idx+1, err)
			return false
		} else if e.Solution, err = s.blockText(exo, selSolution); err != nil {
			err = fmt.Errorf("exercise %d: %w", idx+1, err)
			return false
		}

		list = append(list, e)
		return true
	})

	if err != nil {
		s.log.Printf("[ERROR] Unexpected structure in %s: %s\n",
			source,
			err.Error())
		return nil, model.NewFault(model.FaultParse, source, err)
	}

	return list, nil
} // func (s *Scraper) Extract(body []byte, source string) ([]model.Exercise, error)

// Scrape fetches a listing page, extracts its Exercises and saves each of
// them to its own file below baseDir/category/subcategory. The files are
// numbered by the Exercise's position on the page, starting at 1.
//
// The files are always written. The Exercises are only returned if
// returnExercises is true, otherwise the result is nil.
func (s *Scraper) Scrape(ctx context.Context, pageURL, category, subcategory, baseDir string, returnExercises bool) (*model.ScrapeResult, error) {
	var (
		err  error
		body []byte
		dir  string
		list []model.Exercise
	)

	if body, err = s.fetch(ctx, pageURL); err != nil {
		return nil, err
	} else if list, err = s.Extract(body, pageURL); err != nil {
		return nil, err
	} else if dir, err = ProvisionDir(baseDir, category, subcategory); err != nil {
		s.log.Printf("[ERROR] Cannot create directory for %s/%s: %s\n",
			category,
			subcategory,
			err.Error())
		return nil, model.NewFault(model.FaultIO, pageURL, err)
	}

	for i := range list {
		if _, err = WriteExercise(dir, i+1, &list[i]); err != nil {
			s.log.Printf("[ERROR] Cannot save exercise %d of %s: %s\n",
				i+1,
				pageURL,
				err.Error())
			return nil, model.NewFault(model.FaultIO, pageURL, err)
		}
	}

	s.log.Printf("[INFO] Scraped %d exercises from %s into %s\n",
		len(list),
		pageURL,
		dir)

	if !returnExercises {
		return nil, nil
	}

	var res = &model.ScrapeResult{
		Exercises:     list,
		Categories:    make([]string, 0, 1),
		Subcategories: make([]string, 0, 1),
	}

	if len(list) > 0 {
		res.Categories = append(res.Categories, category)
		res.Subcategories = append(res.Subcategories, subcategory)
	}

	return res, nil
} // func (s *Scraper) Scrape(...) (*model.ScrapeResult, error)

// exerciseFile is the on-disk format of a scraped Exercise.
type exerciseFile struct {
	Script   string `json:"script"`
	Hint     string `json:"hint"`
	Solution string `json:"solution"`
	Lang     string `json:"lang"`
}

// WriteExercise saves an Exercise as dir/exercise_<n>.json and returns the
// path of the file.
func WriteExercise(dir string, n int, e *model.Exercise) (string, error) {
	var (
		err  error
		buf  bytes.Buffer
		enc  = json.NewEncoder(&buf)
		path = filepath.Join(dir, fmt.Sprintf("exercise_%d.json", n))
		rec  = exerciseFile{
			Script:   e.Script,
			Hint:     e.Hint,
			Solution: e.Solution,
			Lang:     e.Lang,
		}
	)

	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	if err = enc.Encode(&rec); err != nil {
		return "", err
	} else if err = os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}

	return path, nil
} // func WriteExercise(dir string, n int, e *model.Exercise) (string, error)
