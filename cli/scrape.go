// /home/krylon/go/src/github.com/blicero/arithma/cli/scrape.go
// -*- mode: go; coding: utf-8; -*-
// Created on 27. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-28 10:14:39 krylon>

package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/common/path"
	"github.com/blicero/arithma/database"
	"github.com/blicero/arithma/ingest"
	"github.com/blicero/arithma/manifest"
	"github.com/blicero/arithma/scraper"
	"github.com/blicero/arithma/taxonomy"
	"github.com/spf13/cobra"
)

var scrapeOpts struct {
	manifest   string
	exercises  string
	strict     bool
	prepare    bool
	cache      bool
	cacheTTL   time.Duration
	flushCache bool
	layout     bool
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--manifest f] [--exercises d] [--strict] [--cache] [--layout]",
	Short: "Scrape all listing pages in the manifest into the database.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err  error
			m    *manifest.Manifest
			plan map[string][]string
			db   *database.Database
			scr  *scraper.Scraper
			pc   *scraper.PageCache
			ing  *ingest.Ingestor
			rep  *ingest.Report
			dir  = exercisesDir(scrapeOpts.exercises)
		)

		if m, err = loadManifest(scrapeOpts.manifest); err != nil {
			return err
		} else if plan, err = taxonomy.Plan(m, dir); err != nil {
			return err
		} else if db, err = openDatabase(); err != nil {
			return err
		}

		defer db.Close() // nolint: errcheck

		if scr, err = newScraper(&pc); err != nil {
			return err
		} else if pc != nil {
			defer pc.Close() // nolint: errcheck
		}

		if ing, err = ingest.New(db, scr, dir); err != nil {
			return err
		} else if scrapeOpts.strict {
			ing.SetPolicy(ingest.StrictPolicy)
		}

		if scrapeOpts.prepare {
			if rep, err = ing.Prepare(plan); err != nil {
				return err
			}
			fmt.Print(rep)
		}

		rep, err = ing.IngestWeb(cmd.Context(), m)
		fmt.Print(rep)
		return err
	},
}

var pageOpts struct {
	category    string
	subcategory string
	exercises   string
}

var pageCmd = &cobra.Command{
	Use:   "page URL --category c [--subcategory s]",
	Short: "Scrape a single listing page into files, without touching the database.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err     error
			scr     *scraper.Scraper
			pc      *scraper.PageCache
			pageURL = args[0]
			sub     = pageOpts.subcategory
		)

		if pageOpts.category == "" {
			return errors.New("--category is required")
		} else if sub == "" {
			sub = taxonomy.SubcategoryFromURL(pageURL)
		}

		if scr, err = newScraper(&pc); err != nil {
			return err
		} else if pc != nil {
			defer pc.Close() // nolint: errcheck
		}

		_, err = scr.Scrape(
			cmd.Context(),
			pageURL,
			pageOpts.category,
			sub,
			exercisesDir(pageOpts.exercises),
			false)

		return err
	},
}

func init() {
	var flags = scrapeCmd.Flags()

	flags.StringVar(&scrapeOpts.manifest, "manifest", "", "Path of the manifest (default <basedir>/datasources.json)")
	flags.StringVar(&scrapeOpts.exercises, "exercises", "", "Directory to save exercises to (default <basedir>/exercises)")
	flags.BoolVar(&scrapeOpts.strict, "strict", false, "Abort on the first page that cannot be processed")
	flags.BoolVar(&scrapeOpts.prepare, "prepare", true, "Create all Categories and Subcategories before scraping")
	rootCmd.AddCommand(scrapeCmd)

	pageCmd.Flags().StringVar(&pageOpts.category, "category", "", "Category of the page")
	pageCmd.Flags().StringVar(&pageOpts.subcategory, "subcategory", "", "Subcategory of the page (default: taken from the URL)")
	pageCmd.Flags().StringVar(&pageOpts.exercises, "exercises", "", "Directory to save exercises to (default <basedir>/exercises)")
	rootCmd.AddCommand(pageCmd)

	// Both commands fetch pages the same way.
	for _, cmd := range []*cobra.Command{scrapeCmd, pageCmd} {
		cmd.Flags().BoolVar(&scrapeOpts.cache, "cache", false, "Keep fetched pages in a local cache")
		cmd.Flags().DurationVar(&scrapeOpts.cacheTTL, "cache-ttl", scraper.DefaultCacheTTL, "How long cached pages stay valid")
		cmd.Flags().BoolVar(&scrapeOpts.flushCache, "flush-cache", false, "Empty the page cache before scraping")
		cmd.Flags().BoolVar(&scrapeOpts.layout, "layout", false, "Keep line breaks in the text of exercises")
	}
}

// newScraper creates a Scraper as configured by the flags. If the page
// cache is used, it is stored in pc, and the caller has to close it.
func newScraper(pc **scraper.PageCache) (*scraper.Scraper, error) {
	var (
		err error
		scr *scraper.Scraper
	)

	if scr, err = scraper.New(); err != nil {
		return nil, err
	}

	scr.SetPreserveLayout(scrapeOpts.layout)

	if !scrapeOpts.cache {
		return scr, nil
	} else if *pc, err = scraper.OpenPageCache(common.Path(path.PageCache), scrapeOpts.cacheTTL); err != nil {
		return nil, err
	} else if scrapeOpts.flushCache {
		if err = (*pc).Flush(); err != nil {
			(*pc).Close() // nolint: errcheck
			*pc = nil
			return nil, fmt.Errorf("cannot flush page cache: %w", err)
		}
	}

	scr.SetCache(*pc)
	return scr, nil
} // func newScraper(pc **scraper.PageCache) (*scraper.Scraper, error)
