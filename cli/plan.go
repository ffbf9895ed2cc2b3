// /home/krylon/go/src/github.com/blicero/arithma/cli/plan.go
// -*- mode: go; coding: utf-8; -*-
// Created on 27. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-27 19:02:16 krylon>

package cli

import (
	"fmt"
	"strings"

	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/common/path"
	"github.com/blicero/arithma/database"
	"github.com/blicero/arithma/ingest"
	"github.com/blicero/arithma/manifest"
	"github.com/blicero/arithma/taxonomy"
	"github.com/spf13/cobra"
)

var planOpts struct {
	manifest  string
	exercises string
	prepare   bool
}

var planCmd = &cobra.Command{
	Use:   "plan [--manifest f] [--prepare]",
	Short: "Show the Categories and Subcategories the manifest leads to.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err  error
			m    *manifest.Manifest
			plan map[string][]string
		)

		if m, err = loadManifest(planOpts.manifest); err != nil {
			return err
		} else if plan, err = taxonomy.Plan(m, exercisesDir(planOpts.exercises)); err != nil {
			return err
		}

		for _, cat := range taxonomy.Categories(plan) {
			fmt.Printf("%s: %s\n", cat, strings.Join(plan[cat], ", "))
		}

		if !planOpts.prepare {
			return nil
		}

		return prepareTaxonomy(plan)
	},
}

func init() {
	planCmd.Flags().StringVar(&planOpts.manifest, "manifest", "", "Path of the manifest (default <basedir>/datasources.json)")
	planCmd.Flags().StringVar(&planOpts.exercises, "exercises", "", "Directory to save exercises to (default <basedir>/exercises)")
	planCmd.Flags().BoolVar(&planOpts.prepare, "prepare", false, "Create the Categories and Subcategories in the database")
	rootCmd.AddCommand(planCmd)
}

func exercisesDir(p string) string {
	if p == "" {
		return common.Path(path.Exercises)
	}
	return p
} // func exercisesDir(p string) string

func prepareTaxonomy(plan map[string][]string) error {
	var (
		err error
		db  *database.Database
		ing *ingest.Ingestor
		rep *ingest.Report
	)

	if db, err = openDatabase(); err != nil {
		return err
	}

	defer db.Close() // nolint: errcheck

	if ing, err = ingest.New(db, nil, ""); err != nil {
		return err
	} else if rep, err = ing.Prepare(plan); err != nil {
		return err
	}

	fmt.Print(rep)
	return nil
} // func prepareTaxonomy(plan map[string][]string) error
