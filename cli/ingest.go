// /home/krylon/go/src/github.com/blicero/arithma/cli/ingest.go
// -*- mode: go; coding: utf-8; -*-
// Created on 28. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-28 11:20:50 krylon>

package cli

import (
	"fmt"

	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/common/path"
	"github.com/blicero/arithma/database"
	"github.com/blicero/arithma/ingest"
	"github.com/spf13/cobra"
)

var ingestOpts struct {
	dir    string
	strict bool
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [--dir d] [--strict]",
	Short: "Load exercises from a tree of JSON files into the database.",
	Long: `Every directory directly below --dir is a Category, every JSON file in it
holds one exercise with the keys "problem", "solution", and "level".
Exercises are not deduplicated: loading the same tree twice stores every
exercise twice.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
			db  *database.Database
			ing *ingest.Ingestor
			rep *ingest.Report
			dir = ingestOpts.dir
		)

		if dir == "" {
			dir = common.Path(path.Train)
		}

		if db, err = openDatabase(); err != nil {
			return err
		}

		defer db.Close() // nolint: errcheck

		if ing, err = ingest.New(db, nil, ""); err != nil {
			return err
		} else if ingestOpts.strict {
			ing.SetPolicy(ingest.StrictPolicy)
		}

		rep, err = ing.IngestFiles(cmd.Context(), dir)
		fmt.Print(rep)
		return err
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestOpts.dir, "dir", "", "Directory to load exercises from (default <basedir>/train)")
	ingestCmd.Flags().BoolVar(&ingestOpts.strict, "strict", false, "Abort on the first file that cannot be processed")
	rootCmd.AddCommand(ingestCmd)
}
