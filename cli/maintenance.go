// /home/krylon/go/src/github.com/blicero/arithma/cli/maintenance.go
// -*- mode: go; coding: utf-8; -*-
// Created on 28. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-28 12:10:45 krylon>

package cli

import (
	"github.com/blicero/arithma/database"
	"github.com/spf13/cobra"
)

var maintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Checkpoint, vacuum, and analyze the database.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
			db  *database.Database
		)

		if db, err = openDatabase(); err != nil {
			return err
		}

		defer db.Close() // nolint: errcheck

		return db.PerformMaintenance()
	},
}

func init() {
	rootCmd.AddCommand(maintenanceCmd)
}
