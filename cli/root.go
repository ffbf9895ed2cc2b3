// /home/krylon/go/src/github.com/blicero/arithma/cli/root.go
// -*- mode: go; coding: utf-8; -*-
// Created on 27. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-27 18:31:27 krylon>

// Package cli implements the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/common/path"
	"github.com/blicero/arithma/database"
	"github.com/blicero/arithma/manifest"
	"github.com/spf13/cobra"
)

// Options holds the values of the global flags.
type Options struct {
	BaseDir  string
	DBPath   string
	LogLevel string
	EnvFile  string
}

var opts Options

var rootCmd = &cobra.Command{
	Use:   "arithma",
	Short: "arithma harvests math exercises into a SQLite databank.",
	Long: `arithma scrapes the listing pages named in a manifest, saves every
exercise to its own JSON file, and stores them in a SQLite database
together with their Category and Subcategory. It can also load exercises
from a tree of JSON files, and serve the databank as a JSON API.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	var flags = rootCmd.PersistentFlags()

	flags.StringVar(&opts.BaseDir, "basedir", ".", "Directory for the database, the exercises, and the log file (env "+common.EnvBaseDir+")")
	flags.StringVar(&opts.DBPath, "db", "", "Path of the database (default <basedir>/Database/arithma-databank.db)")
	flags.StringVar(&opts.LogLevel, "loglevel", "DEBUG", "Minimum level for log messages to be logged (env "+common.EnvLogLevel+")")
	flags.StringVar(&opts.EnvFile, "env", ".env", "File to load environment variables from")
}

// setup applies the global flags. Flags that were not given on the command
// line take their value from the environment, if it is set there.
func setup(cmd *cobra.Command, args []string) error {
	var (
		err   error
		flags = cmd.Flags()
	)

	if err = common.LoadEnv(opts.EnvFile); err != nil {
		return fmt.Errorf("cannot load %s: %w", opts.EnvFile, err)
	}

	if v, ok := os.LookupEnv(common.EnvBaseDir); ok && !flags.Changed("basedir") {
		opts.BaseDir = v
	}
	if v, ok := os.LookupEnv(common.EnvLogLevel); ok && !flags.Changed("loglevel") {
		opts.LogLevel = v
	}

	if err = common.SetLogLevel(opts.LogLevel); err != nil {
		return err
	} else if err = common.SetBaseDir(opts.BaseDir); err != nil {
		return fmt.Errorf("cannot set base directory to %s: %w", opts.BaseDir, err)
	}

	if !flags.Changed("db") {
		opts.DBPath = common.Path(path.Database)
	}

	return nil
} // func setup(cmd *cobra.Command, args []string) error

// ExecuteContext runs the command given on the command line and returns the
// exit status.
func ExecuteContext(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
} // func ExecuteContext(ctx context.Context) int

func openDatabase() (*database.Database, error) {
	var (
		err error
		db  *database.Database
	)

	if db, err = database.Open(opts.DBPath); err != nil {
		return nil, fmt.Errorf("cannot open database %s: %w", opts.DBPath, err)
	}

	return db, nil
} // func openDatabase() (*database.Database, error)

// manifestPath returns the path of the manifest, given on the command line
// or the default.
func manifestPath(p string) string {
	if p == "" {
		return common.Path(path.Manifest)
	}
	return p
} // func manifestPath(p string) string

func loadManifest(p string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath(p))
} // func loadManifest(p string) (*manifest.Manifest, error)
