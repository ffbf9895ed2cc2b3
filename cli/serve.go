// /home/krylon/go/src/github.com/blicero/arithma/cli/serve.go
// -*- mode: go; coding: utf-8; -*-
// Created on 28. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-28 12:03:11 krylon>

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/blicero/arithma/database"
	"github.com/blicero/arithma/web"
	"github.com/spf13/cobra"
)

// DefaultAddr is the address the browse API listens on by default.
const DefaultAddr = "[::1]:4201"

const shutdownTimeout = time.Second * 5

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [--addr a]",
	Short: "Serve the databank as a JSON API.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err  error
			db   *database.Database
			srv  *web.Server
			errq = make(chan error, 1)
		)

		if db, err = openDatabase(); err != nil {
			return err
		}

		defer db.Close() // nolint: errcheck

		if srv, err = web.Create(serveAddr, db); err != nil {
			return err
		}

		go func() {
			errq <- srv.ListenAndServe()
		}()

		select {
		case err = <-errq:
			return err
		case <-cmd.Context().Done():
			fmt.Fprintln(os.Stderr, "Received signal, quitting.")
		}

		var ctx, cancel = context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err = srv.Shutdown(ctx); err != nil {
			return err
		}

		return <-errq
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", DefaultAddr, "Address for the web server to listen on")
	rootCmd.AddCommand(serveCmd)
}
