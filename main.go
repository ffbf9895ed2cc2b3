// /home/krylon/go/src/github.com/blicero/arithma/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-27 18:40:02 krylon>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/blicero/arithma/cli"
	"github.com/blicero/arithma/common"
)

func main() {
	fmt.Printf("%s %s\n",
		common.AppName,
		common.Version)

	var ctx, stop = signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGQUIT,
		syscall.SIGTERM)

	var status = cli.ExecuteContext(ctx)

	stop()
	os.Exit(status)
}
