// /home/krylon/go/src/github.com/blicero/arithma/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 18:31:07 krylon>

// Package common contains the bits and pieces the other packages share:
// the base directory and the paths derived from it, logging, and the
// handling of environment-provided defaults.
package common

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blicero/arithma/common/path"
	"github.com/blicero/arithma/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/joho/godotenv"
)

const (
	// AppName is the name of the application.
	AppName = "Arithma"
	// Version is the version number.
	Version = "0.3.1"
	// Debug enables additional log output and checks.
	Debug = true
	// TimestampFormat is the format used to render timestamps for humans.
	TimestampFormat = "2006-01-02 15:04:05"
)

// Names of the environment variables we look at for defaults.
const (
	EnvBaseDir  = "ARITHMA_BASEDIR"
	EnvLogLevel = "ARITHMA_LOGLEVEL"
)

// LogLevels are the names of the log levels supported by the logger.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// MinLogLevel is the minimum level a log message must have to be written.
var MinLogLevel logutils.LogLevel = "TRACE"

var (
	baseDir = "."
	logLock sync.Mutex
	logFile *os.File
)

// ErrInvalidLogLevel is returned when an unknown log level is requested.
var ErrInvalidLogLevel = errors.New("invalid log level")

// BaseDir returns the current base directory.
func BaseDir() string {
	logLock.Lock()
	defer logLock.Unlock()
	return baseDir
} // func BaseDir() string

// Path returns the location of the given file or directory.
func Path(p path.ID) string {
	var base = BaseDir()

	switch p {
	case path.Base:
		return base
	case path.Database:
		return filepath.Join(base, "Database", "arithma-databank.db")
	case path.Exercises:
		return filepath.Join(base, "exercises")
	case path.Train:
		return filepath.Join(base, "train")
	case path.Manifest:
		return filepath.Join(base, "datasources.json")
	case path.PageCache:
		return filepath.Join(base, "cache", "pages.db")
	case path.Log:
		return filepath.Join(base, strings.ToLower(AppName)+".log")
	case path.Env:
		return filepath.Join(base, ".env")
	default:
		panic(fmt.Sprintf("Invalid path ID: %d", p))
	}
} // func Path(p path.ID) string

// SetBaseDir sets the application's base directory and initializes it.
func SetBaseDir(dir string) error {
	logLock.Lock()
	baseDir = dir
	if logFile != nil {
		logFile.Close() // nolint: errcheck
		logFile = nil
	}
	logLock.Unlock()

	return InitApp()
} // func SetBaseDir(dir string) error

// InitApp makes sure the base directory and the directories the application
// writes to on its own exist.
func InitApp() error {
	var dirs = []string{
		Path(path.Base),
		filepath.Dir(Path(path.Database)),
		filepath.Dir(Path(path.PageCache)),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot create directory %s: %s\n",
				d,
				err.Error())
			return err
		}
	}

	return nil
} // func InitApp() error

// SetLogLevel sets the minimum level for log messages.
func SetLogLevel(lvl string) error {
	var l = logutils.LogLevel(strings.ToUpper(lvl))

	for _, known := range LogLevels {
		if known == l {
			MinLogLevel = l
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrInvalidLogLevel, lvl)
} // func SetLogLevel(lvl string) error

// LoadEnv reads environment variables from the given dotenv file.
// A missing file is not an error, variables already set in the
// environment take precedence.
func LoadEnv(file string) error {
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
} // func LoadEnv(file string) error

// GetLogger returns a Logger for the given domain. Messages go to stdout and
// to the log file in the base directory.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err    error
		writer io.Writer
		name   = fmt.Sprintf("%s.%-10s ", AppName, dom)
	)

	logLock.Lock()
	defer logLock.Unlock()

	if logFile == nil {
		var logpath = filepath.Join(baseDir, strings.ToLower(AppName)+".log")
		if logFile, err = os.OpenFile(logpath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %s\n",
				logpath,
				err.Error())
			return nil, err
		}
	}

	writer = io.MultiWriter(os.Stdout, logFile)

	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: MinLogLevel,
		Writer:   writer,
	}

	return log.New(filter, name, log.Ldate|log.Ltime|log.Lshortfile), nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)
