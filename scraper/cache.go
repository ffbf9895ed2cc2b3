// /home/krylon/go/src/github.com/blicero/arithma/scraper/cache.go
// -*- mode: go; coding: utf-8; -*-
// Created on 21. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-21 18:22:50 krylon>

package scraper

import (
	"log"
	"time"

	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/logdomain"
	"github.com/faabiosr/cachego"
	"github.com/faabiosr/cachego/bolt"
	bt "go.etcd.io/bbolt"
)

// DefaultCacheTTL is how long a cached page stays valid.
const DefaultCacheTTL = time.Hour * 24

// PageCache keeps the bodies of listing pages around, so running the
// pipeline again does not have to hit the site for every page.
type PageCache struct {
	log   *log.Logger
	db    *bt.DB
	cache cachego.Cache
	ttl   time.Duration
}

// OpenPageCache opens (or creates) the page cache at the given path.
func OpenPageCache(path string, ttl time.Duration) (*PageCache, error) {
	var (
		err error
		pc  = &PageCache{ttl: ttl}
	)

	if pc.log, err = common.GetLogger(logdomain.Cache); err != nil {
		return nil, err
	} else if pc.db, err = bt.Open(path, 0600, &bt.Options{Timeout: time.Second * 5}); err != nil {
		pc.log.Printf("[ERROR] Failed to open page cache at %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if pc.ttl <= 0 {
		pc.ttl = DefaultCacheTTL
	}

	pc.cache = bolt.New(pc.db)

	return pc, nil
} // func OpenPageCache(path string, ttl time.Duration) (*PageCache, error)

// Lookup returns the cached body for the given URL, if there is one.
func (pc *PageCache) Lookup(url string) ([]byte, bool) {
	var (
		err  error
		body string
	)

	if !pc.cache.Contains(url) {
		return nil, false
	} else if body, err = pc.cache.Fetch(url); err != nil {
		pc.log.Printf("[ERROR] Cannot fetch %s from page cache: %s\n",
			url,
			err.Error())
		return nil, false
	}

	pc.log.Printf("[TRACE] Found %s in page cache\n", url)
	return []byte(body), true
} // func (pc *PageCache) Lookup(url string) ([]byte, bool)

// Store adds a page body to the cache. Failing to do so is logged, but
// not considered an error.
func (pc *PageCache) Store(url string, body []byte) {
	if err := pc.cache.Save(url, string(body), pc.ttl); err != nil {
		pc.log.Printf("[ERROR] Cannot save %s to page cache: %s\n",
			url,
			err.Error())
	}
} // func (pc *PageCache) Store(url string, body []byte)

// Flush empties the cache.
func (pc *PageCache) Flush() error {
	return pc.cache.Flush()
} // func (pc *PageCache) Flush() error

// Close closes the underlying database.
func (pc *PageCache) Close() error {
	return pc.db.Close()
} // func (pc *PageCache) Close() error
