// /home/krylon/go/src/github.com/blicero/arithma/database/qinit.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 20:11:58 krylon>

package database

// initQueries are executed every time a database is opened, so they must
// leave existing tables and their data alone.
var initQueries = []string{
	`
CREATE TABLE IF NOT EXISTS categories (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    name                TEXT NOT NULL,
    UNIQUE (name)
)
`,
	`
CREATE TABLE IF NOT EXISTS subcategories (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    name                TEXT NOT NULL,
    category_id         INTEGER,
    FOREIGN KEY (category_id) REFERENCES categories (id),
    UNIQUE (name, category_id)
)
`,
	"CREATE INDEX IF NOT EXISTS subcat_cat_idx ON subcategories (category_id)",
	`
CREATE TABLE IF NOT EXISTS exercises (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    script              TEXT,
    hint                TEXT,
    solution            TEXT,
    lang                TEXT,
    level               TEXT,
    category_id         INTEGER,
    subcategory_id      INTEGER,
    FOREIGN KEY (category_id) REFERENCES categories (id),
    FOREIGN KEY (subcategory_id) REFERENCES subcategories (id)
)
`,
	"CREATE INDEX IF NOT EXISTS ex_cat_idx ON exercises (category_id)",
	"CREATE INDEX IF NOT EXISTS ex_subcat_idx ON exercises (subcategory_id)",
}
