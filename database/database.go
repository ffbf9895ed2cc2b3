// /home/krylon/go/src/github.com/blicero/arithma/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 17:48:31 krylon>

// Package database provides persistence.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/database/query"
	"github.com/blicero/arithma/logdomain"
	"github.com/blicero/arithma/model"
	"github.com/blicero/krylib"
	"github.com/mattn/go-sqlite3"
)

var (
	openLock sync.Mutex
	idCnt    int64
)

// ErrTxInProgress indicates that an attempt to initiate a transaction failed
// because there is already one in progress.
var ErrTxInProgress = errors.New("A Transaction is already in progress")

// ErrNoTxInProgress indicates that an attempt was made to finish a
// transaction when none was active.
var ErrNoTxInProgress = errors.New("There is no transaction in progress")

// ErrInvalidValue indicates that one or more parameters passed to a method
// had values that are invalid for that operation.
var ErrInvalidValue = errors.New("Invalid value for parameter")

// If a query returns an error and the error text is matched by this regex, we
// consider the error as transient and try again after a short delay.
var retryPat = regexp.MustCompile("(?i)database is (?:locked|busy)")

// worthARetry returns true if an error returned from the database
// is matched by the retryPat regex.
func worthARetry(e error) bool {
	return retryPat.MatchString(e.Error())
} // func worthARetry(e error) bool

// retryDelay is the amount of time we wait before we repeat a database
// operation that failed due to a transient error.
const retryDelay = 25 * time.Millisecond

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()

// isUniqueViolation returns true if err was caused by a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	var serr sqlite3.Error

	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
} // func isUniqueViolation(err error) bool

// Database wraps a database connection and associated state.
type Database struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	path    string
	queries map[query.ID]*sql.Stmt
}

// Open opens a Database. If the database specified by the path does not exist,
// yet, it is created. The schema is brought into place every time, which is
// harmless for a database that already has it.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			queries: make(map[query.ID]*sql.Stmt),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	} else if common.Debug {
		db.log.Printf("[DEBUG] Open database %s\n", path)
	}

	var connstring = fmt.Sprintf("%s?_locking=NORMAL&_journal=WAL&_fk=true&recursive_triggers=true",
		path)

	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		db.log.Printf("[ERROR] Cannot create directory for database %s: %s\n",
			path,
			err.Error())
		return nil, err
	} else if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Failed to check if %s already exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Failed to open %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if err = db.initialize(); err != nil {
		var e2 error
		if e2 = db.db.Close(); e2 != nil {
			db.log.Printf("[CRITICAL] Failed to close database: %s\n",
				e2.Error())
			return nil, e2
		} else if !dbExists {
			if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to remove database file %s: %s\n",
					db.path,
					e2.Error())
			}
		}
		return nil, err
	}

	if !dbExists {
		db.log.Printf("[INFO] Database at %s has been initialized\n",
			path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var err error
	var tx *sql.Tx

	if common.Debug {
		db.log.Printf("[DEBUG] Ensure schema of database at %s\n",
			db.path)
	}

BEGIN_TX:
	if tx, err = db.db.Begin(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto BEGIN_TX
		}
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		db.log.Printf("[TRACE] Execute init query:\n%s\n",
			q)
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
				return rbErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database.
// If there is a pending transaction, it is rolled back.
func (db *Database) Close() error {
	var err error

	if db.tx != nil {
		if err = db.tx.Rollback(); err != nil {
			db.log.Printf("[CRITICAL] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.queries {
		if err = stmt.Close(); err != nil {
			db.log.Printf("[CRITICAL] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err = db.db.Close(); err != nil {
		db.log.Printf("[CRITICAL] Cannot close database: %s\n",
			err.Error())
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

// Path returns the path of the database file.
func (db *Database) Path() string {
	return db.path
}

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt  *sql.Stmt
		found bool
		err   error
	)

	if stmt, found = db.queries[id]; found {
		return stmt, nil
	} else if _, found = dbQueries[id]; !found {
		return nil, fmt.Errorf("Unknown Query %d",
			id)
	}

	db.log.Printf("[TRACE] Prepare query %s\n", id)

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.queries[id] = stmt
	return stmt, nil
} // func (db *Database) getQuery(query.ID) (*sql.Stmt, error)

// PerformMaintenance performs some maintenance operations on the database.
// It cannot be called while a transaction is in progress and will block
// pretty much all access to the database while it is running.
func (db *Database) PerformMaintenance() error {
	var mQueries = []string{
		"PRAGMA wal_checkpoint(TRUNCATE)",
		"VACUUM",
		"REINDEX",
		"ANALYZE",
	}
	var err error

	if db.tx != nil {
		return ErrTxInProgress
	}

	for _, q := range mQueries {
		if _, err = db.db.Exec(q); err != nil {
			db.log.Printf("[ERROR] Failed to execute %s: %s\n",
				q,
				err.Error())
		}
	}

	return nil
} // func (db *Database) PerformMaintenance() error

// Begin begins an explicit database transaction.
// Only one transaction can be in progress at once, attempting to start one,
// while another transaction is already in progress will yield ErrTxInProgress.
func (db *Database) Begin() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Begin Transaction\n",
		db.id)

	if db.tx != nil {
		return ErrTxInProgress
	}

BEGIN_TX:
	for db.tx == nil {
		if db.tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				continue BEGIN_TX
			} else {
				db.log.Printf("[ERROR] Failed to start transaction: %s\n",
					err.Error())
				return err
			}
		}
	}

	return nil
} // func (db *Database) Begin() error

// Rollback terminates a pending transaction, undoing any changes to the
// database made during that transaction.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Rollback() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Roll back Transaction\n",
		db.id)

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Rollback(); err != nil {
		return fmt.Errorf("Cannot roll back database transaction: %s",
			err.Error())
	}

	db.tx = nil

	return nil
} // func (db *Database) Rollback() error

// Commit ends the active transaction, making any changes made during that
// transaction permanent and visible to other connections.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Commit() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Commit Transaction\n",
		db.id)

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Commit(); err != nil {
		return fmt.Errorf("Cannot commit transaction: %s",
			err.Error())
	}

	db.tx = nil
	return nil
} // func (db *Database) Commit() error

// InTx returns true if an explicit transaction is in progress.
func (db *Database) InTx() bool {
	return db.tx != nil
}

// insert runs one of the INSERT ... RETURNING id queries and returns the
// new row's ID. Without an explicit transaction it uses an ad-hoc one.
func (db *Database) insert(qid query.ID, args ...any) (int64, error) {
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		rows   *sql.Rows
		id     int64
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return 0, err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Error starting transaction: %s\n",
				err.Error())
			return 0, err
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if rows, err = stmt.Query(args...); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return 0, err
	}

	defer rows.Close() // nolint: errcheck

	// With RETURNING, constraint violations only show up when the
	// statement is stepped.
	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return 0, err
		}
		db.log.Printf("[CANTHAPPEN] Query %s did not return a value\n",
			qid)
		return 0, fmt.Errorf("Query %s did not return a value", qid)
	} else if err = rows.Scan(&id); err != nil {
		db.log.Printf("[ERROR] Failed to get ID of new row from %s: %s\n",
			qid,
			err.Error())
		return 0, err
	}

	status = true
	return id, nil
} // func (db *Database) insert(qid query.ID, args ...any) (int64, error)

// fetch runs a query that returns rows, inside the current transaction
// if there is one.
func (db *Database) fetch(qid query.ID, args ...any) (*sql.Rows, error) {
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(args...); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Failed to execute query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	}

	return rows, nil
} // func (db *Database) fetch(qid query.ID, args ...any) (*sql.Rows, error)

// lookupID runs a query that yields at most one ID.
func (db *Database) lookupID(qid query.ID, args ...any) (int64, bool, error) {
	var (
		err  error
		rows *sql.Rows
		id   int64
	)

	if rows, err = db.fetch(qid, args...); err != nil {
		return 0, false, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if !rows.Next() {
		return 0, false, rows.Err()
	} else if err = rows.Scan(&id); err != nil {
		db.log.Printf("[ERROR] Cannot scan ID from %s: %s\n",
			qid,
			err.Error())
		return 0, false, err
	}

	return id, true, nil
} // func (db *Database) lookupID(qid query.ID, args ...any) (int64, bool, error)

// getOrCreate implements the common part of CategoryGetOrCreate and
// SubcategoryGetOrCreate. A UNIQUE violation on insert means someone else
// created the row after our lookup, so we look it up once more.
func (db *Database) getOrCreate(what, name string, getQ, addQ query.ID, args ...any) (int64, error) {
	var (
		err   error
		id    int64
		found bool
	)

	if id, found, err = db.lookupID(getQ, args...); err != nil {
		db.log.Printf("[ERROR] Cannot look up %s %q: %s\n",
			what,
			name,
			err.Error())
		return 0, err
	} else if found {
		db.log.Printf("[DEBUG] %s %q already exists with ID %d\n",
			what,
			name,
			id)
		return id, nil
	} else if id, err = db.insert(addQ, args...); err == nil {
		db.log.Printf("[INFO] Added %s %q with ID %d\n",
			what,
			name,
			id)
		return id, nil
	} else if !isUniqueViolation(err) {
		db.log.Printf("[ERROR] Cannot add %s %q: %s\n",
			what,
			name,
			err.Error())
		return 0, err
	}

	db.log.Printf("[INFO] %s %q was added by someone else, look it up again\n",
		what,
		name)

	if id, found, err = db.lookupID(getQ, args...); err != nil {
		return 0, err
	} else if !found {
		return 0, model.NewFault(
			model.FaultDuplicate,
			name,
			fmt.Errorf("%s violates a UNIQUE constraint but cannot be found", what))
	}

	return id, nil
} // func (db *Database) getOrCreate(...) (int64, error)

// CategoryGetOrCreate returns the ID of the Category with the given name,
// creating it if it does not exist. Names are compared exactly, so
// "Algebra" and "algebra" are two different Categories.
func (db *Database) CategoryGetOrCreate(name string) (int64, error) {
	if name == "" {
		return 0, ErrInvalidValue
	}

	return db.getOrCreate(
		"Category",
		name,
		query.CategoryGetByName,
		query.CategoryAdd,
		name)
} // func (db *Database) CategoryGetOrCreate(name string) (int64, error)

// SubcategoryGetOrCreate returns the ID of the Subcategory with the given
// name below the given Category, creating it if it does not exist.
func (db *Database) SubcategoryGetOrCreate(name string, categoryID int64) (int64, error) {
	if name == "" || categoryID <= 0 {
		return 0, ErrInvalidValue
	}

	return db.getOrCreate(
		"Subcategory",
		name,
		query.SubcategoryGetByName,
		query.SubcategoryAdd,
		name,
		categoryID)
} // func (db *Database) SubcategoryGetOrCreate(name string, categoryID int64) (int64, error)

// CategoryGetByID loads a Category by its ID. If there is no such Category,
// it returns nil and no error.
func (db *Database) CategoryGetByID(id int64) (*model.Category, error) {
	var (
		err  error
		rows *sql.Rows
	)

	if rows, err = db.fetch(query.CategoryGetByID, id); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var c = &model.Category{ID: id}

		if err = rows.Scan(&c.Name); err != nil {
			db.log.Printf("[ERROR] Error scanning row for Category %d: %s\n",
				id,
				err.Error())
			return nil, err
		}

		return c, nil
	}

	db.log.Printf("[INFO] Category %d was not found in database\n", id)
	return nil, rows.Err()
} // func (db *Database) CategoryGetByID(id int64) (*model.Category, error)

// CategoryGetAll loads all Categories, sorted by name.
func (db *Database) CategoryGetAll() ([]model.Category, error) {
	var (
		err  error
		rows *sql.Rows
	)

	if rows, err = db.fetch(query.CategoryGetAll); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec
	var cats = make([]model.Category, 0, 16)

	for rows.Next() {
		var c model.Category

		if err = rows.Scan(&c.ID, &c.Name); err != nil {
			db.log.Printf("[ERROR] Error scanning row for Category: %s\n",
				err.Error())
			return nil, err
		}

		cats = append(cats, c)
	}

	return cats, rows.Err()
} // func (db *Database) CategoryGetAll() ([]model.Category, error)

// SubcategoryGetByCategory loads all Subcategories of the given Category.
func (db *Database) SubcategoryGetByCategory(categoryID int64) ([]model.Subcategory, error) {
	var (
		err  error
		rows *sql.Rows
	)

	if rows, err = db.fetch(query.SubcategoryGetByCategory, categoryID); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec
	var subs = make([]model.Subcategory, 0, 16)

	for rows.Next() {
		var s = model.Subcategory{CategoryID: categoryID}

		if err = rows.Scan(&s.ID, &s.Name); err != nil {
			db.log.Printf("[ERROR] Error scanning row for Subcategory of Category %d: %s\n",
				categoryID,
				err.Error())
			return nil, err
		}

		subs = append(subs, s)
	}

	return subs, rows.Err()
} // func (db *Database) SubcategoryGetByCategory(categoryID int64) ([]model.Subcategory, error)

// ExerciseAdd adds an Exercise to the database and sets its ID.
// Exercises are never deduplicated, adding the same Exercise twice
// results in two rows.
func (db *Database) ExerciseAdd(e *model.Exercise) error {
	var (
		err   error
		id    int64
		level sql.NullString
		subID sql.NullInt64
	)

	if e.CategoryID <= 0 {
		db.log.Printf("[ERROR] Exercise has no Category: %q\n",
			e.Script)
		return ErrInvalidValue
	}

	if e.Level != "" {
		level = sql.NullString{String: e.Level, Valid: true}
	}

	if e.SubcategoryID > 0 {
		subID = sql.NullInt64{Int64: e.SubcategoryID, Valid: true}
	}

	if id, err = db.insert(
		query.ExerciseAdd,
		e.Script,
		e.Hint,
		e.Solution,
		e.Lang,
		level,
		e.CategoryID,
		subID); err != nil {
		db.log.Printf("[ERROR] Cannot add Exercise to database: %s\n",
			err.Error())
		return err
	}

	e.ID = id
	return nil
} // func (db *Database) ExerciseAdd(e *model.Exercise) error

// ExerciseGetByID loads an Exercise by its ID. If there is no such Exercise,
// it returns nil and no error.
func (db *Database) ExerciseGetByID(id int64) (*model.Exercise, error) {
	var (
		err  error
		rows *sql.Rows
	)

	if rows, err = db.fetch(query.ExerciseGetByID, id); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var (
			script, hint, solution, lang, level sql.NullString
			catID, subID                        sql.NullInt64
			e                                   = &model.Exercise{ID: id}
		)

		if err = rows.Scan(&script, &hint, &solution, &lang, &level, &catID, &subID); err != nil {
			db.log.Printf("[ERROR] Error scanning row for Exercise %d: %s\n",
				id,
				err.Error())
			return nil, err
		}

		e.Script = script.String
		e.Hint = hint.String
		e.Solution = solution.String
		e.Lang = lang.String
		e.Level = level.String
		e.CategoryID = catID.Int64
		e.SubcategoryID = subID.Int64

		return e, nil
	}

	db.log.Printf("[INFO] Exercise %d was not found in database\n", id)
	return nil, rows.Err()
} // func (db *Database) ExerciseGetByID(id int64) (*model.Exercise, error)

// ExerciseGetByCategory loads up to limit Exercises of the given Category,
// skipping the first offset ones.
func (db *Database) ExerciseGetByCategory(categoryID, limit, offset int64) ([]model.Exercise, error) {
	var (
		err  error
		rows *sql.Rows
	)

	if rows, err = db.fetch(query.ExerciseGetByCategory, categoryID, limit, offset); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec
	var list = make([]model.Exercise, 0, 16)

	for rows.Next() {
		var (
			script, hint, solution, lang, level sql.NullString
			subID                               sql.NullInt64
			e                                   = model.Exercise{CategoryID: categoryID}
		)

		if err = rows.Scan(&e.ID, &script, &hint, &solution, &lang, &level, &subID); err != nil {
			db.log.Printf("[ERROR] Error scanning row for Exercise of Category %d: %s\n",
				categoryID,
				err.Error())
			return nil, err
		}

		e.Script = script.String
		e.Hint = hint.String
		e.Solution = solution.String
		e.Lang = lang.String
		e.Level = level.String
		e.SubcategoryID = subID.Int64

		list = append(list, e)
	}

	return list, rows.Err()
} // func (db *Database) ExerciseGetByCategory(categoryID, limit, offset int64) ([]model.Exercise, error)

// ExerciseCount returns the total number of Exercises in the database.
func (db *Database) ExerciseCount() (int64, error) {
	var (
		err error
		cnt int64
	)

	if cnt, _, err = db.lookupID(query.ExerciseCount); err != nil {
		return 0, err
	}

	return cnt, nil
} // func (db *Database) ExerciseCount() (int64, error)

// ExerciseCountByCategory returns the number of Exercises per Category ID.
func (db *Database) ExerciseCountByCategory() (map[int64]int64, error) {
	var (
		err  error
		rows *sql.Rows
		cnt  = make(map[int64]int64)
	)

	if rows, err = db.fetch(query.ExerciseCountByCategory); err != nil {
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	for rows.Next() {
		var (
			catID sql.NullInt64
			n     int64
		)

		if err = rows.Scan(&catID, &n); err != nil {
			db.log.Printf("[ERROR] Cannot scan Exercise count: %s\n",
				err.Error())
			return nil, err
		}

		cnt[catID.Int64] += n
	}

	return cnt, rows.Err()
} // func (db *Database) ExerciseCountByCategory() (map[int64]int64, error)
