// /home/krylon/go/src/github.com/blicero/arithma/web/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 26. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-26 17:58:21 krylon>

// Package web provides a small JSON API to browse the databank.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/database"
	"github.com/blicero/arithma/logdomain"
	"github.com/blicero/arithma/model"
	"github.com/gorilla/mux"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Server wraps the state required for the web interface
type Server struct {
	Addr   string
	log    *log.Logger
	db     *database.Database
	lock   sync.Mutex
	router *mux.Router
	web    http.Server
}

// Create creates and returns a new Server. The Server does not own the
// Database, the caller has to close it.
func Create(addr string, db *database.Database) (*Server, error) {
	var (
		err error
		srv = &Server{
			Addr: addr,
			db:   db,
		}
	)

	if db == nil {
		return nil, errors.New("Database is nil")
	} else if srv.log, err = common.GetLogger(logdomain.Web); err != nil {
		return nil, err
	}

	srv.router = mux.NewRouter()
	srv.web.Addr = addr
	srv.web.ErrorLog = srv.log
	srv.web.Handler = srv.router
	srv.web.ReadHeaderTimeout = time.Second * 10

	srv.router.HandleFunc("/ajax/beacon", srv.handleBeacon).Methods(http.MethodGet)
	srv.router.HandleFunc("/ajax/stats", srv.handleStats).Methods(http.MethodGet)
	srv.router.HandleFunc("/ajax/categories", srv.handleCategories).Methods(http.MethodGet)
	srv.router.HandleFunc("/ajax/category/{id:(?:\\d+)}/subcategories", srv.handleSubcategories).Methods(http.MethodGet)
	srv.router.HandleFunc("/ajax/category/{id:(?:\\d+)}/exercises", srv.handleExercises).Methods(http.MethodGet)
	srv.router.HandleFunc("/ajax/exercise/{id:(?:\\d+)}", srv.handleExercise).Methods(http.MethodGet)

	return srv, nil
} // func Create(addr string, db *database.Database) (*Server, error)

// ListenAndServe runs the server's ListenAndServe method. It returns nil
// when the Server is shut down.
func (srv *Server) ListenAndServe() error {
	srv.log.Printf("[DEBUG] Server start listening on %s.\n", srv.Addr)
	defer srv.log.Println("[DEBUG] Server has quit.")

	if err := srv.web.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		srv.log.Printf("[ERROR] Server failed: %s\n", err.Error())
		return err
	}

	return nil
} // func (srv *Server) ListenAndServe() error

// Shutdown stops the Server, waiting for pending requests until ctx expires.
func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.web.Shutdown(ctx)
} // func (srv *Server) Shutdown(ctx context.Context) error

// sendReply serializes the Reply and sends it to the client.
func (srv *Server) sendReply(w http.ResponseWriter, res *Reply, hstatus int) {
	var (
		err  error
		rbuf []byte
	)

	res.Timestamp = time.Now()
	if rbuf, err = json.Marshal(res); err != nil {
		srv.log.Printf("[ERROR] Error serializing response: %s\n",
			err.Error())
		rbuf = errJSON(err.Error())
		hstatus = 500
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.WriteHeader(hstatus)
	if _, err = w.Write(rbuf); err != nil {
		srv.log.Printf("[ERROR] Failed to send result: %s\n",
			err.Error())
	}
} // func (srv *Server) sendReply(w http.ResponseWriter, res *Reply, hstatus int)

func (srv *Server) handleBeacon(w http.ResponseWriter, r *http.Request) {
	var res = Reply{
		Status:  true,
		Message: common.AppName + " " + common.Version,
	}

	srv.sendReply(w, &res, 200)
} // func (srv *Server) handleBeacon(w http.ResponseWriter, r *http.Request)

func (srv *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	srv.log.Printf("[TRACE] Handle request for %s from %s\n",
		r.URL.EscapedPath(),
		r.RemoteAddr)

	var (
		err     error
		res     Reply
		cats    []model.Category
		data    stats
		hstatus = 200
	)

	srv.lock.Lock()
	defer srv.lock.Unlock()

	if cats, err = srv.db.CategoryGetAll(); err != nil {
		res.Message = fmt.Sprintf("Failed to load Categories: %s",
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = 500
		goto SEND_RESPONSE
	} else if data.Exercises, err = srv.db.ExerciseCount(); err != nil {
		res.Message = fmt.Sprintf("Failed to count Exercises: %s",
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = 500
		goto SEND_RESPONSE
	}

	data.Categories = int64(len(cats))
	res.Payload = &data
	res.Status = true

SEND_RESPONSE:
	srv.sendReply(w, &res, hstatus)
} // func (srv *Server) handleStats(w http.ResponseWriter, r *http.Request)

func (srv *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	srv.log.Printf("[TRACE] Handle request for %s from %s\n",
		r.URL.EscapedPath(),
		r.RemoteAddr)

	var (
		err     error
		res     Reply
		cats    []model.Category
		counts  map[int64]int64
		list    []categoryInfo
		hstatus = 200
	)

	srv.lock.Lock()
	defer srv.lock.Unlock()

	if cats, err = srv.db.CategoryGetAll(); err != nil {
		res.Message = fmt.Sprintf("Failed to load Categories: %s",
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = 500
		goto SEND_RESPONSE
	} else if counts, err = srv.db.ExerciseCountByCategory(); err != nil {
		res.Message = fmt.Sprintf("Failed to count Exercises: %s",
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = 500
		goto SEND_RESPONSE
	}

	list = make([]categoryInfo, len(cats))
	for i, c := range cats {
		list[i] = categoryInfo{
			Category:  c,
			Exercises: counts[c.ID],
		}
	}

	res.Payload = list
	res.Status = true

SEND_RESPONSE:
	srv.sendReply(w, &res, hstatus)
} // func (srv *Server) handleCategories(w http.ResponseWriter, r *http.Request)

// lookupCategory parses the Category ID in the request path and loads the
// Category. On failure, it fills in the Reply and returns the HTTP status.
func (srv *Server) lookupCategory(r *http.Request, res *Reply) (*model.Category, int) {
	var (
		err   error
		id    int64
		cat   *model.Category
		idstr = mux.Vars(r)["id"]
	)

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		res.Message = fmt.Sprintf("Cannot parse Category ID %q: %s",
			idstr,
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		return nil, 400
	} else if cat, err = srv.db.CategoryGetByID(id); err != nil {
		res.Message = fmt.Sprintf("Failed to load Category %d: %s",
			id,
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		return nil, 500
	} else if cat == nil {
		res.Message = fmt.Sprintf("Category %d does not exist", id)
		srv.log.Printf("[DEBUG] %s\n", res.Message)
		return nil, 404
	}

	return cat, 200
} // func (srv *Server) lookupCategory(r *http.Request, res *Reply) (*model.Category, int)

func (srv *Server) handleSubcategories(w http.ResponseWriter, r *http.Request) {
	srv.log.Printf("[TRACE] Handle request for %s from %s\n",
		r.URL.EscapedPath(),
		r.RemoteAddr)

	var (
		err     error
		res     Reply
		cat     *model.Category
		subs    []model.Subcategory
		hstatus int
	)

	srv.lock.Lock()
	defer srv.lock.Unlock()

	if cat, hstatus = srv.lookupCategory(r, &res); cat == nil {
		goto SEND_RESPONSE
	} else if subs, err = srv.db.SubcategoryGetByCategory(cat.ID); err != nil {
		res.Message = fmt.Sprintf("Failed to load Subcategories of %s: %s",
			cat.Name,
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = 500
		goto SEND_RESPONSE
	}

	if subs == nil {
		subs = []model.Subcategory{}
	}

	res.Payload = subs
	res.Status = true

SEND_RESPONSE:
	srv.sendReply(w, &res, hstatus)
} // func (srv *Server) handleSubcategories(w http.ResponseWriter, r *http.Request)

// pageParam reads a non-negative integer from the query string.
func pageParam(r *http.Request, name string, dflt int64) (int64, error) {
	var s = r.URL.Query().Get(name)

	if s == "" {
		return dflt, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	} else if n < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}

	return n, nil
} // func pageParam(r *http.Request, name string, dflt int64) (int64, error)

func (srv *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	srv.log.Printf("[TRACE] Handle request for %s from %s\n",
		r.URL.EscapedPath(),
		r.RemoteAddr)

	var (
		err     error
		res     Reply
		cat     *model.Category
		counts  map[int64]int64
		page    exercisePage
		hstatus int
	)

	if page.Limit, err = pageParam(r, "limit", defaultPageSize); err != nil {
		res.Message = fmt.Sprintf("Invalid limit: %s", err.Error())
		hstatus = 400
		goto SEND_RESPONSE
	} else if page.Offset, err = pageParam(r, "offset", 0); err != nil {
		res.Message = fmt.Sprintf("Invalid offset: %s", err.Error())
		hstatus = 400
		goto SEND_RESPONSE
	} else if page.Limit == 0 || page.Limit > maxPageSize {
		page.Limit = maxPageSize
	}

	srv.lock.Lock()
	defer srv.lock.Unlock()

	if cat, hstatus = srv.lookupCategory(r, &res); cat == nil {
		goto SEND_RESPONSE
	} else if page.Exercises, err = srv.db.ExerciseGetByCategory(cat.ID, page.Limit, page.Offset); err != nil {
		res.Message = fmt.Sprintf("Failed to load Exercises of %s: %s",
			cat.Name,
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = 500
		goto SEND_RESPONSE
	} else if counts, err = srv.db.ExerciseCountByCategory(); err != nil {
		res.Message = fmt.Sprintf("Failed to count Exercises: %s",
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = 500
		goto SEND_RESPONSE
	}

	if page.Exercises == nil {
		page.Exercises = []model.Exercise{}
	}

	page.CategoryID = cat.ID
	page.Total = counts[cat.ID]
	res.Payload = &page
	res.Status = true

SEND_RESPONSE:
	srv.sendReply(w, &res, hstatus)
} // func (srv *Server) handleExercises(w http.ResponseWriter, r *http.Request)

func (srv *Server) handleExercise(w http.ResponseWriter, r *http.Request) {
	srv.log.Printf("[TRACE] Handle request for %s from %s\n",
		r.URL.EscapedPath(),
		r.RemoteAddr)

	var (
		err     error
		res     Reply
		id      int64
		ex      *model.Exercise
		idstr   = mux.Vars(r)["id"]
		hstatus = 200
	)

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		res.Message = fmt.Sprintf("Cannot parse Exercise ID %q: %s",
			idstr,
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = 400
		goto SEND_RESPONSE
	}

	srv.lock.Lock()
	defer srv.lock.Unlock()

	if ex, err = srv.db.ExerciseGetByID(id); err != nil {
		res.Message = fmt.Sprintf("Failed to load Exercise %d: %s",
			id,
			err.Error())
		srv.log.Printf("[ERROR] %s\n", res.Message)
		hstatus = 500
		goto SEND_RESPONSE
	} else if ex == nil {
		res.Message = fmt.Sprintf("Exercise %d does not exist", id)
		hstatus = 404
		goto SEND_RESPONSE
	}

	res.Payload = ex
	res.Status = true

SEND_RESPONSE:
	srv.sendReply(w, &res, hstatus)
} // func (srv *Server) handleExercise(w http.ResponseWriter, r *http.Request)
