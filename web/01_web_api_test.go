// /home/krylon/go/src/github.com/blicero/arithma/web/01_web_api_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 26. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-26 19:12:08 krylon>

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blicero/arithma/model"
	"github.com/stretchr/testify/require"
)

type testReply[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Payload T      `json:"payload"`
}

func get[T any](t *testing.T, ts *httptest.Server, path string, expectStatus int) testReply[T] {
	t.Helper()

	var rep testReply[T]

	res, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer res.Body.Close() // nolint: errcheck

	require.Equal(t, expectStatus, res.StatusCode, path)
	require.Equal(t, "application/json", res.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(res.Body).Decode(&rep))
	require.Equal(t, expectStatus == http.StatusOK, rep.Status, rep.Message)

	return rep
} // func get[T any](...) testReply[T]

func populate(t *testing.T) (int64, int64, []int64) {
	t.Helper()

	var ids = make([]int64, 0, 25)

	algID, err := db.CategoryGetOrCreate("Algebra")
	require.NoError(t, err)
	anaID, err := db.CategoryGetOrCreate("Analysis")
	require.NoError(t, err)

	for _, s := range []string{"groupes", "anneaux"} {
		_, err = db.SubcategoryGetOrCreate(s, algID)
		require.NoError(t, err)
	}

	for i := 0; i < 25; i++ {
		var e = model.Exercise{
			Script:     fmt.Sprintf("Exercice %d", i+1),
			Hint:       "Aucune",
			Solution:   "Trivial",
			Lang:       model.LangFrench,
			CategoryID: algID,
		}

		require.NoError(t, db.ExerciseAdd(&e))
		ids = append(ids, e.ID)
	}

	return algID, anaID, ids
} // func populate(t *testing.T) (int64, int64, []int64)

func TestBrowseAPI(t *testing.T) {
	srv, err := Create("[::1]:0", db)
	require.NoError(t, err)

	var ts = httptest.NewServer(srv.router)
	defer ts.Close()

	algID, anaID, ids := populate(t)

	beacon := get[any](t, ts, "/ajax/beacon", http.StatusOK)
	require.Contains(t, beacon.Message, "Arithma")

	st := get[stats](t, ts, "/ajax/stats", http.StatusOK)
	require.Equal(t, int64(2), st.Payload.Categories)
	require.Equal(t, int64(25), st.Payload.Exercises)

	cats := get[[]categoryInfo](t, ts, "/ajax/categories", http.StatusOK)
	require.Len(t, cats.Payload, 2)
	require.Equal(t, "Algebra", cats.Payload[0].Name)
	require.Equal(t, int64(25), cats.Payload[0].Exercises)
	require.Equal(t, int64(0), cats.Payload[1].Exercises)

	subs := get[[]model.Subcategory](t, ts, fmt.Sprintf("/ajax/category/%d/subcategories", algID), http.StatusOK)
	require.Len(t, subs.Payload, 2)
	require.Equal(t, "anneaux", subs.Payload[0].Name)

	empty := get[[]model.Subcategory](t, ts, fmt.Sprintf("/ajax/category/%d/subcategories", anaID), http.StatusOK)
	require.NotNil(t, empty.Payload)
	require.Empty(t, empty.Payload)

	page := get[exercisePage](t, ts, fmt.Sprintf("/ajax/category/%d/exercises", algID), http.StatusOK)
	require.Len(t, page.Payload.Exercises, defaultPageSize)
	require.Equal(t, int64(25), page.Payload.Total)
	require.Equal(t, ids[0], page.Payload.Exercises[0].ID)

	page = get[exercisePage](t, ts, fmt.Sprintf("/ajax/category/%d/exercises?limit=10&offset=20", algID), http.StatusOK)
	require.Len(t, page.Payload.Exercises, 5)
	require.Equal(t, ids[20], page.Payload.Exercises[0].ID)

	ex := get[model.Exercise](t, ts, fmt.Sprintf("/ajax/exercise/%d", ids[3]), http.StatusOK)
	require.Equal(t, "Exercice 4", ex.Payload.Script)
	require.Equal(t, algID, ex.Payload.CategoryID)
} // func TestBrowseAPI(t *testing.T)

func TestBrowseAPIErrors(t *testing.T) {
	srv, err := Create("[::1]:0", db)
	require.NoError(t, err)

	var ts = httptest.NewServer(srv.router)
	defer ts.Close()

	get[any](t, ts, "/ajax/category/99999/subcategories", http.StatusNotFound)
	get[any](t, ts, "/ajax/category/99999/exercises", http.StatusNotFound)
	get[any](t, ts, "/ajax/exercise/99999", http.StatusNotFound)
	get[any](t, ts, "/ajax/category/1/exercises?limit=-1", http.StatusBadRequest)
	get[any](t, ts, "/ajax/category/1/exercises?offset=abc", http.StatusBadRequest)

	// Non-numeric IDs do not match any route.
	res, err := http.Get(ts.URL + "/ajax/exercise/abc")
	require.NoError(t, err)
	res.Body.Close() // nolint: errcheck
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	_, err = Create(":0", nil)
	require.Error(t, err)
} // func TestBrowseAPIErrors(t *testing.T)
