// /home/krylon/go/src/github.com/blicero/arithma/ingest/00_ingest_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-25 15:12:36 krylon>

package ingest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/common/path"
	"github.com/blicero/arithma/database"
)

var (
	db  *database.Database
	srv *httptest.Server
)

const listingPage = `<html><body>
<div class="exo">
  <div class="enonce"><h3>Enoncé</h3><p>Soit A un anneau commutatif et intègre. Montrer que tout idéal premier non nul est maximal lorsque A est fini.</p></div>
  <div class="indication"><h3>Indication</h3><p>Considérer le quotient de A par cet idéal.</p></div>
  <div class="corrige"><h3>Corrigé</h3><p>Un anneau intègre fini est un corps, donc le quotient est un corps.</p></div>
</div>
<div class="exo">
  <div class="enonce"><h3>Enoncé</h3><p>Déterminer les éléments inversibles de l'anneau Z/nZ.</p></div>
  <div class="indication"><h3>Indication</h3><p>Utiliser le théorème de Bézout.</p></div>
  <div class="corrige"><h3>Corrigé</h3><p>Ce sont les classes des entiers premiers avec n.</p></div>
</div>
</body></html>
`

func testServer() *httptest.Server {
	var mux = http.NewServeMux()

	mux.HandleFunc("/ressources/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, listingPage)
	})
	mux.HandleFunc("/broken/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body><div class="exo"><div class="enonce">Enoncé Seul.</div></div></body></html>`)
	})

	return httptest.NewServer(mux)
} // func testServer() *httptest.Server

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = time.Now().Format("/tmp/arithma_ingest_test_20060102_150405")
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if db, err = database.Open(common.Path(path.Database)); err != nil {
		fmt.Printf("Cannot open database: %s\n",
			err.Error())
		os.Exit(1)
	}

	srv = testServer()
	result = m.Run()
	srv.Close()
	db.Close() // nolint: errcheck

	if result == 0 {
		fmt.Printf("Removing BaseDir %s\n",
			baseDir)
		_ = os.RemoveAll(baseDir)
	} else {
		fmt.Printf(">>> TEST DIRECTORY: %s\n", baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

// categoryID looks up the ID of the named Category, failing the test if it
// does not exist.
func categoryID(t *testing.T, name string) int64 {
	t.Helper()

	cats, err := db.CategoryGetAll()
	if err != nil {
		t.Fatalf("Cannot load Categories: %s", err.Error())
	}

	for _, c := range cats {
		if c.Name == name {
			return c.ID
		}
	}

	t.Fatalf("Category %q does not exist", name)
	return 0
} // func categoryID(t *testing.T, name string) int64

func countCategory(t *testing.T, name string) int64 {
	t.Helper()

	cnt, err := db.ExerciseCountByCategory()
	if err != nil {
		t.Fatalf("Cannot count Exercises: %s", err.Error())
	}

	return cnt[categoryID(t, name)]
} // func countCategory(t *testing.T, name string) int64
