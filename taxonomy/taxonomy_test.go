// /home/krylon/go/src/github.com/blicero/arithma/taxonomy/taxonomy_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 23. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-23 16:58:30 krylon>

package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/manifest"
)

func TestSubcategoryFromURL(t *testing.T) {
	type testCase struct {
		url    string
		expect string
	}

	var testCases = []testCase{
		{url: "https://example.org/ressources/?quoi=a/b/c", expect: "c"},
		{url: "https://example.org/ressources/?quoi=a/b/c/", expect: "c"},
		{url: "https://example.org/ressources/?quoi=/anneaux", expect: "anneaux"},
		{url: "https://example.org/ressources/?quoi=anneaux", expect: "anneaux"},
		{url: "https://example.org/ressources/?quoi=a//b//", expect: "b"},
		{url: "https://example.org/ressources/?page=2&quoi=algebre%2Fgroupes", expect: "groupes"},
		{url: "https://example.org/ressources/?quoi=alg%C3%A8bre/id%C3%A9aux#top", expect: "idéaux"},
		{url: "https://example.org/ressources/?x=%zz&quoi=a/b", expect: "b"},
		{url: "https://example.org/ressources/", expect: UnknownSubcategory},
		{url: "https://example.org/ressources/?page=2", expect: UnknownSubcategory},
		{url: "https://example.org/ressources/?quoi=", expect: UnknownSubcategory},
		{url: "https://example.org/ressources/?quoi=///", expect: UnknownSubcategory},
		{url: "::not a url::", expect: UnknownSubcategory},
		{url: "", expect: UnknownSubcategory},
	}

	for _, c := range testCases {
		if s := SubcategoryFromURL(c.url); s != c.expect {
			t.Errorf("SubcategoryFromURL(%q) = %q, expected %q",
				c.url,
				s,
				c.expect)
		}
	}
} // func TestSubcategoryFromURL(t *testing.T)

func TestPlan(t *testing.T) {
	var (
		err  error
		plan map[string][]string
		base = t.TempDir()
		m    = &manifest.Manifest{
			Entries: []manifest.Entry{
				{
					Key:      "algebre",
					Category: "Algebra",
					URLs: []string{
						"https://example.org/?quoi=algebre/anneaux",
						"https://example.org/?quoi=algebre/groupes",
						"https://example.org/?quoi=algebre/anneaux/",
					},
				},
				{
					Key:      "analyse",
					Category: "Analysis",
					URLs:     []string{"https://example.org/"},
				},
				{
					Key:      "algebre2",
					Category: "Algebra",
					URLs:     []string{"https://example.org/?quoi=algebre/corps"},
				},
				{
					Key:      "vide",
					Category: "Geometry",
				},
			},
		}
	)

	if err = common.SetBaseDir(base); err != nil {
		t.Fatalf("Cannot set base directory: %s", err.Error())
	} else if plan, err = Plan(m, base); err != nil {
		t.Fatalf("Plan failed: %s", err.Error())
	}

	if len(plan) != 3 {
		t.Fatalf("Expected 3 Categories, got %d: %v", len(plan), plan)
	}

	var expect = map[string][]string{
		"Algebra":  {"anneaux", "groupes", "corps"},
		"Analysis": {UnknownSubcategory},
		"Geometry": {},
	}

	for cat, subs := range expect {
		var got = plan[cat]

		if len(got) != len(subs) {
			t.Errorf("Category %s: expected %v, got %v", cat, subs, got)
			continue
		}

		for i := range subs {
			if got[i] != subs[i] {
				t.Errorf("Category %s: expected %v, got %v", cat, subs, got)
				break
			}
		}

		if st, err := os.Stat(filepath.Join(base, cat)); err != nil {
			t.Errorf("Directory for %s was not created: %s", cat, err.Error())
		} else if !st.IsDir() {
			t.Errorf("%s is not a directory", filepath.Join(base, cat))
		}
	}

	var names = Categories(plan)

	if len(names) != 3 || names[0] != "Algebra" || names[2] != "Geometry" {
		t.Errorf("Unexpected list of Categories: %v", names)
	}
} // func TestPlan(t *testing.T)
