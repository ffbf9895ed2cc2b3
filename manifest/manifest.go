// /home/krylon/go/src/github.com/blicero/arithma/manifest/manifest.go
// -*- mode: go; coding: utf-8; -*-
// Created on 23. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-23 15:02:47 krylon>

// Package manifest reads the list of data sources: which listing pages to
// scrape, grouped by the Category they belong to.
//
// The manifest is a JSON object, each member of which looks like this:
//
//	"algebre": {
//	    "Category": "Algebra",
//	    "urls": [
//	        {"url": "https://example.org/?quoi=algebre/anneaux"}
//	    ]
//	}
//
// The keys are not interpreted, but their order is kept. If a key occurs
// more than once, its last value wins. The manifest may also be written in
// YAML.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/blicero/arithma/common"
	"github.com/blicero/arithma/logdomain"
	"github.com/blicero/arithma/model"
	"gopkg.in/yaml.v3"
)

// Entry is one group of listing pages sharing a Category.
type Entry struct {
	Key      string
	Category string
	URLs     []string
}

// Manifest is the list of Entries, in the order they appear in the file.
type Manifest struct {
	Entries []Entry
}

// Count returns the total number of URLs in the Manifest.
func (m *Manifest) Count() int {
	var cnt int

	for _, e := range m.Entries {
		cnt += len(e.URLs)
	}

	return cnt
} // func (m *Manifest) Count() int

type rawURL struct {
	URL *string `yaml:"url" json:"url"`
}

type rawEntry struct {
	Category *string   `yaml:"Category" json:"Category"`
	URLs     *[]rawURL `yaml:"urls" json:"urls"`
}

// Load reads the Manifest from the given file.
func Load(path string) (*Manifest, error) {
	var (
		err error
		raw []byte
		m   *Manifest
	)

	if raw, err = os.ReadFile(path); err != nil {
		if l, lerr := common.GetLogger(logdomain.Manifest); lerr == nil {
			l.Printf("[ERROR] Cannot read manifest %s: %s\n",
				path,
				err.Error())
		}
		return nil, model.NewFault(model.FaultIO, path, err)
	} else if m, err = Parse(raw, path); err != nil {
		if l, lerr := common.GetLogger(logdomain.Manifest); lerr == nil {
			l.Printf("[ERROR] Invalid manifest %s: %s\n",
				path,
				err.Error())
		}
		return nil, err
	}

	return m, nil
} // func Load(path string) (*Manifest, error)

// Parse decodes a Manifest. source is used in error messages.
// A document that starts with '{' is read as JSON, anything else as YAML.
func Parse(raw []byte, source string) (*Manifest, error) {
	var trimmed = bytes.TrimSpace(raw)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		return parseJSON(trimmed, source)
	}

	return parseYAML(raw, source)
} // func Parse(raw []byte, source string) (*Manifest, error)

// entry validates a decoded entry and converts it to an Entry.
func (ent *rawEntry) entry(key, source string) (Entry, error) {
	var e = Entry{Key: key}

	if ent.Category == nil || *ent.Category == "" {
		return e, model.NewFault(model.FaultSchema, source,
			fmt.Errorf("entry %q has no Category", key))
	} else if ent.URLs == nil {
		return e, model.NewFault(model.FaultSchema, source,
			fmt.Errorf("entry %q has no urls", key))
	}

	e.Category = *ent.Category
	e.URLs = make([]string, len(*ent.URLs))

	for j, u := range *ent.URLs {
		if u.URL == nil || *u.URL == "" {
			return e, model.NewFault(model.FaultSchema, source,
				fmt.Errorf("entry %q: url #%d is missing", key, j+1))
		}
		e.URLs[j] = *u.URL
	}

	return e, nil
} // func (ent *rawEntry) entry(key, source string) (Entry, error)

// add appends e to the Manifest, or replaces an earlier Entry with the same
// key in place. As with any JSON object, the last value of a key wins.
func (m *Manifest) add(e Entry, index map[string]int) {
	if i, ok := index[e.Key]; ok {
		m.Entries[i] = e
		return
	}

	index[e.Key] = len(m.Entries)
	m.Entries = append(m.Entries, e)
} // func (m *Manifest) add(e Entry, index map[string]int)

// jsonFault classifies an error returned by encoding/json.
func jsonFault(source string, err error) error {
	var terr *json.UnmarshalTypeError

	if errors.As(err, &terr) {
		return model.NewFault(model.FaultSchema, source, err)
	}

	return model.NewFault(model.FaultParse, source, err)
} // func jsonFault(source string, err error) error

// parseJSON walks the top-level object token by token, so the order of its
// keys is kept.
func parseJSON(raw []byte, source string) (*Manifest, error) {
	var (
		err   error
		tok   json.Token
		dec   = json.NewDecoder(bytes.NewReader(raw))
		index = make(map[string]int)
		m     = new(Manifest)
	)

	if tok, err = dec.Token(); err != nil {
		return nil, jsonFault(source, err)
	} else if tok != json.Delim('{') {
		return nil, model.NewFault(model.FaultSchema, source,
			errors.New("manifest must be an object"))
	}

	for dec.More() {
		var (
			key string
			ent rawEntry
			e   Entry
			ok  bool
		)

		if tok, err = dec.Token(); err != nil {
			return nil, jsonFault(source, err)
		} else if key, ok = tok.(string); !ok {
			return nil, model.NewFault(model.FaultParse, source,
				fmt.Errorf("unexpected token %v", tok))
		} else if err = dec.Decode(&ent); err != nil {
			return nil, jsonFault(source, fmt.Errorf("entry %q: %w", key, err))
		} else if e, err = ent.entry(key, source); err != nil {
			return nil, err
		}

		m.add(e, index)
	}

	if _, err = dec.Token(); err != nil {
		return nil, jsonFault(source, err)
	} else if _, err = dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after manifest")
		}
		return nil, jsonFault(source, err)
	}

	return m, nil
} // func parseJSON(raw []byte, source string) (*Manifest, error)

func parseYAML(raw []byte, source string) (*Manifest, error) {
	var (
		err   error
		doc   yaml.Node
		root  *yaml.Node
		index = make(map[string]int)
		m     = new(Manifest)
	)

	if err = yaml.Unmarshal(raw, &doc); err != nil {
		return nil, model.NewFault(model.FaultParse, source, err)
	} else if doc.Kind == 0 {
		// Empty document
		return m, nil
	} else if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, model.NewFault(model.FaultSchema, source,
			errors.New("manifest is not a single document"))
	}

	root = doc.Content[0]

	if root.Kind != yaml.MappingNode {
		return nil, model.NewFault(model.FaultSchema, source,
			fmt.Errorf("manifest must be an object, not %s", kindName(root.Kind)))
	}

	m.Entries = make([]Entry, 0, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		var (
			key = root.Content[i].Value
			ent rawEntry
			e   Entry
		)

		if err = root.Content[i+1].Decode(&ent); err != nil {
			return nil, model.NewFault(model.FaultSchema, source,
				fmt.Errorf("entry %q: %w", key, err))
		} else if e, err = ent.entry(key, source); err != nil {
			return nil, err
		}

		m.add(e, index)
	}

	return m, nil
} // func parseYAML(raw []byte, source string) (*Manifest, error)

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "a list"
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	default:
		return fmt.Sprintf("node kind %d", k)
	}
} // func kindName(k yaml.Kind) string
