// /home/krylon/go/src/github.com/blicero/arithma/scraper/clean.go
// -*- mode: go; coding: utf-8; -*-
// Created on 21. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-21 17:10:38 krylon>

package scraper

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jaytaylor/html2text"
	"golang.org/x/net/html"
)

// The section titles the site puts in front of each block.
var labelPat = regexp.MustCompile(`(?i)^(?:Enoncé|Indication|Corrigé)`)

// Clean removes a leading section title from text, along with any
// surrounding whitespace. Text without such a title is only trimmed.
func Clean(text string) string {
	return strings.TrimSpace(labelPat.ReplaceAllString(text, ""))
} // func Clean(text string) string

// strippedText returns the text of the selection the way the site's
// markup is meant to be read: each text node trimmed, all of them
// concatenated without a separator.
func strippedText(sel *goquery.Selection) string {
	var buf bytes.Buffer

	for _, n := range sel.Nodes {
		collectText(n, &buf)
	}

	return buf.String()
} // func strippedText(sel *goquery.Selection) string

func collectText(n *html.Node, buf *bytes.Buffer) {
	switch n.Type {
	case html.TextNode:
		buf.WriteString(strings.TrimSpace(n.Data))
		return
	case html.CommentNode:
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, buf)
	}
} // func collectText(n *html.Node, buf *bytes.Buffer)

// layoutText renders the selection with html2text, which keeps line
// breaks and paragraphs intact. Headings holding a section title are
// dropped first, html2text would underline them otherwise.
func layoutText(sel *goquery.Selection) (string, error) {
	var (
		err       error
		raw, text string
		block     = sel.Clone()
	)

	block.Find("h1, h2, h3, h4, h5, h6").FilterFunction(func(_ int, h *goquery.Selection) bool {
		return labelPat.MatchString(strings.TrimSpace(h.Text()))
	}).Remove()

	if raw, err = goquery.OuterHtml(block); err != nil {
		return "", err
	} else if text, err = html2text.FromString(raw, html2text.Options{OmitLinks: true}); err != nil {
		return "", err
	}

	return text, nil
} // func layoutText(sel *goquery.Selection) (string, error)
