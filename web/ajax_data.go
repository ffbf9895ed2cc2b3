// /home/krylon/go/src/github.com/blicero/arithma/web/ajax_data.go
// -*- mode: go; coding: utf-8; -*-
// Created on 26. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-26 14:05:12 krylon>

package web

import (
	"encoding/json"
	"time"

	"github.com/blicero/arithma/model"
)

// Reply is the format used to reply to AJAX requests.
type Reply struct {
	Timestamp time.Time `json:"timestamp"`
	Status    bool      `json:"status"`
	Message   string    `json:"message,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

// errJSON is sent if a Reply cannot be serialized.
func errJSON(msg string) []byte {
	var (
		buf []byte
		res = map[string]any{
			"timestamp": time.Now(),
			"status":    false,
			"message":   msg,
		}
	)

	buf, _ = json.Marshal(res) // nolint: errchkjson
	return buf
} // func errJSON(msg string) []byte

type categoryInfo struct {
	model.Category
	Exercises int64 `json:"exercises"`
}

type exercisePage struct {
	CategoryID int64            `json:"category_id"`
	Limit      int64            `json:"limit"`
	Offset     int64            `json:"offset"`
	Total      int64            `json:"total"`
	Exercises  []model.Exercise `json:"exercises"`
}

type stats struct {
	Categories int64 `json:"categories"`
	Exercises  int64 `json:"exercises"`
}
