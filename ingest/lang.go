// /home/krylon/go/src/github.com/blicero/arithma/ingest/lang.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-24 15:02:18 krylon>

package ingest

import (
	"runtime"

	"github.com/blicero/arithma/model"
	"github.com/endeveit/guesslanguage"
)

// The codes guesslanguage returns for the languages we tag Exercises with.
var langCodes = map[string]string{
	model.LangFrench:  "fr",
	model.LangEnglish: "en",
}

const unknownLang = "UNKNOWN"

// guessLanguage returns the language code of the Exercise's text, or
// unknownLang.
func (ing *Ingestor) guessLanguage(e *model.Exercise) (lang string) {
	defer func() {
		if x := recover(); x != nil {
			var buf [2048]byte
			var cnt = runtime.Stack(buf[:], false)
			ing.log.Printf("[CRITICAL] Panic in guessLanguage for Exercise %q: %s\n%s",
				e.Script,
				x,
				string(buf[:cnt]))
			lang = unknownLang
		}
	}()

	var err error

	if lang, err = guesslanguage.Guess(e.Plaintext()); err != nil {
		ing.log.Printf("[ERROR] Cannot determine language of Exercise %q: %s\n",
			e.Script,
			err.Error())
		lang = unknownLang
	}

	return lang
} // func (ing *Ingestor) guessLanguage(e *model.Exercise) (lang string)

// checkLanguage logs a warning if the text of the Exercise does not look
// like it is in the language it is tagged with. It returns false in that
// case. The Exercise is stored either way.
func (ing *Ingestor) checkLanguage(e *model.Exercise, source string) bool {
	var (
		expect, guess string
		ok            bool
	)

	if expect, ok = langCodes[e.Lang]; !ok {
		return true
	} else if guess = ing.guessLanguage(e); guess == unknownLang {
		return true
	} else if guess != expect {
		ing.log.Printf("[WARN] Exercise from %s is tagged %s, but looks like %s\n",
			source,
			e.Lang,
			guess)
		return false
	}

	return true
} // func (ing *Ingestor) checkLanguage(e *model.Exercise, source string) bool
