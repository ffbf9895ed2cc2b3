// /home/krylon/go/src/github.com/blicero/arithma/database/qdb.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 20:24:30 krylon>

package database

import "github.com/blicero/arithma/database/query"

var dbQueries = map[query.ID]string{
	query.CategoryAdd: `
INSERT INTO categories (name)
                VALUES (   ?)
RETURNING id
`,
	query.CategoryGetByName: "SELECT id FROM categories WHERE name = ?",
	query.CategoryGetByID:   "SELECT name FROM categories WHERE id = ?",
	query.CategoryGetAll:    "SELECT id, name FROM categories ORDER BY name",
	query.SubcategoryAdd: `
INSERT INTO subcategories (name, category_id)
                   VALUES (   ?,           ?)
RETURNING id
`,
	query.SubcategoryGetByName: `
SELECT id
FROM subcategories
WHERE name = ? AND category_id = ?
`,
	query.SubcategoryGetByCategory: `
SELECT id, name
FROM subcategories
WHERE category_id = ?
ORDER BY name
`,
	query.ExerciseAdd: `
INSERT INTO exercises (script, hint, solution, lang, level, category_id, subcategory_id)
               VALUES (     ?,    ?,        ?,    ?,     ?,           ?,              ?)
RETURNING id
`,
	query.ExerciseGetByID: `
SELECT
    script,
    hint,
    solution,
    lang,
    level,
    category_id,
    subcategory_id
FROM exercises
WHERE id = ?
`,
	query.ExerciseGetByCategory: `
SELECT
    id,
    script,
    hint,
    solution,
    lang,
    level,
    subcategory_id
FROM exercises
WHERE category_id = ?
ORDER BY id
LIMIT ? OFFSET ?
`,
	query.ExerciseCount: "SELECT COUNT(id) FROM exercises",
	query.ExerciseCountByCategory: `
SELECT
    category_id,
    COUNT(id)
FROM exercises
GROUP BY category_id
`,
}
