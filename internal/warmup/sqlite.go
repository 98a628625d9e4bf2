// Package warmup fills the engine from the metadata store before the
// fast path starts answering queries.
package warmup

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"fastpath/pkg/matcher"
)

// ProjectPrefix is prepended to a project name to form its content.
const ProjectPrefix = "Project: "

const (
	entitiesQuery = `SELECT type, content, file_path, project FROM entities LIMIT ?`
	projectsQuery = `SELECT DISTINCT project FROM entities WHERE project IS NOT NULL AND project != '' ORDER BY project`
)

// LoadSQLite reads up to limit entity rows from the SQLite database at path
// and returns them as entries: each entity content is keyed by itself, and
// each distinct project name is keyed by the name with ProjectPrefix content.
func LoadSQLite(ctx context.Context, path string, limit int) ([]matcher.Entry, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	var entries []matcher.Entry

	rows, err := db.QueryContext(ctx, entitiesQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var etype, content, filePath, project sql.NullString
		if err := rows.Scan(&etype, &content, &filePath, &project); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		if !content.Valid {
			continue
		}
		entries = append(entries, matcher.Entry{Key: content.String, Content: content.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read entities: %w", err)
	}
	entityCount := len(entries)

	projects, err := db.QueryContext(ctx, projectsQuery)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer projects.Close()

	for projects.Next() {
		var name string
		if err := projects.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		entries = append(entries, matcher.Entry{Key: name, Content: ProjectPrefix + name})
	}
	if err := projects.Err(); err != nil {
		return nil, fmt.Errorf("read projects: %w", err)
	}

	log.Info().Msgf("Warm-up read %d entities and %d projects from %s", entityCount, len(entries)-entityCount, path)
	return entries, nil
}
