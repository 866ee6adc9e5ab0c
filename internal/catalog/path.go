package catalog

import (
	"fmt"
	"strings"
)

func addPath(q querier, p *Path) error {
	result, err := q.Exec(`
		INSERT INTO path (filepath, title, mediatype)
		VALUES (?, ?, ?)`,
		p.FilePath, p.Title, p.MediaType,
	)
	if err != nil {
		return fmt.Errorf("insert path: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	p.ID = id
	return nil
}

// AddPath inserts a new path. Sets ID on the struct.
// Returns ErrDuplicate if the filesystem path is already stored.
func (s *Store) AddPath(p *Path) error { return addPath(s.db, p) }

// AddPath inserts a new path within a transaction.
func (t *Tx) AddPath(p *Path) error { return addPath(t.tx, p) }

const pathColumns = "id, filepath, title, mediatype"

func getPath(q querier, id int64) (*Path, error) {
	p := &Path{}
	err := q.QueryRow("SELECT "+pathColumns+" FROM path WHERE id = ?", id).
		Scan(&p.ID, &p.FilePath, &p.Title, &p.MediaType)
	if err != nil {
		return nil, fmt.Errorf("get path %d: %w", id, mapSQLiteError(err))
	}
	return p, nil
}

// GetPath retrieves a path by ID.
// Returns ErrNotFound if the path does not exist.
func (s *Store) GetPath(id int64) (*Path, error) { return getPath(s.db, id) }

// GetPath retrieves a path by ID within a transaction.
func (t *Tx) GetPath(id int64) (*Path, error) { return getPath(t.tx, id) }

func getPathByLocation(q querier, dir string) (*Path, error) {
	p := &Path{}
	err := q.QueryRow("SELECT "+pathColumns+" FROM path WHERE filepath = ?", dir).
		Scan(&p.ID, &p.FilePath, &p.Title, &p.MediaType)
	if err != nil {
		return nil, fmt.Errorf("get path %q: %w", dir, mapSQLiteError(err))
	}
	return p, nil
}

// GetPathByLocation retrieves a path by its filesystem path.
// Returns ErrNotFound if no such path is stored.
func (s *Store) GetPathByLocation(dir string) (*Path, error) { return getPathByLocation(s.db, dir) }

// GetPathByLocation retrieves a path by its filesystem path within a transaction.
func (t *Tx) GetPathByLocation(dir string) (*Path, error) { return getPathByLocation(t.tx, dir) }

func listPaths(q querier, f PathFilter) ([]*Path, error) {
	var conditions []string
	var args []any

	if f.MediaType != nil {
		conditions = append(conditions, "mediatype = ?")
		args = append(args, *f.MediaType)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT " + pathColumns + " FROM path " + whereClause + " ORDER BY filepath"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Path
	for rows.Next() {
		p := &Path{}
		if err := rows.Scan(&p.ID, &p.FilePath, &p.Title, &p.MediaType); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate paths: %w", err)
	}
	return results, nil
}

// ListPaths returns paths matching the filter, ordered by filesystem path.
func (s *Store) ListPaths(f PathFilter) ([]*Path, error) { return listPaths(s.db, f) }

// ListPaths returns paths matching the filter within a transaction.
func (t *Tx) ListPaths(f PathFilter) ([]*Path, error) { return listPaths(t.tx, f) }

func deletePath(q querier, id int64) error {
	_, err := q.Exec("DELETE FROM path WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete path %d: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeletePath removes a path by ID. Items under it (and their tracks) are
// removed by cascade.
// This operation is idempotent - no error is returned if the path does not exist.
func (s *Store) DeletePath(id int64) error { return deletePath(s.db, id) }

// DeletePath removes a path by ID within a transaction.
func (t *Tx) DeletePath(id int64) error { return deletePath(t.tx, id) }
