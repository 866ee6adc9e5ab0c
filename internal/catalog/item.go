package catalog

import (
	"fmt"
	"strings"
	"time"
)

const itemColumns = "item.id, item.pathid, item.filename, item.vcodec, item.width, item.height, item.duration, item.fps, " +
	"item.color_space, item.pix_format, item.bit_rate, item.filesize_mb, item.last_modified, item.tag"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(r rowScanner) (*Item, error) {
	it := &Item{}
	var modified int64
	err := r.Scan(&it.ID, &it.PathID, &it.Filename, &it.VideoCodec, &it.Width, &it.Height, &it.DurationMin, &it.FPS,
		&it.ColorSpace, &it.PixFormat, &it.BitRate, &it.FileSizeMB, &modified, &it.Tag)
	if err != nil {
		return nil, err
	}
	it.LastModified = time.Unix(0, modified)
	return it, nil
}

func addItem(q querier, it *Item) error {
	result, err := q.Exec(`
		INSERT INTO item (pathid, filename, vcodec, width, height, duration, fps, color_space, pix_format, bit_rate, filesize_mb, last_modified, tag)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.PathID, it.Filename, it.VideoCodec, it.Width, it.Height, it.DurationMin, it.FPS,
		it.ColorSpace, it.PixFormat, it.BitRate, it.FileSizeMB, it.LastModified.UnixNano(), it.Tag,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	it.ID = id
	return insertTracks(q, it)
}

// AddItem inserts a new item together with its audio and subtitle tracks.
// Sets ID on the item and on every track.
// Returns ErrDuplicate if the (path, filename) pair already exists.
func (s *Store) AddItem(it *Item) error { return addItem(s.db, it) }

// AddItem inserts a new item and its tracks within a transaction.
func (t *Tx) AddItem(it *Item) error { return addItem(t.tx, it) }

func getItem(q querier, id int64) (*Item, error) {
	it, err := scanItem(q.QueryRow("SELECT "+itemColumns+" FROM item WHERE item.id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, mapSQLiteError(err))
	}
	if err := loadTracks(q, it); err != nil {
		return nil, err
	}
	return it, nil
}

// GetItem retrieves an item and its tracks by ID.
// Returns ErrNotFound if the item does not exist.
func (s *Store) GetItem(id int64) (*Item, error) { return getItem(s.db, id) }

// GetItem retrieves an item and its tracks by ID within a transaction.
func (t *Tx) GetItem(id int64) (*Item, error) { return getItem(t.tx, id) }

func getItemByLocation(q querier, dir, filename string) (*Item, error) {
	it, err := scanItem(q.QueryRow(
		"SELECT "+itemColumns+" FROM item JOIN path ON item.pathid = path.id WHERE path.filepath = ? AND item.filename = ?",
		dir, filename,
	))
	if err != nil {
		return nil, fmt.Errorf("get item %q: %w", dir+"/"+filename, mapSQLiteError(err))
	}
	if err := loadTracks(q, it); err != nil {
		return nil, err
	}
	return it, nil
}

// GetItemByLocation retrieves the item stored for filename inside dir.
// Returns ErrNotFound if there is none.
func (s *Store) GetItemByLocation(dir, filename string) (*Item, error) {
	return getItemByLocation(s.db, dir, filename)
}

// GetItemByLocation retrieves an item by location within a transaction.
func (t *Tx) GetItemByLocation(dir, filename string) (*Item, error) {
	return getItemByLocation(t.tx, dir, filename)
}

func listItems(q querier, f ItemFilter) ([]*Item, error) {
	var conditions []string
	var args []any

	if f.PathID != nil {
		conditions = append(conditions, "item.pathid = ?")
		args = append(args, *f.PathID)
	}
	if f.Tag != nil {
		conditions = append(conditions, "item.tag = ?")
		args = append(args, *f.Tag)
	}
	if f.MediaType != nil {
		conditions = append(conditions, "path.mediatype = ?")
		args = append(args, *f.MediaType)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT " + itemColumns + " FROM item JOIN path ON item.pathid = path.id " + whereClause +
		" ORDER BY path.filepath, item.filename"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	var results []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan item: %w", err)
		}
		results = append(results, it)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	// Release the connection before loading tracks; the pool holds one.
	_ = rows.Close()

	for _, it := range results {
		if err := loadTracks(q, it); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// ListItems returns items matching the filter with their tracks loaded,
// ordered by directory then filename.
func (s *Store) ListItems(f ItemFilter) ([]*Item, error) { return listItems(s.db, f) }

// ListItems returns items matching the filter within a transaction.
func (t *Tx) ListItems(f ItemFilter) ([]*Item, error) { return listItems(t.tx, f) }

func listLocations(q querier) ([]Location, error) {
	rows, err := q.Query(`
		SELECT item.id, item.pathid, path.filepath, item.filename, item.last_modified
		FROM item JOIN path ON item.pathid = path.id
		ORDER BY path.filepath, item.filename`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Location
	for rows.Next() {
		var loc Location
		var modified int64
		if err := rows.Scan(&loc.ItemID, &loc.PathID, &loc.Dir, &loc.Filename, &modified); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		loc.LastModified = time.Unix(0, modified)
		results = append(results, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return results, nil
}

// ListLocations returns the on-disk location and watermark of every item.
func (s *Store) ListLocations() ([]Location, error) { return listLocations(s.db) }

// ListLocations returns every item location within a transaction.
func (t *Tx) ListLocations() ([]Location, error) { return listLocations(t.tx) }

func updateItem(q querier, it *Item) error {
	result, err := q.Exec(`
		UPDATE item SET pathid = ?, filename = ?, vcodec = ?, width = ?, height = ?, duration = ?, fps = ?,
			color_space = ?, pix_format = ?, bit_rate = ?, filesize_mb = ?, last_modified = ?, tag = ?
		WHERE id = ?`,
		it.PathID, it.Filename, it.VideoCodec, it.Width, it.Height, it.DurationMin, it.FPS,
		it.ColorSpace, it.PixFormat, it.BitRate, it.FileSizeMB, it.LastModified.UnixNano(), it.Tag, it.ID,
	)
	if err != nil {
		return fmt.Errorf("update item %d: %w", it.ID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update item %d: %w", it.ID, ErrNotFound)
	}
	return replaceTracks(q, it)
}

// UpdateItem updates an existing item in place and replaces its audio and
// subtitle tracks wholesale.
// Returns ErrNotFound if the item does not exist.
func (s *Store) UpdateItem(it *Item) error { return updateItem(s.db, it) }

// UpdateItem updates an existing item and its tracks within a transaction.
func (t *Tx) UpdateItem(it *Item) error { return updateItem(t.tx, it) }

func deleteItem(q querier, id int64) error {
	_, err := q.Exec("DELETE FROM item WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeleteItem removes an item by ID; its tracks are removed by cascade.
// This operation is idempotent - no error is returned if the item does not exist.
func (s *Store) DeleteItem(id int64) error { return deleteItem(s.db, id) }

// DeleteItem removes an item by ID within a transaction.
func (t *Tx) DeleteItem(id int64) error { return deleteItem(t.tx, id) }

func countItems(q querier) (int, error) {
	var n int
	if err := q.QueryRow("SELECT COUNT(*) FROM item").Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// CountItems returns the number of stored items.
func (s *Store) CountItems() (int, error) { return countItems(s.db) }
