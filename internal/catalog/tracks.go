package catalog

import "fmt"

func insertTracks(q querier, it *Item) error {
	for i := range it.Audio {
		a := &it.Audio[i]
		a.ItemID = it.ID
		result, err := q.Exec(`
			INSERT INTO audio (itemid, lang, codec, channel_layout, bit_rate, isdefault)
			VALUES (?, ?, ?, ?, ?, ?)`,
			a.ItemID, a.Lang, a.Codec, a.ChannelLayout, a.BitRate, a.IsDefault,
		)
		if err != nil {
			return fmt.Errorf("insert audio track: %w", mapSQLiteError(err))
		}
		if a.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
	}
	for i := range it.Subtitles {
		s := &it.Subtitles[i]
		s.ItemID = it.ID
		result, err := q.Exec(`
			INSERT INTO subtitle (itemid, lang, format, isdefault)
			VALUES (?, ?, ?, ?)`,
			s.ItemID, s.Lang, s.Format, s.IsDefault,
		)
		if err != nil {
			return fmt.Errorf("insert subtitle track: %w", mapSQLiteError(err))
		}
		if s.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
	}
	return nil
}

// replaceTracks drops every stored track of the item and inserts the current ones.
func replaceTracks(q querier, it *Item) error {
	if _, err := q.Exec("DELETE FROM audio WHERE itemid = ?", it.ID); err != nil {
		return fmt.Errorf("clear audio tracks of item %d: %w", it.ID, mapSQLiteError(err))
	}
	if _, err := q.Exec("DELETE FROM subtitle WHERE itemid = ?", it.ID); err != nil {
		return fmt.Errorf("clear subtitle tracks of item %d: %w", it.ID, mapSQLiteError(err))
	}
	return insertTracks(q, it)
}

func loadTracks(q querier, it *Item) error {
	audio, err := q.Query(`
		SELECT id, itemid, lang, codec, channel_layout, bit_rate, isdefault
		FROM audio WHERE itemid = ? ORDER BY id`, it.ID)
	if err != nil {
		return fmt.Errorf("list audio tracks of item %d: %w", it.ID, err)
	}
	it.Audio = nil
	for audio.Next() {
		var a AudioTrack
		if err := audio.Scan(&a.ID, &a.ItemID, &a.Lang, &a.Codec, &a.ChannelLayout, &a.BitRate, &a.IsDefault); err != nil {
			_ = audio.Close()
			return fmt.Errorf("scan audio track: %w", err)
		}
		it.Audio = append(it.Audio, a)
	}
	err = audio.Err()
	_ = audio.Close()
	if err != nil {
		return fmt.Errorf("iterate audio tracks: %w", err)
	}

	subs, err := q.Query(`
		SELECT id, itemid, lang, format, isdefault
		FROM subtitle WHERE itemid = ? ORDER BY id`, it.ID)
	if err != nil {
		return fmt.Errorf("list subtitle tracks of item %d: %w", it.ID, err)
	}
	defer func() { _ = subs.Close() }()
	it.Subtitles = nil
	for subs.Next() {
		var s SubtitleTrack
		if err := subs.Scan(&s.ID, &s.ItemID, &s.Lang, &s.Format, &s.IsDefault); err != nil {
			return fmt.Errorf("scan subtitle track: %w", err)
		}
		it.Subtitles = append(it.Subtitles, s)
	}
	if err := subs.Err(); err != nil {
		return fmt.Errorf("iterate subtitle tracks: %w", err)
	}
	return nil
}
