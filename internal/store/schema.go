package store

const Schema = `
CREATE TABLE IF NOT EXISTS artists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	spotify_id TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Seeded roster rows may lack a catalog identity; uniqueness only applies
-- once one is known.
CREATE UNIQUE INDEX IF NOT EXISTS idx_artists_spotify_id ON artists(spotify_id)
WHERE spotify_id != '';

CREATE TABLE IF NOT EXISTS albums (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	spotify_id TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL,
	images TEXT NOT NULL DEFAULT '[]',  -- JSON array
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tracks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	spotify_id TEXT UNIQUE NOT NULL,
	isrc TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL,
	artist_id INTEGER NOT NULL REFERENCES artists(id),
	album_id INTEGER REFERENCES albums(id),
	duration_ms INTEGER NOT NULL DEFAULT 0,
	local_audio_url TEXT NOT NULL DEFAULT '',
	spotify_url TEXT NOT NULL DEFAULT '',
	preview_url TEXT NOT NULL DEFAULT '',
	is_featured BOOLEAN NOT NULL DEFAULT 0,
	is_popular BOOLEAN NOT NULL DEFAULT 0,
	sort_order INTEGER NOT NULL DEFAULT 0,
	images TEXT NOT NULL DEFAULT '[]',  -- JSON array
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tracks_artist_id ON tracks(artist_id);
CREATE INDEX IF NOT EXISTS idx_tracks_is_popular ON tracks(is_popular);
CREATE INDEX IF NOT EXISTS idx_tracks_isrc ON tracks(isrc) WHERE isrc != '';

CREATE TABLE IF NOT EXISTS track_messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	track_id INTEGER UNIQUE NOT NULL REFERENCES tracks(id),
	body TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
