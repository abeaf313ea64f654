package library

// Schema changes bump schemaVersion; the store recreates tables when the
// stored version differs. The library is rebuildable from the rip directory,
// so destructive migration is acceptable.
const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS discs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    disc_id TEXT NOT NULL UNIQUE,
    status TEXT NOT NULL,
    track_count INTEGER NOT NULL DEFAULT 0,
    toc_path TEXT NOT NULL DEFAULT '',
    cue_path TEXT NOT NULL DEFAULT '',
    wav_path TEXT NOT NULL DEFAULT '',
    flac_path TEXT NOT NULL DEFAULT '',
    error_text TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_discs_status ON discs(status);
`
